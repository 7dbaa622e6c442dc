package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sysu-ecnc-dev/work-ledger/backend/internal/domain"
)

const workLogColumns = `
	id,
	user_id,
	provider_id,
	date,
	to_char(start_time, 'HH24:MI:SS'),
	to_char(end_time, 'HH24:MI:SS'),
	minutes_day,
	minutes_night,
	total_value,
	meals_qty,
	unit_value_applied,
	total_meal_cost,
	note,
	created_at,
	version
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWorkLog(row rowScanner) (*domain.WorkLog, error) {
	wl := &domain.WorkLog{}
	var note sql.NullString

	dst := []any{
		&wl.ID,
		&wl.UserID,
		&wl.ProviderID,
		&wl.Date,
		&wl.StartTime,
		&wl.EndTime,
		&wl.MinutesDay,
		&wl.MinutesNight,
		&wl.TotalValue,
		&wl.MealsQty,
		&wl.UnitValueApplied,
		&wl.TotalMealCost,
		&note,
		&wl.CreatedAt,
		&wl.Version,
	}
	if err := row.Scan(dst...); err != nil {
		return nil, err
	}

	if note.Valid {
		wl.Note = &note.String
	}

	return wl, nil
}

func (r *Repository) CreateWorkLog(wl *domain.WorkLog) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO work_logs (
			user_id,
			provider_id,
			date,
			start_time,
			end_time,
			minutes_day,
			minutes_night,
			total_value,
			meals_qty,
			unit_value_applied,
			total_meal_cost,
			note
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, version
	`

	params := []any{
		wl.UserID,
		wl.ProviderID,
		wl.Date,
		wl.StartTime,
		wl.EndTime,
		wl.MinutesDay,
		wl.MinutesNight,
		wl.TotalValue,
		wl.MealsQty,
		wl.UnitValueApplied,
		wl.TotalMealCost,
		wl.Note,
	}
	if err := tx.QueryRowContext(ctx, query, params...).Scan(&wl.ID, &wl.CreatedAt, &wl.Version); err != nil {
		return err
	}

	if err := insertAudit(ctx, tx, domain.AuditInsert, wl.ID, wl.UserID, nil, wl); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetWorkLogByID(id int64) (*domain.WorkLog, error) {
	query := fmt.Sprintf(`SELECT %s FROM work_logs WHERE id = $1`, workLogColumns)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	return scanWorkLog(r.dbpool.QueryRowContext(ctx, query, id))
}

// GetWorkLogs 返回用户在 [from, to) 日期区间内的记录，providerID 为空时不按服务人员过滤
func (r *Repository) GetWorkLogs(userID int64, from, to time.Time, providerID *int64) ([]*domain.WorkLog, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM work_logs
		WHERE user_id = $1
			AND date >= $2
			AND date < $3
			AND ($4::BIGINT IS NULL OR provider_id = $4)
		ORDER BY date DESC, start_time DESC
	`, workLogColumns)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, userID, from, to, providerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := make([]*domain.WorkLog, 0)
	for rows.Next() {
		wl, err := scanWorkLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, wl)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return logs, nil
}

func (r *Repository) UpdateWorkLog(wl *domain.WorkLog) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// 先锁住旧记录，审计时需要旧值
	old, err := scanWorkLog(tx.QueryRowContext(ctx, fmt.Sprintf(`SELECT %s FROM work_logs WHERE id = $1 FOR UPDATE`, workLogColumns), wl.ID))
	if err != nil {
		return err
	}

	query := `
		UPDATE work_logs
		SET
			provider_id = $1,
			date = $2,
			start_time = $3,
			end_time = $4,
			minutes_day = $5,
			minutes_night = $6,
			total_value = $7,
			meals_qty = $8,
			unit_value_applied = $9,
			total_meal_cost = $10,
			note = $11,
			version = version + 1
		WHERE id = $12 AND version = $13
		RETURNING version
	`

	params := []any{
		wl.ProviderID,
		wl.Date,
		wl.StartTime,
		wl.EndTime,
		wl.MinutesDay,
		wl.MinutesNight,
		wl.TotalValue,
		wl.MealsQty,
		wl.UnitValueApplied,
		wl.TotalMealCost,
		wl.Note,
		wl.ID,
		wl.Version,
	}
	if err := tx.QueryRowContext(ctx, query, params...).Scan(&wl.Version); err != nil {
		return err
	}

	if err := insertAudit(ctx, tx, domain.AuditUpdate, wl.ID, wl.UserID, old, wl); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteWorkLog(wl *domain.WorkLog) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	old, err := scanWorkLog(tx.QueryRowContext(ctx, fmt.Sprintf(`DELETE FROM work_logs WHERE id = $1 RETURNING %s`, workLogColumns), wl.ID))
	if err != nil {
		return err
	}

	if err := insertAudit(ctx, tx, domain.AuditDelete, old.ID, old.UserID, old, nil); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}
