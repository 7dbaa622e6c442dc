package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sysu-ecnc-dev/work-ledger/backend/internal/domain"
)

func insertAudit(ctx context.Context, tx *sql.Tx, action domain.AuditAction, workLogID, userID int64, before, after *domain.WorkLog) error {
	query := `
		INSERT INTO work_logs_audit (
			work_log_id,
			user_id,
			action,
			old_date,
			new_date,
			old_total_value,
			new_total_value,
			old_total_meal_cost,
			new_total_meal_cost,
			old_minutes_day,
			new_minutes_day,
			old_minutes_night,
			new_minutes_night,
			old_meals_qty,
			new_meals_qty,
			old_note,
			new_note
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	// 每个字段依次为 (old, new)，对应的记录不存在时为 NULL
	fields := make([]any, 0, 14)
	for _, wl := range []*domain.WorkLog{before, after} {
		if wl == nil {
			fields = append(fields, nil, nil, nil, nil, nil, nil, nil)
			continue
		}
		fields = append(fields, wl.Date, wl.TotalValue, wl.TotalMealCost, wl.MinutesDay, wl.MinutesNight, wl.MealsQty, wl.Note)
	}

	// fields 目前是 [before 的 7 项, after 的 7 项]，需要交错成 (old, new) 对
	params := []any{workLogID, userID, string(action)}
	for i := 0; i < 7; i++ {
		params = append(params, fields[i], fields[i+7])
	}

	_, err := tx.ExecContext(ctx, query, params...)
	return err
}

func (r *Repository) GetWorkLogAudits(userID int64, limit int) ([]*domain.WorkLogAudit, error) {
	query := `
		SELECT
			id,
			work_log_id,
			user_id,
			action,
			changed_at,
			old_date,
			new_date,
			old_total_value,
			new_total_value,
			old_total_meal_cost,
			new_total_meal_cost,
			old_minutes_day,
			new_minutes_day,
			old_minutes_night,
			new_minutes_night,
			old_meals_qty,
			new_meals_qty,
			old_note,
			new_note
		FROM work_logs_audit
		WHERE user_id = $1
		ORDER BY changed_at DESC, id DESC
		LIMIT $2
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	audits := make([]*domain.WorkLogAudit, 0)
	for rows.Next() {
		var row struct {
			OldDate, NewDate                   sql.NullTime
			OldTotalValue, NewTotalValue       decimal.NullDecimal
			OldTotalMealCost, NewTotalMealCost decimal.NullDecimal
			OldMinutesDay, NewMinutesDay       sql.NullInt32
			OldMinutesNight, NewMinutesNight   sql.NullInt32
			OldMealsQty, NewMealsQty           sql.NullInt32
			OldNote, NewNote                   sql.NullString
		}
		a := &domain.WorkLogAudit{}

		dst := []any{
			&a.ID,
			&a.WorkLogID,
			&a.UserID,
			&a.Action,
			&a.ChangedAt,
			&row.OldDate,
			&row.NewDate,
			&row.OldTotalValue,
			&row.NewTotalValue,
			&row.OldTotalMealCost,
			&row.NewTotalMealCost,
			&row.OldMinutesDay,
			&row.NewMinutesDay,
			&row.OldMinutesNight,
			&row.NewMinutesNight,
			&row.OldMealsQty,
			&row.NewMealsQty,
			&row.OldNote,
			&row.NewNote,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		a.OldDate, a.NewDate = nullTime(row.OldDate), nullTime(row.NewDate)
		a.OldTotalValue, a.NewTotalValue = nullDecimal(row.OldTotalValue), nullDecimal(row.NewTotalValue)
		a.OldTotalMealCost, a.NewTotalMealCost = nullDecimal(row.OldTotalMealCost), nullDecimal(row.NewTotalMealCost)
		a.OldMinutesDay, a.NewMinutesDay = nullInt(row.OldMinutesDay), nullInt(row.NewMinutesDay)
		a.OldMinutesNight, a.NewMinutesNight = nullInt(row.OldMinutesNight), nullInt(row.NewMinutesNight)
		a.OldMealsQty, a.NewMealsQty = nullInt(row.OldMealsQty), nullInt(row.NewMealsQty)
		a.OldNote, a.NewNote = nullString(row.OldNote), nullString(row.NewNote)

		audits = append(audits, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return audits, nil
}

func nullTime(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	return &v.Time
}

func nullDecimal(v decimal.NullDecimal) *decimal.Decimal {
	if !v.Valid {
		return nil
	}
	return &v.Decimal
}

func nullInt(v sql.NullInt32) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int32)
	return &n
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}
