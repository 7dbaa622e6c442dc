package repository

import (
	"context"
	"time"

	"github.com/sysu-ecnc-dev/work-ledger/backend/internal/domain"
	"github.com/sysu-ecnc-dev/work-ledger/backend/internal/valuation"
)

// GetOrCreateSettings 获取用户的计价配置，如果不存在则以默认值创建
func (r *Repository) GetOrCreateSettings(userID int64) (*domain.Settings, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	defaults := valuation.DefaultRateSheet()

	// 并发创建时只会有一个 INSERT 生效
	query := `
		INSERT INTO settings (user_id, day_rate, night_rate, meal_unit_value)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO NOTHING
	`
	if _, err := tx.ExecContext(ctx, query, userID, defaults.DayRate, defaults.NightRate, defaults.MealUnitValue); err != nil {
		return nil, err
	}

	query = `
		SELECT day_rate, night_rate, meal_unit_value, updated_at, version
		FROM settings WHERE user_id = $1
	`

	s := &domain.Settings{
		UserID: userID,
	}

	dst := []any{&s.DayRate, &s.NightRate, &s.MealUnitValue, &s.UpdatedAt, &s.Version}
	if err := tx.QueryRowContext(ctx, query, userID).Scan(dst...); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return s, nil
}

func (r *Repository) UpdateSettings(s *domain.Settings) error {
	query := `
		UPDATE settings
		SET
			day_rate = $1,
			night_rate = $2,
			meal_unit_value = $3,
			updated_at = NOW(),
			version = version + 1
		WHERE user_id = $4 AND version = $5
		RETURNING updated_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{s.DayRate, s.NightRate, s.MealUnitValue, s.UserID, s.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&s.UpdatedAt, &s.Version); err != nil {
		return err
	}

	return nil
}
