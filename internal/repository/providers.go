package repository

import (
	"context"
	"time"

	"github.com/sysu-ecnc-dev/work-ledger/backend/internal/domain"
)

func (r *Repository) CreateProvider(p *domain.Provider) error {
	query := `
		INSERT INTO providers (user_id, name)
		VALUES ($1, $2)
		RETURNING id, active, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	dst := []any{&p.ID, &p.Active, &p.CreatedAt, &p.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, p.UserID, p.Name).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetProviderByID(id int64) (*domain.Provider, error) {
	query := `
		SELECT user_id, name, active, created_at, version
		FROM providers WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	p := &domain.Provider{
		ID: id,
	}

	dst := []any{&p.UserID, &p.Name, &p.Active, &p.CreatedAt, &p.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return p, nil
}

func (r *Repository) GetProvidersByUserID(userID int64) ([]*domain.Provider, error) {
	query := `
		SELECT id, name, active, created_at, version
		FROM providers
		WHERE user_id = $1
		ORDER BY name ASC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	providers := make([]*domain.Provider, 0)
	for rows.Next() {
		p := &domain.Provider{UserID: userID}
		if err := rows.Scan(&p.ID, &p.Name, &p.Active, &p.CreatedAt, &p.Version); err != nil {
			return nil, err
		}
		providers = append(providers, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return providers, nil
}

func (r *Repository) UpdateProvider(p *domain.Provider) error {
	query := `
		UPDATE providers
		SET
			name = $1,
			active = $2,
			version = version + 1
		WHERE id = $3 AND version = $4
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, p.Name, p.Active, p.ID, p.Version).Scan(&p.Version); err != nil {
		return err
	}

	return nil
}
