package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/pagehub/internal/domain"
)

// SiteRepository defines persistence access for hosted sites.
type SiteRepository interface {
	Create(ctx context.Context, site *domain.Site) error
	GetByID(ctx context.Context, id string) (*domain.Site, error)
	List(ctx context.Context) ([]domain.Site, error)
	UpdateStatus(ctx context.Context, id string, status domain.SiteStatus) error
	Delete(ctx context.Context, id string) error
}

type siteRepository struct {
	pool *pgxpool.Pool
}

// NewSiteRepository returns a Postgres-backed implementation.
func NewSiteRepository(pool *pgxpool.Pool) SiteRepository {
	return &siteRepository{pool: pool}
}

func (r *siteRepository) Create(ctx context.Context, site *domain.Site) error {
	const query = `
        INSERT INTO sites (id, name, bucket_name, status)
        VALUES ($1, $2, $3, $4)
        RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		site.ID,
		site.Name,
		site.BucketName,
		site.Status,
	).Scan(&site.CreatedAt, &site.UpdatedAt)
}

func (r *siteRepository) GetByID(ctx context.Context, id string) (*domain.Site, error) {
	const query = `
        SELECT id, name, bucket_name, status, created_at, updated_at
        FROM sites WHERE id=$1`

	var site domain.Site
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&site.ID,
		&site.Name,
		&site.BucketName,
		&site.Status,
		&site.CreatedAt,
		&site.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &site, nil
}

func (r *siteRepository) List(ctx context.Context) ([]domain.Site, error) {
	const query = `
        SELECT id, name, bucket_name, status, created_at, updated_at
        FROM sites ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sites []domain.Site
	for rows.Next() {
		var site domain.Site
		if err := rows.Scan(
			&site.ID,
			&site.Name,
			&site.BucketName,
			&site.Status,
			&site.CreatedAt,
			&site.UpdatedAt,
		); err != nil {
			return nil, err
		}
		sites = append(sites, site)
	}
	return sites, rows.Err()
}

func (r *siteRepository) UpdateStatus(ctx context.Context, id string, status domain.SiteStatus) error {
	const query = `
        UPDATE sites SET status=$1, updated_at=NOW()
        WHERE id=$2`

	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *siteRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM sites WHERE id=$1`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
