package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/pagehub/internal/domain"
)

// AccessTokenRepository persists issuance metadata. Writes are append-only;
// records are never updated and nothing reads them on the verify path.
type AccessTokenRepository interface {
	Insert(ctx context.Context, rec *domain.AccessTokenRecord) error
	ListBySite(ctx context.Context, siteID string) ([]domain.AccessTokenRecord, error)
}

type accessTokenRepository struct {
	pool *pgxpool.Pool
}

// NewAccessTokenRepository returns a Postgres-backed implementation.
func NewAccessTokenRepository(pool *pgxpool.Pool) AccessTokenRepository {
	return &accessTokenRepository{pool: pool}
}

func (r *accessTokenRepository) Insert(ctx context.Context, rec *domain.AccessTokenRecord) error {
	const query = `
        INSERT INTO access_tokens (token_id, site_id, issued_at, expires_at)
        VALUES ($1, $2, $3, $4)
        RETURNING created_at`

	return r.pool.QueryRow(ctx, query,
		rec.TokenID,
		rec.SiteID,
		rec.IssuedAt,
		rec.ExpiresAt,
	).Scan(&rec.CreatedAt)
}

func (r *accessTokenRepository) ListBySite(ctx context.Context, siteID string) ([]domain.AccessTokenRecord, error) {
	const query = `
        SELECT token_id, site_id, issued_at, expires_at, created_at
        FROM access_tokens WHERE site_id=$1 ORDER BY issued_at DESC`

	rows, err := r.pool.Query(ctx, query, siteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.AccessTokenRecord
	for rows.Next() {
		var rec domain.AccessTokenRecord
		if err := rows.Scan(
			&rec.TokenID,
			&rec.SiteID,
			&rec.IssuedAt,
			&rec.ExpiresAt,
			&rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
