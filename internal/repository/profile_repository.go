package repository

import (
	"context"

	"github.com/codecraft/backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgProfileRepository is the PostgreSQL implementation of ProfileRepository.
type PgProfileRepository struct {
	pool *pgxpool.Pool
}

// NewPgProfileRepository creates a PgProfileRepository backed by the given pool.
func NewPgProfileRepository(pool *pgxpool.Pool) *PgProfileRepository {
	return &PgProfileRepository{pool: pool}
}

var _ ProfileRepository = (*PgProfileRepository)(nil)

// FindByID returns the profile with the given id, or ErrNotFound.
func (r *PgProfileRepository) FindByID(ctx context.Context, id string) (*model.Profile, error) {
	var p model.Profile
	err := r.pool.QueryRow(ctx,
		`SELECT id, email, role, created_at FROM profiles WHERE id = $1`, id,
	).Scan(&p.ID, &p.Email, &p.Role, &p.CreatedAt)
	if err != nil {
		return nil, wrap("profiles.find_by_id", err)
	}
	return &p, nil
}

func (r *PgProfileRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM profiles`).Scan(&n)
	return n, wrap("profiles.count", err)
}
