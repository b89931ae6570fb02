package repository

import (
	"context"

	"github.com/codecraft/backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TestimonialRepository is the persistence interface for testimonials.
type TestimonialRepository interface {
	List(ctx context.Context) ([]*model.Testimonial, error)
	GetByID(ctx context.Context, id string) (*model.Testimonial, error)
	Create(ctx context.Context, t *model.Testimonial) error
	Update(ctx context.Context, id string, patch model.TestimonialPatch) (*model.Testimonial, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// PgTestimonialRepository is the PostgreSQL implementation of TestimonialRepository.
type PgTestimonialRepository struct {
	pool *pgxpool.Pool
}

// NewPgTestimonialRepository creates a PgTestimonialRepository backed by the given pool.
func NewPgTestimonialRepository(pool *pgxpool.Pool) *PgTestimonialRepository {
	return &PgTestimonialRepository{pool: pool}
}

var _ TestimonialRepository = (*PgTestimonialRepository)(nil)

const testimonialSelectCols = `id, client_name, company, content, created_at`

func scanTestimonial(scan func(...any) error) (*model.Testimonial, error) {
	var t model.Testimonial
	if err := scan(&t.ID, &t.ClientName, &t.Company, &t.Content, &t.CreatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

// List returns all testimonials, newest first.
func (r *PgTestimonialRepository) List(ctx context.Context) ([]*model.Testimonial, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+testimonialSelectCols+` FROM testimonials ORDER BY created_at DESC`)
	if err != nil {
		return nil, wrap("testimonials.list", err)
	}
	defer rows.Close()

	out := []*model.Testimonial{}
	for rows.Next() {
		t, err := scanTestimonial(rows.Scan)
		if err != nil {
			return nil, wrap("testimonials.list", err)
		}
		out = append(out, t)
	}
	return out, wrap("testimonials.list", rows.Err())
}

func (r *PgTestimonialRepository) GetByID(ctx context.Context, id string) (*model.Testimonial, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+testimonialSelectCols+` FROM testimonials WHERE id = $1`, id)
	t, err := scanTestimonial(row.Scan)
	if err != nil {
		return nil, wrap("testimonials.get", err)
	}
	return t, nil
}

// Create inserts a testimonial and populates ID and CreatedAt from RETURNING.
func (r *PgTestimonialRepository) Create(ctx context.Context, t *model.Testimonial) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO testimonials (client_name, company, content)
		 VALUES ($1, NULLIF($2, ''), $3)
		 RETURNING id, company, created_at`,
		t.ClientName, t.Company, t.Content,
	).Scan(&t.ID, &t.Company, &t.CreatedAt)
	return wrap("testimonials.create", err)
}

// Update applies the non-nil fields of patch. An empty company clears it.
func (r *PgTestimonialRepository) Update(ctx context.Context, id string, patch model.TestimonialPatch) (*model.Testimonial, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE testimonials SET
		   client_name = COALESCE($2, client_name),
		   company     = CASE WHEN $3::text IS NULL THEN company ELSE NULLIF($3, '') END,
		   content     = COALESCE($4, content)
		 WHERE id = $1
		 RETURNING `+testimonialSelectCols,
		id, patch.ClientName, patch.Company, patch.Content,
	)
	t, err := scanTestimonial(row.Scan)
	if err != nil {
		return nil, wrap("testimonials.update", err)
	}
	return t, nil
}

func (r *PgTestimonialRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM testimonials WHERE id = $1`, id)
	if err != nil {
		return wrap("testimonials.delete", err)
	}
	if tag.RowsAffected() == 0 {
		return notFound("testimonials.delete")
	}
	return nil
}

func (r *PgTestimonialRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM testimonials`).Scan(&n)
	return n, wrap("testimonials.count", err)
}
