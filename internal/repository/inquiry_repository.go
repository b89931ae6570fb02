package repository

import (
	"context"

	"github.com/codecraft/backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// InquiryRepository defines the persistence interface for inquiries.
// It is defined here (in repository) to avoid an import cycle with service.
type InquiryRepository interface {
	Create(ctx context.Context, in *model.Inquiry) error
	List(ctx context.Context) ([]*model.Inquiry, error)
	Delete(ctx context.Context, id string) error
	UpdateStatus(ctx context.Context, id, status string) error
	// Count returns the number of inquiries; status "" counts all of them.
	Count(ctx context.Context, status string) (int, error)
}

// PgInquiryRepository is the PostgreSQL implementation of InquiryRepository.
type PgInquiryRepository struct {
	pool *pgxpool.Pool
}

// NewPgInquiryRepository creates a PgInquiryRepository backed by the given pool.
func NewPgInquiryRepository(pool *pgxpool.Pool) *PgInquiryRepository {
	return &PgInquiryRepository{pool: pool}
}

// Ensure PgInquiryRepository implements InquiryRepository at compile time.
var _ InquiryRepository = (*PgInquiryRepository)(nil)

// Create inserts a new inquiries row and populates in.ID, in.Status and
// in.CreatedAt from the database RETURNING clause.
func (r *PgInquiryRepository) Create(ctx context.Context, in *model.Inquiry) error {
	status := in.Status
	if status == "" {
		status = model.InquiryUnread
	}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO inquiries (name, email, message, status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, status, created_at`,
		in.Name, in.Email, in.Message, status,
	).Scan(&in.ID, &in.Status, &in.CreatedAt)
	return wrap("inquiries.create", err)
}

// List returns every inquiry, newest first.
func (r *PgInquiryRepository) List(ctx context.Context) ([]*model.Inquiry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, email, message, status, created_at
		 FROM inquiries ORDER BY created_at DESC`)
	if err != nil {
		return nil, wrap("inquiries.list", err)
	}
	defer rows.Close()

	out := []*model.Inquiry{}
	for rows.Next() {
		var m model.Inquiry
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.Status, &m.CreatedAt); err != nil {
			return nil, wrap("inquiries.list", err)
		}
		out = append(out, &m)
	}
	return out, wrap("inquiries.list", rows.Err())
}

// Delete removes the inquiry. Returns ErrNotFound when no row matched.
func (r *PgInquiryRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM inquiries WHERE id = $1`, id)
	if err != nil {
		return wrap("inquiries.delete", err)
	}
	if tag.RowsAffected() == 0 {
		return notFound("inquiries.delete")
	}
	return nil
}

// UpdateStatus changes the status of an inquiry.
func (r *PgInquiryRepository) UpdateStatus(ctx context.Context, id, status string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE inquiries SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return wrap("inquiries.update_status", err)
	}
	if tag.RowsAffected() == 0 {
		return notFound("inquiries.update_status")
	}
	return nil
}

func (r *PgInquiryRepository) Count(ctx context.Context, status string) (int, error) {
	var n int
	var err error
	if status == "" {
		err = r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM inquiries`).Scan(&n)
	} else {
		err = r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM inquiries WHERE status = $1`, status).Scan(&n)
	}
	return n, wrap("inquiries.count", err)
}
