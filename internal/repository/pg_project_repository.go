package repository

import (
	"context"

	"github.com/codecraft/backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgProjectRepository は ProjectRepository の PostgreSQL 実装
type PgProjectRepository struct {
	pool *pgxpool.Pool
}

// NewPgProjectRepository は PgProjectRepository を生成する
func NewPgProjectRepository(pool *pgxpool.Pool) *PgProjectRepository {
	return &PgProjectRepository{pool: pool}
}

var _ ProjectRepository = (*PgProjectRepository)(nil)

const projectSelectCols = `id, title, description, image_url, technologies, created_at`

func scanProject(scan func(...any) error) (*model.Project, error) {
	var p model.Project
	if err := scan(&p.ID, &p.Title, &p.Description, &p.ImageURL, &p.Technologies, &p.CreatedAt); err != nil {
		return nil, err
	}
	if p.Technologies == nil {
		p.Technologies = []string{}
	}
	return &p, nil
}

// List はプロジェクト一覧を新しい順に取得する
func (r *PgProjectRepository) List(ctx context.Context) ([]*model.Project, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+projectSelectCols+` FROM projects ORDER BY created_at DESC`)
	if err != nil {
		return nil, wrap("projects.list", err)
	}
	defer rows.Close()

	projects := []*model.Project{}
	for rows.Next() {
		p, err := scanProject(rows.Scan)
		if err != nil {
			return nil, wrap("projects.list", err)
		}
		projects = append(projects, p)
	}
	return projects, wrap("projects.list", rows.Err())
}

// GetByID は ID でプロジェクトを取得する
func (r *PgProjectRepository) GetByID(ctx context.Context, id string) (*model.Project, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+projectSelectCols+` FROM projects WHERE id = $1`, id)
	p, err := scanProject(row.Scan)
	if err != nil {
		return nil, wrap("projects.get", err)
	}
	return p, nil
}

// Create はプロジェクトを作成し、ID と created_at を埋める
func (r *PgProjectRepository) Create(ctx context.Context, project *model.Project) error {
	techs := project.Technologies
	if techs == nil {
		techs = []string{}
	}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO projects (title, description, image_url, technologies)
		 VALUES ($1, $2, NULLIF($3, ''), $4)
		 RETURNING id, image_url, technologies, created_at`,
		project.Title, project.Description, project.ImageURL, techs,
	).Scan(&project.ID, &project.ImageURL, &project.Technologies, &project.CreatedAt)
	return wrap("projects.create", err)
}

// Update は指定されたフィールドだけを更新する。image_url に空文字を渡すと NULL に戻す。
func (r *PgProjectRepository) Update(ctx context.Context, id string, patch model.ProjectPatch) (*model.Project, error) {
	var techs []string
	if patch.Technologies != nil {
		techs = *patch.Technologies
		if techs == nil {
			techs = []string{}
		}
	}
	row := r.pool.QueryRow(ctx,
		`UPDATE projects SET
		   title        = COALESCE($2, title),
		   description  = COALESCE($3, description),
		   image_url    = CASE WHEN $4::text IS NULL THEN image_url ELSE NULLIF($4, '') END,
		   technologies = CASE WHEN $5::boolean THEN $6::text[] ELSE technologies END
		 WHERE id = $1
		 RETURNING `+projectSelectCols,
		id, patch.Title, patch.Description, patch.ImageURL, patch.Technologies != nil, techs,
	)
	p, err := scanProject(row.Scan)
	if err != nil {
		return nil, wrap("projects.update", err)
	}
	return p, nil
}

// Delete はプロジェクトを削除する。対象が存在しない場合は ErrNotFound を返す。
func (r *PgProjectRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return wrap("projects.delete", err)
	}
	if tag.RowsAffected() == 0 {
		return notFound("projects.delete")
	}
	return nil
}

// Count はプロジェクト件数を返す
func (r *PgProjectRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM projects`).Scan(&n)
	return n, wrap("projects.count", err)
}
