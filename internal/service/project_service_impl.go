package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/codecraft/backend/internal/model"
	"github.com/codecraft/backend/internal/repository"
)

// ProjectServiceImpl は ProjectService の実装
type ProjectServiceImpl struct {
	projectRepo repository.ProjectRepository
}

// NewProjectService は ProjectServiceImpl を生成する（DI: ProjectRepository を注入）
func NewProjectService(projectRepo repository.ProjectRepository) ProjectService {
	return &ProjectServiceImpl{projectRepo: projectRepo}
}

// List はプロジェクト一覧を作成日時の降順で取得する
func (s *ProjectServiceImpl) List(ctx context.Context) ([]*model.Project, error) {
	return s.projectRepo.List(ctx)
}

// GetByID は ID でプロジェクトを取得する
func (s *ProjectServiceImpl) GetByID(ctx context.Context, id string) (*model.Project, error) {
	return s.projectRepo.GetByID(ctx, id)
}

// Create はプロジェクトを作成する。タイトルは必須
func (s *ProjectServiceImpl) Create(ctx context.Context, project *model.Project) error {
	if strings.TrimSpace(project.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if project.Technologies == nil {
		project.Technologies = []string{}
	}
	return s.projectRepo.Create(ctx, project)
}

// Update は patch の非 nil フィールドのみを更新する
func (s *ProjectServiceImpl) Update(ctx context.Context, id string, patch model.ProjectPatch) (*model.Project, error) {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, fmt.Errorf("%w: title must not be empty", ErrInvalidInput)
	}
	return s.projectRepo.Update(ctx, id, patch)
}

// Delete はプロジェクトを削除する
func (s *ProjectServiceImpl) Delete(ctx context.Context, id string) error {
	return s.projectRepo.Delete(ctx, id)
}
