package service

import (
	"context"
	"errors"
	"testing"

	"github.com/codecraft/backend/internal/model"
	"github.com/codecraft/backend/internal/repository"
)

func TestProjectService_List(t *testing.T) {
	mock := &mockProjectRepository{
		listFunc: func(ctx context.Context) ([]*model.Project, error) {
			return []*model.Project{{ID: "p1"}, {ID: "p2"}}, nil
		},
	}
	svc := NewProjectService(mock)

	got, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 projects, got %d", len(got))
	}
}

func TestProjectService_GetByID_NotFound(t *testing.T) {
	svc := NewProjectService(&mockProjectRepository{})

	_, err := svc.GetByID(context.Background(), "missing")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestProjectService_Create_RequiresTitle(t *testing.T) {
	mock := &mockProjectRepository{
		createFunc: func(ctx context.Context, project *model.Project) error {
			t.Error("Create should not reach the repository")
			return nil
		},
	}
	svc := NewProjectService(mock)

	err := svc.Create(context.Background(), &model.Project{Title: "   "})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestProjectService_Create_DefaultsTechnologies(t *testing.T) {
	var saved *model.Project
	mock := &mockProjectRepository{
		createFunc: func(ctx context.Context, project *model.Project) error {
			saved = project
			return nil
		},
	}
	svc := NewProjectService(mock)

	if err := svc.Create(context.Background(), &model.Project{Title: "Site"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.Technologies == nil {
		t.Error("expected technologies to default to an empty list")
	}
}

func TestProjectService_Update_ForwardsPatch(t *testing.T) {
	var gotID string
	var gotPatch model.ProjectPatch
	mock := &mockProjectRepository{
		updateFunc: func(ctx context.Context, id string, patch model.ProjectPatch) (*model.Project, error) {
			gotID, gotPatch = id, patch
			return &model.Project{ID: id, Title: *patch.Title}, nil
		},
	}
	svc := NewProjectService(mock)

	title := "New title"
	got, err := svc.Update(context.Background(), "p1", model.ProjectPatch{Title: &title})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotID != "p1" || gotPatch.Description != nil {
		t.Errorf("unexpected forwarded call: id=%q patch=%+v", gotID, gotPatch)
	}
	if got.Title != "New title" {
		t.Errorf("expected updated title, got %q", got.Title)
	}
}

func TestProjectService_Update_RejectsEmptyTitle(t *testing.T) {
	svc := NewProjectService(&mockProjectRepository{})
	empty := ""
	if _, err := svc.Update(context.Background(), "p1", model.ProjectPatch{Title: &empty}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}
