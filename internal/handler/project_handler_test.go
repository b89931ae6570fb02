package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/codecraft/backend/internal/model"
	"github.com/codecraft/backend/internal/repository"
)

func strPtr(s string) *string { return &s }

func TestProjectHandler_List(t *testing.T) {
	mock := &mockProjectService{
		listFunc: func(ctx context.Context) ([]*model.Project, error) {
			return []*model.Project{{ID: "p1", Title: "Shop", Technologies: []string{"Go"}}}, nil
		},
	}
	h := NewProjectHandler(mock)
	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest("GET", "/api/projects", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Projects []*model.Project `json:"projects"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Projects) != 1 || resp.Projects[0].ID != "p1" {
		t.Errorf("unexpected projects: %+v", resp.Projects)
	}
}

func TestProjectHandler_List_EmptyIsArray(t *testing.T) {
	h := NewProjectHandler(&mockProjectService{})
	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest("GET", "/api/projects", nil))

	if !strings.Contains(rec.Body.String(), `"projects":[]`) {
		t.Errorf("expected empty array, got %s", rec.Body.String())
	}
}

func TestProjectHandler_Get_NotFound(t *testing.T) {
	mock := &mockProjectService{
		getByIDFunc: func(ctx context.Context, id string) (*model.Project, error) {
			return nil, &repository.Error{Op: "projects.get", Kind: repository.KindNotFound, Err: errors.New("no rows")}
		},
	}
	h := NewProjectHandler(mock)
	req := httptest.NewRequest("GET", "/api/projects/missing", nil)
	req.SetPathValue("id", "missing")
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestProjectHandler_Create(t *testing.T) {
	var got *model.Project
	mock := &mockProjectService{
		createFunc: func(ctx context.Context, p *model.Project) error {
			got = p
			p.ID = "new-id"
			return nil
		},
	}
	h := NewProjectHandler(mock)
	body := `{"title":"Clinic site","description":"Booking","image_url":"","technologies":["Next.js","Go"]}`
	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest("POST", "/api/admin/projects", strings.NewReader(body)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if got.Title != "Clinic site" || len(got.Technologies) != 2 {
		t.Errorf("unexpected project: %+v", got)
	}
	// 空文字の image_url は未設定として扱う
	if got.ImageURL != nil {
		t.Errorf("expected nil image_url, got %q", *got.ImageURL)
	}
	var resp model.Project
	_ = json.NewDecoder(rec.Body).Decode(&resp)
	if resp.ID != "new-id" {
		t.Errorf("expected id new-id, got %q", resp.ID)
	}
}

func TestProjectHandler_Create_TitleRequired(t *testing.T) {
	h := NewProjectHandler(&mockProjectService{})
	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest("POST", "/api/admin/projects", strings.NewReader(`{"description":"x"}`)))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "title_required") {
		t.Errorf("expected title_required, got %s", rec.Body.String())
	}
}

func TestProjectHandler_Update_PassesPatch(t *testing.T) {
	var gotPatch model.ProjectPatch
	mock := &mockProjectService{
		updateFunc: func(ctx context.Context, id string, patch model.ProjectPatch) (*model.Project, error) {
			gotPatch = patch
			return &model.Project{ID: id, Title: *patch.Title}, nil
		},
	}
	h := NewProjectHandler(mock)
	req := httptest.NewRequest("PUT", "/api/admin/projects/p1", strings.NewReader(`{"title":"Renamed"}`))
	req.SetPathValue("id", "p1")
	rec := httptest.NewRecorder()
	h.Update(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotPatch.Title == nil || *gotPatch.Title != "Renamed" {
		t.Errorf("expected title patch, got %+v", gotPatch)
	}
	if gotPatch.Description != nil || gotPatch.ImageURL != nil || gotPatch.Technologies != nil {
		t.Errorf("untouched fields must stay nil: %+v", gotPatch)
	}
}

func TestProjectHandler_Delete_ServerError(t *testing.T) {
	mock := &mockProjectService{
		deleteFunc: func(ctx context.Context, id string) error { return errRemote },
	}
	h := NewProjectHandler(mock)
	req := httptest.NewRequest("DELETE", "/api/admin/projects/p1", nil)
	req.SetPathValue("id", "p1")
	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "delete_failed") {
		t.Errorf("expected delete_failed, got %s", rec.Body.String())
	}
}
