package handler

import (
	"net/http"

	"github.com/codecraft/backend/internal/model"
	"github.com/codecraft/backend/internal/service"
)

// ProjectHandler はポートフォリオ プロジェクトの API を処理する
type ProjectHandler struct {
	projects service.ProjectService
}

// NewProjectHandler は ProjectHandler を生成する
func NewProjectHandler(projects service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

type projectRequest struct {
	Title        string   `json:"title" validate:"required"`
	Description  string   `json:"description"`
	ImageURL     *string  `json:"image_url"`
	Technologies []string `json:"technologies"`
}

// List は GET /api/projects を処理する
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projects.List(r.Context())
	if err != nil {
		writeServiceError(w, err, "list_failed")
		return
	}
	if projects == nil {
		projects = []*model.Project{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"projects": projects})
}

// Get は GET /api/projects/{id} を処理する
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.projects.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err, "get_failed")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Create は POST /api/admin/projects を処理する
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if !decodeBody(w, r, &req) {
		return
	}
	p := &model.Project{
		Title:        req.Title,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		Technologies: req.Technologies,
	}
	if p.ImageURL != nil && *p.ImageURL == "" {
		p.ImageURL = nil
	}
	if err := h.projects.Create(r.Context(), p); err != nil {
		writeServiceError(w, err, "create_failed")
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// Update は PUT /api/admin/projects/{id} を処理する。送信されたフィールドのみ更新する
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch model.ProjectPatch
	if !decodeBody(w, r, &patch) {
		return
	}
	p, err := h.projects.Update(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		writeServiceError(w, err, "update_failed")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Delete は DELETE /api/admin/projects/{id} を処理する
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.projects.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err, "delete_failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"ok": "true"})
}
