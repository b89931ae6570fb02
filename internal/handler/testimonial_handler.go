package handler

import (
	"net/http"

	"github.com/codecraft/backend/internal/model"
	"github.com/codecraft/backend/internal/service"
)

// TestimonialHandler serves the testimonial endpoints.
type TestimonialHandler struct {
	testimonials service.TestimonialService
}

func NewTestimonialHandler(testimonials service.TestimonialService) *TestimonialHandler {
	return &TestimonialHandler{testimonials: testimonials}
}

type testimonialRequest struct {
	ClientName string  `json:"client_name" validate:"required"`
	Company    *string `json:"company"`
	Content    string  `json:"content" validate:"required"`
}

// List handles GET /api/testimonials.
func (h *TestimonialHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.testimonials.List(r.Context())
	if err != nil {
		writeServiceError(w, err, "list_failed")
		return
	}
	if items == nil {
		items = []*model.Testimonial{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"testimonials": items})
}

// Create handles POST /api/admin/testimonials.
func (h *TestimonialHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req testimonialRequest
	if !decodeBody(w, r, &req) {
		return
	}
	t := &model.Testimonial{ClientName: req.ClientName, Company: req.Company, Content: req.Content}
	if t.Company != nil && *t.Company == "" {
		t.Company = nil
	}
	if err := h.testimonials.Create(r.Context(), t); err != nil {
		writeServiceError(w, err, "create_failed")
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

// Update handles PUT /api/admin/testimonials/{id}.
func (h *TestimonialHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch model.TestimonialPatch
	if !decodeBody(w, r, &patch) {
		return
	}
	t, err := h.testimonials.Update(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		writeServiceError(w, err, "update_failed")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// Delete handles DELETE /api/admin/testimonials/{id}.
func (h *TestimonialHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.testimonials.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err, "delete_failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"ok": "true"})
}
