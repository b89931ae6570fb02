package handler

import (
	"net/http"

	"github.com/codecraft/backend/internal/model"
	"github.com/codecraft/backend/internal/service"
	"go.uber.org/zap"
)

// InquiryHandler handles contact form submission and the admin inbox.
type InquiryHandler struct {
	inquiries service.InquiryService
	logger    *zap.Logger
}

// NewInquiryHandler creates an InquiryHandler with the given service.
func NewInquiryHandler(inquiries service.InquiryService, logger *zap.Logger) *InquiryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InquiryHandler{inquiries: inquiries, logger: logger}
}

// Submit handles POST /api/inquiries. name, email and message are required.
// The visitor always gets 201 once the input is valid.
func (h *InquiryHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req model.InquiryInput
	if !decodeBody(w, r, &req) {
		return
	}

	h.inquiries.Submit(r.Context(), req)
	writeJSON(w, http.StatusCreated, map[string]string{"ok": "true"})
}

// adminListResponse is the JSON response for GET /api/admin/inquiries.
type adminListResponse struct {
	Inquiries []*model.Inquiry `json:"inquiries"`
	Warning   string           `json:"warning,omitempty"`
}

// AdminList handles GET /api/admin/inquiries. When the remote store is
// unreachable the local entries are still returned, with a warning.
func (h *InquiryHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	items, err := h.inquiries.List(r.Context())
	if err != nil && len(items) == 0 {
		h.logger.Warn("inquiry list unavailable", zap.Error(err))
		writeError(w, http.StatusBadGateway, "remote_unavailable")
		return
	}

	// Return [] not null for empty lists
	if items == nil {
		items = []*model.Inquiry{}
	}
	resp := adminListResponse{Inquiries: items}
	if err != nil {
		resp.Warning = "remote_unavailable"
	}
	writeJSON(w, http.StatusOK, resp)
}

type statusRequest struct {
	Status string `json:"status" validate:"required,oneof=unread read"`
}

// SetStatus handles PATCH /api/admin/inquiries/{id}/status.
func (h *InquiryHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.inquiries.SetStatus(r.Context(), r.PathValue("id"), req.Status); err != nil {
		writeServiceError(w, err, "update_failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"ok": "true"})
}

// Delete handles DELETE /api/admin/inquiries/{id}. Deleting an unknown id
// succeeds.
func (h *InquiryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.inquiries.Delete(r.Context(), r.PathValue("id")); err != nil {
		h.logger.Error("inquiry delete failed", zap.String("id", r.PathValue("id")), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "delete_failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"ok": "true"})
}
