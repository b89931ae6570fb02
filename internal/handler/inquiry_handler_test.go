package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/codecraft/backend/internal/model"
	"github.com/codecraft/backend/internal/repository"
	"github.com/codecraft/backend/internal/service"
)

func TestInquiryHandler_Submit_Created(t *testing.T) {
	var got model.InquiryInput
	mock := &mockInquiryService{
		submitFunc: func(ctx context.Context, in model.InquiryInput) *model.Inquiry {
			got = in
			return &model.Inquiry{ID: "local-1", Status: model.InquiryUnread}
		},
	}
	h := NewInquiryHandler(mock, nil)

	body := `{"name":" Alice ","email":"alice@example.com","message":"Need a site"}`
	req := httptest.NewRequest("POST", "/api/inquiries", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Submit(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if got.Name != "Alice" || got.Email != "alice@example.com" || got.Message != "Need a site" {
		t.Errorf("unexpected input passed to service: %+v", got)
	}
}

// 両方のストアが失敗しても訪問者には成功を返す
func TestInquiryHandler_Submit_CreatedEvenWhenNothingStored(t *testing.T) {
	mock := &mockInquiryService{
		submitFunc: func(ctx context.Context, in model.InquiryInput) *model.Inquiry { return nil },
	}
	h := NewInquiryHandler(mock, nil)

	body := `{"name":"Bob","email":"bob@example.com","message":"hi"}`
	req := httptest.NewRequest("POST", "/api/inquiries", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Submit(rec, req)

	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
}

func TestInquiryHandler_Submit_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
		code string
	}{
		{"invalid json", `{`, "invalid_json"},
		{"missing name", `{"email":"a@b.c","message":"m"}`, "name_required"},
		{"blank name", `{"name":"   ","email":"a@b.c","message":"m"}`, "name_required"},
		{"missing email", `{"name":"n","message":"m"}`, "email_required"},
		{"blank email", `{"name":"n","email":"\t ","message":"m"}`, "email_required"},
		{"missing message", `{"name":"n","email":"a@b.c"}`, "message_required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			mock := &mockInquiryService{
				submitFunc: func(ctx context.Context, in model.InquiryInput) *model.Inquiry {
					called = true
					return nil
				},
			}
			h := NewInquiryHandler(mock, nil)
			req := httptest.NewRequest("POST", "/api/inquiries", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.Submit(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			var resp map[string]string
			_ = json.NewDecoder(rec.Body).Decode(&resp)
			if resp["error"] != tt.code {
				t.Errorf("expected error %q, got %q", tt.code, resp["error"])
			}
			if called {
				t.Error("service must not be called for invalid input")
			}
		})
	}
}

func TestInquiryHandler_AdminList(t *testing.T) {
	mock := &mockInquiryService{
		listFunc: func(ctx context.Context) ([]*model.Inquiry, error) {
			return []*model.Inquiry{{ID: "r1"}, {ID: "local-1"}}, nil
		},
	}
	h := NewInquiryHandler(mock, nil)
	rec := httptest.NewRecorder()
	h.AdminList(rec, httptest.NewRequest("GET", "/api/admin/inquiries", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp adminListResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Inquiries) != 2 || resp.Inquiries[0].ID != "r1" || resp.Inquiries[1].ID != "local-1" {
		t.Errorf("unexpected inquiries: %+v", resp.Inquiries)
	}
	if resp.Warning != "" {
		t.Errorf("expected no warning, got %q", resp.Warning)
	}
}

func TestInquiryHandler_AdminList_EmptyIsArray(t *testing.T) {
	h := NewInquiryHandler(&mockInquiryService{}, nil)
	rec := httptest.NewRecorder()
	h.AdminList(rec, httptest.NewRequest("GET", "/api/admin/inquiries", nil))

	if !strings.Contains(rec.Body.String(), `"inquiries":[]`) {
		t.Errorf("expected empty array, got %s", rec.Body.String())
	}
}

func TestInquiryHandler_AdminList_RemoteDownWithLocal(t *testing.T) {
	mock := &mockInquiryService{
		listFunc: func(ctx context.Context) ([]*model.Inquiry, error) {
			return []*model.Inquiry{{ID: "local-1"}}, errRemote
		},
	}
	h := NewInquiryHandler(mock, nil)
	rec := httptest.NewRecorder()
	h.AdminList(rec, httptest.NewRequest("GET", "/api/admin/inquiries", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp adminListResponse
	_ = json.NewDecoder(rec.Body).Decode(&resp)
	if len(resp.Inquiries) != 1 || resp.Warning != "remote_unavailable" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestInquiryHandler_AdminList_RemoteDownNoLocal(t *testing.T) {
	mock := &mockInquiryService{
		listFunc: func(ctx context.Context) ([]*model.Inquiry, error) {
			return nil, errRemote
		},
	}
	h := NewInquiryHandler(mock, nil)
	rec := httptest.NewRecorder()
	h.AdminList(rec, httptest.NewRequest("GET", "/api/admin/inquiries", nil))

	if rec.Code != http.StatusBadGateway {
		t.Errorf("expected 502, got %d", rec.Code)
	}
}

func TestInquiryHandler_SetStatus(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{"ok", `{"status":"read"}`, nil, http.StatusOK},
		{"bad status", `{"status":"archived"}`, nil, http.StatusBadRequest},
		{"service rejects", `{"status":"read"}`, service.ErrInvalidInput, http.StatusBadRequest},
		{"not found", `{"status":"unread"}`, fmt.Errorf("wrap: %w", repository.ErrNotFound), http.StatusNotFound},
		{"remote down", `{"status":"read"}`, errRemote, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotID, gotStatus string
			mock := &mockInquiryService{
				setStatusFunc: func(ctx context.Context, id, status string) error {
					gotID, gotStatus = id, status
					return tt.err
				},
			}
			h := NewInquiryHandler(mock, nil)
			req := httptest.NewRequest("PATCH", "/api/admin/inquiries/local-7/status", bytes.NewBufferString(tt.body))
			req.SetPathValue("id", "local-7")
			rec := httptest.NewRecorder()
			h.SetStatus(rec, req)

			if rec.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, rec.Code)
			}
			if tt.status == http.StatusOK && (gotID != "local-7" || gotStatus != "read") {
				t.Errorf("unexpected call: id=%q status=%q", gotID, gotStatus)
			}
		})
	}
}

func TestInquiryHandler_Delete(t *testing.T) {
	var gotID string
	mock := &mockInquiryService{
		deleteFunc: func(ctx context.Context, id string) error {
			gotID = id
			return nil
		},
	}
	h := NewInquiryHandler(mock, nil)
	req := httptest.NewRequest("DELETE", "/api/admin/inquiries/abc", nil)
	req.SetPathValue("id", "abc")
	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if gotID != "abc" {
		t.Errorf("expected id abc, got %q", gotID)
	}
}

func TestInquiryHandler_Delete_Error(t *testing.T) {
	mock := &mockInquiryService{
		deleteFunc: func(ctx context.Context, id string) error { return errRemote },
	}
	h := NewInquiryHandler(mock, nil)
	req := httptest.NewRequest("DELETE", "/api/admin/inquiries/abc", nil)
	req.SetPathValue("id", "abc")
	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
}
