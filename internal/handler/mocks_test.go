package handler

import (
	"context"
	"errors"
	"io"

	"github.com/codecraft/backend/internal/model"
	"github.com/codecraft/backend/internal/service"
)

var errRemote = errors.New("dial tcp: connection refused")

// --- InquiryService ---

type mockInquiryService struct {
	submitFunc    func(ctx context.Context, in model.InquiryInput) *model.Inquiry
	listFunc      func(ctx context.Context) ([]*model.Inquiry, error)
	deleteFunc    func(ctx context.Context, id string) error
	setStatusFunc func(ctx context.Context, id, status string) error
}

func (m *mockInquiryService) Submit(ctx context.Context, in model.InquiryInput) *model.Inquiry {
	if m.submitFunc != nil {
		return m.submitFunc(ctx, in)
	}
	return &model.Inquiry{ID: "1", Name: in.Name, Email: in.Email, Message: in.Message, Status: model.InquiryUnread}
}

func (m *mockInquiryService) List(ctx context.Context) ([]*model.Inquiry, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

func (m *mockInquiryService) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockInquiryService) SetStatus(ctx context.Context, id, status string) error {
	if m.setStatusFunc != nil {
		return m.setStatusFunc(ctx, id, status)
	}
	return nil
}

// --- ProjectService ---

type mockProjectService struct {
	listFunc    func(ctx context.Context) ([]*model.Project, error)
	getByIDFunc func(ctx context.Context, id string) (*model.Project, error)
	createFunc  func(ctx context.Context, p *model.Project) error
	updateFunc  func(ctx context.Context, id string, patch model.ProjectPatch) (*model.Project, error)
	deleteFunc  func(ctx context.Context, id string) error
}

func (m *mockProjectService) List(ctx context.Context) ([]*model.Project, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

func (m *mockProjectService) GetByID(ctx context.Context, id string) (*model.Project, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockProjectService) Create(ctx context.Context, p *model.Project) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, p)
	}
	return nil
}

func (m *mockProjectService) Update(ctx context.Context, id string, patch model.ProjectPatch) (*model.Project, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, patch)
	}
	return nil, nil
}

func (m *mockProjectService) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

// --- TestimonialService ---

type mockTestimonialService struct {
	listFunc   func(ctx context.Context) ([]*model.Testimonial, error)
	createFunc func(ctx context.Context, t *model.Testimonial) error
	updateFunc func(ctx context.Context, id string, patch model.TestimonialPatch) (*model.Testimonial, error)
	deleteFunc func(ctx context.Context, id string) error
}

func (m *mockTestimonialService) List(ctx context.Context) ([]*model.Testimonial, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

func (m *mockTestimonialService) GetByID(ctx context.Context, id string) (*model.Testimonial, error) {
	return nil, nil
}

func (m *mockTestimonialService) Create(ctx context.Context, t *model.Testimonial) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, t)
	}
	return nil
}

func (m *mockTestimonialService) Update(ctx context.Context, id string, patch model.TestimonialPatch) (*model.Testimonial, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, patch)
	}
	return nil, nil
}

func (m *mockTestimonialService) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

// --- AuthService ---

type mockAuthService struct {
	signInFunc     func(ctx context.Context, email, password string) (*model.AuthSession, error)
	signUpFunc     func(ctx context.Context, email, password string) (*model.AuthSession, error)
	getSessionFunc func(ctx context.Context, token string) (*model.AuthSession, error)
	signOutFunc    func(ctx context.Context, token string) error
}

func (m *mockAuthService) SignInWithPassword(ctx context.Context, email, password string) (*model.AuthSession, error) {
	if m.signInFunc != nil {
		return m.signInFunc(ctx, email, password)
	}
	return nil, service.ErrInvalidCredentials
}

func (m *mockAuthService) SignUp(ctx context.Context, email, password string) (*model.AuthSession, error) {
	if m.signUpFunc != nil {
		return m.signUpFunc(ctx, email, password)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAuthService) GetSession(ctx context.Context, token string) (*model.AuthSession, error) {
	if m.getSessionFunc != nil {
		return m.getSessionFunc(ctx, token)
	}
	return nil, nil
}

func (m *mockAuthService) SignOut(ctx context.Context, token string) error {
	if m.signOutFunc != nil {
		return m.signOutFunc(ctx, token)
	}
	return nil
}

func (m *mockAuthService) OnAuthStateChange(fn service.AuthStateListener) func() {
	return func() {}
}

// --- ProfileReader ---

type mockProfiles struct {
	profiles map[string]*model.Profile
	err      error
}

func (m *mockProfiles) Get(ctx context.Context, id string) (*model.Profile, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.profiles[id], nil
}

// --- Storage ---

type mockStorage struct {
	saved       map[string][]byte
	contentType string
	saveErr     error
}

func (m *mockStorage) Save(ctx context.Context, key string, data io.Reader, contentType string) (string, error) {
	if m.saveErr != nil {
		return "", m.saveErr
	}
	b, err := io.ReadAll(data)
	if err != nil {
		return "", err
	}
	if m.saved == nil {
		m.saved = map[string][]byte{}
	}
	m.saved[key] = b
	m.contentType = contentType
	return "https://cdn.example.com/" + key, nil
}

func (m *mockStorage) Delete(ctx context.Context, key string) error {
	delete(m.saved, key)
	return nil
}
