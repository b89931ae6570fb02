package service

import (
	"context"

	"github.com/codecraft/backend/internal/model"
	"github.com/codecraft/backend/internal/repository"
)

// ---------------------------------------------------------------------------
// mockInquiryRepository
// ---------------------------------------------------------------------------

type mockInquiryRepository struct {
	createFunc       func(ctx context.Context, in *model.Inquiry) error
	listFunc         func(ctx context.Context) ([]*model.Inquiry, error)
	deleteFunc       func(ctx context.Context, id string) error
	updateStatusFunc func(ctx context.Context, id, status string) error
	countFunc        func(ctx context.Context, status string) (int, error)
}

func (m *mockInquiryRepository) Create(ctx context.Context, in *model.Inquiry) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, in)
	}
	return nil
}

func (m *mockInquiryRepository) List(ctx context.Context) ([]*model.Inquiry, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

func (m *mockInquiryRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockInquiryRepository) UpdateStatus(ctx context.Context, id, status string) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status)
	}
	return nil
}

func (m *mockInquiryRepository) Count(ctx context.Context, status string) (int, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx, status)
	}
	return 0, nil
}

// ---------------------------------------------------------------------------
// mockProjectRepository
// ---------------------------------------------------------------------------

type mockProjectRepository struct {
	listFunc    func(ctx context.Context) ([]*model.Project, error)
	getByIDFunc func(ctx context.Context, id string) (*model.Project, error)
	createFunc  func(ctx context.Context, project *model.Project) error
	updateFunc  func(ctx context.Context, id string, patch model.ProjectPatch) (*model.Project, error)
	deleteFunc  func(ctx context.Context, id string) error
	countFunc   func(ctx context.Context) (int, error)
}

func (m *mockProjectRepository) List(ctx context.Context) ([]*model.Project, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

func (m *mockProjectRepository) GetByID(ctx context.Context, id string) (*model.Project, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockProjectRepository) Create(ctx context.Context, project *model.Project) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, project)
	}
	return nil
}

func (m *mockProjectRepository) Update(ctx context.Context, id string, patch model.ProjectPatch) (*model.Project, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, patch)
	}
	return nil, nil
}

func (m *mockProjectRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockProjectRepository) Count(ctx context.Context) (int, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

// ---------------------------------------------------------------------------
// mockTestimonialRepository
// ---------------------------------------------------------------------------

type mockTestimonialRepository struct {
	listFunc   func(ctx context.Context) ([]*model.Testimonial, error)
	createFunc func(ctx context.Context, t *model.Testimonial) error
	updateFunc func(ctx context.Context, id string, patch model.TestimonialPatch) (*model.Testimonial, error)
	countFunc  func(ctx context.Context) (int, error)
}

func (m *mockTestimonialRepository) List(ctx context.Context) ([]*model.Testimonial, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

func (m *mockTestimonialRepository) GetByID(ctx context.Context, id string) (*model.Testimonial, error) {
	return nil, repository.ErrNotFound
}

func (m *mockTestimonialRepository) Create(ctx context.Context, t *model.Testimonial) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, t)
	}
	return nil
}

func (m *mockTestimonialRepository) Update(ctx context.Context, id string, patch model.TestimonialPatch) (*model.Testimonial, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, patch)
	}
	return nil, nil
}

func (m *mockTestimonialRepository) Delete(ctx context.Context, id string) error {
	return nil
}

func (m *mockTestimonialRepository) Count(ctx context.Context) (int, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

// ---------------------------------------------------------------------------
// mockUserRepository / mockProfileRepository / mockSessionRepository
// ---------------------------------------------------------------------------

type mockUserRepository struct {
	findByIDFunc    func(ctx context.Context, id string) (*model.User, error)
	findByEmailFunc func(ctx context.Context, email string) (*model.User, error)
	createFunc      func(ctx context.Context, user *model.User, role string) error
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.User, role string) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user, role)
	}
	return nil
}

type mockProfileRepository struct {
	findByIDFunc func(ctx context.Context, id string) (*model.Profile, error)
	countFunc    func(ctx context.Context) (int, error)
}

func (m *mockProfileRepository) FindByID(ctx context.Context, id string) (*model.Profile, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockProfileRepository) Count(ctx context.Context) (int, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

type mockSessionRepository struct {
	createFunc         func(ctx context.Context, s *model.Session) error
	findByTokenFunc    func(ctx context.Context, token string) (*model.Session, error)
	deleteByTokenFunc  func(ctx context.Context, token string) error
	deleteByUserIDFunc func(ctx context.Context, userID string) error
}

func (m *mockSessionRepository) Create(ctx context.Context, s *model.Session) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, s)
	}
	return nil
}

func (m *mockSessionRepository) FindByToken(ctx context.Context, token string) (*model.Session, error) {
	if m.findByTokenFunc != nil {
		return m.findByTokenFunc(ctx, token)
	}
	return nil, repository.ErrNotFound
}

func (m *mockSessionRepository) DeleteByToken(ctx context.Context, token string) error {
	if m.deleteByTokenFunc != nil {
		return m.deleteByTokenFunc(ctx, token)
	}
	return nil
}

func (m *mockSessionRepository) DeleteByUserID(ctx context.Context, userID string) error {
	if m.deleteByUserIDFunc != nil {
		return m.deleteByUserIDFunc(ctx, userID)
	}
	return nil
}

// networkErr is a remote failure as the repositories report it.
var networkErr = &repository.Error{Op: "test", Kind: repository.KindNetwork, Err: context.DeadlineExceeded}
