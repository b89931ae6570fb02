package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/codecraft/backend/internal/model"
	"github.com/codecraft/backend/internal/repository"
)

// TestimonialService manages the client quotes shown on the landing page.
type TestimonialService interface {
	List(ctx context.Context) ([]*model.Testimonial, error)
	GetByID(ctx context.Context, id string) (*model.Testimonial, error)
	Create(ctx context.Context, t *model.Testimonial) error
	Update(ctx context.Context, id string, patch model.TestimonialPatch) (*model.Testimonial, error)
	Delete(ctx context.Context, id string) error
}

type testimonialServiceImpl struct {
	repo repository.TestimonialRepository
}

// NewTestimonialService creates a TestimonialService backed by repo.
func NewTestimonialService(repo repository.TestimonialRepository) TestimonialService {
	return &testimonialServiceImpl{repo: repo}
}

func (s *testimonialServiceImpl) List(ctx context.Context) ([]*model.Testimonial, error) {
	return s.repo.List(ctx)
}

func (s *testimonialServiceImpl) GetByID(ctx context.Context, id string) (*model.Testimonial, error) {
	return s.repo.GetByID(ctx, id)
}

// Create requires the client name and the quote itself.
func (s *testimonialServiceImpl) Create(ctx context.Context, t *model.Testimonial) error {
	if strings.TrimSpace(t.ClientName) == "" {
		return fmt.Errorf("%w: client_name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(t.Content) == "" {
		return fmt.Errorf("%w: content is required", ErrInvalidInput)
	}
	return s.repo.Create(ctx, t)
}

func (s *testimonialServiceImpl) Update(ctx context.Context, id string, patch model.TestimonialPatch) (*model.Testimonial, error) {
	if patch.ClientName != nil && strings.TrimSpace(*patch.ClientName) == "" {
		return nil, fmt.Errorf("%w: client_name must not be empty", ErrInvalidInput)
	}
	if patch.Content != nil && strings.TrimSpace(*patch.Content) == "" {
		return nil, fmt.Errorf("%w: content must not be empty", ErrInvalidInput)
	}
	return s.repo.Update(ctx, id, patch)
}

func (s *testimonialServiceImpl) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
