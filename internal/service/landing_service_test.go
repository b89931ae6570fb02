package service

import (
	"context"
	"testing"

	"github.com/codecraft/backend/internal/model"
)

func TestLandingService_Services_ReturnsCopy(t *testing.T) {
	svc := NewLandingService(NewProjectService(&mockProjectRepository{}), NewTestimonialService(&mockTestimonialRepository{}))

	got := svc.Services()
	if len(got) != 3 {
		t.Fatalf("expected 3 services, got %d", len(got))
	}
	got[0].Benefits[0] = "mutated"
	if svc.Services()[0].Benefits[0] == "mutated" {
		t.Error("catalog should not be mutable through Services")
	}
}

func TestLandingService_Landing(t *testing.T) {
	projects := NewProjectService(&mockProjectRepository{
		listFunc: func(ctx context.Context) ([]*model.Project, error) {
			return []*model.Project{{ID: "p1"}}, nil
		},
	})
	testimonials := NewTestimonialService(&mockTestimonialRepository{
		listFunc: func(ctx context.Context) ([]*model.Testimonial, error) {
			return []*model.Testimonial{{ID: "t1"}, {ID: "t2"}}, nil
		},
	})
	svc := NewLandingService(projects, testimonials)

	got, err := svc.Landing(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Projects) != 1 || len(got.Testimonials) != 2 || len(got.Services) != 3 {
		t.Errorf("unexpected landing payload: %+v", got)
	}
}

func TestLandingService_Landing_PropagatesError(t *testing.T) {
	projects := NewProjectService(&mockProjectRepository{
		listFunc: func(ctx context.Context) ([]*model.Project, error) {
			return nil, networkErr
		},
	})
	svc := NewLandingService(projects, NewTestimonialService(&mockTestimonialRepository{}))

	if _, err := svc.Landing(context.Background()); err == nil {
		t.Error("expected error")
	}
}
