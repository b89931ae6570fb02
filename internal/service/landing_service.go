package service

import (
	"context"

	"github.com/codecraft/backend/internal/model"
)

// serviceCatalog is the fixed list of offerings rendered on the landing page.
var serviceCatalog = []model.Service{
	{
		Title:       "Website Building",
		Description: "Custom, responsive websites designed to convert visitors into customers. We use the latest frameworks for speed and SEO.",
		Benefits:    []string{"SEO Optimized", "Mobile Responsive", "Custom Design"},
	},
	{
		Title:       "App Development",
		Description: "Powerful iOS and Android applications that provide a seamless user experience and drive engagement.",
		Benefits:    []string{"Cross-platform", "Offline Support", "Push Notifications"},
	},
	{
		Title:       "Maintenance & Monitoring",
		Description: "Continuous support to ensure your digital assets are secure, updated, and performing at their best.",
		Benefits:    []string{"24/7 Monitoring", "Security Patches", "Performance Tuning"},
	},
}

// LandingService assembles the public landing page payload.
type LandingService struct {
	projects     ProjectService
	testimonials TestimonialService
}

// NewLandingService creates a LandingService.
func NewLandingService(projects ProjectService, testimonials TestimonialService) *LandingService {
	return &LandingService{projects: projects, testimonials: testimonials}
}

// Services returns a copy of the service catalog.
func (s *LandingService) Services() []model.Service {
	out := make([]model.Service, len(serviceCatalog))
	for i, svc := range serviceCatalog {
		svc.Benefits = append([]string(nil), svc.Benefits...)
		out[i] = svc
	}
	return out
}

// Landing returns the catalog together with every project and testimonial.
func (s *LandingService) Landing(ctx context.Context) (*model.Landing, error) {
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, err
	}
	testimonials, err := s.testimonials.List(ctx)
	if err != nil {
		return nil, err
	}
	return &model.Landing{
		Services:     s.Services(),
		Projects:     projects,
		Testimonials: testimonials,
	}, nil
}
