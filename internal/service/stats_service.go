package service

import (
	"context"

	"github.com/codecraft/backend/internal/fallback"
	"github.com/codecraft/backend/internal/model"
	"github.com/codecraft/backend/internal/repository"
)

// StatsService computes the admin dashboard counters.
type StatsService struct {
	projects     repository.ProjectRepository
	testimonials repository.TestimonialRepository
	inquiries    repository.InquiryRepository
	local        *fallback.InquiryLog
}

// NewStatsService creates a StatsService.
func NewStatsService(
	projects repository.ProjectRepository,
	testimonials repository.TestimonialRepository,
	inquiries repository.InquiryRepository,
	local *fallback.InquiryLog,
) *StatsService {
	return &StatsService{projects: projects, testimonials: testimonials, inquiries: inquiries, local: local}
}

// Dashboard runs one count query per collection. The local-fallback count
// never fails; an unreadable list counts as zero.
func (s *StatsService) Dashboard(ctx context.Context) (*model.DashboardStats, error) {
	var st model.DashboardStats
	var err error
	if st.Projects, err = s.projects.Count(ctx); err != nil {
		return nil, err
	}
	if st.Testimonials, err = s.testimonials.Count(ctx); err != nil {
		return nil, err
	}
	if st.Inquiries, err = s.inquiries.Count(ctx, ""); err != nil {
		return nil, err
	}
	if st.UnreadInquiries, err = s.inquiries.Count(ctx, model.InquiryUnread); err != nil {
		return nil, err
	}
	st.LocalInquiries = s.local.Count(ctx)
	return &st, nil
}
