package service

import (
	"context"
	"errors"

	"github.com/codecraft/backend/internal/model"
	"github.com/codecraft/backend/internal/repository"
)

// ProfileService reads application profiles.
type ProfileService interface {
	// Get returns the profile, or nil without error when none exists.
	Get(ctx context.Context, id string) (*model.Profile, error)
	// RoleOf returns the role of the user, or "" when it has no profile.
	RoleOf(ctx context.Context, id string) (string, error)
}

type profileServiceImpl struct {
	repo repository.ProfileRepository
}

// NewProfileService creates a ProfileService backed by repo.
func NewProfileService(repo repository.ProfileRepository) ProfileService {
	return &profileServiceImpl{repo: repo}
}

func (s *profileServiceImpl) Get(ctx context.Context, id string) (*model.Profile, error) {
	p, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *profileServiceImpl) RoleOf(ctx context.Context, id string) (string, error) {
	p, err := s.Get(ctx, id)
	if err != nil || p == nil {
		return "", err
	}
	return p.Role, nil
}
