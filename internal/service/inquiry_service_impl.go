package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/codecraft/backend/internal/fallback"
	"github.com/codecraft/backend/internal/model"
	"github.com/codecraft/backend/internal/repository"
	"go.uber.org/zap"
)

// inquiryServiceImpl is the production implementation of InquiryService.
type inquiryServiceImpl struct {
	repo   repository.InquiryRepository
	local  *fallback.InquiryLog
	logger *zap.Logger
}

// NewInquiryService creates an InquiryService backed by the remote repository
// and the local-fallback log.
func NewInquiryService(repo repository.InquiryRepository, local *fallback.InquiryLog, logger *zap.Logger) InquiryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &inquiryServiceImpl{repo: repo, local: local, logger: logger.Named("inquiries")}
}

func (s *inquiryServiceImpl) Submit(ctx context.Context, in model.InquiryInput) *model.Inquiry {
	rec := &model.Inquiry{
		Name:    in.Name,
		Email:   in.Email,
		Message: in.Message,
		Status:  model.InquiryUnread,
	}
	err := s.repo.Create(ctx, rec)
	if err == nil {
		return rec
	}

	s.logger.Warn("remote insert failed, storing inquiry locally",
		zap.String("kind", repository.KindOf(err).String()),
		zap.Error(err),
	)
	// a cancelled request must not drop the inquiry
	local, lerr := s.local.Append(context.WithoutCancel(ctx), in)
	if lerr != nil {
		s.logger.Error("local fallback append failed, inquiry dropped",
			zap.String("email", in.Email),
			zap.Error(lerr),
		)
		return nil
	}
	s.logger.Info("inquiry stored locally", zap.String("id", local.ID))
	return local
}

func (s *inquiryServiceImpl) List(ctx context.Context) ([]*model.Inquiry, error) {
	remote, remoteErr := s.repo.List(ctx)
	if remoteErr != nil {
		s.logger.Warn("remote inquiry list failed, returning local entries only",
			zap.String("kind", repository.KindOf(remoteErr).String()),
			zap.Error(remoteErr),
		)
		remote = nil
	}
	local := s.local.List(ctx)

	out := make([]*model.Inquiry, 0, len(remote)+len(local))
	out = append(out, remote...)
	out = append(out, local...)
	return out, remoteErr
}

func (s *inquiryServiceImpl) Delete(ctx context.Context, id string) error {
	if !fallback.IsLocalID(id) {
		err := s.repo.Delete(ctx, id)
		if err == nil {
			return nil
		}
		s.logger.Warn("remote inquiry delete failed, checking local entries",
			zap.String("id", id),
			zap.String("kind", repository.KindOf(err).String()),
			zap.Error(err),
		)
	}
	if err := s.local.Remove(ctx, id); err != nil {
		return fmt.Errorf("remove local inquiry %s: %w", id, err)
	}
	return nil
}

func (s *inquiryServiceImpl) SetStatus(ctx context.Context, id, status string) error {
	if !model.ValidInquiryStatus(status) {
		return fmt.Errorf("%w: status must be %q or %q", ErrInvalidInput, model.InquiryUnread, model.InquiryRead)
	}
	if fallback.IsLocalID(id) {
		if err := s.local.SetStatus(ctx, id, status); err != nil {
			if errors.Is(err, fallback.ErrNotFound) {
				return repository.ErrNotFound
			}
			return err
		}
		return nil
	}
	return s.repo.UpdateStatus(ctx, id, status)
}
