package service

import (
	"context"
	"errors"
	"time"

	"github.com/codecraft/backend/internal/model"
	"github.com/codecraft/backend/internal/repository"
	"github.com/codecraft/backend/pkg/auth"
	"go.uber.org/zap"
)

var (
	ErrInvalidSession = errors.New("invalid_session")
	ErrSessionExpired = errors.New("session_expired")
)

// SessionService manages DB-backed user sessions.
// Implements auth.SessionValidator.
type SessionService struct {
	repo   repository.SessionRepository
	ttl    time.Duration
	now    func() time.Time
	logger *zap.Logger
}

// NewSessionService creates a SessionService.
func NewSessionService(repo repository.SessionRepository, logger *zap.Logger) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{repo: repo, ttl: auth.SessionDuration, now: time.Now, logger: logger.Named("session")}
}

// WithTTL overrides the session lifetime; non-positive values are ignored.
func (s *SessionService) WithTTL(ttl time.Duration) *SessionService {
	if ttl > 0 {
		s.ttl = ttl
	}
	return s
}

// CreateSession generates a new opaque token, stores it in DB, and returns the session.
func (s *SessionService) CreateSession(ctx context.Context, userID string) (*model.Session, error) {
	token, err := auth.GenerateSessionToken()
	if err != nil {
		s.logger.Error("token generation failed", zap.Error(err))
		return nil, err
	}
	now := s.now()
	session := &model.Session{
		Token:     token,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.repo.Create(ctx, session); err != nil {
		s.logger.Error("session insert failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	s.logger.Debug("session created",
		zap.String("user_id", userID),
		zap.String("token_prefix", tokenPrefix(token)),
		zap.Time("expires_at", session.ExpiresAt),
	)
	return session, nil
}

// FindSession returns the live session for token. Unknown tokens yield
// ErrInvalidSession; expired ones are deleted and yield ErrSessionExpired.
func (s *SessionService) FindSession(ctx context.Context, token string) (*model.Session, error) {
	session, err := s.repo.FindByToken(ctx, token)
	if errors.Is(err, repository.ErrNotFound) {
		s.logger.Debug("session not found", zap.String("token_prefix", tokenPrefix(token)))
		return nil, ErrInvalidSession
	}
	if err != nil {
		return nil, err
	}

	if s.now().After(session.ExpiresAt) {
		s.logger.Debug("session expired", zap.String("user_id", session.UserID))
		_ = s.repo.DeleteByToken(ctx, token)
		return nil, ErrSessionExpired
	}
	return session, nil
}

// ValidateSession validates a session token and returns the user ID.
// Implements auth.SessionValidator.
func (s *SessionService) ValidateSession(ctx context.Context, token string) (string, error) {
	session, err := s.FindSession(ctx, token)
	if err != nil {
		return "", err
	}
	return session.UserID, nil
}

// DeleteSession removes a session (logout).
func (s *SessionService) DeleteSession(ctx context.Context, token string) error {
	return s.repo.DeleteByToken(ctx, token)
}

// DeleteAllSessions removes all sessions for a user (forced logout).
func (s *SessionService) DeleteAllSessions(ctx context.Context, userID string) error {
	return s.repo.DeleteByUserID(ctx, userID)
}

func tokenPrefix(token string) string {
	if len(token) > 8 {
		return token[:8]
	}
	return token
}
