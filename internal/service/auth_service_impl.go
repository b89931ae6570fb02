package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/codecraft/backend/internal/model"
	"github.com/codecraft/backend/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthServiceImpl は AuthService の実装
type AuthServiceImpl struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	sessions    *SessionService
	cost        int
	logger      *zap.Logger

	mu        sync.Mutex
	nextID    int
	listeners map[int]AuthStateListener
}

// NewAuthService は AuthServiceImpl を生成する（DI: UserRepository, ProfileRepository, SessionService を注入）
func NewAuthService(
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	sessions *SessionService,
	logger *zap.Logger,
) *AuthServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthServiceImpl{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		sessions:    sessions,
		cost:        bcrypt.DefaultCost,
		logger:      logger.Named("auth"),
		listeners:   make(map[int]AuthStateListener),
	}
}

// SignInWithPassword はメールアドレスとパスワードで認証し、新しいセッションを発行する
func (s *AuthServiceImpl) SignInWithPassword(ctx context.Context, email, password string) (*model.AuthSession, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	u, err := s.userRepo.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		s.logger.Info("sign-in rejected: unknown email")
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		s.logger.Info("sign-in rejected: password mismatch", zap.String("user_id", u.ID))
		return nil, ErrInvalidCredentials
	}

	as, err := s.openSession(ctx, u)
	if err != nil {
		return nil, err
	}
	s.logger.Info("signed in", zap.String("user_id", u.ID))
	s.emit(model.EventSignedIn, as)
	return as, nil
}

// SignUp はアカウントを作成してサインインする。最初のプロフィールのみ admin になる
func (s *AuthServiceImpl) SignUp(ctx context.Context, email, password string) (*model.AuthSession, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	n, err := s.profileRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count profiles: %w", err)
	}
	role := model.RoleUser
	if n == 0 {
		role = model.RoleAdmin
	}

	u := &model.User{Email: email, PasswordHash: string(hash)}
	if err := s.userRepo.Create(ctx, u, role); err != nil {
		if repository.KindOf(err) == repository.KindConflict {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.logger.Info("new user created", zap.String("user_id", u.ID), zap.String("role", role))

	as, err := s.openSession(ctx, u)
	if err != nil {
		return nil, err
	}
	s.emit(model.EventSignedIn, as)
	return as, nil
}

// GetSession はトークンに対応する有効なセッションを返す。無効・期限切れは nil
func (s *AuthServiceImpl) GetSession(ctx context.Context, token string) (*model.AuthSession, error) {
	if token == "" {
		return nil, nil
	}
	sess, err := s.sessions.FindSession(ctx, token)
	if errors.Is(err, ErrInvalidSession) || errors.Is(err, ErrSessionExpired) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	u, err := s.userRepo.FindByID(ctx, sess.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &model.AuthSession{Token: sess.Token, User: *u, ExpiresAt: sess.ExpiresAt}, nil
}

// SignOut はセッションを削除し、購読者に SIGNED_OUT を通知する
func (s *AuthServiceImpl) SignOut(ctx context.Context, token string) error {
	if token != "" {
		if err := s.sessions.DeleteSession(ctx, token); err != nil {
			return err
		}
	}
	s.emit(model.EventSignedOut, nil)
	return nil
}

func (s *AuthServiceImpl) OnAuthStateChange(fn AuthStateListener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

func (s *AuthServiceImpl) openSession(ctx context.Context, u *model.User) (*model.AuthSession, error) {
	sess, err := s.sessions.CreateSession(ctx, u.ID)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return &model.AuthSession{Token: sess.Token, User: *u, ExpiresAt: sess.ExpiresAt}, nil
}

// emit calls listeners outside the lock so they may unsubscribe themselves.
func (s *AuthServiceImpl) emit(event model.AuthEvent, as *model.AuthSession) {
	s.mu.Lock()
	fns := make([]AuthStateListener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(event, as)
	}
}

var _ AuthService = (*AuthServiceImpl)(nil)
