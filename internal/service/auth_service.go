package service

import (
	"context"
	"errors"

	"github.com/codecraft/backend/internal/model"
)

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrEmailTaken         = errors.New("email_taken")
)

// AuthStateListener receives provider change notifications. session is nil
// for EventSignedOut.
type AuthStateListener = func(event model.AuthEvent, session *model.AuthSession)

// AuthService は認証プロバイダのインターフェース（メール + パスワード）
type AuthService interface {
	SignInWithPassword(ctx context.Context, email, password string) (*model.AuthSession, error)
	// SignUp creates the account and signs it in. The very first account
	// becomes an admin.
	SignUp(ctx context.Context, email, password string) (*model.AuthSession, error)
	// GetSession returns the live session for token, or nil when there is none.
	GetSession(ctx context.Context, token string) (*model.AuthSession, error)
	SignOut(ctx context.Context, token string) error
	// OnAuthStateChange registers fn and returns a function that removes it.
	OnAuthStateChange(fn AuthStateListener) (unsubscribe func())
}
