package repository

import (
	"context"

	"github.com/codecraft/backend/internal/model"
)

// DB は DB 接続の生存確認を行うインターフェース
type DB interface {
	Ping(ctx context.Context) error
}

// UserRepository はユーザー永続化のインターフェース
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// Create inserts the user and its profile row with the given role in one
	// transaction, populating user.ID and user.CreatedAt.
	Create(ctx context.Context, user *model.User, role string) error
}

// ProfileRepository reads application profiles.
type ProfileRepository interface {
	FindByID(ctx context.Context, id string) (*model.Profile, error)
	Count(ctx context.Context) (int, error)
}
