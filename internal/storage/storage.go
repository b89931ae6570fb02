// Package storage uploads image files to an object store and returns the
// public URL they are served from.
package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/codecraft/backend/internal/config"
	"go.uber.org/zap"
)

// Storage は画像ファイルの保存・削除を抽象化するインターフェース。
// ローカルファイルシステム実装と S3 互換ストレージ実装がある。
type Storage interface {
	// Save はファイルを保存し、公開 URL を返す。
	// key はストレージ内の一意パス (例: "project-images/<uuid>.jpg")。
	Save(ctx context.Context, key string, data io.Reader, contentType string) (url string, err error)

	// Delete は key に対応するファイルを削除する。存在しない key は成功扱い。
	Delete(ctx context.Context, key string) error
}

// Open builds the Storage selected by cfg.Driver.
func Open(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (Storage, error) {
	switch cfg.Driver {
	case "", "local":
		return NewLocalStorage(cfg.LocalDir, cfg.URLPrefix), nil
	case "s3":
		return NewS3Storage(ctx, cfg, logger)
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", cfg.Driver)
	}
}
