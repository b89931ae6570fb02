package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Chdir(t.TempDir())

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "development", cfg.Env)
		assert.Equal(t, ":8080", cfg.Addr)
		assert.Equal(t, "sqlite", cfg.KV.Driver)
		assert.Equal(t, "./data/local.db", cfg.KV.SQLitePath)
		assert.Equal(t, "local", cfg.Storage.Driver)
		assert.Equal(t, 7*24*time.Hour, cfg.Session.TTL)
		assert.Equal(t, int64(2<<20), cfg.HTTP.MaxImageBytes)
		assert.False(t, cfg.Bypass.Enabled())
	})

	t.Run("env overrides nested keys", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("KV_DRIVER", "Redis")
		t.Setenv("KV_REDIS_ADDR", "redis:6380")
		t.Setenv("BYPASS_USERNAME", "owner")
		t.Setenv("BYPASS_PASSWORD", "s3cret")
		t.Setenv("HTTP_READ_TIMEOUT", "3s")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "redis", cfg.KV.Driver)
		assert.Equal(t, "redis:6380", cfg.KV.RedisAddr)
		assert.True(t, cfg.Bypass.Enabled())
		assert.Equal(t, 3*time.Second, cfg.HTTP.ReadTimeout)
	})

	t.Run("rejects unknown kv driver", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("KV_DRIVER", "etcd")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("s3 requires bucket", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("STORAGE_DRIVER", "s3")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("production requires a real secret", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("ENV", "production")

		_, err := Load()
		assert.Error(t, err)
	})
}
