package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/codecraft/backend/internal/config"
	"github.com/codecraft/backend/internal/model"
	"github.com/codecraft/backend/pkg/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubValidator struct{ userID string }

func (s stubValidator) ValidateSession(ctx context.Context, token string) (string, error) {
	if s.userID == "" {
		return "", errors.New("invalid_session")
	}
	return s.userID, nil
}

type stubRoles struct{ role string }

func (s stubRoles) RoleOf(ctx context.Context, id string) (string, error) {
	return s.role, nil
}

var gateSecret = auth.SessionSecretBytes("test-secret")

func TestGate_BypassLogin(t *testing.T) {
	g := NewGate(stubValidator{}, stubRoles{}, testBypass, gateSecret)

	token, ok := g.BypassLogin("owner", "letmein")
	require.True(t, ok)

	id, err := g.ValidateSession(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, BypassUserID, id)

	role, err := g.RoleOf(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, role)

	_, ok = g.BypassLogin("owner", "nope")
	assert.False(t, ok)
}

func TestGate_BypassTokenExpires(t *testing.T) {
	issued := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	g := NewGate(stubValidator{}, stubRoles{}, testBypass, gateSecret).WithTTL(time.Hour)
	g.now = func() time.Time { return issued }

	token, ok := g.BypassLogin("owner", "letmein")
	require.True(t, ok)

	g.now = func() time.Time { return issued.Add(59 * time.Minute) }
	id, err := g.ValidateSession(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, BypassUserID, id)

	g.now = func() time.Time { return issued.Add(time.Hour) }
	_, err = g.ValidateSession(context.Background(), token)
	assert.ErrorIs(t, err, errBypassExpired)
}

func TestGate_BypassTokenWithoutExpiryRejected(t *testing.T) {
	g := NewGate(stubValidator{}, stubRoles{}, testBypass, gateSecret)

	legacy := auth.CreateSessionToken(BypassUserID, gateSecret)
	_, err := g.ValidateSession(context.Background(), legacy)
	assert.Error(t, err)

	garbled := auth.CreateSessionToken(BypassUserID+"|soon", gateSecret)
	_, err = g.ValidateSession(context.Background(), garbled)
	assert.Error(t, err)
}

func TestGate_DisabledBypass(t *testing.T) {
	g := NewGate(stubValidator{}, stubRoles{role: model.RoleUser}, NewBypass(config.BypassConfig{}), gateSecret)

	_, ok := g.BypassLogin("", "")
	assert.False(t, ok, "empty credential must never match")

	forged := auth.CreateSessionToken(BypassUserID, gateSecret)
	_, err := g.ValidateSession(context.Background(), forged)
	assert.Error(t, err)
}

func TestGate_DelegatesProviderTokens(t *testing.T) {
	g := NewGate(stubValidator{userID: "u1"}, stubRoles{role: model.RoleUser}, testBypass, gateSecret)

	id, err := g.ValidateSession(context.Background(), "opaque-token")
	require.NoError(t, err)
	assert.Equal(t, "u1", id)

	role, err := g.RoleOf(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, role)
}
