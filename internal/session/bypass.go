package session

import (
	"crypto/subtle"
	"time"

	"github.com/codecraft/backend/internal/config"
	"github.com/codecraft/backend/internal/model"
)

// BypassUserID is the fixed identity of the locally-issued admin session.
const BypassUserID = "local-admin"

// Bypass is the configured local admin credential.
type Bypass struct {
	cfg config.BypassConfig
}

// NewBypass wraps cfg. An unconfigured credential never matches.
func NewBypass(cfg config.BypassConfig) Bypass {
	return Bypass{cfg: cfg}
}

// Enabled reports whether a credential is configured.
func (b Bypass) Enabled() bool {
	return b.cfg.Enabled()
}

// Match compares username and password in constant time.
func (b Bypass) Match(username, password string) bool {
	if !b.Enabled() {
		return false
	}
	u := subtle.ConstantTimeCompare([]byte(username), []byte(b.cfg.Username))
	p := subtle.ConstantTimeCompare([]byte(password), []byte(b.cfg.Password))
	return u&p == 1
}

// User returns the fixed admin identity.
func (b Bypass) User() *model.User {
	return &model.User{ID: BypassUserID, Email: b.cfg.Email}
}

// Profile returns the admin profile of the fixed identity.
func (b Bypass) Profile() *model.Profile {
	email := b.cfg.Email
	return &model.Profile{ID: BypassUserID, Email: &email, Role: model.RoleAdmin, CreatedAt: time.Time{}}
}
