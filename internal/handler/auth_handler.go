package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/codecraft/backend/internal/model"
	"github.com/codecraft/backend/internal/service"
	"github.com/codecraft/backend/internal/session"
	"github.com/codecraft/backend/pkg/auth"
	"go.uber.org/zap"
)

// ProfileReader returns the profile of a provider user, nil when missing.
type ProfileReader interface {
	Get(ctx context.Context, id string) (*model.Profile, error)
}

// AuthConfig は AuthHandler の設定
type AuthConfig struct {
	EmailDomain  string
	TTL          time.Duration
	SecureCookie bool
}

// AuthHandler は認証関連の HTTP ハンドラ
type AuthHandler struct {
	authService service.AuthService
	gate        *session.Gate
	profiles    ProfileReader
	cfg         AuthConfig
	logger      *zap.Logger
}

// NewAuthHandler は AuthHandler を生成する
func NewAuthHandler(authService service.AuthService, gate *session.Gate, profiles ProfileReader, cfg AuthConfig, logger *zap.Logger) *AuthHandler {
	if cfg.TTL <= 0 {
		cfg.TTL = auth.SessionDuration
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{authService: authService, gate: gate, profiles: profiles, cfg: cfg, logger: logger}
}

type credentialsRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type signupRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

// meResponse は GET /api/me と login/signup のレスポンス
type meResponse struct {
	User    *model.User    `json:"user"`
	Profile *model.Profile `json:"profile"`
	IsAdmin bool           `json:"is_admin"`
	Bypass  bool           `json:"bypass,omitempty"`
}

// Login は POST /api/auth/login を処理する。
// ローカル管理者の資格情報を先に照合し、一致しなければプロバイダで認証する
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if token, ok := h.gate.BypassLogin(req.Username, req.Password); ok {
		h.setSessionCookie(w, token)
		b := h.gate.Bypass()
		writeJSON(w, http.StatusOK, meResponse{User: b.User(), Profile: b.Profile(), IsAdmin: true, Bypass: true})
		return
	}

	sess, err := h.authService.SignInWithPassword(r.Context(), session.EmailFor(req.Username, h.cfg.EmailDomain), req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid_credentials")
			return
		}
		h.logger.Error("login failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "login_failed")
		return
	}
	h.setSessionCookie(w, sess.Token)
	h.writeSession(w, r, http.StatusOK, sess)
}

// Signup は POST /api/auth/signup を処理する
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !decodeBody(w, r, &req) {
		return
	}

	sess, err := h.authService.SignUp(r.Context(), session.EmailFor(req.Username, h.cfg.EmailDomain), req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			writeError(w, http.StatusConflict, "email_taken")
		case errors.Is(err, service.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "invalid_input")
		default:
			h.logger.Error("signup failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "signup_failed")
		}
		return
	}
	h.setSessionCookie(w, sess.Token)
	h.writeSession(w, r, http.StatusCreated, sess)
}

// Logout は POST /api/auth/logout を処理する。セッションの有無に関わらず成功する
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(auth.SessionCookieName()); err == nil && cookie.Value != "" {
		id, verr := h.gate.ValidateSession(r.Context(), cookie.Value)
		if verr != nil || id != session.BypassUserID {
			if err := h.authService.SignOut(r.Context(), cookie.Value); err != nil {
				h.logger.Warn("provider sign out failed", zap.Error(err))
			}
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName(),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Unix(0, 0),
	})
	writeJSON(w, http.StatusOK, map[string]string{"ok": "true"})
}

// Me は GET /api/me を処理する
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(auth.SessionCookieName())
	if err != nil || cookie.Value == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	userID, err := h.gate.ValidateSession(r.Context(), cookie.Value)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid_session")
		return
	}
	if userID == session.BypassUserID {
		b := h.gate.Bypass()
		writeJSON(w, http.StatusOK, meResponse{User: b.User(), Profile: b.Profile(), IsAdmin: true, Bypass: true})
		return
	}

	sess, err := h.authService.GetSession(r.Context(), cookie.Value)
	if err != nil {
		h.logger.Error("session lookup failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "session_failed")
		return
	}
	if sess == nil {
		writeError(w, http.StatusUnauthorized, "invalid_session")
		return
	}
	h.writeSession(w, r, http.StatusOK, sess)
}

// writeSession はユーザーとプロフィールを返す。プロフィール取得に失敗してもユーザーは返す
func (h *AuthHandler) writeSession(w http.ResponseWriter, r *http.Request, status int, sess *model.AuthSession) {
	user := sess.User
	profile, err := h.profiles.Get(r.Context(), user.ID)
	if err != nil {
		h.logger.Warn("profile lookup failed", zap.String("user_id", user.ID), zap.Error(err))
		profile = nil
	}
	writeJSON(w, status, meResponse{User: &user, Profile: profile, IsAdmin: profile.IsAdmin()})
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName(),
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cfg.TTL / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.cfg.SecureCookie,
	})
}
