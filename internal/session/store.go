// Package session mirrors the auth provider's session, plus the locally
// issued bypass admin session, into process-wide state.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/codecraft/backend/internal/kv"
	"github.com/codecraft/backend/internal/model"
	"go.uber.org/zap"
)

// Keys in the on-device key-value store.
const (
	BypassFlagKey = "local_admin_session"
	TokenKey      = "auth_session_token"
)

// ErrClosed is returned by operations on a closed Store.
var ErrClosed = errors.New("session: store closed")

// State is the authentication state of a Store.
type State int

const (
	Unauthenticated State = iota
	AuthenticatedRemote
	AuthenticatedBypass
)

func (s State) String() string {
	switch s {
	case AuthenticatedRemote:
		return "authenticated-remote"
	case AuthenticatedBypass:
		return "authenticated-bypass"
	default:
		return "unauthenticated"
	}
}

// Provider is the remote auth provider as seen by the Store.
type Provider interface {
	SignInWithPassword(ctx context.Context, email, password string) (*model.AuthSession, error)
	SignUp(ctx context.Context, email, password string) (*model.AuthSession, error)
	GetSession(ctx context.Context, token string) (*model.AuthSession, error)
	SignOut(ctx context.Context, token string) error
	OnAuthStateChange(fn func(event model.AuthEvent, session *model.AuthSession)) (unsubscribe func())
}

// ProfileSource fetches profiles; a missing profile is (nil, nil).
type ProfileSource interface {
	Get(ctx context.Context, id string) (*model.Profile, error)
}

// Snapshot is a consistent copy of the Store's state.
type Snapshot struct {
	State          State
	User           *model.User
	Profile        *model.Profile
	ProfileLoading bool
}

// Store holds the current session. It is safe for concurrent use.
type Store struct {
	provider    Provider
	profiles    ProfileSource
	kv          kv.Store
	bypass      Bypass
	emailDomain string
	logger      *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu          sync.Mutex
	state       State
	user        *model.User
	profile     *model.Profile
	loading     bool
	token       string
	gen         uint64
	unsubscribe func()
	closed      bool
}

// Options configures a Store.
type Options struct {
	Bypass      Bypass
	EmailDomain string
	Logger      *zap.Logger
}

// NewStore creates an unauthenticated Store. Call Init to restore a
// persisted session.
func NewStore(provider Provider, profiles ProfileSource, store kv.Store, opts Options) *Store {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Store{
		provider:    provider,
		profiles:    profiles,
		kv:          store,
		bypass:      opts.Bypass,
		emailDomain: opts.EmailDomain,
		logger:      logger.Named("session"),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Init restores the persisted session. A set bypass flag wins without any
// provider call while the bypass credential is configured, and is dropped
// when it is not; otherwise the persisted provider token is looked up and the
// Store subscribes to provider notifications until Close.
func (s *Store) Init(ctx context.Context) error {
	flag, _, err := s.kv.Get(ctx, BypassFlagKey)
	if err != nil {
		s.logger.Warn("bypass flag unreadable, ignoring", zap.Error(err))
	}
	if flag == "true" && !s.bypass.Enabled() {
		s.logger.Info("bypass credential not configured, dropping persisted bypass flag")
		if err := s.kv.Remove(ctx, BypassFlagKey); err != nil {
			s.logger.Warn("failed to remove bypass flag", zap.Error(err))
		}
		flag = ""
	}
	if flag == "true" {
		s.mu.Lock()
		s.enterBypassLocked()
		s.mu.Unlock()
		s.logger.Info("restored bypass session")
		return nil
	}

	s.subscribe()

	token, ok, err := s.kv.Get(ctx, TokenKey)
	if err != nil {
		return fmt.Errorf("session: read token: %w", err)
	}
	if !ok || token == "" {
		return nil
	}
	as, err := s.provider.GetSession(ctx, token)
	if err != nil {
		return fmt.Errorf("session: get session: %w", err)
	}
	if as == nil {
		s.logger.Info("persisted session no longer valid")
		_ = s.kv.Remove(ctx, TokenKey)
		return nil
	}
	s.applyRemote(as)
	return nil
}

// SignInWithUsername signs in with the bypass credential or, failing that,
// at the provider as username@<email domain>.
func (s *Store) SignInWithUsername(ctx context.Context, username, password string) error {
	if s.isClosed() {
		return ErrClosed
	}
	if s.bypass.Match(username, password) {
		if err := s.kv.Set(ctx, BypassFlagKey, "true"); err != nil {
			return fmt.Errorf("session: persist bypass flag: %w", err)
		}
		s.mu.Lock()
		s.enterBypassLocked()
		s.mu.Unlock()
		s.logger.Info("bypass sign-in")
		return nil
	}

	s.subscribe()
	as, err := s.provider.SignInWithPassword(ctx, s.Email(username), password)
	if err != nil {
		return err
	}
	s.applyRemote(as)
	return nil
}

// SignUpWithUsername creates the account username@<email domain> at the
// provider, which also signs it in.
func (s *Store) SignUpWithUsername(ctx context.Context, username, password string) error {
	if s.isClosed() {
		return ErrClosed
	}
	s.subscribe()
	as, err := s.provider.SignUp(ctx, s.Email(username), password)
	if err != nil {
		return err
	}
	s.applyRemote(as)
	return nil
}

// SignOut ends the provider session, clears the persisted token and the
// bypass flag, and returns to Unauthenticated. The local state is cleared
// even when the provider call fails; that error is returned.
func (s *Store) SignOut(ctx context.Context) error {
	s.mu.Lock()
	token := s.token
	s.resetLocked()
	s.mu.Unlock()

	var errs []error
	if token != "" {
		if err := s.provider.SignOut(ctx, token); err != nil {
			s.logger.Warn("provider sign-out failed", zap.Error(err))
			errs = append(errs, err)
		}
	}
	if err := s.kv.Remove(ctx, TokenKey); err != nil {
		errs = append(errs, err)
	}
	if err := s.kv.Remove(ctx, BypassFlagKey); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// RefreshProfile re-reads the profile of the remote user synchronously.
func (s *Store) RefreshProfile(ctx context.Context) error {
	s.mu.Lock()
	if s.state != AuthenticatedRemote {
		s.mu.Unlock()
		return nil
	}
	userID, gen := s.user.ID, s.gen
	s.mu.Unlock()

	p, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	if s.gen == gen {
		s.profile = p
		s.loading = false
	}
	s.mu.Unlock()
	return nil
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{State: s.state, ProfileLoading: s.loading}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	if s.profile != nil {
		p := *s.profile
		snap.Profile = &p
	}
	return snap
}

// IsAdmin reports whether the current identity holds the admin role.
func (s *Store) IsAdmin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state {
	case AuthenticatedBypass:
		return true
	case AuthenticatedRemote:
		return s.profile.IsAdmin()
	default:
		return false
	}
}

// Token returns the provider token of a remote session, or "".
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Email maps a username to the provider's email address.
func (s *Store) Email(username string) string {
	return EmailFor(username, s.emailDomain)
}

// EmailFor appends "@domain" to username unless it already is an address.
func EmailFor(username, domain string) string {
	if strings.Contains(username, "@") {
		return username
	}
	return username + "@" + domain
}

// Close unsubscribes from the provider and waits for in-flight profile
// fetches.
func (s *Store) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	unsub := s.unsubscribe
	s.unsubscribe = nil
	s.mu.Unlock()

	if unsub != nil {
		unsub()
	}
	s.cancel()
	s.wg.Wait()
}

func (s *Store) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Store) subscribe() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unsubscribe != nil || s.closed {
		return
	}
	s.unsubscribe = s.provider.OnAuthStateChange(s.onAuthStateChange)
}

func (s *Store) onAuthStateChange(event model.AuthEvent, as *model.AuthSession) {
	s.mu.Lock()
	if s.closed || s.state == AuthenticatedBypass {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	if as != nil {
		s.applyRemote(as)
		return
	}
	s.mu.Lock()
	if s.state == AuthenticatedRemote {
		s.resetLocked()
	}
	s.mu.Unlock()
	if err := s.kv.Remove(s.ctx, TokenKey); err != nil {
		s.logger.Warn("clear token failed", zap.Error(err))
	}
	s.logger.Debug("provider signed out", zap.String("event", string(event)))
}

// applyRemote enters AuthenticatedRemote for as, persists its token and
// starts a profile fetch. Re-applying the current session is a no-op.
func (s *Store) applyRemote(as *model.AuthSession) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if s.state == AuthenticatedRemote && s.token == as.Token {
		s.mu.Unlock()
		return
	}
	s.gen++
	gen := s.gen
	u := as.User
	s.state = AuthenticatedRemote
	s.user = &u
	s.profile = nil
	s.loading = true
	s.token = as.Token
	s.wg.Add(1)
	s.mu.Unlock()

	if err := s.kv.Set(s.ctx, TokenKey, as.Token); err != nil {
		s.logger.Warn("persist token failed", zap.Error(err))
	}
	go s.fetchProfile(u.ID, gen)
}

func (s *Store) fetchProfile(userID string, gen uint64) {
	defer s.wg.Done()
	p, err := s.profiles.Get(s.ctx, userID)
	if err != nil {
		s.logger.Warn("profile fetch failed", zap.String("user_id", userID), zap.Error(err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return
	}
	s.profile = p
	s.loading = false
}

func (s *Store) enterBypassLocked() {
	s.gen++
	s.state = AuthenticatedBypass
	s.user = s.bypass.User()
	s.profile = s.bypass.Profile()
	s.loading = false
	s.token = ""
}

func (s *Store) resetLocked() {
	s.gen++
	s.state = Unauthenticated
	s.user = nil
	s.profile = nil
	s.loading = false
	s.token = ""
}
