package auth

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/tasklyst/backend/domain"
	"github.com/tasklyst/backend/repository"
	"github.com/tasklyst/backend/storage"
)

// Store keys composing the session state. The unprefixed pair is kept for
// compatibility with data written by earlier releases.
const (
	keyUser       = "task_lyst_user"
	keyAuth       = "task_lyst_auth"
	keyExpiry     = "task_lyst_expiry"
	keyLegacyUser = "userId"
	keyLegacyAuth = "isAuthenticated"

	probeKey = "task_lyst_probe"
)

// DefaultTTL is the absolute session lifetime set at login or registration.
const DefaultTTL = 24 * time.Hour

// SessionStore authenticates against the user directory and tracks exactly
// one logged-in user through the key-value store. Every operation is
// defensive: storage failures degrade to "no session" and are never
// propagated to callers.
type SessionStore struct {
	store  storage.Store
	users  repository.UserDirectory
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time

	mu          sync.Mutex
	currentUser *domain.User
}

func New(store storage.Store, users repository.UserDirectory, ttl time.Duration, logger *zap.Logger) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionStore{
		store:  store,
		users:  users,
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
}

// Login verifies the credentials against the user directory and establishes a
// session on success. It reports false for missing credentials, unknown
// emails and password mismatches alike.
func (s *SessionStore) Login(ctx context.Context, email, password string) bool {
	if email == "" || password == "" {
		return false
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return false
	}
	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) != nil {
		return false
	}

	if err := s.establishSession(ctx, user); err != nil {
		s.logger.Warn("failed to persist session", zap.Error(err))
		return false
	}
	return true
}

// Register creates a new account and establishes a session for it. It reports
// false when any field is empty or the email is already taken (case
// insensitive).
func (s *SessionStore) Register(ctx context.Context, name, email, password string) bool {
	if name == "" || email == "" || password == "" {
		return false
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return false
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("failed to hash password", zap.Error(err))
		return false
	}

	user := &domain.User{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
	}
	if err := s.users.Insert(ctx, user); err != nil {
		return false
	}

	if err := s.establishSession(ctx, user); err != nil {
		s.logger.Warn("failed to persist session", zap.Error(err))
		return false
	}
	return true
}

// Logout drops the cached user and removes every session key. Idempotent.
func (s *SessionStore) Logout(ctx context.Context) {
	s.setCurrentUser(nil)
	s.clearStorage(ctx)
}

// IsAuthenticated reports whether a valid session exists. An absent,
// unparseable or past expiry clears the session state as a side effect.
func (s *SessionStore) IsAuthenticated(ctx context.Context) bool {
	if s.sessionExpired(ctx) {
		s.setCurrentUser(nil)
		s.clearStorage(ctx)
		return false
	}

	primary, _ := s.store.Read(ctx, keyAuth)
	legacy, _ := s.store.Read(ctx, keyLegacyAuth)
	return primary == "true" || legacy == "true"
}

// CurrentUser resolves the logged-in user, preferring the in-memory cache and
// falling back to the stored user id. It returns nil once the session has
// expired, clearing the stale keys on the way out.
func (s *SessionStore) CurrentUser(ctx context.Context) *domain.User {
	if s.sessionExpired(ctx) {
		s.setCurrentUser(nil)
		s.clearStorage(ctx)
		return nil
	}

	s.mu.Lock()
	cached := s.currentUser
	s.mu.Unlock()
	if cached != nil {
		return cached
	}

	userID, err := s.store.Read(ctx, keyLegacyUser)
	if err != nil || userID == "" {
		return nil
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil
	}
	s.setCurrentUser(user)
	return user
}

// Session reconstructs the derived session state for display purposes. It
// returns nil when no valid session exists.
func (s *SessionStore) Session(ctx context.Context) *domain.Session {
	user := s.CurrentUser(ctx)
	if user == nil || !s.IsAuthenticated(ctx) {
		return nil
	}

	raw, err := s.store.Read(ctx, keyExpiry)
	if err != nil {
		return nil
	}
	expiry, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil
	}

	return &domain.Session{
		User:      user.Sanitized(),
		ExpiresAt: expiry,
	}
}

// StorageAvailable probes the store with a trivial write and remove. Used to
// warn the caller; data-path logic never branches on it.
func (s *SessionStore) StorageAvailable(ctx context.Context) bool {
	if err := s.store.Write(ctx, probeKey, "ok"); err != nil {
		return false
	}
	if err := s.store.Remove(ctx, probeKey); err != nil {
		return false
	}
	return true
}

// WithClock overrides the time source. Intended for tests.
func (s *SessionStore) WithClock(now func() time.Time) *SessionStore {
	if now != nil {
		s.now = now
	}
	return s
}

func (s *SessionStore) establishSession(ctx context.Context, user *domain.User) error {
	safe, err := json.Marshal(user.Sanitized())
	if err != nil {
		return err
	}

	expiry := s.now().Add(s.ttl).Format(time.RFC3339)

	writes := []struct {
		key   string
		value string
	}{
		{keyLegacyUser, user.ID},
		{keyLegacyAuth, "true"},
		{keyUser, string(safe)},
		{keyAuth, "true"},
		{keyExpiry, expiry},
	}
	for _, w := range writes {
		if err := s.store.Write(ctx, w.key, w.value); err != nil {
			return err
		}
	}

	s.setCurrentUser(user)
	return nil
}

func (s *SessionStore) sessionExpired(ctx context.Context) bool {
	raw, err := s.store.Read(ctx, keyExpiry)
	if err != nil {
		return true
	}
	expiry, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return true
	}
	return s.now().After(expiry)
}

func (s *SessionStore) clearStorage(ctx context.Context) {
	for _, key := range []string{keyUser, keyAuth, keyExpiry, keyLegacyUser, keyLegacyAuth} {
		if err := s.store.Remove(ctx, key); err != nil {
			s.logger.Debug("failed to remove session key", zap.String("key", key), zap.Error(err))
		}
	}
}

func (s *SessionStore) setCurrentUser(user *domain.User) {
	s.mu.Lock()
	s.currentUser = user
	s.mu.Unlock()
}
