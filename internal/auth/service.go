package auth

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	errors "github.com/frahmantamala/integration-tracker/internal"
	userdm "github.com/frahmantamala/integration-tracker/internal/core/datamodel/user"
	"github.com/frahmantamala/integration-tracker/internal/core/events"
)

// Service is the session manager: it issues, validates, revokes and
// garbage-collects bearer tokens, and enforces the login rate limit.
type Service struct {
	users       UserRepository
	limiter     *LoginLimiter
	tokenSecret []byte
	ttl         time.Duration
	logger      *slog.Logger
	bus         *events.Bus

	mu       sync.RWMutex
	sessions map[string]*Session

	now func() time.Time
}

func NewService(users UserRepository, tokenSecret string, logger *slog.Logger, bus *events.Bus) *Service {
	return &Service{
		users:       users,
		limiter:     NewLoginLimiter(),
		tokenSecret: []byte(tokenSecret),
		ttl:         SessionTTL,
		logger:      logger,
		bus:         bus,
		sessions:    make(map[string]*Session),
		now:         time.Now,
	}
}

// Login checks the rate limit first: a locked-out address is rejected
// regardless of credential correctness.
func (s *Service) Login(dto LoginDTO, remoteAddr string) (*Session, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if locked, retryAfter := s.limiter.Check(remoteAddr); locked {
		s.logger.Warn("login locked out", "addr", remoteAddr, "retry_after", retryAfter)
		return nil, errors.ErrLockedOut.WithMessage(
			"too many failed login attempts, retry in %s", retryAfter.Round(time.Second))
	}

	user, err := s.users.GetByUsername(dto.Username)
	if err != nil || user == nil || !user.Active {
		s.limiter.RecordFailure(remoteAddr)
		s.logger.Warn("login failed", "username", dto.Username, "addr", remoteAddr)
		return nil, errors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(dto.Password)); err != nil {
		s.limiter.RecordFailure(remoteAddr)
		s.logger.Warn("login failed", "username", dto.Username, "addr", remoteAddr)
		return nil, errors.ErrInvalidCredentials
	}

	s.limiter.Clear(remoteAddr)

	session, err := s.issue(user)
	if err != nil {
		return nil, errors.NewStorageError("failed to issue session token", err)
	}

	if err := s.users.RecordLogin(user.ID, s.now()); err != nil {
		// non-fatal: last_login is informational
		s.logger.Warn("failed to record last login", "user_id", user.ID, "error", err)
	}

	if s.bus != nil {
		s.bus.Publish(context.Background(), events.New(events.TypeUserLoggedIn, map[string]interface{}{
			"user_id":  user.ID,
			"username": user.Username,
		}))
	}

	s.logger.Info("session issued", "user_id", user.ID, "username", user.Username,
		"expires_at", session.ExpiresAt)
	return session, nil
}

func (s *Service) issue(user *userdm.User) (*Session, error) {
	expiresAt := s.now().Add(s.ttl)

	claims := &Claims{
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(s.now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.tokenSecret)
	if err != nil {
		return nil, err
	}

	session := &Session{
		Token:     token,
		User:      *user,
		ExpiresAt: expiresAt,
	}

	s.mu.Lock()
	s.sessions[token] = session
	s.mu.Unlock()

	return session, nil
}

// Authenticate resolves a bearer token to the user snapshot bound at
// login. The registry is authoritative: a well-signed token that is not
// registered (logged out, or issued before a restart) is rejected.
func (s *Service) Authenticate(token string) (*userdm.User, error) {
	if token == "" {
		return nil, errors.ErrUnauthenticated
	}

	s.mu.RLock()
	session, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return nil, errors.ErrUnauthenticated
	}

	if !s.now().Before(session.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return nil, errors.ErrSessionExpired
	}

	user := session.User
	return &user, nil
}

// Logout revokes immediately. Revoking an absent token is not an error.
func (s *Service) Logout(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// Sweep evicts every expired session and returns the count removed.
func (s *Service) Sweep() int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for token, session := range s.sessions {
		if !now.Before(session.ExpiresAt) {
			delete(s.sessions, token)
			removed++
		}
	}
	return removed
}

// StartSweeper runs Sweep on a fixed interval until the context is
// cancelled. It runs independently of request handling.
func (s *Service) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = SweepInterval
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := s.Sweep(); n > 0 {
					s.logger.Info("session sweep", "evicted", n)
				}
			}
		}
	}()
}

// SessionCount reports active entries; used by the health handler.
func (s *Service) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// HashPassword creates a bcrypt hash of the password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
