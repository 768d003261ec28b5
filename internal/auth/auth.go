package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	userdm "github.com/frahmantamala/integration-tracker/internal/core/datamodel/user"
)

const (
	// SessionTTL is fixed at issuance; activity does not slide it.
	SessionTTL = 24 * time.Hour
	// SweepInterval bounds memory growth from abandoned sessions.
	SweepInterval = time.Hour
)

// Session binds a bearer token to a snapshot of the user taken at login.
// Sessions live only in process memory: a restart invalidates all of
// them, which is accepted rather than persisting bearer tokens.
type Session struct {
	Token     string
	User      userdm.User
	ExpiresAt time.Time
}

// Claims is the signed payload inside the session token. The in-memory
// registry stays authoritative: a token with a valid signature that is
// no longer registered (logout, restart) does not authenticate.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// UserRepository is the credential store consumed by the session manager.
type UserRepository interface {
	GetByUsername(username string) (*userdm.User, error)
	RecordLogin(userID int64, at time.Time) error
}

// ServiceAPI is what the HTTP layer sees of the session manager.
type ServiceAPI interface {
	Login(dto LoginDTO, remoteAddr string) (*Session, error)
	Authenticate(token string) (*userdm.User, error)
	Logout(token string)
}
