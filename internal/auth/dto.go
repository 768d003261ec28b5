package auth

import (
	"time"

	"github.com/frahmantamala/integration-tracker/internal/core/common/validation"
)

// LoginDTO is the transport shape accepted by the login handler.
type LoginDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (d LoginDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("username", d.Username).Required()
	v.Field("password", d.Password).Required()
	// *AppError in an error interface must not be a typed nil
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// LoginResponse is what a successful login returns to the client.
type LoginResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	User      SessionUserView `json:"user"`
	Caps      Capabilities    `json:"capabilities"`
}

// SessionUserView is the client-safe projection of the session's user.
type SessionUserView struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
}

func NewLoginResponse(s *Session) LoginResponse {
	return LoginResponse{
		Token:     s.Token,
		ExpiresAt: s.ExpiresAt,
		User: SessionUserView{
			ID:          s.User.ID,
			Username:    s.User.Username,
			DisplayName: s.User.DisplayName,
			Email:       s.User.Email,
			Role:        s.User.Role,
		},
		Caps: CapabilitiesFor(s.User.Role),
	}
}
