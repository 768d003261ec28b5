package auth

import (
	"encoding/json"
	"log/slog"
	"net"
	"net/http"

	"github.com/frahmantamala/integration-tracker/internal"
	"github.com/frahmantamala/integration-tracker/internal/transport"
	"github.com/frahmantamala/integration-tracker/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.L()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

// remoteAddr strips the port so the rate limiter keys on the address
// alone, not on each ephemeral client port.
func remoteAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.Service.Login(dto, remoteAddr(r))
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, NewLoginResponse(session))
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	token := h.ExtractTokenFromHeader(r)
	h.Service.Logout(token)
	w.WriteHeader(http.StatusNoContent)
}

// Me returns the session's user snapshot and derived capabilities.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.ErrUnauthenticated)
		return
	}
	h.WriteJSON(w, http.StatusOK, LoginResponse{
		User: SessionUserView{
			ID:          user.ID,
			Username:    user.Username,
			DisplayName: user.DisplayName,
			Email:       user.Email,
			Role:        user.Role,
		},
		Caps: CapabilitiesFor(user.Role),
	})
}

// AuthMiddleware authenticates the bearer token and places the user
// snapshot in the request context.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractTokenFromHeader(r)
		user, err := h.Service.Authenticate(token)
		if err != nil {
			h.WriteAppError(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(internal.ContextWithUser(r.Context(), user)))
	})
}

// RequireLevel gates a route group on a minimum role level. Must run
// after AuthMiddleware.
func (h *Handler) RequireLevel(minLevel int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := internal.UserFromContext(r.Context())
			if !ok {
				h.WriteAppError(w, internal.ErrUnauthenticated)
				return
			}
			if !Authorize(user.Role, minLevel) {
				h.Logger.Warn("access denied",
					"user_id", user.ID,
					"role", user.Role,
					"required_level", minLevel,
					"path", r.URL.Path)
				h.WriteAppError(w, internal.ErrForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
