package internal

import (
	"context"
	"time"

	userdm "github.com/frahmantamala/integration-tracker/internal/core/datamodel/user"
)

type ctxKey string

const ContextUserKey ctxKey = "sessionUser"

// UserFromContext returns the authenticated user placed in the request
// context by the auth middleware.
func UserFromContext(ctx context.Context) (*userdm.User, bool) {
	if ctx == nil {
		return nil, false
	}
	u, ok := ctx.Value(ContextUserKey).(*userdm.User)
	return u, ok && u != nil
}

func ContextWithUser(ctx context.Context, u *userdm.User) context.Context {
	return context.WithValue(ctx, ContextUserKey, u)
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds if
// duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
