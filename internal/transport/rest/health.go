package rest

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/frahmantamala/integration-tracker/internal"
)

// SessionCounter is implemented by the session manager.
type SessionCounter interface {
	SessionCount() int
}

type HealthHandler struct {
	db       *sqlx.DB
	sessions SessionCounter
}

func NewHealthHandler(db *sqlx.DB, sessions SessionCounter) *HealthHandler {
	return &HealthHandler{db: db, sessions: sessions}
}

func (h *HealthHandler) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	dbStatus := "ok"

	// A stuck pool should fail the check, not hang it.
	ctx, cancel := internal.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := h.db.PingContext(ctx); err != nil {
		status = http.StatusServiceUnavailable
		dbStatus = err.Error()
	}

	body := map[string]interface{}{
		"status":   http.StatusText(status),
		"time":     time.Now().Format(time.RFC3339),
		"database": dbStatus,
	}
	if h.sessions != nil {
		body["active_sessions"] = h.sessions.SessionCount()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (h *HealthHandler) pingHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"message": "pong"})
}
