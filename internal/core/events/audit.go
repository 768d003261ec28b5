package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Domain event types emitted by the mutating services.
const (
	TypeProjectCreated    = "project.created"
	TypeProjectDeleted    = "project.deleted"
	TypeTaskCreated       = "task.created"
	TypeTaskDeleted       = "task.deleted"
	TypeAttachmentAdded   = "attachment.uploaded"
	TypeAttachmentRemoved = "attachment.deleted"
	TypeUserLoggedIn      = "user.logged_in"
)

// New builds a domain event with a generated id and current timestamp.
func New(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
	}
}

// RegisterAuditLog subscribes a structured-log audit handler for every
// known domain event type.
func RegisterAuditLog(bus *Bus, logger *slog.Logger) {
	types := []string{
		TypeProjectCreated,
		TypeProjectDeleted,
		TypeTaskCreated,
		TypeTaskDeleted,
		TypeAttachmentAdded,
		TypeAttachmentRemoved,
		TypeUserLoggedIn,
	}
	for _, t := range types {
		bus.Subscribe(t, func(ctx context.Context, event Event) error {
			logger.Info("audit",
				"event_type", event.EventType(),
				"event_id", event.EventID(),
				"occurred_at", event.OccurredAt().Format(time.RFC3339),
				"payload", event.Payload())
			return nil
		})
	}
}
