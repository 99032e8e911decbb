package service

import (
	"context"

	"smartnotes-be/internal/pkg/logger"
	"smartnotes-be/pkg/events"
)

const (
	EventUserRegistered   = "USER_REGISTERED"
	EventNoteCreated      = "NOTE_CREATED"
	EventNoteDeleted      = "NOTE_DELETED"
	EventNotesBulkDeleted = "NOTES_BULK_DELETED"
	EventNotebookDeleted  = "NOTEBOOK_DELETED"
)

// publishEvent never fails the caller; lifecycle events are best effort.
func publishEvent(ctx context.Context, pub events.Publisher, log logger.ILogger, eventType string, data map[string]interface{}) {
	if pub == nil {
		return
	}
	if err := pub.Publish(ctx, events.New(eventType, data)); err != nil {
		log.Warn("EVENTS", "Failed to publish event", map[string]interface{}{
			"type":  eventType,
			"error": err.Error(),
		})
	}
}
