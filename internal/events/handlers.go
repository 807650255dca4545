package events

import (
	"context"
	"log/slog"
)

// LoggingHandler records every progression event at info level. It is
// registered by default so milestones always leave an audit trail even
// when no other handler is interested.
type LoggingHandler struct {
	logger *slog.Logger
}

// NewLoggingHandler creates a handler that logs events to the given logger.
func NewLoggingHandler(logger *slog.Logger) *LoggingHandler {
	return &LoggingHandler{
		logger: logger.With("component", "event_logging_handler"),
	}
}

// Ensure LoggingHandler implements EventHandler interface
var _ EventHandler = (*LoggingHandler)(nil)

// HandleEvent implements EventHandler.
func (h *LoggingHandler) HandleEvent(ctx context.Context, event *ProgressionEvent) error {
	h.logger.InfoContext(ctx, "progression event",
		"event_id", event.ID,
		"event_type", event.Type,
		"payload", string(event.Payload))
	return nil
}
