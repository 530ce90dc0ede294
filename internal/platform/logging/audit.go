package logging

import (
	"context"
	"log/slog"
)

// AuditEvent describes one auditable action.
type AuditEvent struct {
	Action       string
	Subject      string
	ResourceType string
	ResourceID   string
	Result       string
	Details      map[string]any
}

// LogAuditEvent logs a structured audit event under the "audit" group.
func LogAuditEvent(ctx context.Context, ev AuditEvent) {
	attrs := []any{
		slog.String("action", ev.Action),
		slog.String("subject", ev.Subject),
		slog.String("resourceType", ev.ResourceType),
		slog.String("resourceId", ev.ResourceID),
		slog.String("result", ev.Result),
	}
	if len(ev.Details) > 0 {
		attrs = append(attrs, slog.Any("details", ev.Details))
	}
	LoggerFromContext(ctx).LogAttrs(ctx, slog.LevelInfo, "audit event", slog.Group("audit", attrs...))
}
