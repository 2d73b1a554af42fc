package core

import (
	"context"

	"github.com/google/uuid"
)

// Context keys for evaluation options
type contextKey string

const (
	evaluationIDKey contextKey = "evaluationID"
	quietAlertsKey  contextKey = "quietAlerts"
)

// WithEvaluationID pins the ID that reports and published alerts carry.
func WithEvaluationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, evaluationIDKey, id)
}

// getEvaluationID returns the pinned evaluation ID, if any
func getEvaluationID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(evaluationIDKey).(string)
	return id, ok && id != ""
}

// evaluationID returns the pinned ID or a fresh one
func evaluationID(ctx context.Context) string {
	if id, ok := getEvaluationID(ctx); ok {
		return id
	}
	return uuid.NewString()
}

// WithQuietAlerts stops the CLI alert subscriber from echoing alerts to stderr.
func WithQuietAlerts(ctx context.Context) context.Context {
	return context.WithValue(ctx, quietAlertsKey, true)
}

// shouldEchoAlerts returns whether alerts are echoed to stderr
func shouldEchoAlerts(ctx context.Context) bool {
	quiet, ok := ctx.Value(quietAlertsKey).(bool)
	return !ok || !quiet
}
