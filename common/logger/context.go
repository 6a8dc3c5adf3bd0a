package logger

import "context"

type contextKey string

const logFieldsKey contextKey = "log_fields"

// LogFields contains structured fields automatically added to all logs
// within a context. Handlers enrich the context once and every log line in
// the call tree picks the fields up.
type LogFields struct {
	BotID     *string // external Slack bot user id
	Channel   *string // Slack channel id
	EventID   *string // Events API delivery id
	EventType *string // e.g. "message", "reaction_added"
	Component string  // e.g. "bridge.command.router"
}

// WithLogFields enriches context with structured log fields. Multiple calls
// merge fields, with newer non-nil/non-empty values taking precedence.
func WithLogFields(ctx context.Context, fields LogFields) context.Context {
	merged := mergeFields(GetLogFields(ctx), fields)
	return context.WithValue(ctx, logFieldsKey, merged)
}

// GetLogFields retrieves log fields from context. Returns empty LogFields if
// none are set.
func GetLogFields(ctx context.Context) LogFields {
	if fields, ok := ctx.Value(logFieldsKey).(LogFields); ok {
		return fields
	}
	return LogFields{}
}

func mergeFields(existing, next LogFields) LogFields {
	result := existing

	if next.BotID != nil {
		result.BotID = next.BotID
	}
	if next.Channel != nil {
		result.Channel = next.Channel
	}
	if next.EventID != nil {
		result.EventID = next.EventID
	}
	if next.EventType != nil {
		result.EventType = next.EventType
	}
	if next.Component != "" {
		result.Component = next.Component
	}

	return result
}

// Ptr is a helper to create a pointer from a value, for setting LogFields
// inline.
func Ptr[T any](v T) *T {
	return &v
}
