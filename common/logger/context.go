package logger

import "context"

type contextKey string

const logFieldsKey contextKey = "log_fields"

// LogFields contains structured fields automatically added to all logs within
// a context. Fields flow through context enrichment so business context
// (feedback_id, user_id, etc.) is included in every log statement on the path.
type LogFields struct {
	FeedbackID    *int64  // Feedback request ID
	UserID        *string // Submitter's directory user id
	ApplicationID *string // Client application scope
	JiraTicketID  *string // Linked external ticket, once reconciled
	Component     string  // Component name (e.g., "feedback.directory")
}

// WithLogFields enriches context with structured log fields.
// Multiple calls merge fields, with newer non-nil/non-empty values taking
// precedence. Context timeouts and cancellation are preserved.
func WithLogFields(ctx context.Context, fields LogFields) context.Context {
	existing := GetLogFields(ctx)
	merged := mergeFields(existing, fields)
	return context.WithValue(ctx, logFieldsKey, merged)
}

// GetLogFields retrieves log fields from context.
// Returns empty LogFields if none are set.
func GetLogFields(ctx context.Context) LogFields {
	if fields, ok := ctx.Value(logFieldsKey).(LogFields); ok {
		return fields
	}
	return LogFields{}
}

func mergeFields(existing, new LogFields) LogFields {
	result := existing

	if new.FeedbackID != nil {
		result.FeedbackID = new.FeedbackID
	}
	if new.UserID != nil {
		result.UserID = new.UserID
	}
	if new.ApplicationID != nil {
		result.ApplicationID = new.ApplicationID
	}
	if new.JiraTicketID != nil {
		result.JiraTicketID = new.JiraTicketID
	}
	if new.Component != "" {
		result.Component = new.Component
	}

	return result
}

// Ptr is a helper to create a pointer from a value.
// Useful for setting LogFields inline.
func Ptr[T any](v T) *T {
	return &v
}
