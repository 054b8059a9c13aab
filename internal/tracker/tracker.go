// Package tracker is the external issue-tracker capability. The tracker is
// always best-effort: callers fold failures into the request's status history
// and never let them gate persistence of the request itself.
package tracker

import (
	"context"

	"github.com/wfdeller/feedback/internal/model"
)

type IssueTracker interface {
	// CreateIssue creates an external ticket for a feedback request and
	// returns its opaque identifier (e.g. "FEED-42").
	CreateIssue(ctx context.Context, req *model.FeedbackRequest) (string, error)

	// UpdateIssue propagates a status-history entry to an existing ticket.
	UpdateIssue(ctx context.Context, ticketID string, entry model.StatusEntry) error
}
