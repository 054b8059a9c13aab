package store

import (
	"context"
	"errors"

	"github.com/wfdeller/feedback/internal/model"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when a write is rejected because a required field
// is missing or an enum value is unknown. Wrapped errors carry the detail.
var ErrValidation = errors.New("validation failed")

// Filter narrows a List call. Zero-value fields impose no constraint;
// provided fields are combined with AND semantics.
type Filter struct {
	UserID        string
	ApplicationID string
}

// UpdateParams is a shallow merge onto an existing record. Nil fields are left
// untouched. Status, when non-nil, replaces the history wholesale - callers
// that want to append an entry should use AppendStatus instead, which does the
// append server-side and cannot lose concurrent writes.
type UpdateParams struct {
	Title          *string
	Description    *string
	Priority       *model.Priority
	FeedbackStatus *model.FeedbackStatus
	JiraTicketID   *string
	Status         []model.StatusEntry
}

// AppendStatusParams appends one history entry atomically. FeedbackStatus and
// JiraTicketID, when set, are written in the same statement so the
// denormalized fields can never drift from the history.
type AppendStatusParams struct {
	Entry          model.StatusEntry
	FeedbackStatus *model.FeedbackStatus
	JiraTicketID   *string
}

// FeedbackStore defines the contract for feedback request data access
type FeedbackStore interface {
	Create(ctx context.Context, req *model.FeedbackRequest) error
	GetByID(ctx context.Context, id int64) (*model.FeedbackRequest, error)
	List(ctx context.Context, filter Filter) ([]model.FeedbackRequest, error)
	Update(ctx context.Context, id int64, params UpdateParams) (*model.FeedbackRequest, error)
	AppendStatus(ctx context.Context, id int64, params AppendStatusParams) (*model.FeedbackRequest, error)
}
