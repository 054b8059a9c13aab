package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/wfdeller/feedback/common/id"
	"github.com/wfdeller/feedback/common/logger"
	"github.com/wfdeller/feedback/internal/directory"
	"github.com/wfdeller/feedback/internal/model"
	"github.com/wfdeller/feedback/internal/store"
	"github.com/wfdeller/feedback/internal/tracker"
)

// ErrNotFound is returned when a feedback request id does not resolve.
var ErrNotFound = errors.New("feedback request not found")

type SubmitParams struct {
	UserID        string
	ApplicationID string
	Title         string
	Description   string
	Priority      model.Priority
}

// FeedbackService orchestrates the request lifecycle: identity resolution,
// persistence, and best-effort reconciliation with the external tracker.
type FeedbackService interface {
	Submit(ctx context.Context, params SubmitParams) (*model.FeedbackRequest, error)
	Get(ctx context.Context, id int64) (*model.FeedbackRequest, error)
	List(ctx context.Context, filter store.Filter) ([]model.FeedbackRequest, error)
	Update(ctx context.Context, id int64, params store.UpdateParams) (*model.FeedbackRequest, error)
	ChangeStatus(ctx context.Context, id int64, status, detail string) (*model.FeedbackRequest, error)
}

type feedbackService struct {
	feedbackStore store.FeedbackStore
	directory     directory.Service
	tracker       tracker.IssueTracker
}

func NewFeedbackService(
	feedbackStore store.FeedbackStore,
	dir directory.Service,
	issueTracker tracker.IssueTracker,
) FeedbackService {
	return &feedbackService{
		feedbackStore: feedbackStore,
		directory:     dir,
		tracker:       issueTracker,
	}
}

// Submit creates a feedback request and attempts to link an external ticket.
// The ticket call is best-effort: its outcome (success or failure) is recorded
// as a history entry, and the submission succeeds either way once the record
// is persisted.
func (s *feedbackService) Submit(ctx context.Context, params SubmitParams) (*model.FeedbackRequest, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		UserID:        logger.Ptr(params.UserID),
		ApplicationID: logger.Ptr(params.ApplicationID),
	})

	var userName, userEmail string
	if params.UserID != "" {
		// Resolve never fails for a non-empty id: directory outages
		// degrade to a placeholder identity.
		info, err := s.directory.Resolve(ctx, params.UserID)
		if err != nil {
			return nil, fmt.Errorf("resolving user identity: %w", err)
		}
		userName = info.UserName
		userEmail = info.Email
	}

	priority := params.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}

	req := &model.FeedbackRequest{
		ID:             id.New(),
		UserID:         params.UserID,
		UserName:       userName,
		UserEmail:      userEmail,
		ApplicationID:  params.ApplicationID,
		Title:          params.Title,
		Description:    params.Description,
		Priority:       priority,
		FeedbackStatus: model.FeedbackStatusOpen,
	}

	if err := s.feedbackStore.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("creating feedback request: %w", err)
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{FeedbackID: logger.Ptr(req.ID)})
	slog.InfoContext(ctx, "feedback request created", "title", req.Title, "priority", req.Priority)

	return s.reconcileTicket(ctx, req), nil
}

// reconcileTicket attempts external ticket creation and folds the outcome
// into the status history. Always returns a usable record; the freshest copy
// when the history append succeeded, the created record otherwise.
func (s *feedbackService) reconcileTicket(ctx context.Context, req *model.FeedbackRequest) *model.FeedbackRequest {
	ticketID, err := s.tracker.CreateIssue(ctx, req)

	var params store.AppendStatusParams
	if err != nil {
		slog.WarnContext(ctx, "ticket creation failed", "error", err)
		params = store.AppendStatusParams{
			Entry: model.StatusEntry{
				Description: fmt.Sprintf("Failed to create Jira ticket: %s", err.Error()),
				StatusDate:  time.Now(),
			},
		}
	} else {
		slog.InfoContext(ctx, "ticket created", "ticket_id", ticketID)
		params = store.AppendStatusParams{
			Entry: model.StatusEntry{
				Description: fmt.Sprintf("Jira ticket %s created", ticketID),
				StatusDate:  time.Now(),
			},
			JiraTicketID: &ticketID,
		}
	}

	updated, appendErr := s.feedbackStore.AppendStatus(ctx, req.ID, params)
	if appendErr != nil {
		slog.ErrorContext(ctx, "failed to record ticket outcome", "error", appendErr)
		return req
	}
	return updated
}

func (s *feedbackService) Get(ctx context.Context, id int64) (*model.FeedbackRequest, error) {
	req, err := s.feedbackStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting feedback request: %w", err)
	}
	return req, nil
}

func (s *feedbackService) List(ctx context.Context, filter store.Filter) ([]model.FeedbackRequest, error) {
	requests, err := s.feedbackStore.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing feedback requests: %w", err)
	}
	return requests, nil
}

func (s *feedbackService) Update(ctx context.Context, id int64, params store.UpdateParams) (*model.FeedbackRequest, error) {
	req, err := s.feedbackStore.Update(ctx, id, params)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("updating feedback request: %w", err)
	}
	return req, nil
}

// ChangeStatus appends a history entry and, when the entry is exactly one of
// the recognized statuses, updates the denormalized current-status field in
// the same statement. A custom entry ("<status>: <detail>") never changes the
// denormalized field. Transitions are deliberately unrestricted; any status
// may follow any other, including reopening a closed request.
func (s *feedbackService) ChangeStatus(ctx context.Context, id int64, status, detail string) (*model.FeedbackRequest, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{FeedbackID: logger.Ptr(id)})

	current, err := s.feedbackStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting feedback request: %w", err)
	}

	description := status
	if detail != "" {
		description = fmt.Sprintf("%s: %s", status, detail)
	}

	entry := model.StatusEntry{
		Description: description,
		StatusDate:  time.Now(),
	}

	params := store.AppendStatusParams{Entry: entry}
	if newStatus := recognizedStatus(description); newStatus != nil {
		params.FeedbackStatus = newStatus
	}

	updated, err := s.feedbackStore.AppendStatus(ctx, id, params)
	if err != nil {
		return nil, fmt.Errorf("appending status: %w", err)
	}

	slog.InfoContext(ctx, "status updated",
		"description", description,
		"feedback_status", updated.FeedbackStatus,
	)

	// Best-effort external propagation; failures are logged and swallowed.
	if current.JiraTicketID != nil {
		if err := s.tracker.UpdateIssue(ctx, *current.JiraTicketID, entry); err != nil {
			slog.WarnContext(ctx, "ticket update failed",
				"error", err,
				"ticket_id", *current.JiraTicketID,
			)
		}
	}

	return updated, nil
}

// recognizedStatus returns the denormalized status a history entry implies,
// or nil when the entry does not exactly match one of the updatable statuses.
func recognizedStatus(description string) *model.FeedbackStatus {
	switch st := model.FeedbackStatus(description); st {
	case model.FeedbackStatusInProgress, model.FeedbackStatusResolved, model.FeedbackStatusClosed:
		return &st
	}
	return nil
}
