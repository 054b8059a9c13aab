package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/wfdeller/feedback/internal/model"
)

// MockTracker generates ticket ids locally without calling any external
// system. Used in development when no Jira credentials are configured.
type MockTracker struct {
	projectKey string
}

func NewMockTracker(projectKey string) *MockTracker {
	return &MockTracker{projectKey: projectKey}
}

func (m *MockTracker) CreateIssue(ctx context.Context, req *model.FeedbackRequest) (string, error) {
	ticketID := fmt.Sprintf("%s-%d", m.projectKey, rand.IntN(10000))
	slog.InfoContext(ctx, "created mock ticket", "ticket_id", ticketID, "title", req.Title)
	return ticketID, nil
}

func (m *MockTracker) UpdateIssue(ctx context.Context, ticketID string, entry model.StatusEntry) error {
	slog.InfoContext(ctx, "updated mock ticket", "ticket_id", ticketID, "status", entry.Description)
	return nil
}
