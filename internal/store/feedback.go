package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wfdeller/feedback/internal/model"
)

const feedbackColumns = `id, user_id, user_name, user_email, application_id, title, description,
	priority, submitted_date, feedback_status, jira_ticket_id, status, created_at, updated_at`

type feedbackStore struct {
	pool *pgxpool.Pool
}

func newFeedbackStore(pool *pgxpool.Pool) FeedbackStore {
	return &feedbackStore{pool: pool}
}

func (s *feedbackStore) Create(ctx context.Context, req *model.FeedbackRequest) error {
	if err := validateCreate(req); err != nil {
		return err
	}

	// History is never empty: seed it unless the caller supplied entries.
	if len(req.Status) == 0 {
		req.Status = []model.StatusEntry{{
			Description: "Request created",
			StatusDate:  time.Now(),
		}}
	}
	for i := range req.Status {
		if req.Status[i].StatusDate.IsZero() {
			req.Status[i].StatusDate = time.Now()
		}
	}

	if req.Priority == "" {
		req.Priority = model.PriorityMedium
	}
	if req.FeedbackStatus == "" {
		req.FeedbackStatus = model.FeedbackStatusOpen
	}
	if req.SubmittedDate.IsZero() {
		req.SubmittedDate = time.Now()
	}

	statusJSON, err := json.Marshal(req.Status)
	if err != nil {
		return fmt.Errorf("marshaling status history: %w", err)
	}

	row := s.pool.QueryRow(ctx, `
		INSERT INTO feedback_requests (
			id, user_id, user_name, user_email, application_id, title, description,
			priority, submitted_date, feedback_status, jira_ticket_id, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING `+feedbackColumns,
		req.ID, req.UserID, req.UserName, req.UserEmail, req.ApplicationID,
		req.Title, req.Description, string(req.Priority), req.SubmittedDate,
		string(req.FeedbackStatus), req.JiraTicketID, statusJSON,
	)

	created, err := scanFeedback(row)
	if err != nil {
		return err
	}
	*req = *created
	return nil
}

func (s *feedbackStore) GetByID(ctx context.Context, id int64) (*model.FeedbackRequest, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+feedbackColumns+` FROM feedback_requests WHERE id = $1`, id)

	req, err := scanFeedback(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return req, nil
}

func (s *feedbackStore) List(ctx context.Context, filter Filter) ([]model.FeedbackRequest, error) {
	query := `SELECT ` + feedbackColumns + ` FROM feedback_requests`

	var (
		clauses []string
		args    []any
	)
	if filter.UserID != "" {
		args = append(args, filter.UserID)
		clauses = append(clauses, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if filter.ApplicationID != "" {
		args = append(args, filter.ApplicationID)
		clauses = append(clauses, fmt.Sprintf("application_id = $%d", len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY submitted_date"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.FeedbackRequest
	for rows.Next() {
		req, err := scanFeedback(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *req)
	}
	return result, rows.Err()
}

func (s *feedbackStore) Update(ctx context.Context, id int64, params UpdateParams) (*model.FeedbackRequest, error) {
	var priority, status *string
	if params.Priority != nil {
		p := string(*params.Priority)
		priority = &p
	}
	if params.FeedbackStatus != nil {
		st := string(*params.FeedbackStatus)
		status = &st
	}

	var statusJSON []byte
	if params.Status != nil {
		var err error
		statusJSON, err = json.Marshal(params.Status)
		if err != nil {
			return nil, fmt.Errorf("marshaling status history: %w", err)
		}
	}

	row := s.pool.QueryRow(ctx, `
		UPDATE feedback_requests SET
			title           = COALESCE($2, title),
			description     = COALESCE($3, description),
			priority        = COALESCE($4, priority),
			feedback_status = COALESCE($5, feedback_status),
			jira_ticket_id  = COALESCE($6, jira_ticket_id),
			status          = COALESCE($7::jsonb, status),
			updated_at      = now()
		WHERE id = $1
		RETURNING `+feedbackColumns,
		id, params.Title, params.Description, priority, status,
		params.JiraTicketID, statusJSON,
	)

	req, err := scanFeedback(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return req, nil
}

// AppendStatus appends one entry to the history inside a single UPDATE. The
// append happens server-side (status || entry) so two concurrent callers both
// land their entries - nobody read-modify-writes the whole array.
func (s *feedbackStore) AppendStatus(ctx context.Context, id int64, params AppendStatusParams) (*model.FeedbackRequest, error) {
	entry := params.Entry
	if entry.StatusDate.IsZero() {
		entry.StatusDate = time.Now()
	}
	if entry.Description == "" {
		return nil, fmt.Errorf("%w: status entry description is required", ErrValidation)
	}

	entryJSON, err := json.Marshal(entry)
	if err != nil {
		return nil, fmt.Errorf("marshaling status entry: %w", err)
	}

	var status *string
	if params.FeedbackStatus != nil {
		st := string(*params.FeedbackStatus)
		status = &st
	}

	row := s.pool.QueryRow(ctx, `
		UPDATE feedback_requests SET
			status          = status || $2::jsonb,
			feedback_status = COALESCE($3, feedback_status),
			jira_ticket_id  = COALESCE($4, jira_ticket_id),
			updated_at      = now()
		WHERE id = $1
		RETURNING `+feedbackColumns,
		id, entryJSON, status, params.JiraTicketID,
	)

	req, err := scanFeedback(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return req, nil
}

func validateCreate(req *model.FeedbackRequest) error {
	switch {
	case strings.TrimSpace(req.UserID) == "":
		return fmt.Errorf("%w: userId is required", ErrValidation)
	case strings.TrimSpace(req.ApplicationID) == "":
		return fmt.Errorf("%w: applicationId is required", ErrValidation)
	case strings.TrimSpace(req.Title) == "":
		return fmt.Errorf("%w: title is required", ErrValidation)
	case strings.TrimSpace(req.Description) == "":
		return fmt.Errorf("%w: description is required", ErrValidation)
	}
	if req.Priority != "" && !req.Priority.Valid() {
		return fmt.Errorf("%w: unknown priority %q", ErrValidation, req.Priority)
	}
	if req.FeedbackStatus != "" && !req.FeedbackStatus.Valid() {
		return fmt.Errorf("%w: unknown feedback status %q", ErrValidation, req.FeedbackStatus)
	}
	return nil
}

func scanFeedback(row pgx.Row) (*model.FeedbackRequest, error) {
	var (
		req        model.FeedbackRequest
		priority   string
		status     string
		statusJSON []byte
	)
	err := row.Scan(
		&req.ID, &req.UserID, &req.UserName, &req.UserEmail, &req.ApplicationID,
		&req.Title, &req.Description, &priority, &req.SubmittedDate, &status,
		&req.JiraTicketID, &statusJSON, &req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	req.Priority = model.Priority(priority)
	req.FeedbackStatus = model.FeedbackStatus(status)

	if len(statusJSON) > 0 {
		if err := json.Unmarshal(statusJSON, &req.Status); err != nil {
			return nil, fmt.Errorf("unmarshaling status history: %w", err)
		}
	}

	return &req, nil
}
