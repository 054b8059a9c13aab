package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS feedback_requests (
	id              BIGINT PRIMARY KEY,
	user_id         TEXT NOT NULL,
	user_name       TEXT NOT NULL DEFAULT '',
	user_email      TEXT NOT NULL DEFAULT '',
	application_id  TEXT NOT NULL,
	title           TEXT NOT NULL,
	description     TEXT NOT NULL,
	priority        TEXT NOT NULL DEFAULT 'Medium',
	submitted_date  TIMESTAMPTZ NOT NULL DEFAULT now(),
	feedback_status TEXT NOT NULL DEFAULT 'Open',
	jira_ticket_id  TEXT,
	status          JSONB NOT NULL DEFAULT '[]'::jsonb,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_feedback_requests_user_app
	ON feedback_requests (user_id, application_id);
`

// EnsureSchema creates the feedback_requests table if it does not exist.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensuring schema: %w", err)
	}
	return nil
}
