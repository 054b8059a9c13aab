package store

import "github.com/jackc/pgx/v5/pgxpool"

// Stores bundles all store implementations behind their interfaces.
type Stores struct {
	feedback FeedbackStore
}

func NewStores(pool *pgxpool.Pool) *Stores {
	return &Stores{
		feedback: newFeedbackStore(pool),
	}
}

func (s *Stores) Feedback() FeedbackStore {
	return s.feedback
}
