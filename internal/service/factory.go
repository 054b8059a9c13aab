package service

import (
	"github.com/wfdeller/feedback/internal/directory"
	"github.com/wfdeller/feedback/internal/store"
	"github.com/wfdeller/feedback/internal/tracker"
)

// Services bundles all service implementations behind their interfaces.
type Services struct {
	feedback  FeedbackService
	directory directory.Service
}

type ServicesConfig struct {
	Stores    *store.Stores
	Directory directory.Service
	Tracker   tracker.IssueTracker
}

func NewServices(cfg ServicesConfig) *Services {
	return &Services{
		feedback:  NewFeedbackService(cfg.Stores.Feedback(), cfg.Directory, cfg.Tracker),
		directory: cfg.Directory,
	}
}

func (s *Services) Feedback() FeedbackService {
	return s.feedback
}

func (s *Services) Directory() directory.Service {
	return s.directory
}
