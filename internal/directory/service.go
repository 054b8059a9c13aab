package directory

import (
	"context"
	"log/slog"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Service resolves user identities with read-your-writes caching. Lookup
// failures degrade to a placeholder record rather than erroring; degraded
// records are cached too, on a shorter TTL, so a transient directory outage
// does not stick for the full success window.
type Service interface {
	Resolve(ctx context.Context, userID string) (*UserInfo, error)
	Invalidate(userID string)
}

type service struct {
	fetcher    Fetcher
	cache      *gocache.Cache
	failureTTL time.Duration
}

// NewService wraps a Fetcher with a TTL cache. Entries expire after ttl
// (failures after failureTTL); a single janitor goroutine sweeps expired
// entries rather than one timer per key.
func NewService(fetcher Fetcher, ttl, failureTTL time.Duration) Service {
	return &service{
		fetcher:    fetcher,
		cache:      gocache.New(ttl, time.Minute),
		failureTTL: failureTTL,
	}
}

func (s *service) Resolve(ctx context.Context, userID string) (*UserInfo, error) {
	if userID == "" {
		return nil, ErrUserIDRequired
	}

	if cached, ok := s.cache.Get(userID); ok {
		return cached.(*UserInfo), nil
	}

	info, err := s.fetcher.Fetch(ctx, userID)
	if err != nil {
		slog.WarnContext(ctx, "directory lookup failed, using fallback identity",
			"error", err,
			"user_id", userID,
		)
		info = &UserInfo{
			UserID:   userID,
			UserName: FallbackName(userID),
			Email:    "",
			Err:      err.Error(),
		}
		s.cache.Set(userID, info, s.failureTTL)
		return info, nil
	}

	s.cache.Set(userID, info, gocache.DefaultExpiration)
	return info, nil
}

// Invalidate drops the cached record for a user so the next Resolve refetches.
// Administrative hook for out-of-band directory corrections.
func (s *service) Invalidate(userID string) {
	s.cache.Delete(userID)
}
