package roster

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hackgods/doctor-booking-assistant/pkg/logging"
)

// CacheKey holds the JSON roster snapshot shared by every process.
const CacheKey = "roster:doctors"

// CachedSource serves the snapshot stored in redis and falls back to the
// wrapped source, writing its result back. Redis errors degrade to the
// wrapped source; they never fail the load on their own.
type CachedSource struct {
	client *redis.Client
	next   Source
	ttl    time.Duration
	logger *logging.Logger
}

func NewCachedSource(client *redis.Client, next Source, ttl time.Duration, logger *logging.Logger) *CachedSource {
	if logger == nil {
		logger = logging.Default()
	}
	return &CachedSource{
		client: client,
		next:   next,
		ttl:    ttl,
		logger: logger,
	}
}

func (s *CachedSource) Load(ctx context.Context) ([]Doctor, error) {
	raw, err := s.client.Get(ctx, CacheKey).Bytes()
	switch {
	case err == nil:
		var doctors []Doctor
		if jsonErr := json.Unmarshal(raw, &doctors); jsonErr == nil && len(doctors) > 0 {
			s.logger.Debug("roster served from cache", "doctors", len(doctors))
			return doctors, nil
		}
		s.logger.Warn("discarding unreadable roster snapshot", "key", CacheKey)
	case errors.Is(err, redis.Nil):
	default:
		s.logger.Warn("roster cache unavailable", "error", err)
	}

	doctors, err := s.next.Load(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.store(ctx, doctors); err != nil {
		s.logger.Warn("roster cache write failed", "error", err)
	}
	return doctors, nil
}

func (s *CachedSource) store(ctx context.Context, doctors []Doctor) error {
	if len(doctors) == 0 {
		return nil
	}
	data, err := json.Marshal(doctors)
	if err != nil {
		return fmt.Errorf("marshal roster: %w", err)
	}
	return s.client.Set(ctx, CacheKey, data, s.ttl).Err()
}
