package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"analyseme/internal/model"
)

// ResultCache handles Redis operations for completed assessment outcomes.
// A retried enrichment that succeeds replaces the cached outcome wholesale;
// there is no merging.
type ResultCache interface {
	Get(ctx context.Context, sessionID string) (*model.AssessmentOutcome, error)
	Set(ctx context.Context, sessionID string, outcome *model.AssessmentOutcome) error
}

type resultCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResultCache creates a new result cache
func NewResultCache(client *redis.Client) ResultCache {
	return &resultCache{
		client: client,
		ttl:    24 * time.Hour,
	}
}

func resultKey(sessionID string) string {
	return "assessment:result:" + sessionID
}

func (c *resultCache) Get(ctx context.Context, sessionID string) (*model.AssessmentOutcome, error) {
	data, err := c.client.Get(ctx, resultKey(sessionID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var outcome model.AssessmentOutcome
	if err := json.Unmarshal([]byte(data), &outcome); err != nil {
		return nil, err
	}
	return &outcome, nil
}

func (c *resultCache) Set(ctx context.Context, sessionID string, outcome *model.AssessmentOutcome) error {
	data, err := json.Marshal(outcome)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, resultKey(sessionID), data, c.ttl).Err()
}
