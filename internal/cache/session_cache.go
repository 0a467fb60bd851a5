package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"analyseme/internal/model"
)

// Session accumulates a citizen's answers one at a time until completion.
// This is presentation-layer state: the core only ever sees the final
// immutable snapshot of Answers.
type Session struct {
	ID                string          `json:"id"`
	Answers           model.AnswerSet `json:"answers"`
	AdditionalContext string          `json:"additional_context"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// SessionCache handles Redis operations for in-progress assessments
type SessionCache interface {
	Get(ctx context.Context, id string) (*Session, error)
	Set(ctx context.Context, session *Session) error
}

type sessionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionCache creates a new session cache
func NewSessionCache(client *redis.Client) SessionCache {
	return &sessionCache{
		client: client,
		ttl:    2 * time.Hour,
	}
}

func sessionKey(id string) string {
	return "assessment:session:" + id
}

func (c *sessionCache) Get(ctx context.Context, id string) (*Session, error) {
	data, err := c.client.Get(ctx, sessionKey(id)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var session Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *sessionCache) Set(ctx context.Context, session *Session) error {
	session.UpdatedAt = time.Now()
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, sessionKey(session.ID), data, c.ttl).Err()
}
