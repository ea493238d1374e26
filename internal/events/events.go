package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/thebiblebus/biblebus-backend/internal/config"
)

// Event types published on the lifecycle channel.
const (
	TypeGroupCreated     = "group_created"
	TypeStatusChanged    = "status_changed"
	TypeMemberAssigned   = "member_assigned"
	TypeGroupsNormalized = "groups_normalized"
)

// Event is a group lifecycle notification, fanned out to admin dashboards.
type Event struct {
	Type       string    `json:"type"`
	GroupID    int       `json:"group_id,omitempty"`
	GroupName  string    `json:"group_name,omitempty"`
	Status     string    `json:"status,omitempty"`
	UserID     int       `json:"user_id,omitempty"`
	Detail     string    `json:"detail,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher fans lifecycle events out to listeners. Publishing is
// best-effort; a lost event never fails the operation that produced it.
type Publisher interface {
	Publish(ctx context.Context, ev Event)
}

// RedisPublisher publishes events on the shared Redis PubSub channel.
type RedisPublisher struct {
	rdb *redis.Client
	log zerolog.Logger
}

// NewRedisPublisher creates a RedisPublisher.
func NewRedisPublisher(rdb *redis.Client, log zerolog.Logger) *RedisPublisher {
	return &RedisPublisher{
		rdb: rdb,
		log: log.With().Str("component", "events").Logger(),
	}
}

// Publish marshals the event and pushes it onto the lifecycle channel.
func (p *RedisPublisher) Publish(ctx context.Context, ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		p.log.Error().Err(err).Str("type", ev.Type).Msg("Marshal event failed")
		return
	}
	if err := p.rdb.Publish(ctx, config.CacheKey.LifecycleChannel(), payload).Err(); err != nil {
		p.log.Warn().Err(err).Str("type", ev.Type).Msg("Publish event failed")
	}
}

// NopPublisher discards all events. Used in tests and one-off commands.
type NopPublisher struct{}

// Publish implements Publisher.
func (NopPublisher) Publish(context.Context, Event) {}
