// Package notifications publishes moderation events into Redis channels.
package notifications

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// AdminEventsChannel carries moderation and report events for admin dashboards.
const AdminEventsChannel = "agora:admin:events"

// Event is the payload published on AdminEventsChannel.
type Event struct {
	Type       string    `json:"type"`
	TargetType string    `json:"target_type,omitempty"`
	TargetID   uint      `json:"target_id,omitempty"`
	ActorID    uint      `json:"actor_id,omitempty"`
	Reason     string    `json:"reason,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Notifier provides helpers to publish events into Redis channels
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// PublishAdminEvent sends an event to the admin channel. Publishing is
// best-effort; a nil client is a no-op so tests and cache-less deployments
// work unchanged.
func (n *Notifier) PublishAdminEvent(ctx context.Context, ev Event) error {
	if n == nil || n.rdb == nil {
		return nil
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return n.rdb.Publish(ctx, AdminEventsChannel, payload).Err()
}
