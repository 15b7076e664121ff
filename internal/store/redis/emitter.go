package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/linkforge/linkforge/internal/domain"
)

// Emitter publishes domain events to a Redis channel for real-time
// subscribers (dashboards, activity feeds).
type Emitter struct {
	client  *redis.Client
	channel string
}

// NewEmitter creates an emitter publishing on the given channel
func NewEmitter(client *redis.Client, channel string) *Emitter {
	return &Emitter{
		client:  client,
		channel: channel,
	}
}

// Emit publishes one event as JSON
func (e *Emitter) Emit(ctx context.Context, event domain.LinkEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal link event: %w", err)
	}

	if err := e.client.Publish(ctx, e.channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish link event: %w", err)
	}

	return nil
}
