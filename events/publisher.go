package events

import (
	"context"
	"encoding/json"
	"fmt"

	"best-memories/models"

	"github.com/redis/go-redis/v9"
)

const DefaultChannel = "best-memories:albums"

// Publisher fans album changes out to other services. Callers log failures and carry on.
type Publisher interface {
	Publish(ctx context.Context, event models.AlbumEvent) error
}

type RedisPublisher struct {
	client  *redis.Client
	channel string
}

func NewRedisPublisher(client *redis.Client, channel string) *RedisPublisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisPublisher{
		client:  client,
		channel: channel,
	}
}

func (p *RedisPublisher) Publish(ctx context.Context, event models.AlbumEvent) error {
	jsonData, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event.Type, err)
	}
	if err := p.client.Publish(ctx, p.channel, jsonData).Err(); err != nil {
		return fmt.Errorf("publish %s event to %s: %w", event.Type, p.channel, err)
	}
	return nil
}

func (p *RedisPublisher) Channel() string {
	return p.channel
}

// NopPublisher is used when no Redis is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, event models.AlbumEvent) error {
	return nil
}
