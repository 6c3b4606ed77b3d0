package events

import (
	"context"
	"testing"
	"time"

	"best-memories/models"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestNopPublisher(t *testing.T) {
	var publisher Publisher = NopPublisher{}
	assert.NoError(t, publisher.Publish(context.Background(), models.AlbumEvent{Type: models.AlbumCreated}))
}

func TestRedisPublisherDefaultsChannel(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	defer client.Close()

	assert.Equal(t, DefaultChannel, NewRedisPublisher(client, "").Channel())
	assert.Equal(t, "albums", NewRedisPublisher(client, "albums").Channel())
}

func TestRedisPublisherReportsUnreachableServer(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err := NewRedisPublisher(client, "albums").Publish(ctx, models.AlbumEvent{
		Type:    models.AlbumDeleted,
		AlbumID: "65f0c0ffee0000000000beef",
		At:      time.Now(),
	})
	assert.ErrorContains(t, err, "publish album.deleted event to albums")
}
