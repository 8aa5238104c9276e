package notify

import (
	"context"
	"encoding/json"

	"github.com/go-redis/redis/v8"
)

const Channel = "bookings.status_changed"

// RedisPublisher broadcasts status events over a redis pub/sub channel.
type RedisPublisher struct {
	rdb *redis.Client
}

func NewRedisPublisher(url string) (*RedisPublisher, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return &RedisPublisher{rdb: redis.NewClient(opts)}, nil
}

func (p *RedisPublisher) Publish(ctx context.Context, ev StatusChanged) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.rdb.Publish(ctx, Channel, payload).Err()
}

func (p *RedisPublisher) Close() error {
	return p.rdb.Close()
}
