package realtime

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const channel = "mealsection:events"

// RedisRelay publishes events to a Redis channel and feeds every message on
// that channel into the local hub, so each instance reaches its own clients.
type RedisRelay struct {
	client *redis.Client
	hub    *Hub
}

func NewRedisRelay(ctx context.Context, url string, hub *Hub) (*RedisRelay, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("can't parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("can't reach redis: %w", err)
	}
	return &RedisRelay{client: client, hub: hub}, nil
}

func (r *RedisRelay) Emit(event string, payload any) {
	msg, err := Encode(event, payload)
	if err != nil {
		zap.L().Error("can't encode realtime event", zap.String("event", event), zap.Error(err))
		return
	}
	if err := r.client.Publish(context.Background(), channel, msg).Err(); err != nil {
		zap.L().Error("redis publish failed, delivering locally", zap.String("event", event), zap.Error(err))
		r.hub.Deliver(msg)
	}
}

// Run forwards published events to the hub until ctx ends.
func (r *RedisRelay) Run(ctx context.Context) {
	sub := r.client.Subscribe(ctx, channel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case m, ok := <-ch:
			if !ok {
				return
			}
			r.hub.Deliver([]byte(m.Payload))
		}
	}
}

func (r *RedisRelay) Close() error {
	return r.client.Close()
}
