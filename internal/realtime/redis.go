package realtime

import (
	"context"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const channelPrefix = "mireparto:cambios:"

// Canal returns the Pub/Sub channel of a collection.
func Canal(coleccion string) string { return channelPrefix + coleccion }

// RedisNotifier fans change signals out through Redis Pub/Sub so every
// server instance sees writes made by the others.
type RedisNotifier struct {
	client *redis.Client
}

func NewRedisNotifier(client *redis.Client) *RedisNotifier {
	return &RedisNotifier{client: client}
}

func (n *RedisNotifier) Publish(ctx context.Context, coleccion string) error {
	if err := n.client.Publish(ctx, Canal(coleccion), coleccion).Err(); err != nil {
		return fmt.Errorf("publicar cambio en %s: %w", coleccion, err)
	}
	return nil
}

// Subscribe waits for Redis to confirm the subscription before returning,
// so a Publish issued afterwards is never missed.
func (n *RedisNotifier) Subscribe(ctx context.Context, coleccion string) (<-chan struct{}, func(), error) {
	subCtx, stop := context.WithCancel(ctx)
	pubsub := n.client.Subscribe(subCtx, Canal(coleccion))

	if _, err := pubsub.Receive(subCtx); err != nil {
		stop()
		_ = pubsub.Close()
		return nil, nil, fmt.Errorf("suscribir a %s: %w", coleccion, err)
	}

	out := make(chan struct{}, 1)
	msgs := pubsub.Channel()
	var once sync.Once
	cancel := func() {
		once.Do(func() {
			stop()
			_ = pubsub.Close()
		})
	}

	go func() {
		defer cancel()
		for {
			select {
			case <-subCtx.Done():
				return
			case _, ok := <-msgs:
				if !ok {
					log.Warn().Str("coleccion", coleccion).Msg("realtime: canal cerrado")
					return
				}
				signal(out)
			}
		}
	}()
	return out, cancel, nil
}
