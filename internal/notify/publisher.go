package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/go-redis/redis/v8"
)

// Publisher fan-out dos eventos do feed. A implementação padrão publica em
// Redis pub/sub; os testes usam um stub.
type Publisher interface {
	Publish(ctx context.Context, userID uint, ev FeedEvent) error
}

// ChannelFor é o canal de feed de um usuário.
func ChannelFor(userID uint) string {
	return fmt.Sprintf("notifications:%d", userID)
}

type RedisPublisher struct {
	client *redis.Client
}

func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

func (p *RedisPublisher) Publish(ctx context.Context, userID uint, ev FeedEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, ChannelFor(userID), payload).Err()
}

// NopPublisher descarta eventos; usado quando o Redis não está configurado.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, uint, FeedEvent) error { return nil }

// publish nunca propaga falha do feed para a operação que a originou.
func publish(ctx context.Context, pub Publisher, userID uint, ev FeedEvent) {
	if pub == nil {
		return
	}
	if err := pub.Publish(ctx, userID, ev); err != nil {
		log.Println("notification feed publish error:", err)
	}
}
