package notify

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odontosys/clinic-api/internal/models"
)

func TestChannelFor(t *testing.T) {
	assert.Equal(t, "notifications:7", ChannelFor(7))
}

func TestRedisPublisher_RoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	ctx := context.Background()

	sub := client.Subscribe(ctx, ChannelFor(7))
	t.Cleanup(func() { sub.Close() })

	// espera a assinatura estar ativa antes de publicar
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	pub := NewRedisPublisher(client)
	err = pub.Publish(ctx, 7, FeedEvent{
		Kind:         EventCreated,
		Notification: &models.Notification{ID: 42, UserID: 7, Title: "Novo agendamento"},
		UnreadCount:  3,
	})
	require.NoError(t, err)

	msg, err := sub.ReceiveTimeout(ctx, 2*time.Second)
	require.NoError(t, err)

	m, ok := msg.(*redis.Message)
	require.True(t, ok, "esperava mensagem do canal, veio %T", msg)

	var ev FeedEvent
	require.NoError(t, json.Unmarshal([]byte(m.Payload), &ev))

	assert.Equal(t, EventCreated, ev.Kind)
	assert.Equal(t, int64(3), ev.UnreadCount)
	require.NotNil(t, ev.Notification)
	assert.Equal(t, uint(42), ev.Notification.ID)
}
