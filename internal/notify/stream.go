package notify

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
)

// Stream entrega o feed ao vivo por WebSocket: cada conexão assina o canal
// Redis do usuário e repassa os eventos já serializados.
type Stream struct {
	redis    *redis.Client
	upgrader websocket.Upgrader
}

func NewStream(client *redis.Client) *Stream {
	return &Stream{
		redis: client,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// o CORS da API já restringe a origem
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

func (s *Stream) Serve(w http.ResponseWriter, r *http.Request, userID uint) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("feed upgrade error:", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	pubsub := s.redis.Subscribe(ctx, ChannelFor(userID))
	defer pubsub.Close()

	// descarta o que o cliente mandar; serve só para detectar desconexão
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return

		case msg, ok := <-ch:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				return
			}

		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
