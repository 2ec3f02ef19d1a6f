package notify

import "github.com/odontosys/clinic-api/internal/models"

// Tipos de evento empurrados para o feed ao vivo.
const (
	EventCreated = "created"
	EventRead    = "read"
	EventReadAll = "read_all"
	EventDeleted = "deleted"
)

// FeedEvent é o que o dashboard recebe pelo stream. UnreadCount é sempre o
// valor corrente lido do banco após a mutação, nunca negativo — eventos de
// leitura concorrentes não conseguem levar o contador abaixo de zero.
type FeedEvent struct {
	Kind         string               `json:"kind"`
	Notification *models.Notification `json:"notification,omitempty"`
	UnreadCount  int64                `json:"unread_count"`
}
