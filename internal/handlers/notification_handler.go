package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/odontosys/clinic-api/internal/httperr"
	"github.com/odontosys/clinic-api/internal/httpresp"
	"github.com/odontosys/clinic-api/internal/middleware"
	"github.com/odontosys/clinic-api/internal/notify"
)

type NotificationHandler struct {
	svc    *notify.Service
	stream *notify.Stream
}

func NewNotificationHandler(svc *notify.Service, stream *notify.Stream) *NotificationHandler {
	return &NotificationHandler{svc: svc, stream: stream}
}

// List pagina o feed do usuário logado, mais recentes primeiro.
// ?unread=true restringe às não lidas.
func (h *NotificationHandler) List(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	notifications, err := h.svc.List(c.Request.Context(), notify.ListInput{
		UserID:     userID,
		Limit:      limit,
		Offset:     offset,
		UnreadOnly: c.Query("unread") == "true",
	})
	if err != nil {
		httperr.Internal(c, "failed_to_list_notifications", "Erro ao listar notificações.")
		return
	}

	httpresp.List(c, notifications)
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	count, err := h.svc.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		httperr.Internal(c, "failed_to_count_notifications", "Erro ao contar notificações.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"unread": count})
}

// MarkRead é idempotente: marcar uma notificação já lida devolve o
// mesmo estado, sem novo evento no feed.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	n, err := h.svc.MarkRead(c.Request.Context(), userID, id)
	if err != nil {
		httperr.Internal(c, "failed_to_mark_notification", "Erro ao marcar notificação.")
		return
	}
	if n == nil {
		httperr.NotFound(c, "notification_not_found", "Notificação não encontrada.")
		return
	}

	c.JSON(http.StatusOK, n)
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	updated, err := h.svc.MarkAllRead(c.Request.Context(), userID)
	if err != nil {
		httperr.Internal(c, "failed_to_mark_notifications", "Erro ao marcar notificações.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

func (h *NotificationHandler) Delete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), userID, id); err != nil {
		httperr.Internal(c, "failed_to_delete_notification", "Erro ao remover notificação.")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *NotificationHandler) DeleteAllRead(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	deleted, err := h.svc.DeleteAllRead(c.Request.Context(), userID)
	if err != nil {
		httperr.Internal(c, "failed_to_delete_notifications", "Erro ao remover notificações.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// Stream abre o websocket do feed ao vivo. Sem Redis configurado
// o recurso fica indisponível.
func (h *NotificationHandler) Stream(c *gin.Context) {
	if h.stream == nil {
		httperr.Write(c, http.StatusServiceUnavailable,
			"stream_unavailable", "Feed ao vivo indisponível.")
		return
	}

	userID := c.MustGet(middleware.ContextUserID).(uint)
	h.stream.Serve(c.Writer, c.Request, userID)
}
