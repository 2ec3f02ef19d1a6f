package notify

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/odontosys/clinic-api/internal/models"
)

const DefaultPageSize = 5

type ListInput struct {
	UserID     uint
	Limit      int
	Offset     int
	UnreadOnly bool
}

// Service concentra as operações do feed de notificações. Toda mutação
// publica o evento correspondente para os assinantes do usuário.
type Service struct {
	db  *gorm.DB
	pub Publisher
}

func NewService(db *gorm.DB, pub Publisher) *Service {
	if pub == nil {
		pub = NopPublisher{}
	}
	return &Service{db: db, pub: pub}
}

func (s *Service) List(ctx context.Context, in ListInput) ([]models.Notification, error) {
	limit := in.Limit
	if limit <= 0 {
		limit = DefaultPageSize
	}

	q := s.db.WithContext(ctx).
		Where("user_id = ?", in.UserID)

	if in.UnreadOnly {
		q = q.Where("read_at IS NULL")
	}

	var notifications []models.Notification
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset(in.Offset).
		Find(&notifications).Error; err != nil {
		return nil, err
	}

	return notifications, nil
}

func (s *Service) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Count(&count).Error
	return count, err
}

func (s *Service) Create(ctx context.Context, n *models.Notification) error {
	if err := s.db.WithContext(ctx).Create(n).Error; err != nil {
		return err
	}

	count, _ := s.UnreadCount(ctx, n.UserID)
	publish(ctx, s.pub, n.UserID, FeedEvent{
		Kind:         EventCreated,
		Notification: n,
		UnreadCount:  count,
	})

	return nil
}

// MarkRead é idempotente: remarcar uma notificação já lida não tem efeito
// colateral e não publica evento. Devolve (nil, nil) quando não existe.
func (s *Service) MarkRead(ctx context.Context, userID uint, id uint) (*models.Notification, error) {
	var n models.Notification
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&n).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if n.ReadAt != nil {
		return &n, nil
	}

	now := time.Now()
	res := s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ? AND user_id = ? AND read_at IS NULL", id, userID).
		Update("read_at", now)
	if res.Error != nil {
		return nil, res.Error
	}

	n.ReadAt = &now

	if res.RowsAffected > 0 {
		count, _ := s.UnreadCount(ctx, userID)
		publish(ctx, s.pub, userID, FeedEvent{
			Kind:         EventRead,
			Notification: &n,
			UnreadCount:  count,
		})
	}

	return &n, nil
}

// MarkAllRead marca tudo de uma vez; chamadas repetidas são no-ops.
func (s *Service) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	now := time.Now()
	res := s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Update("read_at", now)
	if res.Error != nil {
		return 0, res.Error
	}

	if res.RowsAffected > 0 {
		publish(ctx, s.pub, userID, FeedEvent{
			Kind:        EventReadAll,
			UnreadCount: 0,
		})
	}

	return res.RowsAffected, nil
}

func (s *Service) Delete(ctx context.Context, userID uint, id uint) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Notification{})
	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected > 0 {
		count, _ := s.UnreadCount(ctx, userID)
		publish(ctx, s.pub, userID, FeedEvent{
			Kind:        EventDeleted,
			UnreadCount: count,
		})
	}

	return nil
}

func (s *Service) DeleteAllRead(ctx context.Context, userID uint) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("user_id = ? AND read_at IS NOT NULL", userID).
		Delete(&models.Notification{})
	return res.RowsAffected, res.Error
}
