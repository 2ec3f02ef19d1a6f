package reminder

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/odontosys/clinic-api/internal/models"
	"github.com/odontosys/clinic-api/internal/notify"
	"github.com/odontosys/clinic-api/internal/timezone"
)

// Service varre os agendamentos que começam dentro da janela de lembrete,
// gera a notificação do profissional e envia SMS ao cliente. Cada
// agendamento é lembrado no máximo uma vez (carimbo reminded_at).
type Service struct {
	db            *gorm.DB
	notifications *notify.Service
	sms           SMSSender
	window        time.Duration
}

func NewService(
	db *gorm.DB,
	notifications *notify.Service,
	sms SMSSender,
	windowMinutes int,
) *Service {
	if windowMinutes <= 0 {
		windowMinutes = 24 * 60
	}
	return &Service{
		db:            db,
		notifications: notifications,
		sms:           sms,
		window:        time.Duration(windowMinutes) * time.Minute,
	}
}

func (s *Service) StartScheduler() *cron.Cron {
	c := cron.New()

	if _, err := c.AddFunc("@every 30m", s.Run); err != nil {
		log.Printf("failed to schedule reminders: %v", err)
		return c
	}

	c.Start()
	log.Println("reminder scheduler started")
	return c
}

func (s *Service) Run() {
	ctx := context.Background()
	now := timezone.NowIn(timezone.DefaultTimezone)

	var appointments []models.Appointment
	if err := s.db.WithContext(ctx).
		Preload("Client").
		Preload("Professional").
		Preload("Service").
		Where(
			"status = ? AND reminded_at IS NULL AND start_time > ? AND start_time <= ?",
			"scheduled", now, now.Add(s.window),
		).
		Order("start_time ASC").
		Find(&appointments).Error; err != nil {
		log.Printf("reminder scan failed: %v", err)
		return
	}

	for i := range appointments {
		s.remind(ctx, &appointments[i], now)
	}
}

func (s *Service) remind(ctx context.Context, ap *models.Appointment, now time.Time) {
	// só carimba se ninguém carimbou antes; outra instância pode ter passado
	res := s.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ? AND reminded_at IS NULL", ap.ID).
		Update("reminded_at", now)
	if res.Error != nil || res.RowsAffected == 0 {
		return
	}

	when := ap.StartTime.Format("02/01 15:04")

	var user models.User
	if err := s.db.WithContext(ctx).
		Where("professional_id = ?", ap.ProfessionalID).
		First(&user).Error; err == nil {

		n := &models.Notification{
			UserID:        user.ID,
			Title:         "Atendimento em breve",
			Message:       fmt.Sprintf("%s — %s às %s", ap.CustomerName, ap.Service.Name, when),
			AppointmentID: &ap.ID,
		}
		if err := s.notifications.Create(ctx, n); err != nil {
			log.Printf("reminder notification failed for appointment %d: %v", ap.ID, err)
		}
	}

	if ap.CustomerPhone != "" {
		body := fmt.Sprintf(
			"Olá %s! Lembrete: %s com %s em %s.",
			ap.CustomerName, ap.Service.Name, ap.Professional.Name, when,
		)
		if err := s.sms.Send(ap.CustomerPhone, body); err != nil {
			log.Printf("reminder sms failed for appointment %d: %v", ap.ID, err)
		}
	}
}
