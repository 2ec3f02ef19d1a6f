package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/odontosys/clinic-api/internal/audit"
	domain "github.com/odontosys/clinic-api/internal/domain/schedule"
	"github.com/odontosys/clinic-api/internal/models"
)

// stubRepository implementa domain.Repository com comportamento
// configurável por teste. Métodos não configurados têm um padrão
// inofensivo.
type stubRepository struct {
	clinic       *models.Clinic
	professional *models.Professional
	service      *models.Service
	client       *models.Client

	hasAssociations bool
	association     *models.ProfessionalService

	scheduleFn func(ctx context.Context, ap *models.Appointment) error
	deleteFn   func(ctx context.Context, id, clinicID uint, now time.Time) error

	scheduled []*models.Appointment
	updated   []*models.Appointment

	appointments []models.Appointment
}

func newStubRepository() *stubRepository {
	return &stubRepository{
		clinic:       &models.Clinic{ID: 1, Timezone: "America/Sao_Paulo"},
		professional: &models.Professional{ID: 10, ClinicID: 1, Name: "Dra. Ana"},
		service:      &models.Service{ID: 20, ClinicID: 1, Name: "Limpeza", DurationMinutes: 30},
		client:       &models.Client{ID: 30, ClinicID: 1, Name: "João", Phone: "11999990000"},
	}
}

func (s *stubRepository) GetClinicByID(ctx context.Context, id uint) (*models.Clinic, error) {
	return s.clinic, nil
}

func (s *stubRepository) GetService(ctx context.Context, clinicID, serviceID uint) (*models.Service, error) {
	if s.service == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.service, nil
}

func (s *stubRepository) GetProfessional(ctx context.Context, clinicID, professionalID uint) (*models.Professional, error) {
	if s.professional == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.professional, nil
}

func (s *stubRepository) GetOrCreateClient(ctx context.Context, clinicID uint, name, phone string) (*models.Client, error) {
	return s.client, nil
}

func (s *stubRepository) ListAssociationsByProfessional(ctx context.Context, professionalID uint) ([]models.ProfessionalService, error) {
	if s.association == nil {
		return nil, nil
	}
	return []models.ProfessionalService{*s.association}, nil
}

func (s *stubRepository) ListAssociationsByService(ctx context.Context, serviceID uint, onlyActive bool) ([]models.ProfessionalService, error) {
	return nil, nil
}

func (s *stubRepository) GetAssociation(ctx context.Context, professionalID, serviceID uint) (*models.ProfessionalService, error) {
	return s.association, nil
}

func (s *stubRepository) HasAssociations(ctx context.Context, professionalID uint) (bool, error) {
	return s.hasAssociations, nil
}

func (s *stubRepository) CreateAssociation(ctx context.Context, assoc *models.ProfessionalService) error {
	return nil
}

func (s *stubRepository) UpdateAssociation(ctx context.Context, assoc *models.ProfessionalService) error {
	return nil
}

func (s *stubRepository) DeleteAssociation(ctx context.Context, id uint) error {
	return nil
}

func (s *stubRepository) GetDuration(ctx context.Context, professionalID, serviceID uint) (*int, error) {
	return domain.AssociationDuration(s.association), nil
}

func (s *stubRepository) CanProfessionalPerformService(ctx context.Context, professionalID, serviceID uint) (bool, error) {
	return domain.CanPerform(s.association), nil
}

func (s *stubRepository) ScheduleAppointment(ctx context.Context, ap *models.Appointment) error {
	if s.scheduleFn != nil {
		if err := s.scheduleFn(ctx, ap); err != nil {
			return err
		}
	}
	minutes, err := domain.ResolveDuration(s.hasAssociations, s.association, s.service)
	if err != nil {
		return err
	}
	ap.ID = uint(len(s.scheduled) + 1)
	ap.EndTime = domain.EndTime(ap.StartTime, minutes)
	s.scheduled = append(s.scheduled, ap)
	return nil
}

func (s *stubRepository) GetAppointmentForClinic(ctx context.Context, appointmentID, clinicID uint) (*models.Appointment, error) {
	for i := range s.appointments {
		if s.appointments[i].ID == appointmentID {
			return &s.appointments[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRepository) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	s.updated = append(s.updated, ap)
	return nil
}

func (s *stubRepository) DeleteAppointment(ctx context.Context, appointmentID, clinicID uint, now time.Time) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, appointmentID, clinicID, now)
	}
	return nil
}

func (s *stubRepository) ListAppointmentsForDay(ctx context.Context, professionalID uint, start, end time.Time) ([]models.Appointment, error) {
	return s.appointments, nil
}

func (s *stubRepository) ListAppointmentsForPeriod(ctx context.Context, clinicID, professionalID uint, start, end time.Time) ([]models.Appointment, error) {
	return s.appointments, nil
}

var _ domain.Repository = (*stubRepository)(nil)

// newTestDispatcher monta um dispatcher real sobre um banco falso; o
// worker assíncrono nunca derruba o teste, no máximo loga o erro.
func newTestDispatcher(t *testing.T) *audit.Dispatcher {
	t.Helper()

	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return audit.NewDispatcher(audit.New(gormDB))
}
