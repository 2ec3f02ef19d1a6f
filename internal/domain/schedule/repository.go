package schedule

import (
	"context"
	"time"

	"github.com/odontosys/clinic-api/internal/models"
)

type Repository interface {
	// -------- Clinic --------
	GetClinicByID(
		ctx context.Context,
		id uint,
	) (*models.Clinic, error)

	// -------- Service / Professional --------
	GetService(
		ctx context.Context,
		clinicID uint,
		serviceID uint,
	) (*models.Service, error)

	GetProfessional(
		ctx context.Context,
		clinicID uint,
		professionalID uint,
	) (*models.Professional, error)

	// -------- Client --------
	GetOrCreateClient(
		ctx context.Context,
		clinicID uint,
		name string,
		phone string,
	) (*models.Client, error)

	// -------- Associações profissional x serviço --------
	ListAssociationsByProfessional(
		ctx context.Context,
		professionalID uint,
	) ([]models.ProfessionalService, error)

	ListAssociationsByService(
		ctx context.Context,
		serviceID uint,
		onlyActive bool,
	) ([]models.ProfessionalService, error)

	// GetAssociation devolve (nil, nil) quando o par não existe;
	// erro só em falha real do banco.
	GetAssociation(
		ctx context.Context,
		professionalID uint,
		serviceID uint,
	) (*models.ProfessionalService, error)

	HasAssociations(
		ctx context.Context,
		professionalID uint,
	) (bool, error)

	CreateAssociation(
		ctx context.Context,
		assoc *models.ProfessionalService,
	) error

	UpdateAssociation(
		ctx context.Context,
		assoc *models.ProfessionalService,
	) error

	DeleteAssociation(
		ctx context.Context,
		id uint,
	) error

	GetDuration(
		ctx context.Context,
		professionalID uint,
		serviceID uint,
	) (*int, error)

	CanProfessionalPerformService(
		ctx context.Context,
		professionalID uint,
		serviceID uint,
	) (bool, error)

	// -------- Appointment --------

	// ScheduleAppointment resolve a duração, verifica conflito de intervalo
	// e insere, tudo na mesma transação.
	ScheduleAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	GetAppointmentForClinic(
		ctx context.Context,
		appointmentID uint,
		clinicID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// DeleteAppointment aplica as guardas (passado, trava do cliente)
	// dentro da transação de remoção.
	DeleteAppointment(
		ctx context.Context,
		appointmentID uint,
		clinicID uint,
		now time.Time,
	) error

	ListAppointmentsForDay(
		ctx context.Context,
		professionalID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		clinicID uint,
		professionalID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}
