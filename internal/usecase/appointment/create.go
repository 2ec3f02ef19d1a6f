package appointment

import (
	"context"
	"strings"

	"github.com/odontosys/clinic-api/internal/audit"
	domain "github.com/odontosys/clinic-api/internal/domain/schedule"
	"github.com/odontosys/clinic-api/internal/httperr"
	"github.com/odontosys/clinic-api/internal/models"
	"github.com/odontosys/clinic-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ClinicID uint
	UserID   uint

	CustomerName  string
	CustomerPhone string

	ProfessionalID uint
	ServiceID      uint

	Date  string // YYYY-MM-DD
	Time  string // HH:mm
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
	}
}

// Execute aplica as regras de criação em ordem; a primeira que falhar
// aborta sem efeito colateral. A resolução de duração, a checagem de
// sobreposição e o insert acontecem numa única transação no repositório.
func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	if strings.TrimSpace(in.CustomerName) == "" {
		return nil, httperr.ErrBusiness("missing_customer_name")
	}
	if strings.TrimSpace(in.CustomerPhone) == "" {
		return nil, httperr.ErrBusiness("missing_customer_phone")
	}
	if in.ProfessionalID == 0 {
		return nil, httperr.ErrBusiness("missing_professional")
	}
	if in.ServiceID == 0 {
		return nil, httperr.ErrBusiness("missing_service")
	}

	clinic, err := uc.repo.GetClinicByID(ctx, in.ClinicID)
	if err != nil {
		return nil, err
	}

	start, err := timezone.ParseDateTime(clinic.Timezone, in.Date, in.Time)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	now := timezone.NowIn(clinic.Timezone)
	if err := domain.ValidateStart(clinic, start, now); err != nil {
		return nil, err
	}

	if _, err := uc.repo.GetProfessional(ctx, in.ClinicID, in.ProfessionalID); err != nil {
		return nil, httperr.ErrBusiness("professional_not_found")
	}

	client, err := uc.repo.GetOrCreateClient(
		ctx,
		in.ClinicID,
		in.CustomerName,
		in.CustomerPhone,
	)
	if err != nil {
		return nil, err
	}

	ap := &models.Appointment{
		ClinicID:       in.ClinicID,
		ProfessionalID: in.ProfessionalID,
		ServiceID:      in.ServiceID,
		ClientID:       client.ID,
		CustomerName:   in.CustomerName,
		CustomerPhone:  in.CustomerPhone,
		StartTime:      start,
		Status:         string(domain.InitialStatus()),
		Notes:          in.Notes,
	}

	if err := uc.repo.ScheduleAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ClinicID: in.ClinicID,
		UserID:   &in.UserID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
