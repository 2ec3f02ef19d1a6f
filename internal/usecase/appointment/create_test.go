package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odontosys/clinic-api/internal/httperr"
	"github.com/odontosys/clinic-api/internal/models"
	"github.com/odontosys/clinic-api/internal/timezone"
)

func validInput(t *testing.T) CreateAppointmentInput {
	t.Helper()

	// amanhã às 10:00 na timezone da clínica
	tomorrow := timezone.NowIn(timezone.DefaultTimezone).AddDate(0, 0, 1)

	return CreateAppointmentInput{
		ClinicID:       1,
		UserID:         2,
		CustomerName:   "João Silva",
		CustomerPhone:  "11999990000",
		ProfessionalID: 10,
		ServiceID:      20,
		Date:           tomorrow.Format("2006-01-02"),
		Time:           "10:00",
	}
}

func TestCreateAppointment_ValidatesRequiredFieldsInOrder(t *testing.T) {
	repo := newStubRepository()
	uc := NewCreateAppointment(repo, newTestDispatcher(t))

	cases := []struct {
		name     string
		mutate   func(in *CreateAppointmentInput)
		wantCode string
	}{
		{"sem nome", func(in *CreateAppointmentInput) { in.CustomerName = "  " }, "missing_customer_name"},
		{"sem telefone", func(in *CreateAppointmentInput) { in.CustomerPhone = "" }, "missing_customer_phone"},
		{"sem profissional", func(in *CreateAppointmentInput) { in.ProfessionalID = 0 }, "missing_professional"},
		{"sem serviço", func(in *CreateAppointmentInput) { in.ServiceID = 0 }, "missing_service"},
		{"data inválida", func(in *CreateAppointmentInput) { in.Date = "11/03/2026" }, "invalid_date_or_time"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput(t)
			tc.mutate(&in)

			_, err := uc.Execute(context.Background(), in)
			assert.True(t, httperr.IsBusiness(err, tc.wantCode),
				"esperava %s, veio %v", tc.wantCode, err)
		})
	}

	assert.Empty(t, repo.scheduled, "nenhuma entrada deveria ter sido agendada")
}

func TestCreateAppointment_RejectsPastAndOutsideWindow(t *testing.T) {
	repo := newStubRepository()
	uc := NewCreateAppointment(repo, newTestDispatcher(t))

	in := validInput(t)
	in.Date = "2020-01-02"
	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "in_the_past"))

	in = validInput(t)
	in.Time = "18:00"
	_, err = uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "outside_business_hours"))
}

func TestCreateAppointment_ProfessionalNotFound(t *testing.T) {
	repo := newStubRepository()
	repo.professional = nil
	uc := NewCreateAppointment(repo, newTestDispatcher(t))

	_, err := uc.Execute(context.Background(), validInput(t))
	assert.True(t, httperr.IsBusiness(err, "professional_not_found"))
}

func TestCreateAppointment_HappyPathUsesServiceDuration(t *testing.T) {
	repo := newStubRepository()
	uc := NewCreateAppointment(repo, newTestDispatcher(t))

	ap, err := uc.Execute(context.Background(), validInput(t))
	require.NoError(t, err)
	require.NotNil(t, ap)

	assert.Equal(t, "scheduled", ap.Status)
	assert.Equal(t, "João Silva", ap.CustomerName)
	assert.Equal(t, repo.client.ID, ap.ClientID)
	assert.Equal(t, 10, ap.StartTime.Hour())

	// sem vínculos, vale a duração padrão do serviço (30 min)
	assert.Equal(t, 30*time.Minute, ap.EndTime.Sub(ap.StartTime))
	assert.Len(t, repo.scheduled, 1)
}

func TestCreateAppointment_CustomDurationOverridesService(t *testing.T) {
	repo := newStubRepository()
	repo.hasAssociations = true
	repo.association = &models.ProfessionalService{
		ProfessionalID:        10,
		ServiceID:             20,
		CustomDurationMinutes: 45,
		IsActive:              true,
	}
	uc := NewCreateAppointment(repo, newTestDispatcher(t))

	ap, err := uc.Execute(context.Background(), validInput(t))
	require.NoError(t, err)

	assert.Equal(t, 45*time.Minute, ap.EndTime.Sub(ap.StartTime))
}

func TestCreateAppointment_ServiceNotAllowed(t *testing.T) {
	repo := newStubRepository()
	repo.hasAssociations = true
	repo.association = nil // vínculos com outros serviços, não este
	uc := NewCreateAppointment(repo, newTestDispatcher(t))

	_, err := uc.Execute(context.Background(), validInput(t))
	assert.True(t, httperr.IsBusiness(err, "service_not_allowed"))
}

func TestCreateAppointment_PropagatesTimeConflict(t *testing.T) {
	repo := newStubRepository()
	repo.scheduleFn = func(ctx context.Context, ap *models.Appointment) error {
		return httperr.ErrBusiness("time_conflict")
	}
	uc := NewCreateAppointment(repo, newTestDispatcher(t))

	_, err := uc.Execute(context.Background(), validInput(t))
	assert.True(t, httperr.IsBusiness(err, "time_conflict"))
	assert.Empty(t, repo.scheduled)
}
