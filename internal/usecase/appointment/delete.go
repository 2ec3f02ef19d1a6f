package appointment

import (
	"context"

	"github.com/odontosys/clinic-api/internal/audit"
	domain "github.com/odontosys/clinic-api/internal/domain/schedule"
	"github.com/odontosys/clinic-api/internal/timezone"
)

type DeleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:  repo,
		audit: audit,
	}
}

// Execute remove um agendamento futuro de cliente não travado. As guardas
// rodam dentro da transação de remoção, no repositório.
func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	clinicID uint,
	userID uint,
	appointmentID uint,
) error {

	clinic, err := uc.repo.GetClinicByID(ctx, clinicID)
	if err != nil {
		return err
	}

	now := timezone.NowIn(clinic.Timezone)
	if err := uc.repo.DeleteAppointment(ctx, appointmentID, clinicID, now); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		ClinicID: clinicID,
		UserID:   &userID,
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: &appointmentID,
	})

	return nil
}
