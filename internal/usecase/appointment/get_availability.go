package appointment

import (
	"context"
	"time"

	domain "github.com/odontosys/clinic-api/internal/domain/schedule"
	"github.com/odontosys/clinic-api/internal/httperr"
	"github.com/odontosys/clinic-api/internal/timezone"
)

type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

// Execute devolve os horários livres do profissional no dia, fatiados pela
// duração efetiva do serviço para aquele profissional.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	clinic, err := uc.repo.GetClinicByID(ctx, in.ClinicID)
	if err != nil {
		return nil, err
	}

	svc, err := uc.repo.GetService(ctx, in.ClinicID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	hasAssocs, err := uc.repo.HasAssociations(ctx, in.ProfessionalID)
	if err != nil {
		return nil, err
	}

	assoc, err := uc.repo.GetAssociation(ctx, in.ProfessionalID, in.ServiceID)
	if err != nil {
		return nil, err
	}

	duration, err := domain.ResolveDuration(hasAssocs, assoc, svc)
	if err != nil {
		return nil, err
	}

	opening, closing := domain.BusinessWindow(clinic)
	loc := timezone.Location(clinic.Timezone)

	dayStart := time.Date(
		in.Date.Year(), in.Date.Month(), in.Date.Day(),
		opening, 0, 0, 0,
		loc,
	)
	dayEnd := time.Date(
		in.Date.Year(), in.Date.Month(), in.Date.Day(),
		closing, 0, 0, 0,
		loc,
	)

	appointments, err := uc.repo.ListAppointmentsForDay(
		ctx,
		in.ProfessionalID,
		dayStart,
		dayEnd,
	)
	if err != nil {
		return nil, err
	}

	slotDuration := time.Duration(duration) * time.Minute
	var slots []domain.TimeSlot

	apIdx := 0

	for cur := dayStart; cur.Add(slotDuration).Before(dayEnd) || cur.Add(slotDuration).Equal(dayEnd); cur = cur.Add(slotDuration) {

		slotStart := cur
		slotEnd := cur.Add(slotDuration)

		// avança agendamentos já encerrados; fim na borda do slot
		// também libera (intervalo meio-aberto)
		for apIdx < len(appointments) && !appointments[apIdx].EndTime.After(slotStart) {
			apIdx++
		}

		conflict := false
		if apIdx < len(appointments) {
			ap := appointments[apIdx]
			if slotStart.Before(ap.EndTime) && slotEnd.After(ap.StartTime) {
				conflict = true
			}
		}

		if !conflict {
			slots = append(slots, domain.TimeSlot{
				Start: slotStart.Format("15:04"),
				End:   slotEnd.Format("15:04"),
			})
		}
	}

	return slots, nil
}
