package schedule

import (
	"time"

	"github.com/odontosys/clinic-api/internal/httperr"
	"github.com/odontosys/clinic-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return nil
}

func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}

// CanDelete permite a remoção apenas de agendamentos que ainda não
// aconteceram e cujo cliente não está travado.
func CanDelete(ap *models.Appointment, client *models.Client, now time.Time) error {
	if !ap.StartTime.After(now) {
		return httperr.ErrBusiness("appointment_in_past")
	}
	if client != nil && client.Locked {
		return httperr.ErrBusiness("client_locked")
	}
	return nil
}
