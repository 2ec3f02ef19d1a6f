package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/odontosys/clinic-api/internal/httperr"
)

func TestDeleteAppointment_PropagatesGuards(t *testing.T) {
	cases := []struct {
		name string
		code string
	}{
		{"agendamento no passado", "appointment_in_past"},
		{"cliente travado", "client_locked"},
		{"inexistente", "appointment_not_found"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newStubRepository()
			repo.deleteFn = func(ctx context.Context, id, clinicID uint, now time.Time) error {
				return httperr.ErrBusiness(tc.code)
			}
			uc := NewDeleteAppointment(repo, newTestDispatcher(t))

			err := uc.Execute(context.Background(), 1, 2, 99)
			assert.True(t, httperr.IsBusiness(err, tc.code))
		})
	}
}

func TestDeleteAppointment_PassesClinicLocalNow(t *testing.T) {
	repo := newStubRepository()

	var gotNow time.Time
	repo.deleteFn = func(ctx context.Context, id, clinicID uint, now time.Time) error {
		gotNow = now
		return nil
	}
	uc := NewDeleteAppointment(repo, newTestDispatcher(t))

	err := uc.Execute(context.Background(), 1, 2, 99)
	assert.NoError(t, err)

	// o "agora" das guardas é o da timezone da clínica
	assert.Equal(t, "America/Sao_Paulo", gotNow.Location().String())
	assert.WithinDuration(t, time.Now(), gotNow, 5*time.Second)
}
