package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/odontosys/clinic-api/internal/httperr"
	"github.com/odontosys/clinic-api/internal/models"
)

func TestCancel(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	ap := &models.Appointment{Status: string(StatusScheduled)}
	assert.NoError(t, Cancel(ap, now))
	assert.Equal(t, string(StatusCancelled), ap.Status)
	if assert.NotNil(t, ap.CancelledAt) {
		assert.Equal(t, now, *ap.CancelledAt)
	}

	// cancelar de novo é estado inválido
	err := Cancel(ap, now)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestComplete(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	ap := &models.Appointment{Status: string(StatusScheduled)}
	assert.NoError(t, Complete(ap, now))
	assert.Equal(t, string(StatusCompleted), ap.Status)
	assert.NotNil(t, ap.CompletedAt)

	err := Complete(&models.Appointment{Status: string(StatusCancelled)}, now)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestCanDelete(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	past := &models.Appointment{StartTime: now.Add(-time.Hour)}
	err := CanDelete(past, &models.Client{}, now)
	assert.True(t, httperr.IsBusiness(err, "appointment_in_past"))

	// começa exatamente agora: já conta como passado
	starting := &models.Appointment{StartTime: now}
	err = CanDelete(starting, &models.Client{}, now)
	assert.True(t, httperr.IsBusiness(err, "appointment_in_past"))

	future := &models.Appointment{StartTime: now.Add(time.Hour)}

	err = CanDelete(future, &models.Client{Locked: true}, now)
	assert.True(t, httperr.IsBusiness(err, "client_locked"))

	assert.NoError(t, CanDelete(future, &models.Client{}, now))
	assert.NoError(t, CanDelete(future, nil, now))
}
