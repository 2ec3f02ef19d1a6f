package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/odontosys/clinic-api/internal/httperr"
	"github.com/odontosys/clinic-api/internal/models"
)

func TestResolveDuration_NoAssociationsUsesServiceDefault(t *testing.T) {
	svc := &models.Service{DurationMinutes: 30}

	minutes, err := ResolveDuration(false, nil, svc)
	assert.NoError(t, err)
	assert.Equal(t, 30, minutes)
}

func TestResolveDuration_WithAssociationsRequiresActivePair(t *testing.T) {
	svc := &models.Service{DurationMinutes: 30}

	// tem vínculos cadastrados, mas não com este serviço
	_, err := ResolveDuration(true, nil, svc)
	assert.True(t, httperr.IsBusiness(err, "service_not_allowed"))

	// vínculo existe mas está desativado
	inactive := &models.ProfessionalService{CustomDurationMinutes: 45, IsActive: false}
	_, err = ResolveDuration(true, inactive, svc)
	assert.True(t, httperr.IsBusiness(err, "service_not_allowed"))
}

func TestResolveDuration_CustomDurationWins(t *testing.T) {
	svc := &models.Service{DurationMinutes: 30}
	assoc := &models.ProfessionalService{CustomDurationMinutes: 45, IsActive: true}

	minutes, err := ResolveDuration(true, assoc, svc)
	assert.NoError(t, err)
	assert.Equal(t, 45, minutes)
}

func TestResolveDuration_ZeroCustomFallsBackToService(t *testing.T) {
	svc := &models.Service{DurationMinutes: 30}
	assoc := &models.ProfessionalService{CustomDurationMinutes: 0, IsActive: true}

	minutes, err := ResolveDuration(true, assoc, svc)
	assert.NoError(t, err)
	assert.Equal(t, 30, minutes)
}

func TestCanPerform(t *testing.T) {
	assert.False(t, CanPerform(nil))
	assert.False(t, CanPerform(&models.ProfessionalService{IsActive: false}))
	assert.True(t, CanPerform(&models.ProfessionalService{IsActive: true}))
}

func TestAssociationDuration(t *testing.T) {
	assert.Nil(t, AssociationDuration(nil))
	assert.Nil(t, AssociationDuration(&models.ProfessionalService{CustomDurationMinutes: 45}))

	d := AssociationDuration(&models.ProfessionalService{CustomDurationMinutes: 45, IsActive: true})
	if assert.NotNil(t, d) {
		assert.Equal(t, 45, *d)
	}
}

func TestEndTime(t *testing.T) {
	start := time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 11, 9, 45, 0, 0, time.UTC), EndTime(start, 45))
}
