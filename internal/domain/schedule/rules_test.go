package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odontosys/clinic-api/internal/httperr"
	"github.com/odontosys/clinic-api/internal/models"
)

func saoPaulo(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	return loc
}

func TestValidateStart_RejectsStartEqualToNow(t *testing.T) {
	loc := saoPaulo(t)
	clinic := &models.Clinic{}

	now := time.Date(2026, 3, 10, 9, 0, 0, 0, loc)

	err := ValidateStart(clinic, now, now)
	assert.True(t, httperr.IsBusiness(err, "in_the_past"))

	// um instante depois já serve
	err = ValidateStart(clinic, now.Add(time.Minute), now)
	assert.NoError(t, err)
}

func TestValidateStart_RejectsPast(t *testing.T) {
	loc := saoPaulo(t)
	clinic := &models.Clinic{}

	now := time.Date(2026, 3, 10, 9, 0, 0, 0, loc)
	start := now.Add(-time.Hour)

	err := ValidateStart(clinic, start, now)
	assert.True(t, httperr.IsBusiness(err, "in_the_past"))
}

func TestValidateStart_BusinessWindowBoundaries(t *testing.T) {
	loc := saoPaulo(t)
	clinic := &models.Clinic{}
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, loc)

	cases := []struct {
		name     string
		hour     int
		minute   int
		wantCode string
	}{
		{"abertura entra", 8, 0, ""},
		{"antes da abertura", 7, 59, "outside_business_hours"},
		{"último horário do dia", 17, 59, ""},
		{"fechamento não entra", 18, 0, "outside_business_hours"},
		{"depois do fechamento", 22, 0, "outside_business_hours"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start := time.Date(2026, 3, 11, tc.hour, tc.minute, 0, 0, loc)
			err := ValidateStart(clinic, start, now)
			if tc.wantCode == "" {
				assert.NoError(t, err)
			} else {
				assert.True(t, httperr.IsBusiness(err, tc.wantCode))
			}
		})
	}
}

func TestValidateStart_MinAdvance(t *testing.T) {
	loc := saoPaulo(t)
	clinic := &models.Clinic{MinAdvanceMinutes: 120}

	now := time.Date(2026, 3, 10, 9, 0, 0, 0, loc)

	err := ValidateStart(clinic, now.Add(time.Hour), now)
	assert.True(t, httperr.IsBusiness(err, "too_soon"))

	err = ValidateStart(clinic, now.Add(3*time.Hour), now)
	assert.NoError(t, err)
}

func TestValidateStart_PastWinsOverWindow(t *testing.T) {
	loc := saoPaulo(t)
	clinic := &models.Clinic{}

	// passado e fora da janela ao mesmo tempo: a primeira regra decide
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, loc)
	start := time.Date(2026, 3, 9, 22, 0, 0, 0, loc)

	err := ValidateStart(clinic, start, now)
	assert.True(t, httperr.IsBusiness(err, "in_the_past"))
}

func TestBusinessWindow(t *testing.T) {
	assert := assert.New(t)

	opening, closing := BusinessWindow(&models.Clinic{})
	assert.Equal(DefaultOpeningHour, opening)
	assert.Equal(DefaultClosingHour, closing)

	opening, closing = BusinessWindow(&models.Clinic{OpeningHour: 10, ClosingHour: 20})
	assert.Equal(10, opening)
	assert.Equal(20, closing)

	// janela invertida cai no padrão
	opening, closing = BusinessWindow(&models.Clinic{OpeningHour: 18, ClosingHour: 8})
	assert.Equal(DefaultOpeningHour, opening)
	assert.Equal(DefaultClosingHour, closing)
}

func TestValidateStart_CustomWindow(t *testing.T) {
	loc := saoPaulo(t)
	clinic := &models.Clinic{OpeningHour: 10, ClosingHour: 20}
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, loc)

	err := ValidateStart(clinic, time.Date(2026, 3, 11, 9, 0, 0, 0, loc), now)
	assert.True(t, httperr.IsBusiness(err, "outside_business_hours"))

	err = ValidateStart(clinic, time.Date(2026, 3, 11, 19, 30, 0, 0, loc), now)
	assert.NoError(t, err)
}
