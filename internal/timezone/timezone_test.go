package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocation_FallsBackToDefaultOnBadZone(t *testing.T) {
	def := Location(DefaultTimezone)

	assert.Equal(t, def, Location(""))
	assert.Equal(t, def, Location("Marte/Cratera"))
	assert.Equal(t, "America/Recife", Location("America/Recife").String())
}

func TestParseDateTime_UsesClinicZone(t *testing.T) {
	got, err := ParseDateTime("America/Sao_Paulo", "2026-09-10", "08:00")
	require.NoError(t, err)

	assert.Equal(t, "America/Sao_Paulo", got.Location().String())
	assert.Equal(t, 8, got.Hour())
	assert.Equal(t, 10, got.Day())

	_, err = ParseDateTime("America/Sao_Paulo", "2026-09-10", "8h00")
	assert.Error(t, err)
}

func TestParseDate_MidnightInZone(t *testing.T) {
	got, err := ParseDate("America/Sao_Paulo", "2026-09-10")
	require.NoError(t, err)

	assert.Equal(t, 0, got.Hour())
	assert.Equal(t, time.September, got.Month())
}

func TestDayBounds(t *testing.T) {
	at, err := ParseDateTime("America/Sao_Paulo", "2026-09-10", "15:30")
	require.NoError(t, err)

	start, end := DayBounds(at, "America/Sao_Paulo")

	assert.Equal(t, 0, start.Hour())
	assert.Equal(t, 10, start.Day())
	assert.Equal(t, 24*time.Hour, end.Sub(start))
}
