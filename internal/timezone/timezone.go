package timezone

import (
	"sync"
	"time"
)

const DefaultTimezone = "America/Sao_Paulo"

var cache sync.Map // tz -> *time.Location

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location resolve o fuso da clínica; fusos inválidos caem no padrão
// para nunca devolver (nil, err) em hot path.
func Location(tz string) *time.Location {
	if tz == "" {
		tz = DefaultTimezone
	}
	if cached, ok := cache.Load(tz); ok {
		return cached.(*time.Location)
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc, _ = time.LoadLocation(DefaultTimezone)
	}
	cache.Store(tz, loc)
	return loc
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// ParseDate interpreta YYYY-MM-DD como meia-noite no fuso dado.
func ParseDate(tz, date string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", date, Location(tz))
}

// ParseDateTime junta YYYY-MM-DD e HH:mm no fuso dado.
func ParseDateTime(tz, date, hhmm string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", date+" "+hhmm, Location(tz))
}

// DayBounds retorna o início do dia e o início do dia seguinte no fuso dado.
func DayBounds(t time.Time, tz string) (time.Time, time.Time) {
	loc := Location(tz)
	local := t.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}
