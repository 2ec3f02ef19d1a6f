package schedule

import "time"

type AvailabilityInput struct {
	ClinicID       uint
	ProfessionalID uint
	ServiceID      uint
	Date           time.Time
}

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}
