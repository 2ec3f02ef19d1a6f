package models

import "time"

type Clinic struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:100;not null" json:"name"`
	Slug    string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Phone   string `gorm:"size:20" json:"phone"`
	Address string `gorm:"size:255" json:"address"`

	Timezone string `gorm:"size:64" json:"timezone"`

	// Janela de atendimento [opening, closing). Historicamente 8–18.
	OpeningHour int `gorm:"default:8" json:"opening_hour"`
	ClosingHour int `gorm:"default:18" json:"closing_hour"`

	MinAdvanceMinutes int `gorm:"default:0" json:"min_advance_minutes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
