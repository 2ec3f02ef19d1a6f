package models

import "time"

type Service struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	ClinicID uint `gorm:"uniqueIndex:idx_services_clinic_code" json:"clinic_id"`

	Code string `gorm:"size:60;uniqueIndex:idx_services_clinic_code;not null" json:"code"`
	Name string `gorm:"size:100;not null" json:"name"`

	DurationMinutes int     `json:"duration_minutes"`
	Price           float64 `json:"price"`
	Active          bool    `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
