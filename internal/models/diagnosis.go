package models

import "time"

type Diagnosis struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	ClinicID uint `json:"clinic_id"`

	ClientID uint `json:"client_id"`

	ProfessionalID uint `json:"professional_id"`

	Code        string `gorm:"size:20" json:"code"`
	Description string `gorm:"size:255;not null" json:"description"`

	// active | resolved
	Status string `gorm:"size:20;default:'active'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
