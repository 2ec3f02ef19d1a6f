package models

import "time"

type Prescription struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	ClinicID uint `json:"clinic_id"`

	ClientID uint `json:"client_id"`

	ProfessionalID uint         `json:"professional_id"`
	Professional   Professional `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"professional"`

	Notes string `gorm:"type:text" json:"notes"`

	Items []PrescriptionItem `gorm:"constraint:OnDelete:CASCADE;" json:"items"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PrescriptionItem struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	PrescriptionID uint `json:"prescription_id"`

	Medication   string `gorm:"size:150;not null" json:"medication"`
	Dosage       string `gorm:"size:100" json:"dosage"`
	Frequency    string `gorm:"size:100" json:"frequency"`
	Duration     string `gorm:"size:100" json:"duration"`
	Instructions string `gorm:"size:255" json:"instructions"`
}
