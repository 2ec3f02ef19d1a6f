package models

import "time"

// MedicalRecord é uma evolução clínica no formato SOAP.
type MedicalRecord struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	ClinicID uint `json:"clinic_id"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"client"`

	ProfessionalID uint         `json:"professional_id"`
	Professional   Professional `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"professional"`

	AppointmentID *uint `json:"appointment_id"`

	Subjective string `gorm:"type:text" json:"subjective"`
	Objective  string `gorm:"type:text" json:"objective"`
	Assessment string `gorm:"type:text" json:"assessment"`
	Plan       string `gorm:"type:text" json:"plan"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
