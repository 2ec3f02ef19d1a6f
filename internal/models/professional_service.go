package models

import "time"

// ProfessionalService vincula um profissional a um serviço que ele executa,
// com duração própria. No máximo uma linha por par (profissional, serviço).
type ProfessionalService struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ProfessionalID uint         `gorm:"uniqueIndex:idx_professional_service_pair" json:"professional_id"`
	Professional   Professional `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"professional"`

	ServiceID uint    `gorm:"uniqueIndex:idx_professional_service_pair" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"service"`

	CustomDurationMinutes int  `json:"custom_duration_minutes"`
	IsActive              bool `gorm:"default:true" json:"is_active"`

	// Incrementado a cada update; updates exigem a versão corrente.
	Version int `gorm:"default:1" json:"version"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
