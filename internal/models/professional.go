package models

import "time"

type Professional struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	ClinicID uint `json:"clinic_id"`

	Name      string `gorm:"size:100;not null" json:"name"`
	Specialty string `gorm:"size:100" json:"specialty"`

	// Código público gerado no cadastro (slug + sufixo aleatório).
	Code string `gorm:"size:120;uniqueIndex;not null" json:"code"`

	PhotoURL string `gorm:"size:255" json:"photo_url"`
	Active   bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
