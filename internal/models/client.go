package models

import "time"

// Cliente da clínica, sem login. O telefone serve de chave de busca
// secundária em todo o sistema.
type Client struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	ClinicID uint `json:"clinic_id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Phone string `gorm:"size:20;index" json:"phone"`
	Email string `gorm:"size:100" json:"email"`

	// Trava: cliente travado não pode ter agendamentos removidos.
	Locked bool   `gorm:"default:false" json:"locked"`
	Notes  string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
