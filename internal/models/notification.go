package models

import "time"

type Notification struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"index" json:"user_id"`

	Title   string `gorm:"size:150;not null" json:"title"`
	Message string `gorm:"type:text" json:"message"`

	AppointmentID *uint `json:"appointment_id"`

	ReadAt *time.Time `json:"read_at"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
