package models

import "time"

type FinancialTransaction struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	ClinicID uint `json:"clinic_id"`

	ClientID      *uint `json:"client_id"`
	AppointmentID *uint `json:"appointment_id"`

	// income | expense
	Kind string `gorm:"size:20;not null" json:"kind"`

	Description string  `gorm:"size:255" json:"description"`
	Amount      float64 `json:"amount"`

	// pending | paid | cancelled
	Status string `gorm:"size:20;default:'pending'" json:"status"`

	PaidAt *time.Time `json:"paid_at"`

	// Link de pagamento gerado no Mercado Pago, quando solicitado.
	PaymentPreferenceID string `gorm:"size:100" json:"payment_preference_id"`
	PaymentLink         string `gorm:"size:255" json:"payment_link"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
