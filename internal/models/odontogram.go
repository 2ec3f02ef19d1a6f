package models

import "time"

// Odontogram é o mapa dentário de um cliente. Um por cliente.
type Odontogram struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	ClinicID uint `json:"clinic_id"`

	ClientID uint   `gorm:"uniqueIndex" json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"client"`

	Entries []OdontogramEntry `gorm:"constraint:OnDelete:CASCADE;" json:"entries"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OdontogramEntry marca uma condição numa face de um dente (notação FDI).
type OdontogramEntry struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	OdontogramID uint `gorm:"uniqueIndex:idx_odontogram_tooth_face" json:"odontogram_id"`

	// 11–18, 21–28, 31–38, 41–48 (permanentes) e 51–85 (decíduos).
	ToothNumber int `gorm:"uniqueIndex:idx_odontogram_tooth_face" json:"tooth_number"`

	// vestibular | lingual | mesial | distal | oclusal
	Face string `gorm:"size:20;uniqueIndex:idx_odontogram_tooth_face" json:"face"`

	// caries | restoration | extraction | crown | implant | sealant...
	Condition string `gorm:"size:50;not null" json:"condition"`

	// pending | in_progress | done
	Status string `gorm:"size:20;default:'pending'" json:"status"`

	Notes string `gorm:"size:255" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
