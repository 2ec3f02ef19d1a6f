package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/odontosys/clinic-api/internal/httperr"
	"github.com/odontosys/clinic-api/internal/middleware"
	"github.com/odontosys/clinic-api/internal/models"
	"github.com/odontosys/clinic-api/internal/timezone"
)

type ClinicHandler struct {
	db *gorm.DB
}

func NewClinicHandler(db *gorm.DB) *ClinicHandler {
	return &ClinicHandler{db: db}
}

type UpdateClinicRequest struct {
	Name              *string `json:"name,omitempty"`
	Phone             *string `json:"phone,omitempty"`
	Address           *string `json:"address,omitempty"`
	Timezone          *string `json:"timezone,omitempty"`
	OpeningHour       *int    `json:"opening_hour,omitempty" binding:"omitempty,min=0,max=23"`
	ClosingHour       *int    `json:"closing_hour,omitempty" binding:"omitempty,min=1,max=24"`
	MinAdvanceMinutes *int    `json:"min_advance_minutes,omitempty" binding:"omitempty,min=0"`
}

func (h *ClinicHandler) GetMeClinic(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	var clinic models.Clinic
	if err := h.db.First(&clinic, clinicID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "clinic_not_found", "Clínica não encontrada.")
			return
		}
		httperr.Internal(c, "failed_to_get_clinic", "Erro ao carregar clínica.")
		return
	}

	c.JSON(http.StatusOK, clinic)
}

func (h *ClinicHandler) UpdateMeClinic(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	var clinic models.Clinic
	if err := h.db.First(&clinic, clinicID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "clinic_not_found", "Clínica não encontrada.")
			return
		}
		httperr.Internal(c, "failed_to_get_clinic", "Erro ao carregar clínica.")
		return
	}

	var req UpdateClinicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.Timezone != nil && !timezone.IsValid(*req.Timezone) {
		httperr.BadRequest(c, "invalid_timezone", "Timezone inválido.")
		return
	}

	if req.Name != nil {
		clinic.Name = *req.Name
	}
	if req.Phone != nil {
		clinic.Phone = *req.Phone
	}
	if req.Address != nil {
		clinic.Address = *req.Address
	}
	if req.Timezone != nil {
		clinic.Timezone = *req.Timezone
	}
	if req.OpeningHour != nil {
		clinic.OpeningHour = *req.OpeningHour
	}
	if req.ClosingHour != nil {
		clinic.ClosingHour = *req.ClosingHour
	}
	if req.MinAdvanceMinutes != nil {
		clinic.MinAdvanceMinutes = *req.MinAdvanceMinutes
	}

	if clinic.ClosingHour <= clinic.OpeningHour {
		httperr.BadRequest(c, "invalid_business_hours", "Fechamento precisa ser depois da abertura.")
		return
	}

	if err := h.db.Save(&clinic).Error; err != nil {
		httperr.Internal(c, "failed_to_update_clinic", "Erro ao atualizar clínica.")
		return
	}

	c.JSON(http.StatusOK, clinic)
}
