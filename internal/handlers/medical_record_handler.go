package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/odontosys/clinic-api/internal/httperr"
	"github.com/odontosys/clinic-api/internal/httpresp"
	"github.com/odontosys/clinic-api/internal/middleware"
	"github.com/odontosys/clinic-api/internal/models"
)

type MedicalRecordHandler struct {
	db *gorm.DB
}

func NewMedicalRecordHandler(db *gorm.DB) *MedicalRecordHandler {
	return &MedicalRecordHandler{db: db}
}

// --------- Requests ---------

type CreateMedicalRecordRequest struct {
	ClientID       uint   `json:"client_id" binding:"required"`
	ProfessionalID uint   `json:"professional_id" binding:"required"`
	AppointmentID  *uint  `json:"appointment_id,omitempty"`
	Subjective     string `json:"subjective"`
	Objective      string `json:"objective"`
	Assessment     string `json:"assessment"`
	Plan           string `json:"plan"`
}

type UpdateMedicalRecordRequest struct {
	Subjective *string `json:"subjective,omitempty"`
	Objective  *string `json:"objective,omitempty"`
	Assessment *string `json:"assessment,omitempty"`
	Plan       *string `json:"plan,omitempty"`
}

// --------- Handlers ---------

// ListByClient devolve o prontuário do cliente em ordem cronológica
// inversa (evolução mais recente primeiro).
func (h *MedicalRecordHandler) ListByClient(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	clientID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var records []models.MedicalRecord
	if err := h.db.
		Preload("Professional").
		Where("clinic_id = ? AND client_id = ?", clinicID, clientID).
		Order("created_at DESC").
		Find(&records).Error; err != nil {

		httperr.Internal(c, "failed_to_list_records", "Erro ao listar o prontuário.")
		return
	}

	httpresp.List(c, records)
}

func (h *MedicalRecordHandler) Create(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	var req CreateMedicalRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var client models.Client
	if err := h.db.
		Where("id = ? AND clinic_id = ?", req.ClientID, clinicID).
		First(&client).Error; err != nil {
		httperr.NotFound(c, "client_not_found", "Cliente não encontrado.")
		return
	}

	record := models.MedicalRecord{
		ClinicID:       clinicID,
		ClientID:       req.ClientID,
		ProfessionalID: req.ProfessionalID,
		AppointmentID:  req.AppointmentID,
		Subjective:     req.Subjective,
		Objective:      req.Objective,
		Assessment:     req.Assessment,
		Plan:           req.Plan,
	}

	if err := h.db.Create(&record).Error; err != nil {
		httperr.Internal(c, "failed_to_create_record", "Erro ao registrar evolução.")
		return
	}

	c.JSON(http.StatusCreated, record)
}

func (h *MedicalRecordHandler) Update(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)
	id := c.Param("id")

	var record models.MedicalRecord
	if err := h.db.
		Where("id = ? AND clinic_id = ?", id, clinicID).
		First(&record).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "record_not_found", "Evolução não encontrada.")
			return
		}
		httperr.Internal(c, "failed_to_get_record", "Erro ao carregar evolução.")
		return
	}

	var req UpdateMedicalRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.Subjective != nil {
		record.Subjective = *req.Subjective
	}
	if req.Objective != nil {
		record.Objective = *req.Objective
	}
	if req.Assessment != nil {
		record.Assessment = *req.Assessment
	}
	if req.Plan != nil {
		record.Plan = *req.Plan
	}

	if err := h.db.Save(&record).Error; err != nil {
		httperr.Internal(c, "failed_to_update_record", "Erro ao atualizar evolução.")
		return
	}

	c.JSON(http.StatusOK, record)
}
