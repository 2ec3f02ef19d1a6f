package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/odontosys/clinic-api/internal/httperr"
	"github.com/odontosys/clinic-api/internal/httpresp"
	"github.com/odontosys/clinic-api/internal/middleware"
	"github.com/odontosys/clinic-api/internal/models"
)

type DiagnosisHandler struct {
	db *gorm.DB
}

func NewDiagnosisHandler(db *gorm.DB) *DiagnosisHandler {
	return &DiagnosisHandler{db: db}
}

// --------- Requests ---------

type CreateDiagnosisRequest struct {
	ClientID       uint   `json:"client_id" binding:"required"`
	ProfessionalID uint   `json:"professional_id" binding:"required"`
	Code           string `json:"code"`
	Description    string `json:"description" binding:"required"`
}

// --------- Handlers ---------

func (h *DiagnosisHandler) ListByClient(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	clientID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	q := h.db.Where("clinic_id = ? AND client_id = ?", clinicID, clientID)

	if status := strings.TrimSpace(c.Query("status")); status != "" {
		q = q.Where("status = ?", status)
	}

	var diagnoses []models.Diagnosis
	if err := q.Order("created_at DESC").Find(&diagnoses).Error; err != nil {
		httperr.Internal(c, "failed_to_list_diagnoses", "Erro ao listar diagnósticos.")
		return
	}

	httpresp.List(c, diagnoses)
}

func (h *DiagnosisHandler) Create(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	var req CreateDiagnosisRequest
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

	diagnosis := models.Diagnosis{
		ClinicID:       clinicID,
		ClientID:       req.ClientID,
		ProfessionalID: req.ProfessionalID,
		Code:           strings.ToUpper(strings.TrimSpace(req.Code)),
		Description:    strings.TrimSpace(req.Description),
		Status:         "active",
	}

	if err := h.db.Create(&diagnosis).Error; err != nil {
		httperr.Internal(c, "failed_to_create_diagnosis", "Erro ao registrar diagnóstico.")
		return
	}

	c.JSON(http.StatusCreated, diagnosis)
}

// Resolve encerra um diagnóstico ativo. Resolver de novo não é erro.
func (h *DiagnosisHandler) Resolve(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)
	id := c.Param("id")

	var diagnosis models.Diagnosis
	if err := h.db.
		Where("id = ? AND clinic_id = ?", id, clinicID).
		First(&diagnosis).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "diagnosis_not_found", "Diagnóstico não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_diagnosis", "Erro ao carregar diagnóstico.")
		return
	}

	if diagnosis.Status != "resolved" {
		diagnosis.Status = "resolved"
		if err := h.db.Save(&diagnosis).Error; err != nil {
			httperr.Internal(c, "failed_to_update_diagnosis", "Erro ao atualizar diagnóstico.")
			return
		}
	}

	c.JSON(http.StatusOK, diagnosis)
}
