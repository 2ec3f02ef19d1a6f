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

type PrescriptionHandler struct {
	db *gorm.DB
}

func NewPrescriptionHandler(db *gorm.DB) *PrescriptionHandler {
	return &PrescriptionHandler{db: db}
}

// --------- Requests ---------

type PrescriptionItemRequest struct {
	Medication   string `json:"medication" binding:"required"`
	Dosage       string `json:"dosage"`
	Frequency    string `json:"frequency"`
	Duration     string `json:"duration"`
	Instructions string `json:"instructions"`
}

type CreatePrescriptionRequest struct {
	ClientID       uint                      `json:"client_id" binding:"required"`
	ProfessionalID uint                      `json:"professional_id" binding:"required"`
	Notes          string                    `json:"notes"`
	Items          []PrescriptionItemRequest `json:"items" binding:"required,min=1,dive"`
}

// --------- Handlers ---------

func (h *PrescriptionHandler) ListByClient(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	clientID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var prescriptions []models.Prescription
	if err := h.db.
		Preload("Items").
		Preload("Professional").
		Where("clinic_id = ? AND client_id = ?", clinicID, clientID).
		Order("created_at DESC").
		Find(&prescriptions).Error; err != nil {

		httperr.Internal(c, "failed_to_list_prescriptions", "Erro ao listar receitas.")
		return
	}

	httpresp.List(c, prescriptions)
}

func (h *PrescriptionHandler) Get(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)
	id := c.Param("id")

	var prescription models.Prescription
	if err := h.db.
		Preload("Items").
		Preload("Professional").
		Where("id = ? AND clinic_id = ?", id, clinicID).
		First(&prescription).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "prescription_not_found", "Receita não encontrada.")
			return
		}
		httperr.Internal(c, "failed_to_get_prescription", "Erro ao carregar receita.")
		return
	}

	c.JSON(http.StatusOK, prescription)
}

// Create grava a receita com os itens num único insert aninhado.
// Receitas são imutáveis depois de emitidas; correção é nova receita.
func (h *PrescriptionHandler) Create(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	var req CreatePrescriptionRequest
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

	prescription := models.Prescription{
		ClinicID:       clinicID,
		ClientID:       req.ClientID,
		ProfessionalID: req.ProfessionalID,
		Notes:          req.Notes,
	}
	for _, item := range req.Items {
		prescription.Items = append(prescription.Items, models.PrescriptionItem{
			Medication:   item.Medication,
			Dosage:       item.Dosage,
			Frequency:    item.Frequency,
			Duration:     item.Duration,
			Instructions: item.Instructions,
		})
	}

	if err := h.db.Create(&prescription).Error; err != nil {
		httperr.Internal(c, "failed_to_create_prescription", "Erro ao emitir receita.")
		return
	}

	c.JSON(http.StatusCreated, prescription)
}

func (h *PrescriptionHandler) Delete(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)
	id := c.Param("id")

	var prescription models.Prescription
	if err := h.db.
		Where("id = ? AND clinic_id = ?", id, clinicID).
		First(&prescription).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "prescription_not_found", "Receita não encontrada.")
			return
		}
		httperr.Internal(c, "failed_to_get_prescription", "Erro ao carregar receita.")
		return
	}

	if err := h.db.Select("Items").Delete(&prescription).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_prescription", "Erro ao remover receita.")
		return
	}

	c.Status(http.StatusNoContent)
}
