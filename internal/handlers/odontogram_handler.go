package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/odontosys/clinic-api/internal/httperr"
	"github.com/odontosys/clinic-api/internal/middleware"
	"github.com/odontosys/clinic-api/internal/models"
)

type OdontogramHandler struct {
	db *gorm.DB
}

func NewOdontogramHandler(db *gorm.DB) *OdontogramHandler {
	return &OdontogramHandler{db: db}
}

// --------- Requests ---------

type UpsertEntryRequest struct {
	ToothNumber int    `json:"tooth_number" binding:"required"`
	Face        string `json:"face" binding:"required,oneof=vestibular lingual mesial distal oclusal"`
	Condition   string `json:"condition" binding:"required"`
	Status      string `json:"status" binding:"omitempty,oneof=pending in_progress done"`
	Notes       string `json:"notes"`
}

// --------- Helpers ---------

// Dentes na notação FDI: permanentes 11-48, decíduos 51-85.
func validToothNumber(n int) bool {
	quadrant := n / 10
	tooth := n % 10
	if tooth < 1 {
		return false
	}
	switch {
	case quadrant >= 1 && quadrant <= 4:
		return tooth <= 8
	case quadrant >= 5 && quadrant <= 8:
		return tooth <= 5
	default:
		return false
	}
}

// getOrCreate garante o odontograma do cliente; a primeira consulta cria.
func (h *OdontogramHandler) getOrCreate(c *gin.Context) (*models.Odontogram, bool) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	clientID, ok := parseUintParam(c, "id")
	if !ok {
		return nil, false
	}

	var client models.Client
	if err := h.db.
		Where("id = ? AND clinic_id = ?", clientID, clinicID).
		First(&client).Error; err != nil {
		httperr.NotFound(c, "client_not_found", "Cliente não encontrado.")
		return nil, false
	}

	var odontogram models.Odontogram
	err := h.db.
		Preload("Entries", func(db *gorm.DB) *gorm.DB {
			return db.Order("tooth_number ASC, face ASC")
		}).
		Where("client_id = ?", clientID).
		First(&odontogram).Error

	if err == gorm.ErrRecordNotFound {
		odontogram = models.Odontogram{
			ClinicID: clinicID,
			ClientID: clientID,
		}
		if err := h.db.Create(&odontogram).Error; err != nil {
			httperr.Internal(c, "failed_to_create_odontogram", "Erro ao criar odontograma.")
			return nil, false
		}
		return &odontogram, true
	}
	if err != nil {
		httperr.Internal(c, "failed_to_get_odontogram", "Erro ao carregar odontograma.")
		return nil, false
	}

	return &odontogram, true
}

// --------- Handlers ---------

func (h *OdontogramHandler) Get(c *gin.Context) {
	odontogram, ok := h.getOrCreate(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, odontogram)
}

// UpsertEntry grava a condição de uma face de um dente. Repetir o mesmo
// par (dente, face) sobrescreve a marcação anterior.
func (h *OdontogramHandler) UpsertEntry(c *gin.Context) {
	odontogram, ok := h.getOrCreate(c)
	if !ok {
		return
	}

	var req UpsertEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if !validToothNumber(req.ToothNumber) {
		httperr.BadRequest(c, "invalid_tooth_number", "Número de dente fora da notação FDI.")
		return
	}

	status := req.Status
	if status == "" {
		status = "pending"
	}

	entry := models.OdontogramEntry{
		OdontogramID: odontogram.ID,
		ToothNumber:  req.ToothNumber,
		Face:         strings.ToLower(req.Face),
		Condition:    strings.ToLower(strings.TrimSpace(req.Condition)),
		Status:       status,
		Notes:        req.Notes,
	}

	if err := h.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "odontogram_id"},
			{Name: "tooth_number"},
			{Name: "face"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"condition", "status", "notes", "updated_at",
		}),
	}).Create(&entry).Error; err != nil {
		httperr.Internal(c, "failed_to_save_entry", "Erro ao salvar marcação.")
		return
	}

	c.JSON(http.StatusOK, entry)
}

func (h *OdontogramHandler) DeleteEntry(c *gin.Context) {
	odontogram, ok := h.getOrCreate(c)
	if !ok {
		return
	}

	entryID, ok := parseUintParam(c, "entryId")
	if !ok {
		return
	}

	result := h.db.
		Where("id = ? AND odontogram_id = ?", entryID, odontogram.ID).
		Delete(&models.OdontogramEntry{})
	if result.Error != nil {
		httperr.Internal(c, "failed_to_delete_entry", "Erro ao remover marcação.")
		return
	}
	if result.RowsAffected == 0 {
		httperr.NotFound(c, "entry_not_found", "Marcação não encontrada.")
		return
	}

	c.Status(http.StatusNoContent)
}
