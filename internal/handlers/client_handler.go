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
	"github.com/odontosys/clinic-api/internal/validators"
)

type ClientHandler struct {
	db *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler {
	return &ClientHandler{db: db}
}

// --------- Requests ---------

type CreateClientRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
	Email string `json:"email"`
	Notes string `json:"notes"`
}

type UpdateClientRequest struct {
	Name  *string `json:"name,omitempty"`
	Phone *string `json:"phone,omitempty"`
	Email *string `json:"email,omitempty"`
	Notes *string `json:"notes,omitempty"`
}

// --------- Handlers ---------

func (h *ClientHandler) List(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Where("clinic_id = ?", clinicID)

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	var clients []models.Client
	if err := q.
		Order("created_at DESC").
		Find(&clients).Error; err != nil {

		httperr.Internal(c, "failed_to_list_clients", "Erro ao listar clientes.")
		return
	}

	httpresp.List(c, clients)
}

func (h *ClientHandler) Get(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)
	id := c.Param("id")

	var client models.Client
	if err := h.db.
		Where("id = ? AND clinic_id = ?", id, clinicID).
		First(&client).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "client_not_found", "Cliente não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_client", "Erro ao carregar cliente.")
		return
	}

	c.JSON(http.StatusOK, client)
}

func (h *ClientHandler) Create(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	phone := validators.NormalizePhone(req.Phone)
	if !validators.IsPhoneValid(phone) {
		httperr.BadRequest(c, "invalid_phone", "Telefone inválido.")
		return
	}

	client := models.Client{
		ClinicID: clinicID,
		Name:     strings.TrimSpace(req.Name),
		Phone:    phone,
		Email:    strings.TrimSpace(req.Email),
		Notes:    req.Notes,
	}

	if err := h.db.Create(&client).Error; err != nil {
		httperr.Internal(c, "failed_to_create_client", "Erro ao cadastrar cliente.")
		return
	}

	c.JSON(http.StatusCreated, client)
}

func (h *ClientHandler) Update(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)
	id := c.Param("id")

	var client models.Client
	if err := h.db.
		Where("id = ? AND clinic_id = ?", id, clinicID).
		First(&client).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "client_not_found", "Cliente não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_client", "Erro ao carregar cliente.")
		return
	}

	var req UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.Name != nil {
		client.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		phone := validators.NormalizePhone(*req.Phone)
		if !validators.IsPhoneValid(phone) {
			httperr.BadRequest(c, "invalid_phone", "Telefone inválido.")
			return
		}
		client.Phone = phone
	}
	if req.Email != nil {
		client.Email = strings.TrimSpace(*req.Email)
	}
	if req.Notes != nil {
		client.Notes = *req.Notes
	}

	if err := h.db.Save(&client).Error; err != nil {
		httperr.Internal(c, "failed_to_update_client", "Erro ao atualizar cliente.")
		return
	}

	c.JSON(http.StatusOK, client)
}

// Lock trava o cliente: agendamentos dele deixam de poder ser removidos.
func (h *ClientHandler) Lock(c *gin.Context) {
	h.setLocked(c, true)
}

func (h *ClientHandler) Unlock(c *gin.Context) {
	h.setLocked(c, false)
}

func (h *ClientHandler) setLocked(c *gin.Context, locked bool) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)
	id := c.Param("id")

	var client models.Client
	if err := h.db.
		Where("id = ? AND clinic_id = ?", id, clinicID).
		First(&client).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "client_not_found", "Cliente não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_client", "Erro ao carregar cliente.")
		return
	}

	client.Locked = locked
	if err := h.db.Save(&client).Error; err != nil {
		httperr.Internal(c, "failed_to_update_client", "Erro ao atualizar cliente.")
		return
	}

	c.JSON(http.StatusOK, client)
}
