package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/odontosys/clinic-api/internal/domain/schedule"
	"github.com/odontosys/clinic-api/internal/httperr"
	"github.com/odontosys/clinic-api/internal/httpresp"
	"github.com/odontosys/clinic-api/internal/middleware"
	"github.com/odontosys/clinic-api/internal/models"
)

// ProfessionalServiceHandler expõe os vínculos profissional x serviço.
// A regra de duração efetiva vive no domínio; aqui só entra o escopo
// da clínica e a tradução HTTP.
type ProfessionalServiceHandler struct {
	db   *gorm.DB
	repo domain.Repository
}

func NewProfessionalServiceHandler(db *gorm.DB, repo domain.Repository) *ProfessionalServiceHandler {
	return &ProfessionalServiceHandler{db: db, repo: repo}
}

// --------- Requests ---------

type CreateAssociationRequest struct {
	ProfessionalID        uint  `json:"professional_id" binding:"required"`
	ServiceID             uint  `json:"service_id" binding:"required"`
	CustomDurationMinutes *int  `json:"custom_duration_minutes,omitempty"`
	IsActive              *bool `json:"is_active,omitempty"`
}

type UpdateAssociationRequest struct {
	CustomDurationMinutes *int  `json:"custom_duration_minutes,omitempty"`
	IsActive              *bool `json:"is_active,omitempty"`
	Version               int   `json:"version" binding:"required,min=1"`
}

type ToggleAssociationRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
	Version  int   `json:"version" binding:"required,min=1"`
}

// --------- Helpers ---------

func (h *ProfessionalServiceHandler) professionalInClinic(c *gin.Context, professionalID uint) bool {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	var count int64
	if err := h.db.Model(&models.Professional{}).
		Where("id = ? AND clinic_id = ?", professionalID, clinicID).
		Count(&count).Error; err != nil {
		httperr.Internal(c, "failed_to_get_professional", "Erro ao carregar profissional.")
		return false
	}
	if count == 0 {
		httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
		return false
	}
	return true
}

func (h *ProfessionalServiceHandler) serviceInClinic(c *gin.Context, serviceID uint) bool {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	var count int64
	if err := h.db.Model(&models.Service{}).
		Where("id = ? AND clinic_id = ?", serviceID, clinicID).
		Count(&count).Error; err != nil {
		httperr.Internal(c, "failed_to_get_service", "Erro ao carregar serviço.")
		return false
	}
	if count == 0 {
		httperr.NotFound(c, "service_not_found", "Serviço não encontrado.")
		return false
	}
	return true
}

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || v == 0 {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return 0, false
	}
	return uint(v), true
}

// --------- Handlers ---------

// ListByProfessional devolve todos os vínculos do profissional,
// ativos e inativos, com serviço pré-carregado.
func (h *ProfessionalServiceHandler) ListByProfessional(c *gin.Context) {
	professionalID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if !h.professionalInClinic(c, professionalID) {
		return
	}

	associations, err := h.repo.ListAssociationsByProfessional(c.Request.Context(), professionalID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_associations", "Erro ao listar vínculos.")
		return
	}

	httpresp.List(c, associations)
}

// ListByService devolve os profissionais vinculados ao serviço;
// com ?active=true só os vínculos ativos.
func (h *ProfessionalServiceHandler) ListByService(c *gin.Context) {
	serviceID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if !h.serviceInClinic(c, serviceID) {
		return
	}

	onlyActive := c.Query("active") == "true"

	associations, err := h.repo.ListAssociationsByService(c.Request.Context(), serviceID, onlyActive)
	if err != nil {
		httperr.Internal(c, "failed_to_list_associations", "Erro ao listar vínculos.")
		return
	}

	httpresp.List(c, associations)
}

func (h *ProfessionalServiceHandler) Get(c *gin.Context) {
	professionalID, ok := parseUintParam(c, "professionalId")
	if !ok {
		return
	}
	serviceID, ok := parseUintParam(c, "serviceId")
	if !ok {
		return
	}
	if !h.professionalInClinic(c, professionalID) {
		return
	}

	assoc, err := h.repo.GetAssociation(c.Request.Context(), professionalID, serviceID)
	if err != nil {
		httperr.Internal(c, "failed_to_get_association", "Erro ao carregar vínculo.")
		return
	}
	if assoc == nil {
		httperr.NotFound(c, "association_not_found", "Vínculo não encontrado.")
		return
	}

	c.JSON(http.StatusOK, assoc)
}

func (h *ProfessionalServiceHandler) Create(c *gin.Context) {
	var req CreateAssociationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if !h.professionalInClinic(c, req.ProfessionalID) {
		return
	}

	clinicID := c.MustGet(middleware.ContextClinicID).(uint)
	svc, err := h.repo.GetService(c.Request.Context(), clinicID, req.ServiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "service_not_found", "Serviço não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_service", "Erro ao carregar serviço.")
		return
	}

	// sem override, o vínculo nasce com a duração padrão do serviço
	customDuration := svc.DurationMinutes
	if req.CustomDurationMinutes != nil {
		if *req.CustomDurationMinutes <= 0 {
			httperr.BadRequest(c, "invalid_duration", "Duração precisa ser positiva.")
			return
		}
		customDuration = *req.CustomDurationMinutes
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	assoc := models.ProfessionalService{
		ProfessionalID:        req.ProfessionalID,
		ServiceID:             req.ServiceID,
		CustomDurationMinutes: customDuration,
		IsActive:              active,
		Version:               1,
	}

	if err := h.repo.CreateAssociation(c.Request.Context(), &assoc); err != nil {
		if writeBusinessError(c, err) {
			return
		}
		httperr.Internal(c, "failed_to_create_association", "Erro ao criar vínculo.")
		return
	}

	c.JSON(http.StatusCreated, assoc)
}

// Update é parcial e otimista: o cliente manda a versão que leu e só
// ganha se ela ainda for a corrente.
func (h *ProfessionalServiceHandler) Update(c *gin.Context) {
	professionalID, ok := parseUintParam(c, "professionalId")
	if !ok {
		return
	}
	serviceID, ok := parseUintParam(c, "serviceId")
	if !ok {
		return
	}
	if !h.professionalInClinic(c, professionalID) {
		return
	}

	var req UpdateAssociationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	assoc, err := h.repo.GetAssociation(c.Request.Context(), professionalID, serviceID)
	if err != nil {
		httperr.Internal(c, "failed_to_get_association", "Erro ao carregar vínculo.")
		return
	}
	if assoc == nil {
		httperr.NotFound(c, "association_not_found", "Vínculo não encontrado.")
		return
	}

	if req.CustomDurationMinutes != nil {
		if *req.CustomDurationMinutes <= 0 {
			httperr.BadRequest(c, "invalid_duration", "Duração precisa ser positiva.")
			return
		}
		assoc.CustomDurationMinutes = *req.CustomDurationMinutes
	}
	if req.IsActive != nil {
		assoc.IsActive = *req.IsActive
	}
	assoc.Version = req.Version

	if err := h.repo.UpdateAssociation(c.Request.Context(), assoc); err != nil {
		if writeBusinessError(c, err) {
			return
		}
		httperr.Internal(c, "failed_to_update_association", "Erro ao atualizar vínculo.")
		return
	}

	c.JSON(http.StatusOK, assoc)
}

func (h *ProfessionalServiceHandler) Delete(c *gin.Context) {
	professionalID, ok := parseUintParam(c, "professionalId")
	if !ok {
		return
	}
	serviceID, ok := parseUintParam(c, "serviceId")
	if !ok {
		return
	}
	if !h.professionalInClinic(c, professionalID) {
		return
	}

	assoc, err := h.repo.GetAssociation(c.Request.Context(), professionalID, serviceID)
	if err != nil {
		httperr.Internal(c, "failed_to_get_association", "Erro ao carregar vínculo.")
		return
	}
	if assoc == nil {
		httperr.NotFound(c, "association_not_found", "Vínculo não encontrado.")
		return
	}

	if err := h.repo.DeleteAssociation(c.Request.Context(), assoc.ID); err != nil {
		httperr.Internal(c, "failed_to_delete_association", "Erro ao remover vínculo.")
		return
	}

	c.Status(http.StatusNoContent)
}

// Toggle é o atalho de ativar/desativar; por baixo é o mesmo update
// otimista, então também exige a versão corrente.
func (h *ProfessionalServiceHandler) Toggle(c *gin.Context) {
	professionalID, ok := parseUintParam(c, "professionalId")
	if !ok {
		return
	}
	serviceID, ok := parseUintParam(c, "serviceId")
	if !ok {
		return
	}
	if !h.professionalInClinic(c, professionalID) {
		return
	}

	var req ToggleAssociationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	assoc, err := h.repo.GetAssociation(c.Request.Context(), professionalID, serviceID)
	if err != nil {
		httperr.Internal(c, "failed_to_get_association", "Erro ao carregar vínculo.")
		return
	}
	if assoc == nil {
		httperr.NotFound(c, "association_not_found", "Vínculo não encontrado.")
		return
	}

	assoc.IsActive = *req.IsActive
	assoc.Version = req.Version

	if err := h.repo.UpdateAssociation(c.Request.Context(), assoc); err != nil {
		if writeBusinessError(c, err) {
			return
		}
		httperr.Internal(c, "failed_to_update_association", "Erro ao atualizar vínculo.")
		return
	}

	c.JSON(http.StatusOK, assoc)
}

// Duration devolve a duração personalizada do par quando o vínculo está
// ativo; sem vínculo ativo o campo vem nulo. A duração efetiva de um
// atendimento (com fallback para a padrão do serviço) é resolvida na
// criação do agendamento, não aqui.
func (h *ProfessionalServiceHandler) Duration(c *gin.Context) {
	professionalID, ok := parseUintParam(c, "professionalId")
	if !ok {
		return
	}
	serviceID, ok := parseUintParam(c, "serviceId")
	if !ok {
		return
	}
	if !h.professionalInClinic(c, professionalID) {
		return
	}

	minutes, err := h.repo.GetDuration(c.Request.Context(), professionalID, serviceID)
	if err != nil {
		httperr.Internal(c, "failed_to_get_association", "Erro ao consultar vínculo.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"professional_id":  professionalID,
		"service_id":       serviceID,
		"duration_minutes": minutes,
	})
}

// CanPerform responde se o profissional pode executar o serviço
// (vínculo existente e ativo).
func (h *ProfessionalServiceHandler) CanPerform(c *gin.Context) {
	professionalID, ok := parseUintParam(c, "professionalId")
	if !ok {
		return
	}
	serviceID, ok := parseUintParam(c, "serviceId")
	if !ok {
		return
	}
	if !h.professionalInClinic(c, professionalID) {
		return
	}

	can, err := h.repo.CanProfessionalPerformService(c.Request.Context(), professionalID, serviceID)
	if err != nil {
		httperr.Internal(c, "failed_to_get_association", "Erro ao consultar vínculo.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"professional_id": professionalID,
		"service_id":      serviceID,
		"can_perform":     can,
	})
}
