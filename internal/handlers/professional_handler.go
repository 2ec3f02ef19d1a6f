package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/odontosys/clinic-api/internal/httperr"
	"github.com/odontosys/clinic-api/internal/httpresp"
	"github.com/odontosys/clinic-api/internal/middleware"
	"github.com/odontosys/clinic-api/internal/models"
	"github.com/odontosys/clinic-api/internal/storage"
)

type ProfessionalHandler struct {
	db       *gorm.DB
	uploader *storage.Uploader
}

func NewProfessionalHandler(db *gorm.DB, uploader *storage.Uploader) *ProfessionalHandler {
	return &ProfessionalHandler{db: db, uploader: uploader}
}

// --------- Requests ---------

type CreateProfessionalRequest struct {
	Name      string `json:"name" binding:"required"`
	Specialty string `json:"specialty"`
}

type UpdateProfessionalRequest struct {
	Name      *string `json:"name,omitempty"`
	Specialty *string `json:"specialty,omitempty"`
	Active    *bool   `json:"active,omitempty"`
}

// --------- Handlers ---------

func (h *ProfessionalHandler) List(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	activeStr := strings.TrimSpace(c.Query("active"))
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Where("clinic_id = ?", clinicID)

	if activeStr == "true" {
		q = q.Where("active = ?", true)
	} else if activeStr == "false" {
		q = q.Where("active = ?", false)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(specialty) LIKE ?", like, like)
	}

	var professionals []models.Professional
	if err := q.Order("name ASC").Find(&professionals).Error; err != nil {
		httperr.Internal(c, "failed_to_list_professionals", "Erro ao listar profissionais.")
		return
	}

	httpresp.List(c, professionals)
}

func (h *ProfessionalHandler) Get(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)
	id := c.Param("id")

	var professional models.Professional
	if err := h.db.
		Where("id = ? AND clinic_id = ?", id, clinicID).
		First(&professional).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_professional", "Erro ao carregar profissional.")
		return
	}

	c.JSON(http.StatusOK, professional)
}

func (h *ProfessionalHandler) Create(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	var req CreateProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	professional := models.Professional{
		ClinicID:  clinicID,
		Name:      strings.TrimSpace(req.Name),
		Specialty: strings.TrimSpace(req.Specialty),
		Code:      professionalCode(req.Name),
		Active:    true,
	}

	if err := h.db.Create(&professional).Error; err != nil {
		httperr.Internal(c, "failed_to_create_professional", "Erro ao cadastrar profissional.")
		return
	}

	c.JSON(http.StatusCreated, professional)
}

func (h *ProfessionalHandler) Update(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)
	id := c.Param("id")

	var professional models.Professional
	if err := h.db.
		Where("id = ? AND clinic_id = ?", id, clinicID).
		First(&professional).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_professional", "Erro ao carregar profissional.")
		return
	}

	var req UpdateProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.Name != nil {
		professional.Name = strings.TrimSpace(*req.Name)
	}
	if req.Specialty != nil {
		professional.Specialty = strings.TrimSpace(*req.Specialty)
	}
	if req.Active != nil {
		professional.Active = *req.Active
	}

	if err := h.db.Save(&professional).Error; err != nil {
		httperr.Internal(c, "failed_to_update_professional", "Erro ao atualizar profissional.")
		return
	}

	c.JSON(http.StatusOK, professional)
}

// Delete recusa a remoção enquanto o profissional tiver vínculos de serviço
// ou agendamentos futuros; desativar é o caminho normal.
func (h *ProfessionalHandler) Delete(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)
	id := c.Param("id")

	var professional models.Professional
	if err := h.db.
		Where("id = ? AND clinic_id = ?", id, clinicID).
		First(&professional).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_professional", "Erro ao carregar profissional.")
		return
	}

	var associations int64
	if err := h.db.Model(&models.ProfessionalService{}).
		Where("professional_id = ?", professional.ID).
		Count(&associations).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_professional", "Erro ao remover profissional.")
		return
	}
	if associations > 0 {
		httperr.Conflict(c, "professional_has_services",
			"Profissional possui serviços vinculados; desative-o ou remova os vínculos antes.")
		return
	}

	var future int64
	if err := h.db.Model(&models.Appointment{}).
		Where("professional_id = ? AND start_time > NOW() AND status = ?",
			professional.ID, "scheduled").
		Count(&future).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_professional", "Erro ao remover profissional.")
		return
	}
	if future > 0 {
		httperr.Conflict(c, "professional_has_appointments",
			"Profissional possui agendamentos futuros; cancele-os antes de remover.")
		return
	}

	if err := h.db.Delete(&professional).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_professional", "Erro ao remover profissional.")
		return
	}

	c.Status(http.StatusNoContent)
}

// UploadPhoto recebe um multipart "photo", normaliza para webp 512px
// e publica no bucket. Sem bucket configurado o endpoint fica indisponível.
func (h *ProfessionalHandler) UploadPhoto(c *gin.Context) {
	if h.uploader == nil {
		httperr.Write(c, http.StatusServiceUnavailable,
			"storage_unavailable", "Armazenamento de fotos não configurado.")
		return
	}

	clinicID := c.MustGet(middleware.ContextClinicID).(uint)
	id := c.Param("id")

	var professional models.Professional
	if err := h.db.
		Where("id = ? AND clinic_id = ?", id, clinicID).
		First(&professional).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_professional", "Erro ao carregar profissional.")
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		httperr.BadRequest(c, "missing_photo", "Envie o arquivo no campo 'photo'.")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httperr.BadRequest(c, "invalid_photo", "Não foi possível ler a foto enviada.")
		return
	}
	defer file.Close()

	normalized, err := storage.NormalizePhoto(file)
	if err != nil {
		httperr.BadRequest(c, "invalid_photo", "Formato de imagem não suportado.")
		return
	}

	key := fmt.Sprintf("professionals/%d/%s.webp", professional.ID, uuid.NewString())

	url, err := h.uploader.Put(c.Request.Context(), key, normalized, "image/webp")
	if err != nil {
		httperr.Internal(c, "failed_to_upload_photo", "Erro ao enviar a foto.")
		return
	}

	professional.PhotoURL = url
	if err := h.db.Save(&professional).Error; err != nil {
		httperr.Internal(c, "failed_to_update_professional", "Erro ao salvar a foto.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"photo_url": url})
}

// professionalCode gera o código público: slug do nome + fragmento de uuid.
func professionalCode(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Join(strings.Fields(slug), "-")
	if len(slug) > 40 {
		slug = slug[:40]
	}
	return slug + "-" + uuid.NewString()[:8]
}
