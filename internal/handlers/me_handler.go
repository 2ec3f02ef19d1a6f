package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/odontosys/clinic-api/internal/middleware"
	"github.com/odontosys/clinic-api/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userIDVal, exists := c.Get(middleware.ContextUserID)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user_not_in_context"})
		return
	}

	userID, ok := userIDVal.(uint)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_user_id_type"})
		return
	}

	var user models.User
	if err := h.db.Preload("Clinic").First(&user, userID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user_not_found"})
		return
	}

	// usuário pode não ter cadastro de profissional; isso não é erro
	var professional *models.Professional
	if user.ProfessionalID != nil {
		var p models.Professional
		err := h.db.First(&p, *user.ProfessionalID).Error
		if err == nil {
			professional = &p
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_professional"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":        user.ID,
			"name":      user.Name,
			"email":     user.Email,
			"phone":     user.Phone,
			"role":      user.Role,
			"clinic_id": user.ClinicID,
		},
		"clinic": gin.H{
			"id":       user.Clinic.ID,
			"name":     user.Clinic.Name,
			"slug":     user.Clinic.Slug,
			"phone":    user.Clinic.Phone,
			"address":  user.Clinic.Address,
			"timezone": user.Clinic.Timezone,
		},
		"professional": professional,
	})
}
