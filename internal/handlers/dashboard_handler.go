package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/odontosys/clinic-api/internal/httperr"
	"github.com/odontosys/clinic-api/internal/middleware"
	"github.com/odontosys/clinic-api/internal/models"
	"github.com/odontosys/clinic-api/internal/timezone"
)

type DashboardHandler struct {
	db *gorm.DB
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{db: db}
}

type DashboardOverview struct {
	AppointmentsToday     int64   `json:"appointments_today"`
	AppointmentsUpcoming  int64   `json:"appointments_upcoming"`
	ClientsTotal          int64   `json:"clients_total"`
	ProfessionalsActive   int64   `json:"professionals_active"`
	RevenueMonth          float64 `json:"revenue_month"`
	PendingTransactions   int64   `json:"pending_transactions"`
	ActiveDiagnosesOpen   int64   `json:"active_diagnoses"`
	CancellationsThisWeek int64   `json:"cancellations_this_week"`
}

// Overview reúne os números do painel inicial numa resposta só.
func (h *DashboardHandler) Overview(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	var clinic models.Clinic
	if err := h.db.First(&clinic, clinicID).Error; err != nil {
		httperr.Internal(c, "failed_to_get_clinic", "Erro ao carregar clínica.")
		return
	}

	loc := timezone.Location(clinic.Timezone)
	now := time.Now().In(loc)
	dayStart, dayEnd := timezone.DayBounds(now, clinic.Timezone)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	weekStart := dayStart.AddDate(0, 0, -int(now.Weekday()))

	var out DashboardOverview

	h.db.Model(&models.Appointment{}).
		Where("clinic_id = ? AND start_time >= ? AND start_time < ?", clinicID, dayStart, dayEnd).
		Count(&out.AppointmentsToday)

	h.db.Model(&models.Appointment{}).
		Where("clinic_id = ? AND start_time >= ? AND status = ?", clinicID, now, "scheduled").
		Count(&out.AppointmentsUpcoming)

	h.db.Model(&models.Client{}).
		Where("clinic_id = ?", clinicID).
		Count(&out.ClientsTotal)

	h.db.Model(&models.Professional{}).
		Where("clinic_id = ? AND active = ?", clinicID, true).
		Count(&out.ProfessionalsActive)

	h.db.Model(&models.FinancialTransaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("clinic_id = ? AND kind = ? AND status = ? AND created_at >= ?",
			clinicID, "income", "paid", monthStart).
		Scan(&out.RevenueMonth)

	h.db.Model(&models.FinancialTransaction{}).
		Where("clinic_id = ? AND status = ?", clinicID, "pending").
		Count(&out.PendingTransactions)

	h.db.Model(&models.Diagnosis{}).
		Where("clinic_id = ? AND status = ?", clinicID, "active").
		Count(&out.ActiveDiagnosesOpen)

	h.db.Model(&models.Appointment{}).
		Where("clinic_id = ? AND status = ? AND updated_at >= ?", clinicID, "cancelled", weekStart).
		Count(&out.CancellationsThisWeek)

	c.JSON(http.StatusOK, out)
}
