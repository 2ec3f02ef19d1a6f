package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/odontosys/clinic-api/internal/domain/schedule"
	"github.com/odontosys/clinic-api/internal/httperr"
	"github.com/odontosys/clinic-api/internal/middleware"
	ucAppointment "github.com/odontosys/clinic-api/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC       *ucAppointment.CreateAppointment
	completeUC     *ucAppointment.CompleteAppointment
	cancelUC       *ucAppointment.CancelAppointment
	deleteUC       *ucAppointment.DeleteAppointment
	listByDateUC   *ucAppointment.ListAppointmentsByDate
	listByMonthUC  *ucAppointment.ListAppointmentsByMonth
	availabilityUC *ucAppointment.GetAvailability
}

func NewAppointmentHandler(
	createUC *ucAppointment.CreateAppointment,
	completeUC *ucAppointment.CompleteAppointment,
	cancelUC *ucAppointment.CancelAppointment,
	deleteUC *ucAppointment.DeleteAppointment,
	listByDateUC *ucAppointment.ListAppointmentsByDate,
	listByMonthUC *ucAppointment.ListAppointmentsByMonth,
	availabilityUC *ucAppointment.GetAvailability,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC:       createUC,
		completeUC:     completeUC,
		cancelUC:       cancelUC,
		deleteUC:       deleteUC,
		listByDateUC:   listByDateUC,
		listByMonthUC:  listByMonthUC,
		availabilityUC: availabilityUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	CustomerName   string `json:"customer_name" binding:"required"`
	CustomerPhone  string `json:"customer_phone" binding:"required"`
	ProfessionalID uint   `json:"professional_id" binding:"required"`
	ServiceID      uint   `json:"service_id" binding:"required"`
	Date           string `json:"date" binding:"required"` // YYYY-MM-DD
	Time           string `json:"time" binding:"required"` // HH:mm
	Notes          string `json:"notes"`
}

// ======================================================
// HANDLERS
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		ClinicID:       clinicID,
		UserID:         userID,
		CustomerName:   req.CustomerName,
		CustomerPhone:  req.CustomerPhone,
		ProfessionalID: req.ProfessionalID,
		ServiceID:      req.ServiceID,
		Date:           req.Date,
		Time:           req.Time,
		Notes:          req.Notes,
	})
	if err != nil {
		if writeBusinessError(c, err) {
			return
		}
		httperr.Internal(c, "failed_to_create_appointment", "Erro ao criar agendamento.")
		return
	}

	c.JSON(http.StatusCreated, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	ap, err := h.completeUC.Execute(c.Request.Context(), clinicID, userID, id)
	if err != nil {
		if writeBusinessError(c, err) {
			return
		}
		httperr.Internal(c, "failed_to_complete_appointment", "Erro ao concluir agendamento.")
		return
	}

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	ap, err := h.cancelUC.Execute(c.Request.Context(), clinicID, userID, id)
	if err != nil {
		if writeBusinessError(c, err) {
			return
		}
		httperr.Internal(c, "failed_to_cancel_appointment", "Erro ao cancelar agendamento.")
		return
	}

	c.JSON(http.StatusOK, ap)
}

// Delete remove de verdade (não é cancelamento): só agendamentos
// futuros de clientes não travados.
func (h *AppointmentHandler) Delete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), clinicID, userID, id); err != nil {
		if writeBusinessError(c, err) {
			return
		}
		httperr.Internal(c, "failed_to_delete_appointment", "Erro ao remover agendamento.")
		return
	}

	c.Status(http.StatusNoContent)
}

// ListByDate lista o dia pedido em ?date=YYYY-MM-DD (hoje por omissão),
// opcionalmente filtrado por ?professional_id.
func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	dateStr := c.Query("date")
	var date time.Time
	if dateStr == "" {
		date = time.Now()
	} else {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Data inválida, use YYYY-MM-DD.")
			return
		}
		date = parsed
	}

	professionalID := queryUint(c, "professional_id")

	out, err := h.listByDateUC.Execute(c.Request.Context(), clinicID, professionalID, date)
	if err != nil {
		if writeBusinessError(c, err) {
			return
		}
		httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	c.JSON(http.StatusOK, out)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	year, errY := strconv.Atoi(c.Query("year"))
	month, errM := strconv.Atoi(c.Query("month"))
	if errY != nil || errM != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Informe year e month válidos.")
		return
	}

	professionalID := queryUint(c, "professional_id")

	out, err := h.listByMonthUC.Execute(c.Request.Context(), clinicID, professionalID, year, month)
	if err != nil {
		if writeBusinessError(c, err) {
			return
		}
		httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	c.JSON(http.StatusOK, out)
}

// Availability devolve os horários livres de um profissional para um
// serviço num dia, já fatiados pela duração efetiva.
func (h *AppointmentHandler) Availability(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	professionalID := queryUint(c, "professional_id")
	serviceID := queryUint(c, "service_id")
	if professionalID == 0 || serviceID == 0 {
		httperr.BadRequest(c, "invalid_request", "Informe professional_id e service_id.")
		return
	}

	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida, use YYYY-MM-DD.")
		return
	}

	slots, err := h.availabilityUC.Execute(c.Request.Context(), domain.AvailabilityInput{
		ClinicID:       clinicID,
		ProfessionalID: professionalID,
		ServiceID:      serviceID,
		Date:           date,
	})
	if err != nil {
		if writeBusinessError(c, err) {
			return
		}
		httperr.Internal(c, "failed_to_get_availability", "Erro ao calcular disponibilidade.")
		return
	}

	c.JSON(http.StatusOK, slots)
}

func queryUint(c *gin.Context, name string) uint {
	v, err := strconv.ParseUint(c.Query(name), 10, 32)
	if err != nil {
		return 0
	}
	return uint(v)
}
