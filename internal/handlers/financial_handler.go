package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/odontosys/clinic-api/internal/httperr"
	"github.com/odontosys/clinic-api/internal/httpresp"
	"github.com/odontosys/clinic-api/internal/middleware"
	"github.com/odontosys/clinic-api/internal/models"
	"github.com/odontosys/clinic-api/internal/payments"
)

type FinancialHandler struct {
	db *gorm.DB
	mp *payments.MercadoPago
}

func NewFinancialHandler(db *gorm.DB, mp *payments.MercadoPago) *FinancialHandler {
	return &FinancialHandler{db: db, mp: mp}
}

// --------- Requests ---------

type CreateTransactionRequest struct {
	Kind          string  `json:"kind" binding:"required,oneof=income expense"`
	Description   string  `json:"description"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	ClientID      *uint   `json:"client_id,omitempty"`
	AppointmentID *uint   `json:"appointment_id,omitempty"`
}

type FinancialSummary struct {
	Income         float64 `json:"income"`
	Expense        float64 `json:"expense"`
	Balance        float64 `json:"balance"`
	PendingIncome  float64 `json:"pending_income"`
	PendingPercent float64 `json:"pending_percent"`
}

// --------- Handlers ---------

func (h *FinancialHandler) List(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	q := h.db.Where("clinic_id = ?", clinicID)

	if kind := strings.TrimSpace(c.Query("kind")); kind != "" {
		q = q.Where("kind = ?", kind)
	}
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		q = q.Where("status = ?", status)
	}
	if from := c.Query("from"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			q = q.Where("created_at >= ?", t)
		}
	}
	if to := c.Query("to"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			q = q.Where("created_at < ?", t.Add(24*time.Hour))
		}
	}

	var transactions []models.FinancialTransaction
	if err := q.Order("created_at DESC").Find(&transactions).Error; err != nil {
		httperr.Internal(c, "failed_to_list_transactions", "Erro ao listar lançamentos.")
		return
	}

	httpresp.List(c, transactions)
}

func (h *FinancialHandler) Create(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	tx := models.FinancialTransaction{
		ClinicID:      clinicID,
		Kind:          req.Kind,
		Description:   strings.TrimSpace(req.Description),
		Amount:        req.Amount,
		Status:        "pending",
		ClientID:      req.ClientID,
		AppointmentID: req.AppointmentID,
	}

	if err := h.db.Create(&tx).Error; err != nil {
		httperr.Internal(c, "failed_to_create_transaction", "Erro ao criar lançamento.")
		return
	}

	c.JSON(http.StatusCreated, tx)
}

func (h *FinancialHandler) getForClinic(c *gin.Context) (*models.FinancialTransaction, bool) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)
	id := c.Param("id")

	var tx models.FinancialTransaction
	if err := h.db.
		Where("id = ? AND clinic_id = ?", id, clinicID).
		First(&tx).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "transaction_not_found", "Lançamento não encontrado.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_transaction", "Erro ao carregar lançamento.")
		return nil, false
	}
	return &tx, true
}

// MarkPaid fecha um lançamento pendente. Só pendentes mudam de estado.
func (h *FinancialHandler) MarkPaid(c *gin.Context) {
	tx, ok := h.getForClinic(c)
	if !ok {
		return
	}

	if tx.Status != "pending" {
		httperr.Conflict(c, "transaction_not_pending", "Lançamento não está pendente.")
		return
	}

	now := time.Now()
	tx.Status = "paid"
	tx.PaidAt = &now

	if err := h.db.Save(tx).Error; err != nil {
		httperr.Internal(c, "failed_to_update_transaction", "Erro ao atualizar lançamento.")
		return
	}

	c.JSON(http.StatusOK, tx)
}

func (h *FinancialHandler) CancelTransaction(c *gin.Context) {
	tx, ok := h.getForClinic(c)
	if !ok {
		return
	}

	if tx.Status != "pending" {
		httperr.Conflict(c, "transaction_not_pending", "Lançamento não está pendente.")
		return
	}

	tx.Status = "cancelled"
	if err := h.db.Save(tx).Error; err != nil {
		httperr.Internal(c, "failed_to_update_transaction", "Erro ao atualizar lançamento.")
		return
	}

	c.JSON(http.StatusOK, tx)
}

// CreatePaymentLink gera (ou reaproveita) o link de checkout de um
// lançamento de receita pendente.
func (h *FinancialHandler) CreatePaymentLink(c *gin.Context) {
	if h.mp == nil {
		httperr.Write(c, http.StatusServiceUnavailable,
			"payments_unavailable", "Pagamentos online não configurados.")
		return
	}

	tx, ok := h.getForClinic(c)
	if !ok {
		return
	}

	if tx.Kind != "income" {
		httperr.BadRequest(c, "invalid_transaction_kind", "Só receitas geram link de pagamento.")
		return
	}
	if tx.Status != "pending" {
		httperr.Conflict(c, "transaction_not_pending", "Lançamento não está pendente.")
		return
	}

	if tx.PaymentLink != "" {
		c.JSON(http.StatusOK, gin.H{"payment_link": tx.PaymentLink})
		return
	}

	prefID, link, err := h.mp.CreatePaymentLink(c.Request.Context(), tx)
	if err != nil {
		httperr.Internal(c, "failed_to_create_payment_link", "Erro ao gerar link de pagamento.")
		return
	}

	tx.PaymentPreferenceID = prefID
	tx.PaymentLink = link
	if err := h.db.Save(tx).Error; err != nil {
		httperr.Internal(c, "failed_to_update_transaction", "Erro ao salvar link de pagamento.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"payment_link": link})
}

// Summary agrega o período em receitas, despesas, saldo e a fatia
// pendente das receitas.
func (h *FinancialHandler) Summary(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	q := h.db.Model(&models.FinancialTransaction{}).
		Where("clinic_id = ? AND status <> ?", clinicID, "cancelled")

	if from := c.Query("from"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			q = q.Where("created_at >= ?", t)
		}
	}
	if to := c.Query("to"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			q = q.Where("created_at < ?", t.Add(24*time.Hour))
		}
	}

	var rows []models.FinancialTransaction
	if err := q.Find(&rows).Error; err != nil {
		httperr.Internal(c, "failed_to_get_summary", "Erro ao calcular resumo.")
		return
	}

	var summary FinancialSummary
	var totalIncome float64
	for _, tx := range rows {
		switch tx.Kind {
		case "income":
			totalIncome += tx.Amount
			if tx.Status == "paid" {
				summary.Income += tx.Amount
			} else {
				summary.PendingIncome += tx.Amount
			}
		case "expense":
			if tx.Status == "paid" {
				summary.Expense += tx.Amount
			}
		}
	}
	summary.Balance = summary.Income - summary.Expense
	if totalIncome > 0 {
		summary.PendingPercent = summary.PendingIncome / totalIncome * 100
	}

	c.JSON(http.StatusOK, summary)
}
