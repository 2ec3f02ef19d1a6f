package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/odontosys/clinic-api/internal/middleware"
)

func newHandlerTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return gormDB, mock
}

// authedContext simula uma requisição já autenticada na clínica 1.
func authedContext(t *testing.T, w *httptest.ResponseRecorder, method, target, body string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(middleware.ContextClinicID, uint(1))
	return c
}

func TestFinancialSummary_Math(t *testing.T) {
	gormDB, mock := newHandlerTestDB(t)
	h := NewFinancialHandler(gormDB, nil)

	rows := sqlmock.NewRows([]string{"id", "clinic_id", "kind", "amount", "status"}).
		AddRow(1, 1, "income", 100.0, "paid").
		AddRow(2, 1, "income", 50.0, "pending").
		AddRow(3, 1, "expense", 30.0, "paid").
		AddRow(4, 1, "expense", 20.0, "pending")

	mock.ExpectQuery(`SELECT \* FROM "financial_transactions" WHERE clinic_id = \$1 AND status <> \$2`).
		WillReturnRows(rows)

	w := httptest.NewRecorder()
	c := authedContext(t, w, http.MethodGet, "/api/me/transactions/summary", "")

	h.Summary(c)

	require.Equal(t, http.StatusOK, w.Code)

	var got FinancialSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))

	assert.Equal(t, 100.0, got.Income)
	assert.Equal(t, 30.0, got.Expense)
	assert.Equal(t, 70.0, got.Balance)
	assert.Equal(t, 50.0, got.PendingIncome)
	// 50 pendentes de 150 de receita total
	assert.InDelta(t, 33.33, got.PendingPercent, 0.01)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFinancialSummary_NoIncomeHasZeroPendingPercent(t *testing.T) {
	gormDB, mock := newHandlerTestDB(t)
	h := NewFinancialHandler(gormDB, nil)

	rows := sqlmock.NewRows([]string{"id", "clinic_id", "kind", "amount", "status"}).
		AddRow(1, 1, "expense", 80.0, "paid")

	mock.ExpectQuery(`SELECT \* FROM "financial_transactions"`).
		WillReturnRows(rows)

	w := httptest.NewRecorder()
	c := authedContext(t, w, http.MethodGet, "/api/me/transactions/summary", "")

	h.Summary(c)

	require.Equal(t, http.StatusOK, w.Code)

	var got FinancialSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))

	assert.Equal(t, 0.0, got.PendingPercent)
	assert.Equal(t, -80.0, got.Balance)
}

func TestMarkPaid_RejectsNonPending(t *testing.T) {
	gormDB, mock := newHandlerTestDB(t)
	h := NewFinancialHandler(gormDB, nil)

	rows := sqlmock.NewRows([]string{"id", "clinic_id", "kind", "amount", "status"}).
		AddRow(5, 1, "income", 100.0, "paid")

	mock.ExpectQuery(`SELECT \* FROM "financial_transactions" WHERE id = \$1 AND clinic_id = \$2`).
		WillReturnRows(rows)

	w := httptest.NewRecorder()
	c := authedContext(t, w, http.MethodPatch, "/api/me/transactions/5/pay", "")
	c.Params = gin.Params{{Key: "id", Value: "5"}}

	h.MarkPaid(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "transaction_not_pending")
	assert.NoError(t, mock.ExpectationsWereMet())
}
