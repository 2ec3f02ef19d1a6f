package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/odontosys/clinic-api/internal/httperr"
)

func TestWriteBusinessError_StatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		code       string
		wantStatus int
	}{
		{"time_conflict", http.StatusConflict},
		{"duplicate_association", http.StatusConflict},
		{"version_conflict", http.StatusConflict},
		{"association_not_found", http.StatusNotFound},
		{"appointment_not_found", http.StatusNotFound},
		{"in_the_past", http.StatusBadRequest},
		{"outside_business_hours", http.StatusBadRequest},
		{"service_not_allowed", http.StatusBadRequest},
		{"client_locked", http.StatusBadRequest},
		{"codigo_desconhecido", http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			handled := writeBusinessError(c, httperr.ErrBusiness(tc.code))
			assert.True(t, handled)
			assert.Equal(t, tc.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tc.code)
		})
	}
}

func TestWriteBusinessError_IgnoresInfrastructureErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	handled := writeBusinessError(c, errors.New("connection refused"))
	assert.False(t, handled)
}
