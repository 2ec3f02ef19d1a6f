package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	infraRepo "github.com/odontosys/clinic-api/internal/infra/repository"
)

// O load do serviço no Create distingue ausência de falha do banco:
// serviço inexistente é 404, banco fora do ar é 500.
func TestCreateAssociation_ServiceLookupErrors(t *testing.T) {
	body := `{"professional_id": 10, "service_id": 20}`

	t.Run("service missing", func(t *testing.T) {
		gormDB, mock := newHandlerTestDB(t)
		h := NewProfessionalServiceHandler(gormDB, infraRepo.NewScheduleGormRepository(gormDB))

		mock.ExpectQuery(`SELECT count\(\*\) FROM "professionals"`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery(`SELECT \* FROM "services"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		w := httptest.NewRecorder()
		c := authedContext(t, w, http.MethodPost, "/api/me/associations", body)

		h.Create(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "service_not_found")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("store failure", func(t *testing.T) {
		gormDB, mock := newHandlerTestDB(t)
		h := NewProfessionalServiceHandler(gormDB, infraRepo.NewScheduleGormRepository(gormDB))

		mock.ExpectQuery(`SELECT count\(\*\) FROM "professionals"`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery(`SELECT \* FROM "services"`).
			WillReturnError(assert.AnError)

		w := httptest.NewRecorder()
		c := authedContext(t, w, http.MethodPost, "/api/me/associations", body)

		h.Create(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "failed_to_get_service")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
