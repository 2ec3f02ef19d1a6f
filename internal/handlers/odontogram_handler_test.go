package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidToothNumber(t *testing.T) {
	valid := []int{11, 18, 21, 28, 31, 38, 41, 48, 51, 55, 61, 75, 85}
	for _, n := range valid {
		assert.True(t, validToothNumber(n), "dente %d deveria ser válido", n)
	}

	invalid := []int{0, 9, 10, 19, 29, 40, 49, 50, 56, 66, 86, 90, 99, -11}
	for _, n := range invalid {
		assert.False(t, validToothNumber(n), "dente %d deveria ser inválido", n)
	}
}

// expectOdontogramLoad cobre o getOrCreate: cliente existe e o
// odontograma já foi criado numa visita anterior.
func expectOdontogramLoad(mock sqlmock.Sqlmock) {
	mock.ExpectQuery(`SELECT \* FROM "clients" WHERE id = \$1 AND clinic_id = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "clinic_id"}).AddRow(30, 1))

	mock.ExpectQuery(`SELECT \* FROM "odontograms" WHERE client_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "clinic_id", "client_id"}).AddRow(7, 1, 30))

	mock.ExpectQuery(`SELECT \* FROM "odontogram_entries"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
}

func TestUpsertEntry_RejectsToothOutsideFDINotation(t *testing.T) {
	gormDB, mock := newHandlerTestDB(t)
	h := NewOdontogramHandler(gormDB)

	expectOdontogramLoad(mock)

	w := httptest.NewRecorder()
	body := `{"tooth_number": 99, "face": "mesial", "condition": "caries"}`
	c := authedContext(t, w, http.MethodPut, "/api/me/clients/30/odontogram/entries", body)
	c.Params = gin.Params{{Key: "id", Value: "30"}}

	h.UpsertEntry(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_tooth_number")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertEntry_SavesConditionOnConflictUpdate(t *testing.T) {
	gormDB, mock := newHandlerTestDB(t)
	h := NewOdontogramHandler(gormDB)

	expectOdontogramLoad(mock)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "odontogram_entries" .+ ON CONFLICT \("odontogram_id","tooth_number","face"\) DO UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
	mock.ExpectCommit()

	w := httptest.NewRecorder()
	body := `{"tooth_number": 16, "face": "oclusal", "condition": " Caries "}`
	c := authedContext(t, w, http.MethodPut, "/api/me/clients/30/odontogram/entries", body)
	c.Params = gin.Params{{Key: "id", Value: "30"}}

	h.UpsertEntry(c)

	require.Equal(t, http.StatusOK, w.Code)
	// face e condição normalizadas, status default aplicado
	assert.Contains(t, w.Body.String(), `"face":"oclusal"`)
	assert.Contains(t, w.Body.String(), `"condition":"caries"`)
	assert.Contains(t, w.Body.String(), `"status":"pending"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteEntry_NotFound(t *testing.T) {
	gormDB, mock := newHandlerTestDB(t)
	h := NewOdontogramHandler(gormDB)

	expectOdontogramLoad(mock)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "odontogram_entries" WHERE id = \$1 AND odontogram_id = \$2`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	w := httptest.NewRecorder()
	c := authedContext(t, w, http.MethodDelete, "/api/me/clients/30/odontogram/entries/999", "")
	c.Params = gin.Params{{Key: "id", Value: "30"}, {Key: "entryId", Value: "999"}}

	h.DeleteEntry(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "entry_not_found")
	assert.NoError(t, mock.ExpectationsWereMet())
}
