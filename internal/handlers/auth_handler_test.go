package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/odontosys/clinic-api/internal/config"
)

func TestLogin_WrongPasswordIsUnauthorized(t *testing.T) {
	gormDB, mock := newHandlerTestDB(t)
	h := NewAuthHandler(gormDB, &config.Config{JWTSecret: "segredo-de-teste"})

	hash, err := bcrypt.GenerateFromPassword([]byte("senha-certa"), bcrypt.MinCost)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "clinic_id", "email", "password_hash"}).
			AddRow(1, 1, "dona@clinica.com", string(hash)))
	mock.ExpectQuery(`SELECT \* FROM "clinics"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	w := httptest.NewRecorder()
	c := authedContext(t, w, http.MethodPost, "/api/auth/login",
		`{"email": "dona@clinica.com", "password": "senha-errada"}`)

	h.Login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_credentials")
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Email desconhecido responde igual a senha errada.
func TestLogin_UnknownEmailIsUnauthorized(t *testing.T) {
	gormDB, mock := newHandlerTestDB(t)
	h := NewAuthHandler(gormDB, &config.Config{JWTSecret: "segredo-de-teste"})

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	w := httptest.NewRecorder()
	c := authedContext(t, w, http.MethodPost, "/api/auth/login",
		`{"email": "ninguem@clinica.com", "password": "tanto-faz"}`)

	h.Login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_credentials")
	assert.NoError(t, mock.ExpectationsWereMet())
}
