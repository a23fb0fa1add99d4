package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/comercio-api/internal/domain"
)

// mapError ejecuta writeDomainError dentro de un handler mínimo y devuelve
// status y body.
func mapError(t *testing.T, err error) (int, string) {
	t.Helper()
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return writeDomainError(c, err)
	})
	resp, reqErr := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, reqErr)
	body, readErr := io.ReadAll(resp.Body)
	require.NoError(t, readErr)
	return resp.StatusCode, string(body)
}

// El mapeo de errores de dominio a HTTP.
func TestWriteDomainError_Mapeo(t *testing.T) {
	casos := []struct {
		nombre string
		err    error
		status int
		code   string
	}{
		{"no encontrado", domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"entrada inválida", domain.ErrInvalidInput, http.StatusBadRequest, "VALIDATION"},
		{"estado inválido", domain.ErrInvalidState, http.StatusBadRequest, "INVALID_STATE"},
		{"duplicado", domain.ErrDuplicate, http.StatusConflict, "DUPLICATE"},
		{"email registrado", domain.ErrEmailAlreadyExists, http.StatusConflict, "DUPLICATE"},
		{"conflicto de referencia", domain.ErrConflict, http.StatusConflict, "CONFLICT"},
		{"no autorizado", domain.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"prohibido", domain.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{"desconocido", errors.New("boom"), http.StatusInternalServerError, "INTERNAL"},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			status, body := mapError(t, c.err)
			assert.Equal(t, c.status, status)
			assert.Contains(t, body, c.code)
		})
	}
}

// Stock insuficiente es 400 con los detalles del producto en el mensaje.
func TestWriteDomainError_StockInsuficiente(t *testing.T) {
	err := &domain.InsufficientStockError{
		ProductID:   "p1",
		ProductName: "Tornillo",
		Requested:   5,
		Available:   2,
	}
	status, body := mapError(t, err)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body, "INSUFFICIENT_STOCK")
	assert.Contains(t, body, "Tornillo")
	assert.Contains(t, body, "se requieren 5")
	assert.Contains(t, body, "disponibles 2")
}

// Un error envuelto también se clasifica (errors.Is a través de %w).
func TestWriteDomainError_ErrorEnvuelto(t *testing.T) {
	status, body := mapError(t, fmt.Errorf("consultando orden: %w", domain.ErrNotFound))
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, body, "NOT_FOUND")
}
