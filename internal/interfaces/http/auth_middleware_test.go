package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/comercio-api/internal/domain/entity"
	apphttp "github.com/jhoicas/comercio-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/comercio-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "comercio-api-test"
	testExpMin    = 60
)

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para parsear el JWT y cargar locals
//   - RequireRole para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(allowedRoles ...string) *fiber.App {
	app := fiber.New(fiber.Config{
		// Silenciar errores internos en los tests
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	// Ruta protegida: JWT + RBAC
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":   true,
				"role": apphttp.GetRole(c),
			})
		},
	)
	return app
}

// tokenForRole genera un JWT con el rol indicado.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, role, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Caso: sin header Authorization → HTTP 401.
func TestAuthMiddleware_SinToken(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)

	resp, body := doRequest(t, app, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "MISSING_TOKEN")
}

// Caso: header con formato incorrecto → HTTP 401.
func TestAuthMiddleware_FormatoInvalido(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)

	for _, header := range []string{"Basic abc123", "Bearer", "solo-el-token"} {
		resp, body := doRequest(t, app, header)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "header %q", header)
		assert.Contains(t, body, "_TOKEN")
	}
}

// Caso: token firmado con otro secreto → HTTP 401.
func TestAuthMiddleware_FirmaInvalida(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)

	tok, err := pkgjwt.Generate("otro-secreto", testUserID, entity.RoleAdmin, testIssuer, testExpMin)
	require.NoError(t, err)

	resp, body := doRequest(t, app, "Bearer "+tok)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "INVALID_TOKEN")
}

// Caso 1: El usuario tiene el rol requerido → HTTP 200 con el rol en locals.
func TestRequireRole_RolPermitido(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)

	resp, body := doRequest(t, app, tokenForRole(t, entity.RoleAdmin))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &payload))
	assert.Equal(t, true, payload["ok"])
	assert.Equal(t, entity.RoleAdmin, payload["role"])
}

// Caso 2: El usuario tiene un rol diferente al requerido → HTTP 403 Forbidden.
func TestRequireRole_RolDiferente(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)

	resp, body := doRequest(t, app, tokenForRole(t, entity.RoleOperador))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, body, "FORBIDDEN")
}

// Caso 3: Varios roles permitidos → cualquiera de ellos pasa.
func TestRequireRole_MultiplesRoles(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin, entity.RoleOperador)

	resp, _ := doRequest(t, app, tokenForRole(t, entity.RoleOperador))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// AnonymousMiddleware deja pasar sin token (AUTH_ENABLED=false).
func TestAnonymousMiddleware_PasaSinToken(t *testing.T) {
	app := fiber.New()
	app.Get("/open", apphttp.AnonymousMiddleware(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/open", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
