package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "secreto-de-test"
	testIssuer = "comercio-api-test"
)

// Ida y vuelta: lo que se genera se puede leer.
func TestGenerateYParse(t *testing.T) {
	token, err := Generate(testSecret, "user-1", "admin", testIssuer, 60)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, role, err := Parse(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "admin", role)
}

// Un token firmado con otro secreto no pasa la validación.
func TestParse_SecretoIncorrecto(t *testing.T) {
	token, err := Generate(testSecret, "user-1", "operador", testIssuer, 60)
	require.NoError(t, err)

	_, _, err = Parse("otro-secreto", token)
	assert.Error(t, err)
}

// Un token expirado es rechazado.
func TestParse_TokenExpirado(t *testing.T) {
	token, err := Generate(testSecret, "user-1", "admin", testIssuer, -5)
	require.NoError(t, err)

	_, _, err = Parse(testSecret, token)
	assert.Error(t, err)
}

// Basura no parsea.
func TestParse_TokenBasura(t *testing.T) {
	_, _, err := Parse(testSecret, "no.es.un-jwt")
	assert.Error(t, err)
}

// El secreto vacío se rechaza en ambas direcciones.
func TestSecretoVacio(t *testing.T) {
	_, err := Generate("", "user-1", "admin", testIssuer, 60)
	assert.Error(t, err)

	_, _, err = Parse("", "lo-que-sea")
	assert.Error(t, err)
}
