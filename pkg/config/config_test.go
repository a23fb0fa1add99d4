package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Sin env vars se aplican los valores por defecto.
func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "comercio-api", cfg.App.Name)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, "disable", cfg.DB.SSLMode)
	assert.Equal(t, 60, cfg.JWT.Expiration)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.True(t, cfg.Auth.Enabled, "auth habilitada por defecto")
}

// Las env vars tienen prioridad sobre los defaults.
func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("DB_HOST", "db.interno")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("HTTP_PORT", "3000")
	t.Setenv("AUTH_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.App.Env)
	assert.Equal(t, "db.interno", cfg.DB.Host)
	assert.Equal(t, 6543, cfg.DB.Port)
	assert.Equal(t, 3000, cfg.HTTP.Port)
	assert.False(t, cfg.Auth.Enabled)
}

// El DSN codifica usuario y password con caracteres especiales.
func TestDSN_EncodeCredenciales(t *testing.T) {
	db := DBConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "usuario",
		Password: "p@ss:w/rd",
		DBName:   "comercio",
		SSLMode:  "disable",
	}
	dsn := db.DSN()
	assert.Contains(t, dsn, "p%40ss%3Aw%2Frd")
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "sslmode=disable")
}

// DATABASE_URL completo tiene prioridad sobre los campos individuales.
func TestConnectionString_DatabaseURL(t *testing.T) {
	db := DBConfig{
		DatabaseURL: "postgres://u:p@otro-host:5432/otra?sslmode=require",
		Host:        "ignorado",
	}
	assert.Equal(t, "postgres://u:p@otro-host:5432/otra?sslmode=require", db.ConnectionString())
}
