package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin    = "admin"
	RoleOperador = "operador"
)

// User usuario de la aplicación (autenticación JWT).
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	Status       string // active, disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
