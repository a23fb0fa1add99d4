package entity

import "time"

// Customer representa un cliente (contraparte de órdenes de venta).
type Customer struct {
	ID            string
	Name          string
	ContactPerson string
	Phone         string
	Email         string
	Address       string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
