package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementTypeIn     = "in"
	MovementTypeOut    = "out"
	MovementTypeAdjust = "adjustment"
)

// Origen del movimiento.
const (
	SourceTypePurchase   = "purchase"
	SourceTypeSale       = "sale"
	SourceTypeAdjustment = "adjustment"
)

// StockMovement es el registro inmutable de un cambio de stock (libro mayor).
// Solo se inserta, nunca se actualiza ni se borra; la cantidad actual de un
// producto es reconstruible sumando los Quantity de sus movimientos.
type StockMovement struct {
	ID         string
	ProductID  string
	Type       string // in, out, adjustment
	Quantity   int64  // con signo: positivo entrada, negativo salida
	SourceType string // purchase, sale, adjustment
	SourceID   string // orden de compra/venta origen, vacío en ajustes manuales
	Reason     string
	CreatedAt  time.Time
}

// MovementTypeForDelta deriva el tipo de movimiento a partir del signo del delta.
func MovementTypeForDelta(delta int64) string {
	switch {
	case delta > 0:
		return MovementTypeIn
	case delta < 0:
		return MovementTypeOut
	default:
		return MovementTypeAdjust
	}
}
