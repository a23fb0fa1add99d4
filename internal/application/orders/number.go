package orders

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Prefijos de número de orden.
const (
	PurchaseNumberPrefix = "PO"
	SaleNumberPrefix     = "SO"
)

// NewOrderNumber genera un número de orden legible: prefijo + fecha + sufijo
// aleatorio de 8 caracteres (ej. PO20250114A3F09B21). La unicidad es
// probabilística; el índice único en BD convierte una colisión en ErrDuplicate.
func NewOrderNumber(prefix string, now time.Time) string {
	suffix := strings.ToUpper(uuid.New().String()[:8])
	return fmt.Sprintf("%s%s%s", prefix, now.Format("20060102"), suffix)
}
