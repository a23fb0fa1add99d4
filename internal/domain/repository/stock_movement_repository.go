package repository

import (
	"time"

	"github.com/jhoicas/comercio-api/internal/domain/entity"
)

// MovementFilter filtros para consultar el libro de movimientos.
// From/To son inclusivos; To debe cubrir el día completo (lo resuelve el caller).
type MovementFilter struct {
	ProductID    string
	MovementType string
	From         *time.Time
	To           *time.Time
	Limit        int
	Offset       int
}

// StockMovementRepository define el puerto de persistencia del libro de
// movimientos. Solo inserta y lista: los movimientos nunca se mutan ni borran.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	List(filter MovementFilter) ([]*entity.StockMovement, error)
}
