package repository

import "github.com/jhoicas/comercio-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	List(search string, limit, offset int) ([]*entity.Product, error)
	// Delete falla con domain.ErrConflict si el producto está referenciado
	// por alguna línea de orden (FK RESTRICT).
	Delete(id string) error
}
