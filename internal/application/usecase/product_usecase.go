package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/comercio-api/internal/application/dto"
	"github.com/jhoicas/comercio-api/internal/domain"
	"github.com/jhoicas/comercio-api/internal/domain/entity"
	"github.com/jhoicas/comercio-api/internal/domain/repository"
)

// ProductUseCase CRUD de productos del catálogo.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un producto. El SKU es opcional pero único cuando está presente;
// el precio de venta no puede ser menor que el costo (validación de entrada).
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*entity.Product, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.SellingPrice.LessThan(in.CostPrice) {
		return nil, domain.ErrInvalidInput
	}
	if in.SKU != "" {
		existing, err := uc.repo.GetBySKU(in.SKU)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}
	now := time.Now()
	unit := in.Unit
	if unit == "" {
		unit = "unidad"
	}
	product := &entity.Product{
		ID:           uuid.New().String(),
		Name:         in.Name,
		SKU:          in.SKU,
		Description:  in.Description,
		Unit:         unit,
		CostPrice:    in.CostPrice,
		SellingPrice: in.SellingPrice,
		ReorderLevel: in.ReorderLevel,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetByID obtiene un producto.
func (uc *ProductUseCase) GetByID(id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// Update aplica cambios parciales a un producto.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*entity.Product, error) {
	product, err := uc.GetByID(id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.SKU != nil && *in.SKU != product.SKU {
		if *in.SKU != "" {
			existing, err := uc.repo.GetBySKU(*in.SKU)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != id {
				return nil, domain.ErrDuplicate
			}
		}
		product.SKU = *in.SKU
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Unit != nil {
		product.Unit = *in.Unit
	}
	if in.CostPrice != nil {
		product.CostPrice = *in.CostPrice
	}
	if in.SellingPrice != nil {
		product.SellingPrice = *in.SellingPrice
	}
	if product.SellingPrice.LessThan(product.CostPrice) {
		return nil, domain.ErrInvalidInput
	}
	if in.ReorderLevel != nil {
		product.ReorderLevel = *in.ReorderLevel
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// List lista productos, opcionalmente filtrados por nombre/SKU.
func (uc *ProductUseCase) List(search string, limit, offset int) ([]*entity.Product, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return uc.repo.List(search, limit, offset)
}

// Delete elimina un producto. Falla con ErrConflict mientras esté referenciado
// por alguna línea de orden.
func (uc *ProductUseCase) Delete(id string) error {
	if _, err := uc.GetByID(id); err != nil {
		return err
	}
	return uc.repo.Delete(id)
}
