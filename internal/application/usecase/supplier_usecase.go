package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/comercio-api/internal/application/dto"
	"github.com/jhoicas/comercio-api/internal/domain"
	"github.com/jhoicas/comercio-api/internal/domain/entity"
	"github.com/jhoicas/comercio-api/internal/domain/repository"
)

// SupplierUseCase CRUD de proveedores.
type SupplierUseCase struct {
	repo repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo}
}

// Create crea un proveedor. El nombre es único (ErrDuplicate si ya existe).
func (uc *SupplierUseCase) Create(in dto.PartnerRequest) (*entity.Supplier, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByName(in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	supplier := &entity.Supplier{
		ID:            uuid.New().String(),
		Name:          in.Name,
		ContactPerson: in.ContactPerson,
		Phone:         in.Phone,
		Email:         in.Email,
		Address:       in.Address,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

// GetByID obtiene un proveedor.
func (uc *SupplierUseCase) GetByID(id string) (*entity.Supplier, error) {
	supplier, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	return supplier, nil
}

// Update actualiza los datos de contacto de un proveedor.
func (uc *SupplierUseCase) Update(id string, in dto.PartnerRequest) (*entity.Supplier, error) {
	supplier, err := uc.GetByID(id)
	if err != nil {
		return nil, err
	}
	if in.Name != "" && in.Name != supplier.Name {
		existing, err := uc.repo.GetByName(in.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, domain.ErrDuplicate
		}
		supplier.Name = in.Name
	}
	supplier.ContactPerson = in.ContactPerson
	supplier.Phone = in.Phone
	supplier.Email = in.Email
	supplier.Address = in.Address
	supplier.UpdatedAt = time.Now()
	if err := uc.repo.Update(supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

// List lista proveedores, opcionalmente filtrados por nombre.
func (uc *SupplierUseCase) List(search string, limit, offset int) ([]*entity.Supplier, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return uc.repo.List(search, limit, offset)
}

// Delete elimina un proveedor. Falla con ErrConflict si tiene órdenes asociadas.
func (uc *SupplierUseCase) Delete(id string) error {
	if _, err := uc.GetByID(id); err != nil {
		return err
	}
	return uc.repo.Delete(id)
}
