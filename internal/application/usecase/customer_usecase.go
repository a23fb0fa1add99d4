package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/comercio-api/internal/application/dto"
	"github.com/jhoicas/comercio-api/internal/domain"
	"github.com/jhoicas/comercio-api/internal/domain/entity"
	"github.com/jhoicas/comercio-api/internal/domain/repository"
)

// CustomerUseCase CRUD de clientes.
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// Create crea un cliente. El nombre es único (ErrDuplicate si ya existe).
func (uc *CustomerUseCase) Create(in dto.PartnerRequest) (*entity.Customer, error) {
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
	customer := &entity.Customer{
		ID:            uuid.New().String(),
		Name:          in.Name,
		ContactPerson: in.ContactPerson,
		Phone:         in.Phone,
		Email:         in.Email,
		Address:       in.Address,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// GetByID obtiene un cliente.
func (uc *CustomerUseCase) GetByID(id string) (*entity.Customer, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	return customer, nil
}

// Update actualiza los datos de contacto de un cliente.
func (uc *CustomerUseCase) Update(id string, in dto.PartnerRequest) (*entity.Customer, error) {
	customer, err := uc.GetByID(id)
	if err != nil {
		return nil, err
	}
	if in.Name != "" && in.Name != customer.Name {
		existing, err := uc.repo.GetByName(in.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, domain.ErrDuplicate
		}
		customer.Name = in.Name
	}
	customer.ContactPerson = in.ContactPerson
	customer.Phone = in.Phone
	customer.Email = in.Email
	customer.Address = in.Address
	customer.UpdatedAt = time.Now()
	if err := uc.repo.Update(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// List lista clientes, opcionalmente filtrados por nombre.
func (uc *CustomerUseCase) List(search string, limit, offset int) ([]*entity.Customer, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return uc.repo.List(search, limit, offset)
}

// Delete elimina un cliente. Falla con ErrConflict si tiene órdenes asociadas.
func (uc *CustomerUseCase) Delete(id string) error {
	if _, err := uc.GetByID(id); err != nil {
		return err
	}
	return uc.repo.Delete(id)
}
