package repository

import "github.com/jhoicas/comercio-api/internal/domain/entity"

// SupplierRepository define el puerto de persistencia para Supplier.
type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	GetByName(name string) (*entity.Supplier, error)
	Update(supplier *entity.Supplier) error
	List(search string, limit, offset int) ([]*entity.Supplier, error)
	Delete(id string) error
}

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	GetByName(name string) (*entity.Customer, error)
	Update(customer *entity.Customer) error
	List(search string, limit, offset int) ([]*entity.Customer, error)
	Delete(id string) error
}
