package repository

import "github.com/jhoicas/servicampo-billing/internal/domain/entity"

// Colaboradores de catálogo: lecturas por id, el core nunca los muta.
// Todos devuelven (nil, nil) cuando el id no existe.

// CustomerRepository clientes.
type CustomerRepository interface {
	GetByID(id string) (*entity.Customer, error)
}

// EmployeeRepository empleados.
type EmployeeRepository interface {
	GetByID(id string) (*entity.Employee, error)
}

// CatalogItemRepository servicios/productos del catálogo.
type CatalogItemRepository interface {
	GetByID(id string) (*entity.CatalogItem, error)
}

// CatalogDiscountRepository descuentos nombrados del catálogo.
type CatalogDiscountRepository interface {
	GetByID(id string) (*entity.CatalogDiscount, error)
	List() ([]*entity.CatalogDiscount, error)
}
