package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/servicampo-billing/internal/domain/entity"
	"github.com/jhoicas/servicampo-billing/internal/domain/repository"
)

// Adaptadores de catálogo: lecturas por id, el core nunca muta estas tablas.

var (
	_ repository.CustomerRepository        = (*CustomerRepo)(nil)
	_ repository.EmployeeRepository        = (*EmployeeRepo)(nil)
	_ repository.CatalogItemRepository     = (*CatalogItemRepo)(nil)
	_ repository.CatalogDiscountRepository = (*CatalogDiscountRepo)(nil)
)

// CustomerRepo clientes.
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// GetByID devuelve (nil, nil) si no existe.
func (r *CustomerRepo) GetByID(id string) (*entity.Customer, error) {
	query := `
		SELECT id, name, COALESCE(email, ''), COALESCE(phone, ''), COALESCE(address, ''), created_at, updated_at
		FROM customers WHERE id = $1`
	var c entity.Customer
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}

// EmployeeRepo empleados.
type EmployeeRepo struct {
	q Querier
}

// NewEmployeeRepository construye el adaptador.
func NewEmployeeRepository(q Querier) *EmployeeRepo {
	return &EmployeeRepo{q: q}
}

// GetByID devuelve (nil, nil) si no existe.
func (r *EmployeeRepo) GetByID(id string) (*entity.Employee, error) {
	query := `SELECT id, name, role, created_at FROM employees WHERE id = $1`
	var e entity.Employee
	err := r.q.QueryRow(context.Background(), query, id).Scan(&e.ID, &e.Name, &e.Role, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return &e, nil
}

// CatalogItemRepo servicios/productos del catálogo.
type CatalogItemRepo struct {
	q Querier
}

// NewCatalogItemRepository construye el adaptador.
func NewCatalogItemRepository(q Querier) *CatalogItemRepo {
	return &CatalogItemRepo{q: q}
}

// GetByID devuelve (nil, nil) si no existe.
func (r *CatalogItemRepo) GetByID(id string) (*entity.CatalogItem, error) {
	query := `SELECT id, name, unit_price FROM catalog_items WHERE id = $1`
	var it entity.CatalogItem
	err := r.q.QueryRow(context.Background(), query, id).Scan(&it.ID, &it.Name, &it.UnitPrice)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get catalog item: %w", err)
	}
	return &it, nil
}

// CatalogDiscountRepo descuentos nombrados del catálogo.
type CatalogDiscountRepo struct {
	q Querier
}

// NewCatalogDiscountRepository construye el adaptador.
func NewCatalogDiscountRepository(q Querier) *CatalogDiscountRepo {
	return &CatalogDiscountRepo{q: q}
}

// GetByID devuelve (nil, nil) si no existe.
func (r *CatalogDiscountRepo) GetByID(id string) (*entity.CatalogDiscount, error) {
	query := `SELECT id, name, kind, value FROM catalog_discounts WHERE id = $1`
	var d entity.CatalogDiscount
	err := r.q.QueryRow(context.Background(), query, id).Scan(&d.ID, &d.Name, &d.Kind, &d.Value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get catalog discount: %w", err)
	}
	return &d, nil
}

// List todos los descuentos del catálogo.
func (r *CatalogDiscountRepo) List() ([]*entity.CatalogDiscount, error) {
	rows, err := r.q.Query(context.Background(), `SELECT id, name, kind, value FROM catalog_discounts ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list catalog discounts: %w", err)
	}
	defer rows.Close()

	var out []*entity.CatalogDiscount
	for rows.Next() {
		var d entity.CatalogDiscount
		if err := rows.Scan(&d.ID, &d.Name, &d.Kind, &d.Value); err != nil {
			return nil, fmt.Errorf("scan catalog discount: %w", err)
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}
