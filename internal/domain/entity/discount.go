package entity

import "github.com/shopspring/decimal"

// DiscountKind forma de aplicar el descuento.
type DiscountKind string

const (
	DiscountPercent DiscountKind = "PERCENT"
	DiscountFixed   DiscountKind = "FIXED"
)

// DiscountSpec descuento activo de un documento: referencia a un descuento de
// catálogo (RefID no vacío) o descuento ad-hoc ingresado al autorizar.
// Seleccionar uno de catálogo limpia el custom y viceversa.
type DiscountSpec struct {
	Kind  DiscountKind
	Value decimal.Decimal
	RefID string // id del descuento de catálogo; vacío si es custom
}

// CatalogDiscount descuento nombrado del catálogo (solo lectura para el core).
type CatalogDiscount struct {
	ID    string
	Name  string
	Kind  DiscountKind
	Value decimal.Decimal
}
