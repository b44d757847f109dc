package entity

import "github.com/shopspring/decimal"

// CatalogItem servicio o producto del catálogo de la empresa. Las líneas que
// referencian el catálogo usan su ID como id de línea; por eso un mismo ítem
// no puede agregarse dos veces al mismo documento.
type CatalogItem struct {
	ID        string
	Name      string
	UnitPrice decimal.Decimal
}
