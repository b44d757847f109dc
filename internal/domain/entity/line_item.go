package entity

import "github.com/shopspring/decimal"

// LineItem línea facturable dentro de un documento. Pertenece en exclusiva al
// borrador que la contiene; se destruye al quitarla o descartar el borrador.
type LineItem struct {
	ID        string // único dentro del documento
	Name      string
	UnitPrice decimal.Decimal // >= 0
	Quantity  int             // >= 1
	IsCustom  bool            // true cuando no viene del catálogo
}
