// Package billing contiene las reglas puras del motor de documentos:
// el libro de líneas (Ledger), el calculador de totales y la máquina de
// estados del ciclo de vida. Nada de este paquete toca persistencia.
package billing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/servicampo-billing/internal/domain"
	"github.com/jhoicas/servicampo-billing/internal/domain/entity"
)

// Ledger colección mutable y ordenada de líneas facturables de un borrador,
// con clave por id de línea. Solo mutación en memoria; persistir es
// responsabilidad del caller, y descartar el borrador no deja rastro.
type Ledger struct {
	items []entity.LineItem
	index map[string]int // id -> posición en items
}

// NewLedger construye el ledger, opcionalmente con líneas iniciales
// (ej. al reabrir un borrador). Ignora duplicados conservando la primera.
func NewLedger(items ...entity.LineItem) *Ledger {
	l := &Ledger{index: make(map[string]int, len(items))}
	for _, it := range items {
		if _, ok := l.index[it.ID]; ok {
			continue
		}
		l.append(it)
	}
	return l
}

func (l *Ledger) append(it entity.LineItem) {
	if it.Quantity < 1 {
		it.Quantity = 1
	}
	l.index[it.ID] = len(l.items)
	l.items = append(l.items, it)
}

// Add agrega una línea. Un envío duplicado (mismo id) se rechaza con
// ErrDuplicateItem, nunca se fusiona con la línea existente.
func (l *Ledger) Add(it entity.LineItem) error {
	if it.ID == "" {
		return domain.ErrInvalidInput
	}
	if it.UnitPrice.IsNegative() {
		return domain.ErrInvalidInput
	}
	if _, ok := l.index[it.ID]; ok {
		return domain.ErrDuplicateItem
	}
	l.append(it)
	return nil
}

// SetQuantity fija la cantidad de una línea. La validación de cantidades no
// positivas ocurre más arriba (caso de uso); aquí solo se aplica el piso de 1
// como última defensa para que nunca quede una línea con cantidad 0.
func (l *Ledger) SetQuantity(id string, qty int) error {
	pos, ok := l.index[id]
	if !ok {
		return domain.ErrNotFound
	}
	if qty < 1 {
		qty = 1
	}
	l.items[pos].Quantity = qty
	return nil
}

// Remove quita la línea si existe. Idempotente: quitar un id ausente no es error.
func (l *Ledger) Remove(id string) {
	pos, ok := l.index[id]
	if !ok {
		return
	}
	l.items = append(l.items[:pos], l.items[pos+1:]...)
	delete(l.index, id)
	for i := pos; i < len(l.items); i++ {
		l.index[l.items[i].ID] = i
	}
}

// Get devuelve una copia de la línea y si existe.
func (l *Ledger) Get(id string) (entity.LineItem, bool) {
	pos, ok := l.index[id]
	if !ok {
		return entity.LineItem{}, false
	}
	return l.items[pos], true
}

// Items devuelve una copia ordenada de las líneas.
func (l *Ledger) Items() []entity.LineItem {
	out := make([]entity.LineItem, len(l.items))
	copy(out, l.items)
	return out
}

// Len cantidad de líneas.
func (l *Ledger) Len() int { return len(l.items) }

// LineTotal importe de una línea: precio unitario × cantidad, con aritmética
// decimal exacta (sin deriva de redondeo binario).
func LineTotal(it entity.LineItem) decimal.Decimal {
	return it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
}
