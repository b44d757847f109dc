package billing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/servicampo-billing/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// Totals montos derivados de un documento. Se mantienen con precisión
// completa; el redondeo a 2 decimales ocurre solo al presentar (DTO/PDF).
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
}

// ComputeTotals función pura y sin estado:
//
//	subtotal = Σ LineTotal(línea)
//	tax      = subtotal × taxRatePercent / 100
//	discount = 0 | subtotal × valor / 100 | valor fijo
//	total    = max(0, subtotal + tax − discount)
//
// El descuento NO se recorta al subtotal antes del clamp: un descuento
// sobredimensionado lleva el total a 0, nunca a un monto negativo. La
// elegibilidad de un descuento de catálogo se valida al seleccionarlo
// (caso de uso de borrador); el calculador nunca rechaza.
func ComputeTotals(items []entity.LineItem, taxRatePercent decimal.Decimal, discount *entity.DiscountSpec) Totals {
	var subtotal decimal.Decimal
	for _, it := range items {
		subtotal = subtotal.Add(LineTotal(it))
	}

	tax := subtotal.Mul(taxRatePercent).Div(hundred)
	disc := DiscountAmount(subtotal, discount)

	total := subtotal.Add(tax).Sub(disc)
	if total.IsNegative() {
		total = decimal.Zero
	}
	return Totals{Subtotal: subtotal, Tax: tax, Discount: disc, Total: total}
}

// DiscountAmount monto del descuento sobre un subtotal dado.
func DiscountAmount(subtotal decimal.Decimal, d *entity.DiscountSpec) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	switch d.Kind {
	case entity.DiscountPercent:
		return subtotal.Mul(d.Value).Div(hundred)
	case entity.DiscountFixed:
		return d.Value
	default:
		return decimal.Zero
	}
}
