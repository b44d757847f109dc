package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/servicampo-billing/internal/domain/billing"
	"github.com/jhoicas/servicampo-billing/internal/domain/entity"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestComputeTotals_EjemploReferencia(t *testing.T) {
	// items [{100×2},{50×1}], IVA 10%, descuento fijo 20
	// → subtotal 250, impuesto 25, total 255
	items := []entity.LineItem{
		item("a", 100, 2),
		item("b", 50, 1),
	}
	disc := &entity.DiscountSpec{Kind: entity.DiscountFixed, Value: dec("20")}

	got := billing.ComputeTotals(items, dec("10"), disc)

	assert.True(t, got.Subtotal.Equal(dec("250")), "subtotal: %s", got.Subtotal)
	assert.True(t, got.Tax.Equal(dec("25")), "impuesto: %s", got.Tax)
	assert.True(t, got.Discount.Equal(dec("20")), "descuento: %s", got.Discount)
	assert.True(t, got.Total.Equal(dec("255")), "total: %s", got.Total)
}

func TestComputeTotals_SinDescuento(t *testing.T) {
	got := billing.ComputeTotals([]entity.LineItem{item("a", 500, 1)}, dec("8"), nil)

	assert.True(t, got.Discount.IsZero())
	assert.True(t, got.Total.Equal(dec("540")), "500 + 8%% = 540, obtuve %s", got.Total)
}

func TestComputeTotals_DescuentoPorcentual(t *testing.T) {
	disc := &entity.DiscountSpec{Kind: entity.DiscountPercent, Value: dec("15")}
	got := billing.ComputeTotals([]entity.LineItem{item("a", 200, 1)}, dec("0"), disc)

	assert.True(t, got.Discount.Equal(dec("30")), "15%% de 200 = 30, obtuve %s", got.Discount)
	assert.True(t, got.Total.Equal(dec("170")))
}

func TestComputeTotals_DescuentoMayorAlSubtotal(t *testing.T) {
	// Descuento fijo 80 sobre subtotal 50: total 0, nunca negativo.
	disc := &entity.DiscountSpec{Kind: entity.DiscountFixed, Value: dec("80")}
	got := billing.ComputeTotals([]entity.LineItem{item("a", 50, 1)}, dec("0"), disc)

	assert.True(t, got.Total.IsZero(), "el total se clampa en 0, obtuve %s", got.Total)
	assert.True(t, got.Discount.Equal(dec("80")),
		"el monto del descuento no se recorta antes del clamp")
}

func TestComputeTotals_SinLineas(t *testing.T) {
	got := billing.ComputeTotals(nil, dec("19"), nil)
	assert.True(t, got.Subtotal.IsZero())
	assert.True(t, got.Total.IsZero())
}

func TestComputeTotals_PrecisionCompleta(t *testing.T) {
	// 3 × 33.33 con IVA 7.5%: la precisión interna se conserva; el redondeo a
	// 2 decimales es asunto de presentación.
	items := []entity.LineItem{item("a", 33.33, 3)}
	got := billing.ComputeTotals(items, dec("7.5"), nil)

	assert.True(t, got.Subtotal.Equal(dec("99.99")))
	assert.True(t, got.Tax.Equal(dec("7.49925")), "impuesto sin redondear: %s", got.Tax)
	assert.True(t, got.Total.Equal(dec("107.48925")))
	assert.Equal(t, "107.49", got.Total.StringFixed(2))
}
