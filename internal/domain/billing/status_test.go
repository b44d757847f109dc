package billing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/servicampo-billing/internal/domain"
	"github.com/jhoicas/servicampo-billing/internal/domain/billing"
	"github.com/jhoicas/servicampo-billing/internal/domain/entity"
)

func doc(kind entity.DocumentKind, status entity.DocumentStatus) *entity.Document {
	return &entity.Document{
		ID:     entity.NewDocumentID(kind),
		Kind:   kind,
		Status: status,
		Origin: entity.OriginStandard,
	}
}

func TestCanTransition_EstimacionUnpaid(t *testing.T) {
	d := doc(entity.KindEstimate, entity.StatusUnpaid)

	assert.NoError(t, billing.CanTransition(d, entity.StatusPaid))
	assert.NoError(t, billing.CanTransition(d, entity.StatusConvertedToInvoice))
	assert.NoError(t, billing.CanTransition(d, entity.StatusDeactivated))
	assert.ErrorIs(t, billing.CanTransition(d, entity.StatusConvertedToJob), domain.ErrIllegalTransition,
		"la conversión a trabajo solo procede desde PAID")
}

func TestCanTransition_PagarDesactivadoRechazado(t *testing.T) {
	d := doc(entity.KindInvoice, entity.StatusDeactivated)

	err := billing.CanTransition(d, entity.StatusPaid)
	assert.ErrorIs(t, err, domain.ErrIllegalTransition)
	assert.Equal(t, entity.StatusDeactivated, d.Status, "el chequeo nunca muta el documento")
}

func TestCanTransition_PagoDuplicadoRechazado(t *testing.T) {
	// Un "pay" duplicado o viejo contra un documento ya pagado se rechaza,
	// no se acepta en silencio.
	d := doc(entity.KindInvoice, entity.StatusPaid)
	assert.ErrorIs(t, billing.CanTransition(d, entity.StatusPaid), domain.ErrIllegalTransition)
}

func TestCanTransition_ConvertidoBloqueaTodo(t *testing.T) {
	d := doc(entity.KindEstimate, entity.StatusConvertedToInvoice)
	d.ConvertedToDocumentID = "INV-x"

	for _, target := range []entity.DocumentStatus{
		entity.StatusPaid, entity.StatusDeactivated, entity.StatusUnpaid, entity.StatusConvertedToJob,
	} {
		assert.ErrorIs(t, billing.CanTransition(d, target), domain.ErrIllegalTransition,
			"un documento convertido no admite salida hacia %s", target)
	}
}

func TestCanTransition_VentaDirectaNoConvierteATrabajo(t *testing.T) {
	d := doc(entity.KindInvoice, entity.StatusPaid)
	d.Origin = entity.OriginDirectSale

	assert.ErrorIs(t, billing.CanTransition(d, entity.StatusConvertedToJob), domain.ErrIllegalTransition)

	d.Origin = entity.OriginStandard
	assert.NoError(t, billing.CanTransition(d, entity.StatusConvertedToJob))
}

func TestCanTransition_AcuerdoSinDesactivacion(t *testing.T) {
	d := doc(entity.KindAgreement, entity.StatusOpen)

	assert.NoError(t, billing.CanTransition(d, entity.StatusPaid))
	assert.ErrorIs(t, billing.CanTransition(d, entity.StatusDeactivated), domain.ErrIllegalTransition)
}

func TestCanTransition_ReactivacionSoloAlEstadoInicial(t *testing.T) {
	d := doc(entity.KindInvoice, entity.StatusDeactivated)

	assert.NoError(t, billing.CanTransition(d, entity.StatusOpen))
	assert.ErrorIs(t, billing.CanTransition(d, entity.StatusPaid), domain.ErrIllegalTransition,
		"reactivar nunca lleva a PAID ni a un estado convertido")
	assert.ErrorIs(t, billing.CanTransition(d, entity.StatusConvertedToJob), domain.ErrIllegalTransition)
}

func TestAvailableActions_EstimacionUnpaid(t *testing.T) {
	got := billing.AvailableActions(doc(entity.KindEstimate, entity.StatusUnpaid))

	assert.ElementsMatch(t, []billing.Action{
		billing.ActionEdit,
		billing.ActionPay,
		billing.ActionConvertToInvoice,
		billing.ActionDeactivate,
	}, got)
}

func TestAvailableActions_FacturaDesactivada(t *testing.T) {
	got := billing.AvailableActions(doc(entity.KindInvoice, entity.StatusDeactivated))
	assert.ElementsMatch(t, []billing.Action{billing.ActionActivate}, got)
}

func TestAvailableActions_FacturaPagadaVentaDirecta(t *testing.T) {
	d := doc(entity.KindInvoice, entity.StatusPaid)
	d.Origin = entity.OriginDirectSale

	assert.Empty(t, billing.AvailableActions(d),
		"una factura de venta directa pagada no ofrece ninguna acción")
}

func TestAvailableActions_DocumentoConvertido(t *testing.T) {
	d := doc(entity.KindEstimate, entity.StatusConvertedToInvoice)
	d.ConvertedToDocumentID = "INV-x"
	assert.Empty(t, billing.AvailableActions(d))
}

func TestConvertedStatus(t *testing.T) {
	st, err := billing.ConvertedStatus(entity.KindInvoice)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusConvertedToInvoice, st)

	_, err = billing.ConvertedStatus(entity.KindEstimate)
	assert.ErrorIs(t, err, domain.ErrIllegalTransition,
		"no existe conversión documento→estimación")
	_, err = billing.ConvertedStatus(entity.KindAgreement)
	assert.ErrorIs(t, err, domain.ErrIllegalTransition)
}
