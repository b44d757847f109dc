package billing_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbilling "github.com/jhoicas/servicampo-billing/internal/application/billing"
	"github.com/jhoicas/servicampo-billing/internal/application/dto"
	"github.com/jhoicas/servicampo-billing/internal/domain"
	"github.com/jhoicas/servicampo-billing/internal/domain/entity"
)

type draftFixture struct {
	uc   *appbilling.DraftUseCase
	docs *memDocRepo
}

func newDraftFixture(docs ...*entity.Document) *draftFixture {
	docRepo := newMemDocRepo(docs...)
	customers := &memCustomerRepo{customers: map[string]*entity.Customer{
		"cli-1": {ID: "cli-1", Name: "Carla Pérez"},
	}}
	employees := &memEmployeeRepo{employees: map[string]*entity.Employee{
		"emp-1": {ID: "emp-1", Name: "Jonás", Role: appbilling.RoleOffice},
	}}
	items := &memItemRepo{items: map[string]*entity.CatalogItem{
		"svc-limpieza": {ID: "svc-limpieza", Name: "Limpieza de equipo", UnitPrice: decimal.NewFromInt(120)},
		"svc-visita":   {ID: "svc-visita", Name: "Visita técnica", UnitPrice: decimal.NewFromInt(60)},
	}}
	discounts := &memDiscountRepo{discounts: map[string]*entity.CatalogDiscount{
		"desc-10p":   {ID: "desc-10p", Name: "10% clientes frecuentes", Kind: entity.DiscountPercent, Value: decimal.NewFromInt(10)},
		"desc-f-500": {ID: "desc-f-500", Name: "Bono fijo 500", Kind: entity.DiscountFixed, Value: decimal.NewFromInt(500)},
	}}
	return &draftFixture{
		uc:   appbilling.NewDraftUseCase(docRepo, customers, employees, items, discounts, testLogger()),
		docs: docRepo,
	}
}

func newDraft(t *testing.T, f *draftFixture, kind string) *appbilling.Draft {
	t.Helper()
	draft, err := f.uc.NewDraft(context.Background(), actorOficina, dto.CreateDraftRequest{
		Kind:           kind,
		CustomerID:     "cli-1",
		TaxRatePercent: decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	return draft
}

func TestNewDraft_ValidaReferencias(t *testing.T) {
	f := newDraftFixture()
	ctx := context.Background()

	_, err := f.uc.NewDraft(ctx, actorOficina, dto.CreateDraftRequest{Kind: "ESTIMATE", CustomerID: "cli-x"})
	assert.ErrorIs(t, err, domain.ErrNotFound, "cliente inexistente nunca se defaultea a placeholder")

	_, err = f.uc.NewDraft(ctx, actorOficina, dto.CreateDraftRequest{Kind: "RECIBO", CustomerID: "cli-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.NewDraft(ctx, actorOficina, dto.CreateDraftRequest{
		Kind: "ESTIMATE", CustomerID: "cli-1", DirectSale: true,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "venta directa solo aplica a facturas")
}

func TestAddCatalogItem_DobleEnvioRechazado(t *testing.T) {
	f := newDraftFixture()
	draft := newDraft(t, f, "ESTIMATE")
	ctx := context.Background()

	require.NoError(t, f.uc.AddCatalogItem(ctx, draft, "svc-limpieza", 1))
	err := f.uc.AddCatalogItem(ctx, draft, "svc-limpieza", 1)
	assert.ErrorIs(t, err, domain.ErrDuplicateItem)
}

func TestAddCatalogItem_Validaciones(t *testing.T) {
	f := newDraftFixture()
	draft := newDraft(t, f, "ESTIMATE")
	ctx := context.Background()

	assert.ErrorIs(t, f.uc.AddCatalogItem(ctx, draft, "svc-limpieza", 0), domain.ErrInvalidQuantity)
	assert.ErrorIs(t, f.uc.AddCatalogItem(ctx, draft, "svc-inexistente", 1), domain.ErrNotFound)
}

func TestSetQuantity_NoPositivaRechazada(t *testing.T) {
	f := newDraftFixture()
	draft := newDraft(t, f, "ESTIMATE")
	require.NoError(t, f.uc.AddCatalogItem(context.Background(), draft, "svc-limpieza", 2))

	assert.ErrorIs(t, f.uc.SetQuantity(draft, "svc-limpieza", 0), domain.ErrInvalidQuantity)
	assert.ErrorIs(t, f.uc.SetQuantity(draft, "svc-limpieza", -3), domain.ErrInvalidQuantity)

	// La cantidad previa sigue intacta.
	doc := draft.Document()
	require.Len(t, doc.Items, 1)
	assert.Equal(t, 2, doc.Items[0].Quantity)
}

func TestSelectCatalogDiscount_InelegibleSiSuperaSubtotal(t *testing.T) {
	f := newDraftFixture()
	draft := newDraft(t, f, "ESTIMATE")
	ctx := context.Background()
	require.NoError(t, f.uc.AddCatalogItem(ctx, draft, "svc-visita", 1)) // subtotal 60

	err := f.uc.SelectCatalogDiscount(ctx, draft, "desc-f-500")
	assert.ErrorIs(t, err, domain.ErrDiscountNotEligible,
		"un descuento de catálogo que supere el subtotal se rechaza al seleccionar")
	assert.Nil(t, draft.Document().Discount)

	require.NoError(t, f.uc.SelectCatalogDiscount(ctx, draft, "desc-10p"))
	require.NotNil(t, draft.Document().Discount)
	assert.Equal(t, "desc-10p", draft.Document().Discount.RefID)
}

func TestDiscount_ExclusionMutua(t *testing.T) {
	f := newDraftFixture()
	draft := newDraft(t, f, "ESTIMATE")
	ctx := context.Background()
	require.NoError(t, f.uc.AddCatalogItem(ctx, draft, "svc-limpieza", 5)) // subtotal 600

	require.NoError(t, f.uc.SelectCatalogDiscount(ctx, draft, "desc-10p"))
	require.NoError(t, f.uc.SetCustomDiscount(draft, entity.DiscountFixed, decimal.NewFromInt(50)))

	disc := draft.Document().Discount
	require.NotNil(t, disc)
	assert.Empty(t, disc.RefID, "el descuento custom limpia la referencia de catálogo")
	assert.Equal(t, entity.DiscountFixed, disc.Kind)

	require.NoError(t, f.uc.SelectCatalogDiscount(ctx, draft, "desc-10p"))
	disc = draft.Document().Discount
	assert.Equal(t, "desc-10p", disc.RefID, "volver al catálogo limpia el custom")
}

func TestSave_PersisteYDevuelveLoGuardado(t *testing.T) {
	f := newDraftFixture()
	draft := newDraft(t, f, "ESTIMATE")
	ctx := context.Background()
	require.NoError(t, f.uc.AddCatalogItem(ctx, draft, "svc-limpieza", 2))
	require.NoError(t, f.uc.AddCustomItem(draft, "Traslado", decimal.NewFromInt(30), 1))

	resp, err := f.uc.Save(ctx, draft)
	require.NoError(t, err)

	// Totales de presentación redondeados: 270 + 10% = 297.00
	assert.Equal(t, "270.00", resp.Subtotal)
	assert.Equal(t, "297.00", resp.Total)
	assert.Equal(t, string(entity.StatusUnpaid), resp.Status)
	assert.Contains(t, resp.AvailableActions, string("CONVERT_TO_INVOICE"))

	// El read model sale de lo persistido, no del borrador.
	persisted, _ := f.docs.GetByID(resp.ID)
	require.NotNil(t, persisted)
	assert.Len(t, persisted.Items, 2)
	assert.True(t, persisted.Items[1].IsCustom)
}

func TestSave_SinLineasRechazado(t *testing.T) {
	f := newDraftFixture()
	draft := newDraft(t, f, "INVOICE")
	_, err := f.uc.Save(context.Background(), draft)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSave_FallaDePersistenciaSePropaga(t *testing.T) {
	f := newDraftFixture()
	f.docs.failOn = "Create"
	draft := newDraft(t, f, "ESTIMATE")
	require.NoError(t, f.uc.AddCatalogItem(context.Background(), draft, "svc-visita", 1))

	_, err := f.uc.Save(context.Background(), draft)
	assert.ErrorIs(t, err, errForzado)
}

func TestOpenDraft_SoloDocumentosEditables(t *testing.T) {
	paid := estimate("EST-pagada", entity.StatusPaid)
	editable := estimate("EST-abierta", entity.StatusUnpaid)
	f := newDraftFixture(paid, editable)
	ctx := context.Background()

	_, err := f.uc.OpenDraft(ctx, actorOficina, "EST-pagada")
	assert.ErrorIs(t, err, domain.ErrIllegalTransition)

	draft, err := f.uc.OpenDraft(ctx, actorOficina, "EST-abierta")
	require.NoError(t, err)
	assert.Len(t, draft.Document().Items, 2)
}
