package billing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbilling "github.com/jhoicas/servicampo-billing/internal/application/billing"
	"github.com/jhoicas/servicampo-billing/internal/domain"
	"github.com/jhoicas/servicampo-billing/internal/domain/entity"
)

func TestListByKind_MezclaSemillasDeduplicadas(t *testing.T) {
	stored := estimate("EST-1", entity.StatusUnpaid)
	docRepo := newMemDocRepo(stored)
	seeds := []*entity.Document{
		estimate("EST-1", entity.StatusPaid),   // misma id: pierde contra lo guardado
		estimate("EST-seed", entity.StatusUnpaid),
	}
	uc := appbilling.NewQueryUseCase(docRepo, newMemConvRepo(), seeds)

	got, err := uc.ListByKind(context.Background(), entity.KindEstimate)
	require.NoError(t, err)
	require.Len(t, got, 2)

	byID := make(map[string]*entity.Document, len(got))
	for _, d := range got {
		byID[d.ID] = d
	}
	require.Contains(t, byID, "EST-1")
	assert.Equal(t, entity.StatusUnpaid, byID["EST-1"].Status,
		"la entrada guardada gana sobre la semilla con la misma id")
	assert.Contains(t, byID, "EST-seed")
}

func TestListByKind_KindInvalido(t *testing.T) {
	uc := appbilling.NewQueryUseCase(newMemDocRepo(), newMemConvRepo(), nil)
	_, err := uc.ListByKind(context.Background(), "RECIBO")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetByID_ResuelveSemillas(t *testing.T) {
	seeds := []*entity.Document{estimate("EST-seed", entity.StatusUnpaid)}
	uc := appbilling.NewQueryUseCase(newMemDocRepo(), newMemConvRepo(), seeds)
	ctx := context.Background()

	doc, err := uc.GetByID(ctx, "EST-seed")
	require.NoError(t, err)
	assert.Equal(t, "EST-seed", doc.ID)

	_, err = uc.GetByID(ctx, "EST-x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConversionTarget_ConsultaElRegistro(t *testing.T) {
	docRepo := newMemDocRepo(estimate("EST-1", entity.StatusUnpaid))
	convRepo := newMemConvRepo()
	jobRepo := newMemJobRepo()
	tx := &memTxRunner{docs: docRepo, conv: convRepo, jobs: jobRepo}
	convertUC := appbilling.NewConvertUseCase(docRepo, convRepo, tx, testLogger())
	queryUC := appbilling.NewQueryUseCase(docRepo, convRepo, nil)
	ctx := context.Background()

	_, err := queryUC.ConversionTarget(ctx, "EST-1")
	assert.ErrorIs(t, err, domain.ErrNotFound, "sin conversión no hay destino")

	target, err := convertUC.Convert(ctx, actorOficina, "EST-1", entity.KindInvoice)
	require.NoError(t, err)

	got, err := queryUC.ConversionTarget(ctx, "EST-1")
	require.NoError(t, err)
	assert.Equal(t, target.ID, got)
}
