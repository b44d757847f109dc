package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/servicampo-billing/internal/domain"
	"github.com/jhoicas/servicampo-billing/internal/domain/entity"
	"github.com/jhoicas/servicampo-billing/internal/domain/repository"
)

// QueryUseCase lecturas del conjunto de documentos. El store persiste solo
// documentos creados por usuarios; los documentos semilla (catálogo/demo) se
// inyectan al construir y se mezclan al listar, deduplicados por id con el
// documento guardado ganando sobre la semilla.
type QueryUseCase struct {
	docRepo  repository.DocumentRepository
	convRepo repository.ConversionRecordRepository
	seeds    []*entity.Document
}

// NewQueryUseCase construye el caso de uso. seeds puede ser nil.
func NewQueryUseCase(
	docRepo repository.DocumentRepository,
	convRepo repository.ConversionRecordRepository,
	seeds []*entity.Document,
) *QueryUseCase {
	return &QueryUseCase{docRepo: docRepo, convRepo: convRepo, seeds: seeds}
}

// GetByID documento por id; también resuelve ids de semillas.
func (uc *QueryUseCase) GetByID(ctx context.Context, id string) (*entity.Document, error) {
	doc, err := uc.docRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("buscar documento: %w", err)
	}
	if doc != nil {
		return doc, nil
	}
	for _, s := range uc.seeds {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, domain.ErrNotFound
}

// ListByKind documentos guardados más semillas del kind, deduplicados por id.
// Una semilla con el mismo id que un documento guardado pierde contra este.
func (uc *QueryUseCase) ListByKind(ctx context.Context, kind entity.DocumentKind) ([]*entity.Document, error) {
	if !kind.Valid() {
		return nil, domain.ErrInvalidInput
	}
	stored, err := uc.docRepo.ListByKind(kind)
	if err != nil {
		return nil, fmt.Errorf("listar documentos: %w", err)
	}

	seen := make(map[string]bool, len(stored))
	for _, d := range stored {
		seen[d.ID] = true
	}
	out := stored
	for _, s := range uc.seeds {
		if s.Kind != kind || seen[s.ID] {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

// ConversionTarget responde "¿en qué se convirtió sourceID?" consultando el
// registro de conversión — nunca re-derivándolo del contenido del documento.
// Devuelve ErrNotFound si el origen no fue convertido.
func (uc *QueryUseCase) ConversionTarget(ctx context.Context, sourceID string) (string, error) {
	rec, err := uc.convRepo.GetBySourceID(sourceID)
	if err != nil {
		return "", fmt.Errorf("consultar registro de conversión: %w", err)
	}
	if rec == nil {
		return "", domain.ErrNotFound
	}
	return rec.TargetID, nil
}
