package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/servicampo-billing/internal/domain"
	domainbilling "github.com/jhoicas/servicampo-billing/internal/domain/billing"
	"github.com/jhoicas/servicampo-billing/internal/domain/repository"
)

// PDFUseCase genera la representación imprimible de un documento.
type PDFUseCase struct {
	docRepo      repository.DocumentRepository
	customerRepo repository.CustomerRepository
	generator    DocumentPDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(
	docRepo repository.DocumentRepository,
	customerRepo repository.CustomerRepository,
	generator DocumentPDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{docRepo: docRepo, customerRepo: customerRepo, generator: generator}
}

// RenderDocumentPDF devuelve los bytes del PDF del documento.
func (uc *PDFUseCase) RenderDocumentPDF(ctx context.Context, id string) ([]byte, error) {
	doc, err := uc.docRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("buscar documento: %w", err)
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	customer, err := uc.customerRepo.GetByID(doc.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("buscar cliente: %w", err)
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}

	totals := domainbilling.ComputeTotals(doc.Items, doc.TaxRatePercent, doc.Discount)
	return uc.generator.GenerateDocumentPDF(ctx, doc, customer, totals)
}
