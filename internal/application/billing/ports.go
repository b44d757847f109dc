package billing

import (
	"context"

	"github.com/shopspring/decimal"

	domainbilling "github.com/jhoicas/servicampo-billing/internal/domain/billing"
	"github.com/jhoicas/servicampo-billing/internal/domain/entity"
	"github.com/jhoicas/servicampo-billing/internal/domain/repository"
)

// ConversionTxRunner ejecuta fn dentro de una transacción con los repos de la
// conversión atados a la tx. Las tres escrituras de una conversión (documento
// destino, registro de conversión, actualización del origen) se confirman o
// revierten juntas: un corte a mitad de camino no puede dejar un destino sin
// mapeo ni un origen marcado convertido sin destino.
type ConversionTxRunner interface {
	RunConversion(ctx context.Context, fn func(
		docRepo repository.DocumentRepository,
		convRepo repository.ConversionRecordRepository,
		jobRepo repository.JobRepository,
	) error) error
}

// PaymentResult resultado del colaborador de pagos.
type PaymentResult struct {
	Success   bool
	Reference string // referencia de la pasarela cuando Success
}

// PaymentGateway colaborador externo de cobro. El core lo trata como atómico:
// resuelve con resultado o falla; si falla, el documento queda intacto y el
// error sube al caller (sin reintentos internos).
type PaymentGateway interface {
	Charge(ctx context.Context, amount decimal.Decimal, method string) (PaymentResult, error)
}

// DocumentPDFGenerator genera la representación imprimible de un documento.
type DocumentPDFGenerator interface {
	GenerateDocumentPDF(ctx context.Context, doc *entity.Document, customer *entity.Customer, totals domainbilling.Totals) ([]byte, error)
}
