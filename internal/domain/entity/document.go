package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DocumentKind tipo de documento comercial.
type DocumentKind string

const (
	KindEstimate  DocumentKind = "ESTIMATE"
	KindInvoice   DocumentKind = "INVOICE"
	KindAgreement DocumentKind = "AGREEMENT"
)

// DocumentStatus estado del ciclo de vida. El conjunto de estados válidos
// depende del kind; la tabla de transiciones vive en internal/domain/billing.
type DocumentStatus string

const (
	StatusUnpaid             DocumentStatus = "UNPAID" // estimación sin pagar
	StatusOpen               DocumentStatus = "OPEN"   // factura o acuerdo abierto
	StatusPaid               DocumentStatus = "PAID"
	StatusDeactivated        DocumentStatus = "DEACTIVATED"
	StatusConvertedToInvoice DocumentStatus = "CONVERTED_TO_INVOICE" // terminal
	StatusConvertedToJob     DocumentStatus = "CONVERTED_TO_JOB"     // terminal
)

// DocumentOrigin cómo se originó el documento. Las facturas creadas por venta
// directa (checkout) nunca son elegibles para conversión a trabajo.
type DocumentOrigin string

const (
	OriginStandard   DocumentOrigin = "STANDARD"
	OriginDirectSale DocumentOrigin = "DIRECT_SALE"
)

// Document entidad unificada para estimación, factura y acuerdo.
// Nunca se borra físicamente: solo se marca DEACTIVATED.
type Document struct {
	ID                    string // estable, único, con prefijo por kind (EST-/INV-/AGR-)
	Kind                  DocumentKind
	CustomerID            string
	EmployeeID            string
	Items                 []LineItem
	TaxRatePercent        decimal.Decimal // ej. 8 = 8%
	Discount              *DiscountSpec   // a lo sumo uno activo
	Status                DocumentStatus
	Origin                DocumentOrigin
	Notes                 string
	Terms                 string
	CancellationPolicy    string
	SourceDocumentID      string // set cuando este documento nació de una conversión
	ConvertedToDocumentID string // set exactamente una vez al convertirse; nunca se sobreescribe
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// IDPrefix prefijo de ID por tipo de documento.
func (k DocumentKind) IDPrefix() string {
	switch k {
	case KindEstimate:
		return "EST-"
	case KindInvoice:
		return "INV-"
	case KindAgreement:
		return "AGR-"
	default:
		return "DOC-"
	}
}

// InitialStatus estado con el que se crea un documento de este kind.
func (k DocumentKind) InitialStatus() DocumentStatus {
	if k == KindEstimate {
		return StatusUnpaid
	}
	return StatusOpen
}

// Valid indica si el kind es uno de los tres soportados.
func (k DocumentKind) Valid() bool {
	switch k {
	case KindEstimate, KindInvoice, KindAgreement:
		return true
	}
	return false
}

// NewDocumentID genera un ID único con el prefijo del kind.
func NewDocumentID(kind DocumentKind) string {
	return kind.IDPrefix() + uuid.New().String()
}

// CloneItems copia las líneas del documento (las conversiones copian las
// líneas tal cual, sin re-tarificar).
func (d *Document) CloneItems() []LineItem {
	if len(d.Items) == 0 {
		return nil
	}
	items := make([]LineItem, len(d.Items))
	copy(items, d.Items)
	return items
}
