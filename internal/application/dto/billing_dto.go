package dto

import "github.com/shopspring/decimal"

// CreateDraftRequest datos para abrir un borrador de documento.
type CreateDraftRequest struct {
	Kind               string          `json:"kind"` // ESTIMATE | INVOICE | AGREEMENT
	CustomerID         string          `json:"customer_id"`
	TaxRatePercent     decimal.Decimal `json:"tax_rate_percent"`
	DirectSale         bool            `json:"direct_sale,omitempty"` // factura de venta directa (checkout)
	Notes              string          `json:"notes,omitempty"`
	Terms              string          `json:"terms,omitempty"`
	CancellationPolicy string          `json:"cancellation_policy,omitempty"`
}

// LineItemResponse línea en respuestas.
type LineItemResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	IsCustom  bool            `json:"is_custom"`
	LineTotal string          `json:"line_total"` // redondeado a 2 decimales (presentación)
}

// DiscountResponse descuento activo del documento.
type DiscountResponse struct {
	Kind  string          `json:"kind"` // PERCENT | FIXED
	Value decimal.Decimal `json:"value"`
	RefID string          `json:"ref_id,omitempty"` // vacío si es custom
}

// DocumentResponse documento con líneas y totales. Los montos agregados van
// redondeados a 2 decimales: el redondeo ocurre solo acá, nunca en el cálculo.
type DocumentResponse struct {
	ID                    string             `json:"id"`
	Kind                  string             `json:"kind"`
	CustomerID            string             `json:"customer_id"`
	EmployeeID            string             `json:"employee_id"`
	Status                string             `json:"status"`
	Origin                string             `json:"origin"`
	TaxRatePercent        decimal.Decimal    `json:"tax_rate_percent"`
	Discount              *DiscountResponse  `json:"discount,omitempty"`
	Items                 []LineItemResponse `json:"items"`
	Subtotal              string             `json:"subtotal"`
	TaxAmount             string             `json:"tax_amount"`
	DiscountAmount        string             `json:"discount_amount"`
	Total                 string             `json:"total"`
	Notes                 string             `json:"notes,omitempty"`
	Terms                 string             `json:"terms,omitempty"`
	CancellationPolicy    string             `json:"cancellation_policy,omitempty"`
	SourceDocumentID      string             `json:"source_document_id,omitempty"`
	ConvertedToDocumentID string             `json:"converted_to_document_id,omitempty"`
	AvailableActions      []string           `json:"available_actions"`
	CreatedAt             string             `json:"created_at"`
}

// JobResponse registro de trabajo creado por conversión.
type JobResponse struct {
	ID               string `json:"id"`
	SourceDocumentID string `json:"source_document_id"`
	CustomerID       string `json:"customer_id"`
	EmployeeID       string `json:"employee_id"`
	Summary          string `json:"summary"`
	Status           string `json:"status"`
	CreatedAt        string `json:"created_at"`
}
