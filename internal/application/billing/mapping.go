package billing

import (
	"time"

	"github.com/jhoicas/servicampo-billing/internal/application/dto"
	domainbilling "github.com/jhoicas/servicampo-billing/internal/domain/billing"
	"github.com/jhoicas/servicampo-billing/internal/domain/entity"
)

// toDocumentResponse arma el DTO de un documento. Único punto donde los
// montos se redondean a 2 decimales; el cálculo interno conserva la precisión.
func toDocumentResponse(doc *entity.Document) *dto.DocumentResponse {
	totals := domainbilling.ComputeTotals(doc.Items, doc.TaxRatePercent, doc.Discount)

	items := make([]dto.LineItemResponse, 0, len(doc.Items))
	for _, it := range doc.Items {
		items = append(items, dto.LineItemResponse{
			ID:        it.ID,
			Name:      it.Name,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
			IsCustom:  it.IsCustom,
			LineTotal: domainbilling.LineTotal(it).StringFixed(2),
		})
	}

	var disc *dto.DiscountResponse
	if doc.Discount != nil {
		disc = &dto.DiscountResponse{
			Kind:  string(doc.Discount.Kind),
			Value: doc.Discount.Value,
			RefID: doc.Discount.RefID,
		}
	}

	actions := domainbilling.AvailableActions(doc)
	actionStrs := make([]string, 0, len(actions))
	for _, a := range actions {
		actionStrs = append(actionStrs, string(a))
	}

	return &dto.DocumentResponse{
		ID:                    doc.ID,
		Kind:                  string(doc.Kind),
		CustomerID:            doc.CustomerID,
		EmployeeID:            doc.EmployeeID,
		Status:                string(doc.Status),
		Origin:                string(doc.Origin),
		TaxRatePercent:        doc.TaxRatePercent,
		Discount:              disc,
		Items:                 items,
		Subtotal:              totals.Subtotal.StringFixed(2),
		TaxAmount:             totals.Tax.StringFixed(2),
		DiscountAmount:        totals.Discount.StringFixed(2),
		Total:                 totals.Total.StringFixed(2),
		Notes:                 doc.Notes,
		Terms:                 doc.Terms,
		CancellationPolicy:    doc.CancellationPolicy,
		SourceDocumentID:      doc.SourceDocumentID,
		ConvertedToDocumentID: doc.ConvertedToDocumentID,
		AvailableActions:      actionStrs,
		CreatedAt:             doc.CreatedAt.Format(time.RFC3339),
	}
}

// toJobResponse arma el DTO de un trabajo.
func toJobResponse(job *entity.Job) *dto.JobResponse {
	return &dto.JobResponse{
		ID:               job.ID,
		SourceDocumentID: job.SourceDocumentID,
		CustomerID:       job.CustomerID,
		EmployeeID:       job.EmployeeID,
		Summary:          job.Summary,
		Status:           string(job.Status),
		CreatedAt:        job.CreatedAt.Format(time.RFC3339),
	}
}
