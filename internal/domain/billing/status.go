package billing

import (
	"github.com/jhoicas/servicampo-billing/internal/domain"
	"github.com/jhoicas/servicampo-billing/internal/domain/entity"
)

// Action operación ofrecible sobre un documento según su estado actual.
type Action string

const (
	ActionEdit             Action = "EDIT"
	ActionPay              Action = "PAY"
	ActionConvertToInvoice Action = "CONVERT_TO_INVOICE"
	ActionConvertToJob     Action = "CONVERT_TO_JOB"
	ActionDeactivate       Action = "DEACTIVATE"
	ActionActivate         Action = "ACTIVATE"
)

// transitions tabla central de transiciones legales por kind: estado actual →
// destinos permitidos. Toda comparación de estados pasa por acá; no hay
// comparaciones de strings dispersas en los call sites.
var transitions = map[entity.DocumentKind]map[entity.DocumentStatus][]entity.DocumentStatus{
	entity.KindEstimate: {
		entity.StatusUnpaid:      {entity.StatusPaid, entity.StatusConvertedToInvoice, entity.StatusDeactivated},
		entity.StatusDeactivated: {entity.StatusUnpaid},
		entity.StatusPaid:        {entity.StatusConvertedToJob},
	},
	entity.KindInvoice: {
		entity.StatusOpen:        {entity.StatusPaid, entity.StatusDeactivated, entity.StatusConvertedToJob},
		entity.StatusDeactivated: {entity.StatusOpen},
		entity.StatusPaid:        {entity.StatusConvertedToJob},
	},
	entity.KindAgreement: {
		entity.StatusOpen: {entity.StatusPaid},
		entity.StatusPaid: {entity.StatusConvertedToJob},
	},
}

// CanTransition valida si el documento puede pasar al estado destino.
// Devuelve ErrIllegalTransition sin mutar nada cuando la transición no está
// declarada en la tabla. Reglas transversales:
//   - un documento ya convertido (ConvertedToDocumentID set) no admite
//     ninguna transición saliente, ni siquiera a DEACTIVATED;
//   - una factura de venta directa nunca es elegible para conversión a trabajo.
func CanTransition(doc *entity.Document, target entity.DocumentStatus) error {
	if doc.ConvertedToDocumentID != "" {
		return domain.ErrIllegalTransition
	}
	if target == entity.StatusConvertedToJob &&
		doc.Kind == entity.KindInvoice && doc.Origin == entity.OriginDirectSale {
		return domain.ErrIllegalTransition
	}
	for _, allowed := range transitions[doc.Kind][doc.Status] {
		if allowed == target {
			return nil
		}
	}
	return domain.ErrIllegalTransition
}

// AvailableActions conjunto de acciones ofrecibles, derivado puramente de
// (kind, status, convertedToDocumentID, origin) — nunca de contexto de UI.
func AvailableActions(doc *entity.Document) []Action {
	var actions []Action
	if doc.Status == doc.Kind.InitialStatus() && doc.ConvertedToDocumentID == "" {
		actions = append(actions, ActionEdit)
	}
	for _, target := range transitions[doc.Kind][doc.Status] {
		if err := CanTransition(doc, target); err != nil {
			continue
		}
		switch target {
		case entity.StatusPaid:
			actions = append(actions, ActionPay)
		case entity.StatusConvertedToInvoice:
			actions = append(actions, ActionConvertToInvoice)
		case entity.StatusConvertedToJob:
			actions = append(actions, ActionConvertToJob)
		case entity.StatusDeactivated:
			actions = append(actions, ActionDeactivate)
		case doc.Kind.InitialStatus():
			// solo alcanzable desde DEACTIVATED
			actions = append(actions, ActionActivate)
		}
	}
	return actions
}

// ConvertedStatus estado terminal que corresponde a convertir hacia targetKind.
// Solo la conversión a factura produce un documento de facturación; la
// conversión a trabajo se modela aparte (ConvertToJob).
func ConvertedStatus(targetKind entity.DocumentKind) (entity.DocumentStatus, error) {
	if targetKind == entity.KindInvoice {
		return entity.StatusConvertedToInvoice, nil
	}
	return "", domain.ErrIllegalTransition
}
