package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/servicampo-billing/internal/application/dto"
	"github.com/jhoicas/servicampo-billing/internal/domain"
	domainbilling "github.com/jhoicas/servicampo-billing/internal/domain/billing"
	"github.com/jhoicas/servicampo-billing/internal/domain/entity"
	"github.com/jhoicas/servicampo-billing/internal/domain/repository"
	"github.com/jhoicas/servicampo-billing/pkg/logger"
)

// Draft borrador en memoria de un documento: la cabecera más el ledger de
// líneas. Cerrarlo sin guardar no deja ningún efecto persistido.
type Draft struct {
	doc    *entity.Document
	ledger *domainbilling.Ledger
}

// Document cabecera del borrador con las líneas actuales del ledger.
func (d *Draft) Document() *entity.Document {
	d.doc.Items = d.ledger.Items()
	return d.doc
}

// Totals totales vigentes del borrador (precisión completa).
func (d *Draft) Totals() domainbilling.Totals {
	return domainbilling.ComputeTotals(d.ledger.Items(), d.doc.TaxRatePercent, d.doc.Discount)
}

// DraftUseCase flujo de autoría: abrir borrador, mutar líneas y descuento,
// y guardar. Valida referencias de catálogo antes de tocar el ledger.
type DraftUseCase struct {
	docRepo      repository.DocumentRepository
	customerRepo repository.CustomerRepository
	employeeRepo repository.EmployeeRepository
	itemRepo     repository.CatalogItemRepository
	discountRepo repository.CatalogDiscountRepository
	log          *logger.Logger
}

// NewDraftUseCase construye el caso de uso.
func NewDraftUseCase(
	docRepo repository.DocumentRepository,
	customerRepo repository.CustomerRepository,
	employeeRepo repository.EmployeeRepository,
	itemRepo repository.CatalogItemRepository,
	discountRepo repository.CatalogDiscountRepository,
	log *logger.Logger,
) *DraftUseCase {
	return &DraftUseCase{
		docRepo:      docRepo,
		customerRepo: customerRepo,
		employeeRepo: employeeRepo,
		itemRepo:     itemRepo,
		discountRepo: discountRepo,
		log:          log,
	}
}

// NewDraft abre un borrador. Valida kind, cliente y empleado; el documento
// nace con el estado inicial del kind (UNPAID para estimaciones, OPEN para
// facturas y acuerdos) recién al guardarse.
func (uc *DraftUseCase) NewDraft(ctx context.Context, actor ActingAs, in dto.CreateDraftRequest) (*Draft, error) {
	if err := actor.validate(); err != nil {
		return nil, err
	}
	kind := entity.DocumentKind(in.Kind)
	if !kind.Valid() || in.CustomerID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.TaxRatePercent.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.DirectSale && kind != entity.KindInvoice {
		return nil, domain.ErrInvalidInput
	}

	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("buscar cliente: %w", err)
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	employee, err := uc.employeeRepo.GetByID(actor.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("buscar empleado: %w", err)
	}
	if employee == nil {
		return nil, domain.ErrNotFound
	}

	origin := entity.OriginStandard
	if in.DirectSale {
		origin = entity.OriginDirectSale
	}
	doc := &entity.Document{
		ID:                 entity.NewDocumentID(kind),
		Kind:               kind,
		CustomerID:         in.CustomerID,
		EmployeeID:         actor.EmployeeID,
		TaxRatePercent:     in.TaxRatePercent,
		Status:             kind.InitialStatus(),
		Origin:             origin,
		Notes:              in.Notes,
		Terms:              in.Terms,
		CancellationPolicy: in.CancellationPolicy,
	}
	return &Draft{doc: doc, ledger: domainbilling.NewLedger()}, nil
}

// OpenDraft reabre un documento editable existente como borrador.
func (uc *DraftUseCase) OpenDraft(ctx context.Context, actor ActingAs, id string) (*Draft, error) {
	if err := actor.validate(); err != nil {
		return nil, err
	}
	doc, err := uc.docRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("buscar documento: %w", err)
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	if !hasAction(domainbilling.AvailableActions(doc), domainbilling.ActionEdit) {
		return nil, domain.ErrIllegalTransition
	}
	return &Draft{doc: doc, ledger: domainbilling.NewLedger(doc.Items...)}, nil
}

// AddCatalogItem agrega una línea respaldada por el catálogo. El id de línea
// es el id del ítem de catálogo: un segundo envío del mismo ítem se rechaza
// con ErrDuplicateItem (protección contra doble submit).
func (uc *DraftUseCase) AddCatalogItem(ctx context.Context, draft *Draft, itemID string, qty int) error {
	if qty < 1 {
		return domain.ErrInvalidQuantity
	}
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return fmt.Errorf("buscar ítem de catálogo: %w", err)
	}
	if item == nil {
		return domain.ErrNotFound
	}
	return draft.ledger.Add(entity.LineItem{
		ID:        item.ID,
		Name:      item.Name,
		UnitPrice: item.UnitPrice,
		Quantity:  qty,
	})
}

// AddCustomItem agrega una línea libre (no respaldada por catálogo).
func (uc *DraftUseCase) AddCustomItem(draft *Draft, name string, unitPrice decimal.Decimal, qty int) error {
	if name == "" || unitPrice.IsNegative() {
		return domain.ErrInvalidInput
	}
	if qty < 1 {
		return domain.ErrInvalidQuantity
	}
	return draft.ledger.Add(entity.LineItem{
		ID:        uuid.New().String(),
		Name:      name,
		UnitPrice: unitPrice,
		Quantity:  qty,
		IsCustom:  true,
	})
}

// SetQuantity cambia la cantidad de una línea. Las cantidades no positivas se
// rechazan acá, antes de llegar al ledger.
func (uc *DraftUseCase) SetQuantity(draft *Draft, itemID string, qty int) error {
	if qty < 1 {
		return domain.ErrInvalidQuantity
	}
	return draft.ledger.SetQuantity(itemID, qty)
}

// RemoveItem quita una línea; idempotente.
func (uc *DraftUseCase) RemoveItem(draft *Draft, itemID string) {
	draft.ledger.Remove(itemID)
}

// SelectCatalogDiscount activa un descuento de catálogo. Un descuento cuyo
// monto calculado supere el subtotal vigente es inelegible y se rechaza acá,
// en la selección; el calculador de totales nunca rechaza. Seleccionar un
// descuento de catálogo reemplaza cualquier descuento custom.
func (uc *DraftUseCase) SelectCatalogDiscount(ctx context.Context, draft *Draft, discountID string) error {
	disc, err := uc.discountRepo.GetByID(discountID)
	if err != nil {
		return fmt.Errorf("buscar descuento: %w", err)
	}
	if disc == nil {
		return domain.ErrNotFound
	}

	spec := &entity.DiscountSpec{Kind: disc.Kind, Value: disc.Value, RefID: disc.ID}
	subtotal := draft.Totals().Subtotal
	if domainbilling.DiscountAmount(subtotal, spec).GreaterThan(subtotal) {
		return domain.ErrDiscountNotEligible
	}
	draft.doc.Discount = spec
	return nil
}

// SetCustomDiscount activa un descuento ad-hoc; reemplaza cualquier descuento
// de catálogo seleccionado.
func (uc *DraftUseCase) SetCustomDiscount(draft *Draft, kind entity.DiscountKind, value decimal.Decimal) error {
	if kind != entity.DiscountPercent && kind != entity.DiscountFixed {
		return domain.ErrInvalidInput
	}
	if value.IsNegative() {
		return domain.ErrInvalidInput
	}
	draft.doc.Discount = &entity.DiscountSpec{Kind: kind, Value: value}
	return nil
}

// ClearDiscount quita el descuento activo.
func (uc *DraftUseCase) ClearDiscount(draft *Draft) {
	draft.doc.Discount = nil
}

// Save persiste el borrador y devuelve el documento leído del store: primero
// se persiste, después se actualiza el read model desde lo persistido, para
// que lo mostrado nunca diverja de lo guardado.
func (uc *DraftUseCase) Save(ctx context.Context, draft *Draft) (*dto.DocumentResponse, error) {
	doc := draft.Document()
	if len(doc.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	isNew := doc.CreatedAt.IsZero()
	if isNew {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now

	var err error
	if isNew {
		err = uc.docRepo.Create(doc)
	} else {
		err = uc.docRepo.Update(doc)
	}
	if err != nil {
		return nil, fmt.Errorf("guardar documento: %w", err)
	}

	persisted, err := uc.docRepo.GetByID(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("releer documento guardado: %w", err)
	}
	if persisted == nil {
		return nil, domain.ErrNotFound
	}

	uc.log.Info().
		Str("doc_id", persisted.ID).
		Str("kind", string(persisted.Kind)).
		Str("status", string(persisted.Status)).
		Int("items", len(persisted.Items)).
		Msg("documento guardado")
	return toDocumentResponse(persisted), nil
}

func hasAction(actions []domainbilling.Action, want domainbilling.Action) bool {
	for _, a := range actions {
		if a == want {
			return true
		}
	}
	return false
}
