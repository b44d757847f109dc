package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/servicampo-billing/internal/domain"
	domainbilling "github.com/jhoicas/servicampo-billing/internal/domain/billing"
	"github.com/jhoicas/servicampo-billing/internal/domain/entity"
	"github.com/jhoicas/servicampo-billing/internal/domain/repository"
	"github.com/jhoicas/servicampo-billing/pkg/logger"
)

// LifecycleUseCase transiciones de estado de un documento: cobrar, desactivar
// y reactivar. Cada operación valida la legalidad contra la máquina de
// estados antes de tocar nada; un pedido viejo o duplicado se rechaza con
// ErrIllegalTransition, nunca se acepta en silencio.
type LifecycleUseCase struct {
	docRepo   repository.DocumentRepository
	gateway   PaymentGateway
	convertUC *ConvertUseCase
	log       *logger.Logger
}

// NewLifecycleUseCase construye el caso de uso.
func NewLifecycleUseCase(
	docRepo repository.DocumentRepository,
	gateway PaymentGateway,
	convertUC *ConvertUseCase,
	log *logger.Logger,
) *LifecycleUseCase {
	return &LifecycleUseCase{docRepo: docRepo, gateway: gateway, convertUC: convertUC, log: log}
}

// Pay cobra el total del documento con el colaborador de pagos y lo pasa a
// PAID. Si la pasarela falla o rechaza, el documento queda intacto y el error
// sube al caller (los reintentos son política del caller, no del core).
// Con autoCreateJob, una estimación pagada se convierte de inmediato en un
// registro de trabajo vía el servicio de conversión.
func (uc *LifecycleUseCase) Pay(ctx context.Context, actor ActingAs, id, method string, autoCreateJob bool) (*entity.Document, error) {
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
	if err := domainbilling.CanTransition(doc, entity.StatusPaid); err != nil {
		return nil, err
	}

	totals := domainbilling.ComputeTotals(doc.Items, doc.TaxRatePercent, doc.Discount)
	result, err := uc.gateway.Charge(ctx, totals.Total, method)
	if err != nil {
		return nil, fmt.Errorf("cobrar pago: %w", err)
	}
	if !result.Success {
		return nil, domain.ErrPaymentDeclined
	}

	doc.Status = entity.StatusPaid
	doc.UpdatedAt = time.Now()
	if err := uc.docRepo.Update(doc); err != nil {
		return nil, fmt.Errorf("guardar documento pagado: %w", err)
	}

	uc.log.Info().
		Str("doc_id", doc.ID).
		Str("payment_ref", result.Reference).
		Str("amount", totals.Total.StringFixed(2)).
		Msg("documento pagado")

	if autoCreateJob && doc.Kind == entity.KindEstimate {
		if _, err := uc.convertUC.ConvertToJob(ctx, actor, doc.ID); err != nil {
			return nil, fmt.Errorf("crear trabajo tras el pago: %w", err)
		}
		// El origen quedó marcado convertido dentro de la transacción; releer
		// para devolver el estado persistido.
		doc, err = uc.docRepo.GetByID(doc.ID)
		if err != nil {
			return nil, fmt.Errorf("releer documento: %w", err)
		}
	}
	return doc, nil
}

// Deactivate saca de circulación un documento sin borrarlo. Solo admin, y
// solo desde el estado abierto inicial del kind.
func (uc *LifecycleUseCase) Deactivate(ctx context.Context, actor ActingAs, id string) (*entity.Document, error) {
	return uc.transition(ctx, actor, id, entity.StatusDeactivated, "documento desactivado")
}

// Activate revierte una desactivación. El destino es siempre el estado
// abierto inicial del kind: reactivar nunca lleva a PAID ni a un estado
// convertido.
func (uc *LifecycleUseCase) Activate(ctx context.Context, actor ActingAs, id string) (*entity.Document, error) {
	doc, err := uc.docRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("buscar documento: %w", err)
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	return uc.transition(ctx, actor, id, doc.Kind.InitialStatus(), "documento reactivado")
}

func (uc *LifecycleUseCase) transition(ctx context.Context, actor ActingAs, id string, target entity.DocumentStatus, msg string) (*entity.Document, error) {
	if err := actor.validate(); err != nil {
		return nil, err
	}
	if !actor.isAdmin() {
		return nil, domain.ErrForbidden
	}
	doc, err := uc.docRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("buscar documento: %w", err)
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	if err := domainbilling.CanTransition(doc, target); err != nil {
		return nil, err
	}

	doc.Status = target
	doc.UpdatedAt = time.Now()
	if err := uc.docRepo.Update(doc); err != nil {
		return nil, fmt.Errorf("guardar documento: %w", err)
	}
	uc.log.Info().Str("doc_id", doc.ID).Str("status", string(doc.Status)).Msg(msg)
	return doc, nil
}
