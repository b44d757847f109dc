package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/servicampo-billing/internal/domain"
	domainbilling "github.com/jhoicas/servicampo-billing/internal/domain/billing"
	"github.com/jhoicas/servicampo-billing/internal/domain/entity"
	"github.com/jhoicas/servicampo-billing/internal/domain/repository"
	"github.com/jhoicas/servicampo-billing/pkg/logger"
)

// ConvertUseCase servicio de conversión: consume un documento origen en
// estado elegible y produce un documento de otro kind (o un registro de
// trabajo), dejando el mapeo origen → destino escrito en la misma transacción.
// La conversión es one-way y at-most-once; el registro de conversión es la
// fuente de verdad para "¿ya fue convertido?" — nunca se reconstruye por
// heurística.
type ConvertUseCase struct {
	docRepo  repository.DocumentRepository
	convRepo repository.ConversionRecordRepository
	txRunner ConversionTxRunner
	log      *logger.Logger
}

// NewConvertUseCase construye el caso de uso.
func NewConvertUseCase(
	docRepo repository.DocumentRepository,
	convRepo repository.ConversionRecordRepository,
	txRunner ConversionTxRunner,
	log *logger.Logger,
) *ConvertUseCase {
	return &ConvertUseCase{docRepo: docRepo, convRepo: convRepo, txRunner: txRunner, log: log}
}

// checkConvertible ejecuta los chequeos comunes: el origen existe, no fue
// convertido antes (protección contra doble tap) y la máquina de estados
// permite llegar al estado terminal pedido.
func (uc *ConvertUseCase) checkConvertible(sourceID string, terminal entity.DocumentStatus) (*entity.Document, error) {
	source, err := uc.docRepo.GetByID(sourceID)
	if err != nil {
		return nil, fmt.Errorf("buscar documento origen: %w", err)
	}
	if source == nil {
		return nil, domain.ErrNotFound
	}

	rec, err := uc.convRepo.GetBySourceID(sourceID)
	if err != nil {
		return nil, fmt.Errorf("consultar registro de conversión: %w", err)
	}
	if rec != nil {
		// Condición informativa, no un crash: el caller puede re-enrutar al
		// destino existente vía ConvertedToDocumentID.
		return nil, domain.ErrAlreadyConverted
	}

	if err := domainbilling.CanTransition(source, terminal); err != nil {
		return nil, err
	}
	return source, nil
}

// Convert convierte el documento origen en un documento nuevo de targetKind.
// Copia cliente, empleado, líneas (tal cual, sin re-tarificar), tasa de
// impuesto, descuento y textos libres. Las tres escrituras (destino, registro
// de conversión, origen marcado) son una sola unidad atómica.
func (uc *ConvertUseCase) Convert(ctx context.Context, actor ActingAs, sourceID string, targetKind entity.DocumentKind) (*entity.Document, error) {
	if err := actor.validate(); err != nil {
		return nil, err
	}
	terminal, err := domainbilling.ConvertedStatus(targetKind)
	if err != nil {
		return nil, err
	}
	source, err := uc.checkConvertible(sourceID, terminal)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	target := &entity.Document{
		ID:                 entity.NewDocumentID(targetKind),
		Kind:               targetKind,
		CustomerID:         source.CustomerID,
		EmployeeID:         source.EmployeeID,
		Items:              source.CloneItems(),
		TaxRatePercent:     source.TaxRatePercent,
		Discount:           cloneDiscount(source.Discount),
		Status:             targetKind.InitialStatus(),
		Origin:             entity.OriginStandard,
		Notes:              source.Notes,
		Terms:              source.Terms,
		CancellationPolicy: source.CancellationPolicy,
		SourceDocumentID:   source.ID,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	err = uc.txRunner.RunConversion(ctx, func(
		docRepo repository.DocumentRepository,
		convRepo repository.ConversionRecordRepository,
		_ repository.JobRepository,
	) error {
		if err := docRepo.Create(target); err != nil {
			return err
		}
		if err := convRepo.Create(&entity.ConversionRecord{
			SourceID:  source.ID,
			TargetID:  target.ID,
			CreatedAt: now,
		}); err != nil {
			return err
		}
		source.Status = terminal
		source.ConvertedToDocumentID = target.ID
		source.UpdatedAt = now
		return docRepo.Update(source)
	})
	if err != nil {
		return nil, fmt.Errorf("ejecutar conversión: %w", err)
	}

	uc.log.Info().
		Str("source_id", source.ID).
		Str("target_id", target.ID).
		Str("target_kind", string(targetKind)).
		Msg("documento convertido")
	return target, nil
}

// ConvertToJob variante acotada: no crea un documento de facturación sino un
// registro de trabajo. Obedece los mismos chequeos de doble conversión y
// legalidad (incluida la restricción de facturas de venta directa) y registra
// el mapeo de la misma manera.
func (uc *ConvertUseCase) ConvertToJob(ctx context.Context, actor ActingAs, sourceID string) (*entity.Job, error) {
	if err := actor.validate(); err != nil {
		return nil, err
	}
	source, err := uc.checkConvertible(sourceID, entity.StatusConvertedToJob)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	job := &entity.Job{
		ID:               entity.NewJobID(),
		SourceDocumentID: source.ID,
		CustomerID:       source.CustomerID,
		EmployeeID:       source.EmployeeID,
		Summary:          jobSummary(source),
		Status:           entity.JobStatusScheduled,
		CreatedAt:        now,
	}

	err = uc.txRunner.RunConversion(ctx, func(
		docRepo repository.DocumentRepository,
		convRepo repository.ConversionRecordRepository,
		jobRepo repository.JobRepository,
	) error {
		if err := jobRepo.Create(job); err != nil {
			return err
		}
		if err := convRepo.Create(&entity.ConversionRecord{
			SourceID:  source.ID,
			TargetID:  job.ID,
			CreatedAt: now,
		}); err != nil {
			return err
		}
		source.Status = entity.StatusConvertedToJob
		source.ConvertedToDocumentID = job.ID
		source.UpdatedAt = now
		return docRepo.Update(source)
	})
	if err != nil {
		return nil, fmt.Errorf("ejecutar conversión a trabajo: %w", err)
	}

	uc.log.Info().
		Str("source_id", source.ID).
		Str("job_id", job.ID).
		Msg("documento convertido a trabajo")
	return job, nil
}

func cloneDiscount(d *entity.DiscountSpec) *entity.DiscountSpec {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}

// jobSummary descripción corta del trabajo a partir de las líneas del origen.
func jobSummary(doc *entity.Document) string {
	names := make([]string, 0, len(doc.Items))
	for _, it := range doc.Items {
		names = append(names, it.Name)
	}
	return strings.Join(names, ", ")
}
