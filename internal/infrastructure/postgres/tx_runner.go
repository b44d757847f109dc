package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/servicampo-billing/internal/application/billing"
	"github.com/jhoicas/servicampo-billing/internal/domain/repository"
)

// Ensure TxRunner implements billing.ConversionTxRunner.
var _ billing.ConversionTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunConversion inicia una transacción, ejecuta fn con los repos de la
// conversión atados a la tx y hace Commit o Rollback. Las escrituras de una
// conversión (documento destino, registro de conversión, origen marcado) se
// confirman juntas o no se confirma ninguna.
func (r *TxRunner) RunConversion(ctx context.Context, fn func(
	docRepo repository.DocumentRepository,
	convRepo repository.ConversionRecordRepository,
	jobRepo repository.JobRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	docRepo := NewDocumentRepository(tx)
	convRepo := NewConversionRecordRepository(tx)
	jobRepo := NewJobRepository(tx)

	if err := fn(docRepo, convRepo, jobRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
