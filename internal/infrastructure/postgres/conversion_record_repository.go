package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/servicampo-billing/internal/domain"
	"github.com/jhoicas/servicampo-billing/internal/domain/entity"
	"github.com/jhoicas/servicampo-billing/internal/domain/repository"
)

var _ repository.ConversionRecordRepository = (*ConversionRecordRepo)(nil)

// ConversionRecordRepo implementación del mapeo origen → destino (usable con
// pool o tx). La tabla es append-only: solo INSERT y SELECT.
type ConversionRecordRepo struct {
	q Querier
}

// NewConversionRecordRepository construye el adaptador. Pasar pool o tx (Querier).
func NewConversionRecordRepository(q Querier) *ConversionRecordRepo {
	return &ConversionRecordRepo{q: q}
}

// Create persiste el registro. La PK sobre source_id hace cumplir el
// at-most-once también a nivel de base: un segundo insert es violación única.
func (r *ConversionRecordRepo) Create(rec *entity.ConversionRecord) error {
	query := `
		INSERT INTO conversion_records (source_id, target_id, created_at)
		VALUES ($1, $2, $3)`
	_, err := r.q.Exec(context.Background(), query, rec.SourceID, rec.TargetID, rec.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: source %s", domain.ErrAlreadyConverted, rec.SourceID)
		}
		return fmt.Errorf("insert conversion record: %w", err)
	}
	return nil
}

// GetBySourceID devuelve (nil, nil) si el origen no fue convertido.
func (r *ConversionRecordRepo) GetBySourceID(sourceID string) (*entity.ConversionRecord, error) {
	query := `SELECT source_id, target_id, created_at FROM conversion_records WHERE source_id = $1`
	var rec entity.ConversionRecord
	err := r.q.QueryRow(context.Background(), query, sourceID).
		Scan(&rec.SourceID, &rec.TargetID, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get conversion record: %w", err)
	}
	return &rec, nil
}

// LoadAll mapa completo sourceID → targetID.
func (r *ConversionRecordRepo) LoadAll() (map[string]string, error) {
	rows, err := r.q.Query(context.Background(), `SELECT source_id, target_id FROM conversion_records`)
	if err != nil {
		return nil, fmt.Errorf("load conversion records: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var src, tgt string
		if err := rows.Scan(&src, &tgt); err != nil {
			return nil, fmt.Errorf("scan conversion record: %w", err)
		}
		out[src] = tgt
	}
	return out, rows.Err()
}
