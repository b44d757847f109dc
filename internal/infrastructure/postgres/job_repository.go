package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/servicampo-billing/internal/domain/entity"
	"github.com/jhoicas/servicampo-billing/internal/domain/repository"
)

var _ repository.JobRepository = (*JobRepo)(nil)

// JobRepo implementación de JobRepository (usable con pool o tx).
type JobRepo struct {
	q Querier
}

// NewJobRepository construye el adaptador. Pasar pool o tx (Querier).
func NewJobRepository(q Querier) *JobRepo {
	return &JobRepo{q: q}
}

// Create persiste el registro de trabajo.
func (r *JobRepo) Create(job *entity.Job) error {
	if job.ID == "" {
		job.ID = entity.NewJobID()
	}
	query := `
		INSERT INTO jobs (id, source_document_id, customer_id, employee_id, summary, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		job.ID, job.SourceDocumentID, job.CustomerID, job.EmployeeID,
		nullIfEmpty(job.Summary), job.Status, job.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *JobRepo) GetByID(id string) (*entity.Job, error) {
	query := `
		SELECT id, source_document_id, customer_id, employee_id, COALESCE(summary, ''), status, created_at
		FROM jobs WHERE id = $1`
	var job entity.Job
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&job.ID, &job.SourceDocumentID, &job.CustomerID, &job.EmployeeID,
		&job.Summary, &job.Status, &job.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get job: %w", err)
	}
	return &job, nil
}
