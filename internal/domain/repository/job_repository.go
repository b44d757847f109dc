package repository

import "github.com/jhoicas/servicampo-billing/internal/domain/entity"

// JobRepository puerto de persistencia para registros de trabajo.
type JobRepository interface {
	Create(job *entity.Job) error
	GetByID(id string) (*entity.Job, error)
}
