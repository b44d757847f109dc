package entity

import (
	"time"

	"github.com/google/uuid"
)

// JobStatus estado de un registro de trabajo.
type JobStatus string

const (
	JobStatusScheduled JobStatus = "SCHEDULED"
)

// Job registro de trabajo producido al convertir un documento pagadero en una
// orden de servicio. No es un documento de facturación: no tiene líneas ni
// totales propios, solo la referencia al documento origen.
type Job struct {
	ID               string // prefijo JOB-
	SourceDocumentID string
	CustomerID       string
	EmployeeID       string
	Summary          string // descripción corta derivada de las líneas del origen
	Status           JobStatus
	CreatedAt        time.Time
}

// NewJobID genera el ID de un trabajo.
func NewJobID() string {
	return "JOB-" + uuid.New().String()
}
