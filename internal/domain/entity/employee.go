package entity

import "time"

// Employee empleado que actúa sobre documentos (solo lectura para el core).
type Employee struct {
	ID        string
	Name      string
	Role      string // admin, office, tech
	CreatedAt time.Time
}
