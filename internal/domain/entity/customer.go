package entity

import "time"

// Customer cliente del negocio de servicios en campo (solo lectura para el core).
type Customer struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
