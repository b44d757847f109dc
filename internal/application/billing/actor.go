package billing

import "github.com/jhoicas/servicampo-billing/internal/domain"

// Roles de empleado reconocidos por el core.
const (
	RoleAdmin  = "admin"
	RoleOffice = "office"
	RoleTech   = "tech"
)

// ActingAs identidad explícita del caller. Reemplaza cualquier estado global
// de "usuario actual": todo caso de uso mutante la recibe como argumento, así
// la máquina de estados y el servicio de conversión son puros respecto a la
// identidad.
type ActingAs struct {
	Role       string
	EmployeeID string
}

func (a ActingAs) validate() error {
	if a.EmployeeID == "" {
		return domain.ErrInvalidInput
	}
	return nil
}

// isAdmin chequeo de rol para operaciones administrativas (desactivar/reactivar).
func (a ActingAs) isAdmin() bool { return a.Role == RoleAdmin }
