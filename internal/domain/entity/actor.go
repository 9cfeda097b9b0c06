package entity

// Roles reconocidos por la API. La lista permitida por operación viene de configuración.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleStaff   = "staff"
)

// Actor identidad autenticada que ejecuta una operación (request-scoped).
// Se pasa explícitamente a cada mutación para la auditoría del ledger.
type Actor struct {
	UserID   string
	Username string
	Role     string
}

// Valid indica si el actor tiene identidad suficiente para auditar una mutación.
func (a Actor) Valid() bool {
	return a.UserID != ""
}
