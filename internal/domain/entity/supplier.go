package entity

import "time"

// Supplier proveedor de materiales (contraparte de las entradas).
type Supplier struct {
	ID            int64
	Name          string
	ContactPerson string
	Phone         string
	Email         string
	Address       string
	CreatedAt     time.Time
}
