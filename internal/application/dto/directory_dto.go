package dto

import "time"

// CreateSupplierRequest entrada para registrar un proveedor.
type CreateSupplierRequest struct {
	Name          string `json:"name" validate:"required,min=1,max=150"`
	ContactPerson string `json:"contact_person" validate:"max=100"`
	Phone         string `json:"phone" validate:"max=30"`
	Email         string `json:"email" validate:"omitempty,email"`
	Address       string `json:"address" validate:"max=300"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	SupplierID    int64  `json:"supplier_id"`
	Name          string `json:"name"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Address       string `json:"address"`
}

// CreateProjectRequest entrada para registrar un proyecto (obra).
type CreateProjectRequest struct {
	Name      string     `json:"project_name" validate:"required,min=1,max=150"`
	Location  string     `json:"location" validate:"max=300"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	Status    string     `json:"status" validate:"omitempty,oneof=planning ongoing completed"`
}

// ProjectResponse salida de un proyecto.
type ProjectResponse struct {
	ProjectID int64      `json:"project_id"`
	Name      string     `json:"project_name"`
	Location  string     `json:"location"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	Status    string     `json:"status"`
}
