package entity

import "time"

// Customer representa un registro de cliente del CRM.
// La tabla customers tiene estas columnas fijas más una columna por cada
// CustomField aceptado (añadida en runtime por el schema registry).
// CompanyUniqueID es la clave de negocio estable: los valores EAV y el
// historial de cambios referencian al cliente por ella, no por el ID interno.
type Customer struct {
	ID              int64
	FirstName       string
	LastName        string
	PhoneNo         string
	EmailID         string
	DateOfBirth     *time.Time
	Address         string
	CompanyName     string
	CompanyUniqueID string
	ContactType     string // por defecto "customer"
	Source          string
	Disposition     string
	AgentName       string
	DateCreated     time.Time
	UpdatedAt       time.Time
}
