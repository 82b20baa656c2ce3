package dto

import "time"

// CustomerResponse salida de un cliente (columnas fijas).
type CustomerResponse struct {
	CustomerID      int64      `json:"customer_id"`
	FirstName       string     `json:"first_name"`
	LastName        string     `json:"last_name"`
	PhoneNo         string     `json:"phone_no"`
	EmailID         string     `json:"email_id"`
	DateOfBirth     *time.Time `json:"date_of_birth"`
	Address         string     `json:"address"`
	CompanyName     string     `json:"company_name"`
	CompanyUniqueID string     `json:"company_unique_id"`
	ContactType     string     `json:"contact_type"`
	Source          string     `json:"source"`
	Disposition     string     `json:"disposition"`
	AgentName       string     `json:"agent_name"`
	DateCreated     time.Time  `json:"date_created"`
}

// CustomFieldValueView par nombre/valor de un campo personalizado en la proyección.
type CustomFieldValueView struct {
	FieldName  string `json:"field_name"`
	FieldValue string `json:"field_value"`
}

// CustomerWithFieldsResponse cliente con su lista anidada de campos
// personalizados. CustomFields siempre presente: lista vacía si el cliente no
// tiene valores EAV, nunca null ni clave ausente.
type CustomerWithFieldsResponse struct {
	CustomerResponse
	CustomFields []CustomFieldValueView `json:"custom_fields"`
}

// UpdateCustomerRequest entrada para actualizar columnas fijas y,
// opcionalmente, valores de campos personalizados (upsert por campo).
type UpdateCustomerRequest struct {
	FirstName    string            `json:"first_name"`
	LastName     string            `json:"last_name"`
	PhoneNo      string            `json:"phone_no"`
	EmailID      string            `json:"email_id"`
	DateOfBirth  *time.Time        `json:"date_of_birth"`
	Address      string            `json:"address"`
	CompanyName  string            `json:"company_name"`
	ContactType  string            `json:"contact_type"`
	Source       string            `json:"source"`
	Disposition  string            `json:"disposition"`
	AgentName    string            `json:"agent_name"`
	CustomFields []FieldValueInput `json:"custom_fields"`
}
