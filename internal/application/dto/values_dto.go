package dto

// FieldValueInput un par (campo, valor) a aplicar sobre un cliente.
// FieldValue es puntero para distinguir "ausente" (→ ErrMissingField) de "cadena vacía".
type FieldValueInput struct {
	FieldID    int64   `json:"fieldId"`
	FieldValue *string `json:"fieldValue"`
}

// ApplyValuesRequest batch ordenado de valores para un cliente.
type ApplyValuesRequest struct {
	CustomFields []FieldValueInput `json:"customFields" validate:"required,min=1"`
}
