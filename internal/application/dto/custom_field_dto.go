package dto

import "time"

// FieldSpec especificación de un campo personalizado a registrar.
type FieldSpec struct {
	FieldName       string   `json:"fieldName" validate:"required,max=63"`
	FieldType       string   `json:"fieldType" validate:"required,oneof=text dropdown dropdown_checkbox datetime"`
	DropdownOptions []string `json:"dropdownOptions" validate:"omitempty,dive,max=255"`
}

// RegisterFieldsRequest batch ordenado de campos a registrar (todo o nada).
type RegisterFieldsRequest struct {
	FormFields []FieldSpec `json:"formFields" validate:"required,min=1,dive"`
}

// FieldResponse salida de una definición de campo.
type FieldResponse struct {
	ID              int64     `json:"id"`
	FieldName       string    `json:"field_name"`
	FieldType       string    `json:"field_type"`
	DropdownOptions []string  `json:"dropdown_options,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}
