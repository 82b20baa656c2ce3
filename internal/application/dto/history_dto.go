package dto

import "time"

// ChangeInput un delta de campo a registrar en el historial.
// Para cambios de campos personalizados (IsCustomField) se registra la
// etiqueta "Custom Field <FieldID>" en lugar del nombre del atributo fijo.
type ChangeInput struct {
	Field         string `json:"field"`
	OldValue      string `json:"old_value"`
	NewValue      string `json:"new_value"`
	IsCustomField bool   `json:"isCustomField"`
	FieldID       int64  `json:"fieldId"`
}

// LogChangesRequest entrada del endpoint de registro de historial.
type LogChangesRequest struct {
	CompanyUniqueID string        `json:"company_unique_id" validate:"required"`
	Changes         []ChangeInput `json:"changes" validate:"required"`
}

// ChangeLogResponse una entrada del historial.
type ChangeLogResponse struct {
	ID              int64     `json:"id"`
	CompanyUniqueID string    `json:"com_unique_id"`
	Field           string    `json:"field"`
	OldValue        string    `json:"old_value"`
	NewValue        string    `json:"new_value"`
	ChangedAt       time.Time `json:"changed_at"`
}

// HistoryResponse respuesta con mensaje + historial (endpoint log-change del CRM).
type HistoryResponse struct {
	Message       string              `json:"message"`
	ChangeHistory []ChangeLogResponse `json:"changeHistory"`
}
