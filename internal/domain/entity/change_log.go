package entity

import "time"

// ChangeLogEntry es una entrada append-only del historial de cambios de un
// cliente: un campo, su valor anterior y el nuevo. Nunca se muta ni se borra.
type ChangeLogEntry struct {
	ID              int64
	CompanyUniqueID string
	Field           string // nombre del atributo fijo, o etiqueta "Custom Field <id>"
	OldValue        string
	NewValue        string
	ChangedAt       time.Time
}
