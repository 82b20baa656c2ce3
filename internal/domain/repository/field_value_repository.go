package repository

import "context"

// FieldValueRepository define el puerto EAV: valores de campos personalizados
// por cliente en custom_field_values, únicos por (comp_unique_id, field_id).
type FieldValueRepository interface {
	// Upsert inserta o reemplaza el valor (ON CONFLICT DO UPDATE). Idempotente.
	Upsert(ctx context.Context, companyUniqueID string, fieldID int64, value string) error
	// Insert inserta sin política de conflicto; para el camino insert-if-absent
	// el caller comprueba Exists primero.
	Insert(ctx context.Context, companyUniqueID string, fieldID int64, value string) error
	Exists(ctx context.Context, companyUniqueID string, fieldID int64) (bool, error)
}
