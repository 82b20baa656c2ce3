package postgres

import (
	"context"
	"fmt"

	"github.com/multycomm/crm-api/internal/domain/repository"
)

var _ repository.FieldValueRepository = (*FieldValueRepo)(nil)

// FieldValueRepo implementación de FieldValueRepository sobre la tabla EAV
// custom_field_values (usable con pool o tx).
type FieldValueRepo struct {
	q Querier
}

// NewFieldValueRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFieldValueRepository(q Querier) *FieldValueRepo {
	return &FieldValueRepo{q: q}
}

// Upsert inserta o reemplaza el valor apoyándose en el UNIQUE
// (comp_unique_id, field_id). Reaplicar el mismo valor no cambia nada.
func (r *FieldValueRepo) Upsert(ctx context.Context, companyUniqueID string, fieldID int64, value string) error {
	query := `
		INSERT INTO custom_field_values (comp_unique_id, field_id, field_value)
		VALUES ($1, $2, $3)
		ON CONFLICT (comp_unique_id, field_id) DO UPDATE SET field_value = EXCLUDED.field_value`
	if _, err := r.q.Exec(ctx, query, companyUniqueID, fieldID, value); err != nil {
		return fmt.Errorf("upsert field value: %w", err)
	}
	return nil
}

// Insert inserta sin política de conflicto (camino insert-if-absent: el
// caller comprueba Exists antes, dentro de la misma transacción).
func (r *FieldValueRepo) Insert(ctx context.Context, companyUniqueID string, fieldID int64, value string) error {
	query := `
		INSERT INTO custom_field_values (comp_unique_id, field_id, field_value)
		VALUES ($1, $2, $3)`
	if _, err := r.q.Exec(ctx, query, companyUniqueID, fieldID, value); err != nil {
		return fmt.Errorf("insert field value: %w", err)
	}
	return nil
}

// Exists reporta si ya hay valor para el par (cliente, campo).
func (r *FieldValueRepo) Exists(ctx context.Context, companyUniqueID string, fieldID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM custom_field_values
			WHERE comp_unique_id = $1 AND field_id = $2
		)`
	var exists bool
	if err := r.q.QueryRow(ctx, query, companyUniqueID, fieldID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check field value: %w", err)
	}
	return exists, nil
}
