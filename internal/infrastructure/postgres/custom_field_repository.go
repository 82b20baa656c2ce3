package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/multycomm/crm-api/internal/domain"
	"github.com/multycomm/crm-api/internal/domain/entity"
	"github.com/multycomm/crm-api/internal/domain/repository"
)

var _ repository.CustomFieldRepository = (*CustomFieldRepo)(nil)

// Clave del advisory lock que serializa el registro de campos. Ligado a la
// transacción (pg_advisory_xact_lock): se libera solo con commit o rollback.
const fieldRegistrationLockKey = 815001

// CustomFieldRepo implementación de CustomFieldRepository (usable con pool o tx).
type CustomFieldRepo struct {
	q Querier
}

// NewCustomFieldRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomFieldRepository(q Querier) *CustomFieldRepo {
	return &CustomFieldRepo{q: q}
}

// Create inserta la definición y completa ID y CreatedAt desde la DB.
// El UNIQUE sobre field_name es el guard real contra registros duplicados.
func (r *CustomFieldRepo) Create(ctx context.Context, field *entity.CustomField) error {
	query := `
		INSERT INTO custom_fields (field_name, field_type, dropdown_options)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query, field.FieldName, field.FieldType, field.DropdownOptions).
		Scan(&field.ID, &field.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("campo %q: %w", field.FieldName, domain.ErrDuplicateColumn)
		}
		return fmt.Errorf("insert custom field: %w", err)
	}
	return nil
}

// ColumnExists consulta information_schema: columnas fijas y dinámicas cuentan igual.
func (r *CustomFieldRepo) ColumnExists(ctx context.Context, columnName string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.columns
			WHERE table_name = 'customers' AND column_name = $1
		)`
	var exists bool
	if err := r.q.QueryRow(ctx, query, columnName).Scan(&exists); err != nil {
		return false, fmt.Errorf("check column: %w", err)
	}
	return exists, nil
}

// AddColumn añade la columna dinámica a customers. ALTER TABLE no admite
// parámetros, así que el identificador se sanea con pgx.Identifier; el tipo
// SQL viene del mapeo cerrado de entity.ColumnType, nunca de entrada del
// usuario.
func (r *CustomFieldRepo) AddColumn(ctx context.Context, columnName, sqlType string) error {
	if !entity.ValidFieldName(columnName) {
		return fmt.Errorf("columna %q: %w", columnName, domain.ErrInvalidFieldName)
	}
	query := fmt.Sprintf(`ALTER TABLE customers ADD COLUMN %s %s`,
		pgx.Identifier{columnName}.Sanitize(), sqlType)
	if _, err := r.q.Exec(ctx, query); err != nil {
		return fmt.Errorf("add column %q: %w", columnName, err)
	}
	return nil
}

// AcquireRegistrationLock serializa los registros de campos concurrentes.
func (r *CustomFieldRepo) AcquireRegistrationLock(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, fieldRegistrationLockKey); err != nil {
		return fmt.Errorf("advisory lock: %w", err)
	}
	return nil
}

// List devuelve todas las definiciones en orden de creación.
func (r *CustomFieldRepo) List(ctx context.Context) ([]*entity.CustomField, error) {
	query := `
		SELECT id, field_name, field_type, dropdown_options, created_at
		FROM custom_fields ORDER BY id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list custom fields: %w", err)
	}
	defer rows.Close()
	var list []*entity.CustomField
	for rows.Next() {
		var f entity.CustomField
		if err := rows.Scan(&f.ID, &f.FieldName, &f.FieldType, &f.DropdownOptions, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan custom field: %w", err)
		}
		list = append(list, &f)
	}
	return list, rows.Err()
}

// GetByName obtiene una definición por nombre. Devuelve nil si no existe.
func (r *CustomFieldRepo) GetByName(ctx context.Context, fieldName string) (*entity.CustomField, error) {
	query := `
		SELECT id, field_name, field_type, dropdown_options, created_at
		FROM custom_fields WHERE field_name = $1`
	var f entity.CustomField
	err := r.q.QueryRow(ctx, query, fieldName).
		Scan(&f.ID, &f.FieldName, &f.FieldType, &f.DropdownOptions, &f.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get custom field: %w", err)
	}
	return &f, nil
}
