package schema

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/multycomm/crm-api/internal/application/dto"
	"github.com/multycomm/crm-api/internal/domain"
	"github.com/multycomm/crm-api/internal/domain/entity"
	"github.com/multycomm/crm-api/internal/domain/repository"
)

// TxRunner contrato mínimo del coordinador de transacciones para el registro
// de campos: ejecuta fn con un repo atado a la tx y revierte si fn falla.
type TxRunner interface {
	RunSchema(ctx context.Context, fn func(fields repository.CustomFieldRepository) error) error
}

// UseCase registra campos personalizados: valida la especificación, persiste
// la definición y añade la columna real a customers, todo en una transacción.
//
// Nota sobre la carrera de registros concurrentes: el chequeo de columna en
// information_schema es solo un fast-path; dos registros simultáneos del mismo
// nombre podrían pasarlo ambos antes de que alguno confirme. Los guards reales
// son el advisory lock transaccional y el UNIQUE sobre custom_fields.field_name.
type UseCase struct {
	fields repository.CustomFieldRepository // lecturas fuera de transacción
	tx     TxRunner
}

// NewUseCase construye el caso de uso del schema registry.
func NewUseCase(fields repository.CustomFieldRepository, tx TxRunner) *UseCase {
	return &UseCase{fields: fields, tx: tx}
}

// Register procesa el batch en orden y de forma atómica: si cualquier entrada
// es inválida o falla el ALTER TABLE, no queda ni fila de definición ni
// columna de ninguna de las entradas.
func (uc *UseCase) Register(ctx context.Context, in dto.RegisterFieldsRequest) ([]dto.FieldResponse, error) {
	if len(in.FormFields) == 0 {
		return nil, domain.ErrInvalidInput
	}
	// Validación pura antes de abrir la transacción.
	for _, spec := range in.FormFields {
		if err := validateSpec(spec); err != nil {
			return nil, err
		}
	}

	created := make([]*entity.CustomField, 0, len(in.FormFields))
	err := uc.tx.RunSchema(ctx, func(fields repository.CustomFieldRepository) error {
		if err := fields.AcquireRegistrationLock(ctx); err != nil {
			return err
		}
		for _, spec := range in.FormFields {
			exists, err := fields.ColumnExists(ctx, spec.FieldName)
			if err != nil {
				return err
			}
			if exists {
				return fmt.Errorf("columna %q: %w", spec.FieldName, domain.ErrDuplicateColumn)
			}
			field := &entity.CustomField{
				FieldName:       spec.FieldName,
				FieldType:       spec.FieldType,
				DropdownOptions: serializeOptions(spec.DropdownOptions),
			}
			if err := fields.Create(ctx, field); err != nil {
				return err
			}
			sqlType, _ := entity.ColumnType(spec.FieldType) // validado arriba
			if err := fields.AddColumn(ctx, spec.FieldName, sqlType); err != nil {
				return err
			}
			created = append(created, field)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]dto.FieldResponse, 0, len(created))
	for _, f := range created {
		out = append(out, toFieldResponse(f))
	}
	return out, nil
}

// List devuelve todas las definiciones de campos registradas.
func (uc *UseCase) List(ctx context.Context) ([]dto.FieldResponse, error) {
	fields, err := uc.fields.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FieldResponse, 0, len(fields))
	for _, f := range fields {
		out = append(out, toFieldResponse(f))
	}
	return out, nil
}

// GetByName busca una definición por nombre. Devuelve ErrNotFound si no existe.
func (uc *UseCase) GetByName(ctx context.Context, fieldName string) (*dto.FieldResponse, error) {
	field, err := uc.fields.GetByName(ctx, fieldName)
	if err != nil {
		return nil, err
	}
	if field == nil {
		return nil, domain.ErrNotFound
	}
	resp := toFieldResponse(field)
	return &resp, nil
}

func validateSpec(spec dto.FieldSpec) error {
	if spec.FieldName == "" {
		return fmt.Errorf("fieldName requerido: %w", domain.ErrInvalidInput)
	}
	if !entity.ValidFieldName(spec.FieldName) {
		return fmt.Errorf("campo %q: %w", spec.FieldName, domain.ErrInvalidFieldName)
	}
	if !entity.ValidFieldType(spec.FieldType) {
		return fmt.Errorf("tipo %q: %w", spec.FieldType, domain.ErrInvalidFieldType)
	}
	return nil
}

// serializeOptions serializa la lista de opciones como JSON, o NULL si está vacía.
func serializeOptions(options []string) *string {
	if len(options) == 0 {
		return nil
	}
	raw, err := json.Marshal(options)
	if err != nil {
		return nil
	}
	s := string(raw)
	return &s
}

func toFieldResponse(f *entity.CustomField) dto.FieldResponse {
	resp := dto.FieldResponse{
		ID:        f.ID,
		FieldName: f.FieldName,
		FieldType: f.FieldType,
		CreatedAt: f.CreatedAt,
	}
	if f.DropdownOptions != nil {
		_ = json.Unmarshal([]byte(*f.DropdownOptions), &resp.DropdownOptions)
	}
	return resp
}
