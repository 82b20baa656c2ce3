package repository

import (
	"context"

	"github.com/multycomm/crm-api/internal/domain/entity"
)

// CustomFieldRepository define el puerto del schema registry: las definiciones
// de campos en custom_fields y la mutación viva de la tabla customers.
//
// Registrar un campo toca dos cosas (fila de metadatos + columna real), así
// que Create y AddColumn deben ejecutarse sobre la misma transacción
// (ver TxRunner); sueltas pueden dejar estado parcial.
type CustomFieldRepository interface {
	// Create inserta la definición. Devuelve domain.ErrDuplicateColumn si ya
	// existe un campo con ese nombre (constraint UNIQUE sobre field_name).
	Create(ctx context.Context, field *entity.CustomField) error
	// ColumnExists consulta information_schema: ¿hay ya una columna así en customers?
	ColumnExists(ctx context.Context, columnName string) (bool, error)
	// AddColumn ejecuta el ALTER TABLE customers ADD COLUMN. El caller debe
	// haber validado columnName contra entity.ValidFieldName: aquí se
	// interpola como identificador (ALTER TABLE no admite parámetros).
	AddColumn(ctx context.Context, columnName, sqlType string) error
	// AcquireRegistrationLock toma el advisory lock de registro de campos,
	// ligado a la transacción en curso. Serializa los registros concurrentes:
	// dos registros del mismo nombre no pueden pasar ambos el pre-check.
	AcquireRegistrationLock(ctx context.Context) error
	List(ctx context.Context) ([]*entity.CustomField, error)
	GetByName(ctx context.Context, fieldName string) (*entity.CustomField, error)
}
