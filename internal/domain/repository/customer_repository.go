package repository

import (
	"context"

	"github.com/multycomm/crm-api/internal/domain/entity"
)

// ProjectionRow es una fila cruda del LEFT JOIN customers × custom_field_values
// × custom_fields. La produce la DB; el use case la agrupa en la vista anidada.
// FieldName y FieldValue vienen vacíos cuando el cliente no tiene valores EAV
// (lado derecho del join nulo).
type ProjectionRow struct {
	Customer   entity.Customer
	FieldName  string
	FieldValue string
}

// CustomerRepository define el puerto de persistencia para Customer.
// La identificación externa es siempre por CompanyUniqueID (clave de negocio);
// el ID numérico solo se usa para el borrado administrativo.
type CustomerRepository interface {
	GetByCompanyUniqueID(ctx context.Context, companyUniqueID string) (*entity.Customer, error)
	Exists(ctx context.Context, companyUniqueID string) (bool, error)
	// List devuelve todos los clientes ordenados por updated_at descendente.
	List(ctx context.Context) ([]*entity.Customer, error)
	// ListRows devuelve el join con campos personalizados, ORDER BY c.id, cf.field_name.
	ListRows(ctx context.Context) ([]ProjectionRow, error)
	// SearchRows filtra el mismo join con ILIKE sobre las columnas fijas.
	SearchRows(ctx context.Context, query string) ([]ProjectionRow, error)
	// Update actualiza las columnas fijas del cliente identificado por CompanyUniqueID.
	Update(ctx context.Context, customer *entity.Customer) error
	// DeleteByID borra por ID interno. Devuelve domain.ErrNotFound si no existía.
	DeleteByID(ctx context.Context, id int64) error
}
