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

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// Columnas fijas de customers; las dinámicas no se seleccionan aquí, viven en
// la proyección EAV.
const customerColumns = `
	id, first_name, last_name, phone_no, email_id, date_of_birth, address,
	company_name, company_unique_id, contact_type, source, disposition,
	agent_name, date_created, updated_at`

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// GetByCompanyUniqueID obtiene un cliente por clave de negocio. Devuelve nil si no existe.
func (r *CustomerRepo) GetByCompanyUniqueID(ctx context.Context, companyUniqueID string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE company_unique_id = $1`
	var c entity.Customer
	err := r.q.QueryRow(ctx, query, companyUniqueID).Scan(
		&c.ID, &c.FirstName, &c.LastName, &c.PhoneNo, &c.EmailID, &c.DateOfBirth, &c.Address,
		&c.CompanyName, &c.CompanyUniqueID, &c.ContactType, &c.Source, &c.Disposition,
		&c.AgentName, &c.DateCreated, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}

// Exists reporta si hay cliente con esa clave de negocio.
func (r *CustomerRepo) Exists(ctx context.Context, companyUniqueID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM customers WHERE company_unique_id = $1)`,
		companyUniqueID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check customer: %w", err)
	}
	return exists, nil
}

// List devuelve todos los clientes, el actualizado más recientemente primero.
func (r *CustomerRepo) List(ctx context.Context) ([]*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers ORDER BY updated_at DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		var c entity.Customer
		if err := rows.Scan(
			&c.ID, &c.FirstName, &c.LastName, &c.PhoneNo, &c.EmailID, &c.DateOfBirth, &c.Address,
			&c.CompanyName, &c.CompanyUniqueID, &c.ContactType, &c.Source, &c.Disposition,
			&c.AgentName, &c.DateCreated, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// projectionQuery: LEFT JOIN doble (EAV + definiciones); COALESCE deja los
// lados nulos como cadena vacía y el reagrupado en memoria los descarta.
const projectionQuery = `
	SELECT
		c.id, c.first_name, c.last_name, c.phone_no, c.email_id, c.date_of_birth,
		c.address, c.company_name, c.company_unique_id, c.contact_type, c.source,
		c.disposition, c.agent_name, c.date_created, c.updated_at,
		COALESCE(cf.field_name, ''), COALESCE(cfv.field_value, '')
	FROM customers AS c
	LEFT JOIN custom_field_values AS cfv ON c.company_unique_id = cfv.comp_unique_id
	LEFT JOIN custom_fields AS cf ON cfv.field_id = cf.id`

// ListRows devuelve el join completo ordenado por cliente y nombre de campo.
func (r *CustomerRepo) ListRows(ctx context.Context) ([]repository.ProjectionRow, error) {
	rows, err := r.q.Query(ctx, projectionQuery+` ORDER BY c.id, cf.field_name`)
	if err != nil {
		return nil, fmt.Errorf("list customer rows: %w", err)
	}
	defer rows.Close()
	return scanProjectionRows(rows)
}

// SearchRows filtra el join con ILIKE sobre las columnas fijas del cliente.
func (r *CustomerRepo) SearchRows(ctx context.Context, query string) ([]repository.ProjectionRow, error) {
	sql := projectionQuery + `
	WHERE c.first_name ILIKE $1
		OR c.last_name ILIKE $1
		OR c.phone_no ILIKE $1
		OR c.email_id ILIKE $1
		OR c.company_unique_id ILIKE $1
		OR c.agent_name ILIKE $1
		OR c.address ILIKE $1
		OR c.contact_type ILIKE $1
		OR c.company_name ILIKE $1
		OR c.disposition ILIKE $1
	ORDER BY c.id, cf.field_name`
	rows, err := r.q.Query(ctx, sql, "%"+query+"%")
	if err != nil {
		return nil, fmt.Errorf("search customers: %w", err)
	}
	defer rows.Close()
	return scanProjectionRows(rows)
}

func scanProjectionRows(rows pgx.Rows) ([]repository.ProjectionRow, error) {
	var list []repository.ProjectionRow
	for rows.Next() {
		var row repository.ProjectionRow
		c := &row.Customer
		if err := rows.Scan(
			&c.ID, &c.FirstName, &c.LastName, &c.PhoneNo, &c.EmailID, &c.DateOfBirth,
			&c.Address, &c.CompanyName, &c.CompanyUniqueID, &c.ContactType, &c.Source,
			&c.Disposition, &c.AgentName, &c.DateCreated, &c.UpdatedAt,
			&row.FieldName, &row.FieldValue,
		); err != nil {
			return nil, fmt.Errorf("scan projection row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// Update actualiza las columnas fijas del cliente identificado por su clave
// de negocio. Devuelve domain.ErrNotFound si la clave no existe.
func (r *CustomerRepo) Update(ctx context.Context, customer *entity.Customer) error {
	query := `
		UPDATE customers SET
			first_name = $2, last_name = $3, phone_no = $4, email_id = $5,
			date_of_birth = $6, address = $7, company_name = $8, contact_type = $9,
			source = $10, disposition = $11, agent_name = $12, updated_at = $13
		WHERE company_unique_id = $1`
	tag, err := r.q.Exec(ctx, query,
		customer.CompanyUniqueID, customer.FirstName, customer.LastName, customer.PhoneNo,
		customer.EmailID, customer.DateOfBirth, customer.Address, customer.CompanyName,
		customer.ContactType, customer.Source, customer.Disposition, customer.AgentName,
		customer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteByID borra por ID interno. Devuelve domain.ErrNotFound si no existía.
func (r *CustomerRepo) DeleteByID(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
