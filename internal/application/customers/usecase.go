package customers

import (
	"context"
	"fmt"
	"time"

	"github.com/multycomm/crm-api/internal/application/dto"
	"github.com/multycomm/crm-api/internal/domain"
	"github.com/multycomm/crm-api/internal/domain/entity"
	"github.com/multycomm/crm-api/internal/domain/repository"
)

// UseCase operaciones sobre clientes: listados, proyección con campos
// personalizados, búsqueda, actualización y borrado.
type UseCase struct {
	customers repository.CustomerRepository
	values    repository.FieldValueRepository
}

// NewUseCase construye el caso de uso de clientes.
func NewUseCase(customers repository.CustomerRepository, values repository.FieldValueRepository) *UseCase {
	return &UseCase{customers: customers, values: values}
}

// List devuelve todos los clientes (columnas fijas), el actualizado más
// recientemente primero.
func (uc *UseCase) List(ctx context.Context) ([]dto.CustomerResponse, error) {
	list, err := uc.customers.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCustomerResponse(c))
	}
	return out, nil
}

// ListWithCustomFields proyecta todos los clientes con su lista anidada de
// campos personalizados (join + reagrupado puro).
func (uc *UseCase) ListWithCustomFields(ctx context.Context) ([]dto.CustomerWithFieldsResponse, error) {
	rows, err := uc.customers.ListRows(ctx)
	if err != nil {
		return nil, err
	}
	return GroupCustomerRows(rows), nil
}

// Search proyecta los clientes que matchean query en alguna columna fija.
func (uc *UseCase) Search(ctx context.Context, query string) ([]dto.CustomerWithFieldsResponse, error) {
	if query == "" {
		return nil, domain.ErrInvalidInput
	}
	rows, err := uc.customers.SearchRows(ctx, query)
	if err != nil {
		return nil, err
	}
	return GroupCustomerRows(rows), nil
}

// Update actualiza las columnas fijas del cliente y, si vienen, aplica los
// valores de campos personalizados con semántica upsert (intención declarada
// de este camino: sobrescribir).
func (uc *UseCase) Update(ctx context.Context, companyUniqueID string, in dto.UpdateCustomerRequest) error {
	if companyUniqueID == "" {
		return domain.ErrInvalidInput
	}
	existing, err := uc.customers.GetByCompanyUniqueID(ctx, companyUniqueID)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("cliente %q: %w", companyUniqueID, domain.ErrNotFound)
	}

	dob := in.DateOfBirth
	if dob == nil {
		dob = existing.DateOfBirth // conservar la fecha actual si no viene
	}
	contactType := in.ContactType
	if contactType == "" {
		contactType = "customer"
	}
	customer := &entity.Customer{
		FirstName:       in.FirstName,
		LastName:        in.LastName,
		PhoneNo:         in.PhoneNo,
		EmailID:         in.EmailID,
		DateOfBirth:     dob,
		Address:         in.Address,
		CompanyName:     in.CompanyName,
		CompanyUniqueID: companyUniqueID,
		ContactType:     contactType,
		Source:          in.Source,
		Disposition:     in.Disposition,
		AgentName:       in.AgentName,
		UpdatedAt:       time.Now(),
	}
	if err := uc.customers.Update(ctx, customer); err != nil {
		return err
	}

	for _, item := range in.CustomFields {
		if item.FieldID == 0 || item.FieldValue == nil {
			return fmt.Errorf("campo %d: %w", item.FieldID, domain.ErrMissingField)
		}
		if err := uc.values.Upsert(ctx, companyUniqueID, item.FieldID, *item.FieldValue); err != nil {
			return err
		}
	}
	return nil
}

// Delete borra un cliente por ID interno (operación administrativa). No hay
// cascada sobre valores EAV ni historial: quedan como registros huérfanos de
// solo lectura, referenciados por clave de negocio.
func (uc *UseCase) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.ErrInvalidInput
	}
	return uc.customers.DeleteByID(ctx, id)
}

func toCustomerResponse(c *entity.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		CustomerID:      c.ID,
		FirstName:       c.FirstName,
		LastName:        c.LastName,
		PhoneNo:         c.PhoneNo,
		EmailID:         c.EmailID,
		DateOfBirth:     c.DateOfBirth,
		Address:         c.Address,
		CompanyName:     c.CompanyName,
		CompanyUniqueID: c.CompanyUniqueID,
		ContactType:     c.ContactType,
		Source:          c.Source,
		Disposition:     c.Disposition,
		AgentName:       c.AgentName,
		DateCreated:     c.DateCreated,
	}
}
