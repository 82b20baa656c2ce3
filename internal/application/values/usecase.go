package values

import (
	"context"
	"fmt"

	"github.com/multycomm/crm-api/internal/application/dto"
	"github.com/multycomm/crm-api/internal/domain"
	"github.com/multycomm/crm-api/internal/domain/repository"
)

// TxRunner contrato mínimo del coordinador de transacciones para valores EAV:
// fn recibe repos atados a la misma tx; cualquier fallo revierte el batch entero.
type TxRunner interface {
	RunValues(ctx context.Context, fn func(
		values repository.FieldValueRepository,
		customers repository.CustomerRepository,
	) error) error
}

// UseCase aplica valores de campos personalizados sobre un cliente.
//
// Hay dos políticas de escritura con nombre propio y cada call site declara
// cuál usa; no se unifican:
//   - Upsert: inserta o reemplaza (PUT /custom-values, PUT /customers).
//   - InsertIfAbsent: salta los pares que ya existen (POST /custom-values).
//
// Política de existencia: ambas operaciones verifican que el cliente exista
// (por clave de negocio, dentro de la misma transacción) antes de escribir;
// si no existe devuelven ErrNotFound.
type UseCase struct {
	tx TxRunner
}

// NewUseCase construye el caso de uso de valores EAV.
func NewUseCase(tx TxRunner) *UseCase {
	return &UseCase{tx: tx}
}

// Upsert aplica el batch con semántica insert-or-replace. Reaplicar el mismo
// valor es un no-op en efecto.
func (uc *UseCase) Upsert(ctx context.Context, companyUniqueID string, in dto.ApplyValuesRequest) error {
	if err := validateRequest(companyUniqueID, in); err != nil {
		return err
	}
	return uc.tx.RunValues(ctx, func(values repository.FieldValueRepository, customers repository.CustomerRepository) error {
		if err := requireCustomer(ctx, customers, companyUniqueID); err != nil {
			return err
		}
		for _, item := range in.CustomFields {
			if err := validateItem(item); err != nil {
				return err
			}
			if err := values.Upsert(ctx, companyUniqueID, item.FieldID, *item.FieldValue); err != nil {
				return err
			}
		}
		return nil
	})
}

// InsertIfAbsent aplica el batch saltando los pares (cliente, campo) que ya
// tienen valor, sin sobrescribir.
func (uc *UseCase) InsertIfAbsent(ctx context.Context, companyUniqueID string, in dto.ApplyValuesRequest) error {
	if err := validateRequest(companyUniqueID, in); err != nil {
		return err
	}
	return uc.tx.RunValues(ctx, func(values repository.FieldValueRepository, customers repository.CustomerRepository) error {
		if err := requireCustomer(ctx, customers, companyUniqueID); err != nil {
			return err
		}
		for _, item := range in.CustomFields {
			if err := validateItem(item); err != nil {
				return err
			}
			exists, err := values.Exists(ctx, companyUniqueID, item.FieldID)
			if err != nil {
				return err
			}
			if exists {
				continue
			}
			if err := values.Insert(ctx, companyUniqueID, item.FieldID, *item.FieldValue); err != nil {
				return err
			}
		}
		return nil
	})
}

func validateRequest(companyUniqueID string, in dto.ApplyValuesRequest) error {
	if companyUniqueID == "" || len(in.CustomFields) == 0 {
		return domain.ErrInvalidInput
	}
	return nil
}

func validateItem(item dto.FieldValueInput) error {
	if item.FieldID == 0 || item.FieldValue == nil {
		return fmt.Errorf("campo %d: %w", item.FieldID, domain.ErrMissingField)
	}
	return nil
}

func requireCustomer(ctx context.Context, customers repository.CustomerRepository, companyUniqueID string) error {
	exists, err := customers.Exists(ctx, companyUniqueID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("cliente %q: %w", companyUniqueID, domain.ErrNotFound)
	}
	return nil
}
