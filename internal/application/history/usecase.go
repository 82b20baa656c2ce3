package history

import (
	"context"
	"fmt"
	"time"

	"github.com/multycomm/crm-api/internal/application/dto"
	"github.com/multycomm/crm-api/internal/domain"
	"github.com/multycomm/crm-api/internal/domain/entity"
	"github.com/multycomm/crm-api/internal/domain/repository"
)

// UseCase historial de cambios por cliente: append de deltas y lectura en
// orden cronológico inverso.
type UseCase struct {
	log repository.ChangeLogRepository
	now func() time.Time
}

// NewUseCase construye el caso de uso de historial.
func NewUseCase(log repository.ChangeLogRepository) *UseCase {
	return &UseCase{log: log, now: time.Now}
}

// Append registra una fila por cambio, con timestamp del momento del append.
// Los cambios de campos personalizados se etiquetan "Custom Field <id>" para
// distinguirlos de los atributos fijos del cliente.
func (uc *UseCase) Append(ctx context.Context, companyUniqueID string, changes []dto.ChangeInput) error {
	if companyUniqueID == "" || changes == nil {
		return domain.ErrInvalidInput
	}
	for _, change := range changes {
		field := change.Field
		if change.IsCustomField {
			field = fmt.Sprintf("Custom Field %d", change.FieldID)
		}
		entry := &entity.ChangeLogEntry{
			CompanyUniqueID: companyUniqueID,
			Field:           field,
			OldValue:        change.OldValue,
			NewValue:        change.NewValue,
			ChangedAt:       uc.now(),
		}
		if err := uc.log.Append(ctx, entry); err != nil {
			return err
		}
	}
	return nil
}

// Fetch devuelve el historial del cliente, más reciente primero. Lista vacía
// es un resultado válido: "sin historial" no distingue si el cliente existe.
func (uc *UseCase) Fetch(ctx context.Context, companyUniqueID string) ([]dto.ChangeLogResponse, error) {
	if companyUniqueID == "" {
		return nil, domain.ErrInvalidInput
	}
	entries, err := uc.log.ListByCompanyUniqueID(ctx, companyUniqueID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ChangeLogResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.ChangeLogResponse{
			ID:              e.ID,
			CompanyUniqueID: e.CompanyUniqueID,
			Field:           e.Field,
			OldValue:        e.OldValue,
			NewValue:        e.NewValue,
			ChangedAt:       e.ChangedAt,
		})
	}
	return out, nil
}

// LogAndFetch registra los cambios y devuelve el historial actualizado
// (contrato del endpoint POST /customers/log-change).
func (uc *UseCase) LogAndFetch(ctx context.Context, in dto.LogChangesRequest) (*dto.HistoryResponse, error) {
	if err := uc.Append(ctx, in.CompanyUniqueID, in.Changes); err != nil {
		return nil, err
	}
	entries, err := uc.Fetch(ctx, in.CompanyUniqueID)
	if err != nil {
		return nil, err
	}
	return &dto.HistoryResponse{
		Message:       "historial de cambios registrado",
		ChangeHistory: entries,
	}, nil
}
