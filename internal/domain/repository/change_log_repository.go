package repository

import (
	"context"

	"github.com/multycomm/crm-api/internal/domain/entity"
)

// ChangeLogRepository define el puerto del historial de cambios (append-only).
type ChangeLogRepository interface {
	Append(ctx context.Context, entry *entity.ChangeLogEntry) error
	// ListByCompanyUniqueID devuelve las entradas del cliente, más reciente primero.
	ListByCompanyUniqueID(ctx context.Context, companyUniqueID string) ([]*entity.ChangeLogEntry, error)
}
