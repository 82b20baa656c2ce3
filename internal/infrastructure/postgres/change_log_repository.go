package postgres

import (
	"context"
	"fmt"

	"github.com/multycomm/crm-api/internal/domain/entity"
	"github.com/multycomm/crm-api/internal/domain/repository"
)

var _ repository.ChangeLogRepository = (*ChangeLogRepo)(nil)

// ChangeLogRepo implementación de ChangeLogRepository sobre updates_history
// (append-only; no hay update ni delete).
type ChangeLogRepo struct {
	q Querier
}

// NewChangeLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewChangeLogRepository(q Querier) *ChangeLogRepo {
	return &ChangeLogRepo{q: q}
}

// Append inserta una entrada y completa su ID.
func (r *ChangeLogRepo) Append(ctx context.Context, entry *entity.ChangeLogEntry) error {
	query := `
		INSERT INTO updates_history (comp_unique_id, field, old_value, new_value, changed_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		entry.CompanyUniqueID, entry.Field, entry.OldValue, entry.NewValue, entry.ChangedAt,
	).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("insert change log: %w", err)
	}
	return nil
}

// ListByCompanyUniqueID devuelve las entradas del cliente, más reciente
// primero (id desempata timestamps iguales dentro del mismo append).
func (r *ChangeLogRepo) ListByCompanyUniqueID(ctx context.Context, companyUniqueID string) ([]*entity.ChangeLogEntry, error) {
	query := `
		SELECT id, comp_unique_id, field, old_value, new_value, changed_at
		FROM updates_history
		WHERE comp_unique_id = $1
		ORDER BY changed_at DESC, id DESC`
	rows, err := r.q.Query(ctx, query, companyUniqueID)
	if err != nil {
		return nil, fmt.Errorf("list change log: %w", err)
	}
	defer rows.Close()
	var list []*entity.ChangeLogEntry
	for rows.Next() {
		var e entity.ChangeLogEntry
		if err := rows.Scan(&e.ID, &e.CompanyUniqueID, &e.Field, &e.OldValue, &e.NewValue, &e.ChangedAt); err != nil {
			return nil, fmt.Errorf("scan change log: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
