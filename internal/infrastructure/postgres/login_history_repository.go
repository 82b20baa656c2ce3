package postgres

import (
	"context"
	"fmt"

	"github.com/multycomm/crm-api/internal/domain/repository"
)

var _ repository.LoginHistoryRepository = (*LoginHistoryRepo)(nil)

// LoginHistoryRepo registra sesiones en login_history.
type LoginHistoryRepo struct {
	q Querier
}

// NewLoginHistoryRepository construye el adaptador.
func NewLoginHistoryRepository(q Querier) *LoginHistoryRepo {
	return &LoginHistoryRepo{q: q}
}

// RecordLogin abre un registro de sesión con la hora actual de la DB.
func (r *LoginHistoryRepo) RecordLogin(ctx context.Context, userID string) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO login_history (user_id, login_time) VALUES ($1, now())`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("record login: %w", err)
	}
	return nil
}

// RecordLogout cierra las sesiones abiertas del usuario (logout_time NULL).
func (r *LoginHistoryRepo) RecordLogout(ctx context.Context, userID string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE login_history SET logout_time = now() WHERE user_id = $1 AND logout_time IS NULL`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("record logout: %w", err)
	}
	return nil
}
