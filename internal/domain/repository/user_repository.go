package repository

import (
	"context"

	"github.com/multycomm/crm-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	// PromoteToAdmin cambia el rol a admin. Devuelve domain.ErrUserNotFound si no existe.
	PromoteToAdmin(ctx context.Context, username string) error
}

// LoginHistoryRepository registra aperturas y cierres de sesión en login_history.
type LoginHistoryRepository interface {
	RecordLogin(ctx context.Context, userID string) error
	// RecordLogout cierra las sesiones abiertas del usuario (logout_time NULL).
	RecordLogout(ctx context.Context, userID string) error
}
