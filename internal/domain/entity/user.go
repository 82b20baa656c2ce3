package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin = "admin"
	RoleAgent = "agent"
)

// User representa un usuario del CRM (agente o administrador).
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // admin, agent
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// LoginRecord registra una sesión en login_history (logout_time NULL mientras está abierta).
type LoginRecord struct {
	ID         int64
	UserID     string
	LoginTime  time.Time
	LogoutTime *time.Time
}
