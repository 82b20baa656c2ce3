package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")

	// Campos personalizados (schema registry / EAV).
	ErrInvalidFieldName = errors.New("nombre de campo inválido")
	ErrInvalidFieldType = errors.New("tipo de campo no soportado")
	ErrDuplicateColumn  = errors.New("la columna ya existe en la tabla customers")
	ErrMissingField     = errors.New("fieldId o fieldValue ausente")
)
