package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/multycomm/crm-api/internal/application/dto"
	"github.com/multycomm/crm-api/internal/application/values"
	"github.com/multycomm/crm-api/internal/domain"
)

// ValuesHandler maneja la escritura de valores de campos personalizados.
// Cada ruta declara su política: POST inserta solo si no existe; PUT sobrescribe.
type ValuesHandler struct {
	uc *values.UseCase
}

// NewValuesHandler construye el handler.
func NewValuesHandler(uc *values.UseCase) *ValuesHandler {
	return &ValuesHandler{uc: uc}
}

// Add POST /api/custom-values/:id — insert-if-absent: los pares ya valuados se saltan.
func (h *ValuesHandler) Add(c *fiber.Ctx) error {
	return h.apply(c, h.uc.InsertIfAbsent, "valores añadidos")
}

// Update PUT /api/custom-values/:id — upsert: sobrescribe valores existentes.
func (h *ValuesHandler) Update(c *fiber.Ctx) error {
	return h.apply(c, h.uc.Upsert, "valores actualizados")
}

func (h *ValuesHandler) apply(
	c *fiber.Ctx,
	op func(ctx context.Context, companyUniqueID string, in dto.ApplyValuesRequest) error,
	okMessage string,
) error {
	companyUniqueID := c.Params("id")
	var in dto.ApplyValuesRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := op(c.Context(), companyUniqueID, in); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "se requiere el id del cliente y una lista customFields no vacía"})
		case errors.Is(err, domain.ErrMissingField):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FIELD", Message: err.Error()})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cliente no encontrado"})
		}
		return internalError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: okMessage})
}
