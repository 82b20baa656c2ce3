package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/multycomm/crm-api/internal/application/dto"
	"github.com/multycomm/crm-api/internal/application/schema"
	"github.com/multycomm/crm-api/internal/domain"
)

// CustomFieldHandler maneja el registro y consulta de campos personalizados.
type CustomFieldHandler struct {
	uc *schema.UseCase
}

// NewCustomFieldHandler construye el handler.
func NewCustomFieldHandler(uc *schema.UseCase) *CustomFieldHandler {
	return &CustomFieldHandler{uc: uc}
}

// Register POST /api/custom-fields (solo admin). Batch atómico: si cualquier
// entrada falla, no se registra ninguna.
func (h *CustomFieldHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterFieldsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	fields, err := h.uc.Register(c.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "formFields es requerido y cada entrada necesita fieldName"})
		case errors.Is(err, domain.ErrInvalidFieldName):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FIELD_NAME", Message: err.Error()})
		case errors.Is(err, domain.ErrInvalidFieldType):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FIELD_TYPE", Message: err.Error()})
		case errors.Is(err, domain.ErrDuplicateColumn):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_COLUMN", Message: err.Error()})
		}
		return internalError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "campos personalizados registrados",
		"fields":  fields,
	})
}

// List GET /api/custom-fields
func (h *CustomFieldHandler) List(c *fiber.Ctx) error {
	fields, err := h.uc.List(c.Context())
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(fields)
}
