package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/multycomm/crm-api/internal/application/dto"
	"github.com/multycomm/crm-api/internal/application/history"
	"github.com/multycomm/crm-api/internal/domain"
)

// HistoryHandler maneja el historial de cambios de clientes.
type HistoryHandler struct {
	uc *history.UseCase
}

// NewHistoryHandler construye el handler.
func NewHistoryHandler(uc *history.UseCase) *HistoryHandler {
	return &HistoryHandler{uc: uc}
}

// Log POST /api/customers/log-change — registra deltas y devuelve el historial actualizado.
func (h *HistoryHandler) Log(c *fiber.Ctx) error {
	var in dto.LogChangesRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.LogAndFetch(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "company_unique_id y changes son requeridos"})
		}
		return internalError(c, err)
	}
	return c.JSON(resp)
}

// Get GET /api/customers/log-change/:id — historial del cliente, más reciente
// primero. Lista vacía es 200: "sin historial" no implica que el cliente no exista.
func (h *HistoryHandler) Get(c *fiber.Ctx) error {
	entries, err := h.uc.Fetch(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id del cliente requerido"})
		}
		return internalError(c, err)
	}
	return c.JSON(entries)
}
