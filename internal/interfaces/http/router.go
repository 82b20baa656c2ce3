package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/multycomm/crm-api/internal/application/auth"
	"github.com/multycomm/crm-api/internal/application/customers"
	"github.com/multycomm/crm-api/internal/application/dto"
	"github.com/multycomm/crm-api/internal/application/history"
	"github.com/multycomm/crm-api/internal/application/schema"
	"github.com/multycomm/crm-api/internal/application/values"
	"github.com/multycomm/crm-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.UseCase
	SchemaUC   *schema.UseCase
	ValuesUC   *values.UseCase
	CustomerUC *customers.UseCase
	HistoryUC  *history.UseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/auth/current-user", authHandler.CurrentUser)
	protected.Post("/auth/promote-admin", adminOnly, authHandler.PromoteAdmin)

	// Campos personalizados (el registro altera el esquema; solo admin)
	fieldHandler := NewCustomFieldHandler(deps.SchemaUC)
	protected.Get("/custom-fields", fieldHandler.List)
	protected.Post("/custom-fields", adminOnly, fieldHandler.Register)

	// Valores de campos personalizados por cliente
	valuesHandler := NewValuesHandler(deps.ValuesUC)
	protected.Post("/custom-values/:id", valuesHandler.Add)
	protected.Put("/custom-values/:id", valuesHandler.Update)

	// Clientes e historial de cambios. Las rutas fijas van antes de /:id
	// para que Fiber no las capture como parámetro.
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	historyHandler := NewHistoryHandler(deps.HistoryUC)
	customersGroup := protected.Group("/customers")
	customersGroup.Get("/", customerHandler.List)
	customersGroup.Get("/with-fields", customerHandler.ListWithFields)
	customersGroup.Get("/search", customerHandler.Search)
	customersGroup.Post("/log-change", historyHandler.Log)
	customersGroup.Get("/log-change/:id", historyHandler.Get)
	customersGroup.Put("/:id", customerHandler.Update)
	customersGroup.Delete("/:id", adminOnly, customerHandler.Delete)
}

// internalError responde 500 sin filtrar detalles internos (SQL, rutas, stack).
func internalError(c *fiber.Ctx, _ error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Code:    "INTERNAL",
		Message: "error interno del servidor",
	})
}
