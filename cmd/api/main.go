package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/multycomm/crm-api/internal/application/auth"
	"github.com/multycomm/crm-api/internal/application/customers"
	"github.com/multycomm/crm-api/internal/application/history"
	"github.com/multycomm/crm-api/internal/application/schema"
	"github.com/multycomm/crm-api/internal/application/values"
	"github.com/multycomm/crm-api/internal/infrastructure/postgres"
	httpRouter "github.com/multycomm/crm-api/internal/interfaces/http"
	"github.com/multycomm/crm-api/pkg/config"
	"github.com/multycomm/crm-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.MigrationsPath != "" {
		if err := postgres.RunMigrations(ctx, pool, cfg.DB.MigrationsPath); err != nil {
			log.Fatal().Err(err).Msg("aplicar migraciones")
		}
	}

	userRepo := postgres.NewUserRepository(pool)
	loginRepo := postgres.NewLoginHistoryRepository(pool)
	fieldRepo := postgres.NewCustomFieldRepository(pool)
	valueRepo := postgres.NewFieldValueRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	changeLogRepo := postgres.NewChangeLogRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewUseCase(userRepo, loginRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	schemaUC := schema.NewUseCase(fieldRepo, txRunner)
	valuesUC := values.NewUseCase(txRunner)
	customerUC := customers.NewUseCase(customerRepo, valueRepo)
	historyUC := history.NewUseCase(changeLogRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Multycomm CRM API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		SchemaUC:   schemaUC,
		ValuesUC:   valuesUC,
		CustomerUC: customerUC,
		HistoryUC:  historyUC,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
