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

	"github.com/hylatrack/leads-api/internal/application/audit"
	"github.com/hylatrack/leads-api/internal/application/auth"
	"github.com/hylatrack/leads-api/internal/application/usecase"
	"github.com/hylatrack/leads-api/internal/infrastructure/postgres"
	infras3 "github.com/hylatrack/leads-api/internal/infrastructure/s3"
	httpRouter "github.com/hylatrack/leads-api/internal/interfaces/http"
	"github.com/hylatrack/leads-api/pkg/config"
	"github.com/hylatrack/leads-api/pkg/logger"
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

	blobs, err := infras3.NewBlobStore(ctx, cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión al almacenamiento de objetos")
	}

	identityRepo := postgres.NewIdentityRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	leadRepo := postgres.NewLeadRepository(pool)
	imageRepo := postgres.NewLeadImageRepository(pool)
	auditRepo := postgres.NewAuditLogRepository(pool)

	auditor := audit.NewRecorder(auditRepo, log)

	// El gateway de identidad y el directorio de usuarios se necesitan mutuamente:
	// se construyen en dos fases.
	authUC := auth.NewAuthUseCase(identityRepo, nil, auth.JWTConfig{
		Secret:            cfg.JWT.Secret,
		ExpMinutes:        cfg.JWT.Expiration,
		RefreshExpMinutes: cfg.JWT.RefreshExpiration,
		Issuer:            cfg.JWT.Issuer,
	})
	userUC := usecase.NewUserUseCase(userRepo, authUC, auditor, log)
	authUC.SetProfileDirectory(userUC)

	leadUC := usecase.NewLeadUseCase(leadRepo, imageRepo, userRepo, blobs, auditor)
	dashboardUC := usecase.NewDashboardUseCase(leadUC)

	userUC.EnsureBootstrapAdmin(ctx, cfg.Bootstrap)

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
		Title:    "HylaTrack API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		UserUC:      userUC,
		LeadUC:      leadUC,
		DashboardUC: dashboardUC,
		Auditor:     auditor,
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
