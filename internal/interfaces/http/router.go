package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hylatrack/leads-api/internal/application/audit"
	"github.com/hylatrack/leads-api/internal/application/auth"
	"github.com/hylatrack/leads-api/internal/application/usecase"
	"github.com/hylatrack/leads-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	UserUC      *usecase.UserUseCase
	LeadUC      *usecase.LeadUseCase
	DashboardUC *usecase.DashboardUseCase
	Auditor     *audit.Recorder
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.Refresh)

	// Rutas protegidas (requieren Bearer Token). Las cuentas PENDIENTE solo leen.
	protected := api.Group("/", AuthMiddleware(deps.AuthUC, deps.UserUC), BlockPendingWrites())

	protected.Get("/auth/me", authHandler.Me)

	// Usuarios (solo ADMIN y JEFE)
	users := protected.Group("/users", RequireRole(entity.RoleAdmin, entity.RoleJefe))
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Put("/:uid", userHandler.Update)

	// Leads (todo rol autenticado; el alcance lo resuelve cada operación)
	leads := protected.Group("/leads")
	leadHandler := NewLeadHandler(deps.LeadUC, deps.Auditor)
	leads.Get("/", leadHandler.List)
	leads.Post("/", leadHandler.Create)
	leads.Get("/:id", leadHandler.Get)
	leads.Put("/:id", leadHandler.Update)
	leads.Post("/:id/status", leadHandler.QuickStatus)
	leads.Post("/:id/demo-user", leadHandler.AssignDemo)
	leads.Get("/:id/images", leadHandler.ListImages)
	leads.Post("/:id/images", leadHandler.UploadImage)
	leads.Get("/:id/audit", leadHandler.AuditLog)

	// Dashboard (todo rol autenticado)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.Get)
}
