package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/harborline/fishmarket-service/internal/api/http/handlers"
	"github.com/harborline/fishmarket-service/internal/auth"
	"github.com/harborline/fishmarket-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Workers        *handlers.WorkersHandler
	Contacts       *handlers.ContactsHandler
	Products       *handlers.ProductsHandler
	Expenses       *handlers.ExpensesHandler
	Sales          *handlers.SalesHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/workers/login", cfg.Auth.WorkerLogin)
	authGroup.Post("/refresh", cfg.Auth.Refresh)

	protected := authGroup.Group("", cfg.AuthMiddleware.Handle)
	protected.Post("/logout", cfg.Auth.Logout)
	protected.Get("/me", cfg.Auth.Me)
	protected.Post("/password/change", cfg.Auth.ChangePassword)

	api := app.Group("/api", cfg.AuthMiddleware.Handle)

	workers := api.Group("/workers", auth.RequireAdmin())
	workers.Get("/capabilities", cfg.Workers.Capabilities)
	workers.Post("/", cfg.Workers.Create)
	workers.Get("/", cfg.Workers.List)
	workers.Get("/:id", cfg.Workers.Get)
	workers.Put("/:id", cfg.Workers.Update)
	workers.Delete("/:id", cfg.Workers.Delete)
	workers.Put("/:id/permissions", cfg.Workers.SetPermissions)

	contacts := api.Group("/contacts")
	contacts.Get("/", auth.RequireCapability(domain.CapViewContacts), cfg.Contacts.List)
	contacts.Get("/:id", auth.RequireCapability(domain.CapViewContacts), cfg.Contacts.Get)
	contacts.Post("/", auth.RequireCapability(domain.CapManageContacts), cfg.Contacts.Create)
	contacts.Put("/:id", auth.RequireCapability(domain.CapManageContacts), cfg.Contacts.Update)
	contacts.Delete("/:id", auth.RequireCapability(domain.CapManageContacts), cfg.Contacts.Delete)

	products := api.Group("/products")
	products.Get("/", auth.RequireCapability(domain.CapViewProducts), cfg.Products.List)
	products.Get("/:id", auth.RequireCapability(domain.CapViewProducts), cfg.Products.Get)
	products.Post("/", auth.RequireCapability(domain.CapManageProducts), cfg.Products.Create)
	products.Put("/:id", auth.RequireCapability(domain.CapManageProducts), cfg.Products.Update)
	products.Delete("/:id", auth.RequireCapability(domain.CapManageProducts), cfg.Products.Delete)

	expenses := api.Group("/expenses")
	expenses.Get("/", auth.RequireCapability(domain.CapViewExpenses), cfg.Expenses.List)
	expenses.Get("/:id", auth.RequireCapability(domain.CapViewExpenses), cfg.Expenses.Get)
	expenses.Post("/", auth.RequireCapability(domain.CapManageExpenses), cfg.Expenses.Create)
	expenses.Put("/:id", auth.RequireCapability(domain.CapManageExpenses), cfg.Expenses.Update)
	expenses.Delete("/:id", auth.RequireCapability(domain.CapManageExpenses), cfg.Expenses.Delete)

	sales := api.Group("/sales")
	sales.Get("/", auth.RequireCapability(domain.CapViewSales), cfg.Sales.List)
	sales.Get("/:id", auth.RequireCapability(domain.CapViewSales), cfg.Sales.Get)
	sales.Post("/", auth.RequireCapability(domain.CapManageSales), cfg.Sales.Create)
}
