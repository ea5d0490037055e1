package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/warner-inmobiliaria/internal/application/agents"
	appanalytics "github.com/jhoicas/warner-inmobiliaria/internal/application/analytics"
	"github.com/jhoicas/warner-inmobiliaria/internal/application/crm"
	"github.com/jhoicas/warner-inmobiliaria/internal/application/property"
	"github.com/jhoicas/warner-inmobiliaria/internal/application/reservation"
	"github.com/jhoicas/warner-inmobiliaria/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Agents      *agents.Service
	Properties  *property.Service
	Reservation *reservation.Coordinator
	Leads       *crm.Service
	Dashboard   *appanalytics.DashboardService
	Assistant   *appanalytics.Assistant
	// Gatherer origen de /metrics; nil deja la ruta sin registrar.
	Gatherer  prometheus.Gatherer
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.Agents)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	protected.Get("/agents", authHandler.ListAgents)

	propertyHandler := NewPropertyHandler(deps.Properties)
	protected.Get("/properties", propertyHandler.ListCaptured)
	protected.Get("/properties/reservable", propertyHandler.ListReservable)

	reservationHandler := NewReservationHandler(deps.Reservation)
	protected.Post("/reservas", reservationHandler.Create)

	leadHandler := NewLeadHandler(deps.Leads)
	protected.Get("/leads", leadHandler.List)
	protected.Put("/leads", leadHandler.Update)

	dashboardHandler := NewDashboardHandler(deps.Dashboard)
	dashboard := protected.Group("/dashboard")
	dashboard.Get("/", dashboardHandler.GetMetrics)
	dashboard.Get("/series", dashboardHandler.GetSeries)
	dashboard.Get("/report.pdf", dashboardHandler.GetReport)
	dashboard.Delete("/cache", adminOnly, dashboardHandler.Invalidate)

	aiHandler := NewAIHandler(deps.Assistant)
	protected.Post("/ai/chat", aiHandler.Chat)
}
