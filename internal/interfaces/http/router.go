package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/depot-ops-api/internal/application/analytics"
	"github.com/jhoicas/depot-ops-api/internal/application/auth"
	appcompliance "github.com/jhoicas/depot-ops-api/internal/application/compliance"
	appdepot "github.com/jhoicas/depot-ops-api/internal/application/depot"
	appdepotday "github.com/jhoicas/depot-ops-api/internal/application/depotday"
	appreports "github.com/jhoicas/depot-ops-api/internal/application/reports"
	"github.com/jhoicas/depot-ops-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	DepotUC      *appdepot.UseCase
	DayUC        *appdepotday.UseCase
	ComplianceUC *appcompliance.UseCase
	DashboardUC  *appanalytics.DashboardUseCase
	ReportsUC    *appreports.UseCase
	JWTSecret    string
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

	// Depots: alta solo admin, lectura para ambos roles
	depots := protected.Group("/depots")
	depotHandler := NewDepotHandler(deps.DepotUC)
	depots.Post("/", adminOnly, depotHandler.Create)
	depots.Get("/", depotHandler.List)
	depots.Get("/:id", depotHandler.GetByID)

	// Jornadas: el handler limita a los operadores a su propio depósito
	dayHandler := NewDayHandler(deps.DayUC)
	depots.Post("/:id/days/:date/open", dayHandler.OpenDay)
	depots.Post("/:id/days/:date/close", dayHandler.CloseDay)
	depots.Get("/:id/days/:date", dayHandler.DayStatus)

	// Confiabilidad
	complianceHandler := NewComplianceHandler(deps.ComplianceUC)
	depots.Get("/:id/trust", complianceHandler.TrustReport)

	// Certificado de cierre (PDF)
	reportHandler := NewReportHandler(deps.ReportsUC)
	depots.Get("/:id/days/:date/certificate.pdf", reportHandler.CloseCertificate)

	// Dashboard gerencial (solo admin)
	dashboard := protected.Group("/dashboard", adminOnly)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/summary", dashboardHandler.GetSummary)

	// Reportes mensuales (solo admin)
	reportsGroup := protected.Group("/reports", adminOnly)
	reportsGroup.Get("/monthly.xlsx", reportHandler.MonthlyReconciliation)
}
