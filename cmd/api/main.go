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

	appanalytics "github.com/jhoicas/depot-ops-api/internal/application/analytics"
	"github.com/jhoicas/depot-ops-api/internal/application/auth"
	appcompliance "github.com/jhoicas/depot-ops-api/internal/application/compliance"
	appdepot "github.com/jhoicas/depot-ops-api/internal/application/depot"
	appdepotday "github.com/jhoicas/depot-ops-api/internal/application/depotday"
	appreports "github.com/jhoicas/depot-ops-api/internal/application/reports"
	infraexcel "github.com/jhoicas/depot-ops-api/internal/infrastructure/excel"
	infrapdf "github.com/jhoicas/depot-ops-api/internal/infrastructure/pdf"
	"github.com/jhoicas/depot-ops-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/depot-ops-api/internal/interfaces/http"
	"github.com/jhoicas/depot-ops-api/pkg/config"
	"github.com/jhoicas/depot-ops-api/pkg/logger"
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

	userRepo := postgres.NewUserRepository(pool)
	depotRepo := postgres.NewDepotRepository(pool)
	dayRepo := postgres.NewDayRecordRepository(pool)

	authUC := auth.NewAuthUseCase(userRepo, depotRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	depotUC := appdepot.NewUseCase(depotRepo)
	dayUC := appdepotday.NewUseCase(dayRepo, depotRepo, postgres.NewTxRunner(pool), cfg.Ops.TolerancePct)

	cutoffHour, cutoffMinute := cfg.Ops.CutoffClock()
	complianceUC := appcompliance.NewUseCase(dayRepo, depotRepo, appcompliance.Params{
		CutoffHour:   cutoffHour,
		CutoffMinute: cutoffMinute,
		WindowDays:   cfg.Ops.TrustWindowDays,
		StreakDays:   cfg.Ops.CleanStreakDays,
		TolerancePct: cfg.Ops.TolerancePct,
	})
	dashboardUC := appanalytics.NewDashboardUseCase(dayRepo, depotRepo, cfg.Ops.TolerancePct)

	// Documentos descargables: certificado de cierre (PDF) y conciliación mensual (Excel)
	pdfGenerator := infrapdf.NewMarotoCertificateGenerator()
	xlsxBuilder := infraexcel.NewExcelizeWorkbookBuilder()
	reportsUC := appreports.NewUseCase(dayRepo, depotRepo, pdfGenerator, xlsxBuilder, cfg.Ops.TolerancePct)

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
		Title:    "Depot Ops API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		DepotUC:      depotUC,
		DayUC:        dayUC,
		ComplianceUC: complianceUC,
		DashboardUC:  dashboardUC,
		ReportsUC:    reportsUC,
		JWTSecret:    cfg.JWT.Secret,
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
