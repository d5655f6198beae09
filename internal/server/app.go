package server

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-portal-api/internal/handler"
	"github.com/noah-isme/campus-portal-api/internal/middleware"
	"github.com/noah-isme/campus-portal-api/internal/repository"
	"github.com/noah-isme/campus-portal-api/internal/service"
	"github.com/noah-isme/campus-portal-api/internal/session"
	"github.com/noah-isme/campus-portal-api/pkg/config"
)

// AppDeps are the long lived resources the application is built on.
type AppDeps struct {
	Config         *config.Config
	Logger         *zap.Logger
	Catalog        *repository.CatalogRepository
	SessionBackend session.Backend
	Ready          map[string]handler.Pinger
}

// App is the wired application.
type App struct {
	Router   *gin.Engine
	Metrics  *service.MetricsService
	Activity *service.ActivityService
	Sessions *session.Manager
}

// NewApp wires services and handlers over the catalog and returns the router.
func NewApp(d AppDeps) (*App, error) {
	cfg := d.Config
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	metrics := service.NewMetricsService()
	activity := service.NewActivityService(repository.NewActivityRepository(cfg.Activity.Capacity), metrics, logger.Named("activity"))
	validate := service.NewValidator()
	semester := cfg.Portal.DefaultSemester

	authSvc := service.NewAuthService(repository.NewUserDirectory(), activity, metrics, cfg.Latency.Login, logger.Named("auth"))
	courseSvc := service.NewCourseService(d.Catalog, validate, activity, cfg.Latency.Save, logger.Named("course"))
	studentSvc := service.NewStudentService(d.Catalog, activity, logger.Named("student"))
	registrationSvc := service.NewRegistrationService(d.Catalog, activity, metrics, semester, logger.Named("registration"))
	resultSvc := service.NewResultService(d.Catalog, activity, metrics, semester, cfg.Latency.Save, logger.Named("result"))
	dashboardSvc := service.NewDashboardService(d.Catalog, activity)
	exportSvc := service.NewExportService(registrationSvc, resultSvc, studentSvc, nil, nil, logger.Named("export"))
	profileSvc, err := service.NewProfileService(d.Catalog, cfg.Portal.DemoPassword, validate, logger.Named("profile"))
	if err != nil {
		return nil, err
	}

	sessions := session.NewManager(d.SessionBackend, logger.Named("session"),
		session.WithIdleTTL(cfg.Session.IdleTTL),
		session.WithMaxStores(cfg.Session.MaxClients),
	)
	pageSize := cfg.Portal.TablePageSize

	router := NewRouter(RouterDeps{
		Logger:   logger,
		Metrics:  metrics,
		Sessions: sessions,
		Signer:   session.NewCookieSigner(cfg.Session.CookieSecret, cfg.Session.CookieTTL),
		SessionOptions: middleware.SessionOptions{
			CookieName: cfg.Session.CookieName,
			Secure:     cfg.Env == config.EnvProduction,
		},
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		EnableDocs:     cfg.Env != config.EnvProduction,
		EnableMetrics:  cfg.Metrics.Enabled,
		Handlers: Handlers{
			Auth:         handler.NewAuthHandler(authSvc),
			Dashboard:    handler.NewDashboardHandler(dashboardSvc),
			Course:       handler.NewCourseHandler(courseSvc, pageSize),
			Student:      handler.NewStudentHandler(studentSvc, exportSvc, pageSize),
			Registration: handler.NewRegistrationHandler(registrationSvc, exportSvc, pageSize),
			Result:       handler.NewResultHandler(resultSvc, exportSvc, pageSize),
			Profile:      handler.NewProfileHandler(profileSvc),
			Health:       handler.NewHealthHandler(metrics, d.Ready, logger.Named("health")),
		},
	})

	return &App{Router: router, Metrics: metrics, Activity: activity, Sessions: sessions}, nil
}

// Start launches background workers.
func (a *App) Start(ctx context.Context, cfg *config.Config) {
	a.Activity.Start(ctx, cfg.Activity.Workers, cfg.Activity.Buffer)
}

// Stop flushes background workers.
func (a *App) Stop() {
	a.Activity.Stop()
}
