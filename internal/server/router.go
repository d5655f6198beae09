// Package server assembles the HTTP surface of the portal.
package server

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-portal-api/internal/guard"
	"github.com/noah-isme/campus-portal-api/internal/handler"
	"github.com/noah-isme/campus-portal-api/internal/middleware"
	"github.com/noah-isme/campus-portal-api/internal/models"
	"github.com/noah-isme/campus-portal-api/internal/service"
	"github.com/noah-isme/campus-portal-api/internal/session"
	"github.com/noah-isme/campus-portal-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/campus-portal-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/campus-portal-api/pkg/middleware/requestid"
)

// Handlers groups the HTTP handlers mounted by NewRouter.
type Handlers struct {
	Auth         *handler.AuthHandler
	Dashboard    *handler.DashboardHandler
	Course       *handler.CourseHandler
	Student      *handler.StudentHandler
	Registration *handler.RegistrationHandler
	Result       *handler.ResultHandler
	Profile      *handler.ProfileHandler
	Health       *handler.HealthHandler
}

// RouterDeps carries everything NewRouter needs.
type RouterDeps struct {
	Logger         *zap.Logger
	Metrics        *service.MetricsService
	Sessions       *session.Manager
	Signer         *session.CookieSigner
	SessionOptions middleware.SessionOptions
	AllowedOrigins []string
	EnableDocs     bool
	EnableMetrics  bool
	Handlers       Handlers
}

// NewRouter builds the gin engine: probes and docs are public, everything else runs with a
// client session and the role subtrees sit behind the route guard.
func NewRouter(d RouterDeps) *gin.Engine {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	h := d.Handlers

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(d.Logger))
	r.Use(corsmiddleware.New(d.AllowedOrigins))
	r.Use(middleware.Metrics(d.Metrics))

	r.GET("/health", h.Health.Health)
	r.GET("/ready", h.Health.Ready)
	if d.EnableMetrics {
		r.GET("/metrics", h.Health.Prometheus)
	}
	if d.EnableDocs {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	withSession := middleware.Session(d.Sessions, d.Signer, d.Metrics, d.SessionOptions, d.Logger)
	landing := func(c *gin.Context) {
		middleware.Apply(c, guard.Landing(middleware.CurrentSession(c)))
	}

	app := r.Group("", withSession)
	app.GET("/", landing)

	auth := app.Group("/auth")
	{
		auth.GET("/login", h.Auth.LoginPage)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/logout", h.Auth.Logout)
		auth.GET("/session", h.Auth.Session)
	}

	admin := app.Group("/admin", middleware.RequireRole(models.RoleAdmin))
	{
		admin.GET("/dashboard", h.Dashboard.Admin)

		admin.GET("/courses", h.Course.List)
		admin.POST("/courses", h.Course.Create)
		admin.GET("/courses/new", h.Course.NewForm)
		admin.GET("/courses/:id", h.Course.Get)
		admin.GET("/courses/:id/edit", h.Course.EditForm)
		admin.PUT("/courses/:id", h.Course.Update)
		admin.DELETE("/courses/:id", h.Course.Delete)

		admin.GET("/students", h.Student.List)
		admin.GET("/students/:id", h.Student.Detail)
		admin.GET("/students/:id/transcript.pdf", h.Student.Transcript)
		admin.POST("/students/:id/suspend", h.Student.Suspend)
		admin.POST("/students/:id/activate", h.Student.Activate)
		admin.DELETE("/students/:id", h.Student.Delete)

		admin.GET("/registrations", h.Registration.List)
		admin.GET("/registrations/export", h.Registration.Export)
		admin.GET("/registrations/:id", h.Registration.Get)
		admin.POST("/registrations/:id/approve", h.Registration.Approve)
		admin.POST("/registrations/:id/reject", h.Registration.Reject)
		admin.POST("/registrations/:id/cancel", h.Registration.Cancel)

		admin.GET("/results", h.Result.List)
		admin.GET("/results/export", h.Result.Export)
		admin.PUT("/results/:studentId/:courseId", h.Result.SaveGrade)
	}

	student := app.Group("/student", middleware.RequireRole(models.RoleStudent))
	{
		student.GET("/dashboard", h.Dashboard.Student)
		student.GET("/courses", h.Course.Browse)
		student.POST("/courses/:id/register", h.Registration.Register)
		student.GET("/registrations", h.Registration.Mine)
		student.DELETE("/registrations/:courseId", h.Registration.Drop)
		student.GET("/results", h.Result.Mine)
		student.GET("/profile", h.Profile.Get)
		student.PUT("/profile", h.Profile.Update)
		student.POST("/profile/password", h.Profile.ChangePassword)
	}

	r.NoRoute(withSession, landing)

	return r
}
