package api

import (
	"database/sql"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/learnhub/course-platform/internal/api/handler"
	"github.com/learnhub/course-platform/internal/api/middleware"
	"github.com/learnhub/course-platform/internal/core/domain"
	"github.com/learnhub/course-platform/internal/core/ports"
)

// Dependencies carries everything the router needs. DB and Redis may be nil
// (memory storage, cache disabled); the readiness probe skips absent ones.
type Dependencies struct {
	Auth        ports.AuthService
	Users       ports.UserService
	Catalog     ports.CatalogService
	Enrollments ports.EnrollmentService
	Reviews     ports.ReviewService

	DB        *sql.DB
	Redis     *redis.Client
	JWTSecret string
	Log       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())

	// The HTTP collectors live in a router-scoped registry so building a
	// second router in the same process cannot double-register them. The
	// default registry still carries the platform counters and is gathered
	// alongside for /metrics.
	promRegistry := prometheus.NewRegistry()
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "learnhub",
		Registerer: promRegistry,
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	adminHandler := handler.NewAdminHandler(deps.Users)
	categoryHandler := handler.NewCategoryHandler(deps.Catalog)
	courseHandler := handler.NewCourseHandler(deps.Catalog)
	sectionHandler := handler.NewSectionHandler(deps.Catalog)
	lessonHandler := handler.NewLessonHandler(deps.Catalog)
	enrollmentHandler := handler.NewEnrollmentHandler(deps.Enrollments)
	reviewHandler := handler.NewReviewHandler(deps.Reviews)

	authRequired := middleware.Auth(deps.JWTSecret)
	instructorOnly := middleware.RBAC(domain.RoleInstructor, domain.RoleAdmin)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Health probes and operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.DB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: prometheus.Gatherers{promRegistry, prometheus.DefaultGatherer}}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Public catalog ---
	api := e.Group("/api")
	api.GET("/categories", categoryHandler.List)
	api.GET("/categories/:slug", categoryHandler.GetBySlug)
	api.GET("/courses", courseHandler.List)
	api.GET("/courses/:slug", courseHandler.GetBySlug)
	api.GET("/courses/:courseId/sections", sectionHandler.ListByCourse)
	api.GET("/courses/:courseId/reviews", reviewHandler.ListByCourse)
	api.GET("/sections/:sectionId/lessons", lessonHandler.ListBySection)

	// --- Catalog management (instructor / admin; ownership enforced in the service) ---
	api.POST("/categories", categoryHandler.Create, authRequired, adminOnly)
	api.POST("/courses", courseHandler.Create, authRequired, instructorOnly)
	api.PUT("/courses/:id", courseHandler.Update, authRequired, instructorOnly)
	api.DELETE("/courses/:id", courseHandler.Delete, authRequired, instructorOnly)
	api.POST("/sections", sectionHandler.Create, authRequired, instructorOnly)
	api.PUT("/sections/:id", sectionHandler.Update, authRequired, instructorOnly)
	api.DELETE("/sections/:id", sectionHandler.Delete, authRequired, instructorOnly)
	api.POST("/lessons", lessonHandler.Create, authRequired, instructorOnly)
	api.PUT("/lessons/:id", lessonHandler.Update, authRequired, instructorOnly)
	api.DELETE("/lessons/:id", lessonHandler.Delete, authRequired, instructorOnly)

	// --- Learner operations ---
	api.POST("/enrollments", enrollmentHandler.Enroll, authRequired)
	api.GET("/user/enrollments", enrollmentHandler.ListMine, authRequired)
	api.PUT("/enrollments/:courseId/progress", enrollmentHandler.MarkProgress, authRequired)
	api.POST("/reviews", reviewHandler.Create, authRequired)

	// --- Admin ---
	api.GET("/admin/users", adminHandler.ListUsers, authRequired, adminOnly)
	api.PUT("/admin/users/:id", adminHandler.UpdateUserRoles, authRequired, adminOnly)

	return e
}
