package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/learnhub/course-platform/internal/api"
	"github.com/learnhub/course-platform/internal/core/ports"
	"github.com/learnhub/course-platform/internal/core/service"
	"github.com/learnhub/course-platform/internal/infrastructure/config"
	"github.com/learnhub/course-platform/internal/infrastructure/db/memory"
	"github.com/learnhub/course-platform/internal/infrastructure/db/mysql"
	"github.com/learnhub/course-platform/internal/infrastructure/db/redis"
	"github.com/learnhub/course-platform/internal/infrastructure/db/seed"
	"github.com/learnhub/course-platform/pkg/logger"
)

const tokenTTL = 24 * time.Hour

// @title LearnHub Course Platform API
// @version 1.0
// @description Course marketplace: catalog, enrollments, lesson progress and reviews.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and a JWT obtained from /auth/login.
func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logg := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.IsDevelopment(),
	})

	logg.Info().
		Str("env", cfg.Env).
		Str("storage", cfg.StorageDriver).
		Msg("starting course platform API")

	repos, db, err := buildRepositories(cfg, logg)
	if err != nil {
		logg.Fatal().Err(err).Msg("storage initialisation failed")
	}
	if db != nil {
		defer db.Close()
	}

	err = seed.Demo(ctx, seed.Repos{
		Users:      repos.users,
		Categories: repos.categories,
		Courses:    repos.courses,
		Sections:   repos.sections,
		Lessons:    repos.lessons,
	})
	if err != nil {
		logg.Fatal().Err(err).Msg("demo seed failed")
	}

	var (
		rdb   *goredis.Client
		cache service.CourseCache
	)
	if cfg.Redis.Addr != "" {
		rdb, err = redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			logg.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis connection failed")
		}
		defer rdb.Close()
		cache = redis.NewCourseCache(rdb)
		logg.Info().Str("addr", cfg.Redis.Addr).Msg("course cache enabled")
	}

	e := api.NewRouter(api.Dependencies{
		Auth:        service.NewAuthService(repos.users, cfg.JWTSecret, tokenTTL),
		Users:       service.NewUserService(repos.users),
		Catalog:     service.NewCatalogService(repos.categories, repos.courses, repos.sections, repos.lessons, cache, logg),
		Enrollments: service.NewEnrollmentService(repos.enrollments, repos.courses, repos.sections, repos.lessons, logg),
		Reviews:     service.NewReviewService(repos.reviews, repos.enrollments, repos.courses, repos.users),
		DB:          db,
		Redis:       rdb,
		JWTSecret:   cfg.JWTSecret,
		Log:         logg,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Fatal().Err(err).Msg("server failed")
		}
	}()
	logg.Info().Str("port", cfg.Port).Msg("listening")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logg.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logg.Error().Err(err).Msg("forced shutdown")
	}

	logg.Info().Msg("server exited")
}

type repositories struct {
	users       ports.UserRepository
	categories  ports.CategoryRepository
	courses     ports.CourseRepository
	sections    ports.SectionRepository
	lessons     ports.LessonRepository
	enrollments ports.EnrollmentRepository
	reviews     ports.ReviewRepository
}

// buildRepositories wires the repository set for the configured storage
// driver. The returned *sql.DB is nil for the memory driver.
func buildRepositories(cfg *config.Config, logg zerolog.Logger) (*repositories, *sql.DB, error) {
	switch cfg.StorageDriver {
	case "mysql":
		db, err := mysql.Connect(cfg.MySQL.DSN)
		if err != nil {
			return nil, nil, err
		}
		if err := mysql.RunMigrations(db); err != nil {
			db.Close()
			return nil, nil, err
		}
		logg.Info().Msg("mysql storage ready")
		return &repositories{
			users:       mysql.NewUserRepository(db),
			categories:  mysql.NewCategoryRepository(db),
			courses:     mysql.NewCourseRepository(db),
			sections:    mysql.NewSectionRepository(db),
			lessons:     mysql.NewLessonRepository(db),
			enrollments: mysql.NewEnrollmentRepository(db),
			reviews:     mysql.NewReviewRepository(db),
		}, db, nil

	case "memory":
		store := memory.NewStore()
		logg.Info().Msg("in-memory storage ready")
		return &repositories{
			users:       store.Users(),
			categories:  store.Categories(),
			courses:     store.Courses(),
			sections:    store.Sections(),
			lessons:     store.Lessons(),
			enrollments: store.Enrollments(),
			reviews:     store.Reviews(),
		}, nil, nil

	default:
		return nil, nil, errors.New("unknown STORAGE_DRIVER: " + cfg.StorageDriver)
	}
}
