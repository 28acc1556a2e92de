package main

import (
	"log"
	"net/http"
	"os"

	_ "usermetrics/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"usermetrics/internal/auth"
	"usermetrics/internal/cache"
	"usermetrics/internal/config"
	"usermetrics/internal/db"
	"usermetrics/internal/handler"
	"usermetrics/internal/metrics"
	"usermetrics/internal/model"
	"usermetrics/internal/repository"
	"usermetrics/internal/router"
	"usermetrics/internal/service"
)

// @title User Metrics API
// @version 1.0
// @description User directory with role-based access, activity logging and PDF activity reports.
// @host localhost:8080
// @BasePath /api
// @schemes http
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.UserActivitySummary{},
			&model.UserActivity{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Idempotent schema migration for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.UserActivity{},
		&model.UserActivitySummary{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	metrics.Register()

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	activityRepo := repository.NewActivityRepository(gormDB)

	// Initialize services
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	userService := service.NewUserService(userRepo, cacheClient, cfg.DefaultPassword)
	activityService := service.NewActivityService(userRepo, activityRepo)
	authService := service.NewAuthService(userRepo, activityService, jwtService)
	reportService := service.NewReportService(userRepo, activityRepo)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userService)
	activityHandler := handler.NewActivityHandler(activityService)
	reportHandler := handler.NewReportHandler(reportService)
	authHandler := handler.NewAuthHandler(authService)

	// Register routes
	router.Register(
		e,
		jwtService,
		userHandler,
		activityHandler,
		reportHandler,
		authHandler,
	)

	if cfg.SwaggerHost != "" {
		log.Printf("Swagger documentation available at: %s/swagger/index.html", cfg.SwaggerHost)
	} else {
		log.Printf("Swagger documentation available at: http://localhost:%s/swagger/index.html", cfg.ServerPort)
	}

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
