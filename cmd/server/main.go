package main

import (
	"log"
	"net/http"
	"os"

	_ "subhub/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"subhub/internal/auth"
	"subhub/internal/config"
	"subhub/internal/db"
	"subhub/internal/handler"
	"subhub/internal/model"
	"subhub/internal/repository"
	"subhub/internal/router"
	"subhub/internal/service"
)

// @title Subscription Service Management API
// @version 1.0
// @description CRUD backend for subscription-service management: accounts, service catalog, enrollments, and archives.
// @host localhost:8081
// @schemes http
// @securityDefinitions.apikey SessionCookie
// @in cookie
// @name token
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
			&model.Archive{},
			&model.Enrollment{},
			&model.Plan{},
			&model.Service{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Service{},
		&model.Plan{},
		&model.Enrollment{},
		&model.Archive{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	store := repository.NewStore(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)

	// Initialize services
	authService := service.NewAuthService(store, jwtService)
	catalogService := service.NewCatalogService(store)
	enrollmentService := service.NewEnrollmentService(store)
	archiveService := service.NewArchiveService(store)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, cfg.SessionCookie)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	enrollmentHandler := handler.NewEnrollmentHandler(enrollmentService)
	archiveHandler := handler.NewArchiveHandler(archiveService)

	// Register routes
	router.Register(
		e,
		cfg,
		jwtService,
		authService,
		authHandler,
		catalogHandler,
		enrollmentHandler,
		archiveHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
