package main

import (
	"log"
	"net/http"
	"os"

	_ "fitcloset/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"fitcloset/internal/auth"
	"fitcloset/internal/cache"
	"fitcloset/internal/config"
	"fitcloset/internal/db"
	"fitcloset/internal/handler"
	"fitcloset/internal/model"
	"fitcloset/internal/repository"
	"fitcloset/internal/router"
	"fitcloset/internal/service"
)

// @title Avatar Setup Backend API
// @version 1.0
// @description REST backend for user authentication, avatar profiles and a garment catalog.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
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
			&model.AvatarGarment{},
			&model.BodyMeasurement{},
			&model.Avatar{},
			&model.Garment{},
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
		&model.Garment{},
		&model.Avatar{},
		&model.BodyMeasurement{},
		&model.AvatarGarment{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	avatarRepo := repository.NewAvatarRepository(gormDB)
	measurementRepo := repository.NewBodyMeasurementRepository(gormDB)
	wardrobeRepo := repository.NewAvatarGarmentRepository(gormDB)
	garmentRepo := repository.NewGarmentRepository(gormDB)
	txManager := repository.NewTxManager(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService)
	avatarService := service.NewAvatarService(avatarRepo, measurementRepo, wardrobeRepo, txManager)
	garmentService := service.NewGarmentService(garmentRepo, cacheClient)

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(gormDB)
	authHandler := handler.NewAuthHandler(authService)
	avatarHandler := handler.NewAvatarHandler(avatarService)
	garmentHandler := handler.NewGarmentHandler(garmentService)

	// Register routes
	router.Register(
		e,
		cfg,
		jwtService,
		healthHandler,
		authHandler,
		avatarHandler,
		garmentHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
