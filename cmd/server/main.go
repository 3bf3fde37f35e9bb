package main

import (
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	_ "contactbook/docs" // swagger docs

	"contactbook/internal/auth"
	"contactbook/internal/cache"
	"contactbook/internal/config"
	"contactbook/internal/db"
	"contactbook/internal/handler"
	"contactbook/internal/logger"
	"contactbook/internal/model"
	"contactbook/internal/repository"
	"contactbook/internal/router"
	"contactbook/internal/service"
)

// @title Contact Book API
// @version 1.0
// @description Personal contact book with token authentication, contacts and nested addresses.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey TokenAuth
// @in header
// @name Authorization
// @description Raw session token obtained from POST /users/login.
func main() {
	logger.Init()
	cfg := config.Load()

	e := echo.New()
	e.HideBanner = true

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("database init")
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Info().Msg("RESET_DB=true detected, dropping all tables")
		tables := []interface{}{
			&model.Address{},
			&model.Contact{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Warn().Err(err).Msg("drop table (may not exist)")
			}
		}
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Contact{},
		&model.Address{},
	); err != nil {
		log.Fatal().Err(err).Msg("auto-migrate")
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	contactRepo := repository.NewContactRepository(gormDB)
	addressRepo := repository.NewAddressRepository(gormDB)

	// Initialize services
	userService := service.NewUserService(userRepo, tokenStore)
	contactService := service.NewContactService(contactRepo)
	addressService := service.NewAddressService(contactRepo, addressRepo)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userService)
	contactHandler := handler.NewContactHandler(contactService)
	addressHandler := handler.NewAddressHandler(addressService)

	// Register routes
	router.Register(
		e,
		userRepo,
		tokenStore,
		userHandler,
		contactHandler,
		addressHandler,
	)

	addr := ":" + cfg.ServerPort
	log.Info().Str("addr", addr).Msg("starting server")
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server start")
	}
}
