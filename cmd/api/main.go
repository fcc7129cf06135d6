package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/litera-id/litera-backend/api/routes"
	achievementsvc "github.com/litera-id/litera-backend/internal/achievements"
	authsvc "github.com/litera-id/litera-backend/internal/auth"
	booksvc "github.com/litera-id/litera-backend/internal/books"
	inventorysvc "github.com/litera-id/litera-backend/internal/inventory"
	loansvc "github.com/litera-id/litera-backend/internal/loans"
	usersvc "github.com/litera-id/litera-backend/internal/users"
	"github.com/litera-id/litera-backend/pkg/config"
	"github.com/litera-id/litera-backend/pkg/db"
	"github.com/litera-id/litera-backend/pkg/logger"
	"github.com/litera-id/litera-backend/pkg/migrate"
	"github.com/litera-id/litera-backend/pkg/redis"
	"github.com/litera-id/litera-backend/pkg/storage"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	store, err := storage.New(cfg.Storage)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap storage", err)
		os.Exit(1)
	}

	userRepo := usersvc.NewRepository(dbClient.DB())

	authService, err := authsvc.NewService(authsvc.ServiceParams{
		UserRepo:       userRepo,
		Store:          store,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	bookService, err := booksvc.NewService(booksvc.NewRepository(dbClient.DB()), store)
	if err != nil {
		logg.Error(context.Background(), "failed to create book service", err)
		os.Exit(1)
	}

	loanService, err := loansvc.NewService(loansvc.NewRepository(dbClient.DB()), dbClient, cfg.Loans)
	if err != nil {
		logg.Error(context.Background(), "failed to create loan service", err)
		os.Exit(1)
	}

	achievementService, err := achievementsvc.NewService(achievementsvc.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create achievement service", err)
		os.Exit(1)
	}

	inventoryService, err := inventorysvc.NewService(inventorysvc.NewRepository(dbClient.DB()), dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create inventory service", err)
		os.Exit(1)
	}

	userService, err := usersvc.NewService(userRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create user service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, routes.Services{
			Auth:         authService,
			Books:        bookService,
			Loans:        loanService,
			Achievements: achievementService,
			Inventory:    inventoryService,
			Users:        userService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
