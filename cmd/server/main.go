package main // Entry point package

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/dmelikov/user-auth-api/internal/auth"
	"github.com/dmelikov/user-auth-api/internal/config"
	"github.com/dmelikov/user-auth-api/internal/database"
	"github.com/dmelikov/user-auth-api/internal/handler"
	"github.com/dmelikov/user-auth-api/internal/logger"
	"github.com/dmelikov/user-auth-api/internal/queue"
	"github.com/dmelikov/user-auth-api/internal/repository"
	"github.com/dmelikov/user-auth-api/internal/router"
	"github.com/dmelikov/user-auth-api/internal/utils"
)

func main() {
	// .env is optional; use standard log until slog is configured.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file loaded:", err)
	}

	cfg := config.Load()

	logg := logger.New(cfg.Env)
	slog.SetDefault(logg)

	// Startup failures are fatal aborts here, separated from the
	// per-request error funnel on the Echo instance.
	users, err := openStore(cfg)
	if err != nil {
		logg.Error("failed to open user store",
			slog.String("driver", cfg.StoreDriver), slog.Any("error", err))
		os.Exit(1)
	}
	defer func() { _ = users.Close() }()

	tokens := utils.NewTokenCodec(cfg.JWTSecret, time.Duration(cfg.TokenTTLMin)*time.Minute)
	resolver := &auth.Resolver{Tokens: tokens, Users: users}
	authHandler := handler.NewAuthHandler(users, tokens, cfg.BcryptCost, cfg.AMQPURL)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = handler.HTTPErrorHandler(logg)
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.CORS())

	router.RegisterRoutes(e)
	router.RegisterUserRoutes(e, authHandler, resolver)

	if cfg.AMQPURL != "" {
		go queue.StartAuthConsumer(cfg.AMQPURL)
	}

	addr := ":" + cfg.Port
	logg.Info("listening", slog.String("addr", addr),
		slog.String("env", cfg.Env), slog.String("store", cfg.StoreDriver))
	if err := e.Start(addr); err != nil {
		logg.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

// openStore builds the user store selected by STORE_DRIVER.
func openStore(cfg config.Config) (repository.UserStore, error) {
	switch cfg.StoreDriver {
	case config.StoreMySQL:
		db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		if err != nil {
			return nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return repository.NewMySQLStore(ctx, db)
	case config.StoreRedis:
		rdb, err := config.NewRedisClient()
		if err != nil {
			return nil, err
		}
		return repository.NewRedisStore(rdb), nil
	default:
		return repository.NewFileStore(cfg.UsersFile)
	}
}
