package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/danielgtaylor/huma/v2/humacli"

	"github.com/delordemm1/learnhub-api/internal/cache"
	"github.com/delordemm1/learnhub-api/internal/config"
	"github.com/delordemm1/learnhub-api/internal/database"
	"github.com/delordemm1/learnhub-api/internal/modules/blog"
	"github.com/delordemm1/learnhub-api/internal/modules/user"
	"github.com/delordemm1/learnhub-api/internal/notification"
	"github.com/delordemm1/learnhub-api/internal/notification/templates"
	"github.com/delordemm1/learnhub-api/internal/ratelimit"
	"github.com/delordemm1/learnhub-api/internal/server"
	"github.com/delordemm1/learnhub-api/internal/session"
	"github.com/delordemm1/learnhub-api/internal/signedurl"
)

// Options for the CLI.
type Options struct {
	Port int `help:"Port to listen on" short:"p" default:"8080"`
}

func main() {
	cli := humacli.New(func(hooks humacli.Hooks, options *Options) {
		// Use a structured logger
		logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
		cfg := config.Load()
		if cfg == nil {
			logger.Error("failed to load configuration")
			os.Exit(1)
		}
		logger.Info("configuration loaded successfully", "env", cfg.Server.Env)

		// --- Database & Cache ---
		dbPool := database.NewPostgresPool(cfg.Database.URL)
		if dbPool == nil {
			logger.Error("failed to connect to postgres")
			os.Exit(1)
		}
		hooks.OnStop(dbPool.Close)
		logger.Info("successfully connected to postgres database")
		redisClient := cache.NewRedisClient(cfg.Redis.URL)
		if redisClient == nil {
			logger.Error("failed to connect to redis")
			os.Exit(1)
		}
		hooks.OnStop(func() { redisClient.Close() })
		logger.Info("successfully connected to redis")

		// --- Shared Infrastructure ---
		sessions := session.NewPostgresProvider(dbPool, session.Config{})
		templateEngine := templates.NewEngine(templates.Config{}, logger)
		emailSender := notification.NewSMTPEmailSender(
			cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From, logger)
		notifier := notification.NewService(logger, templateEngine, emailSender)
		codec := signedurl.New(
			cfg.App.Key,
			cfg.App.URL+"/email/verify",
			time.Duration(cfg.Verification.ExpireMinutes)*time.Minute,
		)
		limiter := ratelimit.New(redisClient, "throttle", 10, time.Minute, logger)

		// --- Module Initialization (Bottom-Up) ---

		// User Module
		userRepo := user.NewRepository(dbPool)
		userService := user.NewService(&user.Config{
			Repo:     userRepo,
			Sessions: sessions,
			Notifier: notifier,
			Codec:    codec,
			Logger:   logger,
			Config:   cfg,
		})
		userHandler := user.NewHandler(userService, logger, sessions, limiter)

		// Blog Module
		blogRepo := blog.NewRepository(dbPool)
		blogService := blog.NewService(blog.Config{
			Repo:   blogRepo,
			Users:  userRepo,
			Views:  blog.NewViewDeduper(redisClient),
			Logger: logger,
		})
		blogHandler := blog.NewHandler(blogService, logger, sessions, limiter)

		router := server.New(cfg, logger, userHandler, blogHandler)
		hooks.OnStart(func() {
			logger.Info(fmt.Sprintf("Starting server on port %d...", options.Port))
			if err := http.ListenAndServe(fmt.Sprintf(":%d", options.Port), router); err != nil {
				slog.Error("Server failed to start", "error", err)
				os.Exit(1)
			}
		})
	})
	cli.Run()
}
