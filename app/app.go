// File: app/app.go
package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"echotrace-api/config"
	"echotrace-api/db"
	"echotrace-api/handler"
	"echotrace-api/logger"
	"echotrace-api/repository"
	"echotrace-api/router"
	"echotrace-api/service"
)

func Run() {
	config.LoadConfig(".")
	logger.Init()
	logger.Log.Info("Logger initialized")
	logger.Log.Info("Configuration loaded successfully")

	database, err := db.Connect()
	if err != nil {
		logger.Log.Fatalf("Error connecting to the database: %v", err)
	}
	defer database.Close()

	if err := db.Migrate("file://db/migrations"); err != nil {
		logger.Log.Fatalf("Error running migrations: %v", err)
	}

	redisClient, err := db.ConnectRedis()
	if err != nil {
		logger.Log.Fatalf("Error connecting to Redis: %v", err)
	}
	defer redisClient.Close()

	// --- Wiring All Layers Together ---

	cfg := config.AppConfig

	userRepo := repository.NewUserRepository(database)
	logRepo := repository.NewLogRepository(database)

	authService := service.NewAuthService(
		userRepo,
		cfg.JWT.SecretKey,
		time.Duration(cfg.JWT.AccessTTLHours)*time.Hour,
		time.Duration(cfg.JWT.RefreshTTLHours)*time.Hour,
	)
	userService := service.NewUserService(userRepo, authService)

	fileService, err := service.NewFileService(cfg.Storage.UploadDir)
	if err != nil {
		logger.Log.Fatalf("Error initializing file storage: %v", err)
	}
	logService := service.NewLogService(logRepo, fileService, redisClient)
	reminderService := service.NewReminderService(userRepo, redisClient)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	logHandler := handler.NewLogHandler(logService)
	reminderHandler := handler.NewReminderHandler(reminderService)
	authMiddleware := handler.NewAuthMiddleware(authService, userService, cfg.Server.AllowedOrigin)

	r := router.NewRouter(authMiddleware, authHandler, userHandler, logHandler, reminderHandler, cfg.Storage.UploadDir)

	// Background reminder scheduler, stopped on shutdown.
	schedulerCtx, stopScheduler := context.WithCancel(context.Background())
	defer stopScheduler()
	reminderService.Start(schedulerCtx)

	// --- Start the Server with Graceful Shutdown ---
	port := cfg.Server.Port
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		logger.Log.Infof("Server starting on port :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Warn("Shutdown signal received. Starting graceful shutdown...")
	stopScheduler()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Log.Info("Server exited properly")
}
