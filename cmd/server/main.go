package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"shopfront/internal/config"
	apphttp "shopfront/internal/http"
	"shopfront/internal/repository/sqlite"
	"shopfront/internal/service"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	if strings.TrimSpace(cfg.Auth.SessionSecret) == "" {
		logger.Fatalf("auth session secret is required")
	}
	if strings.TrimSpace(cfg.Database.Path) == "" {
		logger.Fatalf("database path is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	categoryRepo := sqlite.NewCategoryRepository(db)
	userRepo := sqlite.NewUserRepository(db)

	if err := categoryRepo.Init(ctx); err != nil {
		logger.Fatalf("init category repository: %v", err)
	}
	if err := userRepo.Init(ctx); err != nil {
		logger.Fatalf("init user repository: %v", err)
	}

	secret := []byte(cfg.Auth.SessionSecret)
	sessionTTL := time.Duration(cfg.Auth.SessionTTLHours) * time.Hour

	authService := service.NewAuthService(userRepo, secret, sessionTTL)
	categoryService := service.NewCategoryService(categoryRepo, userRepo)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler := apphttp.NewHandler(authService, categoryService, secret, sessionTTL, logger)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
}
