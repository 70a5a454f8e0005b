package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blogapi/internal/config"
	"github.com/blogapi/internal/db"
	"github.com/blogapi/internal/logger"
	"github.com/blogapi/internal/router"
	"github.com/gin-gonic/gin"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		logger.New("").Warn("failed to read .env file", "error", err)
	}

	cfg := config.Load()
	log := logger.New(cfg.Env)
	gin.SetMode(cfg.GinMode)

	gormLevel := gormlogger.Warn
	if cfg.IsProduction() {
		gormLevel = gormlogger.Error
	}

	// 初始化数据库，不可达时直接退出
	gdb, err := db.Open(cfg.DatabaseURL, gormlogger.Default.LogMode(gormLevel))
	if err != nil {
		log.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(gdb); err != nil {
			log.Error("failed to close database", "error", err)
		}
	}()
	log.Info("database connected")

	r := router.SetupRouter(gdb, router.Options{
		Logger:       log,
		CORSOrigins:  cfg.CORSOrigins,
		ExposeErrors: !cfg.IsProduction(),
	})

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server is running", "addr", cfg.ListenAddr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to run server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}
}
