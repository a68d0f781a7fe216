// Package main runs the video summary HTTP server with graceful shutdown.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/vidbrief/backend/config"
	"github.com/vidbrief/backend/internal/llm"
	"github.com/vidbrief/backend/internal/middleware"
	"github.com/vidbrief/backend/internal/session"
	"github.com/vidbrief/backend/internal/summaries"
	"github.com/vidbrief/backend/internal/transcript"
	"github.com/vidbrief/backend/internal/worker"
	"github.com/vidbrief/backend/internal/youtube"
	redispkg "github.com/vidbrief/backend/pkg/redis"
	"github.com/vidbrief/backend/pkg/render"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()

	// Unknown provider names die here, not on the first request.
	provider, err := llm.New(cfg.LLM, cfg.TestMode)
	if err != nil {
		logger.Fatal("llm provider", zap.Error(err))
	}

	sessionTTL := time.Duration(cfg.Session.TTLMinutes) * time.Minute
	var sessions session.Store
	var rdb *redispkg.Client
	if cfg.TestMode {
		sessions = session.NewMemoryStore(sessionTTL)
		logger.Info("test mode: canned llm backend, in-memory sessions")
	} else {
		rdb, err = redispkg.NewClient(ctx, cfg.Redis, logger)
		if err != nil {
			logger.Fatal("redis", zap.Error(err))
		}
		defer rdb.Close()
		sessions = session.NewRedisStore(rdb.Client, sessionTTL)
	}

	yt, err := youtube.NewClient(ctx, cfg.YouTube, logger)
	if err != nil {
		logger.Fatal("youtube client", zap.Error(err))
	}

	pipeline := transcript.NewPipeline(yt, yt, provider, logger)
	handler := summaries.NewHandler(pipeline, yt, provider, sessions, logger, cfg.TestMode)

	router := gin.New()
	router.LoadHTMLGlob(cfg.Server.TemplateGlob)
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("panic recovered", zap.Any("panic", recovered))
		render.Internal(c)
		c.Abort()
	}))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.GlobalRateLimit(cfg.RateLimit.GlobalRPS, cfg.RateLimit.GlobalBurst))

	router.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	router.GET("/", handler.Home)
	router.POST("/ask", handler.Ask)

	// The summarize endpoint is the expensive one (downloads plus model
	// calls); it gets a stricter per-caller limit under the global one.
	summarize := []gin.HandlerFunc{}
	if rdb != nil {
		counter := middleware.RedisCounter{Client: rdb.Client}
		summarize = append(summarize, middleware.PerCallerRateLimit(counter, cfg.RateLimit.SummarizePerMinute, time.Minute, logger))
	}
	summarize = append(summarize, handler.Summarize)
	router.POST("/summarize", summarize...)

	router.NoRoute(func(c *gin.Context) { render.NotFound(c) })

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	janitorCtx, janitorCancel := context.WithCancel(context.Background())
	defer janitorCancel()
	janitor := worker.NewJanitor(
		cfg.YouTube.AudioDir,
		time.Duration(cfg.Janitor.MaxAgeMin)*time.Minute,
		time.Duration(cfg.Janitor.SweepIntervalMin)*time.Minute,
		logger,
	)
	go janitor.Run(janitorCtx)

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port), zap.String("provider", cfg.LLM.Provider))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	janitorCancel()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
