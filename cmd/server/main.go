// Package main runs the club API HTTP server with graceful shutdown.
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

	"github.com/hamishnash1-tech/City-Uni-Club/config"
	"github.com/hamishnash1-tech/City-Uni-Club/internal/auth"
	"github.com/hamishnash1-tech/City-Uni-Club/internal/dining"
	"github.com/hamishnash1-tech/City-Uni-Club/internal/emaillogs"
	"github.com/hamishnash1-tech/City-Uni-Club/internal/events"
	"github.com/hamishnash1-tech/City-Uni-Club/internal/members"
	"github.com/hamishnash1-tech/City-Uni-Club/internal/middleware"
	"github.com/hamishnash1-tech/City-Uni-Club/internal/models"
	"github.com/hamishnash1-tech/City-Uni-Club/internal/news"
	"github.com/hamishnash1-tech/City-Uni-Club/internal/reciprocal"
	"github.com/hamishnash1-tech/City-Uni-Club/pkg/database"
	"github.com/hamishnash1-tech/City-Uni-Club/pkg/queue"
	"github.com/hamishnash1-tech/City-Uni-Club/pkg/redis"
	"github.com/hamishnash1-tech/City-Uni-Club/pkg/response"
)

const limiterCleanupInterval = time.Minute

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool, logger); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
	if err != nil {
		logger.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()
	jobQueue := queue.NewQueue(rdb.Client, logger)

	// Auth
	authRepo := auth.NewRepository(pool)
	authn := auth.NewAuthenticator(authRepo, logger)
	authSvc := auth.NewService(authRepo, jobQueue, auth.Options{
		SessionTTL: cfg.Session.TTL(),
		ResetTTL:   cfg.Session.ResetTTL(),
	}, logger)
	authHandler := auth.NewHandler(authSvc, authn, logger)

	// Events
	eventSvc := events.NewService(events.NewRepository(pool), logger)
	eventHandler := events.NewHandler(eventSvc, logger)

	// Dining
	diningSvc := dining.NewService(dining.NewRepository(pool), logger)
	diningHandler := dining.NewHandler(diningSvc, logger)

	// Reciprocal clubs and LOI requests
	reciprocalSvc := reciprocal.NewService(reciprocal.NewRepository(pool), jobQueue, cfg.Email.SecretaryEmail, logger)
	reciprocalHandler := reciprocal.NewHandler(reciprocalSvc, logger)

	// Members
	memberSvc := members.NewService(members.NewRepository(pool), eventSvc, diningSvc, reciprocalSvc, logger)
	memberHandler := members.NewHandler(memberSvc, logger)

	// News
	newsHandler := news.NewHandler(news.NewService(news.NewRepository(pool), logger), logger)

	emailLogHandler := emaillogs.NewHandler(emaillogs.NewRepository(pool), logger)

	metrics := middleware.NewMetrics()
	loginLimiter := middleware.NewLoginRateLimiter(cfg.Server.LoginRatePerMinute, cfg.Server.LoginRateBurst, logger)
	resetLimiter := middleware.NewLoginRateLimiter(cfg.Server.LoginRatePerMinute, cfg.Server.LoginRateBurst, logger)
	stopCleanup := make(chan struct{})
	loginLimiter.StartCleanup(limiterCleanupInterval, stopCleanup)
	resetLimiter.StartCleanup(limiterCleanupInterval, stopCleanup)

	requireSession := middleware.RequireSession(authn)
	optionalSession := middleware.OptionalSession(authn)
	requireAdmin := middleware.RequireRole(models.RoleAdmin)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Logger(logger))
	router.Use(metrics.Middleware())

	router.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := router.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", loginLimiter.Middleware(), authHandler.Login)
		authGroup.POST("/logout", authHandler.Logout)
		authGroup.POST("/validate", authHandler.Validate)
		authGroup.POST("/forgot-password", resetLimiter.Middleware(), authHandler.ForgotPassword)
		authGroup.POST("/reset-password", authHandler.ResetPassword)
		authGroup.GET("/me", requireSession, authHandler.Me)
		authGroup.POST("/change-password", requireSession, authHandler.ChangePassword)
		authGroup.POST("/register", requireSession, requireAdmin, authHandler.Register)
	}

	memberGroup := api.Group("/members", requireSession)
	{
		memberGroup.GET("/profile", memberHandler.GetProfile)
		memberGroup.PUT("/profile", memberHandler.UpdateProfile)
		memberGroup.GET("/bookings", memberHandler.Bookings)
		memberGroup.GET("/reservations", memberHandler.Reservations)
		memberGroup.GET("/loi-requests", memberHandler.LoiRequests)
	}

	eventGroup := api.Group("/events")
	{
		eventGroup.GET("", optionalSession, eventHandler.List)
		eventGroup.GET("/:id", optionalSession, eventHandler.Get)
		eventGroup.POST("/:id/book", requireSession, eventHandler.Book)
		eventGroup.GET("/:id/bookings", requireSession, eventHandler.MyBookings)
		eventGroup.PUT("/bookings/:bookingId/cancel", requireSession, eventHandler.Cancel)
	}

	diningGroup := api.Group("/dining", requireSession)
	{
		diningGroup.GET("/reservations", diningHandler.List)
		diningGroup.POST("/reservations", diningHandler.Create)
		diningGroup.PUT("/reservations/:id", diningHandler.Update)
		diningGroup.DELETE("/reservations/:id", diningHandler.Cancel)
	}

	reciprocalGroup := api.Group("/reciprocal", requireSession)
	{
		reciprocalGroup.GET("/clubs", reciprocalHandler.ListClubs)
		reciprocalGroup.GET("/clubs/:id", reciprocalHandler.GetClub)
		reciprocalGroup.GET("/loi-requests", reciprocalHandler.ListLois)
		reciprocalGroup.POST("/loi-requests", reciprocalHandler.CreateLoi)
		reciprocalGroup.PUT("/loi-requests/:id/cancel", reciprocalHandler.CancelLoi)
	}

	newsGroup := api.Group("/news")
	{
		newsGroup.GET("", optionalSession, newsHandler.List)
		newsGroup.GET("/:id", optionalSession, newsHandler.Get)
		newsGroup.POST("", requireSession, requireAdmin, newsHandler.Create)
		newsGroup.PUT("/:id", requireSession, requireAdmin, newsHandler.Update)
		newsGroup.DELETE("/:id", requireSession, requireAdmin, newsHandler.Delete)
	}

	api.GET("/admin/email-logs", requireSession, requireAdmin, emailLogHandler.List)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	close(stopCleanup)
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
