// Package main runs the background email worker and the expired session sweep.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/hamishnash1-tech/City-Uni-Club/config"
	"github.com/hamishnash1-tech/City-Uni-Club/internal/auth"
	"github.com/hamishnash1-tech/City-Uni-Club/internal/emaillogs"
	"github.com/hamishnash1-tech/City-Uni-Club/internal/worker"
	"github.com/hamishnash1-tech/City-Uni-Club/pkg/database"
	"github.com/hamishnash1-tech/City-Uni-Club/pkg/mailer"
	"github.com/hamishnash1-tech/City-Uni-Club/pkg/queue"
	"github.com/hamishnash1-tech/City-Uni-Club/pkg/redis"
)

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

	rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
	if err != nil {
		logger.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()

	ses, err := mailer.NewSES(ctx, mailer.SESConfig{
		Region:          cfg.Email.Region,
		AccessKeyID:     cfg.Email.AccessKeyID,
		SecretAccessKey: cfg.Email.SecretAccessKey,
		FromAddress:     cfg.Email.FromAddress,
		FromName:        cfg.Email.FromName,
	}, logger)
	if err != nil {
		logger.Fatal("ses", zap.Error(err))
	}

	jobQueue := queue.NewQueue(rdb.Client, logger)
	processor := worker.NewEmailProcessor(ses, jobQueue, cfg.Email.AppBaseURL, logger)
	processor.SetDeliveryLog(emaillogs.NewRepository(pool))
	sweeper := worker.NewSessionSweeper(auth.NewRepository(pool), logger)

	workerCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	scheduler := cron.New()
	if _, err := sweeper.Register(workerCtx, scheduler, cfg.Worker.SessionSweepSchedule); err != nil {
		logger.Fatal("session sweep schedule", zap.String("spec", cfg.Worker.SessionSweepSchedule), zap.Error(err))
	}
	scheduler.Start()

	go processor.Run(workerCtx)
	logger.Info("worker started", zap.Bool("email_enabled", ses.Enabled()))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	cancel()
	<-scheduler.Stop().Done()
	time.Sleep(2 * time.Second)
	logger.Info("worker stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
