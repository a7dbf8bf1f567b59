package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"coursecms/internal/config"
	"coursecms/internal/metrics"
	"coursecms/internal/pagestore"
	"coursecms/internal/snapshot"
	"coursecms/internal/storage"
	"coursecms/internal/tasks"
	"coursecms/internal/worker"
)

func main() {
	cfg := config.MustLoad()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	storageClient, err := storage.NewClient(cfg.MinIO)
	if err != nil {
		log.Fatalf("init storage client: %v", err)
	}
	log.Printf("storage client ready, bucket=%s", cfg.MinIO.Bucket)

	redisAddr := cfg.Redis.Addr()
	redisClient := redis.NewClient(&redis.Options{Addr: redisAddr})
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Error("close redis client failed", slog.Any("error", err))
		}
	}()

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("ping redis: %v", err)
	}

	store := pagestore.NewStore(pagestore.NewRedisBlob(redisClient), logger)

	redisOpt := asynq.RedisClientOpt{Addr: redisAddr}
	server := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 4,
	})

	snapshotHandler := worker.NewSnapshotTaskHandler(
		store,
		storageClient,
		redisClient,
		logger,
		cfg.Preview.PresignTTL,
		snapshot.Options{
			ViewportWidth:  cfg.Preview.ViewportWidth,
			ViewportHeight: cfg.Preview.ViewportHeight,
		},
	)

	mux := asynq.NewServeMux()
	mux.Use(metrics.AsynqMetricsMiddleware())
	mux.Handle(tasks.TypePageSnapshot, snapshotHandler)

	logger.Info("worker service started", slog.String("redis_addr", redisAddr))
	if err := server.Run(mux); err != nil {
		logger.Error("worker server stopped", slog.Any("error", err))
	}
}
