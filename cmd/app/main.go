package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-cache-service/internal/cache"
	"github.com/BuzzLyutic/task-cache-service/internal/config"
	"github.com/BuzzLyutic/task-cache-service/internal/handler"
	applog "github.com/BuzzLyutic/task-cache-service/internal/logger"
	"github.com/BuzzLyutic/task-cache-service/internal/repo"
	"github.com/BuzzLyutic/task-cache-service/internal/service"
)

func main() {
	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := applog.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	// Подключаем хранилище
	ctx := context.Background()
	store, err := repo.Open(ctx, cfg.StoreURI, cfg.StoreDatabase)
	if err != nil {
		logger.Fatal("Failed to open store", zap.Error(err))
	}
	defer store.Close(context.Background())

	pingCtx, cancelPing := context.WithTimeout(ctx, 10*time.Second)
	if err := store.Ping(pingCtx); err != nil {
		logger.Fatal("Failed to ping the store", zap.String("driver", store.Driver), zap.Error(err))
	}
	cancelPing()

	if err := store.Migrate(ctx); err != nil {
		logger.Fatal("Failed to migrate the store", zap.Error(err))
	}
	logger.Info("Successfully connected to the store!", zap.String("driver", store.Driver))

	// Кэш подключается лениво, при первом запросе
	var taskCache cache.Cache
	switch cfg.CacheDriver {
	case "memory":
		taskCache = cache.NewMemoryCache(cache.MemoryConfig{Capacity: cfg.MemoryCacheCapacity})
	default:
		redisCache := cache.NewRedisCache(cache.RedisConfig{
			Addr:     cfg.RedisAddr(),
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisCache.Close()
		taskCache = redisCache
	}

	taskService := service.NewTaskService(store.Repo, taskCache, logger, service.Options{
		KeyPrefix:         cfg.CacheKeyPrefix,
		FailOpen:          cfg.CacheFailOpen,
		InvalidateOnWrite: cfg.CacheInvalidateOnWrite,
	})
	taskHandler := handler.NewTaskHandler(taskService, logger)

	srv := http.Server{
		Addr:         cfg.HTTPAddr(),
		Handler:      handler.NewRouter(taskHandler, logger),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() { // Запуск сервера и обработка ошибок
		logger.Info("Server started", zap.String("addr", srv.Addr), zap.String("cache", cfg.CacheDriver))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", zap.Error(err))
	}
	logger.Info("Server stopped successfully!")
}
