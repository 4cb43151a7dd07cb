package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	docs "github.com/Youssif-Salama/big-data-be/docs"
	appdocuments "github.com/Youssif-Salama/big-data-be/internal/application/service/documents"
	"github.com/Youssif-Salama/big-data-be/internal/config"
	interfaces "github.com/Youssif-Salama/big-data-be/internal/domain/interfaces"
	infracache "github.com/Youssif-Salama/big-data-be/internal/infrastructure/cache"
	infradocuments "github.com/Youssif-Salama/big-data-be/internal/infrastructure/documents"
	infrahttp "github.com/Youssif-Salama/big-data-be/internal/interfaces/http"
	"github.com/Youssif-Salama/big-data-be/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}

	log := logger.New(cfg.Log)
	if cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	docs.SwaggerInfo.BasePath = "/api/v1"
	docs.SwaggerInfo.Host = cfg.HTTP.Addr()

	repo, err := newRepository(ctx, cfg.Store)
	if err != nil {
		log.Fatalf("failed to init document store: %v", err)
	}
	documentService := appdocuments.NewService(repo)
	defer documentService.Close()

	checkCtx, checkCancel := context.WithTimeout(ctx, cfg.HTTP.RequestTimeout)
	err = documentService.Check(checkCtx)
	checkCancel()
	if err != nil {
		log.Fatalf("document store is not ready: %v", err)
	}
	log.WithField("driver", cfg.Store.Driver).Info("document store loaded")

	resultCache := newCache(ctx, cfg.Redis, log)
	if resultCache != nil {
		defer func() {
			if err := resultCache.Close(); err != nil {
				log.Errorf("close redis: %v", err)
			}
		}()
	}

	handler := infrahttp.NewHandler(documentService, resultCache, cfg.Cache.TTL(), cfg.Cache.Timeout, cfg.HTTP.RequestTimeout, log)

	server := &http.Server{
		Addr:    cfg.HTTP.Addr(),
		Handler: handler,
	}

	go func() {
		log.Infof("HTTP server listening on %s", cfg.HTTP.Addr())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Infof("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("server shutdown error: %v", err)
	}
	log.Info("server stopped")
}

func newRepository(ctx context.Context, cfg config.StoreConfig) (interfaces.DocumentRepository, error) {
	if cfg.Driver == config.StoreDriverPostgres {
		repo, err := infradocuments.NewPostgresRepository(ctx, cfg.DSN, cfg.ImportBatchSize)
		if err != nil {
			return nil, err
		}
		return repo, nil
	}
	return infradocuments.NewFileRepository(cfg.DataDir), nil
}

// newCache returns nil when Redis is not configured. An unreachable Redis is not
// fatal: reads then miss and writes are dropped until it comes back.
func newCache(ctx context.Context, cfg config.RedisConfig, log *logrus.Logger) interfaces.ResultCache {
	if !cfg.Enabled() {
		log.Warn("redis is not configured, result cache disabled")
		return nil
	}
	client, err := infracache.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("failed to configure redis: %v", err)
	}
	redisCache := infracache.NewRedisCache(client)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := redisCache.Ping(pingCtx); err != nil {
		log.WithError(err).Warn("redis is unreachable, continuing with degraded cache")
	} else {
		log.Info("connected to redis")
	}
	return redisCache
}
