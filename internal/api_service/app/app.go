package apiApp

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/langowen/converter/deploy/config"
	"github.com/langowen/converter/internal/api_service/adapter/api_client/coingecko"
	"github.com/langowen/converter/internal/api_service/adapter/api_client/frankfurter"
	"github.com/langowen/converter/internal/api_service/adapter/cache/memory"
	"github.com/langowen/converter/internal/api_service/adapter/cache/redis"
	"github.com/langowen/converter/internal/api_service/adapter/storage/postgres"
	sessionMemory "github.com/langowen/converter/internal/api_service/adapter/storage/memory"
	"github.com/langowen/converter/internal/api_service/ports/http/public"
	"github.com/langowen/converter/internal/api_service/service"
	redisPack "github.com/redis/go-redis/v9"
)

const (
	driverMemory   = "memory"
	driverRedis    = "redis"
	driverPostgres = "postgres"
)

type ApiApp struct {
	cfg *config.Config
}

func NewApiApp(cfg *config.Config) *ApiApp {
	return &ApiApp{cfg: cfg}
}

func (a *ApiApp) Start(ctx context.Context) <-chan struct{} {
	a.initLogger()
	slog.Info("Logger initialized")

	slog.With("config", a.cfg).Info("starting server")

	cache := a.initCache(ctx)
	slog.Info("Cache initialized", "driver", a.cfg.Cache.Driver)

	sessions := a.initSessions(ctx)
	slog.Info("Session storage initialized", "driver", a.cfg.Storage.Driver)

	apiService := a.initService(cache, sessions)
	slog.Info("Service initialized")

	serverDone := a.StartServer(ctx, apiService)
	slog.Info("server started", "port", a.cfg.HTTPServer.Port)

	return serverDone
}

func (a *ApiApp) initLogger() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level:     slog.LevelDebug,
		AddSource: false,
	}))
	slog.SetDefault(logger)
}

func (a *ApiApp) initCache(ctx context.Context) service.Cache {
	switch a.cfg.Cache.Driver {
	case driverRedis:
		options := &redisPack.Options{
			Addr:     a.cfg.Redis.Host,
			Password: a.cfg.Redis.Password,
			DB:       a.cfg.Redis.DB,
		}

		rdCache, err := redis.InitCache(ctx, options, a.cfg.Cache.Prefix)
		if err != nil {
			log.Fatalln("Failed to initialize Redis cache", "error", err)
		}

		return rdCache
	case driverMemory, "":
		memCache := memory.NewCache()
		memCache.StartJanitor(ctx, a.cfg.Cache.RatesTTL)

		return memCache
	default:
		log.Fatalln("Unknown cache driver", a.cfg.Cache.Driver)
	}

	return nil
}

func (a *ApiApp) initSessions(ctx context.Context) service.SessionStorage {
	switch a.cfg.Storage.Driver {
	case driverPostgres:
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s search_path=%s",
			a.cfg.Storage.Host,
			a.cfg.Storage.Port,
			a.cfg.Storage.User,
			a.cfg.Storage.Password,
			a.cfg.Storage.DBName,
			a.cfg.Storage.SSLMode,
			a.cfg.Storage.Schema,
		)

		pgStorage, err := postgres.InitStorage(ctx, dsn, a.cfg.Storage.Timeout)
		if err != nil {
			log.Fatalln("Failed to initialize PostgresSQL storage", "error", err)
		}

		go func() {
			<-ctx.Done()
			pgStorage.Close()
		}()

		return pgStorage
	case driverMemory, "":
		return sessionMemory.NewStorage()
	default:
		log.Fatalln("Unknown storage driver", a.cfg.Storage.Driver)
	}

	return nil
}

func (a *ApiApp) initService(cache service.Cache, sessions service.SessionStorage) *service.Service {
	apiService, err := service.NewService(
		frankfurter.NewHTTPClient(a.cfg.Fiat.URL, a.cfg.Upstream.Timeout),
		coingecko.NewHTTPClient(a.cfg.Crypto.URL, a.cfg.Upstream.Timeout),
		cache,
		sessions,
		a.cfg,
	)
	if err != nil {
		log.Fatalln("Failed to initialize service", "error", err)
	}

	return apiService
}

func (a *ApiApp) StartServer(ctx context.Context, apiService *service.Service) <-chan struct{} {
	serverDone := public.StartServer(ctx, apiService, a.cfg)

	return serverDone
}
