// Package app assembles the service: storage, cache, gates, services,
// controllers and the router.
package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/Gulcan00/blog-api/internal/auth"
	"github.com/Gulcan00/blog-api/internal/cache"
	"github.com/Gulcan00/blog-api/internal/config"
	authctrl "github.com/Gulcan00/blog-api/internal/http/controllers/auth"
	blogctrl "github.com/Gulcan00/blog-api/internal/http/controllers/blog"
	healthctrl "github.com/Gulcan00/blog-api/internal/http/controllers/health"
	"github.com/Gulcan00/blog-api/internal/http/metrics"
	"github.com/Gulcan00/blog-api/internal/http/router"
	authsvc "github.com/Gulcan00/blog-api/internal/http/services/auth"
	blogsvc "github.com/Gulcan00/blog-api/internal/http/services/blog"
	"github.com/Gulcan00/blog-api/internal/observability/logger"
	"github.com/Gulcan00/blog-api/internal/rate"
	"github.com/Gulcan00/blog-api/internal/store"
	"github.com/Gulcan00/blog-api/internal/store/memory"
	"github.com/Gulcan00/blog-api/internal/store/pg"
	"github.com/Gulcan00/blog-api/internal/token"
)

// App holds the assembled service.
type App struct {
	Config  *config.Config
	Handler http.Handler

	store store.Store
	cache cache.Client
}

// New builds the application from configuration. Everything that can
// fail does so here, before the server starts listening.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := logger.L()

	st, poolFn, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	ca, err := cache.New(cache.Config{
		Driver:   cfg.Cache.Driver,
		Addr:     cfg.Cache.Addr,
		Password: cfg.Cache.Password,
		DB:       cfg.Cache.DB,
		Prefix:   cfg.Cache.Prefix,
	})
	if err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("app: cache: %w", err)
	}

	issuer := token.NewIssuer(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TTL)
	resolver := auth.NewResolver(st.Users())

	limiter := buildLimiter(cfg, ca)

	authServices := authsvc.NewServices(authsvc.Deps{
		Users:  st.Users(),
		Issuer: issuer,
	})
	blogServices := blogsvc.NewServices(blogsvc.Deps{
		Posts:    st.Posts(),
		Comments: st.Comments(),
		Users:    st.Users(),
		Cache:    ca,
		CacheTTL: cfg.Cache.PostTTL,
	})

	metricsHandler, err := metrics.Register(metrics.Config{Pool: poolFn})
	if err != nil {
		log.Warn("metrics registration failed", logger.Err(err))
	}

	handler := router.New(router.Deps{
		Auth:     authctrl.NewControllers(authServices, st.Users()),
		Blog:     blogctrl.NewControllers(blogServices),
		Health:   healthctrl.NewController(st, ca),
		Metrics:  metricsHandler,
		Issuer:   issuer,
		Resolver: resolver,
		Limiter:  limiter,
	})

	log.Info("application assembled",
		logger.String("storage", cfg.Storage.Driver),
		logger.String("cache", cfg.Cache.Driver),
	)

	return &App{
		Config:  cfg,
		Handler: handler,
		store:   st,
		cache:   ca,
	}, nil
}

// Close releases storage and cache connections.
func (a *App) Close() {
	if a.cache != nil {
		_ = a.cache.Close()
	}
	if a.store != nil {
		_ = a.store.Close()
	}
}

func buildStore(ctx context.Context, cfg *config.Config) (store.Store, func() *pgxpool.Pool, error) {
	switch cfg.Storage.Driver {
	case "postgres":
		st, err := pg.New(ctx, pg.Config{
			DSN:             cfg.Storage.DSN,
			MaxConns:        cfg.Storage.Pool.MaxConns,
			ConnMaxLifetime: cfg.Storage.Pool.ConnMaxLifetime,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("app: storage: %w", err)
		}
		return st, st.Pool, nil
	case "memory":
		return memory.New(), nil, nil
	default:
		return nil, nil, fmt.Errorf("app: unknown storage driver %q", cfg.Storage.Driver)
	}
}

func buildLimiter(cfg *config.Config, ca cache.Client) rate.Limiter {
	if !cfg.Rate.Enabled {
		return nil
	}
	// Share the redis connection when the cache already has one, so the
	// window counters are cluster-wide.
	if rc, ok := ca.(interface{ Raw() *redis.Client }); ok {
		return rate.NewRedisLimiter(rc.Raw(), "rl:", cfg.Rate.Limit, cfg.Rate.Window)
	}
	return rate.NewMemoryLimiter(cfg.Rate.Limit, cfg.Rate.Window)
}
