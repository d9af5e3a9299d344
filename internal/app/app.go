package app

import (
	"context"
	"database/sql"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"parkbill/internal/config"
	"parkbill/internal/db"
	httpserver "parkbill/internal/http"
	"parkbill/internal/http/handlers"
	"parkbill/internal/http/middleware"
	redisstore "parkbill/internal/redis"
	"parkbill/internal/repository"
	"parkbill/internal/service"
)

// App wires invoice service dependencies.
type App struct {
	server *httpserver.Server
	db     *sql.DB
	redis  *goredis.Client
	logger *zap.Logger
}

// New constructs application graph.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	sqlDB, err := db.NewPostgres(cfg.Database.DSN)
	if err != nil {
		return nil, err
	}

	sessionRepo := repository.NewSessionRepository(sqlDB)
	profileRepo := repository.NewRateProfileRepository(sqlDB)
	customerRepo := repository.NewCustomerRepository(sqlDB)

	var profiles service.RateProfileSource = profileRepo
	var redisClient *goredis.Client
	if cfg.Redis.Addr != "" {
		redisClient, err = redisstore.NewClient(cfg.Redis.Addr, cfg.Redis.Password)
		if err != nil {
			sqlDB.Close()
			return nil, err
		}
		ttl, err := cfg.ProfileCacheTTL()
		if err != nil {
			sqlDB.Close()
			redisClient.Close()
			return nil, err
		}
		profiles = redisstore.NewProfileCache(redisClient, profileRepo, ttl, logger)
	}

	policy, err := service.NewCustomerPolicy(cfg.Billing.CustomerPolicy, customerRepo, logger)
	if err != nil {
		sqlDB.Close()
		if redisClient != nil {
			redisClient.Close()
		}
		return nil, err
	}

	invoiceService := service.NewInvoiceService(sessionRepo, profiles, customerRepo, policy, logger)

	routes := httpserver.Routes{
		FacilityInvoices: handlers.NewFacilityInvoicesHandler(invoiceService, logger),
		CustomerInvoice:  handlers.NewCustomerInvoiceHandler(invoiceService, logger),
		Health:           handlers.NewHealthHandler(),
	}
	if cfg.Auth.Enabled {
		routes.Auth = middleware.AuthMiddleware(cfg.Auth.JWTSecret)
	}

	router := httpserver.NewRouter(routes)
	server := httpserver.NewServer(cfg.HTTPAddress(), router, logger)

	return &App{
		server: server,
		db:     sqlDB,
		redis:  redisClient,
		logger: logger,
	}, nil
}

// Run starts HTTP server.
func (a *App) Run(ctx context.Context) error {
	return a.server.Run(ctx)
}

// Close releases resources.
func (a *App) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("failed to close redis", zap.Error(err))
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close db", zap.Error(err))
		}
	}
}
