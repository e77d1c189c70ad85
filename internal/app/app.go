package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"cartservice/internal/config"
	"cartservice/internal/handler"
	"cartservice/internal/infra/catalog"
	"cartservice/internal/infra/db"
	"cartservice/internal/infra/messaging"
	infraRepo "cartservice/internal/infra/repository"
	"cartservice/internal/infra/telemetry"
	"cartservice/internal/middleware"
	"cartservice/internal/server"
	"cartservice/internal/usecase"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

const (
	serviceVersion = "1.0.0"
	catalogTimeout = 5 * time.Second
)

// cmd/api と cmd/lambda で共有する組み立て結果
type App struct {
	Server *server.Server

	closers []func(context.Context) error
}

// LOG_LEVELに合わせたJSONロガー
func NewLogger(cfg config.Config) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
}

// DB・外部サービス・usecase・HTTPを組み立てる
func Build(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	a := &App{}

	shutdownTracer, err := telemetry.InitTracerProvider(ctx, cfg.OTLPEndpoint, cfg.ServiceName, serviceVersion)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}
	a.closers = append(a.closers, shutdownTracer)

	//DB
	if cfg.DBSync {
		if err := db.MigrateUp(cfg.DSN()); err != nil {
			_ = a.Close(ctx)
			return nil, fmt.Errorf("migrate: %w", err)
		}
		logger.Info("migrations applied")
	}

	gdb, err := db.Connect(cfg)
	if err != nil {
		_ = a.Close(ctx)
		return nil, fmt.Errorf("connect db: %w", err)
	}
	a.closers = append(a.closers, func(context.Context) error { return db.Close(gdb) })

	sqlDB, err := gdb.DB()
	if err != nil {
		_ = a.Close(ctx)
		return nil, fmt.Errorf("sql db: %w", err)
	}

	//Repository（GORM実装）
	userRepo := infraRepo.NewUserGormRepository(gdb)
	cartRepo := infraRepo.NewCartGormRepository(gdb)
	cartItemRepo := infraRepo.NewCartItemGormRepository(gdb)
	orderRepo := infraRepo.NewOrderGormRepository(gdb)
	historyRepo := infraRepo.NewStatusHistoryGormRepository(gdb)
	txm := infraRepo.NewTxManagerGorm(gdb)

	//商品カタログ（redis or メモリ）
	products, closeCache, err := newCatalog(cfg)
	if err != nil {
		_ = a.Close(ctx)
		return nil, err
	}
	a.closers = append(a.closers, closeCache)

	//注文イベント
	var publisher messaging.Publisher = messaging.NoopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = messaging.NewProducer(cfg.KafkaBrokers, cfg.KafkaOrderTopic)
	}
	a.closers = append(a.closers, func(context.Context) error { return publisher.Close() })

	//Usecase
	idGen := usecase.UUIDGenerator{}
	clock := usecase.SystemClock{}

	authUC := usecase.NewAuthUsecase(userRepo, usecase.NewBcryptHasher(bcrypt.DefaultCost), idGen, clock, cfg.JWTSecret, cfg.JWTExpiresIn)
	cartUC := usecase.NewCartUsecase(txm, cartRepo, cartItemRepo, products, idGen, clock)
	orderUC := usecase.NewOrderUsecase(txm, orderRepo, historyRepo, cartItemRepo, products, publisher, idGen, clock, logger)

	//HTTP
	a.Server = server.New(server.Options{
		Port:        cfg.Port,
		ServiceName: cfg.ServiceName,
		Logger:      logger,
		Metrics:     telemetry.NewServerMetrics(cfg.ServiceName),
		Auth:        middleware.Authenticate(authUC),
		Handlers: server.Handlers{
			Auth:   handler.NewAuthHandler(authUC),
			Cart:   handler.NewCartHandler(cartUC, orderUC),
			Order:  handler.NewOrderHandler(orderUC),
			Health: handler.NewHealthHandler(sqlDB),
		},
	})

	return a, nil
}

func newCatalog(cfg config.Config) (*catalog.CachedCatalog, func(context.Context) error, error) {
	upstream := catalog.NoSource()
	if cfg.ProductServiceURL != "" {
		upstream = catalog.NewHTTPCatalog(cfg.ProductServiceURL, catalogTimeout)
	}

	if cfg.RedisURL == "" {
		noop := func(context.Context) error { return nil }
		return catalog.NewCachedCatalog(catalog.NewMemoryCache(), upstream, cfg.ProductCacheTTL), noop, nil
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("REDIS_URL: %w", err)
	}
	rdb := redis.NewClient(opt)
	closeRedis := func(context.Context) error { return rdb.Close() }

	return catalog.NewCachedCatalog(rdb, upstream, cfg.ProductCacheTTL), closeRedis, nil
}

// 後から開いたものから閉じる
func (a *App) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
