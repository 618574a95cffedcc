// Package application собирает сервисы и запускает модули приложения.
package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"card_tracker/internal/config"
	"card_tracker/internal/domain/entity"
	"card_tracker/internal/domain/service/catalog"
	"card_tracker/internal/domain/service/deal"
	"card_tracker/internal/domain/service/deals"
	"card_tracker/internal/domain/service/inventory"
	"card_tracker/internal/domain/service/profit"
	"card_tracker/internal/domain/service/report"
	"card_tracker/internal/domain/service/tracking"
	catalogclient "card_tracker/internal/infrastructure/catalog"
	"card_tracker/internal/infrastructure/notifier"
	"card_tracker/internal/infrastructure/persistence"
	"card_tracker/internal/server"
	"card_tracker/internal/transport/bot"
	"card_tracker/internal/transport/bot/handler"
	"card_tracker/internal/worker"
	"card_tracker/pkg/application/connectors"
	"card_tracker/pkg/application/modules"
	"card_tracker/pkg/contextx"
	"card_tracker/pkg/logx"
	"card_tracker/pkg/middlewarex"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const (
	logFieldMaxLen = 4096
	dealsBuffer    = 100
)

// Services доменные сервисы, общие для HTTP сервера, воркера и CLI.
type Services struct {
	Catalog   *catalog.CatalogService
	Deals     *deals.DealsService
	Tracking  *tracking.TrackingService
	Inventory *inventory.InventoryService
	Report    *report.ReportService
}

func NewServices(cfg config.Config, store persistence.Store) Services {
	calc := profit.NewCalculator(cfg.Business.Profit())
	evaluator := deal.NewEvaluator(calc, cfg.Business.Deal())

	client := catalogclient.NewClient(catalogclient.Config{
		BaseURL:    cfg.Catalog.BaseURL,
		Token:      cfg.Catalog.Token,
		Timeout:    cfg.Catalog.Timeout,
		MaxRetries: cfg.Catalog.MaxRetries,
		RetryDelay: cfg.Catalog.RetryDelay,
	}, logx.NewSensitiveDataMasker())

	catalogService := catalog.NewCatalogService(client).WithCacheTTL(cfg.Catalog.CacheTTL)

	return Services{
		Catalog: catalogService,
		Deals: deals.NewDealsService(catalogService, calc, evaluator).
			WithSearchLimit(cfg.Catalog.SearchLimit),
		Tracking: tracking.NewTrackingService(catalogService, persistence.NewPriceHistoryRepository(store), evaluator).
			WithTrendWindow(cfg.Business.TrendWindow).
			WithChangeThreshold(cfg.Business.TrendThreshold).
			WithConcurrency(cfg.Worker.Concurrency),
		Inventory: inventory.NewInventoryService(persistence.NewInventoryRepository(store), calc),
		Report:    report.NewReportService(persistence.NewSaleRepository(store)),
	}
}

// OpenStore хранилище по STORAGE_DRIVER. Возвращаемая функция закрывает
// соединения.
func OpenStore(ctx context.Context, cfg config.Config) (persistence.Store, func(), error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
		pg := &connectors.Postgres{
			DSN:             cfg.Postgres.DSN,
			MaxOpenConns:    cfg.Postgres.MaxOpenConns,
			MaxIdleConns:    cfg.Postgres.MaxIdleConns,
			ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
		}

		db := pg.Client(ctx)

		if err := persistence.Migrate(ctx, db); err != nil {
			pg.Close(ctx)
			return nil, nil, fmt.Errorf("persistence.Migrate: %w", err)
		}

		return persistence.NewPostgresStore(db), func() { pg.Close(ctx) }, nil
	case config.StorageDriverRedis:
		rd := newRedisConnector(cfg.Redis)

		store := persistence.NewRedisStore(rd.Client(ctx)).WithPrefix(cfg.Redis.KeyPrefix)

		return store, func() { rd.Close(ctx) }, nil
	default:
		logger(ctx).Warn("using in-memory storage, data is lost on restart")

		return persistence.NewMemoryStore(), func() {}, nil
	}
}

func newRedisConnector(cfg config.Redis) *connectors.Redis {
	return &connectors.Redis{
		Username:           cfg.Username,
		Password:           cfg.Password,
		Address:            cfg.Address,
		DatabaseNumber:     cfg.DatabaseNumber,
		PoolSize:           cfg.PoolSize,
		MinIdleConnections: cfg.MinIdleConnections,
		MaxIdleConnections: cfg.MaxIdleConnections,
	}
}

func NewRouter(cfg config.Config, services Services) http.Handler {
	masker := logx.NewSensitiveDataMasker()

	r := chi.NewRouter()
	r.Use(middlewarex.TraceID, middlewarex.Logger, middlewarex.Recovery, middlewarex.Metrics)

	if cfg.HTTP.DumpBodies {
		r.Use(
			middlewarex.RequestLogging(masker, logFieldMaxLen),
			middlewarex.ResponseLogging(masker, logFieldMaxLen),
		)
	}

	server.NewServer(
		server.NewDealsServer(services.Catalog, services.Deals),
		server.NewTrackingServer(services.Tracking),
		server.NewInventoryServer(services.Inventory),
		server.NewReportServer(services.Report),
	).RegisterRoutes(r)

	return r
}

// Run запускает HTTP, probe и metrics серверы и, если включено, фоновое
// обновление цен. Возвращается после отмены ctx и остановки всех модулей.
func Run(ctx context.Context, cfg config.Config) error {
	store, closeStore, err := OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	services := NewServices(cfg, store)

	g, ctx := errgroup.WithContext(ctx)

	httpServer := &http.Server{
		//nolint:exhaustruct
		Addr:              cfg.HTTP.Address,
		Handler:           NewRouter(cfg, services),
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	modules.HTTPServer{ShutdownTimeout: cfg.HTTP.ShutdownTimeout}.Run(ctx, g, httpServer)

	modules.ProbeServer{
		Name:          cfg.App.Name,
		Version:       cfg.App.Version,
		ListenAddress: cfg.Probe.Address,
	}.Run(ctx, g)

	modules.MetricServer{ListenAddress: cfg.Metrics.Address}.Run(ctx, g)

	dealsCh, err := runNotifier(ctx, g, cfg)
	if err != nil {
		return err
	}

	refresher := worker.NewPriceRefresher(services.Tracking, dealsCh).
		WithInterval(cfg.Worker.Interval).
		WithRetention(cfg.Worker.Retention)

	if cfg.Worker.Enabled {
		runWorker(ctx, g, cfg, refresher)
	}

	if cfg.Bot.Enabled() && cfg.Bot.Commands {
		if err = runCommandBot(ctx, g, cfg, services, refresher); err != nil {
			return err
		}
	}

	if err = g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("g.Wait: %w", err)
	}

	return nil
}

// runNotifier запускает отправку сделок в Telegram. Nil канал, если бот
// не настроен.
func runNotifier(ctx context.Context, g *errgroup.Group, cfg config.Config) (chan entity.Deal, error) {
	if !cfg.Bot.Enabled() {
		logger(ctx).Info("notifier bot disabled, BOT_TOKEN is empty")
		return nil, nil
	}

	alerts, err := notifier.NewTelegramBot(cfg.Bot.Token, cfg.Bot.ChatID)
	if err != nil {
		return nil, fmt.Errorf("notifier.NewTelegramBot: %w", err)
	}

	alerts.WithTrendWindow(cfg.Business.TrendWindow)

	dealsCh := make(chan entity.Deal, dealsBuffer)

	g.Go(func() error {
		logger(ctx).Info("notifier bot started")

		if err := alerts.Run(ctx, dealsCh); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("alerts.Run: %w", err)
		}

		return nil
	})

	return dealsCh, nil
}

func runWorker(ctx context.Context, g *errgroup.Group, cfg config.Config, refresher *worker.PriceRefresher) {
	switch cfg.Worker.Mode {
	case config.WorkerModeAsynq:
		redisCfg := cfg.Redis

		modules.AsynqServer{
			RedisUsername: redisCfg.Username,
			RedisPassword: redisCfg.Password,
			RedisAddress:  redisCfg.Address,
			RedisDB:       redisCfg.DatabaseNumber,
		}.Run(ctx, g, modules.AsynqQueues{worker.QueueTracking: 1}, refresher.RefreshHandler())

		modules.AsynqScheduler{
			RedisUsername: redisCfg.Username,
			RedisPassword: redisCfg.Password,
			RedisAddress:  redisCfg.Address,
			RedisDB:       redisCfg.DatabaseNumber,
		}.Run(ctx, g, modules.AsynqEntry{CronSpec: cfg.Worker.CronSpec, Task: worker.NewRefreshTask()})
	default:
		// цикл общий с /startscan и /stopscan
		if err := refresher.Start(ctx); err != nil {
			logger(ctx).Error("refresher.Start", logx.FieldError, err)
		}

		g.Go(func() error {
			<-ctx.Done()
			refresher.Stop()

			return nil
		})
	}

	logger(ctx).Info("price refresher configured", slog.String("mode", cfg.Worker.Mode))
}

// runCommandBot запускает бота с командами администратора.
func runCommandBot(
	ctx context.Context,
	g *errgroup.Group,
	cfg config.Config,
	services Services,
	refresher *worker.PriceRefresher,
) error {
	h := handler.New(ctx, services.Deals, services.Tracking, services.Report, refresher)

	b, err := bot.New(cfg.Bot.Token, cfg.Bot.Admin(), h)
	if err != nil {
		return fmt.Errorf("bot.New: %w", err)
	}

	g.Go(func() error {
		if err := b.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("bot.Run: %w", err)
		}

		return nil
	})

	return nil
}
