package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/GlebRadaev/mealsection/internal/config"
	"github.com/GlebRadaev/mealsection/internal/dispatch"
	"github.com/GlebRadaev/mealsection/internal/handlers"
	"github.com/GlebRadaev/mealsection/internal/notify"
	"github.com/GlebRadaev/mealsection/internal/paystack"
	"github.com/GlebRadaev/mealsection/internal/pg"
	"github.com/GlebRadaev/mealsection/internal/realtime"
	"github.com/GlebRadaev/mealsection/internal/repo"
	"github.com/GlebRadaev/mealsection/internal/service"
	"github.com/GlebRadaev/mealsection/pkg/auth"
	"github.com/GlebRadaev/mealsection/pkg/clients"
	"github.com/GlebRadaev/mealsection/pkg/logger"
	"github.com/GlebRadaev/mealsection/pkg/ratelimit"
)

type ApplicationI interface {
	Start(ctx context.Context) error
	Wait(ctx context.Context, cancel context.CancelFunc) error
}

type Application struct {
	cfg  *config.Config
	api  *handlers.Handlers
	srv  *service.Services
	repo *repo.Repositories

	workers *dispatch.WorkerPool
	hub     *realtime.Hub
	relay   *realtime.RedisRelay
	audit   *zap.Logger

	errCh chan error
	wg    sync.WaitGroup
	ready bool
}

func New() *Application {
	return &Application{
		errCh: make(chan error),
	}
}

func (a *Application) Start(ctx context.Context) error {
	cfg := config.New()

	err := logger.InitLogger(cfg)
	if err != nil {
		return fmt.Errorf("can't init logger: %w", err)
	}

	pool, err := getPgxpool(ctx, cfg)
	if err != nil {
		zap.L().Error("build pgx pool failed: ", zap.Error(err))
		return fmt.Errorf("can't build pgx pool: %w", err)
	}
	if err := pg.RunMigrations(ctx, pool); err != nil {
		zap.L().Error("migrations failed: ", zap.Error(err))
		return fmt.Errorf("can't run migrations: %w", err)
	}
	txManager := pg.NewTXManager(pool)

	conn := pg.New(pool)
	a.cfg = cfg
	a.repo = repo.New(conn, txManager)

	a.workers = dispatch.NewWorkerPool(cfg.DispatchWorkers, cfg.DispatchQueue,
		dispatch.WithErrorHook(func(name string, err error) {
			zap.L().Error("background task failed", zap.String("task", name), zap.Error(err))
		}))

	a.hub = realtime.NewHub()
	var broadcaster realtime.Broadcaster = a.hub
	if cfg.RedisURL != "" {
		a.relay, err = realtime.NewRedisRelay(ctx, cfg.RedisURL, a.hub)
		if err != nil {
			return fmt.Errorf("can't start redis relay: %w", err)
		}
		broadcaster = a.relay
	}

	pusher, err := notify.NewFCM(ctx, cfg.FirebaseCredentials, cfg.FirebaseProjectID)
	if err != nil {
		return fmt.Errorf("can't init push notifications: %w", err)
	}
	mailer := notify.NewBrevo(clients.NewHTTPClient(), cfg.BrevoAPIKey, cfg.MailFrom, cfg.MailFromName)
	notifier := notify.New(pusher, mailer, a.repo.AccountRepo, cfg.AdminEmail)

	a.audit, err = logger.NewAuditLogger(cfg.WebhookAuditLog)
	if err != nil {
		return fmt.Errorf("can't open webhook audit log: %w", err)
	}

	jwtService := auth.NewJWTService(cfg.JWTSecret)
	a.srv = service.New(cfg, a.repo, service.Deps{
		TXManager:   txManager,
		JWT:         jwtService,
		Notifier:    notifier,
		Broadcaster: broadcaster,
		Dispatcher:  a.workers,
		Verifier:    paystack.New(clients.NewHTTPClient(), cfg.PaystackSecret, cfg.PaystackVerifyURL),
		AuditLog:    a.audit,
	})
	a.api = handlers.New(a.srv, jwtService, a.hub, ratelimit.New(cfg.RateLimit, cfg.RateBurst))

	a.startRealtime(ctx)

	if err = a.startHTTPServer(ctx); err != nil {
		return fmt.Errorf("can't start http server: %w", err)
	}

	a.ready = true
	zap.L().Info("all systems started successfully")
	return nil
}

func getPgxpool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	cfgpool, err := pgxpool.ParseConfig(cfg.Database)
	if err != nil {
		return nil, err
	}
	dbpool, err := pgxpool.NewWithConfig(ctx, cfgpool)
	if err != nil {
		return nil, err
	}
	if err = dbpool.Ping(ctx); err != nil {
		return nil, err
	}
	return dbpool, nil
}

func (a *Application) startRealtime(ctx context.Context) {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.hub.Run(ctx)
	}()

	if a.relay == nil {
		return
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.relay.Run(ctx)
		if err := a.relay.Close(); err != nil {
			zap.L().Warn("redis relay close failed", zap.Error(err))
		}
	}()
}

func (a *Application) startHTTPServer(ctx context.Context) error {
	router := chi.NewRouter()
	a.api.InitRoutes(router)
	server := http.Server{
		Addr:    a.cfg.Address,
		Handler: router,
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-ctx.Done()

		sCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(sCtx)

		// In-flight requests may still have queued notifications.
		a.workers.Close()
		a.audit.Sync()
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		zap.L().Info("starting http server on port", zap.String("port", a.cfg.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.errCh <- fmt.Errorf("http server exited with error: %w", err)
		}
	}()

	return nil
}

func (a *Application) Wait(ctx context.Context, cancel context.CancelFunc) error {
	var appErr error

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()

		for err := range a.errCh {
			cancel()
			zap.L().Error(err.Error())
			appErr = err
		}
	}()

	<-ctx.Done()
	a.wg.Wait()
	close(a.errCh)
	wg.Wait()

	return appErr
}
