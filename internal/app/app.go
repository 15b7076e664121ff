package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/linkforge/linkforge/internal/activity"
	"github.com/linkforge/linkforge/internal/catalog"
	"github.com/linkforge/linkforge/internal/config"
	"github.com/linkforge/linkforge/internal/httpserver"
	"github.com/linkforge/linkforge/internal/httpserver/deps"
	"github.com/linkforge/linkforge/internal/logger"
	"github.com/linkforge/linkforge/internal/outcome"
	"github.com/linkforge/linkforge/internal/quota"
	"github.com/linkforge/linkforge/internal/redis"
	"github.com/linkforge/linkforge/internal/scheduler"
	"github.com/linkforge/linkforge/internal/store"
	pgstore "github.com/linkforge/linkforge/internal/store/postgres"
	redisstore "github.com/linkforge/linkforge/internal/store/redis"
	"github.com/linkforge/linkforge/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	pgPool      *pgxpool.Pool
	registry    *scheduler.Registry

	ctx  context.Context
	stop context.CancelFunc
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Process lifetime context. Workers started over HTTP are bound
	// to this, not to any request.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	// Initialize Redis early - fail fast if unavailable. Redis always
	// runs: it carries the real-time event feed even when Postgres is
	// the persistence backend.
	loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
	redisClient, err := redis.New(redis.ConnectOptions{
		Addr:           cfg.RedisAddr,
		User:           cfg.RedisUser,
		Password:       cfg.RedisPassword,
		RedisDB:        cfg.RedisDB,
		DialTimeout:    cfg.RedisDT,
		ReadTimeout:    cfg.RedisRT,
		WriteTimeout:   cfg.RedisWT,
		PoolSize:       cfg.RedisPoolSize,
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
		WarnThreshold:  cfg.RedisWarnThreshold,
	}, loggerClient)
	if err != nil {
		loggerClient.Errorf("Failed to connect to Redis: %v", err)
		stop()
		os.Exit(1)
	}
	loggerClient.Info("Redis initialized successfully")

	// Select the persistence gateway.
	var gateway store.Gateway
	var pgPool *pgxpool.Pool
	switch cfg.StorageBackend {
	case config.StoragePostgres:
		if cfg.RunMigrations {
			if err := pgstore.Migrate(cfg.PostgresURL); err != nil {
				loggerClient.Errorf("Failed to run migrations: %v", err)
				stop()
				os.Exit(1)
			}
			loggerClient.Info("database migrations applied")
		}
		pgPool, err = pgstore.Connect(ctx, cfg.PostgresURL)
		if err != nil {
			loggerClient.Errorf("Failed to connect to Postgres: %v", err)
			stop()
			os.Exit(1)
		}
		gateway = pgstore.NewStore(pgPool)
		loggerClient.Info("using postgres persistence gateway")
	default:
		gateway = redisstore.NewStore(redisClient)
		loggerClient.Info("using redis persistence gateway")
	}

	// Platform catalog (built-in table unless a file override is set).
	cat, err := catalog.LoadFile(cfg.PlatformFile)
	if err != nil {
		loggerClient.Errorf("Failed to load platform catalog: %v", err)
		stop()
		os.Exit(1)
	}
	loggerClient.Info("platform catalog loaded",
		logger.Int("platforms", cat.Count()))

	emitter := redisstore.NewEmitter(redisClient, cfg.EventChannel)
	reporter := activity.NewReporter(gateway, emitter, loggerClient)
	enforcer := quota.New(gateway, loggerClient, cfg.QuotaMaxLinks, cfg.QuotaWindow, cfg.QuotaFailOpen)

	registry := scheduler.NewRegistry(
		cat,
		outcome.New(),
		enforcer,
		gateway,
		reporter,
		loggerClient,
		cfg.TickInterval,
		cfg.TickJitter,
	)

	d := deps.Deps{
		Logger:    loggerClient,
		StartTime: time.Now(),
		Version:   version.Version,
		Commit:    version.Commit,
		BuildDate: version.BuildDate,
		GoVersion: version.GoVersion,
		AppCtx:    ctx,
		Registry:  registry,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		pgPool:      pgPool,
		registry:    registry,
		ctx:         ctx,
		stop:        stop,
	}
}

func (a *App) Run() error {
	defer a.stop()

	a.logger.Infof("🚀 Starting LinkForge v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("LinkForge %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)
	a.logger.Info("publishing scheduler ready",
		logger.Duration("tick_interval", a.cfg.TickInterval),
		logger.Float64("tick_jitter", a.cfg.TickJitter),
		logger.Int("quota_max_links", a.cfg.QuotaMaxLinks))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-a.ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	// Stop all campaign workers first so no tick writes during teardown.
	a.registry.StopAll()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.pgPool != nil {
		a.pgPool.Close()
		a.logger.Info("✅ Postgres pool closed cleanly")
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ LinkForge stopped cleanly")
	return nil
}
