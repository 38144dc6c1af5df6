// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/AccelByte/extend-conditional-actions/internal/bootstrap"
	"github.com/AccelByte/extend-conditional-actions/internal/config"
	"github.com/AccelByte/extend-conditional-actions/internal/server"
	"github.com/AccelByte/extend-conditional-actions/pkg/common"
	"github.com/AccelByte/extend-conditional-actions/pkg/handler"
	"github.com/AccelByte/extend-conditional-actions/pkg/metrics"
	"github.com/AccelByte/extend-conditional-actions/pkg/pipeline"
	"github.com/AccelByte/extend-conditional-actions/pkg/ruleset"
	"github.com/AccelByte/extend-conditional-actions/pkg/scheduler"
	"github.com/AccelByte/extend-conditional-actions/pkg/service"
	"github.com/cenkalti/backoff/v4"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	actionBuiltin "github.com/AccelByte/extend-conditional-actions/pkg/action/builtin"
)

// App holds all application dependencies and manages the application lifecycle.
type App struct {
	cfg               *config.Config
	grpcServer        *server.GRPCServer
	httpServer        *server.HTTPServer
	metricsServer     *server.MetricsServer
	redisClient       *redis.Client
	shutdownTelemetry func(context.Context) error

	configurator *pipeline.Configurator
	scheduler    *scheduler.Scheduler
	broadcasts   *actionBuiltin.BroadcastRestorer

	// background loops (scheduler, rule set refresher)
	stopLoops context.CancelFunc
	loops     sync.WaitGroup
}

// New creates and initializes a new application instance.
//
// ============================================================
// DEVELOPER: Application initialization order
// ============================================================
// Components are initialized in dependency order:
// 1. Telemetry (OpenTelemetry tracing)
// 2. Redis (required by the redis store backend)
// 3. Rule set store, execution tracker and active rule set
// 4. External services (game server API, Discord webhooks)
// 5. Pipeline components (signal → engine → action)
// 6. Servers (gRPC, config API, metrics)
//
// If you add new external dependencies, initialize them in
// step 4 before bootstrapping pipeline components.
// ============================================================
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	logrus.Info("initializing application...")

	app := &App{cfg: cfg}
	m := metrics.New()

	// ============================================================
	// Step 1: Setup telemetry
	// ============================================================
	shutdownTelemetry, err := server.SetupTelemetry(ctx, common.TracerConfig{
		ServiceName:    cfg.ServiceName,
		Environment:    cfg.Environment,
		Export:         cfg.OtelEnabled,
		ZipkinEndpoint: cfg.ZipkinEndpoint,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to setup telemetry: %w", err)
	}
	app.shutdownTelemetry = shutdownTelemetry

	// ============================================================
	// Step 2: Initialize Redis
	// ============================================================
	var health handler.HealthChecker
	if cfg.StoreBackend == config.BackendRedis {
		if err := app.initRedis(ctx); err != nil {
			return nil, fmt.Errorf("failed to init Redis: %w", err)
		}
		health = service.NewRedisService(app.redisClient, service.RedisServiceConfig{})
	}

	// ============================================================
	// Step 3: Load the active rule set
	// ============================================================
	// The store is authoritative. The seed file is only used the
	// first time, when the store holds no rule set yet.
	// ============================================================
	store, tr, err := bootstrap.InitStores(cfg.StoreBackend, app.redisClient)
	if err != nil {
		return nil, fmt.Errorf("failed to init stores: %w", err)
	}

	holder := ruleset.NewHolder(nil)
	app.configurator = pipeline.NewConfigurator(holder, store, tr, m)
	if err := app.configurator.Load(ctx, cfg.RulesetSeedPath); err != nil {
		return nil, fmt.Errorf("failed to load rule set: %w", err)
	}

	// ============================================================
	// Step 4: Initialize external services
	// ============================================================
	// DEVELOPER: Add custom external service initialization here
	// and attach it to service.Dependencies.
	// ============================================================
	deps, facts := app.initGameServices()

	// ============================================================
	// Step 5: Bootstrap pipeline components
	// ============================================================
	// The pipeline is built in this order:
	// Signal Processor → Action Executor → Engine → Pipeline Manager
	// ============================================================
	processor := bootstrap.InitSignalProcessor(facts)

	actionExecutor, actionRegistry, broadcasts, err := bootstrap.InitActionExecutor(deps)
	if err != nil {
		return nil, fmt.Errorf("failed to init action executor: %w", err)
	}
	app.broadcasts = broadcasts

	pipelineManager := bootstrap.InitPipeline(processor, holder, tr, actionExecutor, cfg.ExecutorTimeout, m)

	// ============================================================
	// Validate pipeline wiring
	// ============================================================
	// This ensures every action type has a handler and every game
	// event type has a mapper.
	// ============================================================
	if err := pipeline.ValidateWiring(actionRegistry, processor.GetMapperRegistry()); err != nil {
		return nil, fmt.Errorf("pipeline wiring validation failed: %w", err)
	}
	logrus.Info("pipeline wiring validation passed")

	app.scheduler = scheduler.New(holder, pipelineManager, scheduler.Config{
		TickInterval: cfg.SchedulerTickInterval,
	})

	// ============================================================
	// Step 6: Setup servers
	// ============================================================
	app.grpcServer = server.NewGRPCServer(cfg.GRPCPort, handler.NewGameEvents(pipelineManager), m)
	if err := app.grpcServer.Setup(); err != nil {
		return nil, fmt.Errorf("failed to setup gRPC server: %w", err)
	}

	configAPI := handler.NewConfigAPI(app.configurator, health)
	app.httpServer = server.NewHTTPServer(cfg.HTTPPort, configAPI.Handler())
	if err := app.httpServer.Setup(); err != nil {
		return nil, fmt.Errorf("failed to setup config API server: %w", err)
	}

	app.metricsServer = server.NewMetricsServer(cfg.MetricsPort, "/metrics", m)
	if err := app.metricsServer.Setup(); err != nil {
		return nil, fmt.Errorf("failed to setup metrics server: %w", err)
	}

	logrus.Info("application initialized successfully")

	return app, nil
}

// initRedis initializes the Redis client.
func (a *App) initRedis(ctx context.Context) error {
	client := redis.NewClient(&redis.Options{
		Addr:         a.cfg.RedisAddr(),
		Password:     a.cfg.RedisPassword,
		DB:           0, // use default DB
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = a.cfg.RedisRetryDelay()
	maxRetries := backoff.WithMaxRetries(b, uint64(a.cfg.RedisMaxRetries))

	err := backoff.Retry(
		func() error {
			_, err := client.Ping(ctx).Result()
			if err != nil {
				logrus.Warnf("Redis connection failed: %v, retrying...", err)
				return err
			}
			return nil
		},
		backoff.WithContext(maxRetries, ctx),
	)

	if err != nil {
		_ = client.Close()
		return err
	}

	a.redisClient = client
	logrus.Infof("Redis client initialized (%s)", a.cfg.RedisAddr())
	return nil
}

// initGameServices creates the game server command client, the fact
// provider and the webhook sender.
//
// Without GAME_API_URL the service runs against a no-op game server that
// logs commands, and rules only see the facts carried by the event itself.
func (a *App) initGameServices() (*service.Dependencies, service.FactProvider) {
	webhook := service.NewDiscordWebhook(service.DiscordWebhookConfig{
		Timeout:    a.cfg.DiscordWebhookTimeout,
		MaxRetries: a.cfg.DiscordWebhookRetries,
	})
	deps := service.NewDependencies().WithWebhook(webhook)

	if a.cfg.GameAPIURL == "" {
		logrus.Warn("GAME_API_URL is not set, game server commands will only be logged")
		return deps.WithGameServer(service.NewNoopGameServer()), service.NoopFactProvider{}
	}

	client := service.NewGameAPIClient(service.GameAPIClientConfig{
		BaseURL: a.cfg.GameAPIURL,
		Token:   a.cfg.GameAPIToken,
		Timeout: a.cfg.GameAPITimeout,
	})
	logrus.Infof("game server API client initialized (%s)", a.cfg.GameAPIURL)

	return deps.WithGameServer(client), client
}
