package main

// @title           TTN Storage Pull Gateway API
// @version         1.0
// @description     HTTP gateway over The Things Network storage integration. Pulls uplinks for an application and time window and announces completed pulls on redis.
// @contact.name   API Support
// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html
// @host      localhost:8090
// @BasePath  /
// @securityDefinitions.basic  BasicAuth

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	_ "github.com/Alwanly/ttn-storage-pull/docs/gateway"
	"github.com/Alwanly/ttn-storage-pull/internal/config"
	"github.com/Alwanly/ttn-storage-pull/internal/server/gateway/handler"
	"github.com/Alwanly/ttn-storage-pull/internal/storage"
	authentication "github.com/Alwanly/ttn-storage-pull/pkg/auth"
	"github.com/Alwanly/ttn-storage-pull/pkg/deps"
	"github.com/Alwanly/ttn-storage-pull/pkg/logger"
	"github.com/Alwanly/ttn-storage-pull/pkg/middleware"
	"github.com/Alwanly/ttn-storage-pull/pkg/pubsub"
	"github.com/Alwanly/ttn-storage-pull/pkg/retry"
	swagger "github.com/gofiber/swagger"
)

func main() {
	configFile := flag.String("config", "", "optional YAML config file")
	flag.Parse()

	log, err := logger.NewLoggerFromEnv("gateway")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	log.Info("starting gateway service")

	cfg, err := config.LoadGatewayConfig(*configFile)
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}

	log.Info("configuration loaded",
		logger.String("server_addr", cfg.ServerAddr),
		logger.Duration("request_timeout", cfg.RequestTimeout),
		logger.String("v3_base_url", cfg.V3BaseURL),
	)

	mid := middleware.NewAuthMiddleware(middleware.SetBasicAuth(&authentication.BasicAuthTConfig{
		Username: cfg.Username,
		Password: cfg.Password,
	}))

	app := fiber.New(fiber.Config{
		AppName:               "TTN Storage Pull Gateway",
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler(log),
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.CanonicalLoggerMiddleware(log))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	deps := deps.App{
		Fiber:      app,
		Logger:     log,
		Middleware: mid,
		Puller:     storage.NewClient(cfg.Storage(), log),
	}

	if cfg.Redis != nil {
		redisCfg := pubsub.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}
		backoff := retry.Config{
			MaxRetries:     cfg.Redis.ConnectMaxRetries,
			InitialBackoff: cfg.Redis.ConnectInitialBackoff,
			MaxBackoff:     cfg.Redis.ConnectMaxBackoff,
			Multiplier:     2.0,
			Jitter:         true,
		}
		redisPub, err := pubsub.ConnectWithRetry(ctx, redisCfg, backoff, log)
		if err != nil {
			log.WithError(err).Error("failed to initialize redis pub/sub, pull notifications disabled",
				logger.String("impact", "no_pull_notifications"))
		} else {
			deps.Pub = redisPub
			log.Info("redis pub/sub initialized",
				logger.String("addr", redisCfg.Addr()),
				logger.String("channel", cfg.Redis.Channel))
			defer redisPub.Close()
		}
	} else {
		log.Info("no redis configuration provided; pull notifications disabled")
	}

	handler.NewHandler(deps, cfg)

	app.Get("/swagger/*", swagger.HandlerDefault)

	gErr, gCtx := errgroup.WithContext(ctx)

	gErr.Go(func() error {
		log.Info("gateway service is running", logger.String("address", cfg.ServerAddr))
		if err := app.Listen(cfg.ServerAddr); err != nil {
			cancel()
			return err
		}
		return nil
	})

	gErr.Go(func() error {
		<-gCtx.Done()
		if err := app.Shutdown(); err != nil {
			log.WithError(err).Error("failed to shutdown fiber app")
			return err
		}
		return nil
	})

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		log.Info("listening for shutdown signals")
		<-sigChan
		log.Info("shutdown signal received")
		cancel()
	}()

	if err := gErr.Wait(); err != nil {
		log.WithError(err).Fatal("gateway service encountered an error")
	}

	log.Info("gateway service stopped gracefully")
}
