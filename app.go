package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/internal/config"
	"storefront/internal/credentials"
	"storefront/internal/database"
	"storefront/internal/handlers"
	"storefront/internal/middleware"
	"storefront/internal/repositories"
	"storefront/internal/services"
	"storefront/internal/session"
	eventkafka "storefront/pkg/kafka"
	"storefront/pkg/rabbitmq"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 10 * time.Second

// application owns every long-lived resource of the server.
type application struct {
	cfg       *config.Config
	db        *gorm.DB
	fiber     *fiber.App
	publisher services.OrderEventPublisher
	consumer  *rabbitmq.Client
	closers   []func() error
}

func databaseOptions(cfg *config.Config) database.Options {
	opts := database.Options{
		Driver:       cfg.DatabaseDriver,
		DSN:          cfg.DatabaseDSN,
		MaxOpenConns: cfg.DatabaseMaxOpenConns,
	}
	if cfg.LogLevel == "debug" || cfg.LogLevel == "trace" {
		opts.LogLevel = gormlogger.Info
	}
	return opts
}

// newApplication connects the database, session store and event backend
// and builds the HTTP app on top of them.
func newApplication(cfg *config.Config) (*application, error) {
	app := &application{cfg: cfg}

	db, err := database.Open(databaseOptions(cfg))
	if err != nil {
		return nil, err
	}
	app.db = db
	app.closers = append(app.closers, func() error { return database.Close(db) })

	scheme, err := credentials.New(cfg.CredentialScheme)
	if err != nil {
		app.Close()
		return nil, err
	}

	sessions, err := app.newSessionStore()
	if err != nil {
		app.Close()
		return nil, err
	}

	if err := app.connectEvents(); err != nil {
		app.Close()
		return nil, err
	}

	productRepo := repositories.NewGORMProductRepository(db)
	userRepo := repositories.NewGORMUserRepository(db, scheme)
	orderRepo := repositories.NewGORMOrderRepository(db)
	reviewRepo := repositories.NewGORMReviewRepository(db)

	app.fiber = newFiberApp(app.healthCheck, handlers.Dependencies{
		Tokens:     middleware.NewSessionTokens(cfg.JWTSecret, cfg.SessionTTL),
		Sessions:   sessions,
		Products:   services.NewProductService(productRepo),
		Reviews:    services.NewReviewService(reviewRepo),
		Auth:       services.NewAuthService(userRepo, scheme),
		Cart:       services.NewCartService(productRepo),
		Checkout:   services.NewCheckoutService(userRepo, orderRepo, productRepo, app.publisher),
		Orders:     services.NewOrderService(orderRepo),
		AdminToken: cfg.AdminToken,
	})
	return app, nil
}

func (a *application) newSessionStore() (session.Store, error) {
	switch a.cfg.SessionBackend {
	case "redis":
		client := session.NewRedisClient(a.cfg.RedisAddr,
			session.WithPassword(a.cfg.RedisPassword),
			session.WithDB(a.cfg.RedisDB),
		)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", a.cfg.RedisAddr, err)
		}
		a.closers = append(a.closers, client.Close)
		log.Info().Str("addr", a.cfg.RedisAddr).Msg("sessions stored in redis")
		return session.NewRedisStore(client, a.cfg.SessionTTL), nil
	default:
		return session.NewMemoryStore(a.cfg.SessionTTL), nil
	}
}

func (a *application) connectEvents() error {
	switch a.cfg.EventsBackend {
	case "rabbitmq":
		client, err := rabbitmq.NewClient(rabbitmq.Config{URL: a.cfg.RabbitMQURL})
		if err != nil {
			return err
		}
		a.closers = append(a.closers, client.Close)
		a.publisher = client
		if a.cfg.RabbitMQConsume {
			a.consumer = client
		}
	case "kafka":
		publisher, err := eventkafka.NewPublisher(eventkafka.Config{
			Brokers: a.cfg.Brokers(),
			Topic:   a.cfg.KafkaTopic,
		})
		if err != nil {
			return err
		}
		a.closers = append(a.closers, publisher.Close)
		a.publisher = publisher
	}
	return nil
}

func (a *application) healthCheck(ctx context.Context) error {
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// newFiberApp builds the HTTP app: access logging, panic recovery, the
// health endpoint and the API routes.
func newFiberApp(health func(context.Context) error, deps handlers.Dependencies) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "storefront",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		status, code := "healthy", fiber.StatusOK
		if err := health(c.UserContext()); err != nil {
			log.Error().Err(err).Msg("health check failed")
			status, code = "unhealthy", fiber.StatusServiceUnavailable
		}
		return c.Status(code).JSON(fiber.Map{
			"status": status,
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	handlers.RegisterRoutes(app, deps)
	return app
}

// Run serves HTTP (and consumes order events when enabled) until ctx is
// cancelled, then shuts the server down gracefully.
func (a *application) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", a.cfg.AppPort).Msg("starting server")
		if err := a.fiber.Listen(a.cfg.AppPort); err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("shutting down server")
		return a.fiber.ShutdownWithTimeout(shutdownTimeout)
	})

	if a.consumer != nil {
		g.Go(func() error {
			return a.consumer.ConsumeOrderEvents(ctx, rabbitmq.LogOrderEvent)
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info().Msg("server gracefully stopped")
	return nil
}

// Close releases resources in reverse order of acquisition.
func (a *application) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
