package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Freeeeeet/agenda/internal/app"
	"github.com/Freeeeeet/agenda/internal/availability"
	"github.com/Freeeeeet/agenda/internal/config"
	"github.com/Freeeeeet/agenda/internal/controller"
	"github.com/Freeeeeet/agenda/internal/controller/httpapi"
	"github.com/Freeeeeet/agenda/internal/events"
	"github.com/Freeeeeet/agenda/internal/locker"
	"github.com/Freeeeeet/agenda/internal/repository"
	"github.com/Freeeeeet/agenda/internal/service"
	"github.com/go-telegram/bot"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment, cfg.LogLevel)
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("Service stopped with error", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting agenda",
		zap.String("environment", cfg.Environment),
		zap.String("http_addr", cfg.HTTPAddr),
		zap.Bool("bot_enabled", cfg.BotEnabled()),
	)

	pool, err := app.NewPool(ctx, cfg.DBDSN, logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath, logger)
	if err != nil {
		return err
	}
	if err := migrator.Run(ctx); err != nil {
		migrator.Close()
		return err
	}
	migrator.Close()

	// Блокировка дня специалиста: Redis если настроен, иначе только база
	var dayLocker locker.Locker = locker.NoopLocker{}
	if cfg.RedisAddr != "" {
		redisClient, err := locker.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, logger)
		if err != nil {
			return err
		}
		defer redisClient.Close()
		dayLocker = locker.NewRedisLocker(redisClient, logger)
	} else {
		logger.Warn("REDIS_ADDR not set, booking relies on database locks only")
	}

	var publisher events.Publisher = events.NoopPublisher{Logger: logger}
	if cfg.AMQPURL != "" {
		amqpPublisher, err := events.NewAMQPPublisher(cfg.AMQPURL, logger)
		if err != nil {
			return err
		}
		defer amqpPublisher.Close()
		publisher = amqpPublisher
	} else {
		logger.Warn("AMQP_URL not set, events are not published")
	}

	// Репозитории
	enterpriseRepo := repository.NewEnterpriseRepository(pool)
	professionalRepo := repository.NewProfessionalRepository(pool)
	serviceRepo := repository.NewServiceRepository(pool)
	clientRepo := repository.NewClientRepository(pool)
	appointmentRepo := repository.NewAppointmentRepository(pool)
	codeRepo := repository.NewVerificationCodeRepository(pool)

	grid, err := availability.NewGrid(availability.DefaultGridCacheSize)
	if err != nil {
		return err
	}

	// Сервисы
	availabilityService := service.NewAvailabilityService(
		enterpriseRepo,
		professionalRepo,
		serviceRepo,
		appointmentRepo,
		availability.NewEvaluator(grid),
		logger,
	)
	bookingService := service.NewBookingService(
		availabilityService,
		appointmentRepo,
		clientRepo,
		dayLocker,
		publisher,
		cfg.BookingLockTTL,
		logger,
	)
	catalogService := service.NewCatalogService(enterpriseRepo, professionalRepo, serviceRepo, clientRepo, logger)
	verificationService := service.NewVerificationService(codeRepo, clientRepo, publisher, cfg.VerificationCodeTTL, logger)

	scheduler := app.NewScheduler(verificationService, cfg.VerificationPurgeInterval, logger)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	if cfg.BotEnabled() {
		b, err := bot.New(cfg.TelegramToken, bot.WithErrorsHandler(func(err error) {
			logger.Error("Telegram bot error", zap.Error(err))
		}))
		if err != nil {
			return err
		}

		botController := controller.NewBotController(b, availabilityService, bookingService, catalogService, verificationService, logger)
		if err := botController.RegisterHandlers(ctx); err != nil {
			logger.Warn("Bot commands menu not set", zap.Error(err))
		}
		go botController.Start(ctx)
	}

	handlers := httpapi.NewHandlers(availabilityService, bookingService, catalogService, verificationService, pool, logger)
	server := &http.Server{
		Addr: cfg.HTTPAddr,
		Handler: httpapi.NewRouter(handlers, httpapi.RouterConfig{
			RateLimitPerMinute: cfg.HTTPRateLimitPerMin,
			RequestTimeout:     cfg.HTTPRequestTimeout,
		}, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-serverErr:
		if err != nil {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("Agenda stopped")
	return nil
}
