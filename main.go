package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vacancy/config"
	"vacancy/cron"
	"vacancy/database"
	snapshotRepo "vacancy/database/repository/snapshot"
	"vacancy/handlers"
	"vacancy/middleware"
	"vacancy/routes"
	"vacancy/services/availability"
	"vacancy/services/checkin"
	"vacancy/services/notion"
	"vacancy/services/reservation"
	"vacancy/services/telegram"
	"vacancy/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := utils.InitializeLogger(cfg)
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		logger.Sugar().Fatalf("main: invalid configuration: %v", err)
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	// Reservation workspace.
	notionClient := notion.NewClient(cfg.NotionAPIKey,
		notion.WithBaseURL(cfg.NotionBaseURL),
		notion.WithLogger(logger),
	)
	store := notion.NewStore(notionClient, notion.Databases{
		Reservations: cfg.MainDatabaseID,
		Listings:     cfg.ListingsDatabaseID,
		Persons:      cfg.PersonDatabaseID,
		Cleanings:    cfg.CleaningDatabaseID,
	}, logger)

	availabilityService := &availability.DefaultAvailabilityService{
		Source:        store,
		Logger:        logger,
		KeepSnapshots: cfg.SnapshotRetention,
	}

	// Optional backing stores. The service still answers without them.
	var mongoClient *mongo.Client
	if client, err := database.Connect(cfg); err != nil {
		logger.Warn("main: MongoDB unavailable, snapshots disabled", zap.Error(err))
	} else {
		mongoClient = client
		repo := snapshotRepo.NewMongoSnapshotRepo(client.Database(cfg.DatabaseName))
		if err := repo.EnsureIndexes(rootCtx); err != nil {
			logger.Warn("main: failed to ensure snapshot indexes", zap.Error(err))
		}
		availabilityService.Snapshots = repo
		logger.Info("Connected to MongoDB", zap.String("database", cfg.DatabaseName))
	}

	var redisClient *redis.Client
	if client, err := utils.NewCacheClient(cfg); err != nil {
		logger.Warn("main: Redis unavailable, report cache disabled", zap.Error(err))
	} else {
		redisClient = client
		availabilityService.Cache = availability.NewRedisReportCache(client, cfg.ReportCacheTTL)
		logger.Info("Connected to Redis (Cache)", zap.String("addr", cfg.RedisAddr))
	}

	healthMonitor := utils.NewHealthMonitor(redisClient, mongoClient)
	healthMonitor.Start(rootCtx, 30*time.Second)

	// services.
	checkInService := &checkin.DefaultCheckInService{
		Source:   store,
		Location: cfg.Location(),
	}
	reservationService := &reservation.DefaultReservationService{
		Store:          store,
		Availability:   availabilityService,
		CleaningAmount: cfg.CleaningAmount,
		Logger:         logger,
	}

	availabilityHandler := handlers.NewAvailabilityHandler(availabilityService, checkInService, store)
	reservationHandler := handlers.NewReservationHandler(reservationService)

	handlerBundle := &handlers.HandlerBundle{
		GetEmptyDatesHandler:  availabilityHandler.GetEmptyDatesHandler,
		GetCheckInsHandler:    availabilityHandler.GetCheckInsHandler,
		GetRoomsHandler:       availabilityHandler.GetRoomsHandler,
		AddReservationHandler: reservationHandler.AddReservationHandler,
		LogCleaningHandler:    reservationHandler.LogCleaningHandler,
		HealthHandler:         handlers.HealthHandler(healthMonitor),
		RateLimit:             middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin),
	}

	// Telegram bot and the daily digest.
	var digestWorker *cron.DigestWorker
	if cfg.TelegramEnabled() {
		api, err := telegram.NewAPI(cfg.TelegramAPIKey, cfg.WebhookURL)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize telegram bot: %v", err)
		}
		logger.Info("Telegram bot authorized", zap.String("username", api.Self.UserName))

		bot := telegram.NewBot(api, availabilityService, checkInService, store, logger,
			telegram.WithCleaner(reservationService),
			telegram.WithLocation(cfg.Location()),
		)
		handlerBundle.TelegramWebhookHandler = handlers.NewTelegramHandler(bot).WebhookHandler

		if cfg.DigestChatID != 0 {
			digestWorker, err = cron.NewDigestWorker(cfg, bot, logger)
			if err != nil {
				logger.Sugar().Fatalf("main: failed to initialize digest worker: %v", err)
			}
			digestWorker.Start()
		}
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(utils.RequestContext(logger))
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	routes.RegisterRoutes(router, handlerBundle)

	srv := &http.Server{
		Addr:    "0.0.0.0:" + cfg.AppPort,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	if digestWorker != nil {
		digestWorker.Shutdown()
	}
	if redisClient != nil {
		redisClient.Close()
	}
	if mongoClient != nil {
		mongoClient.Disconnect(ctx)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
