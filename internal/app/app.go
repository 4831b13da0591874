package app

import (
	"context"
	"fmt"
	"time"

	"beautymatch_backend/internal/config"
	"beautymatch_backend/internal/gateway"
	"beautymatch_backend/internal/handlers"
	"beautymatch_backend/internal/logger"
	"beautymatch_backend/internal/middleware"
	"beautymatch_backend/internal/models"
	"beautymatch_backend/internal/repositories"
	"beautymatch_backend/internal/routes"
	"beautymatch_backend/internal/services"
	"beautymatch_backend/internal/validator"
	"beautymatch_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	// TranslateError нужен, чтобы репозитории ловили gorm.ErrDuplicatedKey
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := gormDB.AutoMigrate(
		&models.User{},
		&models.ServiceRequest{},
		&models.AvailabilityPost{},
		&models.ModelResponse{},
		&models.CustomerOffer{},
		&models.Subscription{},
		&models.Rating{},
	); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	// Фоновая деактивация истекших подписок
	subRepo := repositories.NewSubscriptionRepository(gormDB)
	userRepo := repositories.NewUserRepository(gormDB)
	worker := workers.NewSubscriptionWorker(subRepo, userRepo, time.Hour)
	worker.Start(context.Background())

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("🚀 Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	serviceContainer := initializeServices(cfg, gormDB)
	appHandlers := handlers.NewAppHandlers(serviceContainer, validator.New())

	ginRouter := initializeGinRouter()
	routes.RegisterRoutes(ginRouter, appHandlers, cfg.Gateway.Token)
	return ginRouter
}

func initializeServices(cfg *config.Config, gormDB *gorm.DB) *services.ServiceContainer {
	userRepo := repositories.NewUserRepository(gormDB)
	listingRepo := repositories.NewListingRepository(gormDB)
	responseRepo := repositories.NewResponseRepository(gormDB)
	subscriptionRepo := repositories.NewSubscriptionRepository(gormDB)
	ratingRepo := repositories.NewRatingRepository(gormDB)

	var messenger gateway.Messenger
	if cfg.Telegram.BotToken == "" {
		logger.Warn("--- Telegram bot token is not set. Using MOCK messenger. ---")
		messenger = &MockMessenger{}
	} else {
		messenger = gateway.NewTelegramMessenger(cfg.Telegram.APIBase, cfg.Telegram.BotToken, cfg.Telegram.ChannelID)
	}

	var paymentGateway gateway.PaymentGateway
	if cfg.Payments.ShopID == "" {
		logger.Warn("--- Payment credentials are not set. Using MOCK payment gateway. ---")
		paymentGateway = &MockPaymentGateway{}
	} else {
		paymentGateway = gateway.NewYooKassaClient(cfg.Payments.APIBase, cfg.Payments.ShopID, cfg.Payments.SecretKey, cfg.Payments.ReturnURL)
	}

	notificationService := services.NewNotificationService(messenger)
	subscriptionService := services.NewSubscriptionService(subscriptionRepo, userRepo, cfg.Subscriptions.TrialDays)
	identityService := services.NewIdentityService(userRepo, subscriptionRepo, listingRepo, responseRepo)
	listingService := services.NewListingService(listingRepo, userRepo, subscriptionService, notificationService, cfg.Limits.PostIntervalHours)
	responseService := services.NewResponseService(responseRepo, listingRepo, userRepo, notificationService, cfg.Limits.ResponseMultiplier)
	ratingService := services.NewRatingService(ratingRepo, responseRepo, userRepo)
	formService := services.NewFormService(identityService, listingService)
	paymentService := services.NewPaymentService(paymentGateway, subscriptionService, subscriptionRepo, userRepo, map[models.UserRole]services.Tariff{
		models.UserRoleModel:    {Price: cfg.Subscriptions.ModelPrice, Days: cfg.Subscriptions.ModelDays},
		models.UserRoleCustomer: {Price: cfg.Subscriptions.CustomerPrice, Days: cfg.Subscriptions.CustomerDays},
	})

	return &services.ServiceContainer{
		IdentityService:     identityService,
		SubscriptionService: subscriptionService,
		ListingService:      listingService,
		ResponseService:     responseService,
		RatingService:       ratingService,
		NotificationService: notificationService,
		PaymentService:      paymentService,
		FormService:         formService,
	}
}

func initializeGinRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	return router
}
