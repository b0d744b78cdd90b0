package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"

	"glowcart-marketing-core/internal/application"
	"glowcart-marketing-core/internal/config"
	"glowcart-marketing-core/internal/domain"
	apiinfra "glowcart-marketing-core/internal/infrastructure/api"
	securitymiddleware "glowcart-marketing-core/internal/infrastructure/middleware"
	"glowcart-marketing-core/internal/infrastructure/pubsub"
	"glowcart-marketing-core/internal/infrastructure/repository"
	"glowcart-marketing-core/internal/infrastructure/sessionstore"
	shopifyinfra "glowcart-marketing-core/internal/infrastructure/shopify"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	// Initialize logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg("⚠️  Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("Invalid configuration")
	}

	// Connect to MongoDB
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer client.Disconnect(context.Background())

	db := client.Database(cfg.MongoDatabase)

	// Connect to Redis for sessions
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	defer redisClient.Close()

	// Initialize repositories
	shopRepo := repository.NewMongoShopRepository(db)
	userRepo := repository.NewMongoUserRepository(db)
	campaignRepo := repository.NewMongoCampaignRepository(db)
	socialRepo := repository.NewMongoSocialRepository(db)
	popupRepo := repository.NewMongoPopupRepository(db)
	seoRepo := repository.NewMongoSEORepository(db)
	webhookRepo := repository.NewMongoWebhookRepository(db)
	sessionStore := sessionstore.NewRedisStore(redisClient, cfg.SessionTTL)

	// Initialize provider adapters
	shopifyClient := shopifyinfra.NewClient(cfg.APIKey, cfg.APISecret, cfg.Scopes, cfg.CallbackURL(), logger)
	adminGateway := shopifyinfra.NewAdminGateway(cfg.APIKey, cfg.APISecret, logger)
	webhookVerifier := shopifyinfra.NewWebhookVerifier(cfg.APISecret)

	// Initialize application services
	oauthService := application.NewOAuthService(shopRepo, sessionStore, shopifyClient, adminGateway, logger)
	billingService := application.NewBillingService(
		shopRepo,
		shopifyClient,
		domain.NewPlanCatalog(!cfg.Production()),
		cfg.BillingReturnURL(),
		logger,
	)
	userService := application.NewUserService(userRepo, sessionStore, logger)
	marketingService := application.NewMarketingService(campaignRepo, socialRepo, popupRepo, seoRepo, logger)
	dashboardService := application.NewDashboardService(campaignRepo, socialRepo, popupRepo, logger)
	uninstallService := application.NewUninstallService(shopRepo, logger)

	// Fan received webhooks out to the uninstall processor
	webhookPubSub := pubsub.NewWebhookPubSub(logger)
	uninstallChannel := webhookPubSub.Subscribe(context.Background(), &pubsub.WebhookEventFilter{
		Topics: []string{"app/uninstalled"},
	})
	go func() {
		for event := range uninstallChannel.Events {
			if err := uninstallService.Handle(context.Background(), event.Shop); err != nil {
				logger.Error().Err(err).Str("shop", event.Shop).Msg("Failed to process uninstall")
			}
		}
	}()

	// Initialize HTTP handlers
	oauthHandlers := apiinfra.NewOAuthHandlers(oauthService, cfg.DashboardURL(), logger)
	billingHandlers := apiinfra.NewBillingHandlers(billingService, cfg.SubscriptionPageURL(), logger)
	userHandlers := apiinfra.NewUserHandlers(userService, logger)
	marketingHandlers := apiinfra.NewMarketingHandlers(marketingService, logger)
	dashboardHandlers := apiinfra.NewDashboardHandlers(dashboardService, logger)
	adminProxyHandlers := apiinfra.NewAdminProxyHandlers(adminGateway, logger)
	webhookHandlers := apiinfra.NewWebhookHandlers(webhookVerifier, webhookRepo, webhookPubSub, logger)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(securitymiddleware.SecurityHeadersMiddleware())
	r.Use(securitymiddleware.MetricsMiddleware())
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.AppURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	// Public routes without a session: health, metrics, docs, webhooks
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	r.Get("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		http.ServeFile(w, r, "./docs/swagger.json")
	})
	webhookHandlers.Register(r)

	// Session-scoped routes
	r.Group(func(r chi.Router) {
		r.Use(securitymiddleware.SessionMiddleware(sessionStore, cfg.SessionTTL, cfg.Production(), logger))

		oauthHandlers.Register(r)
		userHandlers.Register(r)
		marketingHandlers.RegisterPublic(r)

		// Routes requiring a connected shop
		r.Group(func(r chi.Router) {
			r.Use(securitymiddleware.RequireShop(shopRepo, logger))

			billingHandlers.Register(r)
			marketingHandlers.Register(r)
			dashboardHandlers.Register(r)
			adminProxyHandlers.Register(r)
		})

		// Routes requiring an authenticated user
		r.Group(func(r chi.Router) {
			r.Use(securitymiddleware.RequireUser(userRepo, logger))

			userHandlers.RegisterProtected(r)
		})
	})

	logger.Info().Str("port", cfg.Port).Msg("Starting API server")
	logger.Info().Msg("Swagger documentation available at http://localhost:" + cfg.Port + "/swagger/index.html")
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start server")
	}
}
