package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"giftlist/internal/auth"
	"giftlist/internal/config"
	"giftlist/internal/domain"
	"giftlist/internal/domain/models"
	"giftlist/internal/handler"
	"giftlist/internal/middleware"
	"giftlist/internal/policy"
	"giftlist/internal/repository/postgres"
	"giftlist/internal/roles"
	"giftlist/internal/service"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	var logWriter io.Writer = os.Stdout
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, cfg.LogMaxFiles)
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		defer logFile.Close()
		logWriter = io.MultiWriter(os.Stdout, logFile)
	}

	logger := slog.New(slog.NewJSONHandler(logWriter, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected",
		"max_conns", 25,
		"min_conns", 5,
	)

	// Create repositories
	tables := postgres.NewTableNames(cfg.TablePrefix)
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	userRepo := postgres.NewUserRepository(repoConfig)
	roleRepo := postgres.NewRoleRepository(repoConfig)
	groupRepo := postgres.NewGroupRepository(repoConfig)
	invitationRepo := postgres.NewInvitationRepository(repoConfig)
	wishListRepo := postgres.NewWishListRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool, logger)

	// Role definitions sanity-check the embedded seed file at startup even
	// though the server only reads roles from the database afterwards.
	if _, err := roles.NewRegistry(); err != nil {
		log.Fatalf("Failed to load role definitions: %v", err)
	}

	// Capability token codec
	codec, err := auth.NewTokenCodec(cfg.JWTSecret)
	if err != nil {
		log.Fatalf("Failed to create token codec: %v", err)
	}

	resolver := auth.NewIdentityResolver(userRepo, roleRepo, logger)

	// Federated identity provider verifier
	var verifier auth.ProviderVerifier
	if cfg.ProviderJWKSURL != "" {
		verifier, err = auth.NewProviderVerifier(cfg.ProviderJWKSURL, cfg.ProviderIssuer, cfg.ProviderAudience, logger)
		if err != nil {
			log.Fatalf("Failed to create provider verifier: %v", err)
		}
	} else {
		if cfg.Environment == "prod" {
			log.Fatalf("PROVIDER_JWKS_URL must be set in production")
		}
		logger.Warn("PROVIDER_JWKS_URL not set; federated login disabled")
		verifier = disabledVerifier{}
	}

	// Create services
	scope := policy.NewGroupScope(groupRepo)
	groupService := service.NewGroupService(groupRepo, scope, txManager, logger)
	invitationService := service.NewInvitationService(invitationRepo, scope, logger)
	wishListService := service.NewWishListService(wishListRepo, scope, logger)

	logger.Info("services initialized")

	router := handler.NewRouter(&handler.RouterConfig{
		Codec:       codec,
		Resolver:    resolver,
		Verifier:    verifier,
		Groups:      groupService,
		Invitations: invitationService,
		WishLists:   wishListService,
		Logger:      logger,
	})

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS -> Recovery -> Routes
	var httpHandler http.Handler = router
	httpHandler = middleware.Recovery(logger)(httpHandler)

	// CORS must sit outermost to answer OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	httpHandler = corsHandler.Handler(httpHandler)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// disabledVerifier rejects every federated login. Used in dev when no
// provider is configured so the rest of the API stays usable.
type disabledVerifier struct{}

func (disabledVerifier) VerifyIDToken(string) (*models.ExternalProfile, error) {
	return nil, domain.NewBadRequestError("federated login is not configured")
}
