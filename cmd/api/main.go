package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginswagger "github.com/swaggo/gin-swagger"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	_ "investment-bot-backend/docs"
	"investment-bot-backend/internal/common/cache"
	"investment-bot-backend/internal/common/config"
	"investment-bot-backend/internal/common/logger"
	"investment-bot-backend/internal/common/middleware"
	"investment-bot-backend/internal/common/response"
	authhttp "investment-bot-backend/internal/features/auth/delivery/http"
	authservice "investment-bot-backend/internal/features/auth/service"
	"investment-bot-backend/internal/features/auth/token"
	dashboardhttp "investment-bot-backend/internal/features/dashboard/delivery/http"
	investmenthttp "investment-bot-backend/internal/features/investment/delivery/http"
	investmentmongo "investment-bot-backend/internal/features/investment/repository/mongo"
	investmentservice "investment-bot-backend/internal/features/investment/service"
	referralhttp "investment-bot-backend/internal/features/referral/delivery/http"
	referralmongo "investment-bot-backend/internal/features/referral/repository/mongo"
	referralservice "investment-bot-backend/internal/features/referral/service"
	transactionhttp "investment-bot-backend/internal/features/transaction/delivery/http"
	transactionmongo "investment-bot-backend/internal/features/transaction/repository/mongo"
	userhttp "investment-bot-backend/internal/features/user/delivery/http"
	usermongo "investment-bot-backend/internal/features/user/repository/mongo"
	wallethttp "investment-bot-backend/internal/features/wallet/delivery/http"
	walletservicepkg "investment-bot-backend/internal/features/wallet/service"
	mongoplatform "investment-bot-backend/internal/platform/mongo"
	redisplatform "investment-bot-backend/internal/platform/redis"

	redislib "github.com/redis/go-redis/v9"
)

const shutdownTimeout = 30 * time.Second

// @title Investment Bot API
// @version 1.0
// @description Telegram Mini App backend for the investment platform.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Init("investment-api", false)
		logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Init("investment-api", cfg.Debug)

	accessTTL, err := token.ParseExpiry(cfg.Auth.AccessExpiry)
	if err != nil {
		logger.Fatal().Err(err).Msg("Invalid JWT_EXPIRES_IN")
	}
	refreshTTL, err := token.ParseExpiry(cfg.Auth.RefreshExpiry)
	if err != nil {
		logger.Fatal().Err(err).Msg("Invalid JWT_REFRESH_EXPIRES_IN")
	}

	mongoClient, db, err := mongoplatform.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer func() {
		if err := mongoplatform.Close(mongoClient); err != nil {
			logger.Error().Err(err).Msg("MongoDB disconnect failed")
		}
	}()
	logger.Info().Str("database", cfg.Mongo.Database).Msg("Connected to MongoDB")

	if err := ensureIndexes(ctx, db); err != nil {
		logger.Fatal().Err(err).Msg("Failed to create indexes")
	}

	redisClient, err := redisplatform.Open(ctx, cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()
	logger.Info().Msg("Connected to Redis")

	router := buildRouter(cfg, db, mongoClient, redisClient, accessTTL, refreshTTL)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server shutdown failed")
	}
	logger.Info().Msg("Server stopped")
}

func ensureIndexes(ctx context.Context, db *mongodriver.Database) error {
	if err := usermongo.EnsureIndexes(ctx, db); err != nil {
		return fmt.Errorf("user indexes: %w", err)
	}
	if err := referralmongo.EnsureIndexes(ctx, db); err != nil {
		return fmt.Errorf("referral indexes: %w", err)
	}
	if err := investmentmongo.EnsureIndexes(ctx, db); err != nil {
		return fmt.Errorf("investment indexes: %w", err)
	}
	if err := transactionmongo.EnsureIndexes(ctx, db); err != nil {
		return fmt.Errorf("transaction indexes: %w", err)
	}
	return nil
}

func buildRouter(
	cfg *config.Config,
	db *mongodriver.Database,
	mongoClient *mongodriver.Client,
	redisClient *redislib.Client,
	accessTTL, refreshTTL time.Duration,
) *gin.Engine {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	users := usermongo.NewUserRepository(db)
	referrals := referralmongo.NewReferralRepository(db)
	investments := investmentmongo.NewInvestmentRepository(db)
	transactions := transactionmongo.NewTransactionRepository(db)

	cacheStore := cache.New(redisClient)
	tokens := token.NewService(cfg.Auth.AccessSecret, cfg.Auth.RefreshSecret, accessTTL, refreshTTL)

	referralSvc := referralservice.NewReferralService(referrals, users, cfg.Telegram.BotUsername)
	authSvc := authservice.NewAuthService(users, referralSvc, tokens)
	investmentSvc := investmentservice.NewInvestmentService(investments, users, transactions, referralSvc, cacheStore)
	walletSvc := walletservicepkg.NewWalletService(users, transactions)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.Server.Origin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Telegram-Init-Data", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		response.OK(c, http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/live", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	router.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := mongoClient.Ping(ctx, nil); err != nil {
			response.Fail(c, http.StatusServiceUnavailable, "mongodb unavailable")
			return
		}
		if err := redisClient.Ping(ctx).Err(); err != nil {
			response.Fail(c, http.StatusServiceUnavailable, "redis unavailable")
			return
		}
		c.Status(http.StatusNoContent)
	})

	router.GET("/swagger/*any", ginswagger.WrapHandler(swaggerfiles.Handler))

	api := router.Group("/api")
	authhttp.NewAuthHandler(authSvc, tokens, cfg.Telegram.BotToken).RegisterRoutes(api)
	userhttp.NewUserHandler(users, tokens).RegisterRoutes(api)
	investmenthttp.NewInvestmentHandler(investmentSvc, users, tokens).RegisterRoutes(api)
	wallethttp.NewWalletHandler(walletSvc, users, tokens).RegisterRoutes(api)
	referralhttp.NewReferralHandler(referralSvc, users, tokens).RegisterRoutes(api)
	transactionhttp.NewTransactionHandler(transactions, tokens).RegisterRoutes(api)
	dashboardhttp.NewDashboardHandler(users, investments, cacheStore, tokens).RegisterRoutes(api)

	return router
}
