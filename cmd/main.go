package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lshigami/examprep/config"
	"github.com/lshigami/examprep/database"
	_ "github.com/lshigami/examprep/docs" // Swagger docs - generated by swag init
	"github.com/lshigami/examprep/internal/auth"
	"github.com/lshigami/examprep/internal/controller"
	accountctrl "github.com/lshigami/examprep/internal/controller/account"
	adminctrl "github.com/lshigami/examprep/internal/controller/admin"
	userctrl "github.com/lshigami/examprep/internal/controller/user"
	"github.com/lshigami/examprep/internal/event"
	"github.com/lshigami/examprep/internal/logger"
	"github.com/lshigami/examprep/internal/middleware"
	"github.com/lshigami/examprep/internal/model"
	"github.com/lshigami/examprep/internal/repository"
	"github.com/lshigami/examprep/internal/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Exam Prep API
// @version 1.0
// @description Timed mock exams with server-side grading, attempt history and study recommendations.
// @contact.name API Support
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		// Core Application Components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			NewRedisClient,       // Provides *redis.Client, nil when REDIS_ADDR is empty
			NewEventPublisher,
			auth.NewTokenManager,
			controller.NewErrorResponder,
			NewGinEngine,
		),

		// Repositories Layer
		fx.Provide(
			NewTestRepository,
			repository.NewAttemptRepository,
			repository.NewUserRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewUserTestService,
			service.NewTestSubmissionService,
			service.NewAttemptService,
			service.NewGeminiStudyAdvisor,
			service.NewRecommendationService,
			service.NewStatsService,
			service.NewAuthService,
			service.NewAdminTestService,
		),

		// API Controllers Layer
		fx.Provide(
			userctrl.NewUserTestController,
			userctrl.NewAttemptController,
			accountctrl.NewAuthController,
			adminctrl.NewAdminTestController,
		),

		fx.Invoke(AutoMigrateDB),
		fx.Invoke(RegisterRoutesAndStartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
	if err := app.Stop(context.Background()); err != nil {
		log.Error().Err(err).Msg("Error during shutdown")
	}
}

func NewGinEngine(cfg *config.Config) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	// Credentialed CORS cannot use a wildcard origin; echo the caller instead.
	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.Server.AllowOrigins) == 0 || cfg.Server.AllowOrigins[0] == "*" {
		corsConfig.AllowOriginFunc = func(string) bool { return true }
	} else {
		corsConfig.AllowOrigins = cfg.Server.AllowOrigins
	}
	r.Use(cors.New(corsConfig))

	// URL: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func NewRedisClient(lc fx.Lifecycle, cfg *config.Config) *redis.Client {
	if cfg.Redis.Addr == "" {
		log.Info().Msg("REDIS_ADDR is not set, test cache disabled")
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis unreachable, reads will fall through to the database")
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
	return client
}

// NewTestRepository wraps the database repository with the Redis cache when
// one is configured.
func NewTestRepository(db *gorm.DB, client *redis.Client, cfg *config.Config) repository.TestRepository {
	repo := repository.NewTestRepository(db)
	if client == nil {
		return repo
	}
	return repository.NewCachedTestRepository(repo, client, cfg.Redis.TestTTL)
}

func NewEventPublisher(lc fx.Lifecycle, cfg *config.Config) (event.Publisher, error) {
	if cfg.RabbitMQ.URL == "" {
		log.Info().Msg("RABBITMQ_URL is not set, attempt events are dropped")
		return event.NoopPublisher{}, nil
	}
	publisher, err := event.NewAMQPPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return publisher.Close()
		},
	})
	log.Info().Str("exchange", cfg.RabbitMQ.Exchange).Msg("Publishing attempt events to RabbitMQ")
	return publisher, nil
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	tokens *auth.TokenManager,
	userTestCtrl *userctrl.UserTestController,
	attemptCtrl *userctrl.AttemptController,
	authCtrl *accountctrl.AuthController,
	adminTestCtrl *adminctrl.AdminTestController,
) {
	api := router.Group("/api/v1", middleware.SessionUser(tokens))
	{
		api.GET("/tests", userTestCtrl.GetAllTests)
		api.GET("/tests/:test_id", userTestCtrl.GetTestDetails)
		api.POST("/submit-test", userTestCtrl.SubmitTest)

		authGroup := api.Group("/auth")
		authGroup.POST("/register", authCtrl.Register)
		authGroup.POST("/login", authCtrl.Login)
		authGroup.POST("/logout", authCtrl.Logout)

		userGroup := api.Group("", middleware.RequireUser())
		userGroup.GET("/attempts", attemptCtrl.ListAttempts)
		userGroup.GET("/attempts/:attempt_id", attemptCtrl.GetAttemptResult)
		userGroup.GET("/attempts/:attempt_id/recommendations", attemptCtrl.GetRecommendations)
		userGroup.GET("/stats", attemptCtrl.GetDashboardStats)

		adminGroup := api.Group("/admin", middleware.RequireAdmin())
		adminGroup.POST("/tests", adminTestCtrl.CreateTest)
		adminGroup.GET("/overview", adminTestCtrl.GetOverview)
		adminGroup.GET("/leads", adminTestCtrl.ListLeads)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Exam prep API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.User{},
		&model.Test{},
		&model.Question{},
		&model.Attempt{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
