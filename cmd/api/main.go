package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/escola-aulas-api/api/swagger"
	"github.com/noah-isme/escola-aulas-api/internal/handler"
	"github.com/noah-isme/escola-aulas-api/internal/middleware"
	"github.com/noah-isme/escola-aulas-api/internal/repository"
	"github.com/noah-isme/escola-aulas-api/internal/service"
	"github.com/noah-isme/escola-aulas-api/migrations"
	"github.com/noah-isme/escola-aulas-api/pkg/cache"
	"github.com/noah-isme/escola-aulas-api/pkg/config"
	"github.com/noah-isme/escola-aulas-api/pkg/database"
	"github.com/noah-isme/escola-aulas-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/escola-aulas-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/escola-aulas-api/pkg/middleware/requestid"
)

// @title Escola Aulas API
// @version 1.0.0
// @description Class scheduling, substitute assignment and professor notifications
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.JWT.Secret == "" {
		logr.Fatal("JWT_SECRET must be set")
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close()

	if cfg.Migrations.AutoApply {
		if err := database.Migrate(db.DB, migrations.Files, database.MigrateUp); err != nil {
			logr.Fatal("failed to apply migrations", zap.Error(err))
		}
		logr.Info("migrations applied")
	}

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, login throttling disabled", zap.Error(err))
		redisClient = nil
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	var metricsSvc *service.MetricsService
	if cfg.Metrics.Enabled {
		metricsSvc = service.NewMetricsService()
	}

	validate := validator.New()

	professorRepo := repository.NewProfessorRepository(db)
	aulaRepo := repository.NewAulaRepository(db)
	notificacaoRepo := repository.NewNotificacaoRepository(db)
	referenceRepo := repository.NewReferenceRepository(db)
	attemptRepo := repository.NewAttemptRepository(redisClient)

	references := service.NewReferenceValidator(referenceRepo)
	throttle := service.NewLoginThrottle(attemptRepo, cfg.Login.MaxAttempts, cfg.Login.AttemptWindow, logr)
	authSvc := service.NewAuthService(professorRepo, throttle, validate, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiry:     cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
		BcryptCost: cfg.JWT.BcryptCost,
	})
	professorSvc := service.NewProfessorService(professorRepo, logr)
	notificacaoSvc := service.NewNotificacaoService(notificacaoRepo, references, validate, logr, metricsSvc)
	aulaSvc := service.NewAulaService(aulaRepo, references, notificacaoSvc, validate, logr)

	metricsHandler := handler.NewMetricsHandler(metricsSvc, db)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	if metricsSvc != nil {
		r.GET("/metrics", metricsHandler.Prometheus)
	}
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.RegisterRoutes(r.Group(cfg.APIPrefix), handler.Handlers{
		Auth:         handler.NewAuthHandler(authSvc),
		Professores:  handler.NewProfessorHandler(professorSvc),
		Aulas:        handler.NewAulaHandler(aulaSvc),
		Notificacoes: handler.NewNotificacaoHandler(notificacaoSvc),
	}, authSvc)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "prefix", cfg.APIPrefix)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
