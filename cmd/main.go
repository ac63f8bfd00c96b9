package main

import (
	"net/http"
	"os"
	"time"

	"github.com/wictors/BackendAssignment-Fitness/api/handler"
	apiMiddleware "github.com/wictors/BackendAssignment-Fitness/api/middleware"
	"github.com/wictors/BackendAssignment-Fitness/api/routes"
	"github.com/wictors/BackendAssignment-Fitness/config"
	"github.com/wictors/BackendAssignment-Fitness/internal/repository"
	"github.com/wictors/BackendAssignment-Fitness/internal/service"
	"github.com/wictors/BackendAssignment-Fitness/internal/utils"
	"github.com/wictors/BackendAssignment-Fitness/pkg/events"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	if cfg.JWTSecret == "" {
		logger.Fatal("JWT_SECRET is required")
	}

	db, err := config.ConnectDatabase(cfg.DatabaseURL)
	if err != nil {
		logger.WithError(err).Fatal("database")
	}

	jwtManager := utils.JWTManager{
		Secret: []byte(cfg.JWTSecret),
		Issuer: cfg.JWTIssuer,
		TTL:    cfg.TokenTTL,
	}

	var publisher service.EventPublisher
	if cfg.AMQPURL != "" {
		p, err := events.NewPublisher(cfg.AMQPURL)
		if err != nil {
			logger.WithError(err).Fatal("rabbitmq")
		}
		defer p.Close()
		publisher = p
	}

	userRepo := repository.NewUserRepository(db)
	programRepo := repository.NewProgramRepository(db)
	exerciseRepo := repository.NewExerciseRepository(db)
	userExerciseRepo := repository.NewUserExerciseRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)

	hasher := service.BcryptPasswordHasher{Cost: cfg.BcryptCost}
	issuer := service.JWTAccessIssuer{Manager: &jwtManager}

	authService := service.NewAuthService(userRepo, auditRepo, hasher, issuer, service.RealClock{})
	userService := service.NewUserService(userRepo, userExerciseRepo, auditRepo)
	exerciseService := service.NewExerciseService(exerciseRepo, programRepo, userExerciseRepo, publisher)

	validate := validator.New()
	authHandler := handler.NewAuthHandler(authService, validate)
	adminHandler := handler.NewAdminHandler(userService, exerciseService, validate)
	userHandler := handler.NewUserHandler(userService, exerciseService, validate)
	programHandler := handler.NewProgramHandler(exerciseService)

	app := echo.New()
	app.HideBanner = true
	app.HidePort = true
	app.Use(echoMiddleware.Recover())
	app.Use(echoMiddleware.RequestLoggerWithConfig(echoMiddleware.RequestLoggerConfig{
		LogStatus:   true,
		LogMethod:   true,
		LogURI:      true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echoMiddleware.RequestLoggerValues) error {
			entry := logger.WithFields(logrus.Fields{
				"status": v.Status,
				"method": v.Method,
				"uri":    v.URI,
				"ip":     v.RemoteIP,
			})
			if v.Error != nil {
				entry.WithError(v.Error).Error("request")
				return nil
			}
			entry.Info("request")
			return nil
		},
	}))

	authMiddleware := apiMiddleware.AuthMiddleware{JWT: &jwtManager}
	router := routes.NewRouter(app, authHandler, adminHandler, userHandler, programHandler, authMiddleware)
	router.RegisterRoutes()

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.WithField("addr", cfg.HTTPAddr).Info("server started")
	if err := app.StartServer(server); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
}
