package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/fadistore/storefront/config"
	"github.com/fadistore/storefront/internal/controller"
	kafkaDriver "github.com/fadistore/storefront/internal/infrastructure/message-queue/kafka"
	"github.com/fadistore/storefront/internal/infrastructure/tracing"
	mw "github.com/fadistore/storefront/internal/middleware"
	"github.com/fadistore/storefront/internal/repository"
	"github.com/fadistore/storefront/internal/service"
	"github.com/gorilla/sessions"
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
)

// insecureSessionSecret is used when SESSION_SECRET is not set. Sessions
// signed with it are forgeable, which is acceptable only in development.
const insecureSessionSecret = "dev-insecure-secret-change-me"

type App struct {
	DB     *sqlx.DB
	Config *config.Config
	Server *echo.Echo
}

func (app *App) Start() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = logger

	if err := os.MkdirAll(config.UploadDir, 0o755); err != nil {
		log.Fatal().Err(err).Msg("Failed to create upload directory")
	}

	e := echo.New()
	e.HideBanner = true

	renderer, err := NewTemplateRenderer("web/templates/*.html")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to parse templates")
	}
	e.Renderer = renderer

	if app.Config.TracingConfig.CollectorHost != "" {
		traceProvider, err := tracing.InitTracing(app.Config.TracingConfig.CollectorHost)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to initialize tracing")
		} else {
			defer func() {
				if err := traceProvider.Shutdown(context.Background()); err != nil {
					logger.Error().Err(err).Msg("Failed to shutdown tracing")
				}
			}()

			tracer := traceProvider.Tracer("fadi-store")

			e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
				return func(c echo.Context) error {
					// span creation and naming
					ctx, span := tracer.Start(c.Request().Context(), fmt.Sprintf("[%s] %s", c.Request().Method, c.Path()))
					defer span.End()

					// add the context to the request
					req := c.Request()
					c.SetRequest(req.WithContext(ctx))

					return next(c)
				}
			})
		}
	}

	// Used empty string so that metrics are not prefixed with the service name making it easier to aggregate across services
	e.Use(echoprometheus.NewMiddleware(""))

	go func() {
		metrics := echo.New()
		metrics.HideBanner = true
		metrics.GET("/metrics", echoprometheus.NewHandler())
		if err := metrics.Start(fmt.Sprintf(":%s", app.Config.MetricsPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start metrics server")
		}
	}()

	e.Use(mw.Logger)

	sessionSecret := app.Config.SessionSecret
	if sessionSecret == "" {
		logger.Warn().Msg("SESSION_SECRET is not set, using an insecure default")
		sessionSecret = insecureSessionSecret
	}
	store := sessions.NewCookieStore([]byte(sessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	e.Use(session.Middleware(store))

	e.Static("/static", "static")

	var kafkaProducer *kafka.Conn
	if app.Config.KafkaConfig.BrokerAddress != "" {
		kafkaProducer, err = kafkaDriver.CreateKafkaProducer(app.Config)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to connect to Kafka, product events disabled")
		}
	}

	adminRepo := repository.CreateNewAdminRepository(app.DB)
	productRepo := repository.CreateNewProductRepository(app.DB)

	adminSvc := service.CreateNewAdminService(adminRepo)
	productSvc := service.CreateNewProductService(productRepo, config.UploadDir, kafkaProducer)

	if err := adminSvc.Bootstrap(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to bootstrap admin account")
	}

	controller.CreatePublicController(e, productSvc)
	controller.CreateAdminController(e, adminSvc, productSvc)

	e.GET("/ping", func(c echo.Context) error {
		return c.String(http.StatusOK, "pong")
	})

	app.Server = e

	e.Logger.Fatal(e.Start(fmt.Sprintf(":%s", app.Config.ServicePort)))
}

func (app *App) StopServer() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return app.Server.Shutdown(ctx)
}
