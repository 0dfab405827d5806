package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/Mayorista-api/internal/application/auth"
	"github.com/jhoicas/Mayorista-api/internal/application/catalog"
	"github.com/jhoicas/Mayorista-api/internal/application/inquiry"
	"github.com/jhoicas/Mayorista-api/internal/application/orders"
	infrakafka "github.com/jhoicas/Mayorista-api/internal/infrastructure/kafka"
	"github.com/jhoicas/Mayorista-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Mayorista-api/internal/infrastructure/redisx"
	httpRouter "github.com/jhoicas/Mayorista-api/internal/interfaces/http"
	"github.com/jhoicas/Mayorista-api/pkg/config"
	"github.com/jhoicas/Mayorista-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx, cancelCtx := context.WithCancel(context.Background())
	defer cancelCtx()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	skuRepo := postgres.NewSKURepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	inquiryRepo := postgres.NewInquiryRepository(pool)
	quoteRepo := postgres.NewQuoteRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Redis opcional: idempotencia por external_id y cache de estado de pedido.
	var idemStore orders.IdempotencyStore
	var statusCache orders.StatusCache
	if cfg.Redis.Addr != "" {
		rdb, err := redisx.New(cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		store := redisx.NewStore(rdb, log)
		idemStore = store
		statusCache = store
		log.Info().Str("addr", cfg.Redis.Addr).Msg("redis habilitado")
	}

	// Kafka opcional: eventos order.created / order.cancelled.
	var eventPublisher orders.EventPublisher
	var producer *infrakafka.Producer
	if len(cfg.Kafka.Brokers) > 0 {
		producer = infrakafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, 1024, log)
		producer.Start(ctx)
		eventPublisher = infrakafka.NewEventPublisher(producer, log)
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("productor kafka habilitado")
	}

	authUC := auth.NewAuthUseCase(userRepo, companyRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	catalogUC := catalog.NewCatalogUseCase(productRepo, skuRepo)
	placeUC := orders.NewPlaceOrderUseCase(txRunner, skuRepo, productRepo, orderRepo, idemStore, eventPublisher, statusCache)
	cancelUC := orders.NewCancelOrderUseCase(txRunner, eventPublisher, statusCache)
	inquiryUC := inquiry.NewInquiryUseCase(inquiryRepo, quoteRepo, skuRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Mayorista API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		CatalogUC: catalogUC,
		PlaceUC:   placeUC,
		CancelUC:  cancelUC,
		InquiryUC: inquiryUC,
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	// Vaciar el buzón de eventos pendientes antes de salir.
	if producer != nil {
		cancelCtx()
		producer.WaitClosed()
	}

	log.Info().Msg("aplicación detenida")
}
