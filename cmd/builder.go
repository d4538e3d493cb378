// Package cmd assembles the application: configuration, logging, storage
// backend, services, event subscriptions and the HTTP server.
package cmd

import (
	"database/sql"
	"fmt"
	"net/http"
	"os"

	"mealshop/api"
	apicart "mealshop/api/cart"
	"mealshop/api/health"
	apimenu "mealshop/api/menu"
	apiorder "mealshop/api/order"
	cartapp "mealshop/application/cart"
	checkoutapp "mealshop/application/checkout"
	mealapp "mealshop/application/meal"
	orderapp "mealshop/application/order"
	"mealshop/application/rules"
	"mealshop/config"
	"mealshop/domain/cart"
	"mealshop/domain/meal"
	"mealshop/domain/order"
	"mealshop/domain/shared"
	"mealshop/infrastructure/persistence/memory"
	"mealshop/infrastructure/persistence/mysql"
	"mealshop/infrastructure/persistence/retry"
	"mealshop/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Builder builds an App from configuration.
type Builder struct {
	cfg *config.Config
}

func NewBuilder(cfg *config.Config) *Builder {
	return &Builder{cfg: cfg}
}

// backend groups everything the storage layer provides.
type backend struct {
	db           *gorm.DB
	meals        meal.MealRepository
	carts        cart.CartRepository
	orders       order.ShopOrderRepository
	uow          shared.UnitOfWork
	outboxWorker *mysql.OutboxWorker
}

// Build wires the whole application. It exits the process when a
// dependency cannot be initialized; there is nothing to serve without one.
func (b *Builder) Build() *App {
	if err := logger.Init(&b.cfg.Log, b.cfg.App.Env); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	logger.Info("Starting application",
		zap.String("app", b.cfg.App.Name),
		zap.String("version", b.cfg.App.Version),
		zap.String("env", b.cfg.App.Env),
		zap.String("database", b.cfg.Database.Type))

	bus := shared.NewEventBus()

	var be backend
	switch b.cfg.Database.Type {
	case "mysql":
		be = b.buildMySQLBackend(bus)
	default:
		be = b.buildMemoryBackend(bus)
	}

	log := logger.Get()
	mealService := mealapp.NewService(be.meals, be.uow, log)
	cartService := cartapp.NewService(be.carts, be.meals, be.uow, log)
	orderService := orderapp.NewService(be.orders, be.uow, log)
	checkoutService := checkoutapp.NewService(
		checkoutapp.NewCartExtractor(be.carts),
		checkoutapp.NewMealPriceProvider(be.meals),
		checkoutapp.NewActiveOrderChecker(be.orders),
		be.orders,
		be.uow,
		log,
	)

	cleanup := rules.NewRemoveCartAfterCheckout(be.carts, log)
	if err := bus.Subscribe(order.ShopOrderCreatedEvent, cleanup); err != nil {
		logger.Fatal("Failed to subscribe cart cleanup rule", zap.Error(err))
	}

	healthController := health.NewController(b.cfg, sqlDBOf(be.db))
	menuController := apimenu.NewController(mealService)
	cartController := apicart.NewController(cartService)
	orderController := apiorder.NewController(orderService, checkoutService)

	router := api.NewRouter(b.cfg, healthController, menuController, cartController, orderController)
	router.SetupRoutes()

	server := &http.Server{
		Addr:         ":" + b.cfg.Server.Port,
		Handler:      router.GetEngine(),
		ReadTimeout:  b.cfg.Server.ReadTimeout,
		WriteTimeout: b.cfg.Server.WriteTimeout,
	}

	return &App{
		config:       b.cfg,
		router:       router,
		server:       server,
		db:           be.db,
		outboxWorker: be.outboxWorker,
	}
}

func (b *Builder) buildMemoryBackend(bus *shared.EventBus) backend {
	logger.Info("Using in-memory persistence layer")

	return backend{
		meals:  memory.NewMealRepository(memory.NewIDGenerator()),
		carts:  memory.NewCartRepository(memory.NewIDGenerator()),
		orders: memory.NewShopOrderRepository(memory.NewIDGenerator()),
		uow:    memory.NewUnitOfWork(bus, logger.Get()),
	}
}

func (b *Builder) buildMySQLBackend(bus *shared.EventBus) backend {
	logger.Info("Using MySQL/GORM persistence layer")

	mysqlConfig := &mysql.Config{
		Host:            b.cfg.Database.Host,
		Port:            b.cfg.Database.Port,
		Username:        b.cfg.Database.Username,
		Password:        b.cfg.Database.Password,
		Database:        b.cfg.Database.Database,
		MaxOpenConns:    b.cfg.Database.MaxOpenConns,
		MaxIdleConns:    b.cfg.Database.MaxIdleConns,
		ConnMaxLifetime: b.cfg.Database.ConnMaxLifetime,
		LogLevel:        b.cfg.Log.Level,
	}

	db, err := mysqlConfig.Connect()
	if err != nil {
		logger.Fatal("Failed to connect to MySQL", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("Failed to get underlying sql.DB", zap.Error(err))
	}
	if err := sqlDB.Ping(); err != nil {
		logger.Fatal("Failed to ping MySQL", zap.Error(err))
	}

	if b.cfg.IsDevelopment() {
		if err := mysql.AutoMigrate(db); err != nil {
			logger.Fatal("Failed to auto migrate", zap.Error(err))
		}
	}

	uow := mysql.NewUnitOfWork(db, bus)
	uow.SetRetryConfig(retry.FromAppConfig(b.cfg))

	worker, err := mysql.NewOutboxWorker(
		mysql.NewOutboxRepository(db),
		&mysql.LoggingOutboxPublisher{},
		b.cfg.Outbox.PollInterval,
		b.cfg.Outbox.BatchSize,
		b.cfg.Outbox.MaxRetries,
	)
	if err != nil {
		logger.Fatal("Failed to create outbox worker", zap.Error(err))
	}

	return backend{
		db:           db,
		meals:        mysql.NewMealRepository(db),
		carts:        mysql.NewCartRepository(db),
		orders:       mysql.NewShopOrderRepository(db),
		uow:          uow,
		outboxWorker: worker,
	}
}

func sqlDBOf(db *gorm.DB) *sql.DB {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil
	}
	return sqlDB
}
