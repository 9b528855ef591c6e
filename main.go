package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lapak/internal/config"
	"lapak/internal/database"
	"lapak/internal/engine"
	"lapak/internal/handlers"
	"lapak/internal/logger"
	"lapak/internal/middleware"
	"lapak/internal/models"
	"lapak/internal/repositories"
	"lapak/internal/services"
	"lapak/pkg/rabbitmq"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	"github.com/streadway/amqp"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// AppDeps are the resources NewApp wires into the HTTP application.
type AppDeps struct {
	DB        *gorm.DB
	Events    services.EventPublisher
	Log       *zap.Logger
	Location  *time.Location
	JWTSecret string
}

// NewApp builds the Fiber application with every route registered.
func NewApp(deps AppDeps) (*fiber.App, *services.AuthService) {
	// --- Repositories ---
	orderRepo := repositories.NewGORMOrderRepository(deps.DB)
	returnRepo := repositories.NewGORMReturnRepository(deps.DB)
	voucherRepo := repositories.NewGORMVoucherRepository(deps.DB)
	campaignRepo := repositories.NewGORMCampaignRepository(deps.DB)
	productRepo := repositories.NewGORMProductRepository(deps.DB)

	// --- Services ---
	authService := services.NewAuthService(deps.JWTSecret)
	orderService := services.NewOrderService(orderRepo, deps.Events, deps.Log)
	returnService := services.NewReturnService(orderRepo, returnRepo, deps.Events, deps.Log)
	voucherService := services.NewVoucherService(voucherRepo, deps.Log)
	campaignService := services.NewCampaignService(campaignRepo, deps.Location)
	productService := services.NewProductService(productRepo)

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	app.Use(fiberlogger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		dbStatus := "connected"
		if sqlDB, err := deps.DB.DB(); err != nil || sqlDB.PingContext(c.UserContext()) != nil {
			dbStatus = "unavailable"
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": dbStatus,
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// --- API Routes ---
	apiV1 := app.Group("/api/v1", middleware.AuthRequired(authService, deps.Log))
	handlers.NewAuthHandler().RegisterRoutes(apiV1)
	handlers.NewOrderHandler(orderService, deps.Log).RegisterRoutes(apiV1)
	handlers.NewReturnHandler(returnService, deps.Log).RegisterRoutes(apiV1)
	handlers.NewVoucherHandler(voucherService, deps.Log).RegisterRoutes(apiV1)
	handlers.NewCampaignHandler(campaignService, deps.Log).RegisterRoutes(apiV1)
	handlers.NewProductHandler(productService, deps.Log).RegisterRoutes(apiV1)

	return app, authService
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	lg := logger.New(cfg.LogLevel)
	defer lg.Sync() //nolint:errcheck

	loc, err := cfg.Location()
	if err != nil {
		lg.Fatal("invalid store timezone", zap.Error(err))
	}

	gormLevel := gormlogger.Warn
	if cfg.LogLevel == "debug" {
		gormLevel = gormlogger.Info
	}
	db, err := database.Open(cfg.StorageDriver, cfg.DatabaseDSN, gormLevel)
	if err != nil {
		lg.Fatal("failed to open database", zap.String("driver", cfg.StorageDriver), zap.Error(err))
	}

	// --- Initialize RabbitMQ Client ---
	var events services.EventPublisher
	if cfg.RabbitMQEnabled {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			lg.Fatal("failed to initialize RabbitMQ client", zap.Error(err))
		}
		defer mqClient.Close()
		events = mqClient

		err = mqClient.ConsumeEvents(func(msg amqp.Delivery) error {
			lg.Info("lifecycle event received",
				zap.String("routing_key", msg.RoutingKey),
				zap.ByteString("body", msg.Body))
			return nil
		})
		if err != nil {
			lg.Warn("failed to start event consumer", zap.Error(err))
		}
	} else {
		lg.Info("RabbitMQ disabled, lifecycle events will not be published")
	}

	app, authService := NewApp(AppDeps{
		DB:        db,
		Events:    events,
		Log:       lg,
		Location:  loc,
		JWTSecret: cfg.JWTSecret,
	})

	if cfg.SeedDemoData {
		if err := seedDemoData(context.Background(), db, authService, lg); err != nil {
			lg.Error("failed to seed demo data", zap.Error(err))
		}
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		lg.Info("starting server", zap.String("port", cfg.AppPort))
		if err := app.Listen(cfg.AppPort); err != nil {
			lg.Fatal("server failed to start", zap.Error(err))
		}
	}()

	<-quit
	lg.Info("shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		lg.Error("error during Fiber shutdown", zap.Error(err))
	}
	lg.Info("server gracefully stopped")
}

// seedDemoData inserts a small catalog and a freshly delivered order, then
// logs tokens for a demo customer and vendor.
func seedDemoData(ctx context.Context, db *gorm.DB, auth *services.AuthService, lg *zap.Logger) error {
	now := time.Now()
	vendorID := "demo-vendor"
	sale := int64(89000)
	maxDiscount := int64(30000)
	flashStart, flashEnd := "12:00", "14:00"

	product := &models.Product{ID: "demo-product", VendorID: vendorID, Name: "Kemeja Batik", BasePrice: 111000, SalePrice: &sale, TaxRate: decimal.NewFromInt(11)}
	if err := services.NewProductService(repositories.NewGORMProductRepository(db)).CreateProduct(ctx, product); err != nil {
		return err
	}

	campaigns := repositories.NewGORMCampaignRepository(db)
	if err := campaigns.Create(ctx, &models.Campaign{
		Name: "Payday Flash Sale", CampaignType: models.CampaignFlashSale,
		DiscountType: models.DiscountPercentage, DiscountValue: decimal.NewFromInt(25),
		StartDate: now.AddDate(0, 0, -1), EndDate: now.AddDate(0, 0, 7),
		FlashSaleStartTime: &flashStart, FlashSaleEndTime: &flashEnd, Status: models.CampaignActive,
	}); err != nil {
		return err
	}

	if err := repositories.NewGORMVoucherRepository(db).Create(ctx, &models.Voucher{
		VendorID: &vendorID, Code: "GAJIAN", DiscountType: models.DiscountPercentage,
		DiscountValue: decimal.NewFromInt(15), MaxDiscount: &maxDiscount, MinOrderValue: 100000,
		MaxUsagePerUser: 1, StartDate: now.AddDate(0, 0, -1), EndDate: now.AddDate(0, 1, 0),
		Active: true, ApprovalStatus: models.ApprovalApproved,
	}); err != nil {
		return err
	}

	order := &models.Order{
		ID: "demo-order", UserID: "demo-customer", VendorID: vendorID,
		TotalAmount: 178000, PaymentMethod: models.PaymentBankTransfer, PaymentStatus: models.PaymentUnpaid,
		Status: models.OrderDelivered, DeliveredAt: &now, UpdatedAt: now,
		Items: []models.OrderItem{{ProductID: product.ID, VendorID: vendorID, Price: sale, Quantity: 2}},
	}
	if err := repositories.NewGORMOrderRepository(db).Create(ctx, order); err != nil {
		return err
	}

	for _, caller := range []engine.Caller{
		{UserID: "demo-customer", Role: engine.RoleCustomer},
		{UserID: "demo-seller", VendorID: vendorID, Role: engine.RoleVendor},
	} {
		token, err := auth.IssueToken(caller)
		if err != nil {
			return err
		}
		lg.Info("demo token", zap.String("role", string(caller.Role)), zap.String("token", token))
	}
	lg.Info("demo data seeded", zap.String("order_id", order.ID), zap.String("order_item_id", order.Items[0].ID))
	return nil
}
