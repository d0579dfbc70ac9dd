package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/adnane-lakhmaisse/OptiStock/internal/handler"
	"github.com/adnane-lakhmaisse/OptiStock/internal/middleware"
	"github.com/adnane-lakhmaisse/OptiStock/internal/model"
	"github.com/adnane-lakhmaisse/OptiStock/internal/repository"
	"github.com/adnane-lakhmaisse/OptiStock/internal/service"
	"github.com/adnane-lakhmaisse/OptiStock/internal/ws"
	"github.com/adnane-lakhmaisse/OptiStock/pkg/config"
	"github.com/adnane-lakhmaisse/OptiStock/pkg/database"
	"github.com/adnane-lakhmaisse/OptiStock/pkg/logger"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// 1. Load Env + Config
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	zapLogger := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	defer zapLogger.Sync()

	// 2. Setup Database
	db, err := database.Connect(cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("database connection failed", zap.Error(err))
	}
	// Auto Migrate (Hati-hati di production, sebaiknya pakai tools migrasi terpisah)
	if err := db.AutoMigrate(&model.Association{}, &model.Category{}, &model.Product{}, &model.Transaction{}); err != nil {
		zapLogger.Fatal("auto migrate failed", zap.Error(err))
	}

	// 3. Setup WebSocket Hub
	wsHub := ws.NewHub(zapLogger)
	go wsHub.Run()

	// 4. Dependency Injection (Wiring Layers)
	associationRepo := repository.NewAssociationRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	productRepo := repository.NewProductRepo(db)
	txRepo := repository.NewTransactionRepo(db)

	associationService := service.NewAssociationService(associationRepo, zapLogger)
	catalogService := service.NewCatalogService(categoryRepo, productRepo, db, zapLogger)
	ledgerService := service.NewLedgerService(productRepo, txRepo, db, wsHub, zapLogger)
	historyService := service.NewHistoryService(txRepo, zapLogger)

	associationHandler := handler.NewAssociationHandler(associationService)
	categoryHandler := handler.NewCategoryHandler(catalogService, associationService)
	productHandler := handler.NewProductHandler(catalogService, associationService)
	ledgerHandler := handler.NewLedgerHandler(ledgerService, associationService)
	historyHandler := handler.NewHistoryHandler(historyService, associationService)
	uploadHandler := handler.NewUploadHandler(cfg.Upload, zapLogger)

	// 5. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: cfg.App.Name,
	})

	// Middleware
	app.Use(fiberlogger.New()) // Logging request
	app.Use(recover.New())     // Panic recovery
	app.Use(cors.New())        // CORS

	// Static serving for uploaded images
	app.Static(cfg.Upload.PublicPath, cfg.Upload.Dir)

	// 6. Routes
	api := app.Group("/api/v1", middleware.RequireAuth([]byte(cfg.JWT.Secret)))

	// Association (tenant) resolution
	api.Post("/associations/sync", associationHandler.Sync)
	api.Get("/associations/me", associationHandler.Me)

	// Catalog
	api.Get("/categories", categoryHandler.GetCategories)
	api.Post("/categories", categoryHandler.CreateCategory)
	api.Put("/categories/:id", categoryHandler.UpdateCategory)
	api.Delete("/categories/:id", categoryHandler.DeleteCategory)

	api.Get("/products", productHandler.GetProducts)
	api.Get("/products/:id", productHandler.GetProduct)
	api.Post("/products", productHandler.CreateProduct)
	api.Put("/products/:id", productHandler.UpdateProduct)
	api.Delete("/products/:id", productHandler.DeleteProduct)

	// Ledger
	api.Post("/stock/replenish", ledgerHandler.Replenish)
	api.Post("/donations", ledgerHandler.Donate)
	api.Get("/transactions", historyHandler.GetTransactions)

	// Dashboard
	api.Get("/dashboard/stats", historyHandler.GetDashboardStats)
	api.Get("/dashboard/stock-movement", historyHandler.GetStockMovement)

	// Image storage
	api.Post("/uploads", uploadHandler.Upload)
	api.Delete("/uploads", uploadHandler.Delete)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 7. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.App.Port); err != nil {
			zapLogger.Fatal("server stopped", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		zapLogger.Fatal("server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("server exited")
}
