package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-pos-backend/internal/handler"
	"go-pos-backend/internal/middleware"
	"go-pos-backend/internal/model"
	"go-pos-backend/internal/repository"
	"go-pos-backend/internal/service"
	"go-pos-backend/internal/ws"
	"go-pos-backend/pkg/database"
	"go-pos-backend/pkg/logger"
	"go-pos-backend/pkg/metrics"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	zlog := logger.New()
	defer zlog.Sync()

	// 2. Setup Database
	db := database.ConnectDB()
	// Auto Migrate (use a dedicated migration tool in production)
	db.AutoMigrate(&model.User{}, &model.Product{}, &model.Sale{}, &model.SaleItem{})

	// 3. Seed default admin user
	seedAdmin(db, zlog)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub(zlog)
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	userRepo := repository.NewUserRepo(db)
	productRepo := repository.NewProductRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	saleItemRepo := repository.NewSaleItemRepo(db)
	txm := repository.NewTxManager(db)

	ledger := service.NewStockLedger(productRepo)
	saleService := service.NewSaleService(saleRepo, saleItemRepo, productRepo, userRepo, ledger, txm, wsHub, zlog)
	productService := service.NewProductService(productRepo, wsHub, zlog)
	userService := service.NewUserService(userRepo, zlog)
	authService := service.NewAuthService(userRepo, zlog)
	reportService := service.NewReportService(saleRepo, saleItemRepo, productRepo)

	saleHandler := handler.NewSaleHandler(saleService)
	productHandler := handler.NewProductHandler(productService)
	userHandler := handler.NewUserHandler(userService)
	authHandler := handler.NewAuthHandler(authService)
	reportHandler := handler.NewReportHandler(reportService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "POS Backend v1.0",
	})

	// Middleware
	app.Use(fiberlogger.New()) // Request logging
	app.Use(recover.New())     // Panic recovery
	app.Use(cors.New())        // CORS

	// Metrics endpoint
	app.Get("/metrics", metrics.Handler())

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))

	manageOnly := middleware.RequireRole(model.RoleAdmin, model.RoleManager)

	// Product Routes (catalog writes are ADMIN/MANAGER)
	protected.Get("/products", productHandler.GetActive)
	protected.Get("/products/inactive", productHandler.GetInactive)
	protected.Get("/products/inactive/:id", productHandler.GetInactiveByID)
	protected.Get("/products/:id", productHandler.GetActiveByID)
	protected.Post("/products", manageOnly, productHandler.Create)
	protected.Put("/products/:id", manageOnly, productHandler.Update)
	protected.Delete("/products/:id", manageOnly, productHandler.Delete)
	protected.Put("/products/:id/restore", manageOnly, productHandler.Reactivate)

	// Sale Routes (any authenticated staff can sell)
	protected.Post("/sales", saleHandler.Create)
	protected.Get("/sales", saleHandler.GetActive)
	protected.Get("/sales/inactive", saleHandler.GetInactive)
	protected.Get("/sales/inactive/:id", saleHandler.GetInactiveByID)
	protected.Get("/sales/:id", saleHandler.GetActiveByID)
	protected.Get("/sales/:id/details", saleHandler.GetDetails)
	protected.Delete("/sales/:id", manageOnly, saleHandler.Void)
	protected.Put("/sales/:id/restore", manageOnly, saleHandler.Restore)

	// User Management Routes
	protected.Get("/users", manageOnly, userHandler.GetActive)
	protected.Get("/users/inactive", manageOnly, userHandler.GetInactive)
	protected.Get("/users/inactive/:id", manageOnly, userHandler.GetInactiveByID)
	protected.Get("/users/:id", manageOnly, userHandler.GetActiveByID)
	protected.Post("/users", manageOnly, userHandler.Create)
	protected.Put("/users/:id", manageOnly, userHandler.Update)
	protected.Put("/users/:id/password", userHandler.ChangePassword)
	protected.Delete("/users/:id", manageOnly, userHandler.Delete)
	protected.Put("/users/:id/restore", manageOnly, userHandler.Reactivate)

	// Report Routes
	protected.Get("/reports/sales/summary", manageOnly, reportHandler.GetDailySummary)
	protected.Get("/reports/sales/:id/receipt", reportHandler.GetReceipt)

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

	// 8. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedAdmin creates the default admin account if it doesn't exist yet
func seedAdmin(db *gorm.DB, zlog *zap.Logger) {
	userRepo := repository.NewUserRepo(db)

	login := os.Getenv("ADMIN_LOGIN")
	if login == "" {
		login = "admin"
	}

	if _, err := userRepo.FindByLogin(login); err == nil {
		return
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}

	admin := &model.User{
		Name:  "Administrator",
		Login: login,
		Role:  model.RoleAdmin,
	}
	if err := admin.SetPassword(password); err != nil {
		zlog.Warn("failed to hash admin password", zap.Error(err))
		return
	}

	if err := userRepo.Create(admin); err != nil {
		zlog.Warn("failed to create admin user", zap.Error(err))
		return
	}
	zlog.Info("admin user created", zap.String("login", login))
}
