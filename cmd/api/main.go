package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-shop-pos/internal/handler"
	"go-shop-pos/internal/middleware"
	"go-shop-pos/internal/model"
	"go-shop-pos/internal/repository"
	"go-shop-pos/internal/service"
	"go-shop-pos/internal/ws"
	"go-shop-pos/pkg/database"
	"go-shop-pos/pkg/logger"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	db := database.ConnectDB()
	db.AutoMigrate(
		&model.Category{}, &model.Supplier{}, &model.Product{},
		&model.StockTransaction{}, &model.Sale{}, &model.InvoiceSequence{},
		&model.ExpenseCategory{}, &model.Expense{}, &model.ProfitLossReport{},
		&model.User{},
	)

	seedDefaults(db)

	wsHub := ws.NewHub()
	go wsHub.Run()

	// Wiring
	productRepo := repository.NewProductRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	supplierRepo := repository.NewSupplierRepo(db)
	stockTxRepo := repository.NewStockTransactionRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	expenseRepo := repository.NewExpenseRepo(db)
	expenseCategoryRepo := repository.NewExpenseCategoryRepo(db)
	reportRepo := repository.NewReportRepo(db)
	userRepo := repository.NewUserRepo(db)

	productService := service.NewProductService(productRepo, db, wsHub)
	stockService := service.NewStockService(productRepo, stockTxRepo, db, wsHub)
	saleService := service.NewSaleService(productRepo, saleRepo, db, wsHub)
	reportService := service.NewReportService(saleRepo, expenseRepo, reportRepo)
	dashService := service.NewDashboardService(productRepo, categoryRepo, supplierRepo, saleRepo, stockTxRepo)
	expenseService := service.NewExpenseService(expenseRepo, expenseCategoryRepo)
	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo)

	productHandler := handler.NewProductHandler(productService)
	stockHandler := handler.NewStockHandler(stockService)
	saleHandler := handler.NewSaleHandler(saleService)
	reportHandler := handler.NewReportHandler(reportService)
	dashHandler := handler.NewDashboardHandler(dashService)
	expenseHandler := handler.NewExpenseHandler(expenseService)
	catalogHandler := handler.NewCatalogHandler(categoryRepo, supplierRepo)
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)

	app := fiber.New(fiber.Config{
		AppName: "Shop POS & Inventory v1.0",
	})

	app.Use(fiberlogger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/reset-password", authHandler.ResetPassword)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Dashboard
	protected.Get("/dashboard/stats", dashHandler.GetStats)

	// Catalog: categories & suppliers
	protected.Get("/categories", catalogHandler.GetCategories)
	protected.Post("/categories", catalogHandler.CreateCategory)
	protected.Put("/categories/:id", catalogHandler.UpdateCategory)
	protected.Delete("/categories/:id", middleware.RequireAdmin(), catalogHandler.DeleteCategory)
	protected.Get("/suppliers", catalogHandler.GetSuppliers)
	protected.Post("/suppliers", catalogHandler.CreateSupplier)
	protected.Put("/suppliers/:id", catalogHandler.UpdateSupplier)
	protected.Delete("/suppliers/:id", middleware.RequireAdmin(), catalogHandler.DeleteSupplier)

	// Products
	protected.Get("/products", productHandler.GetProducts)
	protected.Get("/products/:id", productHandler.GetProduct)
	protected.Get("/products/:id/info", productHandler.GetProductInfo)
	protected.Post("/products", productHandler.CreateProduct)
	protected.Put("/products/:id", productHandler.UpdateProduct)
	protected.Delete("/products/:id", middleware.RequireAdmin(), productHandler.DeleteProduct)

	// Stock ledger
	protected.Get("/stock/transactions", stockHandler.GetTransactions)
	protected.Get("/stock/transactions/recent", stockHandler.GetRecentTransactions)
	protected.Get("/stock/transactions/:id", stockHandler.GetTransaction)
	protected.Post("/stock/transactions", stockHandler.CreateTransaction)

	// Sales
	protected.Get("/sales", saleHandler.GetSales)
	protected.Get("/sales/:id", saleHandler.GetSale)
	protected.Post("/sales", saleHandler.CreateSale)

	// Expenses
	protected.Get("/expenses", expenseHandler.GetExpenses)
	protected.Get("/expenses/categories", expenseHandler.GetCategories)
	protected.Post("/expenses/categories", expenseHandler.CreateCategory)
	protected.Get("/expenses/:id", expenseHandler.GetExpense)
	protected.Post("/expenses", expenseHandler.CreateExpense)
	protected.Put("/expenses/:id", expenseHandler.UpdateExpense)
	protected.Delete("/expenses/:id", middleware.RequireAdmin(), expenseHandler.DeleteExpense)

	// Reports
	protected.Get("/reports/sales", reportHandler.GetSalesReport)
	protected.Get("/reports/profit-loss", reportHandler.GetProfitLossReports)
	protected.Post("/reports/profit-loss", reportHandler.CreateProfitLoss)

	// Users (admin only)
	users := protected.Group("/users", middleware.RequireAdmin())
	users.Get("/", userHandler.GetUsers)
	users.Get("/:id", userHandler.GetUser)
	users.Post("/", userHandler.CreateUser)
	users.Put("/:id", userHandler.UpdateUser)
	users.Delete("/:id", userHandler.DeleteUser)

	// WebSocket
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

	// Graceful shutdown
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

// seedDefaults creates the invoice counter row and a default admin user if
// they don't exist yet.
func seedDefaults(db *gorm.DB) {
	seq := model.InvoiceSequence{ID: 1}
	if err := db.Where(model.InvoiceSequence{ID: 1}).FirstOrCreate(&seq).Error; err != nil {
		log.Printf("Warning: failed to seed invoice sequence: %v", err)
	}

	userRepo := repository.NewUserRepo(db)
	if _, err := userRepo.FindByEmail("admin@example.com"); err != nil {
		admin := &model.User{
			Email:    "admin@example.com",
			FullName: "Administrator",
			Role:     model.RoleAdmin,
			IsActive: true,
		}
		admin.CreatedBy = "system"
		admin.UpdatedBy = "system"

		if err := admin.SetPassword("admin123"); err != nil {
			log.Printf("Warning: failed to hash admin password: %v", err)
			return
		}
		if err := userRepo.Create(admin); err != nil {
			log.Printf("Warning: failed to create admin user: %v", err)
		} else {
			logger.WithModule("seed").Info("admin user created: admin@example.com")
		}
	}
}
