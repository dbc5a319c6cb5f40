package main

import (
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"go-uniform-pos/internal/checkout"
	"go-uniform-pos/internal/handler"
	"go-uniform-pos/internal/middleware"
	"go-uniform-pos/internal/model"
	"go-uniform-pos/internal/repository"
	"go-uniform-pos/internal/service"
	"go-uniform-pos/internal/ws"
	"go-uniform-pos/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	// Auto Migrate (use a dedicated migration tool in production)
	db.AutoMigrate(
		&model.Uniform{},
		&model.Transaction{}, &model.TransactionItem{},
		&model.ProcurementRecord{}, &model.ProcurementItem{},
		&model.PurchaseOrder{}, &model.PurchaseOrderItem{},
		&model.Vendor{},
		&model.User{}, &model.Privilege{}, &model.Role{},
	)

	// 3. Seed default privileges, roles, and admin user
	seedPrivilegesRolesAndAdmin(db)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	uniformRepo := repository.NewUniformRepo(db)
	txRepo := repository.NewTransactionRepo(db)
	procurementRepo := repository.NewProcurementRepo(db)
	poRepo := repository.NewPurchaseOrderRepo(db)
	vendorRepo := repository.NewVendorRepo(db)
	userRepo := repository.NewUserRepo(db)
	privilegeRepo := repository.NewPrivilegeRepo(db)
	roleRepo := repository.NewRoleRepo(db)

	catalogService := service.NewCatalogService(uniformRepo, db, wsHub)
	checkoutService := service.NewCheckoutService(uniformRepo, txRepo, db, wsHub, checkoutOptions())
	procurementService := service.NewProcurementService(procurementRepo, uniformRepo, db, wsHub)
	poService := service.NewPurchaseOrderService(poRepo)
	reportService := service.NewReportService(txRepo, procurementRepo, uniformRepo, userRepo, lowStockThreshold())
	authService := service.NewAuthService(userRepo, roleRepo, wsHub)
	userService := service.NewUserService(userRepo, privilegeRepo, roleRepo)

	catalogHandler := handler.NewCatalogHandler(catalogService)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService)
	procurementHandler := handler.NewProcurementHandler(procurementService)
	poHandler := handler.NewPurchaseOrderHandler(poService)
	vendorHandler := handler.NewVendorHandler(vendorRepo)
	reportHandler := handler.NewReportHandler(reportService)
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	roleHandler := handler.NewRoleHandler(roleRepo)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Uniform POS v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	// Auth Routes (No authentication required)
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/register", authHandler.Register)
	auth.Post("/reset-password", authHandler.ResetPassword)
	auth.Post("/validate-token", authHandler.ValidateToken)
	auth.Post("/heartbeat", middleware.RequireAuth(userRepo), authHandler.Heartbeat) // Heartbeat uses Auth but available to all authenticated

	// ============ PROTECTED ROUTES ============
	// All routes below require authentication
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Catalog Routes
	protected.Get("/uniforms", catalogHandler.GetUniforms)
	protected.Post("/uniforms", middleware.RequirePrivilege("uniform:create"), catalogHandler.CreateUniform)
	protected.Put("/uniforms/:id", middleware.RequirePrivilege("uniform:update"), catalogHandler.UpdateUniform)
	protected.Patch("/uniforms/:id/stock", middleware.RequirePrivilege("uniform:update"), catalogHandler.AdjustStock)
	protected.Delete("/uniforms/:id", middleware.RequirePrivilege("uniform:delete"), catalogHandler.DeleteUniform)

	// Checkout Routes (per-cashier cart and phase machine)
	co := protected.Group("/checkout", middleware.RequirePrivilege("checkout:create"))
	co.Get("/cart", checkoutHandler.GetCart)
	co.Post("/cart/items", checkoutHandler.AddToCart)
	co.Put("/cart/items/:index", checkoutHandler.SetQuantity)
	co.Delete("/cart/items/:index", checkoutHandler.RemoveLine)
	co.Post("/begin", checkoutHandler.Begin)
	co.Post("/shipping", checkoutHandler.SubmitShipping)
	co.Post("/back", checkoutHandler.BackToShipping)
	co.Post("/cancel", checkoutHandler.Cancel)
	co.Post("/finalize", checkoutHandler.Finalize)

	// Transaction Routes
	protected.Get("/transactions", middleware.RequirePrivilege("transaction:view"), checkoutHandler.GetTransactions)
	protected.Get("/transactions/:id", middleware.RequirePrivilege("transaction:view"), checkoutHandler.GetTransaction)
	protected.Patch("/transactions/:id/status", middleware.RequirePrivilege("transaction:update"), checkoutHandler.MarkPaid)
	protected.Patch("/transactions/:id/customer", middleware.RequirePrivilege("transaction:update"), checkoutHandler.UpdateCustomerInfo)

	// Procurement Routes (stock-in ledger)
	protected.Get("/procurements", middleware.RequirePrivilege("procurement:view"), procurementHandler.GetProcurements)
	protected.Get("/procurements/:id", middleware.RequirePrivilege("procurement:view"), procurementHandler.GetProcurement)
	protected.Post("/procurements", middleware.RequirePrivilege("procurement:create"), procurementHandler.RecordProcurement)
	protected.Delete("/procurements/:id", middleware.RequirePrivilege("procurement:delete"), procurementHandler.DeleteProcurement)

	// Purchase Order Routes (vendor pre-orders, decoupled from stock)
	protected.Get("/purchase-orders", middleware.RequirePrivilege("purchase_order:view"), poHandler.GetPurchaseOrders)
	protected.Get("/purchase-orders/:id", middleware.RequirePrivilege("purchase_order:view"), poHandler.GetPurchaseOrder)
	protected.Post("/purchase-orders", middleware.RequirePrivilege("purchase_order:create"), poHandler.CreatePurchaseOrder)
	protected.Patch("/purchase-orders/:id/status", middleware.RequirePrivilege("purchase_order:update"), poHandler.AdvanceStatus)
	protected.Delete("/purchase-orders/:id", middleware.RequirePrivilege("purchase_order:delete"), poHandler.DeletePurchaseOrder)

	// Vendor Routes
	protected.Get("/vendors", middleware.RequirePrivilege("vendor:view"), vendorHandler.GetVendors)
	protected.Get("/vendors/:id", middleware.RequirePrivilege("vendor:view"), vendorHandler.GetVendor)
	protected.Post("/vendors", middleware.RequirePrivilege("vendor:create"), vendorHandler.CreateVendor)
	protected.Put("/vendors/:id", middleware.RequirePrivilege("vendor:update"), vendorHandler.UpdateVendor)
	protected.Delete("/vendors/:id", middleware.RequirePrivilege("vendor:delete"), vendorHandler.DeleteVendor)

	// Report Routes
	protected.Get("/reports/dashboard", middleware.RequirePrivilege("report:view"), reportHandler.GetDashboardStats)
	protected.Get("/reports/sales", middleware.RequirePrivilege("report:view"), reportHandler.GetSalesReport)
	protected.Get("/reports/sales-movement", middleware.RequirePrivilege("report:view"), reportHandler.GetSalesMovement)

	// User Management Routes
	protected.Get("/users", userHandler.GetUsers)
	protected.Get("/users/:id", userHandler.GetUser)
	protected.Post("/users", middleware.RequirePrivilege("user:create"), userHandler.CreateUser)
	protected.Put("/users/:id", middleware.RequirePrivilege("user:update"), userHandler.UpdateUser)
	protected.Delete("/users/:id", middleware.RequirePrivilege("user:delete"), userHandler.DeleteUser)
	protected.Put("/users/:id/privileges", middleware.RequirePrivilege("user:update_privilege"), userHandler.UpdateUserPrivileges)

	// Role Routes
	protected.Get("/roles", roleHandler.GetRoles)

	// Privileges Route (list all available privileges)
	protected.Get("/privileges", func(c *fiber.Ctx) error {
		privileges, err := privilegeRepo.FindAll()
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch privileges"})
		}
		return c.JSON(privileges)
	})

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

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// checkoutOptions reads the checkout flow variant from the environment.
// REQUIRE_SHIPPING=true forces the shipping form before payment.
func checkoutOptions() checkout.Options {
	require, _ := strconv.ParseBool(os.Getenv("REQUIRE_SHIPPING"))
	return checkout.Options{RequireShippingBeforePayment: require}
}

// lowStockThreshold reads LOW_STOCK_THRESHOLD; zero or unset falls back to
// the service default.
func lowStockThreshold() int {
	n, _ := strconv.Atoi(os.Getenv("LOW_STOCK_THRESHOLD"))
	return n
}

// seedPrivilegesRolesAndAdmin creates default privileges, roles, and admin user if they don't exist
func seedPrivilegesRolesAndAdmin(db *gorm.DB) {
	privilegeRepo := repository.NewPrivilegeRepo(db)
	userRepo := repository.NewUserRepo(db)
	roleRepo := repository.NewRoleRepo(db)

	// 1. Seed privileges first
	if err := privilegeRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: Failed to seed privileges: %v", err)
	}

	// 2. Seed roles
	if err := roleRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: Failed to seed roles: %v", err)
	}

	// 3. Assign privileges to roles
	allPrivileges, _ := privilegeRepo.FindAll()

	// ADMIN gets ALL privileges
	adminRole, err := roleRepo.FindByCode(model.RoleAdmin)
	if err == nil && len(adminRole.Privileges) == 0 {
		db.Model(&adminRole).Association("Privileges").Replace(allPrivileges)
		log.Println("✅ ADMIN role assigned all privileges")
	}

	// GUDANG gets the warehouse surface
	gudangRole, err := roleRepo.FindByCode(model.RoleGudang)
	if err == nil && len(gudangRole.Privileges) == 0 {
		gudangPrivileges, _ := privilegeRepo.FindByCodes(model.GudangPrivilegeCodes)
		db.Model(&gudangRole).Association("Privileges").Replace(gudangPrivileges)
		log.Println("✅ GUDANG role assigned warehouse privileges")
	}

	// KASIR gets the checkout surface
	kasirRole, err := roleRepo.FindByCode(model.RoleKasir)
	if err == nil && len(kasirRole.Privileges) == 0 {
		kasirPrivileges, _ := privilegeRepo.FindByCodes(model.KasirPrivilegeCodes)
		db.Model(&kasirRole).Association("Privileges").Replace(kasirPrivileges)
		log.Println("✅ KASIR role assigned checkout privileges")
	}

	// 4. Create default admin user with ADMIN role
	_, err = userRepo.FindByUsername("admin")
	if err != nil {
		adminRole, _ := roleRepo.FindByCode(model.RoleAdmin)

		admin := &model.User{
			Username:   "admin",
			Name:       "Administrator",
			RoleID:     &adminRole.ID,
			IsActive:   true,
			Privileges: adminRole.Privileges,
		}
		admin.CreatedBy = "system"
		admin.UpdatedBy = "system"

		if err := admin.SetPassword("admin123"); err != nil {
			log.Printf("Warning: Failed to hash admin password: %v", err)
			return
		}

		if err := userRepo.Create(admin); err != nil {
			log.Printf("Warning: Failed to create admin user: %v", err)
		} else {
			log.Println("✅ Admin user created: admin / admin123 (ADMIN)")
		}
	}
}
