package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/stockmate-app/stockmate-api/internal/application/service"
	"github.com/stockmate-app/stockmate-api/internal/config"
	domainRepo "github.com/stockmate-app/stockmate-api/internal/domain/repository"
	"github.com/stockmate-app/stockmate-api/internal/infrastructure/database"
	"github.com/stockmate-app/stockmate-api/internal/infrastructure/memstore"
	"github.com/stockmate-app/stockmate-api/internal/infrastructure/repository"
	"github.com/stockmate-app/stockmate-api/internal/presentation/http/handler"
	"github.com/stockmate-app/stockmate-api/internal/presentation/http/routes"
	"github.com/stockmate-app/stockmate-api/pkg/currency"
	"github.com/stockmate-app/stockmate-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Select the storage backend
	var (
		userRepo        domainRepo.UserRepository
		itemRepo        domainRepo.ItemRepository
		saleRepo        domainRepo.SaleRepository
		idempotencyRepo domainRepo.IdempotencyRepository
	)

	switch cfg.App.StoreBackend {
	case config.BackendMemory:
		store := memstore.New()
		if err := memstore.SeedDemoData(store); err != nil {
			log.Fatalf("Failed to seed demo data: %v", err)
		}
		userRepo = store.Users()
		itemRepo = store.Items()
		saleRepo = store.Sales()
		idempotencyRepo = store.IdempotencyKeys()
		log.Printf("Using in-memory demo backend, demo account: %s", memstore.DemoEmail)

	case config.BackendPostgres:
		db, err := database.NewPostgresDB(&cfg.Database)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}

		// Run auto-migrations
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}

		userRepo = repository.NewUserRepository(db)
		itemRepo = repository.NewItemRepository(db)
		saleRepo = repository.NewSaleRepository(db)
		idempotencyRepo = repository.NewIdempotencyRepository(db)

	default:
		log.Fatalf("Unknown store backend %q, expected %q or %q",
			cfg.App.StoreBackend, config.BackendPostgres, config.BackendMemory)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	money := currency.NewFormatter(cfg.App.CurrencySymbol)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	itemService := service.NewItemService(itemRepo)
	saleService := service.NewSaleService(saleRepo)
	checkoutService := service.NewCheckoutService(saleRepo, itemRepo)
	dashboardService := service.NewDashboardService(saleRepo, itemRepo, money)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Item:      handler.NewItemHandler(itemService),
		Sale:      handler.NewSaleHandler(saleService, checkoutService, itemService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
