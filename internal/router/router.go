package router

import (
	"time"

	"github.com/jsimonbenitezc-gif/zenit-pos-backend/internal/config"
	"github.com/jsimonbenitezc-gif/zenit-pos-backend/internal/handler"
	"github.com/jsimonbenitezc-gif/zenit-pos-backend/internal/middleware"
	"github.com/jsimonbenitezc-gif/zenit-pos-backend/internal/repository"
	"github.com/jsimonbenitezc-gif/zenit-pos-backend/internal/service"
	"github.com/jsimonbenitezc-gif/zenit-pos-backend/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	ingredientRepo := repository.NewIngredientRepository(db)
	movementRepo := repository.NewMovementRepository(db)
	preparationRepo := repository.NewPreparationRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	discountRepo := repository.NewDiscountRepository(db)
	comboRepo := repository.NewComboRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	customerRepo := repository.NewCustomerRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret, time.Duration(cfg.JWTExpirationHours)*time.Hour)
	inventorySvc := service.NewInventoryService(ingredientRepo, movementRepo, dispatcher, cfg.AllowNegativeStock)
	costingSvc := service.NewCostingService(preparationRepo, ingredientRepo, productRepo)
	productSvc := service.NewProductService(productRepo, categoryRepo)
	discountSvc := service.NewDiscountService(discountRepo, cfg.ClampDiscountFloor)
	comboSvc := service.NewComboService(comboRepo, productRepo)
	orderSvc := service.NewOrderService(orderRepo, productRepo, customerRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	inventoryH := handler.NewInventoryHandler(inventorySvc)
	costingH := handler.NewCostingHandler(costingSvc)
	productsH := handler.NewProductsHandler(productSvc)
	offersH := handler.NewOffersHandler(discountSvc, comboSvc)
	ordersH := handler.NewOrdersHandler(orderSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		ingredients := v1.Group("/ingredients")
		{
			ingredients.POST("", middleware.RequireOwner(), inventoryH.CreateIngredient)
			ingredients.GET("", inventoryH.ListIngredients)
			ingredients.GET("/:id", inventoryH.GetIngredient)
			ingredients.PUT("/:id", middleware.RequireOwner(), inventoryH.UpdateIngredient)
			ingredients.DELETE("/:id", middleware.RequireOwner(), inventoryH.DeactivateIngredient)
		}

		inventory := v1.Group("/inventory")
		{
			inventory.POST("/movements", inventoryH.RecordMovement)
			inventory.GET("/movements", inventoryH.ListMovements)
		}

		preparations := v1.Group("/preparations")
		{
			preparations.POST("", middleware.RequireOwner(), costingH.CreatePreparation)
			preparations.GET("", costingH.ListPreparations)
			preparations.GET("/:id", costingH.GetPreparation)
			preparations.PUT("/:id", middleware.RequireOwner(), costingH.UpdatePreparation)
			preparations.DELETE("/:id", middleware.RequireOwner(), costingH.DeactivatePreparation)
			preparations.PUT("/:id/recipe", middleware.RequireOwner(), costingH.SavePreparationRecipe)
		}

		products := v1.Group("/products")
		{
			products.POST("", middleware.RequireOwner(), productsH.Create)
			products.GET("", productsH.List)
			products.GET("/:id", productsH.Get)
			products.PUT("/:id", middleware.RequireOwner(), productsH.Update)
			products.DELETE("/:id", middleware.RequireOwner(), productsH.Deactivate)
			products.PUT("/:id/recipe", middleware.RequireOwner(), costingH.SaveProductRecipe)
			products.GET("/:id/recipe", costingH.GetProductRecipe)
		}

		discounts := v1.Group("/discounts")
		{
			discounts.POST("", middleware.RequireOwner(), offersH.CreateDiscount)
			discounts.GET("", offersH.ListDiscounts)
			discounts.PUT("/:id", middleware.RequireOwner(), offersH.UpdateDiscount)
			discounts.DELETE("/:id", middleware.RequireOwner(), offersH.DeactivateDiscount)
			discounts.POST("/resolve", offersH.ResolveDiscount)
		}

		combos := v1.Group("/combos")
		{
			combos.POST("", middleware.RequireOwner(), offersH.CreateCombo)
			combos.GET("", offersH.ListCombos)
			combos.GET("/:id", offersH.GetCombo)
			combos.PUT("/:id", middleware.RequireOwner(), offersH.UpdateCombo)
			combos.DELETE("/:id", middleware.RequireOwner(), offersH.DeactivateCombo)
			combos.PUT("/:id/items", middleware.RequireOwner(), offersH.SaveComboItems)
		}

		orders := v1.Group("/orders")
		{
			orders.POST("", ordersH.Create)
			orders.GET("", ordersH.List)
			orders.GET("/:id", ordersH.Get)
			orders.PATCH("/:id/status", ordersH.UpdateStatus)
			orders.DELETE("/:id", ordersH.Cancel)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
