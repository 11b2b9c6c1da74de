package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"lattelane/configs"
	"lattelane/controllers"
	"lattelane/middlewares"
	"lattelane/pkg/yoco"
	"lattelane/repository"
	"lattelane/services"
	"lattelane/ws"
)

// Deps carries the process-wide singletons the route tree hangs off.
type Deps struct {
	Config  *configs.Config
	DB      *gorm.DB
	Redis   *redis.Client
	Gateway *yoco.Client
	Hub     *ws.OrderHub
	Log     *zap.Logger
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.Use(middlewares.CORSMiddleware())
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// Repositories
	userRepo := repository.NewUserRepository(d.DB)
	menuRepo := repository.NewMenuRepository(d.DB)
	cartRepo := repository.NewCartRepository(d.DB)
	orderRepo := repository.NewOrderRepository(d.DB)

	// Services
	notifier := services.NewLogNotifier(d.Log)
	authSvc := services.NewAuthService(userRepo, d.Config.JWTSecret, d.Config.JWTTTL)
	menuSvc := services.NewMenuService(menuRepo)
	cartSvc := services.NewCartService(d.DB, cartRepo, menuRepo)
	orderSvc := services.NewOrderService(d.DB, orderRepo, notifier, d.Hub)
	checkoutSvc := services.NewCheckoutService(d.DB, orderRepo, cartRepo, d.Gateway, d.Log,
		d.Config.BaseURL, d.Config.Currency, d.Config.DeliveryFee)
	webhookSvc := services.NewWebhookService(d.DB, orderRepo, d.Redis, notifier, d.Hub, d.Log)
	cleanupSvc := services.NewCleanupService(d.DB, orderRepo, d.Config.DraftRetention, d.Log)

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc)
	menuCtrl := controllers.NewMenuController(menuSvc)
	cartCtrl := controllers.NewCartController(cartSvc)
	checkoutCtrl := controllers.NewCheckoutController(checkoutSvc)
	orderCtrl := controllers.NewOrderController(orderSvc)
	staffCtrl := controllers.NewStaffOrderController(orderSvc)
	webhookCtrl := controllers.NewWebhookController(webhookSvc, d.Config.YocoWebhookSecret, d.Log)
	adminCtrl := controllers.NewAdminController(cleanupSvc, d.Gateway, d.Config.BaseURL)

	// Auth (public)
	a := r.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
	}
	a.GET("/me", middlewares.AuthMiddleware(d.Config.JWTSecret), authCtrl.Me)

	// Menu (public)
	r.GET("/menu", menuCtrl.List)
	r.GET("/menu/items/:id", menuCtrl.ItemDetail)

	// Payment gateway callbacks (public, signed)
	r.POST("/api/webhooks/yoco", webhookCtrl.Receive)

	// Customer
	u := r.Group("/", middlewares.AuthMiddleware(d.Config.JWTSecret))
	{
		u.GET("/cart", cartCtrl.Get)
		u.POST("/cart/items", cartCtrl.AddItem)
		u.PATCH("/cart/items/:id", cartCtrl.UpdateItem)
		u.DELETE("/cart/items/:id", cartCtrl.RemoveItem)
		u.DELETE("/cart", cartCtrl.Clear)

		u.POST("/checkout", checkoutCtrl.Create)
		u.GET("/orders", orderCtrl.ListForMe)
		u.GET("/orders/:id", orderCtrl.Detail)
		u.GET("/orders/:id/retry", orderCtrl.RetryCart)
		u.POST("/orders/:id/retry", checkoutCtrl.Retry)
	}

	// Staff (staff/admin)
	staff := r.Group("/staff", middlewares.AuthMiddleware(d.Config.JWTSecret, "staff", "admin"))
	{
		staff.GET("/orders", staffCtrl.ListActive)
		staff.PATCH("/orders/:id/accept", staffCtrl.Accept)
		staff.PATCH("/orders/:id/ready", staffCtrl.Ready)
		staff.PATCH("/orders/:id/complete", staffCtrl.Complete)
		staff.PATCH("/orders/:id/cancel", staffCtrl.Cancel)
		staff.GET("/orders/feed", d.Hub.Serve)
	}

	// Admin (admin only)
	admin := r.Group("/admin", middlewares.AuthMiddleware(d.Config.JWTSecret, "admin"))
	{
		admin.POST("/menu/items", menuCtrl.CreateItem)
		admin.PATCH("/menu/items/:id", menuCtrl.UpdateItem)
		admin.DELETE("/menu/items/:id", menuCtrl.DeleteItem)
		admin.POST("/menu/categories", menuCtrl.CreateCategory)

		admin.POST("/orders/cleanup", adminCtrl.CleanupDrafts)
		admin.POST("/webhooks", adminCtrl.RegisterWebhook)
		admin.GET("/webhooks", adminCtrl.ListWebhooks)
		admin.DELETE("/webhooks/:id", adminCtrl.DeleteWebhook)
	}
}
