package router

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-foh/controllers"
	"github.com/yeremiapane/restaurant-foh/kds"
	"github.com/yeremiapane/restaurant-foh/middlewares"
	"github.com/yeremiapane/restaurant-foh/models"
	"github.com/yeremiapane/restaurant-foh/services"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	// Apply security middlewares
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	// Inisialisasi service inti
	registry := services.NewAssignmentRegistry(db)
	lifecycle := services.NewLifecycle(db)
	notifier := services.NewNotifier(registry, kds.DefaultHub(), db)

	// Inisialisasi controller
	userCtrl := controllers.NewUserController(db)
	tableCtrl := controllers.NewTableController(db, registry)
	categoryCtrl := controllers.NewMenuCategoryController(db)
	menuCtrl := controllers.NewMenuController(db)
	orderCtrl := controllers.NewOrderController(db, lifecycle, notifier)
	notificationCtrl := controllers.NewNotificationController(db)
	receiptCtrl := controllers.NewReceiptController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Rate limiter untuk login/register
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// Katalog boleh dilihat tanpa login
	r.GET("/categories", categoryCtrl.GetAllCategories)
	r.GET("/menus", menuCtrl.GetAllMenus)
	r.GET("/menus/by-category", menuCtrl.GetMenuByCategory)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/api")
	auth.Use(middlewares.AuthMiddleware())

	// Profil staff
	auth.GET("/profile", userCtrl.GetProfile)
	auth.GET("/users", userCtrl.GetAllUsers)
	auth.GET("/waiters", userCtrl.GetWaiters)
	auth.POST("/logout", userCtrl.Logout)

	// TABLES -- provisioning & penugasan waiter (manager)
	auth.GET("/tables", tableCtrl.GetAllTables)
	auth.GET("/tables/:table_number", tableCtrl.GetTableByNumber)
	auth.POST("/tables", middlewares.RequireRoles(models.RoleManager), tableCtrl.CreateTable)
	auth.POST("/tables/batch", middlewares.RequireRoles(models.RoleManager), tableCtrl.BatchTables)
	auth.DELETE("/tables/:table_number", middlewares.RequireRoles(models.RoleManager), tableCtrl.DeleteTable)
	auth.POST("/tables/:table_number/assign", middlewares.RequireRoles(models.RoleManager), tableCtrl.AssignWaiter)
	auth.DELETE("/tables/:table_number/assign", middlewares.RequireRoles(models.RoleManager), tableCtrl.UnassignWaiter)

	// MENU CATEGORIES (manager)
	auth.POST("/categories", middlewares.RequireRoles(models.RoleManager), categoryCtrl.CreateCategory)
	auth.PATCH("/categories/:cat_id", middlewares.RequireRoles(models.RoleManager), categoryCtrl.UpdateCategory)
	auth.DELETE("/categories/:cat_id", middlewares.RequireRoles(models.RoleManager), categoryCtrl.DeleteCategory)

	// MENUS (manager)
	auth.GET("/menus", menuCtrl.GetAllMenus)
	auth.GET("/menus/:menu_id", menuCtrl.GetMenuByID)
	auth.POST("/menus", middlewares.RequireRoles(models.RoleManager), menuCtrl.CreateMenu)
	auth.PATCH("/menus/:menu_id", middlewares.RequireRoles(models.RoleManager), menuCtrl.UpdateMenu)
	auth.DELETE("/menus/:menu_id", middlewares.RequireRoles(models.RoleManager), menuCtrl.DeleteMenu)

	// ORDERS -- create dengan settlement kas, lalu transisi status
	auth.GET("/orders", orderCtrl.GetAllOrders)
	auth.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	auth.POST("/orders", middlewares.RequireRoles(models.RoleWaiter, models.RoleCashier), orderCtrl.CreateOrder)
	auth.POST("/orders/:order_id/start-prep", orderCtrl.StartPrep)
	auth.POST("/orders/:order_id/ready", orderCtrl.MarkReady)
	auth.POST("/orders/:order_id/serve", orderCtrl.ServeOrder)
	auth.POST("/orders/:order_id/cancel", orderCtrl.CancelOrder)
	auth.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)
	auth.GET("/kitchen/display", orderCtrl.GetKitchenDisplay)

	// RECEIPTS (cashier) dengan middleware logger
	receiptGroup := auth.Group("/orders")
	receiptGroup.Use(middlewares.ReceiptLoggerMiddleware())
	{
		receiptGroup.POST("/:order_id/receipt",
			middlewares.RequireRoles(models.RoleCashier), receiptCtrl.GenerateReceipt)
	}
	auth.GET("/receipts/:receipt_id", receiptCtrl.GetReceiptByID)
	auth.GET("/receipts/:receipt_id/pdf", receiptCtrl.DownloadReceiptPDF)

	// NOTIFICATIONS -> riwayat per role/identitas
	auth.GET("/notifications", notificationCtrl.GetAllNotifications)
	auth.GET("/notifications/:notif_id", notificationCtrl.GetNotificationByID)
	auth.DELETE("/notifications/:notif_id", notificationCtrl.DeleteNotification)

	// WebSocket endpoint dengan middleware khusus
	wsGroup := r.Group("/ws")
	wsGroup.Use(middlewares.WebSocketAuthMiddleware())
	{
		wsGroup.GET("", controllers.KDSHandler)
	}

	return r
}
