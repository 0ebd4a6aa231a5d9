package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/bistro-reserve/controllers"
	"github.com/yeremiapane/bistro-reserve/middlewares"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	// Rate limiter global (50 request per detik per IP). Harus dipasang
	// sebelum route didaftarkan, gin membekukan handler chain per route.
	r.Use(middlewares.NewRateLimiter(50, 1).RateLimit())

	// Inisialisasi controller
	userCtrl := controllers.NewUserController(db)
	tableCtrl := controllers.NewTableController(db)
	bookingCtrl := controllers.NewBookingController(db)
	categoryCtrl := controllers.NewMenuCategoryController(db)
	menuCtrl := controllers.NewMenuController(db)
	orderCtrl := controllers.NewOrderController(db)
	adminCtrl := controllers.NewAdminController(db)
	settingsCtrl := controllers.NewSettingsController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Rate limiter ketat untuk login/register
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// Menu & floor plan publik
	r.GET("/menu", menuCtrl.GetPublicMenu)
	r.GET("/tables", tableCtrl.GetActiveTables)

	// Cek ketersediaan meja (read-only, tanpa login)
	r.GET("/bookings/availability", bookingCtrl.CheckAvailability)

	// Mock payment
	r.POST("/payments/process", controllers.ProcessPayment)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.POST("/logout", userCtrl.Logout)
		auth.GET("/profile", userCtrl.GetProfile)

		// Reservasi milik user
		auth.POST("/bookings", bookingCtrl.CreateBooking)
		auth.GET("/bookings", bookingCtrl.GetMyBookings)
		auth.GET("/bookings/:booking_id", bookingCtrl.GetBookingByID)
		auth.DELETE("/bookings/:booking_id", bookingCtrl.CancelBooking)

		// Order takeaway milik user
		auth.POST("/orders", orderCtrl.CreateOrder)
		auth.GET("/orders", orderCtrl.GetMyOrders)
		auth.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	}

	// ----------------------------------------------------------------
	//                      ADMIN ROUTES
	// ----------------------------------------------------------------
	admin := r.Group("/admin")
	admin.Use(middlewares.AuthMiddleware(), middlewares.AdminOnly())
	{
		// TABLES
		admin.GET("/tables", tableCtrl.GetAllTables)
		admin.POST("/tables", tableCtrl.CreateTable)
		admin.GET("/tables/:table_id", tableCtrl.GetTableByID)
		admin.PATCH("/tables/:table_id", tableCtrl.UpdateTable)
		admin.DELETE("/tables/:table_id", tableCtrl.DeleteTable)

		// MENU
		admin.GET("/categories", categoryCtrl.GetAllCategories)
		admin.POST("/categories", categoryCtrl.CreateCategory)
		admin.PATCH("/categories/:cat_id", categoryCtrl.UpdateCategory)
		admin.DELETE("/categories/:cat_id", categoryCtrl.DeleteCategory)

		admin.GET("/menu-items", menuCtrl.GetAllMenuItems)
		admin.POST("/menu-items", menuCtrl.CreateMenuItem)
		admin.GET("/menu-items/:item_id", menuCtrl.GetMenuItemByID)
		admin.PATCH("/menu-items/:item_id", menuCtrl.UpdateMenuItem)
		admin.DELETE("/menu-items/:item_id", menuCtrl.DeleteMenuItem)

		// BOOKINGS
		admin.GET("/bookings", bookingCtrl.GetAllBookings)
		admin.PATCH("/bookings/:booking_id", bookingCtrl.UpdateBooking)
		admin.DELETE("/bookings/:booking_id", bookingCtrl.DeleteBooking)

		// ORDERS
		admin.GET("/orders", orderCtrl.GetAllOrders)
		admin.PATCH("/orders/:order_id", orderCtrl.UpdateOrder)

		// DASHBOARD & REPORTS
		admin.GET("/dashboard/stats", adminCtrl.GetDashboardStats)
		admin.GET("/analytics", adminCtrl.GetAnalytics)
		admin.GET("/analytics/chart", adminCtrl.GetAnalyticsChart)
		admin.GET("/reports/export-pdf", adminCtrl.ExportReportPDF)

		// SETTINGS
		admin.GET("/settings", settingsCtrl.GetSettings)
		admin.PUT("/settings", settingsCtrl.UpdateSettings)
	}

	// WebSocket dashboard admin
	wsGroup := r.Group("/ws")
	wsGroup.Use(middlewares.WebSocketAuthMiddleware())
	{
		wsGroup.GET("/admin", controllers.EventsHandler)
	}

	return r
}
