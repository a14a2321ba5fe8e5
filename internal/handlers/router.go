package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Dafin1723/fikri-production/internal/middleware"
	"github.com/Dafin1723/fikri-production/internal/services"
)

type RouterConfig struct {
	Orders          *services.OrderService
	Posters         *services.PosterService
	Gate            *middleware.AdminGate
	ShopName        string
	Location        *time.Location
	MaxRequestBytes int64
}

// NewRouter wires every route of the public and admin API.
func NewRouter(cfg RouterConfig) *gin.Engine {
	ordersHandler := NewOrdersHandler(cfg.Orders, cfg.ShopName)
	adminHandler := NewAdminOrdersHandler(cfg.Orders)
	exportHandler := NewExportHandler(cfg.Orders, cfg.ShopName, cfg.Location)
	postersHandler := NewPostersHandler(cfg.Posters)
	authHandler := NewAuthHandler(cfg.Gate)

	bodyLimit := middleware.BodyLimit(cfg.MaxRequestBytes)

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Health check (no auth)
	router.GET("/health", HealthHandler)

	// Public poster images
	router.GET("/posters/:filename", postersHandler.ServeImage)

	api := router.Group("/api/v1")

	// Customer routes
	api.POST("/orders", bodyLimit, ordersHandler.SubmitOrder)
	api.GET("/orders/status/:queue_number", ordersHandler.GetOrderStatus)
	api.GET("/orders/:order_id/receipt", ordersHandler.GetReceipt)
	api.GET("/orders/:order_id/receipt.pdf", ordersHandler.GetReceiptPDF)
	api.GET("/posters", postersHandler.ListPosters)

	// Admin session
	api.POST("/admin/login", authHandler.Login)
	api.POST("/admin/logout", authHandler.Logout)
	api.GET("/admin/session", authHandler.Session)

	admin := api.Group("/admin")
	admin.Use(middleware.RequireAdmin(cfg.Gate))

	admin.GET("/orders", adminHandler.ListOrders)
	admin.GET("/orders/:order_id", adminHandler.GetOrder)
	admin.PUT("/orders/:order_id/status", adminHandler.UpdateStatus)
	admin.DELETE("/orders/:order_id", adminHandler.DeleteOrder)
	admin.GET("/stats", adminHandler.GetStats)
	admin.GET("/uploads/:filename", adminHandler.ServeUpload)

	// Exports
	admin.GET("/export/excel", exportHandler.ExportExcel)
	admin.GET("/export/pdf", exportHandler.ExportPDF)

	// Posters
	admin.GET("/posters", postersHandler.ListPosters)
	admin.POST("/posters", bodyLimit, postersHandler.UploadPoster)
	admin.DELETE("/posters/:poster_id", postersHandler.DeletePoster)

	return router
}
