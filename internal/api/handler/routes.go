package handler

import "github.com/labstack/echo/v4"

// RegisterRoutes は在庫APIのルートを登録する
func RegisterRoutes(e *echo.Echo, s InventoryServiceInterface) {
	health := NewHealthHandler()
	events := NewEventHandler(s)
	holds := NewHoldHandler(s)
	bookings := NewBookingHandler(s)
	counters := NewMetricsHandler(s)

	e.GET("/health", health.Check)
	e.POST("/events", events.Create)
	e.GET("/events/:event_id", events.GetByID)
	e.POST("/holds", holds.Create)
	e.POST("/book", bookings.Create)
	e.GET("/metrics", counters.Get)
}
