package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type MetricsHandler struct {
	service InventoryServiceInterface
}

func NewMetricsHandler(s InventoryServiceInterface) *MetricsHandler {
	return &MetricsHandler{service: s}
}

type MetricsResponse struct {
	TotalEvents   int64 `json:"total_events" example:"3"`
	TotalHolds    int64 `json:"total_holds" example:"10"`
	TotalBookings int64 `json:"total_bookings" example:"7"`
	TotalExpiries int64 `json:"total_expiries" example:"2"`
}

// Get godoc
// @Summary 累積カウンタを取得
// @Tags metrics
// @Produce json
// @Success 200 {object} MetricsResponse
// @Router /metrics [get]
func (h *MetricsHandler) Get(c echo.Context) error {
	counters, err := h.service.GetMetrics(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, MetricsResponse{
		TotalEvents:   counters.TotalEvents,
		TotalHolds:    counters.TotalHolds,
		TotalBookings: counters.TotalBookings,
		TotalExpiries: counters.TotalExpiries,
	})
}
