package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-seat-hold-inventory/internal/application"
	"github.com/sanosuguru/go-seat-hold-inventory/internal/domain/event"
)

type EventHandler struct {
	service InventoryServiceInterface
}

func NewEventHandler(s InventoryServiceInterface) *EventHandler {
	return &EventHandler{service: s}
}

type CreateEventRequest struct {
	Name       string `json:"name" validate:"required" example:"東京ドームコンサート2025"`
	TotalSeats int    `json:"total_seats" validate:"gt=0" example:"50000"`
}

type CreateEventResponse struct {
	EventID    string `json:"event_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	TotalSeats int    `json:"total_seats" example:"50000"`
	CreatedAt  string `json:"created_at" example:"2025-12-06T10:00:00Z"`
}

type SnapshotResponse struct {
	Total     int `json:"total" example:"5"`
	Available int `json:"available" example:"2"`
	Held      int `json:"held" example:"3"`
	Booked    int `json:"booked" example:"0"`
}

func toSnapshotResponse(s event.Snapshot) SnapshotResponse {
	return SnapshotResponse{
		Total:     s.Total,
		Available: s.Available,
		Held:      s.Held,
		Booked:    s.Booked,
	}
}

// Create godoc
// @Summary イベントを作成
// @Description 座席数を指定して新しいイベントを作成します
// @Tags events
// @Accept json
// @Produce json
// @Param request body CreateEventRequest true "イベント情報"
// @Success 201 {object} CreateEventResponse
// @Failure 400 {object} api.ErrorResponse
// @Router /events [post]
func (h *EventHandler) Create(c echo.Context) error {
	var req CreateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "リクエストの形式が不正です")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	res, err := h.service.CreateEvent(c.Request().Context(), application.CreateEventInput{
		Name:       req.Name,
		TotalSeats: req.TotalSeats,
	})
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, CreateEventResponse{
		EventID:    res.EventID,
		TotalSeats: res.TotalSeats,
		CreatedAt:  res.CreatedAt.Format(time.RFC3339Nano),
	})
}

// GetByID godoc
// @Summary 座席状況を取得
// @Description 期限切れの仮押さえを解放したうえで座席状況を返します
// @Tags events
// @Produce json
// @Param event_id path string true "イベントID"
// @Success 200 {object} SnapshotResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /events/{event_id} [get]
func (h *EventHandler) GetByID(c echo.Context) error {
	snap, err := h.service.GetSnapshot(c.Request().Context(), c.Param("event_id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toSnapshotResponse(snap))
}
