package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-seat-hold-inventory/internal/application"
)

type HoldHandler struct {
	service InventoryServiceInterface
}

func NewHoldHandler(s InventoryServiceInterface) *HoldHandler {
	return &HoldHandler{service: s}
}

type CreateHoldRequest struct {
	EventID  string `json:"event_id" validate:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	Quantity int    `json:"qty" validate:"gt=0" example:"3"`
}

type HoldResponse struct {
	HoldID       string `json:"hold_id" example:"7c9e6679-7425-40de-944b-e07fc1f90ae7"`
	ExpiresAt    string `json:"expires_at" example:"2025-12-06T10:02:00Z"`
	PaymentToken string `json:"payment_token" example:"f47ac10b-58cc-4372-a567-0e02b2c3d479"`
	QtyHeld      int    `json:"qty_held" example:"3"`
}

// Create godoc
// @Summary 座席を仮押さえ
// @Description 空席が要求数に満たない場合は空席分だけ仮押さえします
// @Tags holds
// @Accept json
// @Produce json
// @Param request body CreateHoldRequest true "仮押さえ情報"
// @Success 201 {object} HoldResponse
// @Failure 400 {object} api.ErrorResponse "空席なし"
// @Failure 404 {object} api.ErrorResponse
// @Router /holds [post]
func (h *HoldHandler) Create(c echo.Context) error {
	var req CreateHoldRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "リクエストの形式が不正です")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	res, err := h.service.CreateHold(c.Request().Context(), application.CreateHoldInput{
		EventID:  req.EventID,
		Quantity: req.Quantity,
	})
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, HoldResponse{
		HoldID:       res.HoldID,
		ExpiresAt:    res.ExpiresAt.Format(time.RFC3339Nano),
		PaymentToken: res.PaymentToken,
		QtyHeld:      res.Quantity,
	})
}
