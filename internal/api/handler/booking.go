package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-seat-hold-inventory/internal/application"
)

type BookingHandler struct {
	service InventoryServiceInterface
}

func NewBookingHandler(s InventoryServiceInterface) *BookingHandler {
	return &BookingHandler{service: s}
}

type BookRequest struct {
	HoldID       string `json:"hold_id" validate:"required" example:"7c9e6679-7425-40de-944b-e07fc1f90ae7"`
	PaymentToken string `json:"payment_token" validate:"required" example:"f47ac10b-58cc-4372-a567-0e02b2c3d479"`
}

type BookingResponse struct {
	BookingID string `json:"booking_id" example:"3fa85f64-5717-4562-b3fc-2c963f66afa6"`
}

// Create godoc
// @Summary 仮押さえを確定
// @Description 確定済みの仮押さえに再送した場合は同じ予約IDを返します
// @Tags bookings
// @Accept json
// @Produce json
// @Param request body BookRequest true "確定情報"
// @Success 200 {object} BookingResponse
// @Failure 400 {object} api.ErrorResponse "トークン不一致・期限切れ"
// @Failure 404 {object} api.ErrorResponse
// @Router /book [post]
func (h *BookingHandler) Create(c echo.Context) error {
	var req BookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "リクエストの形式が不正です")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	res, err := h.service.Book(c.Request().Context(), application.BookInput{
		HoldID:       req.HoldID,
		PaymentToken: req.PaymentToken,
	})
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, BookingResponse{BookingID: res.BookingID})
}
