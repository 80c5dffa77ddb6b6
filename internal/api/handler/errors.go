package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-seat-hold-inventory/internal/domain/event"
	"github.com/sanosuguru/go-seat-hold-inventory/internal/domain/hold"
)

// toHTTPError はドメインエラーをHTTPエラーに変換する
func toHTTPError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, event.ErrEventNotFound), errors.Is(err, hold.ErrHoldNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, event.ErrNoSeatsAvailable),
		errors.Is(err, hold.ErrInvalidPaymentToken),
		hold.IsExpired(err),
		errors.Is(err, event.ErrEventNameRequired),
		errors.Is(err, event.ErrInvalidTotalSeats),
		errors.Is(err, hold.ErrInvalidQuantity):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "内部サーバーエラー").SetInternal(err)
	}
}
