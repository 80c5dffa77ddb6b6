package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomHTTPErrorHandler(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    int
		wantMessage string
	}{
		{
			name:        "HTTPErrorのメッセージとステータスを返す",
			err:         echo.NewHTTPError(http.StatusNotFound, "イベントが見つかりません"),
			wantCode:    http.StatusNotFound,
			wantMessage: "イベントが見つかりません",
		},
		{
			name:        "文字列以外のメッセージはステータステキスト",
			err:         echo.NewHTTPError(http.StatusBadRequest, map[string]string{"field": "qty"}),
			wantCode:    http.StatusBadRequest,
			wantMessage: "Bad Request",
		},
		{
			name:        "想定外のエラーは500",
			err:         errors.New("boom"),
			wantCode:    http.StatusInternalServerError,
			wantMessage: "内部サーバーエラー",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			CustomHTTPErrorHandler(tt.err, c)

			assert.Equal(t, tt.wantCode, rec.Code)
			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantMessage, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Code)
		})
	}
}

func TestCustomHTTPErrorHandler_Committed(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	require.NoError(t, c.String(http.StatusOK, "done"))

	CustomHTTPErrorHandler(errors.New("late error"), c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "done", rec.Body.String())
}

func TestCustomValidator(t *testing.T) {
	type request struct {
		Name string `validate:"required"`
		Qty  int    `validate:"gt=0"`
	}
	v := NewValidator()

	assert.NoError(t, v.Validate(&request{Name: "a", Qty: 1}))

	err := v.Validate(&request{Qty: 0})
	var he *echo.HTTPError
	require.True(t, errors.As(err, &he))
	assert.Equal(t, http.StatusBadRequest, he.Code)
}
