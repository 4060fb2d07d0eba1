package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestGlobalErrorHandler(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{name: "validation", err: NewValidation("text is required"), status: http.StatusBadRequest, body: `"error":"text is required"`},
		{name: "quota", err: fmt.Errorf("analyze: %w", ErrQuotaExceeded), status: http.StatusUnauthorized, body: `"authRequired":true`},
		{name: "not found", err: &RemoteError{Kind: KindNotFound, Status: 404}, status: http.StatusNotFound, body: `"error":"not found"`},
		{name: "echo error", err: echo.NewHTTPError(http.StatusConflict, "busy"), status: http.StatusConflict, body: `"error":"busy"`},
		{name: "remote", err: &RemoteError{Kind: KindAnalyze, Status: 500}, status: http.StatusBadGateway, body: "try again"},
		{name: "other", err: errors.New("boom"), status: http.StatusInternalServerError, body: "internal server error"},
	}

	handler := GlobalErrorHandler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			handler(tt.err, c)

			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.body)
		})
	}
}
