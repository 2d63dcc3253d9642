package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/chiraitori/farm-management-api/internal/core/domain"
)

func invokeErrorHandler(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)
	return rec
}

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrMissingSelector, http.StatusBadRequest},
		{domain.ErrInvalidMonth, http.StatusBadRequest},
		{domain.ErrMissingFields, http.StatusBadRequest},
		{domain.ErrInvalidPin, http.StatusBadRequest},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrUserNotFound, http.StatusNotFound},
		{domain.ErrFarmNotFound, http.StatusNotFound},
		{domain.ErrNoFarmAssigned, http.StatusNotFound},
		{domain.ErrNotAssigned, http.StatusNotFound},
		{domain.ErrEntryNotFound, http.StatusNotFound},
		{domain.ErrEmailTaken, http.StatusConflict},
		{domain.ErrWeatherUnavailable, http.StatusBadGateway},
	}

	for _, tc := range cases {
		rec := invokeErrorHandler(t, tc.err)
		if rec.Code != tc.code {
			t.Errorf("%v: want %d, got %d", tc.err, tc.code, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"error"`) {
			t.Errorf("%v: missing error envelope: %s", tc.err, rec.Body.String())
		}
	}
}

func TestHTTPErrorHandler_WrappedDomainError(t *testing.T) {
	// Services wrap repository errors; the mapping must survive the wrap.
	wrapped := errors.Join(errors.New("update inventory"), domain.ErrEntryNotFound)
	rec := invokeErrorHandler(t, wrapped)
	if rec.Code != http.StatusNotFound {
		t.Errorf("want 404 for a wrapped ErrEntryNotFound, got %d", rec.Code)
	}
}

func TestHTTPErrorHandler_EchoHTTPError(t *testing.T) {
	rec := invokeErrorHandler(t, echo.NewHTTPError(http.StatusTeapot, "short and stout"))
	if rec.Code != http.StatusTeapot {
		t.Errorf("want 418, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "short and stout") {
		t.Errorf("echo error message lost: %s", rec.Body.String())
	}
}

func TestHTTPErrorHandler_UnknownErrorIsOpaque(t *testing.T) {
	rec := invokeErrorHandler(t, errors.New("mongo: connection reset by peer"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("want 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "mongo") {
		t.Errorf("internal detail leaked: %s", rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "internal server error") {
		t.Errorf("generic message missing: %s", rec.Body.String())
	}
}
