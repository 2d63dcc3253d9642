package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/chiraitori/farm-management-api/internal/core/domain"
)

func invokeRBAC(t *testing.T, role string, allowed ...domain.Role) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != "" {
		c.Set("role", role)
	}

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	if err := RBAC(allowed...)(next)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return rec
}

func TestRBAC(t *testing.T) {
	cases := []struct {
		name    string
		role    string
		allowed []domain.Role
		want    int
	}{
		{"allowed single", "admin", []domain.Role{domain.RoleAdmin}, http.StatusOK},
		{"allowed one of many", "director", []domain.Role{domain.RoleAdmin, domain.RoleDirector}, http.StatusOK},
		{"denied", "seller", []domain.Role{domain.RoleAdmin, domain.RoleDirector}, http.StatusForbidden},
		{"denied member", "member", []domain.Role{domain.RoleAdmin}, http.StatusForbidden},
		{"no role in context", "", []domain.Role{domain.RoleAdmin}, http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := invokeRBAC(t, tc.role, tc.allowed...)
			if rec.Code != tc.want {
				t.Errorf("want %d, got %d", tc.want, rec.Code)
			}
		})
	}
}
