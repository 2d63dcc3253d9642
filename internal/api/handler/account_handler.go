package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chiraitori/farm-management-api/internal/core/domain"
	"github.com/chiraitori/farm-management-api/internal/core/ports"
)

// AccountHandler provisions privileged accounts.
type AccountHandler struct {
	accounts ports.AccountService
}

func NewAccountHandler(accounts ports.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

type provisionRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// the bootstrap admin endpoint only needs credentials, matching the
// original create-admin script
type provisionAdminRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// CreateDirector handles POST /create/director.
//
// @Summary      Provision a director account
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      provisionRequest  true  "Account details"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /create/director [post]
func (h *AccountHandler) CreateDirector(c echo.Context) error {
	return h.provision(c, domain.RoleDirector)
}

// CreateManager handles POST /create/manager.
//
// @Summary      Provision a manager account
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      provisionRequest  true  "Account details"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /create/manager [post]
func (h *AccountHandler) CreateManager(c echo.Context) error {
	return h.provision(c, domain.RoleManager)
}

func (h *AccountHandler) provision(c echo.Context, role domain.Role) error {
	var req provisionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	_, err := h.accounts.Provision(c.Request().Context(), ports.ProvisionInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     role,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, messageResponse{Message: "Account created successfully"})
}

// CreateAdmin handles POST /create-admin — the unauthenticated bootstrap
// path used to seed the very first admin.
//
// @Summary      Provision an admin account
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        body  body      provisionAdminRequest  true  "Admin credentials"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /create-admin [post]
func (h *AccountHandler) CreateAdmin(c echo.Context) error {
	var req provisionAdminRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	_, err := h.accounts.Provision(c.Request().Context(), ports.ProvisionInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.RoleAdmin,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, messageResponse{Message: "Admin account created successfully"})
}
