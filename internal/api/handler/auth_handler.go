package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chiraitori/farm-management-api/internal/api/metrics"
	"github.com/chiraitori/farm-management-api/internal/core/domain"
	"github.com/chiraitori/farm-management-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
	Role  string       `json:"role"`
}

// forgotPasswordRequest covers all three reset phases; the populated fields
// decide which phase runs, matching the original single-endpoint flow.
type forgotPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Pin         string `json:"pin"`
	NewPassword string `json:"newPassword"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Login authenticates a user and returns a session token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{
		Token: token,
		User:  user,
		Role:  string(user.ResolveRole()),
	})
}

// ForgotPassword runs one phase of the three-step reset flow.
//
// @Summary      Request, verify, or complete a password reset
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      forgotPasswordRequest  true  "email alone requests a PIN; email+pin verifies it; email+pin+newPassword resets"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	switch {
	case req.Pin == "" && req.NewPassword == "":
		if err := h.authService.RequestReset(ctx, req.Email); err != nil {
			return err
		}
		metrics.PasswordResetsTotal.WithLabelValues("requested").Inc()
		return c.JSON(http.StatusOK, messageResponse{Message: "Verification PIN sent"})

	case req.Pin != "" && req.NewPassword == "":
		if err := h.authService.VerifyPin(ctx, req.Email, req.Pin); err != nil {
			return err
		}
		metrics.PasswordResetsTotal.WithLabelValues("verified").Inc()
		return c.JSON(http.StatusOK, messageResponse{Message: "PIN verified"})

	case req.Pin != "" && req.NewPassword != "":
		if err := h.authService.ResetPassword(ctx, req.Email, req.Pin, req.NewPassword); err != nil {
			return err
		}
		metrics.PasswordResetsTotal.WithLabelValues("reset").Inc()
		return c.JSON(http.StatusOK, messageResponse{Message: "Password reset successfully"})
	}

	return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
}
