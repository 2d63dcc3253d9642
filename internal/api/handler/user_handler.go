package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chiraitori/farm-management-api/internal/core/ports"
)

type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

type createUserRequest struct {
	Name          string   `json:"name"     validate:"required"`
	Email         string   `json:"email"    validate:"required,email"`
	Password      string   `json:"password" validate:"required,min=6"`
	IsAdmin       bool     `json:"isAdmin"`
	IsDirector    bool     `json:"isDirector"`
	IsManager     bool     `json:"isManager"`
	IsSeller      bool     `json:"isSeller"`
	AssignedFarms []string `json:"assignedFarms"`
}

type updateUserRequest struct {
	Name          *string   `json:"name"`
	Email         *string   `json:"email"`
	Password      *string   `json:"password"`
	IsAdmin       *bool     `json:"isAdmin"`
	IsDirector    *bool     `json:"isDirector"`
	IsManager     *bool     `json:"isManager"`
	IsSeller      *bool     `json:"isSeller"`
	AssignedFarms *[]string `json:"assignedFarms"`
}

type createUserResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

// List handles GET /users.
//
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Create handles POST /users.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "User details"
// @Success      201   {object}  createUserResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.users.Create(c.Request().Context(), ports.CreateUserInput{
		Name:          req.Name,
		Email:         req.Email,
		Password:      req.Password,
		IsAdmin:       req.IsAdmin,
		IsDirector:    req.IsDirector,
		IsManager:     req.IsManager,
		IsSeller:      req.IsSeller,
		AssignedFarms: req.AssignedFarms,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createUserResponse{Message: "User created successfully", UserID: user.ID})
}

// Update handles PUT /users/:id.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Changed fields"
// @Success      200   {object}  messageResponse
// @Failure      404   {object}  errorResponse
// @Router       /users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	err := h.users.Update(c.Request().Context(), c.Param("id"), ports.UpdateUserInput{
		Name:          req.Name,
		Email:         req.Email,
		Password:      req.Password,
		IsAdmin:       req.IsAdmin,
		IsDirector:    req.IsDirector,
		IsManager:     req.IsManager,
		IsSeller:      req.IsSeller,
		AssignedFarms: req.AssignedFarms,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "User updated successfully"})
}

// Delete handles DELETE /users/:id.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "User id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.users.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "User deleted successfully"})
}
