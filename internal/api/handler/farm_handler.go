package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/chiraitori/farm-management-api/internal/core/ports"
)

type FarmHandler struct {
	farms ports.FarmService
}

func NewFarmHandler(farms ports.FarmService) *FarmHandler {
	return &FarmHandler{farms: farms}
}

type createFarmRequest struct {
	Name      string   `json:"name"     validate:"required"`
	Location  string   `json:"location" validate:"required"`
	Size      float64  `json:"size"     validate:"gte=0"`
	Stuff     []string `json:"stuff"`
	ManagerID string   `json:"managerId"`
}

type updateFarmRequest struct {
	Name      *string   `json:"name"`
	Location  *string   `json:"location"`
	Size      *float64  `json:"size"`
	Stuff     *[]string `json:"stuff"`
	ManagerID *string   `json:"managerId"`
}

type updateStuffRequest struct {
	Stuff []string `json:"stuff" validate:"required"`
}

// Get handles GET /farm and GET /farm?id=. Without an id it returns one
// page of farms (page, limit query parameters).
//
// @Summary      Fetch one farm or a page of farms
// @Tags         farms
// @Produce      json
// @Security     BearerAuth
// @Param        id     query  string  false  "Farm id; omit to list"
// @Param        page   query  int     false  "Page (1-based)"
// @Param        limit  query  int     false  "Page size (max 100)"
// @Success      200
// @Failure      404  {object}  errorResponse
// @Router       /farm [get]
func (h *FarmHandler) Get(c echo.Context) error {
	if id := c.QueryParam("id"); id != "" {
		farm, err := h.farms.Get(c.Request().Context(), id)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, farm)
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	farms, err := h.farms.List(c.Request().Context(), page, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, farms)
}

// Create handles POST /farm.
//
// @Summary      Create a farm
// @Tags         farms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createFarmRequest  true  "Farm details"
// @Success      201
// @Failure      400  {object}  errorResponse
// @Router       /farm [post]
func (h *FarmHandler) Create(c echo.Context) error {
	var req createFarmRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	farm, err := h.farms.Create(c.Request().Context(), ports.CreateFarmInput{
		Name:      req.Name,
		Location:  req.Location,
		Size:      req.Size,
		Stuff:     req.Stuff,
		ManagerID: req.ManagerID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, farm)
}

// Update handles PUT /farm?id=.
//
// @Summary      Update a farm
// @Tags         farms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    query     string             true  "Farm id"
// @Param        body  body      updateFarmRequest  true  "Changed fields"
// @Success      200
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /farm [put]
func (h *FarmHandler) Update(c echo.Context) error {
	id := c.QueryParam("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "farm id is required")
	}

	var req updateFarmRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	farm, err := h.farms.Update(c.Request().Context(), id, ports.FarmUpdate{
		Name:      req.Name,
		Location:  req.Location,
		Size:      req.Size,
		Stuff:     req.Stuff,
		ManagerID: req.ManagerID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, farm)
}

// Delete handles DELETE /farm?id=.
//
// @Summary      Delete a farm (cascades assignment references)
// @Tags         farms
// @Produce      json
// @Security     BearerAuth
// @Param        id  query  string  true  "Farm id"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /farm [delete]
func (h *FarmHandler) Delete(c echo.Context) error {
	id := c.QueryParam("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "farm id is required")
	}

	if err := h.farms.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Farm deleted successfully"})
}

// ListMine handles GET /farms — the farms assigned to the requester.
//
// @Summary      List the requester's assigned farms
// @Tags         farms
// @Produce      json
// @Security     BearerAuth
// @Success      200
// @Failure      404  {object}  errorResponse
// @Router       /farms [get]
func (h *FarmHandler) ListMine(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	farms, err := h.farms.ListForUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, farms)
}

// MyFarm handles GET /farms/user — the requester's primary farm.
//
// @Summary      Fetch the requester's primary farm
// @Tags         farms
// @Produce      json
// @Security     BearerAuth
// @Success      200
// @Failure      404  {object}  errorResponse
// @Router       /farms/user [get]
func (h *FarmHandler) MyFarm(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	farm, err := h.farms.FirstForUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, farm)
}

// UpdateStuff handles PUT /farms/:id/stuff. Only a requester assigned to the
// farm may replace its catalog; anyone else gets 404.
//
// @Summary      Replace a farm's inventory catalog
// @Tags         farms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Farm id"
// @Param        body  body      updateStuffRequest  true  "New catalog"
// @Success      200   {object}  messageResponse
// @Failure      404   {object}  errorResponse
// @Router       /farms/{id}/stuff [put]
func (h *FarmHandler) UpdateStuff(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req updateStuffRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.farms.UpdateStuff(c.Request().Context(), userID, c.Param("id"), req.Stuff); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Farm stuff updated successfully"})
}
