package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/chiraitori/farm-management-api/internal/api/metrics"
	"github.com/chiraitori/farm-management-api/internal/core/domain"
	"github.com/chiraitori/farm-management-api/internal/core/ports"
)

type InventoryHandler struct {
	inventory ports.InventoryService
	farms     ports.FarmService
}

func NewInventoryHandler(inventory ports.InventoryService, farms ports.FarmService) *InventoryHandler {
	return &InventoryHandler{inventory: inventory, farms: farms}
}

type lineItemRequest struct {
	Name     string `json:"name" validate:"required"`
	Quantity string `json:"quantity"`
	Note     string `json:"note"`
}

type uploadRequest struct {
	FarmID     string            `json:"farmId" validate:"required"`
	Items      []lineItemRequest `json:"items"  validate:"required,dive"`
	UploadDate string            `json:"uploadDate"`
}

type updateRequest struct {
	ID         string            `json:"_id"`
	FarmID     string            `json:"farmId"`
	Items      []lineItemRequest `json:"items" validate:"required,dive"`
	UploadDate string            `json:"uploadDate"`
}

type uploadResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

func toLineItems(reqs []lineItemRequest) []domain.LineItem {
	items := make([]domain.LineItem, 0, len(reqs))
	for _, r := range reqs {
		items = append(items, domain.LineItem{Name: r.Name, Quantity: r.Quantity, Note: r.Note})
	}
	return items
}

// parseUploadDate accepts the RFC 3339 form the API emits, plus the bare
// date form older clients send.
func parseUploadDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		u := t.UTC()
		return &u, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("invalid uploadDate %q", s)
	}
	u := t.UTC()
	return &u, nil
}

// Upload handles POST /inventory/upload.
//
// @Summary      Upload a new inventory entry
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      uploadRequest  true  "Entry to store"
// @Success      200   {object}  uploadResponse
// @Failure      400   {object}  errorResponse
// @Router       /inventory/upload [post]
func (h *InventoryHandler) Upload(c echo.Context) error {
	var req uploadRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	uploadDate, err := parseUploadDate(req.UploadDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	entry, err := h.inventory.Upload(c.Request().Context(), ports.UploadEntryInput{
		FarmID:     req.FarmID,
		Items:      toLineItems(req.Items),
		UploadDate: uploadDate,
	})
	if err != nil {
		return err
	}

	metrics.InventoryUploadsTotal.Inc()
	return c.JSON(http.StatusOK, uploadResponse{Message: "Inventory uploaded successfully", ID: entry.ID})
}

// Update handles PUT /inventory/update. A well-formed _id wins over farmId;
// with neither the request is rejected before any database work.
//
// @Summary      Reconcile an inventory entry
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateRequest  true  "Reconciliation payload"
// @Success      200   {object}  domain.InventoryEntry
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /inventory/update [put]
func (h *InventoryHandler) Update(c echo.Context) error {
	var req updateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	uploadDate, err := parseUploadDate(req.UploadDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	editorID, _ := c.Get("user_id").(string)

	entry, err := h.inventory.Update(c.Request().Context(), ports.UpdateEntryInput{
		EntryID:    req.ID,
		FarmID:     req.FarmID,
		Items:      toLineItems(req.Items),
		UploadDate: uploadDate,
		EditorID:   editorID,
	})
	if err != nil {
		return err
	}

	selector := "farm"
	if domain.IsValidID(req.ID) {
		selector = "id"
	}
	metrics.InventoryUpdatesTotal.WithLabelValues(selector).Inc()

	return c.JSON(http.StatusOK, entry)
}

// Calendar handles GET /inventory/calendar?year=&month=.
//
// @Summary      Month view of inventory uploads grouped by day
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Param        year   query  int  true  "Year"
// @Param        month  query  int  true  "Month (1-12)"
// @Success      200
// @Failure      400  {object}  errorResponse
// @Router       /inventory/calendar [get]
func (h *InventoryHandler) Calendar(c echo.Context) error {
	year, month, err := yearMonthParams(c)
	if err != nil {
		return err
	}

	calendar, err := h.inventory.Calendar(c.Request().Context(), year, month)
	if err != nil {
		return err
	}

	metrics.CalendarRequestsTotal.Inc()
	return c.JSON(http.StatusOK, calendar)
}

// Export handles GET /inventory/export?year=&month= — the month's entries as
// an xlsx download.
//
// @Summary      Download a month's inventory as a spreadsheet
// @Tags         inventory
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Param        year   query  int  true  "Year"
// @Param        month  query  int  true  "Month (1-12)"
// @Success      200
// @Failure      400  {object}  errorResponse
// @Router       /inventory/export [get]
func (h *InventoryHandler) Export(c echo.Context) error {
	year, month, err := yearMonthParams(c)
	if err != nil {
		return err
	}

	report, err := h.inventory.ExportMonth(c.Request().Context(), year, month)
	if err != nil {
		return err
	}

	metrics.ExportsTotal.Inc()
	filename := fmt.Sprintf("inventory-%04d-%02d.xlsx", year, month)
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", report)
}

// Catalog handles GET /inventory — the item catalog of the requester's
// primary farm.
//
// @Summary      Fetch the requester's farm catalog
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   string
// @Failure      404  {object}  errorResponse
// @Router       /inventory [get]
func (h *InventoryHandler) Catalog(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	farm, err := h.farms.FirstForUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	stuff := farm.Stuff
	if stuff == nil {
		stuff = []string{}
	}
	return c.JSON(http.StatusOK, stuff)
}

func yearMonthParams(c echo.Context) (int, int, error) {
	year, err := strconv.Atoi(c.QueryParam("year"))
	if err != nil {
		return 0, 0, echo.NewHTTPError(http.StatusBadRequest, "invalid month or year")
	}
	month, err := strconv.Atoi(c.QueryParam("month"))
	if err != nil {
		return 0, 0, echo.NewHTTPError(http.StatusBadRequest, "invalid month or year")
	}
	return year, month, nil
}
