package bike

import (
	"log/slog"
	"net/http"

	"bikerental/model"
	bikesvc "bikerental/service/bike"
	"bikerental/util/httpx"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc bikesvc.Service
	Log *slog.Logger
}

func (h *Controller) fail(c echo.Context, op string, err error) error {
	switch bikesvc.Code(err) {
	case bikesvc.ErrInvalid:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	case bikesvc.ErrNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"message": "bike not found"})
	}
	if handled, rerr := httpx.StoreError(c, err); handled {
		return rerr
	}
	h.Log.Error(op, "err", err, "req_id", c.Response().Header().Get(echo.HeaderXRequestID))
	return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
}

// GET /v1/bikes
// @Summary  List bikes
// @Tags     bikes
// @Param    page   query  int     false  "page, 1-based"
// @Param    q      query  string  false  "search"
// @Param    sort   query  string  false  "sort key"
// @Param    order  query  string  false  "asc or desc"
// @Success  200  {object}  map[string]any
// @Security BearerAuth
// @Router   /v1/bikes [get]
func (h *Controller) List(c echo.Context) error {
	page, err := h.Svc.List(c.Request().Context(), httpx.ListQuery(c))
	if err != nil {
		return h.fail(c, "bike list", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": page})
}

// GET /v1/bikes/:id
func (h *Controller) Detail(c echo.Context) error {
	row, err := h.Svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.fail(c, "bike detail", err)
	}
	if row == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "bike not found"})
	}
	return c.JSON(http.StatusOK, row)
}

// POST /v1/bikes
// @Summary  Add bike
// @Tags     bikes
// @Accept   json
// @Param    payload  body  model.Bike  true  "bike; id and status are optional"
// @Success  201  {object}  model.Bike
// @Failure  400  {object}  map[string]any
// @Security BearerAuth
// @Router   /v1/bikes [post]
func (h *Controller) Create(c echo.Context) error {
	var b model.Bike
	if err := c.Bind(&b); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.Svc.Create(c.Request().Context(), &b); err != nil {
		return h.fail(c, "bike create", err)
	}
	return c.JSON(http.StatusCreated, b)
}

// PUT /v1/bikes/:id
func (h *Controller) Update(c echo.Context) error {
	var b model.Bike
	if err := c.Bind(&b); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	b.ID = c.Param("id")
	if err := h.Svc.Update(c.Request().Context(), &b); err != nil {
		return h.fail(c, "bike update", err)
	}
	return c.JSON(http.StatusOK, b)
}

// DELETE /v1/bikes/:id
func (h *Controller) Delete(c echo.Context) error {
	if err := h.Svc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return h.fail(c, "bike delete", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "deleted"})
}

// DELETE /v1/bikes
func (h *Controller) Clear(c echo.Context) error {
	n, err := h.Svc.Clear(c.Request().Context())
	if err != nil {
		return h.fail(c, "bike clear", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted": n})
}
