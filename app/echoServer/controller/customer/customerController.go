package customer

import (
	"log/slog"
	"net/http"

	customersvc "bikerental/service/customer"
	"bikerental/util/httpx"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc customersvc.Service
	Log *slog.Logger
}

func (h *Controller) fail(c echo.Context, op string, err error) error {
	switch customersvc.Code(err) {
	case customersvc.ErrInvalid:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	case customersvc.ErrNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"message": "customer not found"})
	case customersvc.ErrHasActiveRentals:
		return c.JSON(http.StatusConflict, echo.Map{"message": err.Error()})
	}
	if handled, rerr := httpx.StoreError(c, err); handled {
		return rerr
	}
	h.Log.Error(op, "err", err, "req_id", c.Response().Header().Get(echo.HeaderXRequestID))
	return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
}

// GET /v1/customers
// @Summary  List customers
// @Tags     customers
// @Param    page   query  int     false  "page, 1-based"
// @Param    q      query  string  false  "search"
// @Param    sort   query  string  false  "sort key"
// @Param    order  query  string  false  "asc or desc"
// @Success  200  {object}  map[string]any
// @Security BearerAuth
// @Router   /v1/customers [get]
func (h *Controller) List(c echo.Context) error {
	page, err := h.Svc.List(c.Request().Context(), httpx.ListQuery(c))
	if err != nil {
		return h.fail(c, "customer list", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": page})
}

// GET /v1/customers/:id
func (h *Controller) Detail(c echo.Context) error {
	row, err := h.Svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.fail(c, "customer detail", err)
	}
	if row == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "customer not found"})
	}
	return c.JSON(http.StatusOK, row)
}

// POST /v1/customers
// @Summary  Register customer
// @Tags     customers
// @Accept   json
// @Param    payload  body  CustomerReq  true  "customer"
// @Success  201  {object}  model.Customer
// @Failure  400  {object}  map[string]any
// @Failure  409  {object}  map[string]any "id already taken"
// @Security BearerAuth
// @Router   /v1/customers [post]
func (h *Controller) Create(c echo.Context) error {
	var req CustomerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	cust, err := req.toModel()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid registration_date"})
	}
	if err := h.Svc.Create(c.Request().Context(), cust); err != nil {
		return h.fail(c, "customer create", err)
	}
	return c.JSON(http.StatusCreated, cust)
}

// PUT /v1/customers/:id
func (h *Controller) Update(c echo.Context) error {
	var req CustomerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	req.ID = c.Param("id")
	cust, err := req.toModel()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid registration_date"})
	}
	if err := h.Svc.Update(c.Request().Context(), cust); err != nil {
		return h.fail(c, "customer update", err)
	}
	return c.JSON(http.StatusOK, cust)
}

// DELETE /v1/customers/:id
func (h *Controller) Delete(c echo.Context) error {
	if err := h.Svc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return h.fail(c, "customer delete", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "deleted"})
}

// DELETE /v1/customers
func (h *Controller) Clear(c echo.Context) error {
	n, err := h.Svc.Clear(c.Request().Context())
	if err != nil {
		return h.fail(c, "customer clear", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted": n})
}
