package rental

import (
	"log/slog"
	"net/http"

	rs "bikerental/service/rental"
	"bikerental/util/httpx"
	"bikerental/validation"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc     rs.Service
	Cleaner rs.Cleaner
	V       *validation.Validator
	Log     *slog.Logger
}

func (h *Controller) fail(c echo.Context, op string, err error) error {
	switch rs.Code(err) {
	case rs.ErrInvalid:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	case rs.ErrNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"message": "rental not found"})
	case rs.ErrBikeNotFound, rs.ErrCustomerNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"message": err.Error()})
	case rs.ErrBikeUnavailable, rs.ErrCustomerBlacklisted, rs.ErrStatusLocked:
		return c.JSON(http.StatusConflict, echo.Map{"message": err.Error()})
	}
	if handled, rerr := httpx.StoreError(c, err); handled {
		return rerr
	}
	h.Log.Error(op, "err", err, "req_id", c.Response().Header().Get(echo.HeaderXRequestID))
	return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
}

// GET /v1/rentals
// @Summary  List rentals with customer and bike details
// @Tags     rentals
// @Param    page   query  int     false  "page, 1-based"
// @Param    q      query  string  false  "search"
// @Param    sort   query  string  false  "sort key"
// @Param    order  query  string  false  "asc or desc"
// @Success  200  {object}  map[string]any
// @Security BearerAuth
// @Router   /v1/rentals [get]
func (h *Controller) List(c echo.Context) error {
	page, err := h.Svc.List(c.Request().Context(), httpx.ListQuery(c))
	if err != nil {
		return h.fail(c, "rental list", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": page})
}

// GET /v1/rentals/:id
func (h *Controller) Detail(c echo.Context) error {
	row, err := h.Svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.fail(c, "rental detail", err)
	}
	if row == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "rental not found"})
	}
	return c.JSON(http.StatusOK, row)
}

// POST /v1/rentals
// @Summary  Start a rental
// @Tags     rentals
// @Accept   json
// @Param    payload  body  StartRentalReq  true  "rental"
// @Success  201  {object}  model.Rental
// @Failure  404  {object}  map[string]any "bike or customer not found"
// @Failure  409  {object}  map[string]any "bike unavailable or customer blacklisted"
// @Security BearerAuth
// @Router   /v1/rentals [post]
func (h *Controller) Create(c echo.Context) error {
	var req StartRentalReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if ok, msg := h.V.Check(req); !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": msg})
	}
	rt, err := req.toModel()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid rental_date"})
	}
	if err := h.Svc.Start(c.Request().Context(), rt); err != nil {
		return h.fail(c, "rental start", err)
	}
	return c.JSON(http.StatusCreated, rt)
}

// PUT /v1/rentals/:id
func (h *Controller) Update(c echo.Context) error {
	var req UpdateRentalReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	rt, err := req.toModel(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid rental_date"})
	}
	if err := h.Svc.Update(c.Request().Context(), rt); err != nil {
		return h.fail(c, "rental update", err)
	}
	return c.JSON(http.StatusOK, rt)
}

// DELETE /v1/rentals/:id
func (h *Controller) Delete(c echo.Context) error {
	if err := h.Svc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return h.fail(c, "rental delete", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "deleted"})
}

// POST /v1/rentals/overdue
func (h *Controller) MarkOverdue(c echo.Context) error {
	n, err := h.Cleaner.MarkOverdue(c.Request().Context())
	if err != nil {
		return h.fail(c, "rental overdue", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"marked": n})
}
