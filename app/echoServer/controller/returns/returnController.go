package returns

import (
	"log/slog"
	"net/http"

	returnsvc "bikerental/service/returns"
	"bikerental/util/httpx"
	"bikerental/validation"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc returnsvc.Service
	V   *validation.Validator
	Log *slog.Logger
}

func (h *Controller) fail(c echo.Context, op string, err error) error {
	switch returnsvc.Code(err) {
	case returnsvc.ErrInvalid:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	case returnsvc.ErrNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"message": "return not found"})
	case returnsvc.ErrRentalNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"message": "rental not found"})
	case returnsvc.ErrDuplicateReturn, returnsvc.ErrBikeInUse, returnsvc.ErrClearRefused:
		h.Log.Warn(op+" refused", "err", err)
		return c.JSON(http.StatusConflict, echo.Map{"message": err.Error()})
	}
	if handled, rerr := httpx.StoreError(c, err); handled {
		return rerr
	}
	h.Log.Error(op, "err", err, "req_id", c.Response().Header().Get(echo.HeaderXRequestID))
	return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
}

// GET /v1/returns
// @Summary  List returns
// @Tags     returns
// @Param    page   query  int     false  "page, 1-based"
// @Param    q      query  string  false  "search"
// @Param    sort   query  string  false  "sort key"
// @Param    order  query  string  false  "asc or desc"
// @Success  200  {object}  map[string]any
// @Security BearerAuth
// @Router   /v1/returns [get]
func (h *Controller) List(c echo.Context) error {
	page, err := h.Svc.List(c.Request().Context(), httpx.ListQuery(c))
	if err != nil {
		return h.fail(c, "return list", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": page})
}

// GET /v1/returns/:id
func (h *Controller) Detail(c echo.Context) error {
	row, err := h.Svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.fail(c, "return detail", err)
	}
	if row == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "return not found"})
	}
	return c.JSON(http.StatusOK, row)
}

// POST /v1/returns
// @Summary      Record a return
// @Description  Completes the rental, frees the bike and deactivates the customer in one transaction.
// @Tags         returns
// @Accept       json
// @Param        payload  body  AddReturnReq  true  "return"
// @Success      201  {object}  model.Return
// @Failure      409  {object}  map[string]any "rental already returned"
// @Security     BearerAuth
// @Router       /v1/returns [post]
func (h *Controller) Create(c echo.Context) error {
	var req AddReturnReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if ok, msg := h.V.Check(req); !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": msg})
	}
	ret, err := req.toModel()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid return_date"})
	}
	opt := returnsvc.AddOptions{
		ReleaseBike:        orTrue(req.ReleaseBike),
		DeactivateCustomer: orTrue(req.DeactivateCustomer),
	}
	if err := h.Svc.Add(c.Request().Context(), ret, opt); err != nil {
		return h.fail(c, "return add", err)
	}
	return c.JSON(http.StatusCreated, ret)
}

// DELETE /v1/returns/:id
// @Summary  Undo a return
// @Tags     returns
// @Param    id  path  string  true  "return id"
// @Success  200  {object}  map[string]any
// @Failure  409  {object}  map[string]any "bike is out on another rental"
// @Security BearerAuth
// @Router   /v1/returns/{id} [delete]
func (h *Controller) Delete(c echo.Context) error {
	if err := h.Svc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return h.fail(c, "return delete", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "deleted"})
}

// DELETE /v1/returns
func (h *Controller) Clear(c echo.Context) error {
	n, err := h.Svc.Clear(c.Request().Context())
	if err != nil {
		return h.fail(c, "return clear", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted": n})
}
