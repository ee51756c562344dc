package payment

import (
	"log/slog"
	"net/http"

	paymentsvc "bikerental/service/payment"
	"bikerental/util/httpx"
	"bikerental/validation"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc paymentsvc.Service
	V   *validation.Validator
	Log *slog.Logger
}

func (h *Controller) fail(c echo.Context, op string, err error) error {
	switch paymentsvc.Code(err) {
	case paymentsvc.ErrInvalid:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	case paymentsvc.ErrNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"message": "payment not found"})
	case paymentsvc.ErrRentalNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"message": "rental not found"})
	case paymentsvc.ErrOverpayment, paymentsvc.ErrRefundTooLarge, paymentsvc.ErrUnknownCost:
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"message": err.Error()})
	}
	if handled, rerr := httpx.StoreError(c, err); handled {
		return rerr
	}
	h.Log.Error(op, "err", err, "req_id", c.Response().Header().Get(echo.HeaderXRequestID))
	return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
}

// GET /v1/payments
// @Summary  List payments
// @Tags     payments
// @Param    page   query  int     false  "page, 1-based"
// @Param    q      query  string  false  "search"
// @Param    sort   query  string  false  "sort key"
// @Param    order  query  string  false  "asc or desc"
// @Success  200  {object}  map[string]any
// @Security BearerAuth
// @Router   /v1/payments [get]
func (h *Controller) List(c echo.Context) error {
	page, err := h.Svc.List(c.Request().Context(), httpx.ListQuery(c))
	if err != nil {
		return h.fail(c, "payment list", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": page})
}

// GET /v1/payments/:id
func (h *Controller) Detail(c echo.Context) error {
	row, err := h.Svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.fail(c, "payment detail", err)
	}
	if row == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "payment not found"})
	}
	return c.JSON(http.StatusOK, row)
}

// POST /v1/payments
// @Summary      Record payment
// @Description  Payments on a returned rental may not exceed its amount to pay.
// @Tags         payments
// @Accept       json
// @Param        payload  body  PaymentReq  true  "payment"
// @Success      201  {object}  model.Payment
// @Failure      422  {object}  map[string]any "overpayment"
// @Security     BearerAuth
// @Router       /v1/payments [post]
func (h *Controller) Create(c echo.Context) error {
	var req PaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if ok, msg := h.V.Check(req); !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": msg})
	}
	p, err := req.toModel()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid payment_date"})
	}
	if err := h.Svc.Add(c.Request().Context(), p); err != nil {
		return h.fail(c, "payment add", err)
	}
	return c.JSON(http.StatusCreated, p)
}

// POST /v1/payments/:id/refund
// @Summary  Refund part of a payment
// @Tags     payments
// @Accept   json
// @Param    id       path  string     true  "payment id"
// @Param    payload  body  RefundReq  true  "refund"
// @Success  201  {object}  model.Payment
// @Failure  422  {object}  map[string]any "refund exceeds amount paid over rental cost"
// @Security BearerAuth
// @Router   /v1/payments/{id}/refund [post]
func (h *Controller) Refund(c echo.Context) error {
	var req RefundReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if ok, msg := h.V.Check(req); !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": msg})
	}
	refund, err := h.Svc.Refund(c.Request().Context(), c.Param("id"), req.Amount)
	if err != nil {
		return h.fail(c, "payment refund", err)
	}
	return c.JSON(http.StatusCreated, refund)
}

// PUT /v1/payments/:id
func (h *Controller) Update(c echo.Context) error {
	var req PaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	req.ID = c.Param("id")
	p, err := req.toModel()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid payment_date"})
	}
	if err := h.Svc.Update(c.Request().Context(), p); err != nil {
		return h.fail(c, "payment update", err)
	}
	return c.JSON(http.StatusOK, p)
}

// DELETE /v1/payments/:id
func (h *Controller) Delete(c echo.Context) error {
	if err := h.Svc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return h.fail(c, "payment delete", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "deleted"})
}

// DELETE /v1/payments
func (h *Controller) Clear(c echo.Context) error {
	n, err := h.Svc.Clear(c.Request().Context())
	if err != nil {
		return h.fail(c, "payment clear", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted": n})
}
