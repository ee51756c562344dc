package report

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	reportsvc "bikerental/service/report"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc reportsvc.Service
	Log *slog.Logger
}

// GET /v1/reports/monthly?year=
// @Summary  Monthly revenue and rentals
// @Tags     reports
// @Param    year  query  int  false  "defaults to the current year"
// @Success  200  {object}  reportsvc.Monthly
// @Security BearerAuth
// @Router   /v1/reports/monthly [get]
func (h *Controller) Monthly(c echo.Context) error {
	year := time.Now().Year()
	if s := c.QueryParam("year"); s != "" {
		y, err := strconv.Atoi(s)
		if err != nil || y < 1 {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid year"})
		}
		year = y
	}
	out, err := h.Svc.Monthly(c.Request().Context(), year)
	if err != nil {
		h.Log.Error("monthly report", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, out)
}
