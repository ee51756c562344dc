package httpx

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"bikerental/repository/listing"
	"bikerental/util/database"

	"github.com/labstack/echo/v4"
)

const DateLayout = "2006-01-02"

// ListQuery reads ?page=&q=&sort=&order= from the request.
func ListQuery(c echo.Context) listing.Query {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		page = 1
	}
	dir := listing.Asc
	if strings.EqualFold(c.QueryParam("order"), "desc") {
		dir = listing.Desc
	}
	return listing.Query{
		Page:   page,
		Search: c.QueryParam("q"),
		Sort:   c.QueryParam("sort"),
		Dir:    dir,
	}
}

// ParseDate accepts YYYY-MM-DD or RFC 3339. Blank yields the zero time.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// StoreError maps constraint failures to a response. handled is false for
// anything else.
func StoreError(c echo.Context, err error) (handled bool, _ error) {
	switch {
	case errors.Is(err, database.ErrDuplicate):
		return true, c.JSON(http.StatusConflict, echo.Map{"message": "record already exists"})
	case errors.Is(err, database.ErrReference):
		return true, c.JSON(http.StatusConflict, echo.Map{"message": "referenced record missing or still in use"})
	}
	return false, nil
}
