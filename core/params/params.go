package params

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// QueryParams carries common pagination query parameters.
type QueryParams struct {
	PageNumber int
	PageSize   int
}

// FromEcho extracts pagination parameters with sane defaults.
func FromEcho(c echo.Context) QueryParams {
	p := QueryParams{PageNumber: 1, PageSize: 20}
	if v, err := strconv.Atoi(c.QueryParam("page")); err == nil && v > 0 {
		p.PageNumber = v
	}
	if v, err := strconv.Atoi(c.QueryParam("page_size")); err == nil && v > 0 && v <= 100 {
		p.PageSize = v
	}
	return p
}
