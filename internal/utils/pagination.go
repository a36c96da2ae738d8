package utils

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// Pagination holds pagination parameters parsed from the request plus the
// total row count filled in after the query runs.
type Pagination struct {
	Page    int
	PerPage int
	Total   int64
}

// ParsePagination extracts page and per_page query parameters, falling back
// to sane defaults and clamping per_page to 100.
func ParsePagination(c *fiber.Ctx) Pagination {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	perPage, err := strconv.Atoi(c.Query("per_page", "15"))
	if err != nil || perPage < 1 {
		perPage = 15
	}
	if perPage > 100 {
		perPage = 100
	}
	return Pagination{Page: page, PerPage: perPage}
}

// Offset returns the row offset for the current page.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// LastPage returns the number of the final page for the recorded total.
func (p Pagination) LastPage() int {
	if p.Total == 0 {
		return 1
	}
	return int((p.Total + int64(p.PerPage) - 1) / int64(p.PerPage))
}

// Envelope renders the pagination block of the JSON envelope.
func (p Pagination) Envelope() fiber.Map {
	from := p.Offset() + 1
	to := p.Offset() + p.PerPage
	if p.Total == 0 {
		from = 0
		to = 0
	} else if int64(to) > p.Total {
		to = int(p.Total)
	}
	return fiber.Map{
		"current_page": p.Page,
		"last_page":    p.LastPage(),
		"per_page":     p.PerPage,
		"total":        p.Total,
		"from":         from,
		"to":           to,
	}
}
