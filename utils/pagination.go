package utils

import "github.com/gofiber/fiber/v2"

// Pagination is the envelope returned by every list endpoint.
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	LastPage    int   `json:"last_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
}

// PageParams reads page/per_page query params with sane floors.
func PageParams(c *fiber.Ctx, defaultPerPage int) (page, perPage, offset int) {
	page = c.QueryInt("page", 1)
	perPage = c.QueryInt("per_page", defaultPerPage)
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	return page, perPage, (page - 1) * perPage
}

// Paginate builds the pagination envelope for a result set.
func Paginate(page, perPage int, total int64) Pagination {
	lastPage := int((total + int64(perPage) - 1) / int64(perPage))
	if lastPage < 1 {
		lastPage = 1
	}
	return Pagination{
		CurrentPage: page,
		LastPage:    lastPage,
		PerPage:     perPage,
		Total:       total,
	}
}
