package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/magazyn-erp/magazyn-api/internal/application/dto"
	"github.com/magazyn-erp/magazyn-api/internal/domain/repository"
)

// parseListFilter reads the common list query string. Unparseable values fall
// back to defaults instead of failing the request.
func parseListFilter(c *fiber.Ctx) repository.ListFilter {
	var q dto.ListQuery
	_ = c.QueryParser(&q)
	q.DefaultPage()
	return repository.ListFilter{
		Search:   q.Search,
		Category: q.Category,
		Location: q.Location,
		Type:     q.Type,
		Status:   q.Status,
		SortBy:   q.SortBy,
		Limit:    q.Limit,
		Offset:   q.Offset,
	}
}
