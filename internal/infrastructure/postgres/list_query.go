package postgres

import (
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/magazyn-erp/magazyn-api/internal/domain"
	"github.com/magazyn-erp/magazyn-api/internal/domain/repository"
)

// builder returns a squirrel builder with PostgreSQL placeholders.
func builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// listSelect builds the shared part of list queries: soft-delete filter,
// ordering, pagination. searchCols are ILIKE'd against the Search term;
// sortable whitelists the SortBy columns ("-field" means descending).
func listSelect(table string, cols []string, filter repository.ListFilter, searchCols []string, sortable map[string]bool, defaultOrder string) (squirrel.SelectBuilder, error) {
	q := builder().Select(cols...).From(table).
		Where(squirrel.Eq{"deleted": filter.Deleted})

	if filter.Search != "" && len(searchCols) > 0 {
		pattern := "%" + filter.Search + "%"
		or := make(squirrel.Or, 0, len(searchCols))
		for _, col := range searchCols {
			or = append(or, squirrel.ILike{col: pattern})
		}
		q = q.Where(or)
	}

	order, err := parseOrderBy(filter.SortBy, sortable, defaultOrder)
	if err != nil {
		return q, err
	}
	q = q.OrderBy(order)

	limit := filter.Limit
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	q = q.Limit(uint64(limit))
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}
	return q, nil
}

// parseOrderBy validates SortBy against the whitelist. "-field" sorts
// descending.
func parseOrderBy(sortBy string, sortable map[string]bool, def string) (string, error) {
	if sortBy == "" {
		return def, nil
	}
	direction := "ASC"
	field := sortBy
	if strings.HasPrefix(sortBy, "-") {
		direction = "DESC"
		field = strings.TrimPrefix(sortBy, "-")
	}
	field = strings.TrimSpace(field)
	if field == "" || !sortable[field] {
		return "", domain.ErrInvalidInput
	}
	return field + " " + direction, nil
}
