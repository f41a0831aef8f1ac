package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magazyn-erp/magazyn-api/internal/domain"
	"github.com/magazyn-erp/magazyn-api/internal/domain/repository"
)

var itemsSortable = map[string]bool{"code": true, "name": true, "created_at": true}

func TestParseOrderBy(t *testing.T) {
	order, err := parseOrderBy("name", itemsSortable, "created_at DESC")
	require.NoError(t, err)
	assert.Equal(t, "name ASC", order)

	order, err = parseOrderBy("-code", itemsSortable, "created_at DESC")
	require.NoError(t, err)
	assert.Equal(t, "code DESC", order)

	order, err = parseOrderBy("", itemsSortable, "created_at DESC")
	require.NoError(t, err)
	assert.Equal(t, "created_at DESC", order, "empty sort falls back to the default")
}

func TestParseOrderBy_RejectsUnknownColumn(t *testing.T) {
	_, err := parseOrderBy("password_hash", itemsSortable, "created_at DESC")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = parseOrderBy("-", itemsSortable, "created_at DESC")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = parseOrderBy("name; DROP TABLE items", itemsSortable, "created_at DESC")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "order by is whitelist-only")
}

func TestListSelect_SearchAndPagination(t *testing.T) {
	q, err := listSelect("items", []string{"id", "code", "name"},
		repository.ListFilter{Search: "kabel", Limit: 20, Offset: 40},
		[]string{"code", "name"}, itemsSortable, "created_at DESC")
	require.NoError(t, err)

	sql, args, err := q.ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "code ILIKE $2 OR name ILIKE $3")
	assert.Contains(t, sql, "LIMIT 20")
	assert.Contains(t, sql, "OFFSET 40")
	assert.Contains(t, args, "%kabel%")
	assert.Contains(t, args, false, "soft-deleted rows excluded by default")
}

func TestListSelect_LimitDefaults(t *testing.T) {
	q, err := listSelect("items", []string{"id"}, repository.ListFilter{},
		nil, itemsSortable, "created_at DESC")
	require.NoError(t, err)
	sql, _, err := q.ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "LIMIT 50")

	q, err = listSelect("items", []string{"id"}, repository.ListFilter{Limit: 10000},
		nil, itemsSortable, "created_at DESC")
	require.NoError(t, err)
	sql, _, err = q.ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "LIMIT 50", "oversized limit resets to the default")
}

func TestListSelect_InvalidSortSurfaces(t *testing.T) {
	_, err := listSelect("items", []string{"id"},
		repository.ListFilter{SortBy: "nope"}, nil, itemsSortable, "created_at DESC")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
