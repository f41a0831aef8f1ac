package catalog

import (
	"context"
	"fmt"

	"github.com/magazyn-erp/magazyn-api/internal/application/stock"
	"github.com/magazyn-erp/magazyn-api/internal/domain/entity"
	"github.com/magazyn-erp/magazyn-api/internal/domain/repository"
)

// Cache is a process-local read cache for catalog lookups. Writes purge it
// wholesale; entries also expire on their own TTL.
type Cache interface {
	Get(key string) (any, bool)
	Set(key string, value any)
	Purge()
}

// MovementApplier records the initial-quantity receipt when an item is
// created with stock on hand.
type MovementApplier interface {
	Apply(ctx context.Context, input stock.MovementInput) (*entity.Movement, error)
}

type nopCache struct{}

func (nopCache) Get(string) (any, bool) { return nil, false }
func (nopCache) Set(string, any)        {}
func (nopCache) Purge()                 {}

// NopCache disables caching; used in tests.
func NopCache() Cache { return nopCache{} }

// listCacheKey derives the cache key of a list page from its filter. Entries
// are purged wholesale on writes, so the key only has to be deterministic.
func listCacheKey(prefix string, f repository.ListFilter) string {
	return fmt.Sprintf("%s:%t:%s:%s:%s:%s:%s:%s:%d:%d",
		prefix, f.Deleted, f.Search, f.Category, f.Location, f.Type, f.Status, f.SortBy, f.Limit, f.Offset)
}
