package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magazyn-erp/magazyn-api/internal/application/catalog"
	"github.com/magazyn-erp/magazyn-api/internal/application/dto"
	"github.com/magazyn-erp/magazyn-api/internal/domain"
	"github.com/magazyn-erp/magazyn-api/internal/domain/entity"
	"github.com/magazyn-erp/magazyn-api/internal/domain/repository"
)

type fakeLocationRepo struct {
	locations map[string]*entity.Location
}

func newFakeLocationRepo() *fakeLocationRepo {
	return &fakeLocationRepo{locations: map[string]*entity.Location{}}
}

func (r *fakeLocationRepo) Create(l *entity.Location) error {
	cp := *l
	r.locations[l.ID] = &cp
	return nil
}

func (r *fakeLocationRepo) GetByID(id string) (*entity.Location, error) {
	l, ok := r.locations[id]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (r *fakeLocationRepo) GetByCode(code string) (*entity.Location, error) {
	for _, l := range r.locations {
		if l.Code == code && !l.Deleted {
			cp := *l
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeLocationRepo) Update(l *entity.Location) error {
	if _, ok := r.locations[l.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *l
	r.locations[l.ID] = &cp
	return nil
}

func (r *fakeLocationRepo) List(filter repository.ListFilter) ([]*entity.Location, error) {
	var out []*entity.Location
	for _, l := range r.locations {
		if l.Deleted == filter.Deleted {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeLocationRepo) SetDeleted(id string, deleted bool) error {
	l, ok := r.locations[id]
	if !ok {
		return domain.ErrNotFound
	}
	l.Deleted = deleted
	return nil
}

func newLocationUC() (*catalog.LocationUseCase, *fakeLocationRepo) {
	repo := newFakeLocationRepo()
	return catalog.NewLocationUseCase(repo, newCountingCache()), repo
}

func TestLocationSoftDeleteAndRestore(t *testing.T) {
	uc, _ := newLocationUC()
	resp, err := uc.Create(dto.CreateLocationRequest{Code: "MAG-A", Name: "Hala A"})
	require.NoError(t, err)

	require.NoError(t, uc.SoftDelete(resp.ID))

	active, err := uc.List(repository.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, active.Items, "deleted location hidden from the active list")

	deleted, err := uc.ListDeleted(repository.ListFilter{})
	require.NoError(t, err)
	require.Len(t, deleted.Items, 1)
	assert.Equal(t, resp.ID, deleted.Items[0].ID)

	restored, err := uc.Restore(resp.ID)
	require.NoError(t, err)
	assert.False(t, restored.Deleted)

	active, err = uc.List(repository.ListFilter{})
	require.NoError(t, err)
	require.Len(t, active.Items, 1)
}

func TestLocationRestore_CodeTakenRejected(t *testing.T) {
	uc, _ := newLocationUC()
	first, err := uc.Create(dto.CreateLocationRequest{Code: "MAG-A", Name: "Stara hala"})
	require.NoError(t, err)
	require.NoError(t, uc.SoftDelete(first.ID))

	// Code reused while the first location was deleted.
	_, err = uc.Create(dto.CreateLocationRequest{Code: "MAG-A", Name: "Nowa hala"})
	require.NoError(t, err)

	_, err = uc.Restore(first.ID)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestLocationRestore_NotDeleted(t *testing.T) {
	uc, _ := newLocationUC()
	resp, err := uc.Create(dto.CreateLocationRequest{Code: "MAG-A", Name: "Hala A"})
	require.NoError(t, err)

	_, err = uc.Restore(resp.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "restore only applies to deleted rows")
}
