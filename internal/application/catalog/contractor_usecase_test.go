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

type fakeContractorRepo struct {
	contractors map[string]*entity.Contractor
}

func newFakeContractorRepo() *fakeContractorRepo {
	return &fakeContractorRepo{contractors: map[string]*entity.Contractor{}}
}

func (r *fakeContractorRepo) Create(c *entity.Contractor) error {
	cp := *c
	r.contractors[c.ID] = &cp
	return nil
}

func (r *fakeContractorRepo) GetByID(id string) (*entity.Contractor, error) {
	c, ok := r.contractors[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeContractorRepo) GetByNIP(nip string) (*entity.Contractor, error) {
	for _, c := range r.contractors {
		if c.NIP == nip && !c.Deleted {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeContractorRepo) Update(c *entity.Contractor) error {
	if _, ok := r.contractors[c.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *c
	r.contractors[c.ID] = &cp
	return nil
}

func (r *fakeContractorRepo) List(filter repository.ListFilter) ([]*entity.Contractor, error) {
	var out []*entity.Contractor
	for _, c := range r.contractors {
		if c.Deleted == filter.Deleted {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeContractorRepo) SetDeleted(id string, deleted bool) error {
	c, ok := r.contractors[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.Deleted = deleted
	return nil
}

func newContractorUC() (*catalog.ContractorUseCase, *fakeContractorRepo) {
	repo := newFakeContractorRepo()
	return catalog.NewContractorUseCase(repo, newCountingCache()), repo
}

func TestContractorSoftDeleteAndRestore(t *testing.T) {
	uc, _ := newContractorUC()
	resp, err := uc.Create(dto.CreateContractorRequest{
		Name: "Budimex SA", Type: entity.ContractorTypeClient, NIP: "5261003187",
	})
	require.NoError(t, err)

	require.NoError(t, uc.SoftDelete(resp.ID))

	active, err := uc.List(repository.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, active.Items, "deleted contractor hidden from the active list")

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
	assert.Equal(t, resp.ID, active.Items[0].ID)
}

func TestContractorRestore_NIPTakenRejected(t *testing.T) {
	uc, _ := newContractorUC()
	first, err := uc.Create(dto.CreateContractorRequest{
		Name: "Stary dostawca", Type: entity.ContractorTypeSupplier, NIP: "5261003187",
	})
	require.NoError(t, err)
	require.NoError(t, uc.SoftDelete(first.ID))

	// NIP reused while the first contractor was deleted.
	_, err = uc.Create(dto.CreateContractorRequest{
		Name: "Nowy dostawca", Type: entity.ContractorTypeSupplier, NIP: "5261003187",
	})
	require.NoError(t, err)

	_, err = uc.Restore(first.ID)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestContractorRestore_NotDeleted(t *testing.T) {
	uc, _ := newContractorUC()
	resp, err := uc.Create(dto.CreateContractorRequest{
		Name: "Budimex SA", Type: entity.ContractorTypeClient,
	})
	require.NoError(t, err)

	_, err = uc.Restore(resp.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "restore only applies to deleted rows")

	_, err = uc.Restore("nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestContractorRestore_EmptyNIPAlwaysAllowed(t *testing.T) {
	uc, _ := newContractorUC()
	first, err := uc.Create(dto.CreateContractorRequest{Name: "Bez NIP", Type: entity.ContractorTypeClient})
	require.NoError(t, err)
	require.NoError(t, uc.SoftDelete(first.ID))

	second, err := uc.Create(dto.CreateContractorRequest{Name: "Też bez NIP", Type: entity.ContractorTypeClient})
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)

	restored, err := uc.Restore(first.ID)
	require.NoError(t, err)
	assert.False(t, restored.Deleted)
}
