package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/magazyn-erp/magazyn-api/internal/application/dto"
	"github.com/magazyn-erp/magazyn-api/internal/domain"
	"github.com/magazyn-erp/magazyn-api/internal/domain/entity"
	"github.com/magazyn-erp/magazyn-api/internal/domain/repository"
)

// ContractorUseCase manages business partners. The tax id (NIP) is unique
// among non-deleted contractors.
type ContractorUseCase struct {
	repo  repository.ContractorRepository
	cache Cache
}

// NewContractorUseCase builds the use case.
func NewContractorUseCase(repo repository.ContractorRepository, cache Cache) *ContractorUseCase {
	if cache == nil {
		cache = NopCache()
	}
	return &ContractorUseCase{repo: repo, cache: cache}
}

var contractorTypes = map[string]bool{
	entity.ContractorTypeSupplier: true,
	entity.ContractorTypeClient:   true,
	entity.ContractorTypeBoth:     true,
}

// Create adds a contractor.
func (uc *ContractorUseCase) Create(in dto.CreateContractorRequest) (*dto.ContractorResponse, error) {
	if in.Name == "" || !contractorTypes[in.Type] {
		return nil, domain.ErrInvalidInput
	}
	if in.NIP != "" {
		existing, err := uc.repo.GetByNIP(in.NIP)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}
	now := time.Now()
	c := &entity.Contractor{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Type:      in.Type,
		NIP:       in.NIP,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		City:      in.City,
		ZipCode:   in.ZipCode,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(c); err != nil {
		return nil, err
	}
	uc.cache.Purge()
	return toContractorResponse(c), nil
}

// Update patches the given fields.
func (uc *ContractorUseCase) Update(id string, in dto.UpdateContractorRequest) (*dto.ContractorResponse, error) {
	c, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil || c.Deleted {
		return nil, domain.ErrNotFound
	}
	if in.Type != nil && !contractorTypes[*in.Type] {
		return nil, domain.ErrInvalidInput
	}
	if in.NIP != nil && *in.NIP != "" && *in.NIP != c.NIP {
		existing, err := uc.repo.GetByNIP(*in.NIP)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != c.ID {
			return nil, domain.ErrDuplicate
		}
	}

	if in.Name != nil {
		c.Name = *in.Name
	}
	if in.Type != nil {
		c.Type = *in.Type
	}
	if in.NIP != nil {
		c.NIP = *in.NIP
	}
	if in.Email != nil {
		c.Email = *in.Email
	}
	if in.Phone != nil {
		c.Phone = *in.Phone
	}
	if in.Address != nil {
		c.Address = *in.Address
	}
	if in.City != nil {
		c.City = *in.City
	}
	if in.ZipCode != nil {
		c.ZipCode = *in.ZipCode
	}
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(c); err != nil {
		return nil, err
	}
	uc.cache.Purge()
	return toContractorResponse(c), nil
}

// GetByID returns a single contractor, cached.
func (uc *ContractorUseCase) GetByID(id string) (*dto.ContractorResponse, error) {
	key := "contractor:" + id
	if v, ok := uc.cache.Get(key); ok {
		if resp, ok := v.(*dto.ContractorResponse); ok {
			return resp, nil
		}
	}
	c, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	resp := toContractorResponse(c)
	uc.cache.Set(key, resp)
	return resp, nil
}

// List returns non-deleted contractors matching the filter. The Type filter
// selects suppliers or clients, with "both" rows matching either.
func (uc *ContractorUseCase) List(filter repository.ListFilter) (*dto.ContractorListResponse, error) {
	filter.Deleted = false
	return uc.list(filter)
}

// ListDeleted returns soft-deleted contractors, the restore candidates.
func (uc *ContractorUseCase) ListDeleted(filter repository.ListFilter) (*dto.ContractorListResponse, error) {
	filter.Deleted = true
	return uc.list(filter)
}

func (uc *ContractorUseCase) list(filter repository.ListFilter) (*dto.ContractorListResponse, error) {
	key := listCacheKey("contractors", filter)
	if v, ok := uc.cache.Get(key); ok {
		if resp, ok := v.(*dto.ContractorListResponse); ok {
			return resp, nil
		}
	}
	list, err := uc.repo.List(filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ContractorResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toContractorResponse(c))
	}
	resp := &dto.ContractorListResponse{
		Items: out,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset},
	}
	uc.cache.Set(key, resp)
	return resp, nil
}

// SoftDelete marks the contractor deleted, freeing its NIP for reuse.
func (uc *ContractorUseCase) SoftDelete(id string) error {
	c, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if c == nil || c.Deleted {
		return domain.ErrNotFound
	}
	if err := uc.repo.SetDeleted(id, true); err != nil {
		return err
	}
	uc.cache.Purge()
	return nil
}

// Restore brings back a soft-deleted contractor unless its NIP was taken by
// another active contractor in the meantime.
func (uc *ContractorUseCase) Restore(id string) (*dto.ContractorResponse, error) {
	c, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil || !c.Deleted {
		return nil, domain.ErrNotFound
	}
	if c.NIP != "" {
		active, err := uc.repo.GetByNIP(c.NIP)
		if err != nil {
			return nil, err
		}
		if active != nil && active.ID != c.ID {
			return nil, domain.ErrDuplicate
		}
	}
	if err := uc.repo.SetDeleted(id, false); err != nil {
		return nil, err
	}
	c.Deleted = false
	uc.cache.Purge()
	return toContractorResponse(c), nil
}

func toContractorResponse(c *entity.Contractor) *dto.ContractorResponse {
	return &dto.ContractorResponse{
		ID:        c.ID,
		Name:      c.Name,
		Type:      c.Type,
		NIP:       c.NIP,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		City:      c.City,
		ZipCode:   c.ZipCode,
		Deleted:   c.Deleted,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
