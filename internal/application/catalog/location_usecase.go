package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/magazyn-erp/magazyn-api/internal/application/dto"
	"github.com/magazyn-erp/magazyn-api/internal/domain"
	"github.com/magazyn-erp/magazyn-api/internal/domain/entity"
	"github.com/magazyn-erp/magazyn-api/internal/domain/repository"
)

// LocationUseCase manages warehouse locations.
type LocationUseCase struct {
	repo  repository.LocationRepository
	cache Cache
}

// NewLocationUseCase builds the use case.
func NewLocationUseCase(repo repository.LocationRepository, cache Cache) *LocationUseCase {
	if cache == nil {
		cache = NopCache()
	}
	return &LocationUseCase{repo: repo, cache: cache}
}

// Create adds a location with a unique code.
func (uc *LocationUseCase) Create(in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	if in.Code == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByCode(in.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	l := &entity.Location{
		ID:        uuid.New().String(),
		Code:      in.Code,
		Name:      in.Name,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(l); err != nil {
		return nil, err
	}
	uc.cache.Purge()
	return toLocationResponse(l), nil
}

// Update patches the given fields.
func (uc *LocationUseCase) Update(id string, in dto.UpdateLocationRequest) (*dto.LocationResponse, error) {
	l, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if l == nil || l.Deleted {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		l.Name = *in.Name
	}
	if in.Address != nil {
		l.Address = *in.Address
	}
	l.UpdatedAt = time.Now()
	if err := uc.repo.Update(l); err != nil {
		return nil, err
	}
	uc.cache.Purge()
	return toLocationResponse(l), nil
}

// GetByID returns a single location, cached.
func (uc *LocationUseCase) GetByID(id string) (*dto.LocationResponse, error) {
	key := "location:" + id
	if v, ok := uc.cache.Get(key); ok {
		if resp, ok := v.(*dto.LocationResponse); ok {
			return resp, nil
		}
	}
	l, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, domain.ErrNotFound
	}
	resp := toLocationResponse(l)
	uc.cache.Set(key, resp)
	return resp, nil
}

// List returns non-deleted locations.
func (uc *LocationUseCase) List(filter repository.ListFilter) (*dto.LocationListResponse, error) {
	filter.Deleted = false
	return uc.list(filter)
}

// ListDeleted returns soft-deleted locations, the restore candidates.
func (uc *LocationUseCase) ListDeleted(filter repository.ListFilter) (*dto.LocationListResponse, error) {
	filter.Deleted = true
	return uc.list(filter)
}

func (uc *LocationUseCase) list(filter repository.ListFilter) (*dto.LocationListResponse, error) {
	key := listCacheKey("locations", filter)
	if v, ok := uc.cache.Get(key); ok {
		if resp, ok := v.(*dto.LocationListResponse); ok {
			return resp, nil
		}
	}
	list, err := uc.repo.List(filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LocationResponse, 0, len(list))
	for _, l := range list {
		out = append(out, *toLocationResponse(l))
	}
	resp := &dto.LocationListResponse{
		Items: out,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset},
	}
	uc.cache.Set(key, resp)
	return resp, nil
}

// SoftDelete marks the location deleted.
func (uc *LocationUseCase) SoftDelete(id string) error {
	l, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if l == nil || l.Deleted {
		return domain.ErrNotFound
	}
	if err := uc.repo.SetDeleted(id, true); err != nil {
		return err
	}
	uc.cache.Purge()
	return nil
}

// Restore brings back a soft-deleted location unless its code was taken by
// another active location in the meantime.
func (uc *LocationUseCase) Restore(id string) (*dto.LocationResponse, error) {
	l, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if l == nil || !l.Deleted {
		return nil, domain.ErrNotFound
	}
	active, err := uc.repo.GetByCode(l.Code)
	if err != nil {
		return nil, err
	}
	if active != nil && active.ID != l.ID {
		return nil, domain.ErrDuplicate
	}
	if err := uc.repo.SetDeleted(id, false); err != nil {
		return nil, err
	}
	l.Deleted = false
	uc.cache.Purge()
	return toLocationResponse(l), nil
}

func toLocationResponse(l *entity.Location) *dto.LocationResponse {
	return &dto.LocationResponse{
		ID:        l.ID,
		Code:      l.Code,
		Name:      l.Name,
		Address:   l.Address,
		Deleted:   l.Deleted,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}
