package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"github.com/magazyn-erp/magazyn-api/internal/domain"
	"github.com/magazyn-erp/magazyn-api/internal/domain/entity"
	"github.com/magazyn-erp/magazyn-api/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

var locationCols = []string{
	"id", "code", "name", "address", "deleted", "created_at", "updated_at",
}

var locationSortable = map[string]bool{
	"code": true, "name": true, "created_at": true,
}

// LocationRepo implements LocationRepository on PostgreSQL.
type LocationRepo struct {
	q Querier
}

// NewLocationRepository builds the adapter. Pass pool or tx (Querier).
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

// Create persists a new location.
func (r *LocationRepo) Create(l *entity.Location) error {
	query := `
		INSERT INTO locations (id, code, name, address, deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		l.ID, l.Code, l.Name, l.Address, l.Deleted, l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert location: %w", err)
	}
	return nil
}

// GetByID fetches a location by ID.
func (r *LocationRepo) GetByID(id string) (*entity.Location, error) {
	return r.getOne(`WHERE id = $1`, id)
}

// GetByCode fetches a non-deleted location by its unique code.
func (r *LocationRepo) GetByCode(code string) (*entity.Location, error) {
	return r.getOne(`WHERE code = $1 AND deleted = false`, code)
}

func (r *LocationRepo) getOne(where string, arg any) (*entity.Location, error) {
	query := `
		SELECT id, code, name, address, deleted, created_at, updated_at
		FROM locations ` + where
	var l entity.Location
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&l.ID, &l.Code, &l.Name, &l.Address, &l.Deleted, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return &l, nil
}

// Update rewrites the location fields.
func (r *LocationRepo) Update(l *entity.Location) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE locations SET name = $2, address = $3, updated_at = $4 WHERE id = $1`,
		l.ID, l.Name, l.Address, l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update location: %w", err)
	}
	return nil
}

// List returns locations matching the filter.
func (r *LocationRepo) List(filter repository.ListFilter) ([]*entity.Location, error) {
	q, err := listSelect("locations", locationCols, filter, []string{"name", "code"}, locationSortable, "code ASC")
	if err != nil {
		return nil, err
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list locations: %w", err)
	}
	var list []*entity.Location
	if err := pgxscan.Select(context.Background(), r.q, &list, sql, args...); err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	return list, nil
}

// SetDeleted flips the soft-delete flag.
func (r *LocationRepo) SetDeleted(id string, deleted bool) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE locations SET deleted = $2, updated_at = now() WHERE id = $1`,
		id, deleted,
	)
	if err != nil {
		return fmt.Errorf("set location deleted: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
