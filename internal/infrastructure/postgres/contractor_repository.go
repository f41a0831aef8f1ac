package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"github.com/magazyn-erp/magazyn-api/internal/domain"
	"github.com/magazyn-erp/magazyn-api/internal/domain/entity"
	"github.com/magazyn-erp/magazyn-api/internal/domain/repository"
)

var _ repository.ContractorRepository = (*ContractorRepo)(nil)

var contractorCols = []string{
	"id", "name", "type", "nip", "email", "phone", "address", "city", "zip_code",
	"deleted", "created_at", "updated_at",
}

var contractorSortable = map[string]bool{
	"name": true, "nip": true, "city": true, "created_at": true, "updated_at": true,
}

// ContractorRepo implements ContractorRepository on PostgreSQL.
type ContractorRepo struct {
	q Querier
}

// NewContractorRepository builds the adapter. Pass pool or tx (Querier).
func NewContractorRepository(q Querier) *ContractorRepo {
	return &ContractorRepo{q: q}
}

// Create persists a new contractor.
func (r *ContractorRepo) Create(c *entity.Contractor) error {
	query := `
		INSERT INTO contractors (id, name, type, nip, email, phone, address, city, zip_code, deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.Name, c.Type, c.NIP, c.Email, c.Phone, c.Address, c.City,
		c.ZipCode, c.Deleted, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert contractor: %w", err)
	}
	return nil
}

// GetByID fetches a contractor by ID, deleted or not.
func (r *ContractorRepo) GetByID(id string) (*entity.Contractor, error) {
	return r.getOne(`WHERE id = $1`, id)
}

// GetByNIP fetches a non-deleted contractor by tax id.
func (r *ContractorRepo) GetByNIP(nip string) (*entity.Contractor, error) {
	return r.getOne(`WHERE nip = $1 AND deleted = false`, nip)
}

func (r *ContractorRepo) getOne(where string, arg any) (*entity.Contractor, error) {
	query := `
		SELECT id, name, type, nip, email, phone, address, city, zip_code, deleted, created_at, updated_at
		FROM contractors ` + where
	var c entity.Contractor
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&c.ID, &c.Name, &c.Type, &c.NIP, &c.Email, &c.Phone, &c.Address,
		&c.City, &c.ZipCode, &c.Deleted, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get contractor: %w", err)
	}
	return &c, nil
}

// Update rewrites the contractor fields.
func (r *ContractorRepo) Update(c *entity.Contractor) error {
	query := `
		UPDATE contractors SET name = $2, type = $3, nip = $4, email = $5, phone = $6, address = $7, city = $8, zip_code = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.Name, c.Type, c.NIP, c.Email, c.Phone, c.Address, c.City,
		c.ZipCode, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update contractor: %w", err)
	}
	return nil
}

// List returns contractors matching the filter. Type "supplier" and "client"
// also match "both".
func (r *ContractorRepo) List(filter repository.ListFilter) ([]*entity.Contractor, error) {
	q, err := listSelect("contractors", contractorCols, filter, []string{"name", "nip", "city"}, contractorSortable, "name ASC")
	if err != nil {
		return nil, err
	}
	switch filter.Type {
	case "":
	case entity.ContractorTypeSupplier, entity.ContractorTypeClient:
		q = q.Where(squirrel.Eq{"type": []string{filter.Type, entity.ContractorTypeBoth}})
	default:
		q = q.Where(squirrel.Eq{"type": filter.Type})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list contractors: %w", err)
	}
	var list []*entity.Contractor
	if err := pgxscan.Select(context.Background(), r.q, &list, sql, args...); err != nil {
		return nil, fmt.Errorf("list contractors: %w", err)
	}
	return list, nil
}

// SetDeleted flips the soft-delete flag.
func (r *ContractorRepo) SetDeleted(id string, deleted bool) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE contractors SET deleted = $2, updated_at = now() WHERE id = $1`,
		id, deleted,
	)
	if err != nil {
		return fmt.Errorf("set contractor deleted: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
