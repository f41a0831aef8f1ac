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

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

var invoiceCols = []string{
	"id", "number", "type", "status", "contractor_id", "contractor_name",
	"COALESCE(order_id, '') AS order_id", "issue_date", "due_date", "net_total",
	"vat_total", "gross_total", "COALESCE(related_id, '') AS related_id",
	"advance_amount", "file_path", "external_ref", "deleted",
	"COALESCE(created_by, '') AS created_by", "created_at", "updated_at",
}

var invoiceSortable = map[string]bool{
	"number": true, "status": true, "issue_date": true, "due_date": true,
	"gross_total": true, "created_at": true,
}

// InvoiceRepo implements InvoiceRepository on PostgreSQL.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository builds the adapter. Pass pool or tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persists an invoice header.
func (r *InvoiceRepo) Create(inv *entity.Invoice) error {
	query := `
		INSERT INTO invoices (id, number, type, status, contractor_id, contractor_name, order_id, issue_date, due_date, net_total, vat_total, gross_total, related_id, advance_amount, file_path, external_ref, deleted, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err := r.q.Exec(context.Background(), query,
		inv.ID, inv.Number, inv.Type, inv.Status, inv.ContractorID,
		inv.ContractorName, nullable(inv.OrderID), inv.IssueDate, inv.DueDate,
		inv.NetTotal, inv.VATTotal, inv.GrossTotal, nullable(inv.RelatedID),
		inv.AdvanceAmount, inv.FilePath, inv.ExternalRef, inv.Deleted,
		nullable(inv.CreatedBy), inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// GetByID fetches an invoice header.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	query := `
		SELECT id, number, type, status, contractor_id, contractor_name, COALESCE(order_id, ''), issue_date, due_date, net_total, vat_total, gross_total, COALESCE(related_id, ''), advance_amount, file_path, external_ref, deleted, COALESCE(created_by, ''), created_at, updated_at
		FROM invoices WHERE id = $1`
	var inv entity.Invoice
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&inv.ID, &inv.Number, &inv.Type, &inv.Status, &inv.ContractorID,
		&inv.ContractorName, &inv.OrderID, &inv.IssueDate, &inv.DueDate,
		&inv.NetTotal, &inv.VATTotal, &inv.GrossTotal, &inv.RelatedID,
		&inv.AdvanceAmount, &inv.FilePath, &inv.ExternalRef, &inv.Deleted,
		&inv.CreatedBy, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return &inv, nil
}

// Update rewrites the mutable header fields.
func (r *InvoiceRepo) Update(inv *entity.Invoice) error {
	query := `
		UPDATE invoices SET status = $2, net_total = $3, vat_total = $4, gross_total = $5, file_path = $6, external_ref = $7, updated_at = $8
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		inv.ID, inv.Status, inv.NetTotal, inv.VATTotal, inv.GrossTotal,
		inv.FilePath, inv.ExternalRef, inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List returns invoices matching the filter.
func (r *InvoiceRepo) List(filter repository.ListFilter) ([]*entity.Invoice, error) {
	q, err := listSelect("invoices", invoiceCols, filter, []string{"number", "contractor_name"}, invoiceSortable, "issue_date DESC")
	if err != nil {
		return nil, err
	}
	if filter.Type != "" {
		q = q.Where(squirrel.Eq{"type": filter.Type})
	}
	if filter.Status != "" {
		q = q.Where(squirrel.Eq{"status": filter.Status})
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list invoices: %w", err)
	}
	var list []*entity.Invoice
	if err := pgxscan.Select(context.Background(), r.q, &list, sql, args...); err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return list, nil
}

// SetDeleted flips the soft-delete flag.
func (r *InvoiceRepo) SetDeleted(id string, deleted bool) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE invoices SET deleted = $2, updated_at = now() WHERE id = $1`,
		id, deleted,
	)
	if err != nil {
		return fmt.Errorf("set invoice deleted: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
