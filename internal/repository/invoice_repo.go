package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/andy/invoicedesk/internal/db"
	"github.com/andy/invoicedesk/internal/domain"
)

const invoiceColumns = `
	id, name, company_email, avatar, avatar_color, total,
	issued_date, due_date, balance, invoice_status, created_at, updated_at
`

// InvoiceRepo is a SQLite implementation of InvoiceRepository
type InvoiceRepo struct {
	db *db.DB
}

// NewInvoiceRepo creates a new InvoiceRepo
func NewInvoiceRepo(database *db.DB) *InvoiceRepo {
	return &InvoiceRepo{db: database}
}

// Create inserts a new invoice into the database
func (r *InvoiceRepo) Create(ctx context.Context, invoice *domain.InvoiceRecord) error {
	if err := invoice.Validate(); err != nil {
		return fmt.Errorf("invalid invoice: %w", err)
	}

	query := `
		INSERT INTO invoices (
			name, company_email, avatar, avatar_color, total,
			issued_date, due_date, balance, invoice_status, created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	now := time.Now()
	if invoice.CreatedAt.IsZero() {
		invoice.CreatedAt = now
	}
	invoice.UpdatedAt = now

	result, err := r.db.ExecContext(ctx, query,
		invoice.Name,
		invoice.CompanyEmail,
		invoice.Avatar,
		invoice.AvatarColor,
		invoice.Total,
		formatDate(invoice.IssuedDate),
		nullDate(invoice.DueDate),
		invoice.Balance,
		string(invoice.InvoiceStatus),
		invoice.CreatedAt.Format(timeLayout),
		invoice.UpdatedAt.Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to create invoice: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get invoice ID: %w", err)
	}

	invoice.ID = id
	return nil
}

// GetByID retrieves an invoice by ID
func (r *InvoiceRepo) GetByID(ctx context.Context, id int64) (*domain.InvoiceRecord, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = ?`

	invoice, err := scanInvoice(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %d", ErrInvoiceNotFound, id)
		}
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}

	return invoice, nil
}

// List retrieves invoices matching the status and issued date filters in SQL.
// The free text query is applied with criteria.Matches so every source
// matches numbers and dates the same way.
func (r *InvoiceRepo) List(ctx context.Context, criteria domain.Criteria) ([]*domain.InvoiceRecord, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE 1=1`
	args := make([]interface{}, 0)

	if criteria.Status != domain.StatusNone {
		query += " AND LOWER(invoice_status) = ?"
		args = append(args, string(criteria.Status))
	}

	if criteria.Dates != nil {
		query += " AND issued_date BETWEEN ? AND ?"
		args = append(args, formatDate(criteria.Dates.Start), formatDate(criteria.Dates.End))
	}

	query += " ORDER BY id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	defer rows.Close()

	invoices := make([]*domain.InvoiceRecord, 0)
	for rows.Next() {
		invoice, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		if criteria.Matches(invoice) {
			invoices = append(invoices, invoice)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoices: %w", err)
	}

	return invoices, nil
}

// Update updates an existing invoice
func (r *InvoiceRepo) Update(ctx context.Context, invoice *domain.InvoiceRecord) error {
	if err := invoice.Validate(); err != nil {
		return fmt.Errorf("invalid invoice: %w", err)
	}

	query := `
		UPDATE invoices
		SET name = ?, company_email = ?, avatar = ?, avatar_color = ?, total = ?,
		    issued_date = ?, due_date = ?, balance = ?, invoice_status = ?, updated_at = ?
		WHERE id = ?
	`

	invoice.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		invoice.Name,
		invoice.CompanyEmail,
		invoice.Avatar,
		invoice.AvatarColor,
		invoice.Total,
		formatDate(invoice.IssuedDate),
		nullDate(invoice.DueDate),
		invoice.Balance,
		string(invoice.InvoiceStatus),
		invoice.UpdatedAt.Format(timeLayout),
		invoice.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update invoice: %w", err)
	}

	return expectOne(result, invoice.ID)
}

// Delete removes an invoice and its download history
func (r *InvoiceRepo) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM invoice_downloads WHERE invoice_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete invoice downloads: %w", err)
	}

	result, err := tx.ExecContext(ctx, "DELETE FROM invoices WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete invoice: %w", err)
	}
	if err := expectOne(result, id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete: %w", err)
	}
	return nil
}

// DeleteAll removes every invoice
func (r *InvoiceRepo) DeleteAll(ctx context.Context) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM invoice_downloads"); err != nil {
		return 0, fmt.Errorf("failed to delete invoice downloads: %w", err)
	}
	result, err := tx.ExecContext(ctx, "DELETE FROM invoices")
	if err != nil {
		return 0, fmt.Errorf("failed to delete invoices: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit delete: %w", err)
	}
	return n, nil
}

// Count returns the number of stored invoices
func (r *InvoiceRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM invoices").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count invoices: %w", err)
	}
	return n, nil
}

// RecordDownload remembers that a PDF was written for an invoice
func (r *InvoiceRepo) RecordDownload(ctx context.Context, invoiceID int64, path string) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO invoice_downloads (invoice_id, path, downloaded_at) VALUES (?, ?, ?)",
		invoiceID, path, formatTime(),
	)
	if err != nil {
		return fmt.Errorf("failed to record download: %w", err)
	}
	return nil
}

func expectOne(result sql.Result, id int64) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %d", ErrInvoiceNotFound, id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanInvoice reads one row selected with invoiceColumns
func scanInvoice(row rowScanner) (*domain.InvoiceRecord, error) {
	invoice := &domain.InvoiceRecord{}
	var issued, status string
	var due, createdAt, updatedAt sql.NullString

	err := row.Scan(
		&invoice.ID,
		&invoice.Name,
		&invoice.CompanyEmail,
		&invoice.Avatar,
		&invoice.AvatarColor,
		&invoice.Total,
		&issued,
		&due,
		&invoice.Balance,
		&status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if invoice.IssuedDate, err = parseDate(issued); err != nil {
		return nil, fmt.Errorf("failed to parse issued_date: %w", err)
	}

	if due.Valid {
		if invoice.DueDate, err = parseDate(due.String); err != nil {
			return nil, fmt.Errorf("failed to parse due_date: %w", err)
		}
	}

	invoice.InvoiceStatus = domain.InvoiceStatus(status)

	// rows inserted by hand get SQLite's datetime('now') format; keep them zero
	if t, err := parseTime(createdAt.String); err == nil {
		invoice.CreatedAt = t
	}
	if t, err := parseTime(updatedAt.String); err == nil {
		invoice.UpdatedAt = t
	}

	return invoice, nil
}
