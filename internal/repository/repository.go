package repository

import (
	"context"
	"errors"

	"github.com/andy/invoicedesk/internal/domain"
)

// ErrInvoiceNotFound is returned when no invoice has the requested id
var ErrInvoiceNotFound = errors.New("invoice not found")

// InvoiceRepository manages invoice persistence
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *domain.InvoiceRecord) error
	GetByID(ctx context.Context, id int64) (*domain.InvoiceRecord, error)
	// List returns the invoices matching criteria, newest id first
	List(ctx context.Context, criteria domain.Criteria) ([]*domain.InvoiceRecord, error)
	Update(ctx context.Context, invoice *domain.InvoiceRecord) error
	Delete(ctx context.Context, id int64) error
	// DeleteAll wipes every invoice and returns how many were removed
	DeleteAll(ctx context.Context) (int64, error)
	Count(ctx context.Context) (int, error)
	RecordDownload(ctx context.Context, invoiceID int64, path string) error
}
