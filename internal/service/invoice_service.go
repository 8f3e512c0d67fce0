package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/andy/invoicedesk/internal/domain"
	"github.com/andy/invoicedesk/internal/logging"
	"github.com/andy/invoicedesk/internal/repository"
	"go.uber.org/zap"
)

var (
	ErrInvalidPayment = errors.New("payment must be positive and not exceed the balance")
	ErrAlreadyPaid    = errors.New("invoice is already paid")
)

// InvoiceService is the data source and row-action backend of the invoice list
type InvoiceService interface {
	// Fetch returns the invoices matching criteria. It satisfies listview.DataSource.
	Fetch(ctx context.Context, criteria domain.Criteria) ([]domain.InvoiceRecord, error)

	// GetInvoice retrieves an invoice by ID
	GetInvoice(ctx context.Context, id int64) (*domain.InvoiceRecord, error)

	// Update saves an edited invoice
	Update(ctx context.Context, invoice *domain.InvoiceRecord) error

	// Delete removes an invoice
	Delete(ctx context.Context, id int64) error

	// DeleteAll removes every invoice
	DeleteAll(ctx context.Context) (int64, error)

	// Duplicate copies an invoice into a new draft issued today
	Duplicate(ctx context.Context, id int64) (*domain.InvoiceRecord, error)

	// RecordPayment lowers the balance and moves the status to Partial Payment or Paid
	RecordPayment(ctx context.Context, id int64, amount float64) (*domain.InvoiceRecord, error)

	// CheckOverdue marks unpaid sent invoices whose due date has passed as Past Due
	CheckOverdue(ctx context.Context, now time.Time) (int, error)

	// Download renders the invoice as a PDF and returns the file path
	Download(ctx context.Context, id int64) (string, error)

	// Seed creates n demo invoices, calling progress after each one
	Seed(ctx context.Context, n int, progress func(done int)) (int, error)

	// Count returns the number of stored invoices
	Count(ctx context.Context) (int, error)
}

type invoiceService struct {
	invoiceRepo repository.InvoiceRepository
	exportDir   string
	log         *zap.Logger
	now         func() time.Time
}

// NewInvoiceService creates a new invoice service. PDFs are written to exportDir.
func NewInvoiceService(invoiceRepo repository.InvoiceRepository, exportDir string, log *zap.Logger) InvoiceService {
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		exportDir:   exportDir,
		log:         logging.OrNop(log).Named("invoices"),
		now:         time.Now,
	}
}

func (s *invoiceService) Fetch(ctx context.Context, criteria domain.Criteria) ([]domain.InvoiceRecord, error) {
	start := s.now()
	invoices, err := s.invoiceRepo.List(ctx, criteria)
	if err != nil {
		return nil, err
	}

	out := make([]domain.InvoiceRecord, len(invoices))
	for i, inv := range invoices {
		out[i] = *inv
	}

	s.log.Debug("fetched invoices",
		zap.String("query", criteria.Query),
		zap.Stringer("status", criteria.Status),
		zap.Bool("dated", criteria.Dates != nil),
		zap.Int("rows", len(out)),
		zap.Duration("took", s.now().Sub(start)),
	)
	return out, nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, id int64) (*domain.InvoiceRecord, error) {
	return s.invoiceRepo.GetByID(ctx, id)
}

func (s *invoiceService) Update(ctx context.Context, invoice *domain.InvoiceRecord) error {
	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return err
	}
	s.log.Info("invoice updated", zap.Int64("id", invoice.ID))
	return nil
}

func (s *invoiceService) Delete(ctx context.Context, id int64) error {
	if err := s.invoiceRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("invoice deleted", zap.Int64("id", id))
	return nil
}

func (s *invoiceService) DeleteAll(ctx context.Context) (int64, error) {
	n, err := s.invoiceRepo.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}
	s.log.Warn("all invoices deleted", zap.Int64("count", n))
	return n, nil
}

func (s *invoiceService) Duplicate(ctx context.Context, id int64) (*domain.InvoiceRecord, error) {
	orig, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	issued := domain.Day(s.now())
	due := time.Time{}
	if !orig.DueDate.IsZero() {
		due = issued.Add(orig.DueDate.Sub(orig.IssuedDate))
	}

	dup := domain.NewInvoiceRecord(orig.Name, orig.CompanyEmail, orig.Total, issued, due)
	dup.Avatar = orig.Avatar
	dup.AvatarColor = orig.AvatarColor

	if err := s.invoiceRepo.Create(ctx, dup); err != nil {
		return nil, fmt.Errorf("failed to duplicate invoice %d: %w", id, err)
	}
	s.log.Info("invoice duplicated", zap.Int64("from", id), zap.Int64("id", dup.ID))
	return dup, nil
}

func (s *invoiceService) RecordPayment(ctx context.Context, id int64, amount float64) (*domain.InvoiceRecord, error) {
	inv, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv.IsPaid() {
		return nil, ErrAlreadyPaid
	}
	paid, owed := domain.Cents(amount), domain.Cents(inv.Balance)
	if paid <= 0 || paid > owed {
		return nil, fmt.Errorf("%w: %.2f of %.2f", ErrInvalidPayment, amount, inv.Balance)
	}

	inv.Balance = domain.FromCents(owed - paid)
	if inv.IsPaid() {
		inv.InvoiceStatus = domain.InvoiceStatusPaid
	} else {
		inv.InvoiceStatus = domain.InvoiceStatusPartialPayment
	}

	if err := s.invoiceRepo.Update(ctx, inv); err != nil {
		return nil, err
	}
	s.log.Info("payment recorded", zap.Int64("id", id), zap.Float64("amount", amount), zap.Float64("balance", inv.Balance))
	return inv, nil
}

func (s *invoiceService) CheckOverdue(ctx context.Context, now time.Time) (int, error) {
	invoices, err := s.invoiceRepo.List(ctx, domain.Criteria{})
	if err != nil {
		return 0, err
	}

	today := domain.Day(now)
	marked := 0
	for _, inv := range invoices {
		if !overdueCandidate(inv, today) {
			continue
		}
		inv.InvoiceStatus = domain.InvoiceStatusPastDue
		if err := s.invoiceRepo.Update(ctx, inv); err != nil {
			return marked, fmt.Errorf("failed to mark invoice %d past due: %w", inv.ID, err)
		}
		marked++
	}

	if marked > 0 {
		s.log.Info("invoices marked past due", zap.Int("count", marked))
	}
	return marked, nil
}

func overdueCandidate(inv *domain.InvoiceRecord, today time.Time) bool {
	if inv.IsPaid() || inv.DueDate.IsZero() || !inv.DueDate.Before(today) {
		return false
	}
	switch inv.InvoiceStatus {
	case domain.InvoiceStatusSent, domain.InvoiceStatusPartialPayment, domain.InvoiceStatusDownloaded:
		return true
	default:
		return false
	}
}

func (s *invoiceService) Count(ctx context.Context) (int, error) {
	return s.invoiceRepo.Count(ctx)
}
