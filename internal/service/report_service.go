package service

import (
	"context"
	"time"

	"github.com/andy/invoicedesk/internal/domain"
	"github.com/andy/invoicedesk/internal/repository"
)

// Summary aggregates the invoices matching some criteria
type Summary struct {
	Count       int
	TotalBilled float64
	Outstanding float64 // sum of non-zero balances
	PastDue     float64 // outstanding balance on Past Due invoices
	Collected   float64 // total minus balance
	ByStatus    map[domain.InvoiceStatus]int
}

// ReportService provides aggregations over invoices
type ReportService interface {
	// GetSummary aggregates the invoices matching criteria
	GetSummary(ctx context.Context, criteria domain.Criteria) (*Summary, error)

	// GetBilledByMonth sums invoice totals by issue month for one year
	GetBilledByMonth(ctx context.Context, year int) (map[time.Month]float64, error)
}

type reportService struct {
	invoiceRepo repository.InvoiceRepository
}

// NewReportService creates a new report service
func NewReportService(invoiceRepo repository.InvoiceRepository) ReportService {
	return &reportService{
		invoiceRepo: invoiceRepo,
	}
}

func (s *reportService) GetSummary(ctx context.Context, criteria domain.Criteria) (*Summary, error) {
	invoices, err := s.invoiceRepo.List(ctx, criteria)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		ByStatus: make(map[domain.InvoiceStatus]int),
	}

	for _, invoice := range invoices {
		summary.Count++
		summary.TotalBilled += invoice.Total
		summary.Collected += invoice.Total - invoice.Balance
		summary.ByStatus[invoice.InvoiceStatus]++

		if invoice.IsPaid() {
			continue
		}
		summary.Outstanding += invoice.Balance
		if invoice.InvoiceStatus == domain.InvoiceStatusPastDue {
			summary.PastDue += invoice.Balance
		}
	}

	return summary, nil
}

func (s *reportService) GetBilledByMonth(ctx context.Context, year int) (map[time.Month]float64, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	invoices, err := s.invoiceRepo.List(ctx, domain.Criteria{}.WithDates(&domain.DateRange{Start: start, End: end}))
	if err != nil {
		return nil, err
	}

	billed := make(map[time.Month]float64)

	// Initialize all months to 0
	for m := time.January; m <= time.December; m++ {
		billed[m] = 0
	}

	for _, invoice := range invoices {
		billed[invoice.IssuedDate.Month()] += invoice.Total
	}

	return billed, nil
}
