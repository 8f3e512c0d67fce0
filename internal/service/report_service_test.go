package service

import (
	"context"
	"testing"
	"time"

	"github.com/andy/invoicedesk/internal/domain"
)

func TestGetSummary(t *testing.T) {
	repo := newMockRepo(
		invoice(1, "Acme", domain.InvoiceStatusSent, 100, 100, "2024-01-01", "2024-01-31"),
		invoice(2, "Globex", domain.InvoiceStatusPaid, 50, 0, "2024-02-01", "2024-03-01"),
		invoice(3, "Initech", domain.InvoiceStatusPastDue, 200, 80, "2024-02-10", "2024-03-10"),
		invoice(4, "Hooli", domain.InvoiceStatusSent, 40, 0, "2024-03-01", "2024-03-31"),
	)
	svc := NewReportService(repo)

	s, err := svc.GetSummary(context.Background(), domain.Criteria{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.Count != 4 {
		t.Errorf("Count = %d, want 4", s.Count)
	}
	if s.TotalBilled != 390 {
		t.Errorf("TotalBilled = %v, want 390", s.TotalBilled)
	}
	if s.Outstanding != 180 {
		t.Errorf("Outstanding = %v, want 180", s.Outstanding)
	}
	if s.PastDue != 80 {
		t.Errorf("PastDue = %v, want 80", s.PastDue)
	}
	if s.Collected != 210 {
		t.Errorf("Collected = %v, want 210", s.Collected)
	}
	if s.ByStatus[domain.InvoiceStatusSent] != 2 {
		t.Errorf("ByStatus[Sent] = %d, want 2", s.ByStatus[domain.InvoiceStatusSent])
	}
}

func TestGetSummary_HonorsCriteria(t *testing.T) {
	repo := newMockRepo(
		invoice(1, "Acme", domain.InvoiceStatusSent, 100, 100, "2024-01-01", "2024-01-31"),
		invoice(2, "Globex", domain.InvoiceStatusPaid, 50, 0, "2024-02-01", "2024-03-01"),
	)
	svc := NewReportService(repo)

	s, err := svc.GetSummary(context.Background(), domain.Criteria{Query: "globex"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Count != 1 || s.TotalBilled != 50 {
		t.Fatalf("expected only Globex, got %+v", s)
	}
}

func TestGetBilledByMonth(t *testing.T) {
	repo := newMockRepo(
		invoice(1, "Acme", domain.InvoiceStatusSent, 100, 100, "2024-01-05", "2024-01-31"),
		invoice(2, "Globex", domain.InvoiceStatusPaid, 50, 0, "2024-01-20", "2024-03-01"),
		invoice(3, "Initech", domain.InvoiceStatusDraft, 70, 70, "2024-03-01", "2024-03-31"),
		invoice(4, "Hooli", domain.InvoiceStatusSent, 999, 999, "2023-12-31", "2024-01-31"),
	)
	svc := NewReportService(repo)

	billed, err := svc.GetBilledByMonth(context.Background(), 2024)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(billed) != 12 {
		t.Fatalf("expected all 12 months, got %d", len(billed))
	}
	if billed[time.January] != 150 {
		t.Errorf("January = %v, want 150", billed[time.January])
	}
	if billed[time.February] != 0 {
		t.Errorf("February = %v, want 0", billed[time.February])
	}
	if billed[time.March] != 70 {
		t.Errorf("March = %v, want 70", billed[time.March])
	}
}
