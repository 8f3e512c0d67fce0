package service

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/andy/invoicedesk/internal/domain"
	"go.uber.org/zap"
)

var seedCompanies = []string{
	"Acme Corp", "Globex", "Initech", "Umbrella Health", "Stark Industries",
	"Wayne Enterprises", "Hooli", "Vandelay Imports", "Soylent", "Tyrell",
	"Cyberdyne Systems", "Wonka Industries",
}

var seedColors = []string{"primary", "secondary", "success", "warning", "error", "info"}

// Seed creates n demo invoices spread over the last year. The generator is
// deterministic for a given starting count so reseeding is reproducible.
func (s *invoiceService) Seed(ctx context.Context, n int, progress func(done int)) (int, error) {
	if n <= 0 {
		return 0, nil
	}

	existing, err := s.invoiceRepo.Count(ctx)
	if err != nil {
		return 0, err
	}
	rng := rand.New(rand.NewSource(int64(existing) + 1))
	today := domain.Day(s.now())

	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return i, err
		}

		inv := seedInvoice(rng, today)
		if err := s.invoiceRepo.Create(ctx, inv); err != nil {
			return i, fmt.Errorf("failed to seed invoice %d: %w", i+1, err)
		}
		if progress != nil {
			progress(i + 1)
		}
	}

	s.log.Info("seeded invoices", zap.Int("count", n))
	return n, nil
}

func seedInvoice(rng *rand.Rand, today time.Time) *domain.InvoiceRecord {
	name := seedCompanies[rng.Intn(len(seedCompanies))]
	issued := today.AddDate(0, 0, -rng.Intn(365))
	due := issued.AddDate(0, 0, []int{15, 30, 45}[rng.Intn(3)])
	total := math.Round((100+rng.Float64()*9900)*100) / 100

	inv := domain.NewInvoiceRecord(name, companyEmail(name), total, issued, due)
	inv.AvatarColor = seedColors[rng.Intn(len(seedColors))]
	inv.InvoiceStatus = domain.InvoiceStatuses[rng.Intn(len(domain.InvoiceStatuses))]

	switch inv.InvoiceStatus {
	case domain.InvoiceStatusPaid:
		inv.Balance = 0
	case domain.InvoiceStatusPartialPayment:
		inv.Balance = math.Round(total*rng.Float64()*100) / 100
	case domain.InvoiceStatusSent:
		// some sent invoices were settled without the label being updated
		if rng.Intn(5) == 0 {
			inv.Balance = 0
		}
	}
	return inv
}

func companyEmail(name string) string {
	slug := strings.ToLower(strings.Join(strings.Fields(name), ""))
	return "billing@" + slug + ".test"
}
