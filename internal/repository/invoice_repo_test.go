package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/andy/invoicedesk/internal/db"
	"github.com/andy/invoicedesk/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *InvoiceRepo {
	t.Helper()
	database, err := db.OpenAndMigrate(filepath.Join(t.TempDir(), "test.db"), "test-key")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return NewInvoiceRepo(database)
}

func date(s string) time.Time {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func seedInvoice(t *testing.T, r *InvoiceRepo, name, email, issued string, status domain.InvoiceStatus, balance float64) *domain.InvoiceRecord {
	t.Helper()
	inv := domain.NewInvoiceRecord(name, email, 500, date(issued), date(issued).AddDate(0, 0, 30))
	inv.InvoiceStatus = status
	inv.Balance = balance
	require.NoError(t, r.Create(context.Background(), inv))
	return inv
}

func listIDs(t *testing.T, r *InvoiceRepo, c domain.Criteria) []int64 {
	t.Helper()
	got, err := r.List(context.Background(), c)
	require.NoError(t, err)
	out := make([]int64, len(got))
	for i, inv := range got {
		out[i] = inv.ID
	}
	return out
}

func TestInvoiceRepo_CreateAndGet(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	inv := seedInvoice(t, r, "Acme Corp", "billing@acme.test", "2024-03-05", domain.InvoiceStatusSent, 120.5)
	require.NotZero(t, inv.ID)

	got, err := r.GetByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", got.Name)
	assert.Equal(t, "billing@acme.test", got.CompanyEmail)
	assert.Equal(t, 120.5, got.Balance)
	assert.Equal(t, date("2024-03-05"), got.IssuedDate)
	assert.Equal(t, date("2024-04-04"), got.DueDate)
	assert.Equal(t, domain.InvoiceStatusSent, got.InvoiceStatus)
}

func TestInvoiceRepo_GetMissing(t *testing.T) {
	r := newTestRepo(t)
	_, err := r.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrInvoiceNotFound)
}

func TestInvoiceRepo_CreateRejectsInvalid(t *testing.T) {
	r := newTestRepo(t)
	inv := domain.NewInvoiceRecord("", "x@y.z", 10, date("2024-01-01"), date("2024-01-02"))
	assert.Error(t, r.Create(context.Background(), inv))
}

func TestInvoiceRepo_ListFilters(t *testing.T) {
	r := newTestRepo(t)
	a := seedInvoice(t, r, "Acme Corp", "billing@acme.test", "2024-01-10", domain.InvoiceStatusPaid, 0)
	b := seedInvoice(t, r, "Globex", "ap@globex.test", "2024-02-15", domain.InvoiceStatusSent, 200)
	c := seedInvoice(t, r, "Initech", "finance@initech.test", "2024-03-20", domain.InvoiceStatusPastDue, 500)

	feb := domain.NewDateRange(date("2024-02-01"), date("2024-02-29"))

	tests := []struct {
		name     string
		criteria domain.Criteria
		want     []int64
	}{
		{name: "everything newest first", want: []int64{c.ID, b.ID, a.ID}},
		{name: "status", criteria: domain.Criteria{Status: "paid"}, want: []int64{a.ID}},
		{name: "multi word status", criteria: domain.Criteria{Status: "past due"}, want: []int64{c.ID}},
		{name: "email query", criteria: domain.Criteria{Query: "GLOBEX"}, want: []int64{b.ID}},
		{name: "balance query", criteria: domain.Criteria{Query: "200"}, want: []int64{b.ID}},
		{name: "due date query", criteria: domain.Criteria{Query: "2024-04-19"}, want: []int64{c.ID}},
		{name: "date range", criteria: domain.Criteria{Dates: &feb}, want: []int64{b.ID}},
		{name: "combined no match", criteria: domain.Criteria{Query: "acme", Status: "sent"}, want: []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, listIDs(t, r, tt.criteria))
		})
	}
}

func TestInvoiceRepo_DateRangeIsInclusive(t *testing.T) {
	r := newTestRepo(t)
	a := seedInvoice(t, r, "Acme", "", "2024-05-01", domain.InvoiceStatusDraft, 500)
	b := seedInvoice(t, r, "Beta", "", "2024-05-31", domain.InvoiceStatusDraft, 500)
	seedInvoice(t, r, "Gamma", "", "2024-06-01", domain.InvoiceStatusDraft, 500)

	may := domain.NewDateRange(date("2024-05-31"), date("2024-05-01"))
	assert.Equal(t, []int64{b.ID, a.ID}, listIDs(t, r, domain.Criteria{Dates: &may}))
}

func TestInvoiceRepo_UpdateAndDelete(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	inv := seedInvoice(t, r, "Acme", "a@acme.test", "2024-01-01", domain.InvoiceStatusSent, 100)

	inv.Balance = 0
	inv.InvoiceStatus = domain.InvoiceStatusPaid
	require.NoError(t, r.Update(ctx, inv))

	got, err := r.GetByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.True(t, got.IsPaid())
	assert.Equal(t, domain.InvoiceStatusPaid, got.InvoiceStatus)

	require.NoError(t, r.RecordDownload(ctx, inv.ID, "/tmp/invoice.pdf"))
	require.NoError(t, r.Delete(ctx, inv.ID))
	assert.ErrorIs(t, r.Delete(ctx, inv.ID), ErrInvoiceNotFound)

	missing := inv.Copy()
	missing.ID = 999
	assert.ErrorIs(t, r.Update(ctx, missing), ErrInvoiceNotFound)
}

func TestInvoiceRepo_CountAndDeleteAll(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	for _, name := range []string{"A", "B", "C"} {
		seedInvoice(t, r, name, "", "2024-01-01", domain.InvoiceStatusDraft, 500)
	}

	n, err := r.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	removed, err := r.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)

	n, err = r.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}
