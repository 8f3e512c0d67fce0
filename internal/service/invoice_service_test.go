package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/andy/invoicedesk/internal/domain"
	"github.com/andy/invoicedesk/internal/repository"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// mock implementation
type mockInvoiceRepo struct {
	invoices  map[int64]*domain.InvoiceRecord
	nextID    int64
	downloads map[int64][]string
	listErr   error
	lastList  domain.Criteria
}

func newMockRepo(invs ...*domain.InvoiceRecord) *mockInvoiceRepo {
	m := &mockInvoiceRepo{
		invoices:  make(map[int64]*domain.InvoiceRecord),
		downloads: make(map[int64][]string),
		nextID:    100,
	}
	for _, inv := range invs {
		m.invoices[inv.ID] = inv
	}
	return m
}

func (m *mockInvoiceRepo) Create(ctx context.Context, invoice *domain.InvoiceRecord) error {
	if err := invoice.Validate(); err != nil {
		return err
	}
	m.nextID++
	invoice.ID = m.nextID
	m.invoices[invoice.ID] = invoice.Copy()
	return nil
}
func (m *mockInvoiceRepo) GetByID(ctx context.Context, id int64) (*domain.InvoiceRecord, error) {
	if inv, ok := m.invoices[id]; ok {
		return inv.Copy(), nil
	}
	return nil, fmt.Errorf("%w: %d", repository.ErrInvoiceNotFound, id)
}
func (m *mockInvoiceRepo) List(ctx context.Context, criteria domain.Criteria) ([]*domain.InvoiceRecord, error) {
	m.lastList = criteria
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]*domain.InvoiceRecord, 0)
	for _, inv := range m.invoices {
		if criteria.Matches(inv) {
			out = append(out, inv.Copy())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}
func (m *mockInvoiceRepo) Update(ctx context.Context, invoice *domain.InvoiceRecord) error {
	if _, ok := m.invoices[invoice.ID]; !ok {
		return repository.ErrInvoiceNotFound
	}
	m.invoices[invoice.ID] = invoice.Copy()
	return nil
}
func (m *mockInvoiceRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.invoices[id]; !ok {
		return repository.ErrInvoiceNotFound
	}
	delete(m.invoices, id)
	return nil
}
func (m *mockInvoiceRepo) DeleteAll(ctx context.Context) (int64, error) {
	n := int64(len(m.invoices))
	m.invoices = make(map[int64]*domain.InvoiceRecord)
	return n, nil
}
func (m *mockInvoiceRepo) Count(ctx context.Context) (int, error) { return len(m.invoices), nil }
func (m *mockInvoiceRepo) RecordDownload(ctx context.Context, invoiceID int64, path string) error {
	m.downloads[invoiceID] = append(m.downloads[invoiceID], path)
	return nil
}

var fixedNow = time.Date(2024, 6, 15, 9, 30, 0, 0, time.UTC)

func newTestService(repo *mockInvoiceRepo, exportDir string, log *zap.Logger) *invoiceService {
	svc := NewInvoiceService(repo, exportDir, log).(*invoiceService)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func invoice(id int64, name string, status domain.InvoiceStatus, total, balance float64, issued, due string) *domain.InvoiceRecord {
	parse := func(s string) time.Time {
		t, _ := time.Parse(domain.DateLayout, s)
		return t
	}
	inv := domain.NewInvoiceRecord(name, strings.ToLower(name)+"@example.test", total, parse(issued), parse(due))
	inv.ID = id
	inv.InvoiceStatus = status
	inv.Balance = balance
	return inv
}

func TestFetch_ReturnsValueCopiesInRepoOrder(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepo(
		invoice(1, "Acme", domain.InvoiceStatusSent, 100, 100, "2024-01-01", "2024-01-31"),
		invoice(2, "Globex", domain.InvoiceStatusPaid, 50, 0, "2024-02-01", "2024-03-01"),
	)
	svc := newTestService(repo, t.TempDir(), nil)

	got, err := svc.Fetch(ctx, domain.Criteria{Status: "paid"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("expected only invoice 2, got %+v", got)
	}
	if repo.lastList.Status != "paid" {
		t.Fatalf("criteria not passed through: %+v", repo.lastList)
	}

	got[0].Name = "mutated"
	if repo.invoices[2].Name != "Globex" {
		t.Fatalf("fetch result must not alias repository data")
	}
}

func TestFetch_PropagatesErrors(t *testing.T) {
	repo := newMockRepo()
	repo.listErr = errors.New("database is locked")
	svc := newTestService(repo, t.TempDir(), nil)

	if _, err := svc.Fetch(context.Background(), domain.Criteria{}); !errors.Is(err, repo.listErr) {
		t.Fatalf("expected list error, got %v", err)
	}
}

func TestDuplicate_CreatesDraftIssuedToday(t *testing.T) {
	ctx := context.Background()
	orig := invoice(7, "Acme", domain.InvoiceStatusPaid, 300, 0, "2024-01-01", "2024-01-31")
	orig.AvatarColor = "info"
	repo := newMockRepo(orig)
	svc := newTestService(repo, t.TempDir(), nil)

	dup, err := svc.Duplicate(ctx, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dup.ID == 7 || dup.ID == 0 {
		t.Fatalf("expected a new id, got %d", dup.ID)
	}
	if dup.InvoiceStatus != domain.InvoiceStatusDraft || dup.Balance != 300 {
		t.Fatalf("expected unpaid draft, got %s balance %g", dup.InvoiceStatus, dup.Balance)
	}
	if got := dup.IssuedDate.Format(domain.DateLayout); got != "2024-06-15" {
		t.Fatalf("expected issued today, got %s", got)
	}
	if got := dup.DueDate.Format(domain.DateLayout); got != "2024-07-15" {
		t.Fatalf("expected the same 30 day term, got %s", got)
	}
	if dup.AvatarColor != "info" {
		t.Fatalf("expected avatar color to be copied")
	}
	if _, ok := repo.invoices[7]; !ok {
		t.Fatalf("original must be kept")
	}
}

func TestDuplicate_Missing(t *testing.T) {
	svc := newTestService(newMockRepo(), t.TempDir(), nil)
	if _, err := svc.Duplicate(context.Background(), 1); !errors.Is(err, repository.ErrInvoiceNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRecordPayment(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepo(invoice(1, "Acme", domain.InvoiceStatusSent, 100, 100, "2024-01-01", "2024-01-31"))
	svc := newTestService(repo, t.TempDir(), nil)

	inv, err := svc.RecordPayment(ctx, 1, 40)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inv.InvoiceStatus != domain.InvoiceStatusPartialPayment || inv.Balance != 60 {
		t.Fatalf("expected partial payment with 60 left, got %s %g", inv.InvoiceStatus, inv.Balance)
	}

	if _, err := svc.RecordPayment(ctx, 1, 61); !errors.Is(err, ErrInvalidPayment) {
		t.Fatalf("expected ErrInvalidPayment, got %v", err)
	}

	inv, err = svc.RecordPayment(ctx, 1, 60)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !inv.IsPaid() || inv.InvoiceStatus != domain.InvoiceStatusPaid {
		t.Fatalf("expected paid, got %s %g", inv.InvoiceStatus, inv.Balance)
	}

	if _, err := svc.RecordPayment(ctx, 1, 1); !errors.Is(err, ErrAlreadyPaid) {
		t.Fatalf("expected ErrAlreadyPaid, got %v", err)
	}
}

func TestRecordPayment_SettlesInCents(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepo(invoice(1, "Acme", domain.InvoiceStatusSent, 0.3, 0.3, "2024-01-01", "2024-01-31"))
	svc := newTestService(repo, t.TempDir(), nil)

	inv, err := svc.RecordPayment(ctx, 1, 0.1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inv.Balance != 0.2 {
		t.Fatalf("expected 0.2 left, got %v", inv.Balance)
	}

	inv, err = svc.RecordPayment(ctx, 1, 0.2)
	if err != nil {
		t.Fatalf("paying the remaining 0.20 failed: %v", err)
	}
	if !inv.IsPaid() || inv.Balance != 0 || inv.InvoiceStatus != domain.InvoiceStatusPaid {
		t.Fatalf("expected paid with zero balance, got %s %v", inv.InvoiceStatus, inv.Balance)
	}
}

func TestRecordPayment_RejectsSubCentAmounts(t *testing.T) {
	repo := newMockRepo(invoice(1, "Acme", domain.InvoiceStatusSent, 10, 10, "2024-01-01", "2024-01-31"))
	svc := newTestService(repo, t.TempDir(), nil)

	if _, err := svc.RecordPayment(context.Background(), 1, 0.004); !errors.Is(err, ErrInvalidPayment) {
		t.Fatalf("expected ErrInvalidPayment, got %v", err)
	}
}

func TestCheckOverdue(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepo(
		invoice(1, "Late", domain.InvoiceStatusSent, 100, 100, "2024-01-01", "2024-01-31"),
		invoice(2, "Settled", domain.InvoiceStatusSent, 100, 0, "2024-01-01", "2024-01-31"),
		invoice(3, "Draft", domain.InvoiceStatusDraft, 100, 100, "2024-01-01", "2024-01-31"),
		invoice(4, "Future", domain.InvoiceStatusSent, 100, 100, "2024-06-01", "2024-07-01"),
		invoice(5, "Partial", domain.InvoiceStatusPartialPayment, 100, 20, "2024-05-01", "2024-06-14"),
	)
	svc := newTestService(repo, t.TempDir(), nil)

	n, err := svc.CheckOverdue(ctx, fixedNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 invoices marked, got %d", n)
	}
	for id, want := range map[int64]domain.InvoiceStatus{
		1: domain.InvoiceStatusPastDue,
		2: domain.InvoiceStatusSent,
		3: domain.InvoiceStatusDraft,
		4: domain.InvoiceStatusSent,
		5: domain.InvoiceStatusPastDue,
	} {
		if got := repo.invoices[id].InvoiceStatus; got != want {
			t.Errorf("invoice %d: expected %s, got %s", id, want, got)
		}
	}
}

func TestDelete_Logs(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	repo := newMockRepo(invoice(7, "Acme", domain.InvoiceStatusSent, 100, 100, "2024-01-01", "2024-01-31"))
	svc := newTestService(repo, t.TempDir(), zap.New(core))

	if err := svc.Delete(context.Background(), 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := repo.invoices[7]; ok {
		t.Fatalf("invoice 7 should be gone")
	}

	entries := logs.FilterMessage("invoice deleted").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	if entries[0].ContextMap()["id"] != int64(7) {
		t.Fatalf("expected id field 7, got %v", entries[0].ContextMap()["id"])
	}

	if err := svc.Delete(context.Background(), 7); !errors.Is(err, repository.ErrInvoiceNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestDownload_WritesPDFAndMarksDraft(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	repo := newMockRepo(invoice(3, "Acme", domain.InvoiceStatusDraft, 100, 100, "2024-01-01", "2024-01-31"))
	svc := newTestService(repo, dir, nil)

	path, err := svc.Download(ctx, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("pdf not written: %v", err)
	}
	if !strings.HasPrefix(string(data), "%PDF") {
		t.Fatalf("expected a PDF file")
	}
	if got := repo.invoices[3].InvoiceStatus; got != domain.InvoiceStatusDownloaded {
		t.Fatalf("expected status Downloaded, got %s", got)
	}
	if len(repo.downloads[3]) != 1 || repo.downloads[3][0] != path {
		t.Fatalf("download not recorded: %v", repo.downloads[3])
	}
}

func TestDownload_KeepsNonDraftStatus(t *testing.T) {
	repo := newMockRepo(invoice(3, "Acme", domain.InvoiceStatusPaid, 100, 0, "2024-01-01", "2024-01-31"))
	svc := newTestService(repo, t.TempDir(), nil)

	if _, err := svc.Download(context.Background(), 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := repo.invoices[3].InvoiceStatus; got != domain.InvoiceStatusPaid {
		t.Fatalf("expected status to stay Paid, got %s", got)
	}
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepo()
	svc := newTestService(repo, t.TempDir(), nil)

	var calls []int
	n, err := svc.Seed(ctx, 25, func(done int) { calls = append(calls, done) })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 25 || len(repo.invoices) != 25 {
		t.Fatalf("expected 25 invoices, got %d/%d", n, len(repo.invoices))
	}
	if len(calls) != 25 || calls[24] != 25 {
		t.Fatalf("expected progress after every invoice, got %v", calls)
	}
	for _, inv := range repo.invoices {
		if err := inv.Validate(); err != nil {
			t.Fatalf("seeded invoice %d invalid: %v", inv.ID, err)
		}
		if inv.InvoiceStatus == domain.InvoiceStatusPaid && !inv.IsPaid() {
			t.Fatalf("paid invoice %d has a balance", inv.ID)
		}
	}
}

func TestSeed_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc := newTestService(newMockRepo(), t.TempDir(), nil)

	n, err := svc.Seed(ctx, 10, nil)
	if !errors.Is(err, context.Canceled) || n != 0 {
		t.Fatalf("expected cancellation before any insert, got %d %v", n, err)
	}
}
