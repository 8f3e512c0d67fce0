package domain

import (
	"errors"
	"math"
	"strings"
	"time"
)

// InvoiceStatus is the label shown for an invoice
type InvoiceStatus string

const (
	InvoiceStatusSent           InvoiceStatus = "Sent"
	InvoiceStatusPaid           InvoiceStatus = "Paid"
	InvoiceStatusDraft          InvoiceStatus = "Draft"
	InvoiceStatusPartialPayment InvoiceStatus = "Partial Payment"
	InvoiceStatusPastDue        InvoiceStatus = "Past Due"
	InvoiceStatusDownloaded     InvoiceStatus = "Downloaded"
)

// InvoiceStatuses lists every known status label
var InvoiceStatuses = []InvoiceStatus{
	InvoiceStatusDownloaded,
	InvoiceStatusDraft,
	InvoiceStatusPaid,
	InvoiceStatusPartialPayment,
	InvoiceStatusPastDue,
	InvoiceStatusSent,
}

// ParseInvoiceStatus matches a label case-insensitively
func ParseInvoiceStatus(s string) (InvoiceStatus, error) {
	for _, st := range InvoiceStatuses {
		if strings.EqualFold(strings.TrimSpace(s), string(st)) {
			return st, nil
		}
	}
	return "", errors.New("unknown invoice status: " + s)
}

// DateLayout is the calendar date format used for issued and due dates
const DateLayout = "2006-01-02"

type InvoiceRecord struct {
	ID            int64
	Name          string
	CompanyEmail  string
	Avatar        string // image reference, may be empty
	AvatarColor   string // color token used when Avatar is empty
	Total         float64
	IssuedDate    time.Time
	DueDate       time.Time
	Balance       float64 // zero means fully paid
	InvoiceStatus InvoiceStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewInvoiceRecord creates a draft invoice issued on the given day
func NewInvoiceRecord(name, email string, total float64, issued, due time.Time) *InvoiceRecord {
	now := time.Now()
	return &InvoiceRecord{
		Name:          strings.TrimSpace(name),
		CompanyEmail:  strings.TrimSpace(email),
		Total:         total,
		Balance:       total,
		IssuedDate:    Day(issued),
		DueDate:       Day(due),
		InvoiceStatus: InvoiceStatusDraft,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// IsPaid reports whether the balance is settled. The balance wins over the status label.
// Anything under half a cent counts as settled.
func (r *InvoiceRecord) IsPaid() bool {
	return Cents(r.Balance) == 0
}

// Cents converts an amount to whole cents, rounding half away from zero
func Cents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// FromCents converts whole cents back to an amount
func FromCents(c int64) float64 {
	return float64(c) / 100
}

// Initials returns up to two initials for the client avatar
func (r *InvoiceRecord) Initials() string {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		name = "John Doe"
	}
	var out []rune
	for _, part := range strings.Fields(name) {
		out = append(out, []rune(strings.ToUpper(part))[0])
		if len(out) == 2 {
			break
		}
	}
	return string(out)
}

// Copy returns a detached copy of the record
func (r *InvoiceRecord) Copy() *InvoiceRecord {
	c := *r
	return &c
}

// Validate returns an error if the invoice is invalid
func (r *InvoiceRecord) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("client name is required")
	}
	if r.Total < 0 {
		return errors.New("total cannot be negative")
	}
	if r.Balance < 0 {
		return errors.New("balance cannot be negative")
	}
	if r.Balance > r.Total {
		return errors.New("balance cannot exceed total")
	}
	if r.IssuedDate.IsZero() {
		return errors.New("issued date is required")
	}
	if !r.DueDate.IsZero() && r.DueDate.Before(r.IssuedDate) {
		return errors.New("due date must not be before issued date")
	}
	if _, err := ParseInvoiceStatus(string(r.InvoiceStatus)); err != nil {
		return err
	}
	return nil
}

// Day truncates t to its calendar day in UTC
func Day(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
