package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestParseStatusFilter(t *testing.T) {
	tests := []struct {
		in      string
		want    StatusFilter
		wantErr bool
	}{
		{in: "", want: StatusNone},
		{in: "none", want: StatusNone},
		{in: "Paid", want: "paid"},
		{in: " PAST DUE ", want: "past due"},
		{in: "partial payment", want: "partial payment"},
		{in: "overdue", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStatusFilter(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatusFilter_Matches(t *testing.T) {
	assert.True(t, StatusNone.Matches(InvoiceStatusSent))
	assert.True(t, StatusFilter("partial payment").Matches(InvoiceStatusPartialPayment))
	assert.False(t, StatusFilter("paid").Matches(InvoiceStatusSent))
}

func TestNewDateRange_OrdersEndpoints(t *testing.T) {
	r := NewDateRange(day("2024-03-10"), day("2024-03-01"))
	assert.Equal(t, day("2024-03-01"), r.Start)
	assert.Equal(t, day("2024-03-10"), r.End)
	assert.Equal(t, "03/01/2024 - 03/10/2024", r.String())
}

func TestDateRange_ContainsIsInclusive(t *testing.T) {
	r := NewDateRange(day("2024-03-01"), day("2024-03-10"))
	assert.True(t, r.Contains(day("2024-03-01")))
	assert.True(t, r.Contains(day("2024-03-10").Add(23*time.Hour)))
	assert.False(t, r.Contains(day("2024-03-11")))
	assert.False(t, r.Contains(day("2024-02-29")))
}

func TestCriteria_WithDatesCopies(t *testing.T) {
	r := NewDateRange(day("2024-01-01"), day("2024-01-31"))
	c := Criteria{}.WithDates(&r)
	r.End = day("2025-01-01")

	require.NotNil(t, c.Dates)
	assert.Equal(t, day("2024-01-31"), c.Dates.End)
	assert.Nil(t, c.WithDates(nil).Dates)
}

func TestCriteria_Matches(t *testing.T) {
	rec := &InvoiceRecord{
		ID:            4987,
		Name:          "Jordan Stevenson",
		CompanyEmail:  "don85@johnson.com",
		Total:         3428,
		Balance:       724,
		IssuedDate:    day("2024-04-13"),
		DueDate:       day("2024-05-03"),
		InvoiceStatus: InvoiceStatusPaid,
	}
	march := NewDateRange(day("2024-03-01"), day("2024-03-31"))
	april := NewDateRange(day("2024-04-01"), day("2024-04-30"))

	tests := []struct {
		name string
		c    Criteria
		want bool
	}{
		{"empty", Criteria{}, true},
		{"name", Criteria{Query: "jordan"}, true},
		{"email", Criteria{Query: "JOHNSON.COM"}, true},
		{"id", Criteria{Query: "498"}, true},
		{"due date", Criteria{Query: "2024-05"}, true},
		{"no match", Criteria{Query: "acme"}, false},
		{"status match", Criteria{Status: "paid"}, true},
		{"status mismatch", Criteria{Status: "sent"}, false},
		{"in range", Criteria{Dates: &april}, true},
		{"out of range", Criteria{Dates: &march}, false},
		{"all dimensions", Criteria{Query: "jordan", Status: "paid", Dates: &april}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.c.Matches(rec))
		})
	}
}

func TestCriteria_MatchesWithoutDueDate(t *testing.T) {
	rec := &InvoiceRecord{ID: 12, Name: "Acme", Total: 90, Balance: 90, IssuedDate: day("2024-04-13")}

	assert.False(t, Criteria{Query: "0001"}.Matches(rec))
	assert.False(t, Criteria{Query: "01-01"}.Matches(rec))
	assert.True(t, Criteria{Query: "acme"}.Matches(rec))
}

func TestInvoiceRecord_PaidFollowsBalance(t *testing.T) {
	rec := &InvoiceRecord{Balance: 0, InvoiceStatus: InvoiceStatusSent}
	assert.True(t, rec.IsPaid())

	rec = &InvoiceRecord{Balance: 10, InvoiceStatus: InvoiceStatusPaid}
	assert.False(t, rec.IsPaid())

	rec = &InvoiceRecord{Balance: 0.3 - 0.1 - 0.2}
	assert.True(t, rec.IsPaid())

	rec = &InvoiceRecord{Balance: 0.01}
	assert.False(t, rec.IsPaid())
}

func TestCents(t *testing.T) {
	assert.Equal(t, int64(20), Cents(0.19999999999999998))
	assert.Equal(t, int64(30), Cents(0.1+0.2))
	assert.Equal(t, int64(-5), Cents(-0.05))
	assert.Equal(t, 0.2, FromCents(20))
}

func TestInvoiceRecord_Initials(t *testing.T) {
	assert.Equal(t, "JS", (&InvoiceRecord{Name: "jordan stevenson"}).Initials())
	assert.Equal(t, "C", (&InvoiceRecord{Name: "Cher"}).Initials())
	assert.Equal(t, "JD", (&InvoiceRecord{}).Initials())
}

func TestInvoiceRecord_Validate(t *testing.T) {
	valid := NewInvoiceRecord("Acme", "billing@acme.test", 100, day("2024-01-01"), day("2024-01-31"))
	require.NoError(t, valid.Validate())

	bad := valid.Copy()
	bad.Balance = 200
	assert.Error(t, bad.Validate())

	bad = valid.Copy()
	bad.DueDate = day("2023-12-01")
	assert.Error(t, bad.Validate())

	bad = valid.Copy()
	bad.InvoiceStatus = "Overdue"
	assert.Error(t, bad.Validate())
}
