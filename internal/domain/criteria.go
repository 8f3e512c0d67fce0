package domain

import (
	"fmt"
	"strings"
	"time"
)

// StatusFilter is the status dimension of a query. StatusNone matches every invoice.
type StatusFilter string

const StatusNone StatusFilter = ""

// StatusFilters is the menu order used by the list screen
var StatusFilters = []StatusFilter{
	StatusNone,
	"downloaded",
	"draft",
	"paid",
	"partial payment",
	"past due",
	"sent",
}

// ParseStatusFilter accepts "none", "" or any status label in any case
func ParseStatusFilter(s string) (StatusFilter, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "none" {
		return StatusNone, nil
	}
	for _, f := range StatusFilters {
		if string(f) == s {
			return f, nil
		}
	}
	return StatusNone, fmt.Errorf("unknown status filter %q", s)
}

// Matches reports whether a status label passes the filter
func (f StatusFilter) Matches(status InvoiceStatus) bool {
	return f == StatusNone || strings.ToLower(string(status)) == string(f)
}

func (f StatusFilter) String() string {
	if f == StatusNone {
		return "none"
	}
	return string(f)
}

// DateRange is a committed, inclusive range of calendar days
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange builds a range from two days, swapping them if needed so Start <= End
func NewDateRange(a, b time.Time) DateRange {
	a, b = Day(a), Day(b)
	if b.Before(a) {
		a, b = b, a
	}
	return DateRange{Start: a, End: b}
}

// Contains reports whether the day of t is inside the range
func (r DateRange) Contains(t time.Time) bool {
	d := Day(t)
	return !d.Before(r.Start) && !d.After(r.End)
}

// String renders the range the way the date input shows it
func (r DateRange) String() string {
	return r.Start.Format("01/02/2006") + " - " + r.End.Format("01/02/2006")
}

// Criteria is what the user currently wants to see. It is a value type; copy freely.
type Criteria struct {
	Query  string
	Status StatusFilter
	Dates  *DateRange // nil when no range is committed
}

// WithQuery returns a copy with the text query replaced
func (c Criteria) WithQuery(q string) Criteria {
	c.Query = q
	return c
}

// WithStatus returns a copy with the status replaced
func (c Criteria) WithStatus(s StatusFilter) Criteria {
	c.Status = s
	return c
}

// WithDates returns a copy with the date range replaced. nil clears it.
func (c Criteria) WithDates(r *DateRange) Criteria {
	if r == nil {
		c.Dates = nil
		return c
	}
	cp := *r
	c.Dates = &cp
	return c
}

// IsEmpty reports whether no filter is active
func (c Criteria) IsEmpty() bool {
	return strings.TrimSpace(c.Query) == "" && c.Status == StatusNone && c.Dates == nil
}

// Matches applies the criteria to a single record. The SQLite repository
// implements the same rules in SQL; this is used for in-memory sources.
func (c Criteria) Matches(r *InvoiceRecord) bool {
	if !c.Status.Matches(r.InvoiceStatus) {
		return false
	}
	if c.Dates != nil && !c.Dates.Contains(r.IssuedDate) {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(c.Query))
	if q == "" {
		return true
	}
	fields := []string{
		r.CompanyEmail,
		r.Name,
		fmt.Sprint(r.ID),
		fmt.Sprint(r.Total),
		fmt.Sprint(r.Balance),
	}
	if !r.DueDate.IsZero() {
		fields = append(fields, r.DueDate.Format(DateLayout))
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
