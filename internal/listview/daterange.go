package listview

import (
	"time"

	"github.com/andy/invoicedesk/internal/domain"
)

// RangeChange is the outcome of a date picker interaction
type RangeChange int

const (
	// RangeUnchanged means the committed range did not move (a pick is in progress)
	RangeUnchanged RangeChange = iota
	// RangeCommitted means both endpoints are set and the range was committed
	RangeCommitted
	// RangeCleared means the picker was cleared and the committed range dropped
	RangeCleared
)

func (c RangeChange) String() string {
	switch c {
	case RangeCommitted:
		return "committed"
	case RangeCleared:
		return "cleared"
	default:
		return "unchanged"
	}
}

// DateRangeSelector turns raw (start, end) picker values into committed
// ranges. The committed range is either absent or has both endpoints.
type DateRangeSelector struct {
	start     *time.Time
	end       *time.Time
	committed *domain.DateRange
}

// Pick records one picker interaction
func (s *DateRangeSelector) Pick(start, end *time.Time) RangeChange {
	s.start = dayPtr(start)
	s.end = dayPtr(end)

	switch {
	case s.start != nil && s.end != nil:
		r := domain.NewDateRange(*s.start, *s.end)
		s.start, s.end = &r.Start, &r.End
		s.committed = &r
		return RangeCommitted
	case s.start == nil && s.committed != nil:
		s.committed = nil
		s.end = nil
		return RangeCleared
	default:
		return RangeUnchanged
	}
}

// Committed returns a copy of the committed range, or nil
func (s *DateRangeSelector) Committed() *domain.DateRange {
	if s.committed == nil {
		return nil
	}
	r := *s.committed
	return &r
}

// Pending returns the raw endpoints currently shown in the picker
func (s *DateRangeSelector) Pending() (start, end *time.Time) {
	return s.start, s.end
}

// Display renders the picker text: "MM/DD/YYYY - MM/DD/YYYY", or only the start while a pick is in progress
func (s *DateRangeSelector) Display() string {
	if s.start == nil {
		return ""
	}
	out := s.start.Format("01/02/2006")
	if s.end != nil {
		out += " - " + s.end.Format("01/02/2006")
	}
	return out
}

func dayPtr(t *time.Time) *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	d := domain.Day(*t)
	return &d
}
