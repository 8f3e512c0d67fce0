package listview

import (
	"time"

	"github.com/andy/invoicedesk/internal/domain"
)

// Request is a fetch the screen should dispatch. Seq orders requests by
// intent; Delay is how long the dispatcher should wait before sending it.
type Request struct {
	Seq      uint64
	Criteria domain.Criteria
	Delay    time.Duration
}

// Coordinator owns the filter criteria and numbers every fetch it asks for.
// It is not safe for concurrent use.
type Coordinator struct {
	criteria domain.Criteria
	debounce time.Duration
	seq      uint64
}

// NewCoordinator creates a coordinator with empty criteria. Text queries are
// delayed by debounce; other dimensions dispatch immediately.
func NewCoordinator(debounce time.Duration) *Coordinator {
	if debounce < 0 {
		debounce = 0
	}
	return &Coordinator{debounce: debounce}
}

// Criteria returns a copy of the current criteria
func (c *Coordinator) Criteria() domain.Criteria {
	return c.criteria.WithDates(c.criteria.Dates)
}

// SetQuery replaces the text query
func (c *Coordinator) SetQuery(q string) Request {
	c.criteria = c.criteria.WithQuery(q)
	return c.issue(c.debounce)
}

// SetStatus replaces the status filter
func (c *Coordinator) SetStatus(s domain.StatusFilter) Request {
	c.criteria = c.criteria.WithStatus(s)
	return c.issue(0)
}

// SetDateRange replaces the committed date range. nil clears it.
func (c *Coordinator) SetDateRange(r *domain.DateRange) Request {
	c.criteria = c.criteria.WithDates(r)
	return c.issue(0)
}

// Refresh asks for the current criteria again, e.g. after a row was deleted
func (c *Coordinator) Refresh() Request {
	return c.issue(0)
}

// IsCurrent reports whether seq is the most recently issued request
func (c *Coordinator) IsCurrent(seq uint64) bool {
	return seq != 0 && seq == c.seq
}

// Latest returns the sequence number of the most recent request
func (c *Coordinator) Latest() uint64 {
	return c.seq
}

func (c *Coordinator) issue(delay time.Duration) Request {
	c.seq++
	return Request{
		Seq:      c.seq,
		Criteria: c.Criteria(),
		Delay:    delay,
	}
}
