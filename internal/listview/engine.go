package listview

import (
	"context"
	"slices"
	"time"

	"github.com/andy/invoicedesk/internal/domain"
	"go.uber.org/zap"
)

// DataSource answers fetch requests. Implementations may block; the caller
// runs them off the event loop and hands the Result back through Apply.
type DataSource interface {
	Fetch(ctx context.Context, criteria domain.Criteria) ([]domain.InvoiceRecord, error)
}

// Result is the outcome of dispatching a Request
type Result struct {
	Seq     uint64
	Records []domain.InvoiceRecord
	Err     error
}

// Fetch runs req against src and wraps the outcome in a Result
func Fetch(ctx context.Context, src DataSource, req Request) Result {
	records, err := src.Fetch(ctx, req.Criteria)
	return Result{Seq: req.Seq, Records: records, Err: err}
}

// DatasetStatus describes the shared dataset
type DatasetStatus int

const (
	DatasetLoading DatasetStatus = iota
	DatasetReady
	DatasetUnavailable
)

func (s DatasetStatus) String() string {
	switch s {
	case DatasetReady:
		return "ready"
	case DatasetUnavailable:
		return "unavailable"
	default:
		return "loading"
	}
}

// Options configures an Engine
type Options struct {
	PageSize                int
	Debounce                time.Duration
	ResetPageOnFilterChange bool
	Logger                  *zap.Logger
}

// Engine is the view state of one invoice list screen: criteria, date
// picker, both tabs and the dataset they share. Not safe for concurrent use.
type Engine struct {
	coord   *Coordinator
	dates   DateRangeSelector
	tabs    *TabSet
	records []domain.InvoiceRecord
	status  DatasetStatus
	err     error
	applied uint64

	resetPages bool
	log        *zap.Logger
}

// NewEngine creates an engine with empty criteria and an empty dataset
func NewEngine(opts Options) *Engine {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		coord:      NewCoordinator(opts.Debounce),
		tabs:       NewTabSet(opts.PageSize),
		status:     DatasetLoading,
		resetPages: opts.ResetPageOnFilterChange,
		log:        log,
	}
}

// Start returns the request for the initial load
func (e *Engine) Start() Request {
	return e.coord.Refresh()
}

// SetQuery changes the text query
func (e *Engine) SetQuery(q string) Request {
	e.criteriaChanged()
	return e.coord.SetQuery(q)
}

// SetStatus changes the status filter
func (e *Engine) SetStatus(s domain.StatusFilter) Request {
	e.criteriaChanged()
	return e.coord.SetStatus(s)
}

// PickDates feeds a date picker interaction. ok is false when the committed
// range did not change and nothing needs to be fetched.
func (e *Engine) PickDates(start, end *time.Time) (req Request, ok bool) {
	switch e.dates.Pick(start, end) {
	case RangeCommitted, RangeCleared:
		e.criteriaChanged()
		return e.coord.SetDateRange(e.dates.Committed()), true
	default:
		return Request{}, false
	}
}

// Refresh reissues the current criteria, e.g. after a row action
func (e *Engine) Refresh() Request {
	return e.coord.Refresh()
}

// IsCurrent reports whether seq is still the latest request. Dispatchers
// call it after a debounce delay to skip superseded requests.
func (e *Engine) IsCurrent(seq uint64) bool {
	return e.coord.IsCurrent(seq)
}

// Apply stores a fetch result if it answers the latest request and reports
// whether it did. Older results are dropped.
func (e *Engine) Apply(res Result) bool {
	if !e.coord.IsCurrent(res.Seq) {
		e.log.Debug("discarding stale result",
			zap.Uint64("seq", res.Seq),
			zap.Uint64("latest", e.coord.Latest()),
		)
		return false
	}

	e.applied = res.Seq
	if res.Err != nil {
		e.log.Warn("invoice fetch failed", zap.Uint64("seq", res.Seq), zap.Error(res.Err))
		e.records = nil
		e.status = DatasetUnavailable
		e.err = res.Err
		return true
	}

	e.records = slices.Clone(res.Records)
	e.status = DatasetReady
	e.err = nil

	// selections survive a failed fetch; only a fresh dataset prunes them
	valid := make(map[int64]struct{}, len(e.records))
	for _, r := range e.records {
		valid[r.ID] = struct{}{}
	}
	if n := e.tabs.prune(valid); n > 0 {
		e.log.Debug("pruned stale selections", zap.Int("removed", n))
	}
	return true
}

// Criteria returns the committed criteria
func (e *Engine) Criteria() domain.Criteria {
	return e.coord.Criteria()
}

// Dates returns the date picker state
func (e *Engine) Dates() *DateRangeSelector {
	return &e.dates
}

// Tabs returns the tab set
func (e *Engine) Tabs() *TabSet {
	return e.tabs
}

// Records returns a copy of the shared dataset
func (e *Engine) Records() []domain.InvoiceRecord {
	return slices.Clone(e.records)
}

// Record looks up a loaded row by id
func (e *Engine) Record(id int64) (domain.InvoiceRecord, bool) {
	for _, r := range e.records {
		if r.ID == id {
			return r, true
		}
	}
	return domain.InvoiceRecord{}, false
}

// PageRows returns the rows visible on tab's current page
func (e *Engine) PageRows(tab Tab) []domain.InvoiceRecord {
	lo, hi := e.tabs.Pagination(tab).Bounds(len(e.records))
	return slices.Clone(e.records[lo:hi])
}

// Status returns the dataset status and the last fetch error
func (e *Engine) Status() (DatasetStatus, error) {
	return e.status, e.err
}

// Loading reports whether the latest request has not been answered yet
func (e *Engine) Loading() bool {
	return e.applied != e.coord.Latest()
}

func (e *Engine) criteriaChanged() {
	if e.resetPages {
		e.tabs.resetPages()
	}
}
