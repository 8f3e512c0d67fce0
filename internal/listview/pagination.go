package listview

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrInvalidPage     = errors.New("page must not be negative")
	ErrInvalidPageSize = errors.New("page size must be 10, 25 or 50")
)

// PageSizes are the page sizes offered by the grid
var PageSizes = []int{10, 25, 50}

// DefaultPageSize is used when no valid size is configured
const DefaultPageSize = 10

// PageState is the requested window of one grid
type PageState struct {
	Page     int
	PageSize int
}

// Pagination stores the page window for one tab. It does not validate the
// page against the dataset length; use Bounds when slicing rows.
type Pagination struct {
	state PageState
}

// NewPagination starts at page 0 with the given size, or DefaultPageSize if
// the size is not one of PageSizes
func NewPagination(pageSize int) *Pagination {
	if !slices.Contains(PageSizes, pageSize) {
		pageSize = DefaultPageSize
	}
	return &Pagination{state: PageState{PageSize: pageSize}}
}

// SetPage stores the requested page
func (p *Pagination) SetPage(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPage, n)
	}
	p.state.Page = n
	return nil
}

// SetPageSize stores the requested size and goes back to the first page
func (p *Pagination) SetPageSize(n int) error {
	if !slices.Contains(PageSizes, n) {
		return fmt.Errorf("%w: %d", ErrInvalidPageSize, n)
	}
	p.state.PageSize = n
	p.state.Page = 0
	return nil
}

// State returns the stored window
func (p *Pagination) State() PageState {
	return p.state
}

// PageCount is the number of pages needed for total rows (at least 1)
func (p *Pagination) PageCount(total int) int {
	if total <= 0 {
		return 1
	}
	return (total + p.state.PageSize - 1) / p.state.PageSize
}

// Bounds returns the [lo, hi) row indexes of the current page, clamped to total
func (p *Pagination) Bounds(total int) (lo, hi int) {
	lo = min(p.state.Page*p.state.PageSize, max(total, 0))
	hi = min(lo+p.state.PageSize, max(total, 0))
	return lo, hi
}

// NextPageSize returns the size after current in PageSizes, wrapping around
func NextPageSize(current int) int {
	i := slices.Index(PageSizes, current)
	return PageSizes[(i+1)%len(PageSizes)]
}
