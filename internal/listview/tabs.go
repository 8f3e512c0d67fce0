package listview

import (
	"errors"
	"fmt"
)

var ErrUnknownTab = errors.New("unknown tab")

// Tab identifies one of the grids on the list screen
type Tab int

const (
	TabOverview Tab = iota
	TabSecurity
)

// String returns the tab key
func (t Tab) String() string {
	switch t {
	case TabOverview:
		return "overview"
	case TabSecurity:
		return "security"
	default:
		return "unknown"
	}
}

// Title returns the header shown for the tab
func (t Tab) Title() string {
	switch t {
	case TabOverview:
		return "Direct Financing"
	case TabSecurity:
		return "Prompt Payment"
	default:
		return "Unknown"
	}
}

type tabState struct {
	pagination *Pagination
	selection  *Selection
}

// TabSet keeps an independent pagination and selection per tab. All tabs
// render the same dataset; switching tabs only changes which state is active.
type TabSet struct {
	order  []Tab
	states map[Tab]*tabState
	active Tab
}

// NewTabSet creates both tabs with the given page size, overview active
func NewTabSet(pageSize int) *TabSet {
	ts := &TabSet{
		order:  []Tab{TabOverview, TabSecurity},
		states: make(map[Tab]*tabState),
		active: TabOverview,
	}
	for _, t := range ts.order {
		ts.states[t] = &tabState{
			pagination: NewPagination(pageSize),
			selection:  &Selection{},
		}
	}
	return ts
}

// Tabs returns the tabs in display order
func (ts *TabSet) Tabs() []Tab {
	out := make([]Tab, len(ts.order))
	copy(out, ts.order)
	return out
}

// Active returns the visible tab
func (ts *TabSet) Active() Tab {
	return ts.active
}

// SetActive makes tab visible. It never touches any tab's pagination or selection.
func (ts *TabSet) SetActive(tab Tab) error {
	if _, ok := ts.states[tab]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownTab, tab)
	}
	ts.active = tab
	return nil
}

// Next activates the tab after the active one, wrapping around
func (ts *TabSet) Next() Tab {
	for i, t := range ts.order {
		if t == ts.active {
			ts.active = ts.order[(i+1)%len(ts.order)]
			break
		}
	}
	return ts.active
}

// Pagination returns the pagination of tab. It panics on an unknown tab.
func (ts *TabSet) Pagination(tab Tab) *Pagination {
	return ts.mustState(tab).pagination
}

// Selection returns the selection of tab. It panics on an unknown tab.
func (ts *TabSet) Selection(tab Tab) *Selection {
	return ts.mustState(tab).selection
}

func (ts *TabSet) resetPages() {
	for _, st := range ts.states {
		_ = st.pagination.SetPage(0)
	}
}

func (ts *TabSet) prune(valid map[int64]struct{}) int {
	removed := 0
	for _, st := range ts.states {
		removed += st.selection.Prune(valid)
	}
	return removed
}

func (ts *TabSet) mustState(tab Tab) *tabState {
	st, ok := ts.states[tab]
	if !ok {
		panic(fmt.Sprintf("listview: %v: %d", ErrUnknownTab, tab))
	}
	return st
}
