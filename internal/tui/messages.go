package tui

import (
	"github.com/andy/invoicedesk/internal/domain"
	"github.com/andy/invoicedesk/internal/listview"
)

// SwitchScreenMsg requests a screen change
type SwitchScreenMsg struct {
	Screen Screen
}

// RefreshDataMsg requests data refresh
type RefreshDataMsg struct{}

// ErrorMsg carries error information
type ErrorMsg struct {
	Err error
}

// dispatchMsg fires when a debounced request's delay has elapsed
type dispatchMsg struct {
	req listview.Request
}

// fetchResultMsg carries the answer to a dispatched request
type fetchResultMsg struct {
	res listview.Result
}

// invoiceDetailMsg carries a freshly loaded invoice for the detail pane
type invoiceDetailMsg struct {
	invoice *domain.InvoiceRecord
	err     error
}

// actionDoneMsg reports a finished row action
type actionDoneMsg struct {
	status  string
	err     error
	refetch bool
}

// firstRunCheckMsg reports whether any invoices exist yet
type firstRunCheckMsg struct {
	hasInvoices bool
}
