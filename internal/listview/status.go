// Package listview holds the view state of the invoice list screen: filter
// criteria, the request sequencing that keeps results in intent order, and
// the per-tab pagination and selection.
//
// Nothing here renders. The TUI reads the state and feeds user events back in.
package listview

import "github.com/andy/invoicedesk/internal/domain"

// Color tokens understood by the renderer
const (
	ColorPrimary   = "primary"
	ColorSecondary = "secondary"
	ColorSuccess   = "success"
	ColorWarning   = "warning"
	ColorError     = "error"
	ColorInfo      = "info"
)

// FallbackIcon is used for status labels with no mapping
const FallbackIcon = "mdi:help-circle-outline"

// Presentation describes how a status label is drawn
type Presentation struct {
	Color string
	Icon  string
	Known bool
}

var statusPresentations = map[domain.InvoiceStatus]Presentation{
	domain.InvoiceStatusSent:           {Color: ColorSecondary, Icon: "mdi:send", Known: true},
	domain.InvoiceStatusPaid:           {Color: ColorSuccess, Icon: "mdi:check", Known: true},
	domain.InvoiceStatusDraft:          {Color: ColorPrimary, Icon: "mdi:content-save-outline", Known: true},
	domain.InvoiceStatusPartialPayment: {Color: ColorWarning, Icon: "mdi:chart-pie", Known: true},
	domain.InvoiceStatusPastDue:        {Color: ColorError, Icon: "mdi:information-outline", Known: true},
	domain.InvoiceStatusDownloaded:     {Color: ColorInfo, Icon: "mdi:arrow-down", Known: true},
}

// PresentationFor maps a status label to its color and icon. Unknown labels
// get the primary color and FallbackIcon with Known set to false.
func PresentationFor(status domain.InvoiceStatus) Presentation {
	if p, ok := statusPresentations[status]; ok {
		return p
	}
	return Presentation{Color: ColorPrimary, Icon: FallbackIcon}
}
