package listview

import (
	"fmt"

	"github.com/andy/invoicedesk/internal/domain"
)

// BalanceCell is what the balance column shows for a row
type BalanceCell struct {
	Paid bool   // draw the success "Paid" chip instead of Text
	Text string // formatted balance
}

// BalanceCellFor decides the balance column. A zero balance always shows
// the Paid chip, whatever the status label says.
func BalanceCellFor(r domain.InvoiceRecord) BalanceCell {
	if r.IsPaid() {
		return BalanceCell{Paid: true, Text: "Paid"}
	}
	return BalanceCell{Text: fmt.Sprintf("%.2f", r.Balance)}
}

// StatusCell is what the status column shows for a row
type StatusCell struct {
	Label        string
	Presentation Presentation
	Tooltip      string
}

// StatusCellFor decides the status column. It follows the label only.
func StatusCellFor(r domain.InvoiceRecord) StatusCell {
	due := ""
	if !r.DueDate.IsZero() {
		due = r.DueDate.Format(domain.DateLayout)
	}
	return StatusCell{
		Label:        string(r.InvoiceStatus),
		Presentation: PresentationFor(r.InvoiceStatus),
		Tooltip:      fmt.Sprintf("%s\nBalance: %.2f\nDue Date: %s", r.InvoiceStatus, r.Balance, due),
	}
}

// ClientCell is what the client column shows for a row
type ClientCell struct {
	Avatar   string // image reference; empty when initials are used
	Initials string
	Color    string
	Name     string
	Email    string
}

// ClientCellFor falls back to initials in the avatar color when no avatar is set
func ClientCellFor(r domain.InvoiceRecord) ClientCell {
	c := ClientCell{Name: r.Name, Email: r.CompanyEmail}
	if r.Avatar != "" {
		c.Avatar = r.Avatar
		return c
	}
	c.Initials = r.Initials()
	c.Color = r.AvatarColor
	if c.Color == "" {
		c.Color = ColorPrimary
	}
	return c
}
