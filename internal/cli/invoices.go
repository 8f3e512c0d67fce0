package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/andy/invoicedesk/internal/domain"
	"github.com/andy/invoicedesk/internal/listview"
	"github.com/spf13/cobra"
)

var invoicesCmd = &cobra.Command{
	Use:   "invoices",
	Short: "Manage invoices",
	Long:  `Search, inspect and act on invoices.`,
}

var invoicesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List invoices",
	Long: `List invoices one page at a time.

Examples:
  invoicedesk invoices list --query acme
  invoicedesk invoices list --status "past due" --page-size 25
  invoicedesk invoices list --from 2024-01-01 --to 2024-03-31 --page 2`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		out := cmd.OutOrStdout()

		query, _ := cmd.Flags().GetString("query")
		statusStr, _ := cmd.Flags().GetString("status")
		fromStr, _ := cmd.Flags().GetString("from")
		toStr, _ := cmd.Flags().GetString("to")
		page, _ := cmd.Flags().GetInt("page")
		pageSize, _ := cmd.Flags().GetInt("page-size")

		status, err := domain.ParseStatusFilter(statusStr)
		if err != nil {
			return err
		}
		from, err := parseOptionalDate(fromStr)
		if err != nil {
			return fmt.Errorf("invalid --from date: %w", err)
		}
		to, err := parseOptionalDate(toStr)
		if err != nil {
			return fmt.Errorf("invalid --to date: %w", err)
		}
		if (from == nil) != (to == nil) {
			return fmt.Errorf("--from and --to must be given together")
		}
		if pageSize == 0 {
			pageSize = appInstance.Config.List.DefaultPageSize
		}

		engine := listview.NewEngine(listview.Options{
			PageSize:                pageSize,
			ResetPageOnFilterChange: true,
			Logger:                  appInstance.Log,
		})
		engine.SetQuery(query)
		engine.SetStatus(status)
		engine.PickDates(from, to)

		pages := engine.Tabs().Pagination(engine.Tabs().Active())
		if err := pages.SetPageSize(pageSize); err != nil {
			return err
		}
		if err := pages.SetPage(page - 1); err != nil {
			return fmt.Errorf("--page must be at least 1")
		}

		res := listview.Fetch(ctx, appInstance.InvoiceService, engine.Refresh())
		engine.Apply(res)
		if res.Err != nil {
			return fmt.Errorf("failed to list invoices: %w", res.Err)
		}

		printInvoicePage(out, engine)
		return nil
	},
}

func printInvoicePage(out io.Writer, engine *listview.Engine) {
	records := engine.Records()
	if len(records) == 0 {
		fmt.Fprintln(out, "No invoices found")
		return
	}

	active := engine.Tabs().Active()
	pages := engine.Tabs().Pagination(active)
	rows := engine.PageRows(active)

	fmt.Fprintf(out, "%-6s %-24s %-12s %-12s %-12s %-16s\n", "ID", "Client", "Total", "Issued", "Balance", "Status")
	fmt.Fprintln(out, strings.Repeat("-", 86))

	for _, r := range rows {
		balance := fmt.Sprintf("$%.2f", r.Balance)
		if listview.BalanceCellFor(r).Paid {
			balance = "Paid"
		}
		fmt.Fprintf(out, "%-6d %-24s $%-11.2f %-12s %-12s %-16s\n",
			r.ID,
			truncate(r.Name, 24),
			r.Total,
			r.IssuedDate.Format(domain.DateLayout),
			balance,
			r.InvoiceStatus,
		)
	}

	state := pages.State()
	fmt.Fprintf(out, "\nPage %d of %d · %d invoice(s)\n", state.Page+1, pages.PageCount(len(records)), len(records))
}

var invoicesShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show invoice details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		out := cmd.OutOrStdout()

		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		invoice, err := appInstance.InvoiceService.GetInvoice(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get invoice: %w", err)
		}

		status := listview.StatusCellFor(*invoice)
		due := "-"
		if !invoice.DueDate.IsZero() {
			due = invoice.DueDate.Format(domain.DateLayout)
		}

		fmt.Fprintln(out, strings.Repeat("=", 60))
		fmt.Fprintf(out, "Invoice #%d\n", invoice.ID)
		fmt.Fprintln(out, strings.Repeat("=", 60))
		fmt.Fprintf(out, "Client:  %s\n", invoice.Name)
		if invoice.CompanyEmail != "" {
			fmt.Fprintf(out, "Email:   %s\n", invoice.CompanyEmail)
		}
		fmt.Fprintf(out, "Issued:  %s\n", invoice.IssuedDate.Format(domain.DateLayout))
		fmt.Fprintf(out, "Due:     %s\n", due)
		fmt.Fprintf(out, "Status:  %s\n", status.Label)
		fmt.Fprintf(out, "Total:   $%.2f\n", invoice.Total)
		if invoice.IsPaid() {
			fmt.Fprintln(out, "Balance: Paid")
		} else {
			fmt.Fprintf(out, "Balance: $%.2f\n", invoice.Balance)
		}
		fmt.Fprintln(out, strings.Repeat("=", 60))
		return nil
	},
}

var invoicesDeleteCmd = &cobra.Command{
	Use:   "delete [id...]",
	Short: "Delete one or more invoices",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		out := cmd.OutOrStdout()

		ids := make([]int64, 0, len(args))
		for _, a := range args {
			id, err := parseID(a)
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !confirmPrompt(cmd, fmt.Sprintf("Delete %d invoice(s)?", len(ids))) {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}

		for _, id := range ids {
			if err := appInstance.InvoiceService.Delete(ctx, id); err != nil {
				return fmt.Errorf("failed to delete invoice #%d: %w", id, err)
			}
			fmt.Fprintf(out, "✓ Invoice #%d deleted\n", id)
		}
		return nil
	},
}

var invoicesDuplicateCmd = &cobra.Command{
	Use:   "duplicate [id]",
	Short: "Copy an invoice into a new draft",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		dup, err := appInstance.InvoiceService.Duplicate(context.Background(), id)
		if err != nil {
			return fmt.Errorf("failed to duplicate invoice: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✓ Invoice #%d duplicated as draft #%d\n", id, dup.ID)
		return nil
	},
}

var invoicesDownloadCmd = &cobra.Command{
	Use:   "download [id]",
	Short: "Render an invoice as PDF",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		path, err := appInstance.InvoiceService.Download(context.Background(), id)
		if err != nil {
			return fmt.Errorf("failed to download invoice: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✓ Invoice #%d saved to %s\n", id, path)
		return nil
	},
}

var invoicesPayCmd = &cobra.Command{
	Use:   "pay [id]",
	Short: "Record a payment against an invoice",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		amount, _ := cmd.Flags().GetFloat64("amount")

		invoice, err := appInstance.InvoiceService.RecordPayment(context.Background(), id, amount)
		if err != nil {
			return fmt.Errorf("failed to record payment: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "✓ Payment of $%.2f recorded on invoice #%d\n", amount, id)
		fmt.Fprintf(out, "  Balance: $%.2f (%s)\n", invoice.Balance, invoice.InvoiceStatus)
		return nil
	},
}

var invoicesOverdueCmd = &cobra.Command{
	Use:   "overdue",
	Short: "Mark unpaid invoices past their due date as Past Due",
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := appInstance.InvoiceService.CheckOverdue(context.Background(), time.Now())
		if err != nil {
			return fmt.Errorf("failed to check overdue invoices: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✓ %d invoice(s) marked Past Due\n", n)
		return nil
	},
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid invoice ID %q", s)
	}
	return id, nil
}

// parseOptionalDate accepts YYYY-MM-DD or MM/DD/YYYY; empty means no date
func parseOptionalDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{domain.DateLayout, "01/02/2006"} {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("unable to parse date %q (use YYYY-MM-DD or MM/DD/YYYY)", s)
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

func init() {
	invoicesCmd.AddCommand(invoicesListCmd)
	invoicesCmd.AddCommand(invoicesShowCmd)
	invoicesCmd.AddCommand(invoicesDeleteCmd)
	invoicesCmd.AddCommand(invoicesDuplicateCmd)
	invoicesCmd.AddCommand(invoicesDownloadCmd)
	invoicesCmd.AddCommand(invoicesPayCmd)
	invoicesCmd.AddCommand(invoicesOverdueCmd)

	// List flags
	invoicesListCmd.Flags().StringP("query", "q", "", "Search text (name, email, id, amounts, dates, status)")
	invoicesListCmd.Flags().String("status", "", "Filter by status (sent, paid, draft, partial payment, past due, downloaded)")
	invoicesListCmd.Flags().String("from", "", "Issued on or after this date")
	invoicesListCmd.Flags().String("to", "", "Issued on or before this date")
	invoicesListCmd.Flags().Int("page", 1, "Page number, starting at 1")
	invoicesListCmd.Flags().Int("page-size", 0, "Rows per page (10, 25 or 50; defaults to config)")

	invoicesDeleteCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")

	invoicesPayCmd.Flags().Float64("amount", 0, "Payment amount (required)")
	_ = invoicesPayCmd.MarkFlagRequired("amount")
}
