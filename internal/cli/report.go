package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/andy/invoicedesk/internal/domain"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarize invoices",
	Long: `Summarize billed, collected and outstanding amounts, optionally for the
invoices matching a query, status or issue date range, then show what was
billed each month of --year.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		out := cmd.OutOrStdout()

		query, _ := cmd.Flags().GetString("query")
		statusStr, _ := cmd.Flags().GetString("status")
		fromStr, _ := cmd.Flags().GetString("from")
		toStr, _ := cmd.Flags().GetString("to")
		year, _ := cmd.Flags().GetInt("year")

		status, err := domain.ParseStatusFilter(statusStr)
		if err != nil {
			return err
		}
		criteria := domain.Criteria{Query: query, Status: status}

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
		if from != nil {
			r := domain.NewDateRange(*from, *to)
			criteria = criteria.WithDates(&r)
		}

		summary, err := appInstance.ReportService.GetSummary(ctx, criteria)
		if err != nil {
			return fmt.Errorf("failed to summarize invoices: %w", err)
		}

		fmt.Fprintln(out, strings.Repeat("=", 40))
		fmt.Fprintf(out, "Invoices:     %d\n", summary.Count)
		fmt.Fprintf(out, "Billed:       $%.2f\n", summary.TotalBilled)
		fmt.Fprintf(out, "Collected:    $%.2f\n", summary.Collected)
		fmt.Fprintf(out, "Outstanding:  $%.2f\n", summary.Outstanding)
		fmt.Fprintf(out, "Past due:     $%.2f\n", summary.PastDue)
		fmt.Fprintln(out, strings.Repeat("-", 40))
		for _, s := range domain.InvoiceStatuses {
			if n := summary.ByStatus[s]; n > 0 {
				fmt.Fprintf(out, "%-16s %d\n", s, n)
			}
		}

		if year == 0 {
			year = time.Now().Year()
		}
		billed, err := appInstance.ReportService.GetBilledByMonth(ctx, year)
		if err != nil {
			return fmt.Errorf("failed to load monthly totals: %w", err)
		}

		fmt.Fprintln(out, strings.Repeat("-", 40))
		fmt.Fprintf(out, "Billed in %d\n", year)
		for m := time.January; m <= time.December; m++ {
			fmt.Fprintf(out, "  %-10s $%10.2f\n", m, billed[m])
		}
		fmt.Fprintln(out, strings.Repeat("=", 40))
		return nil
	},
}

func init() {
	reportCmd.Flags().StringP("query", "q", "", "Search text")
	reportCmd.Flags().String("status", "", "Filter by status")
	reportCmd.Flags().String("from", "", "Issued on or after this date")
	reportCmd.Flags().String("to", "", "Issued on or before this date")
	reportCmd.Flags().Int("year", 0, "Year for the monthly breakdown (defaults to this year)")
}
