package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every invoice in the database",
	Long: `Delete every invoice and its download history. The database, its
encryption key and your config are kept.

Examples:
  invoicedesk reset         # asks first
  invoicedesk reset --yes   # no prompt`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !confirmPrompt(cmd, "This will delete ALL invoices. Continue?") {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}

		n, err := appInstance.InvoiceService.DeleteAll(context.Background())
		if err != nil {
			return fmt.Errorf("failed to delete invoices: %w", err)
		}

		fmt.Fprintf(out, "All %d invoice(s) have been deleted.\n", n)
		return nil
	},
}

func confirmPrompt(cmd *cobra.Command, message string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", message)
	reader := bufio.NewReader(cmd.InOrStdin())
	input, err := reader.ReadString('\n')
	if err != nil && input == "" {
		return false
	}
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
