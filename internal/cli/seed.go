package cli

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create demo invoices",
	Long: `Create demo invoices spread over the last year, with a mix of statuses,
balances and client colors. Seeding is deterministic for a given database size.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")
		if count <= 0 {
			return fmt.Errorf("--count must be positive")
		}

		out := cmd.OutOrStdout()
		bar := progressbar.NewOptions(count,
			progressbar.OptionSetWriter(out),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetDescription("[cyan]Seeding invoices...[reset]"),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
			progressbar.OptionOnCompletion(func() {
				fmt.Fprintln(out)
			}),
		)

		n, err := appInstance.InvoiceService.Seed(cmd.Context(), count, func(int) {
			_ = bar.Add(1)
		})
		if err != nil {
			return fmt.Errorf("seeded %d of %d invoices: %w", n, count, err)
		}

		fmt.Fprintf(out, "✓ Created %d demo invoices\n", n)
		return nil
	},
}

func init() {
	seedCmd.Flags().IntP("count", "n", 50, "Number of invoices to create")
}
