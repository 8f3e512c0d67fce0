package cli

import (
	"context"
	"fmt"

	"github.com/andy/invoicedesk/internal/app"
	"github.com/andy/invoicedesk/internal/config"
	"github.com/spf13/cobra"
)

var (
	appInstance *app.App
	ownsApp     bool

	cfgFile string
	v       = config.NewViper()
)

// skipAppAnnotation marks commands that must run without opening the database
const skipAppAnnotation = "invoicedesk/skip-app"

var rootCmd = &cobra.Command{
	Use:   "invoicedesk",
	Short: "A terminal invoice desk",
	Long: `Invoicedesk keeps your invoices in an encrypted local database and lets you
search, filter, page through and act on them.

By default, running invoicedesk without arguments launches the interactive TUI.
Use subcommands for CLI operations.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if !needsApp(cmd) {
			return nil
		}
		return initApp(cmd)
	},
	RunE: launchTUI,
}

// ExecuteContext runs the root command with ctx, which commands see as cmd.Context()
func ExecuteContext(ctx context.Context) error {
	defer closeApp()
	return rootCmd.ExecuteContext(ctx)
}

func closeApp() {
	if ownsApp && appInstance != nil {
		_ = appInstance.Close()
	}
	appInstance = nil
	ownsApp = false
}

// SetApp sets the app instance for commands to use. Commands will not open
// their own when one is set.
func SetApp(a *app.App) {
	appInstance = a
	ownsApp = false
}

// needsApp reports whether cmd works on the database. Help, completion and
// commands annotated with skipAppAnnotation do not.
func needsApp(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[skipAppAnnotation] == "true" {
			return false
		}
		switch c.Name() {
		case "help", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd, "completion":
			return false
		}
	}
	return true
}

// initApp loads config from file, environment and flags, then opens the app
func initApp(cmd *cobra.Command) error {
	if appInstance != nil {
		return nil
	}

	path := cfgFile
	if path == "" {
		path = config.DefaultConfigPath()
	}
	cfg, err := config.LoadWith(v, path)
	if err != nil {
		return err
	}

	a, err := app.NewWithConfig(cmd.Context(), cfg, path)
	if err != nil {
		return fmt.Errorf("failed to initialize app: %w", err)
	}
	appInstance = a
	ownsApp = true
	return nil
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default ~/.config/invoicedesk/config.yaml)")
	flags.String("db", "", "path to the encrypted database")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("log-format", "", "log format (console, json)")

	_ = v.BindPFlag("database.path", flags.Lookup("db"))
	_ = v.BindPFlag("logging.level", flags.Lookup("log-level"))
	_ = v.BindPFlag("logging.format", flags.Lookup("log-format"))

	rootCmd.AddCommand(invoicesCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(configCmd)
}
