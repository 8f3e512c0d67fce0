package app

import (
	"context"
	"fmt"
	"syscall"

	"github.com/andy/invoicedesk/internal/config"
	"github.com/andy/invoicedesk/internal/crypto"
	"github.com/andy/invoicedesk/internal/db"
	"github.com/andy/invoicedesk/internal/logging"
	"github.com/andy/invoicedesk/internal/repository"
	"github.com/andy/invoicedesk/internal/service"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// App is the dependency injection container for all application components
type App struct {
	Config     *config.Config
	ConfigPath string
	DB         *db.DB
	Log        *zap.Logger

	InvoiceRepo    repository.InvoiceRepository
	InvoiceService service.InvoiceService
	ReportService  service.ReportService
}

// New creates a new App instance, initializing all dependencies
// It handles:
// 1. Loading config
// 2. Getting encryption key from keyring
// 3. Opening database and running migrations
// 4. Creating the repository and services
func New(ctx context.Context) (*App, error) {
	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return NewWithConfig(ctx, cfg, config.DefaultConfigPath())
}

// NewWithConfig creates an App with a provided config (useful for testing).
// cfgPath is where SaveConfig writes.
func NewWithConfig(ctx context.Context, cfg *config.Config, cfgPath string) (*App, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	log, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}

	password, first, err := crypto.Unlock(crypto.NewKeyring(), promptForPassword)
	if err != nil {
		return nil, err
	}
	if first {
		log.Info("database encryption configured")
	}

	database, err := db.OpenAndMigrate(cfg.Database.Path, password)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	invoiceRepo := repository.NewInvoiceRepo(database)
	invoiceService := service.NewInvoiceService(invoiceRepo, cfg.Export.OutputDir, log)
	reportService := service.NewReportService(invoiceRepo)

	log.Debug("app ready", zap.String("db", cfg.Database.Path))

	return &App{
		Config:         cfg,
		ConfigPath:     cfgPath,
		DB:             database,
		Log:            log,
		InvoiceRepo:    invoiceRepo,
		InvoiceService: invoiceService,
		ReportService:  reportService,
	}, nil
}

// Close cleanly shuts down the application
func (a *App) Close() error {
	if a.Log != nil {
		_ = a.Log.Sync()
	}
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}

// promptForPassword prompts user for a new database password (first run)
// This should be called when keyring has no stored key
func promptForPassword() (string, error) {
	fmt.Println("Setting up database encryption for the first time...")
	fmt.Println()
	fmt.Println("Your invoices will be encrypted with a password.")
	fmt.Println("This password will be stored securely in your system keyring.")
	fmt.Println()
	fmt.Print("Enter a password for database encryption: ")

	// Read password securely (no echo)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	if len(password) == 0 {
		return "", fmt.Errorf("password cannot be empty")
	}

	fmt.Print("Confirm password: ")
	confirm, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read confirmation: %w", err)
	}

	if string(password) != string(confirm) {
		return "", fmt.Errorf("passwords do not match")
	}

	fmt.Println()
	fmt.Println("✓ Database encryption configured successfully")
	fmt.Println()

	return string(password), nil
}

// SaveConfig saves the current configuration to disk
func (a *App) SaveConfig() error {
	if err := a.Config.Validate(); err != nil {
		return err
	}
	path := a.ConfigPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	return a.Config.Save(path)
}
