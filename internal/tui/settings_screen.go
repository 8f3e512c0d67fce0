package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/andy/invoicedesk/internal/app"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type settingsMode int

const (
	settingsModeView settingsMode = iota
	settingsModeEdit
)

// settings form field indices
const (
	settingsFieldOutputDir = iota
	settingsFieldPageSize
	settingsFieldDebounce
	settingsFieldResetPage
	settingsFieldLogLevel
	settingsFieldCount
)

var settingsFieldLabels = []string{
	"Export Directory:",
	"Default Page Size:",
	"Search Debounce (ms):",
	"Reset Page On Filter Change (y/n):",
	"Log Level:",
}

type settingsSavedMsg struct {
	err error
}

// SettingsModel manages the settings screen
type SettingsModel struct {
	app        *app.App
	mode       settingsMode
	fields     []textinput.Model
	fieldFocus int
	err        error
	statusMsg  string
}

// NewSettingsModel creates a new settings screen
func NewSettingsModel(a *app.App) tea.Model {
	return &SettingsModel{
		app:  a,
		mode: settingsModeView,
	}
}

// IsCapturingInput returns true when the edit form is active
func (m *SettingsModel) IsCapturingInput() bool {
	return m.mode == settingsModeEdit
}

func (m *SettingsModel) Init() tea.Cmd {
	return nil
}

func (m *SettingsModel) initForm() {
	cfg := m.app.Config
	values := []string{
		cfg.Export.OutputDir,
		strconv.Itoa(cfg.List.DefaultPageSize),
		strconv.Itoa(cfg.List.DebounceMS),
		yesNo(cfg.List.ResetPageOnFilterChange),
		cfg.Logging.Level,
	}
	placeholders := []string{"/path/to/invoices", "10", "250", "y", "info"}

	m.fields = make([]textinput.Model, settingsFieldCount)
	for i := range m.fields {
		f := textinput.New()
		f.Placeholder = placeholders[i]
		f.CharLimit = 256
		f.Width = 60
		f.SetValue(values[i])
		m.fields[i] = f
	}
	m.fields[settingsFieldPageSize].Width = 10
	m.fields[settingsFieldDebounce].Width = 10
	m.fields[settingsFieldResetPage].Width = 5
	m.fields[settingsFieldLogLevel].Width = 10

	m.fieldFocus = settingsFieldOutputDir
	m.fields[settingsFieldOutputDir].Focus()
}

func (m *SettingsModel) saveSettings() tea.Cmd {
	return func() tea.Msg {
		pageSize, err := strconv.Atoi(strings.TrimSpace(m.fields[settingsFieldPageSize].Value()))
		if err != nil {
			return settingsSavedMsg{err: fmt.Errorf("page size must be a number")}
		}
		debounce, err := strconv.Atoi(strings.TrimSpace(m.fields[settingsFieldDebounce].Value()))
		if err != nil {
			return settingsSavedMsg{err: fmt.Errorf("debounce must be a number of milliseconds")}
		}
		reset, err := parseYesNo(m.fields[settingsFieldResetPage].Value())
		if err != nil {
			return settingsSavedMsg{err: err}
		}

		// validate a copy so a rejected form leaves the running config alone
		next := *m.app.Config
		next.Export.OutputDir = strings.TrimSpace(m.fields[settingsFieldOutputDir].Value())
		next.List.DefaultPageSize = pageSize
		next.List.DebounceMS = debounce
		next.List.ResetPageOnFilterChange = reset
		next.Logging.Level = strings.TrimSpace(m.fields[settingsFieldLogLevel].Value())
		if next.Export.OutputDir == "" {
			return settingsSavedMsg{err: fmt.Errorf("export directory is required")}
		}
		if err := next.Validate(); err != nil {
			return settingsSavedMsg{err: err}
		}

		prev := *m.app.Config
		*m.app.Config = next
		if err := m.app.SaveConfig(); err != nil {
			*m.app.Config = prev
			return settingsSavedMsg{err: fmt.Errorf("failed to save config: %w", err)}
		}

		return settingsSavedMsg{}
	}
}

func yesNo(b bool) string {
	if b {
		return "y"
	}
	return "n"
}

func parseYesNo(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "true":
		return true, nil
	case "n", "no", "false":
		return false, nil
	}
	return false, fmt.Errorf("reset page must be y or n")
}

func (m *SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.mode == settingsModeEdit {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.err = nil
		switch {
		case msg.String() == "enter":
			m.mode = settingsModeEdit
			m.statusMsg = ""
			m.initForm()
			return m, m.fields[m.fieldFocus].Focus()
		}
	}

	return m, nil
}

func (m *SettingsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case settingsSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.mode = settingsModeView
		m.statusMsg = "Settings saved. List settings apply the next time invoicedesk starts."
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.mode = settingsModeView
			m.err = nil
			return m, nil

		case "tab", "down":
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus + 1) % settingsFieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case "shift+tab", "up":
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus - 1 + settingsFieldCount) % settingsFieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case "enter":
			if m.fieldFocus == settingsFieldCount-1 {
				return m, m.saveSettings()
			}
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus++
			return m, m.fields[m.fieldFocus].Focus()

		case "ctrl+s":
			return m, m.saveSettings()
		}
	}

	// Update the focused text input
	var cmd tea.Cmd
	m.fields[m.fieldFocus], cmd = m.fields[m.fieldFocus].Update(msg)
	return m, cmd
}

func (m *SettingsModel) View() string {
	if m.mode == settingsModeEdit {
		return m.viewForm()
	}
	return m.viewSettings()
}

func (m *SettingsModel) viewSettings() string {
	var s string
	s += titleStyle.Render("Settings") + "\n\n"

	if m.statusMsg != "" {
		s += lipgloss.NewStyle().Foreground(successColor).
			Render("  "+m.statusMsg) + "\n\n"
	}

	cfg := m.app.Config

	labelStyle := lipgloss.NewStyle().Bold(true).Width(24)
	valueStyle := lipgloss.NewStyle().Foreground(primaryColor)
	row := func(label, value string) string {
		return fmt.Sprintf("  %s %s\n", labelStyle.Render(label), valueStyle.Render(value))
	}

	s += subtitleStyle.Render("  Invoice List") + "\n\n"
	s += row("Default Page Size:", strconv.Itoa(cfg.List.DefaultPageSize))
	s += row("Search Debounce:", fmt.Sprintf("%dms", cfg.List.DebounceMS))
	s += row("Reset Page on Filter:", yesNo(cfg.List.ResetPageOnFilterChange))

	s += "\n" + subtitleStyle.Render("  Storage") + "\n\n"
	s += row("Database:", cfg.Database.Path)
	s += row("Export Directory:", cfg.Export.OutputDir)

	s += "\n" + subtitleStyle.Render("  Logging") + "\n\n"
	s += row("Level:", cfg.Logging.Level)
	s += row("Format:", cfg.Logging.Format)
	s += row("File:", cfg.Logging.Path)

	s += "\n" + helpStyle.Render("  enter: edit settings")

	return s
}

func (m *SettingsModel) viewForm() string {
	var s string
	s += titleStyle.Render("Edit Settings") + "\n\n"

	for i, label := range settingsFieldLabels {
		indicator := "  "
		if i == m.fieldFocus {
			indicator = "> "
		}
		labelStyle := subtitleStyle
		if i == m.fieldFocus {
			labelStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
		}
		s += fmt.Sprintf("%s%s\n  %s\n\n", indicator, labelStyle.Render(label), m.fields[i].View())
	}

	if m.err != nil {
		s += lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n"
	}

	s += helpStyle.Render("  tab/shift+tab: navigate fields  ctrl+s: save  enter: next/save  esc: cancel")

	return s
}
