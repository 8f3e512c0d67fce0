package tui

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/andy/invoicedesk/internal/app"
	"github.com/andy/invoicedesk/internal/domain"
	"github.com/andy/invoicedesk/internal/listview"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type invoiceViewMode int

const (
	invoiceViewList          invoiceViewMode = iota
	invoiceViewDetail                        // Viewing a single invoice
	invoiceViewEdit                          // Editing a single invoice
	invoiceViewConfirmDelete                 // Waiting for y/n
)

// filterFocus is the list widget receiving keys
type filterFocus int

const (
	focusGrid filterFocus = iota
	focusSearch
	focusDateFrom
	focusDateTo
)

// edit form field indices
const (
	editFieldName = iota
	editFieldEmail
	editFieldTotal
	editFieldBalance
	editFieldDue
	editFieldStatus
	editFieldCount
)

var editFieldLabels = []string{"Client Name:", "Company Email:", "Total:", "Balance:", "Due Date:", "Status:"}

// InvoicesModel is the invoice list: filters, two tabbed grids over one
// dataset, and per-row actions
type InvoicesModel struct {
	app    *app.App
	engine *listview.Engine
	mode   invoiceViewMode
	focus  filterFocus

	search   textinput.Model
	dateFrom textinput.Model
	dateTo   textinput.Model
	table    table.Model
	spinner  spinner.Model

	detail        *domain.InvoiceRecord
	editing       *domain.InvoiceRecord
	editFields    []textinput.Model
	editFocus     int
	pendingDelete []int64

	err       error
	statusMsg string
}

// NewInvoicesModel creates a new invoices screen model
func NewInvoicesModel(a *app.App) tea.Model {
	cfg := a.Config.List
	engine := listview.NewEngine(listview.Options{
		PageSize:                cfg.DefaultPageSize,
		Debounce:                cfg.Debounce(),
		ResetPageOnFilterChange: cfg.ResetPageOnFilterChange,
		Logger:                  a.Log,
	})

	search := textinput.New()
	search.Placeholder = "Search invoice"
	search.CharLimit = 64
	search.Width = 30

	dateFrom := textinput.New()
	dateFrom.Placeholder = "YYYY-MM-DD"
	dateFrom.CharLimit = 10
	dateFrom.Width = 12

	dateTo := textinput.New()
	dateTo.Placeholder = "YYYY-MM-DD"
	dateTo.CharLimit = 10
	dateTo.Width = 12

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: " ", Width: 1},
			{Title: "#", Width: 6},
			{Title: "Client", Width: 28},
			{Title: "Total", Width: 12},
			{Title: "Issued", Width: 12},
			{Title: "Balance", Width: 12},
			{Title: "Status", Width: 18},
		}),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(borderColor).
		BorderBottom(true).
		Bold(false)
	s.Selected = selectedStyle
	t.SetStyles(s)
	// the grid only moves the cursor; every other key belongs to the screen
	t.KeyMap = table.KeyMap{
		LineUp:     DefaultKeyMap.Up,
		LineDown:   DefaultKeyMap.Down,
		GotoTop:    key.NewBinding(key.WithKeys("home", "g")),
		GotoBottom: key.NewBinding(key.WithKeys("end", "G")),
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(accentColor)

	return &InvoicesModel{
		app:      a,
		engine:   engine,
		mode:     invoiceViewList,
		search:   search,
		dateFrom: dateFrom,
		dateTo:   dateTo,
		table:    t,
		spinner:  sp,
	}
}

// IsCapturingInput returns true while a text input or the edit form has focus
func (m *InvoicesModel) IsCapturingInput() bool {
	return m.focus != focusGrid || m.mode == invoiceViewEdit
}

func (m *InvoicesModel) Init() tea.Cmd {
	return tea.Batch(m.dispatch(m.engine.Start()), m.spinner.Tick)
}

// dispatch sends req now, or after its debounce delay
func (m *InvoicesModel) dispatch(req listview.Request) tea.Cmd {
	if req.Delay > 0 {
		return tea.Tick(req.Delay, func(time.Time) tea.Msg {
			return dispatchMsg{req: req}
		})
	}
	return m.fetch(req)
}

func (m *InvoicesModel) fetch(req listview.Request) tea.Cmd {
	src := m.app.InvoiceService
	return func() tea.Msg {
		return fetchResultMsg{res: listview.Fetch(context.Background(), src, req)}
	}
}

func (m *InvoicesModel) loadDetail(id int64) tea.Cmd {
	svc := m.app.InvoiceService
	return func() tea.Msg {
		inv, err := svc.GetInvoice(context.Background(), id)
		return invoiceDetailMsg{invoice: inv, err: err}
	}
}

func (m *InvoicesModel) deleteInvoices(ids []int64) tea.Cmd {
	svc := m.app.InvoiceService
	return func() tea.Msg {
		ctx := context.Background()
		for _, id := range ids {
			if err := svc.Delete(ctx, id); err != nil {
				return actionDoneMsg{err: err, refetch: true}
			}
		}
		if len(ids) == 1 {
			return actionDoneMsg{status: fmt.Sprintf("Invoice #%d deleted", ids[0]), refetch: true}
		}
		return actionDoneMsg{status: fmt.Sprintf("%d invoices deleted", len(ids)), refetch: true}
	}
}

func (m *InvoicesModel) duplicateInvoice(id int64) tea.Cmd {
	svc := m.app.InvoiceService
	return func() tea.Msg {
		dup, err := svc.Duplicate(context.Background(), id)
		if err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{status: fmt.Sprintf("Invoice #%d duplicated as #%d", id, dup.ID), refetch: true}
	}
}

func (m *InvoicesModel) downloadInvoice(id int64) tea.Cmd {
	svc := m.app.InvoiceService
	return func() tea.Msg {
		path, err := svc.Download(context.Background(), id)
		if err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{status: fmt.Sprintf("Invoice #%d saved to %s", id, path), refetch: true}
	}
}

func (m *InvoicesModel) saveEdit() tea.Cmd {
	inv, err := m.editedInvoice()
	if err != nil {
		m.err = err
		return nil
	}
	svc := m.app.InvoiceService
	return func() tea.Msg {
		if err := svc.Update(context.Background(), inv); err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{status: fmt.Sprintf("Invoice #%d saved", inv.ID), refetch: true}
	}
}

func (m *InvoicesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshDataMsg:
		return m, m.dispatch(m.engine.Refresh())

	case dispatchMsg:
		// a newer request superseded this one while it waited
		if !m.engine.IsCurrent(msg.req.Seq) {
			return m, nil
		}
		return m, m.fetch(msg.req)

	case fetchResultMsg:
		if m.engine.Apply(msg.res) {
			m.syncTable()
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case invoiceDetailMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.detail = msg.invoice
		m.mode = invoiceViewDetail
		return m, nil

	case actionDoneMsg:
		m.err = msg.err
		m.statusMsg = msg.status
		if msg.err == nil && m.mode == invoiceViewEdit {
			m.mode = invoiceViewList
			m.editing = nil
		}
		if msg.refetch {
			return m, m.dispatch(m.engine.Refresh())
		}
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case invoiceViewDetail:
			return m.updateDetail(msg)
		case invoiceViewEdit:
			return m.updateEdit(msg)
		case invoiceViewConfirmDelete:
			return m.updateConfirmDelete(msg)
		}
		switch m.focus {
		case focusSearch:
			return m.updateSearch(msg)
		case focusDateFrom, focusDateTo:
			return m.updateDates(msg)
		}
		return m.updateList(msg)
	}

	// Forward all non-key messages to the focused input (for cursor blink, etc.)
	return m, m.updateFocusedInput(msg)
}

func (m *InvoicesModel) updateFocusedInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch {
	case m.mode == invoiceViewEdit:
		m.editFields[m.editFocus], cmd = m.editFields[m.editFocus].Update(msg)
	case m.focus == focusSearch:
		m.search, cmd = m.search.Update(msg)
	case m.focus == focusDateFrom:
		m.dateFrom, cmd = m.dateFrom.Update(msg)
	case m.focus == focusDateTo:
		m.dateTo, cmd = m.dateTo.Update(msg)
	}
	return cmd
}

func (m *InvoicesModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil

	tabs := m.engine.Tabs()
	active := tabs.Active()
	pages := tabs.Pagination(active)

	switch {
	case key.Matches(msg, DefaultKeyMap.Search):
		m.focus = focusSearch
		m.table.Blur()
		return m, m.search.Focus()

	case key.Matches(msg, DefaultKeyMap.Status):
		req := m.engine.SetStatus(nextStatus(m.engine.Criteria().Status))
		m.syncTable()
		return m, m.dispatch(req)

	case key.Matches(msg, DefaultKeyMap.Dates):
		m.focus = focusDateFrom
		m.table.Blur()
		return m, m.dateFrom.Focus()

	case key.Matches(msg, DefaultKeyMap.ClearDates):
		m.dateFrom.SetValue("")
		m.dateTo.SetValue("")
		return m, m.pickDates(nil, nil)

	case key.Matches(msg, DefaultKeyMap.NextTab):
		tabs.Next()
		m.syncTable()

	case key.Matches(msg, DefaultKeyMap.PrevPage):
		if p := pages.State().Page; p > 0 {
			_ = pages.SetPage(p - 1)
			m.syncTable()
		}

	case key.Matches(msg, DefaultKeyMap.NextPage):
		if p := pages.State().Page; p < pages.PageCount(len(m.engine.Records()))-1 {
			_ = pages.SetPage(p + 1)
			m.syncTable()
		}

	case key.Matches(msg, DefaultKeyMap.PageSize):
		_ = pages.SetPageSize(listview.NextPageSize(pages.State().PageSize))
		m.syncTable()

	case key.Matches(msg, DefaultKeyMap.Toggle):
		if r, ok := m.cursorRecord(); ok {
			tabs.Selection(active).Toggle(r.ID)
			m.syncTable()
		}

	case key.Matches(msg, DefaultKeyMap.SelectAll):
		m.togglePageSelection()
		m.syncTable()

	case key.Matches(msg, DefaultKeyMap.Refresh):
		m.statusMsg = ""
		return m, m.dispatch(m.engine.Refresh())

	case key.Matches(msg, DefaultKeyMap.Select):
		if r, ok := m.cursorRecord(); ok {
			return m, m.loadDetail(r.ID)
		}

	case key.Matches(msg, DefaultKeyMap.Edit):
		if r, ok := m.cursorRecord(); ok {
			return m, m.openEdit(&r)
		}

	case key.Matches(msg, DefaultKeyMap.Delete):
		ids := tabs.Selection(active).Current()
		if len(ids) == 0 {
			if r, ok := m.cursorRecord(); ok {
				ids = []int64{r.ID}
			}
		}
		if len(ids) > 0 {
			m.pendingDelete = ids
			m.mode = invoiceViewConfirmDelete
		}

	case key.Matches(msg, DefaultKeyMap.Duplicate):
		if r, ok := m.cursorRecord(); ok {
			return m, m.duplicateInvoice(r.ID)
		}

	case key.Matches(msg, DefaultKeyMap.Download):
		if r, ok := m.cursorRecord(); ok {
			m.statusMsg = fmt.Sprintf("Rendering invoice #%d...", r.ID)
			return m, m.downloadInvoice(r.ID)
		}

	default:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *InvoicesModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.focus = focusGrid
		m.search.Blur()
		m.table.Focus()
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if v := m.search.Value(); v != before {
		req := m.engine.SetQuery(v)
		m.syncTable()
		return m, tea.Batch(cmd, m.dispatch(req))
	}
	return m, cmd
}

func (m *InvoicesModel) updateDates(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.blurDates()
		m.syncDateInputs()
		return m, nil

	case "tab", "shift+tab":
		if m.focus == focusDateFrom {
			m.dateFrom.Blur()
			m.focus = focusDateTo
			return m, m.dateTo.Focus()
		}
		m.dateTo.Blur()
		m.focus = focusDateFrom
		return m, m.dateFrom.Focus()

	case "enter":
		start, err := parseDay(strings.TrimSpace(m.dateFrom.Value()))
		if err != nil {
			m.err = err
			return m, nil
		}
		end, err := parseDay(strings.TrimSpace(m.dateTo.Value()))
		if err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		m.blurDates()
		return m, m.pickDates(start, end)
	}

	var cmd tea.Cmd
	if m.focus == focusDateFrom {
		m.dateFrom, cmd = m.dateFrom.Update(msg)
	} else {
		m.dateTo, cmd = m.dateTo.Update(msg)
	}
	return m, cmd
}

// pickDates feeds the picker and fetches when the committed range moved
func (m *InvoicesModel) pickDates(start, end *time.Time) tea.Cmd {
	req, ok := m.engine.PickDates(start, end)
	m.syncDateInputs()
	if !ok {
		return nil
	}
	m.syncTable()
	return m.dispatch(req)
}

func (m *InvoicesModel) blurDates() {
	m.dateFrom.Blur()
	m.dateTo.Blur()
	m.focus = focusGrid
	m.table.Focus()
}

// syncDateInputs shows the picker's normalized endpoints
func (m *InvoicesModel) syncDateInputs() {
	start, end := m.engine.Dates().Pending()
	m.dateFrom.SetValue(dayValue(start))
	m.dateTo.SetValue(dayValue(end))
}

func dayValue(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(domain.DateLayout)
}

func (m *InvoicesModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.detail == nil {
		m.mode = invoiceViewList
		return m, nil
	}
	id := m.detail.ID

	switch {
	case key.Matches(msg, DefaultKeyMap.Back):
		m.mode = invoiceViewList
		m.detail = nil
	case key.Matches(msg, DefaultKeyMap.Edit):
		return m, m.openEdit(m.detail)
	case key.Matches(msg, DefaultKeyMap.Delete):
		m.pendingDelete = []int64{id}
		m.mode = invoiceViewConfirmDelete
	case key.Matches(msg, DefaultKeyMap.Duplicate):
		m.mode = invoiceViewList
		return m, m.duplicateInvoice(id)
	case key.Matches(msg, DefaultKeyMap.Download):
		m.mode = invoiceViewList
		return m, m.downloadInvoice(id)
	}
	return m, nil
}

func (m *InvoicesModel) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		ids := m.pendingDelete
		m.pendingDelete = nil
		m.mode = invoiceViewList
		m.detail = nil
		return m, m.deleteInvoices(ids)
	case "n", "N", "esc":
		m.pendingDelete = nil
		m.mode = invoiceViewList
	}
	return m, nil
}

func (m *InvoicesModel) openEdit(r *domain.InvoiceRecord) tea.Cmd {
	m.editing = r.Copy()
	m.err = nil
	m.statusMsg = ""

	values := []string{
		r.Name,
		r.CompanyEmail,
		strconv.FormatFloat(r.Total, 'f', 2, 64),
		strconv.FormatFloat(r.Balance, 'f', 2, 64),
		dayValue(&r.DueDate),
		string(r.InvoiceStatus),
	}
	if r.DueDate.IsZero() {
		values[editFieldDue] = ""
	}

	m.editFields = make([]textinput.Model, editFieldCount)
	for i := range m.editFields {
		f := textinput.New()
		f.CharLimit = 128
		f.Width = 40
		f.SetValue(values[i])
		m.editFields[i] = f
	}
	m.editFields[editFieldDue].Placeholder = "YYYY-MM-DD"
	m.editFields[editFieldStatus].Placeholder = "Sent, Paid, Draft, Partial Payment, Past Due, Downloaded"

	m.editFocus = editFieldName
	m.mode = invoiceViewEdit
	return m.editFields[m.editFocus].Focus()
}

// editedInvoice builds the invoice from the form, or explains what is wrong
func (m *InvoicesModel) editedInvoice() (*domain.InvoiceRecord, error) {
	inv := m.editing.Copy()
	inv.Name = strings.TrimSpace(m.editFields[editFieldName].Value())
	inv.CompanyEmail = strings.TrimSpace(m.editFields[editFieldEmail].Value())

	total, err := strconv.ParseFloat(strings.TrimSpace(m.editFields[editFieldTotal].Value()), 64)
	if err != nil {
		return nil, fmt.Errorf("total must be a number")
	}
	balance, err := strconv.ParseFloat(strings.TrimSpace(m.editFields[editFieldBalance].Value()), 64)
	if err != nil {
		return nil, fmt.Errorf("balance must be a number")
	}
	inv.Total = total
	inv.Balance = balance

	due, err := parseDay(strings.TrimSpace(m.editFields[editFieldDue].Value()))
	if err != nil {
		return nil, err
	}
	inv.DueDate = time.Time{}
	if due != nil {
		inv.DueDate = *due
	}

	status, err := domain.ParseInvoiceStatus(m.editFields[editFieldStatus].Value())
	if err != nil {
		return nil, err
	}
	inv.InvoiceStatus = status

	if err := inv.Validate(); err != nil {
		return nil, err
	}
	return inv, nil
}

func (m *InvoicesModel) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = invoiceViewList
		m.editing = nil
		m.err = nil
		return m, nil

	case "tab", "down":
		m.editFields[m.editFocus].Blur()
		m.editFocus = (m.editFocus + 1) % editFieldCount
		return m, m.editFields[m.editFocus].Focus()

	case "shift+tab", "up":
		m.editFields[m.editFocus].Blur()
		m.editFocus = (m.editFocus - 1 + editFieldCount) % editFieldCount
		return m, m.editFields[m.editFocus].Focus()

	case "enter":
		if m.editFocus == editFieldCount-1 {
			return m, m.saveEdit()
		}
		m.editFields[m.editFocus].Blur()
		m.editFocus++
		return m, m.editFields[m.editFocus].Focus()

	case "ctrl+s":
		return m, m.saveEdit()
	}

	var cmd tea.Cmd
	m.editFields[m.editFocus], cmd = m.editFields[m.editFocus].Update(msg)
	return m, cmd
}

// cursorRecord returns the row under the grid cursor on the active tab
func (m *InvoicesModel) cursorRecord() (domain.InvoiceRecord, bool) {
	rows := m.engine.PageRows(m.engine.Tabs().Active())
	i := m.table.Cursor()
	if i < 0 || i >= len(rows) {
		return domain.InvoiceRecord{}, false
	}
	return rows[i], true
}

// togglePageSelection selects every row on the page, or clears them if all are selected
func (m *InvoicesModel) togglePageSelection() {
	active := m.engine.Tabs().Active()
	sel := m.engine.Tabs().Selection(active)
	rows := m.engine.PageRows(active)

	allSelected := len(rows) > 0
	for _, r := range rows {
		if !sel.Contains(r.ID) {
			allSelected = false
			break
		}
	}

	ids := sel.Current()
	if allSelected {
		ids = slices.DeleteFunc(ids, func(id int64) bool {
			return slices.ContainsFunc(rows, func(r domain.InvoiceRecord) bool { return r.ID == id })
		})
	} else {
		for _, r := range rows {
			ids = append(ids, r.ID)
		}
	}
	sel.Set(ids)
}

// syncTable rebuilds the grid rows for the active tab's page
func (m *InvoicesModel) syncTable() {
	active := m.engine.Tabs().Active()
	sel := m.engine.Tabs().Selection(active)
	records := m.engine.PageRows(active)

	rows := make([]table.Row, len(records))
	for i, r := range records {
		rows[i] = invoiceRow(r, sel.Contains(r.ID))
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

func invoiceRow(r domain.InvoiceRecord, selected bool) table.Row {
	mark := " "
	if selected {
		mark = "●"
	}

	client := listview.ClientCellFor(r)
	who := client.Name
	if client.Initials != "" {
		who = fmt.Sprintf("[%s] %s", client.Initials, client.Name)
	}

	balance := formatMoney(r.Balance)
	if listview.BalanceCellFor(r).Paid {
		balance = "✓ Paid"
	}

	status := listview.StatusCellFor(r)
	return table.Row{
		mark,
		fmt.Sprintf("#%d", r.ID),
		truncateStr(who, 28),
		formatMoney(r.Total),
		formatDay(r.IssuedDate),
		balance,
		iconGlyph(status.Presentation.Icon) + " " + status.Label,
	}
}

func nextStatus(cur domain.StatusFilter) domain.StatusFilter {
	i := slices.Index(domain.StatusFilters, cur)
	return domain.StatusFilters[(i+1)%len(domain.StatusFilters)]
}

func (m *InvoicesModel) View() string {
	switch m.mode {
	case invoiceViewDetail:
		return m.viewDetail()
	case invoiceViewEdit:
		return m.viewEdit()
	default:
		return m.viewList()
	}
}

func (m *InvoicesModel) viewList() string {
	var s string
	s += titleStyle.Render("Invoices") + "\n\n"
	s += m.viewFilters() + "\n\n"
	s += m.viewTabs() + "\n"

	status, fetchErr := m.engine.Status()
	records := m.engine.Records()
	switch {
	case status == listview.DatasetUnavailable:
		s += lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("  Could not load invoices: %v", fetchErr)) + "\n"
		s += subtitleStyle.Render("  Press r to try again.") + "\n"
	case len(records) == 0 && !m.engine.Loading():
		s += subtitleStyle.Render("  No invoices match the current filters.") + "\n"
	default:
		s += m.table.View() + "\n"
	}

	active := m.engine.Tabs().Active()
	page := m.engine.Tabs().Pagination(active).State()
	pageCount := m.engine.Tabs().Pagination(active).PageCount(len(records))
	info := fmt.Sprintf("  Page %d of %d · %d per page · %d selected",
		page.Page+1, pageCount, page.PageSize, m.engine.Tabs().Selection(active).Len())
	if m.engine.Loading() {
		info += "  " + m.spinner.View() + " Loading..."
	}
	s += subtitleStyle.Render(info) + "\n"

	if m.mode == invoiceViewConfirmDelete {
		prompt := fmt.Sprintf("Delete invoice #%d?", m.pendingDelete[0])
		if len(m.pendingDelete) > 1 {
			prompt = fmt.Sprintf("Delete %d selected invoices?", len(m.pendingDelete))
		}
		s += "\n" + lipgloss.NewStyle().Bold(true).Foreground(warningColor).
			Render("  "+prompt+" (y/n)") + "\n"
	}

	if m.statusMsg != "" {
		s += "\n" + lipgloss.NewStyle().Foreground(successColor).Render("  "+m.statusMsg) + "\n"
	}
	if m.err != nil {
		s += "\n" + lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("  Error: %v", m.err)) + "\n"
	}

	s += "\n" + helpStyle.Render("  /: search  s: status  f: dates  x: clear dates  tab: switch tab  h/l: page  p: page size")
	s += "\n" + helpStyle.Render("  space: select  a: select page  enter: view  e: edit  d: delete  c: duplicate  w: download  r: refresh")
	return s
}

func (m *InvoicesModel) viewFilters() string {
	label := lipgloss.NewStyle().Bold(true)
	value := lipgloss.NewStyle().Foreground(primaryColor)

	search := m.search.View()
	status := value.Render(m.engine.Criteria().Status.String())

	dates := m.engine.Dates().Display()
	if dates == "" {
		dates = subtitleStyle.Render("any")
	} else {
		dates = value.Render(dates)
	}
	if m.focus == focusDateFrom || m.focus == focusDateTo {
		dates = "from " + m.dateFrom.View() + " to " + m.dateTo.View()
	}

	return fmt.Sprintf("  %s %s   %s %s   %s %s",
		label.Render("Search:"), search,
		label.Render("Status:"), status,
		label.Render("Issued:"), dates,
	)
}

func (m *InvoicesModel) viewTabs() string {
	count := strconv.Itoa(len(m.engine.Records()))
	active := m.engine.Tabs().Active()

	parts := make([]string, 0, 2)
	for _, t := range m.engine.Tabs().Tabs() {
		if t == active {
			parts = append(parts, activeTabStyle.Render(t.Title())+" "+activeBadgeStyle.Render(count))
		} else {
			parts = append(parts, inactiveTabStyle.Render(t.Title())+" "+badgeStyle.Render(count))
		}
	}
	return "  " + strings.Join(parts, "    ")
}

func (m *InvoicesModel) viewDetail() string {
	inv := m.detail
	if inv == nil {
		return "No invoice selected"
	}
	r := *inv

	var s string
	s += titleStyle.Render(fmt.Sprintf("Invoice #%d", r.ID)) + "\n\n"

	client := listview.ClientCellFor(r)
	avatar := client.Avatar
	if avatar == "" {
		avatar = lipgloss.NewStyle().Bold(true).
			Background(tokenColor(client.Color)).Foreground(lipgloss.Color("0")).
			Padding(0, 1).Render(client.Initials)
	}
	s += fmt.Sprintf("  %s %s\n", avatar, lipgloss.NewStyle().Bold(true).Render(client.Name))
	if client.Email != "" {
		s += subtitleStyle.Render("    "+client.Email) + "\n"
	}
	s += "\n"

	s += fmt.Sprintf("  Issued:   %s\n", formatDay(r.IssuedDate))
	s += fmt.Sprintf("  Due:      %s\n", formatDay(r.DueDate))
	s += fmt.Sprintf("  Total:    %s\n", formatMoney(r.Total))

	balance := formatMoney(r.Balance)
	if listview.BalanceCellFor(r).Paid {
		balance = paidChipStyle.Render("✓ Paid")
	}
	s += fmt.Sprintf("  Balance:  %s\n", balance)

	status := listview.StatusCellFor(r)
	badge := lipgloss.NewStyle().Foreground(tokenColor(status.Presentation.Color)).
		Render(iconGlyph(status.Presentation.Icon) + " " + status.Label)
	s += fmt.Sprintf("  Status:   %s\n\n", badge)

	tip := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(mutedColor).Padding(0, 1)
	s += tip.Render(status.Tooltip) + "\n"

	if m.err != nil {
		s += "\n" + lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("  Error: %v", m.err)) + "\n"
	}

	s += "\n" + helpStyle.Render("  e: edit  d: delete  c: duplicate  w: download  esc: back to list")
	return s
}

func (m *InvoicesModel) viewEdit() string {
	var s string
	s += titleStyle.Render(fmt.Sprintf("Edit Invoice #%d", m.editing.ID)) + "\n\n"

	for i, label := range editFieldLabels {
		indicator := "  "
		labelStyle := subtitleStyle
		if i == m.editFocus {
			indicator = "> "
			labelStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
		}
		s += fmt.Sprintf("%s%s\n  %s\n\n", indicator, labelStyle.Render(label), m.editFields[i].View())
	}

	if m.err != nil {
		s += lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n"
	}

	s += helpStyle.Render("  tab/shift+tab: navigate fields  ctrl+s: save  enter: next/save  esc: cancel")
	return s
}
