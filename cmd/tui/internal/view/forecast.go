package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/agencyops/internal/forecast"
)

type forecastState int

const (
	forecastStateWindow forecastState = iota
	forecastStateLoading
	forecastStateResult
)

type forecastTab int

const (
	tabLedger forecastTab = iota
	tabAgencies
	tabDiagnostics
)

var tabNames = []string{"Monthly", "Agencies", "Diagnostics"}

type ForecastModel struct {
	CommonModel
	svc *forecast.Service

	state   forecastState
	picker  WindowPicker
	spinner spinner.Model

	req    forecast.Request
	result *forecast.Result
	err    error

	tab      forecastTab
	ledger   table.Model
	agencies table.Model
}

func NewForecastModel(svc *forecast.Service, defaultMonths, maxWindow int) ForecastModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = activeStyle

	return ForecastModel{
		svc:     svc,
		state:   forecastStateWindow,
		picker:  NewWindowPicker(defaultMonths, maxWindow),
		spinner: s,
	}
}

func (m ForecastModel) Title() string { return "Forecast" }

func (m ForecastModel) ShortHelp() string {
	switch m.state {
	case forecastStateLoading:
		return "Computing..."
	case forecastStateResult:
		return "Esc: back | Tab: switch view | r: refresh"
	}

	return "Esc: back | Enter: confirm"
}

func (m ForecastModel) Init() tea.Cmd {
	return m.picker.Init()
}

func (m ForecastModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case WindowSelectedMsg:
		m.req = msg.Request
		m.state = forecastStateLoading

		return m, tea.Batch(m.spinner.Tick, m.computeCmd())

	case forecastResultMsg:
		m.state = forecastStateResult
		m.err = msg.err
		m.result = msg.result

		if msg.err == nil {
			m.buildTables()
		}

		return m, nil

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height

		if m.result != nil {
			m.ledger.SetHeight(m.tableHeight())
			m.agencies.SetHeight(m.tableHeight())
		}

		return m, nil
	}

	switch m.state {
	case forecastStateWindow:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
			return m, Back
		}

		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)

		return m, cmd

	case forecastStateLoading:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case forecastStateResult:
		return m.updateResult(msg)
	}

	return m, nil
}

func (m ForecastModel) updateResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.state = forecastStateWindow
			return m, m.picker.Init()
		case "tab":
			m.tab = (m.tab + 1) % forecastTab(len(tabNames))
			return m, nil
		case "r":
			m.state = forecastStateLoading
			return m, tea.Batch(m.spinner.Tick, m.computeCmd())
		}
	}

	var cmd tea.Cmd

	switch m.tab {
	case tabLedger:
		m.ledger, cmd = m.ledger.Update(msg)
	case tabAgencies:
		m.agencies, cmd = m.agencies.Update(msg)
	}

	return m, cmd
}

func newTable(columns []table.Column, rows []table.Row) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func (m *ForecastModel) buildTables() {
	res := m.result

	ledgerRows := make([]table.Row, 0, len(res.Months))
	for _, mt := range res.Months {
		ledgerRows = append(ledgerRows, table.Row{
			mt.Month,
			FormatAmount(mt.Quota),
			FormatAmount(mt.Retainers),
			FormatAmount(mt.Projects),
			FormatAmount(mt.Prospects),
			FormatAmount(mt.Invoices),
			FormatAmount(mt.Revenue),
			FormatAmount(mt.TotalExpenses),
			FormatAmount(mt.Net),
		})
	}

	m.ledger = newTable([]table.Column{
		{Title: "Month", Width: 8},
		{Title: "Quota", Width: 11},
		{Title: "Retainers", Width: 11},
		{Title: "Projects", Width: 11},
		{Title: "Prospects", Width: 11},
		{Title: "Invoices", Width: 11},
		{Title: "Revenue", Width: 12},
		{Title: "Expenses", Width: 12},
		{Title: "Net", Width: 12},
	}, ledgerRows)

	keys := res.Window.Keys()

	columns := []table.Column{{Title: "Agency", Width: 20}}
	for _, k := range keys {
		columns = append(columns, table.Column{Title: k, Width: 11})
	}

	columns = append(columns, table.Column{Title: "Total", Width: 12})

	var rows []table.Row

	for _, agency := range res.Breakdown.Agencies() {
		row := table.Row{string(agency)}

		for _, k := range keys {
			cell := res.Breakdown[agency][k]

			v := FormatAmount(cell.Total())
			if cell.Blocked {
				v += "*"
			}

			row = append(row, v)
		}

		rows = append(rows, append(row, FormatAmount(res.TotalByAgency[agency])))
	}

	for _, name := range res.Prospects.Names() {
		row := table.Row{"~ " + name}
		for _, k := range keys {
			row = append(row, FormatAmount(res.Prospects[name][k]))
		}

		rows = append(rows, append(row, FormatAmount(res.ProjectByProspect[name])))
	}

	m.agencies = newTable(columns, rows)

	if m.Height > 0 {
		m.ledger.SetHeight(m.tableHeight())
		m.agencies.SetHeight(m.tableHeight())
	}
}

func (m ForecastModel) tableHeight() int {
	return max(m.Height-12, 5)
}

func (m ForecastModel) View() string {
	switch m.state {
	case forecastStateWindow:
		return lipgloss.NewStyle().Padding(1).Render(m.picker.View())

	case forecastStateLoading:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("%s Computing forecast...", m.spinner.View()),
		)

	case forecastStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ForecastModel) viewResult() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(1).Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	res := m.result

	tabs := make([]string, 0, len(tabNames))
	for i, name := range tabNames {
		if forecastTab(i) == m.tab {
			name = activeStyle.Render("[" + name + "]")
		}

		tabs = append(tabs, name)
	}

	header := fmt.Sprintf("From %s | %d months | rate %s    %s",
		FormatDate(res.Today), len(res.Window.Months), FormatAmount(res.BlendedRate), strings.Join(tabs, "  "))

	var body string

	switch m.tab {
	case tabLedger:
		body = m.ledger.View()
	case tabAgencies:
		body = m.agencies.View() + "\n" + faintStyle.Render("* billing month: projected revenue suppressed   ~ prospect")
	case tabDiagnostics:
		body = viewDiagnostics(res.Diagnostics)
	}

	s := res.Summary
	footer := fmt.Sprintf("Revenue %s   Expenses %s (payroll %s)   Net %s",
		FormatAmount(s.TotalRevenue),
		FormatAmount(s.TotalExpenses),
		FormatAmount(s.PayrollExpenses),
		activeStyle.Render(FormatAmount(s.NetProjection)),
	)

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().PaddingBottom(1).Render(header),
			lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("240")).
				Render(body),
			"",
			footer,
		),
	)
}

func viewDiagnostics(diags []forecast.Diagnostic) string {
	if len(diags) == 0 {
		return "No data-quality issues."
	}

	var b strings.Builder

	for _, d := range diags {
		level := string(d.Level)
		if d.Level == forecast.LevelCritical {
			level = errorStyle.Render(level)
		}

		fmt.Fprintf(&b, "%-8s %-22s %s\n", level, d.Code, d.Message)
	}

	return b.String()
}

type forecastResultMsg struct {
	result *forecast.Result
	err    error
}

func (m ForecastModel) computeCmd() tea.Cmd {
	req := m.req

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		res, err := m.svc.Forecast(ctx, req)

		return forecastResultMsg{result: res, err: err}
	}
}
