package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/MrJamesThe3rd/agencyops/internal/forecast"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}

			return cellStyle
		}).
		Headers(headers...)
}

// renderTables draws the monthly ledger, the per-agency totals and the diagnostics count.
func renderTables(res *forecast.Result) string {
	var b strings.Builder

	ledger := newTable("Month", "Quota", "Retainers", "Projects", "Prospects", "Invoices",
		"Revenue", "Expenses", "Payroll", "Net")

	for _, m := range res.Months {
		ledger.Row(m.Month,
			forecast.Display(m.Quota),
			forecast.Display(m.Retainers),
			forecast.Display(m.Projects),
			forecast.Display(m.Prospects),
			forecast.Display(m.Invoices),
			forecast.Display(m.Revenue),
			forecast.Display(m.RecurringExpenses),
			forecast.Display(m.Payroll),
			forecast.Display(m.Net),
		)
	}

	fmt.Fprintf(&b, "Forecast from %s, blended rate %s\n", res.Today.Format("2006-01-02"), forecast.Display(res.BlendedRate))
	b.WriteString(ledger.Render())
	b.WriteString("\n")

	keys := res.Window.Keys()

	agencies := newTable(append(append([]string{"Agency"}, keys...), "Total")...)

	for _, agency := range res.Breakdown.Agencies() {
		row := []string{string(agency)}

		for _, key := range keys {
			cell := res.Breakdown[agency][key]

			value := forecast.Display(cell.Total())
			if cell.Blocked {
				value += " *"
			}

			row = append(row, value)
		}

		row = append(row, forecast.Display(res.TotalByAgency[agency]))
		agencies.Row(row...)
	}

	for _, name := range res.Prospects.Names() {
		row := []string{"prospect: " + name}

		for _, key := range keys {
			row = append(row, forecast.Display(res.Prospects[name][key]))
		}

		row = append(row, forecast.Display(res.ProjectByProspect[name]))
		agencies.Row(row...)
	}

	b.WriteString(agencies.Render())
	b.WriteString("\n* billing month: projected revenue suppressed\n")

	s := res.Summary
	fmt.Fprintf(&b, "\nRevenue %s  Expenses %s  Net %s\n",
		forecast.Display(s.TotalRevenue), forecast.Display(s.TotalExpenses), forecast.Display(s.NetProjection))

	if n := len(res.Diagnostics); n > 0 {
		fmt.Fprintf(&b, "%d diagnostics (run with --verbose or see the log above)\n", n)
	}

	return b.String()
}
