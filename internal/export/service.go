package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/agencyops/internal/forecast"
)

const (
	FileBreakdown = "breakdown.csv"
	FileProspects = "prospects.csv"
	FileMonths    = "months.csv"
	FileEntries   = "entries.csv"
	FileSummary   = "summary.txt"
)

// Item is one written export file.
type Item struct {
	Name     string
	FilePath string
	Rows     int
}

// Forecaster computes the forecast to export. *forecast.Service satisfies it.
type Forecaster interface {
	Forecast(ctx context.Context, req forecast.Request) (*forecast.Result, error)
}

// Service writes forecast reports to disk.
type Service struct {
	forecasts Forecaster
}

// NewService creates a new export Service.
func NewService(f Forecaster) *Service {
	return &Service{forecasts: f}
}

// Export computes the forecast for req and writes its report files to outputDir.
func (s *Service) Export(ctx context.Context, req forecast.Request, outputDir string) (*forecast.Result, []Item, error) {
	res, err := s.forecasts.Forecast(ctx, req)
	if err != nil {
		return nil, nil, fmt.Errorf("computing forecast: %w", err)
	}

	items, err := WriteFiles(res, outputDir)
	if err != nil {
		return nil, nil, err
	}

	return res, items, nil
}

// WriteFiles writes the breakdown, prospect, monthly and entry ledgers plus the text summary.
func WriteFiles(res *forecast.Result, outputDir string) ([]Item, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	tables := []struct {
		name string
		rows [][]string
	}{
		{FileBreakdown, breakdownRows(res)},
		{FileProspects, prospectRows(res)},
		{FileMonths, monthRows(res)},
		{FileEntries, entryRows(res)},
	}

	items := make([]Item, 0, len(tables)+1)

	for _, tbl := range tables {
		path := filepath.Join(outputDir, tbl.name)
		if err := writeCSV(path, tbl.rows); err != nil {
			return nil, fmt.Errorf("writing %s: %w", tbl.name, err)
		}

		items = append(items, Item{Name: tbl.name, FilePath: path, Rows: len(tbl.rows) - 1})
	}

	path := filepath.Join(outputDir, FileSummary)
	if err := os.WriteFile(path, []byte(GenerateSummary(res)), 0o644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", FileSummary, err)
	}

	items = append(items, Item{Name: FileSummary, FilePath: path})

	return items, nil
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return err
	}

	return f.Close()
}

func money(d decimal.Decimal) string {
	return forecast.Display(d)
}

func breakdownRows(res *forecast.Result) [][]string {
	rows := [][]string{{"agency", "month", "quota", "invoices", "retainers", "projects", "total", "blocked", "invoiced"}}

	for _, agency := range res.Breakdown.Agencies() {
		months := res.Breakdown[agency]

		for _, key := range res.Window.Keys() {
			c, ok := months[key]
			if !ok {
				continue
			}

			rows = append(rows, []string{
				string(agency), key,
				money(c.Quota), money(c.Invoices), money(c.Retainers), money(c.Projects), money(c.Total()),
				strconv.FormatBool(c.Blocked), strconv.FormatBool(c.Invoiced),
			})
		}
	}

	return rows
}

func prospectRows(res *forecast.Result) [][]string {
	rows := [][]string{{"prospect", "month", "amount"}}

	for _, name := range res.Prospects.Names() {
		for _, key := range res.Window.Keys() {
			if amount, ok := res.Prospects[name][key]; ok {
				rows = append(rows, []string{name, key, money(amount)})
			}
		}
	}

	return rows
}

func monthRows(res *forecast.Result) [][]string {
	rows := [][]string{{
		"month", "quota", "retainers", "projects", "prospects", "invoices", "revenue",
		"recurring_expenses", "payroll", "total_expenses", "net",
	}}

	for _, m := range res.Months {
		rows = append(rows, []string{
			m.Month,
			money(m.Quota), money(m.Retainers), money(m.Projects), money(m.Prospects), money(m.Invoices), money(m.Revenue),
			money(m.RecurringExpenses), money(m.Payroll), money(m.TotalExpenses), money(m.Net),
		})
	}

	return rows
}

func entryRows(res *forecast.Result) [][]string {
	rows := [][]string{{"source", "record_id", "agency", "prospect", "month", "date", "amount"}}

	for _, e := range res.Entries {
		rows = append(rows, []string{
			string(e.Source), e.RecordID.String(), string(e.Agency), e.Prospect, e.Month,
			e.Date.Format("2006-01-02"), e.Amount.String(),
		})
	}

	return rows
}

// GenerateSummary renders the roll-up totals as plain text.
func GenerateSummary(res *forecast.Result) string {
	var sb strings.Builder

	s := res.Summary
	keys := res.Window.Keys()

	fmt.Fprintf(&sb, "Forecast %s to %s (%d months, today %s, blended rate %s/h)\n\n",
		keys[0], keys[len(keys)-1], len(keys), res.Today.Format("2006-01-02"), money(res.BlendedRate))

	lines := []struct {
		label  string
		amount decimal.Decimal
	}{
		{"Quota revenue", s.QuotaRevenue},
		{"Retainer revenue", s.RetainerRevenue},
		{"Project revenue", s.ProjectRevenue},
		{"Prospect revenue", s.ProspectRevenue},
		{"Invoice revenue", s.InvoiceRevenue},
		{"Total revenue", s.TotalRevenue},
		{"Recurring expenses", s.RecurringExpenses},
		{"Payroll", s.PayrollExpenses},
		{"Total expenses", s.TotalExpenses},
		{"Net projection", s.NetProjection},
	}

	for _, l := range lines {
		fmt.Fprintf(&sb, "%-20s %14s\n", l.label, money(l.amount))
	}

	if agencies := res.Breakdown.Agencies(); len(agencies) > 0 {
		sb.WriteString("\nBy agency:\n")

		for _, a := range agencies {
			fmt.Fprintf(&sb, "* %s | %s\n", a, money(res.TotalByAgency[a]))
		}
	}

	if names := res.Prospects.Names(); len(names) > 0 {
		sb.WriteString("\nBy prospect:\n")

		for _, n := range names {
			fmt.Fprintf(&sb, "* %s | %s\n", n, money(res.ProjectByProspect[n]))
		}
	}

	if len(res.Diagnostics) > 0 {
		sb.WriteString("\nDiagnostics:\n")

		for _, d := range res.Diagnostics {
			fmt.Fprintf(&sb, "* %s %s: %s\n", d.Level, d.Code, d.Message)
		}
	}

	return sb.String()
}
