package sheet

import (
	"strings"

	"github.com/MrJamesThe3rd/agencyops/internal/forecast"
)

// Column is one field of a sheet. The header cell may use any of the aliases.
type Column struct {
	Key      string
	Aliases  []string
	Required bool
}

func (c Column) names() []string {
	return append([]string{c.Key}, c.Aliases...)
}

// Profile describes the column layout of one kind of sheet and how a row becomes a record.
// Adding a new sheet is adding a new Profile.
type Profile struct {
	Name    string
	Columns []Column
	build   func(r *record, snap *forecast.Snapshot)
}

// normalizeHeader folds "Due Date", "due-date" and "DUE_DATE" to "due_date".
func normalizeHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(" ", "_", "-", "_", ".", "").Replace(s)

	return s
}

var idColumn = Column{Key: "id", Aliases: []string{"uuid"}}

var Invoices = Profile{
	Name: "invoices",
	Columns: []Column{
		idColumn,
		{Key: "agency", Aliases: []string{"agency_id", "client"}, Required: true},
		{Key: "amount", Aliases: []string{"total"}, Required: true},
		{Key: "status", Required: true},
		{Key: "date", Aliases: []string{"billing_date", "invoice_date"}, Required: true},
		{Key: "due_date", Aliases: []string{"due"}},
		{Key: "realization_date", Aliases: []string{"paid_date", "realized_on"}},
		{Key: "forecast_month"},
	},
	build: buildInvoice,
}

var Quotas = Profile{
	Name: "quotas",
	Columns: []Column{
		idColumn,
		{Key: "agency", Aliases: []string{"agency_id", "client"}, Required: true},
		{Key: "monthly_target_hours", Aliases: []string{"hours", "target_hours"}, Required: true},
		{Key: "no_quota"},
	},
	build: buildQuota,
}

var Retainers = Profile{
	Name: "retainers",
	Columns: []Column{
		idColumn,
		{Key: "agency", Aliases: []string{"agency_id", "client"}, Required: true},
		{Key: "monthly_amount", Aliases: []string{"amount"}, Required: true},
		{Key: "start_date", Aliases: []string{"start"}, Required: true},
		{Key: "end_date", Aliases: []string{"end"}},
	},
	build: buildRetainer,
}

var Projects = Profile{
	Name: "projects",
	Columns: []Column{
		idColumn,
		{Key: "agency", Aliases: []string{"agency_id", "client"}},
		{Key: "prospect", Aliases: []string{"prospect_name"}},
		{Key: "monthly_amount", Aliases: []string{"amount"}, Required: true},
		{Key: "start_date", Aliases: []string{"start"}, Required: true},
		{Key: "end_date", Aliases: []string{"end"}},
		{Key: "is_active", Aliases: []string{"active"}},
	},
	build: buildProject,
}

var Expenses = Profile{
	Name: "expenses",
	Columns: []Column{
		idColumn,
		{Key: "description", Aliases: []string{"name"}, Required: true},
		{Key: "amount", Required: true},
		{Key: "date", Aliases: []string{"start_date"}, Required: true},
		{Key: "is_recurring", Aliases: []string{"recurring"}},
		{Key: "interval", Aliases: []string{"recurrence_interval"}},
		{Key: "recurrence_end", Aliases: []string{"recurrence_end_date", "end_date"}},
	},
	build: buildExpense,
}

var Payroll = Profile{
	Name: "payroll",
	Columns: []Column{
		idColumn,
		{Key: "name", Required: true},
		{Key: "monthly_pay", Aliases: []string{"pay", "salary"}, Required: true},
		{Key: "start_date", Aliases: []string{"start"}, Required: true},
		{Key: "end_date", Aliases: []string{"end"}},
		{Key: "is_active", Aliases: []string{"active"}},
	},
	build: buildPayroll,
}
