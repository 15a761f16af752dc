package forecast

import (
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/agencyops/internal/forecast"
)

type cellResponse struct {
	Quota     string `json:"quota"`
	Invoices  string `json:"invoices"`
	Retainers string `json:"retainers"`
	Projects  string `json:"projects"`
	Total     string `json:"total"`
	Blocked   bool   `json:"blocked,omitempty"`
	Invoiced  bool   `json:"invoiced,omitempty"`
}

type summaryResponse struct {
	QuotaRevenue      string `json:"quota_revenue"`
	RetainerRevenue   string `json:"retainer_revenue"`
	ProjectRevenue    string `json:"project_revenue"`
	ProspectRevenue   string `json:"prospect_revenue"`
	InvoiceRevenue    string `json:"invoice_revenue"`
	TotalRevenue      string `json:"total_revenue"`
	RecurringExpenses string `json:"recurring_expenses"`
	PayrollExpenses   string `json:"payroll_expenses"`
	TotalExpenses     string `json:"total_expenses"`
	NetProjection     string `json:"net_projection"`
}

type agencyTotalsResponse struct {
	Quota     string `json:"quota"`
	Invoices  string `json:"invoices"`
	Retainers string `json:"retainers"`
	Projects  string `json:"projects"`
	Total     string `json:"total"`
}

type monthResponse struct {
	Month             string `json:"month"`
	Quota             string `json:"quota"`
	Retainers         string `json:"retainers"`
	Projects          string `json:"projects"`
	Prospects         string `json:"prospects"`
	Invoices          string `json:"invoices"`
	Revenue           string `json:"revenue"`
	RecurringExpenses string `json:"recurring_expenses"`
	Payroll           string `json:"payroll"`
	TotalExpenses     string `json:"total_expenses"`
	Net               string `json:"net"`
}

type entryResponse struct {
	Source   forecast.Source   `json:"source"`
	RecordID uuid.UUID         `json:"record_id"`
	Agency   forecast.AgencyID `json:"agency,omitempty"`
	Prospect string            `json:"prospect,omitempty"`
	Month    string            `json:"month"`
	Date     string            `json:"date"`
	Amount   string            `json:"amount"`
}

type diagnosticResponse struct {
	Level    forecast.Level `json:"level"`
	Code     string         `json:"code"`
	Message  string         `json:"message"`
	RecordID *uuid.UUID     `json:"record_id,omitempty"`
}

type forecastResponse struct {
	Today       string                                        `json:"today"`
	Months      []string                                      `json:"months"`
	BlendedRate string                                        `json:"blended_rate"`
	Breakdown   map[forecast.AgencyID]map[string]cellResponse `json:"breakdown"`
	Prospects   map[string]map[string]string                  `json:"prospects"`
	ByAgency    map[forecast.AgencyID]agencyTotalsResponse    `json:"by_agency"`
	ByProspect  map[string]string                             `json:"by_prospect"`
	Summary     summaryResponse                               `json:"summary"`
	Ledger      []monthResponse                               `json:"ledger"`
	Entries     []entryResponse                               `json:"entries,omitempty"`
	Diagnostics []diagnosticResponse                          `json:"diagnostics"`
}

type summaryOnlyResponse struct {
	Today       string               `json:"today"`
	Months      []string             `json:"months"`
	Summary     summaryResponse      `json:"summary"`
	Diagnostics []diagnosticResponse `json:"diagnostics"`
}

const dateLayout = "2006-01-02"

func toForecastResponse(res *forecast.Result, explain bool) forecastResponse {
	resp := forecastResponse{
		Today:       res.Today.Format(dateLayout),
		Months:      res.Window.Keys(),
		BlendedRate: forecast.Display(res.BlendedRate),
		Breakdown:   make(map[forecast.AgencyID]map[string]cellResponse, len(res.Breakdown)),
		Prospects:   make(map[string]map[string]string, len(res.Prospects)),
		ByAgency:    make(map[forecast.AgencyID]agencyTotalsResponse, len(res.TotalByAgency)),
		ByProspect:  make(map[string]string, len(res.ProjectByProspect)),
		Summary:     toSummaryResponse(res.Summary),
		Ledger:      make([]monthResponse, 0, len(res.Months)),
		Diagnostics: toDiagnostics(res.Diagnostics),
	}

	for agency, months := range res.Breakdown {
		cells := make(map[string]cellResponse, len(months))
		for month, c := range months {
			cells[month] = cellResponse{
				Quota:     forecast.Display(c.Quota),
				Invoices:  forecast.Display(c.Invoices),
				Retainers: forecast.Display(c.Retainers),
				Projects:  forecast.Display(c.Projects),
				Total:     forecast.Display(c.Total()),
				Blocked:   c.Blocked,
				Invoiced:  c.Invoiced,
			}
		}

		resp.Breakdown[agency] = cells
	}

	for name, months := range res.Prospects {
		amounts := make(map[string]string, len(months))
		for month, v := range months {
			amounts[month] = forecast.Display(v)
		}

		resp.Prospects[name] = amounts
	}

	for agency, total := range res.TotalByAgency {
		resp.ByAgency[agency] = agencyTotalsResponse{
			Quota:     forecast.Display(res.QuotaByAgency[agency]),
			Invoices:  forecast.Display(res.InvoiceByAgency[agency]),
			Retainers: forecast.Display(res.RetainerByAgency[agency]),
			Projects:  forecast.Display(res.ProjectByAgency[agency]),
			Total:     forecast.Display(total),
		}
	}

	for name, total := range res.ProjectByProspect {
		resp.ByProspect[name] = forecast.Display(total)
	}

	for _, m := range res.Months {
		resp.Ledger = append(resp.Ledger, monthResponse{
			Month:             m.Month,
			Quota:             forecast.Display(m.Quota),
			Retainers:         forecast.Display(m.Retainers),
			Projects:          forecast.Display(m.Projects),
			Prospects:         forecast.Display(m.Prospects),
			Invoices:          forecast.Display(m.Invoices),
			Revenue:           forecast.Display(m.Revenue),
			RecurringExpenses: forecast.Display(m.RecurringExpenses),
			Payroll:           forecast.Display(m.Payroll),
			TotalExpenses:     forecast.Display(m.TotalExpenses),
			Net:               forecast.Display(m.Net),
		})
	}

	if explain {
		resp.Entries = make([]entryResponse, 0, len(res.Entries))
		for _, e := range res.Entries {
			resp.Entries = append(resp.Entries, entryResponse{
				Source:   e.Source,
				RecordID: e.RecordID,
				Agency:   e.Agency,
				Prospect: e.Prospect,
				Month:    e.Month,
				Date:     e.Date.Format(dateLayout),
				Amount:   forecast.Display(e.Amount),
			})
		}
	}

	return resp
}

func toSummaryOnlyResponse(res *forecast.Result) summaryOnlyResponse {
	return summaryOnlyResponse{
		Today:       res.Today.Format(dateLayout),
		Months:      res.Window.Keys(),
		Summary:     toSummaryResponse(res.Summary),
		Diagnostics: toDiagnostics(res.Diagnostics),
	}
}

func toSummaryResponse(s forecast.Summary) summaryResponse {
	return summaryResponse{
		QuotaRevenue:      forecast.Display(s.QuotaRevenue),
		RetainerRevenue:   forecast.Display(s.RetainerRevenue),
		ProjectRevenue:    forecast.Display(s.ProjectRevenue),
		ProspectRevenue:   forecast.Display(s.ProspectRevenue),
		InvoiceRevenue:    forecast.Display(s.InvoiceRevenue),
		TotalRevenue:      forecast.Display(s.TotalRevenue),
		RecurringExpenses: forecast.Display(s.RecurringExpenses),
		PayrollExpenses:   forecast.Display(s.PayrollExpenses),
		TotalExpenses:     forecast.Display(s.TotalExpenses),
		NetProjection:     forecast.Display(s.NetProjection),
	}
}

func toDiagnostics(diags []forecast.Diagnostic) []diagnosticResponse {
	out := make([]diagnosticResponse, 0, len(diags))

	for _, d := range diags {
		resp := diagnosticResponse{
			Level:   d.Level,
			Code:    d.Code,
			Message: d.Message,
		}

		if d.RecordID != uuid.Nil {
			resp.RecordID = &d.RecordID
		}

		out = append(out, resp)
	}

	return out
}
