package forecast

import "time"

// RevenueDate is when an invoice's cash is expected to land:
// forecast month, then realization date, then due date, then the billing date.
// It decides which month the invoice's own revenue is counted in.
func RevenueDate(inv Invoice) time.Time {
	switch {
	case inv.ForecastMonth != nil:
		return DateOf(*inv.ForecastMonth)
	case inv.RealizationDate != nil:
		return DateOf(*inv.RealizationDate)
	case inv.DueDate != nil:
		return DateOf(*inv.DueDate)
	}

	return DateOf(inv.Date)
}

// BillingDate is the period of work an invoice bills for. It decides gating.
func BillingDate(inv Invoice) time.Time {
	return DateOf(inv.Date)
}

// AgencyMonth is a single cell of the forecast ledger.
type AgencyMonth struct {
	Agency AgencyID
	Month  string
}

// MonthSet is a set of agency-months.
type MonthSet map[AgencyMonth]struct{}

func (s MonthSet) Has(agency AgencyID, month string) bool {
	_, ok := s[AgencyMonth{Agency: NormalizeAgency(agency), Month: month}]
	return ok
}

func (s MonthSet) add(agency AgencyID, month string) {
	s[AgencyMonth{Agency: NormalizeAgency(agency), Month: month}] = struct{}{}
}

// InvoicedMonths returns the agency-months in which some invoice's revenue is expected.
func InvoicedMonths(invoices []Invoice) MonthSet {
	set := make(MonthSet, len(invoices))
	for _, inv := range invoices {
		set.add(inv.AgencyID, MonthKey(RevenueDate(inv)))
	}

	return set
}

// BillingBlockedMonths returns the agency-months that already have an invoice of any status
// billed against them. Quota, retainer and agency project revenue is suppressed there.
func BillingBlockedMonths(invoices []Invoice) MonthSet {
	set := make(MonthSet, len(invoices))
	for _, inv := range invoices {
		set.add(inv.AgencyID, MonthKey(BillingDate(inv)))
	}

	return set
}
