package importer

import (
	"io"

	"github.com/MrJamesThe3rd/agencyops/internal/forecast"
)

// Kind names a sheet of forecast inputs. A directory import looks for "<kind>.csv".
type Kind string

const (
	KindInvoices  Kind = "invoices"
	KindQuotas    Kind = "quotas"
	KindRetainers Kind = "retainers"
	KindProjects  Kind = "projects"
	KindExpenses  Kind = "expenses"
	KindPayroll   Kind = "payroll"
)

// Kinds lists every sheet in the order they are imported.
var Kinds = []Kind{KindInvoices, KindQuotas, KindRetainers, KindProjects, KindExpenses, KindPayroll}

type Importer interface {
	Parse(r io.Reader) (forecast.Snapshot, error)
}
