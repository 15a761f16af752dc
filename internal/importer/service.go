package importer

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/MrJamesThe3rd/agencyops/internal/forecast"
	"github.com/MrJamesThe3rd/agencyops/internal/importer/sheet"
)

var ErrNoSheets = errors.New("no sheets found")

type Service struct {
	importers map[Kind]Importer
}

func NewService() *Service {
	return &Service{
		importers: map[Kind]Importer{
			KindInvoices:  sheet.NewParser(sheet.Invoices),
			KindQuotas:    sheet.NewParser(sheet.Quotas),
			KindRetainers: sheet.NewParser(sheet.Retainers),
			KindProjects:  sheet.NewParser(sheet.Projects),
			KindExpenses:  sheet.NewParser(sheet.Expenses),
			KindPayroll:   sheet.NewParser(sheet.Payroll),
		},
	}
}

func (s *Service) Import(kind Kind, r io.Reader) (forecast.Snapshot, error) {
	importer, ok := s.importers[kind]
	if !ok {
		return forecast.Snapshot{}, fmt.Errorf("unknown sheet: %s", kind)
	}

	snap, err := importer.Parse(r)
	if err != nil {
		return forecast.Snapshot{}, fmt.Errorf("importing %s: %w", kind, err)
	}

	return snap, nil
}

// ImportAll parses every provided sheet into a single snapshot. Missing kinds are empty.
func (s *Service) ImportAll(sheets map[Kind]io.Reader) (forecast.Snapshot, error) {
	var snap forecast.Snapshot

	for _, kind := range Kinds {
		r, ok := sheets[kind]
		if !ok {
			continue
		}

		part, err := s.Import(kind, r)
		if err != nil {
			return forecast.Snapshot{}, err
		}

		snap = snap.Merge(part)
	}

	return snap, nil
}

// ImportDir loads "<kind>.csv" for every kind present in dir.
func (s *Service) ImportDir(dir string) (forecast.Snapshot, error) {
	var (
		snap  forecast.Snapshot
		found int
	)

	for _, kind := range Kinds {
		path := filepath.Join(dir, string(kind)+".csv")

		part, err := s.importFile(kind, path)
		if errors.Is(err, fs.ErrNotExist) {
			slog.Debug("sheet not present", "kind", kind, "path", path)
			continue
		}

		if err != nil {
			return forecast.Snapshot{}, err
		}

		found++
		snap = snap.Merge(part)
	}

	if found == 0 {
		return forecast.Snapshot{}, fmt.Errorf("%w in %s", ErrNoSheets, dir)
	}

	return snap, nil
}

func (s *Service) importFile(kind Kind, path string) (forecast.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return forecast.Snapshot{}, err
	}
	defer f.Close()

	return s.Import(kind, f)
}
