package main

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/agencyops/internal/config"
	"github.com/MrJamesThe3rd/agencyops/internal/database"
	"github.com/MrJamesThe3rd/agencyops/internal/export"
	"github.com/MrJamesThe3rd/agencyops/internal/forecast"
	forecastStore "github.com/MrJamesThe3rd/agencyops/internal/forecast/store"
	"github.com/MrJamesThe3rd/agencyops/internal/importer"
)

const (
	formatTable   = "table"
	formatCSV     = "csv"
	formatSummary = "summary"
)

var formats = []string{formatTable, formatCSV, formatSummary}

type runFlags struct {
	dir    string
	months int
	today  string
	rate   string
	format string
	out    string
}

func newRunCmd(opts *options) *cobra.Command {
	var f runFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Compute the forecast",
		Long: `Compute the forecast for the next --months calendar months, the current one included.

Examples:
  forecast run --months 6
  forecast run --dir ./sheets --today 2025-03-10 --rate 95 --format summary
  forecast run --dir ./sheets --format csv --out ./report`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runForecast(cmd, opts, f)
		},
	}

	cmd.Flags().StringVar(&f.dir, "dir", "", "Directory of CSV sheets (<kind>.csv); reads the database when empty")
	cmd.Flags().IntVarP(&f.months, "months", "m", 0, "Window size in months (default from FORECAST_WINDOW_MONTHS)")
	cmd.Flags().StringVar(&f.today, "today", "", "Reference date YYYY-MM-DD (default: current date)")
	cmd.Flags().StringVar(&f.rate, "rate", "", "Blended hourly rate override")
	cmd.Flags().StringVarP(&f.format, "format", "f", formatTable, "Output format: table, csv or summary")
	cmd.Flags().StringVarP(&f.out, "out", "o", "forecast-export", "Output directory for --format csv")

	return cmd
}

func (f runFlags) request() (forecast.Request, error) {
	if !slices.Contains(formats, f.format) {
		return forecast.Request{}, fmt.Errorf("unknown format %q", f.format)
	}

	req := forecast.Request{WindowMonths: f.months}

	if f.today != "" {
		today, err := time.Parse(time.DateOnly, f.today)
		if err != nil {
			return forecast.Request{}, fmt.Errorf("invalid --today %q: %w", f.today, err)
		}

		req.Today = &today
	}

	if f.rate != "" {
		rate, ok := forecast.ParseAmount(f.rate)
		if !ok || !rate.IsPositive() {
			return forecast.Request{}, fmt.Errorf("invalid --rate %q", f.rate)
		}

		req.BlendedRate = &rate
	}

	return req, nil
}

func runForecast(cmd *cobra.Command, opts *options, f runFlags) error {
	req, err := f.request()
	if err != nil {
		return err
	}

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
	defer cancel()

	res, err := compute(ctx, cfg, f.dir, req)
	if err != nil {
		return err
	}

	for _, d := range res.Diagnostics {
		slog.Warn(d.Message, "level", d.Level, "code", d.Code, "record", d.RecordID)
	}

	out := cmd.OutOrStdout()

	switch f.format {
	case formatSummary:
		_, err = fmt.Fprint(out, export.GenerateSummary(res))
		return err
	case formatCSV:
		items, err := export.WriteFiles(res, f.out)
		if err != nil {
			return err
		}

		for _, item := range items {
			fmt.Fprintf(out, "wrote %s (%d rows)\n", item.FilePath, item.Rows)
		}

		return nil
	default:
		_, err = fmt.Fprint(out, renderTables(res))
		return err
	}
}

// compute forecasts from the sheets in dir, or from the database when dir is empty.
func compute(ctx context.Context, cfg *config.Config, dir string, req forecast.Request) (*forecast.Result, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	opts := forecast.Options{
		DefaultRate:   cfg.Forecast.BlendedRate,
		DefaultWindow: cfg.Forecast.WindowMonths,
		MaxWindow:     cfg.Forecast.MaxWindow,
		Location:      loc,
	}

	if dir != "" {
		snap, err := importer.NewService().ImportDir(dir)
		if err != nil {
			return nil, err
		}

		slog.Debug("imported sheets", "dir", dir,
			"invoices", len(snap.Invoices), "quotas", len(snap.QuotaTargets),
			"retainers", len(snap.Retainers), "projects", len(snap.ProjectForecasts),
			"expenses", len(snap.Expenses), "payroll", len(snap.PayrollMembers))

		if req.BlendedRate == nil {
			req.BlendedRate = new(cfg.Forecast.BlendedRate)
		}

		return forecast.NewService(nil, opts).Preview(ctx, req, snap)
	}

	db, err := database.New(ctx, cfg.ConnectionString())
	if err != nil {
		return nil, err
	}
	defer db.Close()

	return forecast.NewService(forecastStore.New(db), opts).Forecast(ctx, req)
}
