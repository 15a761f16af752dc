package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/agencyops/internal/forecast"
)

func newExpandCmd() *cobra.Command {
	var (
		start    string
		interval string
		until    string
		months   int
	)

	cmd := &cobra.Command{
		Use:   "expand",
		Short: "Print the occurrences of a recurring expense",
		Long: `Print the dates a recurring expense falls on within a window of --months
calendar months starting with the month of --start.

Example:
  forecast expand --start 2025-01-01 --interval weekly --months 1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			seed, err := time.Parse(time.DateOnly, start)
			if err != nil {
				return fmt.Errorf("invalid --start %q: %w", start, err)
			}

			iv := forecast.Interval(interval)
			if !iv.Valid() {
				return fmt.Errorf("unknown interval %q", interval)
			}

			var end *time.Time

			if until != "" {
				t, err := time.Parse(time.DateOnly, until)
				if err != nil {
					return fmt.Errorf("invalid --until %q: %w", until, err)
				}

				end = &t
			}

			if months < 1 {
				return fmt.Errorf("--months must be at least 1, got %d", months)
			}

			w := forecast.NewWindow(seed, months)
			exp := forecast.Expand(seed, iv, end, w.Start(), w.End())

			if exp.Capped {
				slog.Warn("series cut short", "max_steps", forecast.MaxRecurrenceSteps)
			}

			for _, d := range exp.Dates {
				fmt.Fprintln(cmd.OutOrStdout(), d.Format(time.DateOnly))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "First occurrence, YYYY-MM-DD")
	cmd.Flags().StringVar(&interval, "interval", string(forecast.IntervalMonthly), "weekly, biweekly or monthly")
	cmd.Flags().StringVar(&until, "until", "", "Last possible occurrence, YYYY-MM-DD")
	cmd.Flags().IntVarP(&months, "months", "m", 3, "Window size in months")

	_ = cmd.MarkFlagRequired("start")

	return cmd
}
