package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
)

type options struct {
	verbose bool
	timeout time.Duration
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "forecast",
		Short: "Project agency revenue and expenses over the coming months",
		Long: `forecast projects monthly revenue per agency from quota targets, retainers,
project forecasts and invoices, and subtracts recurring expenses and payroll.

Records are read from the database, or from a directory of CSV sheets with --dir.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			setupLogger(cmd.ErrOrStderr(), opts.verbose)
		},
	}

	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "Operation timeout")

	root.AddCommand(newRunCmd(opts))
	root.AddCommand(newExpandCmd())
	root.AddCommand(newRateCmd(opts))

	return root
}

func setupLogger(w io.Writer, verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
