package main

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/agencyops/internal/config"
	"github.com/MrJamesThe3rd/agencyops/internal/database"
	"github.com/MrJamesThe3rd/agencyops/internal/forecast"
	forecastStore "github.com/MrJamesThe3rd/agencyops/internal/forecast/store"
)

func newRateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "rate [amount]",
		Short: "Show or set the stored blended hourly rate",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var newRate *forecast.Settings

			if len(args) == 1 {
				rate, ok := forecast.ParseAmount(args[0])
				if !ok || !rate.IsPositive() {
					return fmt.Errorf("invalid rate %q", args[0])
				}

				newRate = &forecast.Settings{BlendedRate: rate}
			}

			_ = godotenv.Load()

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			db, err := database.New(ctx, cfg.ConnectionString())
			if err != nil {
				return err
			}
			defer db.Close()

			store := forecastStore.New(db)

			if newRate != nil {
				if err := store.SaveSettings(ctx, *newRate); err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "blended rate set to %s\n", forecast.Display(newRate.BlendedRate))

				return nil
			}

			rate, err := forecast.NewService(store, forecast.Options{DefaultRate: cfg.Forecast.BlendedRate}).BlendedRate(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "blended rate %s\n", forecast.Display(rate))

			return nil
		},
	}
}
