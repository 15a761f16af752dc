package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/agencyops/internal/forecast"
)

// Store reads forecast inputs from the agency records kept in Postgres.
// Amount columns are NUMERIC and scan straight into decimal.Decimal.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// list runs query and scans every row with scan.
func list[T any](ctx context.Context, db *sql.DB, what, query string, scan func(scanner) (T, error)) ([]T, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", what, err)
	}
	defer rows.Close()

	var out []T

	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", what, err)
		}

		out = append(out, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s: %w", what, err)
	}

	return out, nil
}

// Expected column order: id, agency_id, amount, status, date, due_date, realization_date, forecast_month
func scanInvoice(s scanner) (forecast.Invoice, error) {
	var (
		inv            forecast.Invoice
		agency, status sql.NullString
	)

	if err := s.Scan(
		&inv.ID, &agency, &inv.Amount, &status, &inv.Date,
		&inv.DueDate, &inv.RealizationDate, &inv.ForecastMonth,
	); err != nil {
		return forecast.Invoice{}, err
	}

	inv.AgencyID = forecast.NormalizeAgency(forecast.AgencyID(agency.String))
	inv.Status = forecast.InvoiceStatus(status.String)

	return inv, nil
}

func (s *Store) ListInvoices(ctx context.Context) ([]forecast.Invoice, error) {
	query := `
		SELECT id, agency_id, amount, status, date, due_date, realization_date, forecast_month
		FROM invoices
		WHERE deleted_at IS NULL
		ORDER BY date ASC`

	return list(ctx, s.db, "invoices", query, scanInvoice)
}

func (s *Store) ListQuotaTargets(ctx context.Context) ([]forecast.QuotaTarget, error) {
	query := `
		SELECT id, agency_id, monthly_target_hours, no_quota
		FROM quota_targets
		ORDER BY created_at ASC`

	return list(ctx, s.db, "quota targets", query, func(sc scanner) (forecast.QuotaTarget, error) {
		var (
			q      forecast.QuotaTarget
			agency sql.NullString
		)

		if err := sc.Scan(&q.ID, &agency, &q.MonthlyTargetHours, &q.NoQuota); err != nil {
			return forecast.QuotaTarget{}, err
		}

		q.AgencyID = forecast.NormalizeAgency(forecast.AgencyID(agency.String))

		return q, nil
	})
}

func (s *Store) ListRetainers(ctx context.Context) ([]forecast.Retainer, error) {
	query := `
		SELECT id, agency_id, monthly_amount, start_date, end_date
		FROM retainers
		ORDER BY start_date ASC`

	return list(ctx, s.db, "retainers", query, func(sc scanner) (forecast.Retainer, error) {
		var (
			r      forecast.Retainer
			agency sql.NullString
		)

		if err := sc.Scan(&r.ID, &agency, &r.MonthlyAmount, &r.StartDate, &r.EndDate); err != nil {
			return forecast.Retainer{}, err
		}

		r.AgencyID = forecast.NormalizeAgency(forecast.AgencyID(agency.String))

		return r, nil
	})
}

// ListProjectForecasts resolves each row's agency/prospect columns into a link.
// Rows with both or neither set are kept and reported as diagnostics.
func (s *Store) ListProjectForecasts(ctx context.Context) ([]forecast.ProjectForecast, []forecast.Diagnostic, error) {
	query := `
		SELECT id, agency_id, prospect_name, monthly_amount, start_date, end_date, is_active
		FROM project_forecasts
		ORDER BY start_date ASC`

	var diags []forecast.Diagnostic

	items, err := list(ctx, s.db, "project forecasts", query, func(sc scanner) (forecast.ProjectForecast, error) {
		var (
			p                forecast.ProjectForecast
			agency, prospect sql.NullString
		)

		if err := sc.Scan(&p.ID, &agency, &prospect, &p.MonthlyAmount, &p.StartDate, &p.EndDate, &p.IsActive); err != nil {
			return forecast.ProjectForecast{}, err
		}

		link, diag := forecast.ResolveLink(p.ID, agency.String, prospect.String)
		if diag != nil {
			diags = append(diags, *diag)
		}

		p.Link = link

		return p, nil
	})
	if err != nil {
		return nil, nil, err
	}

	return items, diags, nil
}

func (s *Store) ListExpenses(ctx context.Context) ([]forecast.Expense, error) {
	query := `
		SELECT id, description, amount, date, is_recurring, recurrence_interval, recurrence_end_date
		FROM expenses
		WHERE deleted_at IS NULL
		ORDER BY date ASC`

	return list(ctx, s.db, "expenses", query, func(sc scanner) (forecast.Expense, error) {
		var (
			e        forecast.Expense
			interval sql.NullString
		)

		if err := sc.Scan(&e.ID, &e.Description, &e.Amount, &e.Date, &e.IsRecurring, &interval, &e.RecurrenceEnd); err != nil {
			return forecast.Expense{}, err
		}

		e.Interval = forecast.Interval(interval.String)

		return e, nil
	})
}

func (s *Store) ListPayrollMembers(ctx context.Context) ([]forecast.PayrollMember, error) {
	query := `
		SELECT id, name, monthly_pay, start_date, end_date, is_active
		FROM payroll_members
		ORDER BY name ASC`

	return list(ctx, s.db, "payroll members", query, func(sc scanner) (forecast.PayrollMember, error) {
		var p forecast.PayrollMember

		if err := sc.Scan(&p.ID, &p.Name, &p.MonthlyPay, &p.StartDate, &p.EndDate, &p.IsActive); err != nil {
			return forecast.PayrollMember{}, err
		}

		return p, nil
	})
}

func (s *Store) GetSettings(ctx context.Context) (*forecast.Settings, error) {
	query := `SELECT blended_rate FROM forecast_settings ORDER BY updated_at DESC LIMIT 1`

	var settings forecast.Settings

	err := s.db.QueryRowContext(ctx, query).Scan(&settings.BlendedRate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, forecast.ErrNotFound
		}

		return nil, fmt.Errorf("getting settings: %w", err)
	}

	return &settings, nil
}

// SaveSettings replaces the stored blended rate.
func (s *Store) SaveSettings(ctx context.Context, settings forecast.Settings) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM forecast_settings`); err != nil {
		return fmt.Errorf("clearing settings: %w", err)
	}

	query := `
		INSERT INTO forecast_settings (blended_rate, updated_at)
		VALUES ($1, NOW())`

	if _, err := tx.ExecContext(ctx, query, settings.BlendedRate); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}
