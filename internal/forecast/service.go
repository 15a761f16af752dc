package forecast

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=forecast
type Repository interface {
	ListInvoices(ctx context.Context) ([]Invoice, error)
	ListQuotaTargets(ctx context.Context) ([]QuotaTarget, error)
	ListRetainers(ctx context.Context) ([]Retainer, error)
	ListProjectForecasts(ctx context.Context) ([]ProjectForecast, []Diagnostic, error)
	ListExpenses(ctx context.Context) ([]Expense, error)
	ListPayrollMembers(ctx context.Context) ([]PayrollMember, error)

	// GetSettings returns ErrNotFound when no settings row exists.
	GetSettings(ctx context.Context) (*Settings, error)
}

type Options struct {
	DefaultRate   decimal.Decimal
	DefaultWindow int
	MaxWindow     int
	Location      *time.Location
	Now           func() time.Time
}

type Service struct {
	repo Repository
	opts Options
}

func NewService(repo Repository, opts Options) *Service {
	if opts.Location == nil {
		opts.Location = time.Local
	}

	if opts.Now == nil {
		opts.Now = time.Now
	}

	if opts.DefaultWindow < 1 {
		opts.DefaultWindow = 6
	}

	if opts.MaxWindow < opts.DefaultWindow {
		opts.MaxWindow = max(opts.DefaultWindow, 36)
	}

	return &Service{repo: repo, opts: opts}
}

// Request selects the forecast to compute. Zero values fall back to the service defaults.
type Request struct {
	WindowMonths int
	Today        *time.Time
	BlendedRate  *decimal.Decimal
}

// Today is the current calendar date in the configured zone.
func (s *Service) Today() time.Time {
	return DateOf(s.opts.Now().In(s.opts.Location))
}

// Snapshot reads every record the engine needs. The reads run concurrently and the
// first failure cancels the rest.
func (s *Service) Snapshot(ctx context.Context) (Snapshot, error) {
	var snap Snapshot

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		invoices, err := s.repo.ListInvoices(ctx)
		if err != nil {
			return fmt.Errorf("listing invoices: %w", err)
		}

		snap.Invoices = invoices

		return nil
	})

	g.Go(func() error {
		targets, err := s.repo.ListQuotaTargets(ctx)
		if err != nil {
			return fmt.Errorf("listing quota targets: %w", err)
		}

		snap.QuotaTargets = targets

		return nil
	})

	g.Go(func() error {
		retainers, err := s.repo.ListRetainers(ctx)
		if err != nil {
			return fmt.Errorf("listing retainers: %w", err)
		}

		snap.Retainers = retainers

		return nil
	})

	g.Go(func() error {
		items, diags, err := s.repo.ListProjectForecasts(ctx)
		if err != nil {
			return fmt.Errorf("listing project forecasts: %w", err)
		}

		snap.ProjectForecasts = items
		snap.Diagnostics = diags

		return nil
	})

	g.Go(func() error {
		expenses, err := s.repo.ListExpenses(ctx)
		if err != nil {
			return fmt.Errorf("listing expenses: %w", err)
		}

		snap.Expenses = expenses

		return nil
	})

	g.Go(func() error {
		members, err := s.repo.ListPayrollMembers(ctx)
		if err != nil {
			return fmt.Errorf("listing payroll members: %w", err)
		}

		snap.PayrollMembers = members

		return nil
	})

	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}

	return snap, nil
}

// BlendedRate returns the stored blended rate, or the configured default when none is stored.
func (s *Service) BlendedRate(ctx context.Context) (decimal.Decimal, error) {
	settings, err := s.repo.GetSettings(ctx)
	if errors.Is(err, ErrNotFound) {
		return s.opts.DefaultRate, nil
	}

	if err != nil {
		return decimal.Zero, fmt.Errorf("getting settings: %w", err)
	}

	return settings.BlendedRate, nil
}

// Input resolves a request into the engine input, validating the window size.
func (s *Service) Input(ctx context.Context, req Request) (Input, error) {
	in, err := s.params(ctx, req)
	if err != nil {
		return Input{}, err
	}

	snap, err := s.Snapshot(ctx)
	if err != nil {
		return Input{}, err
	}

	in.Snapshot = snap

	return in, nil
}

func (s *Service) params(ctx context.Context, req Request) (Input, error) {
	months := req.WindowMonths
	if months == 0 {
		months = s.opts.DefaultWindow
	}

	if err := s.ValidateWindow(months); err != nil {
		return Input{}, err
	}

	today := s.Today()
	if req.Today != nil {
		today = DateOf(*req.Today)
	}

	var rate decimal.Decimal

	if req.BlendedRate != nil {
		rate = *req.BlendedRate
	} else {
		r, err := s.BlendedRate(ctx)
		if err != nil {
			return Input{}, err
		}

		rate = r
	}

	return Input{
		Today:        today,
		WindowMonths: months,
		BlendedRate:  rate,
	}, nil
}

// Forecast loads the current records and computes the forecast.
func (s *Service) Forecast(ctx context.Context, req Request) (*Result, error) {
	in, err := s.Input(ctx, req)
	if err != nil {
		return nil, err
	}

	return Compute(in), nil
}

// Preview computes a forecast over snap instead of the stored records.
// The stored blended rate is still used unless req overrides it.
func (s *Service) Preview(ctx context.Context, req Request, snap Snapshot) (*Result, error) {
	in, err := s.params(ctx, req)
	if err != nil {
		return nil, err
	}

	in.Snapshot = snap

	return Compute(in), nil
}

// ValidateWindow checks a window size against the configured maximum.
func (s *Service) ValidateWindow(months int) error {
	if months < 1 || months > s.opts.MaxWindow {
		return fmt.Errorf("%w: %d months, want 1..%d", ErrInvalidWindow, months, s.opts.MaxWindow)
	}

	return nil
}
