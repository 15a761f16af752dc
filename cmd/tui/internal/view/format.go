package view

import (
	"context"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/agencyops/internal/forecast"
)

const dbTimeout = 10 * time.Second

var (
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	faintStyle  = lipgloss.NewStyle().Faint(true)
)

// FormatAmount formats a money amount with two decimals.
func FormatAmount(d decimal.Decimal) string {
	return forecast.Display(d)
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}
