package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/agencyops/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/agencyops/internal/config"
	"github.com/MrJamesThe3rd/agencyops/internal/database"
	"github.com/MrJamesThe3rd/agencyops/internal/export"
	"github.com/MrJamesThe3rd/agencyops/internal/forecast"
	forecastStore "github.com/MrJamesThe3rd/agencyops/internal/forecast/store"
	"github.com/MrJamesThe3rd/agencyops/internal/matching"
	matchingStore "github.com/MrJamesThe3rd/agencyops/internal/matching/store"
)

type model struct {
	cfg             *config.Config
	forecastService *forecast.Service
	matchingService *matching.Service
	exportService   *export.Service

	currentView View

	forecastView view.ForecastModel
	exportView   view.ExportModel
	aliasView    view.AliasModel
}

type View int

const (
	ViewMenu     View = 0
	ViewForecast View = 1
	ViewExport   View = 2
	ViewAliases  View = 3
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	loc, err := cfg.Location()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(context.Background(), cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	forecastSvc := forecast.NewService(forecastStore.New(db), forecast.Options{
		DefaultRate:   cfg.Forecast.BlendedRate,
		DefaultWindow: cfg.Forecast.WindowMonths,
		MaxWindow:     cfg.Forecast.MaxWindow,
		Location:      loc,
	})
	matchSvc := matching.NewService(matchingStore.New(db))
	expSvc := export.NewService(forecastSvc)

	return model{
		cfg:             cfg,
		forecastService: forecastSvc,
		matchingService: matchSvc,
		exportService:   expSvc,
		currentView:     ViewMenu,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewForecast
				m.forecastView = view.NewForecastModel(m.forecastService, m.cfg.Forecast.WindowMonths, m.cfg.Forecast.MaxWindow)

				return m, m.forecastView.Init()
			case "2":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.exportService, m.cfg.Forecast.WindowMonths, m.cfg.Forecast.MaxWindow)

				return m, m.exportView.Init()
			case "3":
				m.currentView = ViewAliases
				m.aliasView = view.NewAliasModel(m.matchingService)

				return m, m.aliasView.Init()
			}
		}

		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewForecast:
		var newModel tea.Model
		newModel, cmd = m.forecastView.Update(msg)
		m.forecastView = newModel.(view.ForecastModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	case ViewAliases:
		var newModel tea.Model
		newModel, cmd = m.aliasView.Update(msg)
		m.aliasView = newModel.(view.AliasModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			m.cfg.App.Name + " Forecast\n\n" +
				"1. View Forecast\n" +
				"2. Export Forecast\n" +
				"3. Agency Aliases\n\n" +
				"q. Quit",
		)
	case ViewForecast:
		return m.forecastView.View()
	case ViewExport:
		return m.exportView.View()
	case ViewAliases:
		return m.aliasView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel(), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
