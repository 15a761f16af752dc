package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/agencyops/internal/forecast"
	"github.com/MrJamesThe3rd/agencyops/internal/matching"
)

// AliasModel teaches the matcher which agency a raw client name belongs to.
type AliasModel struct {
	CommonModel
	matchingService *matching.Service

	form   *huh.Form
	status string
	err    error
}

func NewAliasModel(svc *matching.Service) AliasModel {
	return AliasModel{
		matchingService: svc,
		form:            buildAliasForm(),
	}
}

func (m AliasModel) Title() string     { return "Agency Aliases" }
func (m AliasModel) ShortHelp() string { return "Esc: back | Enter: confirm" }

func (m AliasModel) Init() tea.Cmd {
	return m.form.Init()
}

func buildAliasForm() *huh.Form {
	notBlank := func(field string) func(string) error {
		return func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("%s cannot be empty", field)
			}

			return nil
		}
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("pattern").
				Title("Client name contains").
				Placeholder("ACME Corp").
				Validate(notBlank("pattern")),

			huh.NewInput().
				Key("agency").
				Title("Agency ID").
				Placeholder("acme").
				Validate(notBlank("agency")),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m AliasModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case aliasSavedMsg:
		m.err = msg.err
		if msg.err == nil {
			m.status = fmt.Sprintf("Saved: %q -> %s", msg.pattern, msg.agency)
		}

		m.form = buildAliasForm()

		return m, m.form.Init()

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveCmd(m.form.GetString("pattern"), forecast.AgencyID(strings.TrimSpace(m.form.GetString("agency"))))
}

func (m AliasModel) View() string {
	content := m.form.View()

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n\n" + content
	}

	if m.err != nil {
		content = errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

type aliasSavedMsg struct {
	pattern string
	agency  forecast.AgencyID
	err     error
}

func (m AliasModel) saveCmd(pattern string, agency forecast.AgencyID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		err := m.matchingService.Learn(ctx, pattern, agency)

		return aliasSavedMsg{pattern: strings.TrimSpace(pattern), agency: agency, err: err}
	}
}
