package view

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrJamesThe3rd/agencyops/internal/forecast"
)

// WindowSelectedMsg is emitted when the user has entered valid forecast parameters.
type WindowSelectedMsg struct {
	Request forecast.Request
}

// ParseWindow turns the picker fields into a forecast request. Empty fields keep the
// service defaults.
func ParseWindow(months, today, rate string, maxWindow int) (forecast.Request, error) {
	var req forecast.Request

	if s := strings.TrimSpace(months); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > maxWindow {
			return req, fmt.Errorf("months must be a number between 1 and %d", maxWindow)
		}

		req.WindowMonths = n
	}

	if s := strings.TrimSpace(today); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return req, fmt.Errorf("invalid date (YYYY-MM-DD)")
		}

		req.Today = &t
	}

	if s := strings.TrimSpace(rate); s != "" {
		r, ok := forecast.ParseAmount(s)
		if !ok || !r.IsPositive() {
			return req, fmt.Errorf("rate must be a positive amount")
		}

		req.BlendedRate = &r
	}

	return req, nil
}

// WindowPicker collects the window size, reference date and an optional rate override.
type WindowPicker struct {
	inputs     []textinput.Model
	focusIndex int
	maxWindow  int

	err error
}

func NewWindowPicker(defaultMonths, maxWindow int) WindowPicker {
	months := textinput.New()
	months.Placeholder = strconv.Itoa(defaultMonths)
	months.CharLimit = 2
	months.Width = 4
	months.Prompt = "Months:      "

	today := textinput.New()
	today.Placeholder = "YYYY-MM-DD (today)"
	today.CharLimit = 10
	today.Width = 20
	today.Prompt = "From date:   "

	rate := textinput.New()
	rate.Placeholder = "stored rate"
	rate.CharLimit = 12
	rate.Width = 14
	rate.Prompt = "Hourly rate: "

	p := WindowPicker{
		inputs:    []textinput.Model{months, today, rate},
		maxWindow: maxWindow,
	}
	p.inputs[0].Focus()

	return p
}

func (m WindowPicker) Init() tea.Cmd {
	return textinput.Blink
}

func (m WindowPicker) Update(msg tea.Msg) (WindowPicker, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "tab", "down":
			return m.focus((m.focusIndex + 1) % len(m.inputs))
		case "shift+tab", "up":
			return m.focus((m.focusIndex + len(m.inputs) - 1) % len(m.inputs))
		case "enter":
			req, err := ParseWindow(m.inputs[0].Value(), m.inputs[1].Value(), m.inputs[2].Value(), m.maxWindow)
			if err != nil {
				m.err = err
				return m, nil
			}

			m.err = nil

			return m, func() tea.Msg {
				return WindowSelectedMsg{Request: req}
			}
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focusIndex], cmd = m.inputs[m.focusIndex].Update(msg)

	return m, cmd
}

func (m WindowPicker) focus(i int) (WindowPicker, tea.Cmd) {
	m.inputs[m.focusIndex].Blur()
	m.focusIndex = i
	m.inputs[i].Focus()

	return m, textinput.Blink
}

func (m WindowPicker) View() string {
	var b strings.Builder

	b.WriteString("Forecast Window:\n\n")

	for _, in := range m.inputs {
		b.WriteString(in.View())
		b.WriteString("\n")
	}

	b.WriteString("\n(Enter to confirm, Tab to switch, Esc to back)")

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("\n\nError: %v", m.err)))
	}

	return b.String()
}
