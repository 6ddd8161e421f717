package view

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/kmutua/metertrack/internal/intake"
	"github.com/kmutua/metertrack/internal/meter"
)

const intakeTimeout = 2 * time.Minute

type intakeState int

const (
	intakeStateFilePick intakeState = iota
	intakeStatePreview
	intakeStateSaving
	intakeStateResult
)

type IntakeModel struct {
	CommonModel
	meterService  *meter.Service
	intakeService *intake.Service
	operatorID    uuid.UUID

	state   intakeState
	picker  filepicker.Model
	preview table.Model
	meters  []meter.NewMeter

	status string
	err    error
}

func NewIntakeModel(meterSvc *meter.Service, intakeSvc *intake.Service, operatorID uuid.UUID) IntakeModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	columns := []table.Column{
		{Title: "Serial", Width: 24},
		{Title: "Type", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return IntakeModel{
		meterService:  meterSvc,
		intakeService: intakeSvc,
		operatorID:    operatorID,
		picker:        fp,
		preview:       t,
	}
}

func (m IntakeModel) Title() string { return "Manifest Intake" }

func (m IntakeModel) ShortHelp() string {
	if m.state == intakeStatePreview {
		return "Enter: add to stock | Esc: cancel"
	}

	return "Esc: back | Enter: select"
}

func (m IntakeModel) Init() tea.Cmd {
	return m.picker.Init()
}

func (m IntakeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

		if m.state == intakeStatePreview {
			if msg.Type == tea.KeyEnter {
				m.state = intakeStateSaving
				m.status = fmt.Sprintf("Adding %d meters to stock...", len(m.meters))

				return m, m.saveCmd()
			}

			var cmd tea.Cmd
			m.preview, cmd = m.preview.Update(msg)

			return m, cmd
		}

	case parseResultMsg:
		if msg.err != nil {
			m.state = intakeStateResult
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		m.meters = msg.meters
		m.state = intakeStatePreview

		rows := make([]table.Row, 0, len(m.meters))
		for _, nm := range m.meters {
			rows = append(rows, table.Row{nm.SerialNumber, nm.Type})
		}
		m.preview.SetRows(rows)

		return m, nil

	case saveResultMsg:
		m.state = intakeStateResult
		if msg.err != nil {
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		m.status = fmt.Sprintf("Added %d meters to stock.", msg.count)

		return m, nil
	}

	if m.state != intakeStateFilePick {
		return m, nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if didSelect, path := m.picker.DidSelectFile(msg); didSelect {
		m.status = fmt.Sprintf("Parsing %s...", path)

		return m, m.parseCmd(path)
	}

	return m, cmd
}

func (m IntakeModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case intakeStatePreview:
		m.state = intakeStateFilePick
		m.meters = nil

		return m, nil
	case intakeStateResult:
		m.state = intakeStateFilePick
		m.err = nil
		m.status = ""

		return m, nil
	}

	return m, Back
}

func (m IntakeModel) View() string {
	switch m.state {
	case intakeStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("Select a supplier manifest:\n\n%s", m.picker.View()),
		)
	case intakeStatePreview:
		header := fmt.Sprintf("%d meters parsed. Enter to add them to stock.", len(m.meters))

		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.JoinVertical(lipgloss.Left,
				lipgloss.NewStyle().PaddingBottom(1).Render(header),
				lipgloss.NewStyle().
					BorderStyle(lipgloss.NormalBorder()).
					BorderForeground(lipgloss.Color("240")).
					Render(m.preview.View()),
			),
		)
	case intakeStateSaving:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case intakeStateResult:
		return m.viewResult()
	}

	return ""
}

func (m IntakeModel) viewResult() string {
	style := lipgloss.NewStyle().Padding(2)
	if m.err != nil {
		return style.Render(
			lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(m.status) +
				"\n\n(Esc to go back)",
		)
	}

	return style.Render(
		lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Render(m.status) +
			"\n\n(Esc to go back)",
	)
}

// Messages

type parseResultMsg struct {
	meters []meter.NewMeter
	err    error
}

type saveResultMsg struct {
	count int
	err   error
}

func (m IntakeModel) parseCmd(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return parseResultMsg{err: err}
		}
		defer f.Close()

		meters, err := m.intakeService.Parse(f)
		if err != nil {
			return parseResultMsg{err: err}
		}

		return parseResultMsg{meters: meters}
	}
}

func (m IntakeModel) saveCmd() tea.Cmd {
	meters := m.meters

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), intakeTimeout)
		defer cancel()

		err := m.meterService.AddMeters(ctx, meter.AddMetersParams{
			ActorID:        m.operatorID,
			IdempotencyKey: uuid.New(),
			Meters:         meters,
		})
		if err != nil {
			return saveResultMsg{err: err}
		}

		return saveResultMsg{count: len(meters)}
	}
}
