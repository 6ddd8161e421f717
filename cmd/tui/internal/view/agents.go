package view

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/kmutua/metertrack/internal/agent"
)

type agentsState int

const (
	agentsStateBrowse agentsState = iota
	agentsStateRegister
)

var agentPhonePattern = regexp.MustCompile(`^(\+254|0)(7|1)\d{8}$`)

type AgentsModel struct {
	CommonModel
	agentService *agent.Service
	operatorID   uuid.UUID

	state  agentsState
	table  table.Model
	agents []*agent.Agent
	form   *huh.Form

	loading bool
	err     error
	status  string

	// Form bindings
	formName     string
	formPhone    string
	formLocation string
	formCounty   string
}

func NewAgentsModel(agentSvc *agent.Service, operatorID uuid.UUID) AgentsModel {
	columns := []table.Column{
		{Title: "Name", Width: 24},
		{Title: "Phone", Width: 15},
		{Title: "Location", Width: 18},
		{Title: "County", Width: 14},
		{Title: "Active", Width: 7},
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

	return AgentsModel{
		agentService: agentSvc,
		operatorID:   operatorID,
		table:        t,
		loading:      true,
	}
}

func (m AgentsModel) Title() string { return "Agents" }
func (m AgentsModel) ShortHelp() string {
	if m.state == agentsStateRegister {
		return "Navigate form | Esc: cancel"
	}
	return "Esc: back | n: new agent | x: toggle active | r: refresh"
}

func (m AgentsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m AgentsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case agentsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.agents = msg.agents
		m.refreshTable()
		return m, nil

	case agentSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		} else {
			m.status = fmt.Sprintf("%s agent %s.", msg.verb, msg.name)
		}
		m.state = agentsStateBrowse
		m.form = nil
		m.table.Focus()
		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case agentsStateBrowse:
		return m.updateBrowse(msg)
	case agentsStateRegister:
		return m.updateRegister(msg)
	}

	return m, nil
}

func (m AgentsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "n":
			return m.enterRegisterMode()
		case "x":
			return m, m.toggleActiveCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m AgentsModel) enterRegisterMode() (tea.Model, tea.Cmd) {
	m.formName = ""
	m.formPhone = ""
	m.formLocation = ""
	m.formCounty = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Name").
				Value(&m.formName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("phone").
				Title("Phone").
				Placeholder("0712345678").
				Value(&m.formPhone).
				Validate(func(s string) error {
					if !agentPhonePattern.MatchString(strings.ReplaceAll(s, " ", "")) {
						return fmt.Errorf("not a Kenyan mobile number")
					}
					return nil
				}),

			huh.NewInput().
				Key("location").
				Title("Location").
				Value(&m.formLocation),

			huh.NewInput().
				Key("county").
				Title("County").
				Value(&m.formCounty),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = agentsStateRegister
	m.table.Blur()
	return m, m.form.Init()
}

func (m AgentsModel) updateRegister(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = agentsStateBrowse
			m.form = nil
			m.table.Focus()
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveCmd()
}

func (m AgentsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading agents...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	content := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	if m.state == agentsStateRegister && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(fmt.Sprintf("Register Agent\n\n%s", m.form.View()))

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *AgentsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.agents))
	for _, a := range m.agents {
		active := "no"
		if a.Active {
			active = "yes"
		}
		rows = append(rows, table.Row{a.Name, a.Phone, a.Location, a.County, active})
	}
	m.table.SetRows(rows)
}

// Messages

type agentsLoadedMsg struct {
	agents []*agent.Agent
	err    error
}

func (m AgentsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		agents, err := m.agentService.List(ctx, agent.ListFilter{})
		return agentsLoadedMsg{agents: agents, err: err}
	}
}

type agentSavedMsg struct {
	verb string
	name string
	err  error
}

func (m AgentsModel) saveCmd() tea.Cmd {
	params := agent.CreateParams{
		Name:      m.formName,
		Phone:     m.formPhone,
		Location:  m.formLocation,
		County:    m.formCounty,
		CreatedBy: m.operatorID,
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		a, err := m.agentService.Create(ctx, params)
		if err != nil {
			return agentSavedMsg{err: err}
		}

		return agentSavedMsg{verb: "Registered", name: a.Name}
	}
}

func (m AgentsModel) toggleActiveCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.agents) {
		return nil
	}

	a := m.agents[idx]

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		verb := "Reactivated"
		var err error
		if a.Active {
			verb = "Deactivated"
			err = m.agentService.Deactivate(ctx, a.ID)
		} else {
			err = m.agentService.Reactivate(ctx, a.ID)
		}
		if err != nil {
			return agentSavedMsg{err: err}
		}

		return agentSavedMsg{verb: verb, name: a.Name}
	}
}
