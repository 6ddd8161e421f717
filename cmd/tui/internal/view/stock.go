package view

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kmutua/metertrack/internal/report"
)

type StockModel struct {
	CommonModel
	reportService *report.Service

	table   table.Model
	faults  map[string]int
	loading bool
	err     error
}

func NewStockModel(reportSvc *report.Service) StockModel {
	columns := []table.Column{
		{Title: "Meter Type", Width: 15},
		{Title: "In Stock", Width: 10},
		{Title: "With Agents", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
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

	return StockModel{
		reportService: reportSvc,
		table:         t,
		loading:       true,
	}
}

func (m StockModel) Title() string     { return "Stock Levels" }
func (m StockModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m StockModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m StockModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stockLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.faults = msg.faults
		m.refreshTable(msg.remaining, msg.withAgents)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m StockModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading stock levels...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	faultLine := "Faulty returns: none pending"
	if len(m.faults) > 0 {
		faultLine = "Faulty returns:"
		for _, status := range sortedCountKeys(m.faults) {
			faultLine += fmt.Sprintf(" %s=%d", status, m.faults[status])
		}
	}

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			tableView,
			lipgloss.NewStyle().PaddingTop(1).Faint(true).Render(faultLine),
		),
	)
}

func (m *StockModel) refreshTable(remaining, withAgents map[string]int) {
	types := make(map[string]struct{}, len(remaining))
	for t := range remaining {
		types[t] = struct{}{}
	}
	for t := range withAgents {
		types[t] = struct{}{}
	}

	names := make([]string, 0, len(types))
	for t := range types {
		names = append(names, t)
	}
	sort.Strings(names)

	rows := make([]table.Row, 0, len(names))
	for _, t := range names {
		rows = append(rows, table.Row{
			t,
			fmt.Sprintf("%d", remaining[t]),
			fmt.Sprintf("%d", withAgents[t]),
		})
	}
	m.table.SetRows(rows)
}

func sortedCountKeys(counts map[string]int) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

// Messages

type stockLoadedMsg struct {
	remaining  map[string]int
	withAgents map[string]int
	faults     map[string]int
	err        error
}

func (m StockModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		remaining, err := m.reportService.RemainingByType(ctx)
		if err != nil {
			return stockLoadedMsg{err: err}
		}

		withAgents, err := m.reportService.AgentInventoryCountByType(ctx, nil)
		if err != nil {
			return stockLoadedMsg{err: err}
		}

		faults, err := m.reportService.FaultCountByStatus(ctx)
		if err != nil {
			return stockLoadedMsg{err: err}
		}

		return stockLoadedMsg{remaining: remaining, withAgents: withAgents, faults: faults}
	}
}
