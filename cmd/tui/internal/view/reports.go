package view

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kmutua/metertrack/internal/report"
)

type ReportsModel struct {
	CommonModel
	reportService *report.Service

	dateFilterIdx int
	summary       *report.Summary
	loading       bool
	err           error
}

func NewReportsModel(reportSvc *report.Service) ReportsModel {
	return ReportsModel{
		reportService: reportSvc,
		loading:       true,
	}
}

func (m ReportsModel) Title() string     { return "Sales Report" }
func (m ReportsModel) ShortHelp() string { return "Esc: back | d: date filter | r: refresh" }

func (m ReportsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m ReportsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case summaryLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.summary = msg.summary
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "d":
			m.dateFilterIdx = (m.dateFilterIdx + 1) % 3
			m.loading = true
			return m, m.loadCmd()
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}

	return m, nil
}

func (m ReportsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading report...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	dateLabels := []string{"All Time", "This Month", "Last Month"}
	header := fmt.Sprintf("Period: [d] %s", activeStyle(dateLabels[m.dateFilterIdx]))

	s := m.summary

	var b strings.Builder
	fmt.Fprintf(&b, "Units sold: %d\n", s.TotalUnitsSold)
	fmt.Fprintf(&b, "Revenue:    %s\n\n", FormatMoney(s.TotalRevenue))

	b.WriteString("By meter type:\n")
	for _, t := range sortedCountKeys(toCounts(s.Earnings)) {
		e := s.Earnings[t]
		fmt.Fprintf(&b, "  %-12s %4d units  %s\n", t, e.Units, FormatMoney(e.Revenue))
	}

	b.WriteString("\nBy customer type:\n")
	for _, c := range sortedCountKeys(s.CustomerTypes) {
		fmt.Fprintf(&b, "  %-12s %4d\n", c, s.CustomerTypes[c])
	}

	b.WriteString("\nBy county:\n")
	for _, c := range sortedCountKeys(s.Counties) {
		fmt.Fprintf(&b, "  %-12s %4d\n", c, s.Counties[c])
	}

	panel := lipgloss.NewStyle().
		Padding(1, 2).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(b.String())

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().PaddingBottom(1).Render(header),
			panel,
		),
	)
}

func toCounts(earnings map[string]report.TypeEarnings) map[string]int {
	counts := make(map[string]int, len(earnings))
	for t, e := range earnings {
		counts[t] = e.Units
	}

	return counts
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func (m ReportsModel) dateRange() report.DateRange {
	now := time.Now()
	switch m.dateFilterIdx {
	case 1:
		s := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		e := s.AddDate(0, 1, 0).Add(-time.Nanosecond)
		return report.DateRange{From: &s, To: &e}
	case 2:
		s := time.Date(now.Year(), now.Month()-1, 1, 0, 0, 0, 0, now.Location())
		e := s.AddDate(0, 1, 0).Add(-time.Nanosecond)
		return report.DateRange{From: &s, To: &e}
	}

	return report.DateRange{}
}

// Messages

type summaryLoadedMsg struct {
	summary *report.Summary
	err     error
}

func (m ReportsModel) loadCmd() tea.Cmd {
	r := m.dateRange()

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		summary, err := m.reportService.Summarize(ctx, r)
		return summaryLoadedMsg{summary: summary, err: err}
	}
}
