package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kmutua/metertrack/internal/search"
)

type SearchModel struct {
	CommonModel
	searchService *search.Service

	results table.Model
	query   textinput.Model
	hits    []search.Hit

	searched bool
	loading  bool
	err      error
}

func NewSearchModel(searchSvc *search.Service) SearchModel {
	q := textinput.New()
	q.Placeholder = "Serial number or prefix..."
	q.CharLimit = 64
	q.Width = 40
	q.Focus()

	columns := []table.Column{
		{Title: "Serial", Width: 20},
		{Title: "Type", Width: 12},
		{Title: "Location", Width: 14},
		{Title: "Detail", Width: 50},
	}

	t := table.New(
		table.WithColumns(columns),
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

	return SearchModel{
		searchService: searchSvc,
		query:         q,
		results:       t,
	}
}

func (m SearchModel) Title() string { return "Serial Search" }
func (m SearchModel) ShortHelp() string {
	return "Enter: search | tab: switch focus | Esc: back"
}

func (m SearchModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m SearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case searchResultMsg:
		m.loading = false
		m.searched = true
		m.err = msg.err
		m.hits = msg.hits
		m.refreshTable()
		return m, nil

	case tea.WindowSizeMsg:
		m.results.SetHeight(msg.Height - 12)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "tab":
			if m.query.Focused() {
				m.query.Blur()
				m.results.Focus()
			} else {
				m.results.Blur()
				m.query.Focus()
			}
			return m, nil
		case "enter":
			if m.query.Focused() && strings.TrimSpace(m.query.Value()) != "" {
				m.loading = true
				return m, m.searchCmd(m.query.Value())
			}
		}
	}

	var cmd tea.Cmd
	if m.query.Focused() {
		m.query, cmd = m.query.Update(msg)
	} else {
		m.results, cmd = m.results.Update(msg)
	}

	return m, cmd
}

func (m SearchModel) View() string {
	header := lipgloss.NewStyle().PaddingBottom(1).Render(
		fmt.Sprintf("Find a meter: %s", m.query.View()),
	)

	if m.loading {
		return lipgloss.NewStyle().Padding(1).Render(header + "\nSearching...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(1).Render(
			header + "\n" + fmt.Sprintf("Error: %v", m.err),
		)
	}

	body := ""
	switch {
	case !m.searched:
		body = lipgloss.NewStyle().Faint(true).Render("Type a serial and press Enter.")
	case len(m.hits) == 0:
		body = lipgloss.NewStyle().Faint(true).Render("No meters matched.")
	default:
		body = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Render(m.results.View())
	}

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, body),
	)
}

func (m *SearchModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.hits))
	for _, h := range m.hits {
		rows = append(rows, table.Row{
			h.SerialNumber,
			h.MeterType,
			string(h.Location),
			hitDetail(h),
		})
	}
	m.results.SetRows(rows)
}

func hitDetail(h search.Hit) string {
	switch {
	case h.Stock != nil:
		return fmt.Sprintf("added %s by %s", FormatDate(h.Stock.AddedAt), h.Stock.AdderName)
	case h.Agent != nil:
		return fmt.Sprintf("held by %s since %s", h.Agent.AgentName, FormatDate(h.Agent.AssignedAt))
	case h.Sold != nil:
		detail := fmt.Sprintf("%s to %s @ %s [%s]",
			FormatDate(h.Sold.SoldAt), h.Sold.Recipient, FormatMoney(h.Sold.UnitPrice), h.Sold.Status)
		if h.Sold.ReplacementSerial != "" {
			detail += fmt.Sprintf(" (replaced by %s)", h.Sold.ReplacementSerial)
		}
		return detail
	case h.Fault != nil:
		return fmt.Sprintf("%s: %s (returned %s by %s)",
			h.Fault.Status, h.Fault.FaultDescription, FormatDate(h.Fault.ReturnedAt), h.Fault.ReturnerName)
	}

	return ""
}

// Messages

type searchResultMsg struct {
	hits []search.Hit
	err  error
}

func (m SearchModel) searchCmd(input string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		hits, err := m.searchService.Search(ctx, input)
		return searchResultMsg{hits: hits, err: err}
	}
}
