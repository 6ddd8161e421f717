package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/kmutua/metertrack/cmd/tui/internal/view"
	"github.com/kmutua/metertrack/internal/agent"
	agentStore "github.com/kmutua/metertrack/internal/agent/store"
	"github.com/kmutua/metertrack/internal/config"
	"github.com/kmutua/metertrack/internal/database"
	"github.com/kmutua/metertrack/internal/intake"
	"github.com/kmutua/metertrack/internal/meter"
	meterStore "github.com/kmutua/metertrack/internal/meter/store"
	"github.com/kmutua/metertrack/internal/report"
	reportStore "github.com/kmutua/metertrack/internal/report/store"
	"github.com/kmutua/metertrack/internal/search"
	searchStore "github.com/kmutua/metertrack/internal/search/store"
	"github.com/kmutua/metertrack/internal/user"
	userStore "github.com/kmutua/metertrack/internal/user/store"
)

type model struct {
	meterService  *meter.Service
	searchService *search.Service
	reportService *report.Service
	intakeService *intake.Service
	agentService  *agent.Service
	operatorID    uuid.UUID

	currentView View

	searchView  view.SearchModel
	stockView   view.StockModel
	intakeView  view.IntakeModel
	reportsView view.ReportsModel
	agentsView  view.AgentsModel
}

type View int

const (
	ViewMenu    View = 0
	ViewSearch  View = 1
	ViewStock   View = 2
	ViewIntake  View = 3
	ViewReports View = 4
	ViewAgents  View = 5
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	mode, err := cfg.MatchMode()
	if err != nil {
		slog.Error("invalid serial match mode", "error", err)
		os.Exit(1)
	}

	operatorID, err := uuid.Parse(cfg.TUI.OperatorID)
	if err != nil {
		slog.Error("TUI_OPERATOR_ID must be a profile UUID", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	userSvc := user.NewService(userStore.New(db))
	meterSvc := meter.NewService(meterStore.New(db, mode), userSvc, mode)
	searchSvc := search.NewService(searchStore.New(db), mode)
	reportSvc := report.NewService(reportStore.New(db))
	intakeSvc := intake.NewService()
	agentSvc := agent.NewService(agentStore.New(db))

	return model{
		meterService:  meterSvc,
		searchService: searchSvc,
		reportService: reportSvc,
		intakeService: intakeSvc,
		agentService:  agentSvc,
		operatorID:    operatorID,
		currentView:   ViewMenu,
		searchView:    view.NewSearchModel(searchSvc),
		stockView:     view.NewStockModel(reportSvc),
		intakeView:    view.NewIntakeModel(meterSvc, intakeSvc, operatorID),
		reportsView:   view.NewReportsModel(reportSvc),
		agentsView:    view.NewAgentsModel(agentSvc, operatorID),
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
				m.currentView = ViewSearch
				m.searchView = view.NewSearchModel(m.searchService)

				return m, m.searchView.Init()
			case "2":
				m.currentView = ViewStock
				m.stockView = view.NewStockModel(m.reportService)

				return m, m.stockView.Init()
			case "3":
				m.currentView = ViewIntake
				m.intakeView = view.NewIntakeModel(m.meterService, m.intakeService, m.operatorID)

				return m, m.intakeView.Init()
			case "4":
				m.currentView = ViewReports
				m.reportsView = view.NewReportsModel(m.reportService)

				return m, m.reportsView.Init()
			case "5":
				m.currentView = ViewAgents
				m.agentsView = view.NewAgentsModel(m.agentService, m.operatorID)

				return m, m.agentsView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewSearch:
		var newModel tea.Model
		newModel, cmd = m.searchView.Update(msg)
		m.searchView = newModel.(view.SearchModel)
	case ViewStock:
		var newModel tea.Model
		newModel, cmd = m.stockView.Update(msg)
		m.stockView = newModel.(view.StockModel)
	case ViewIntake:
		var newModel tea.Model
		newModel, cmd = m.intakeView.Update(msg)
		m.intakeView = newModel.(view.IntakeModel)
	case ViewReports:
		var newModel tea.Model
		newModel, cmd = m.reportsView.Update(msg)
		m.reportsView = newModel.(view.ReportsModel)
	case ViewAgents:
		var newModel tea.Model
		newModel, cmd = m.agentsView.Update(msg)
		m.agentsView = newModel.(view.AgentsModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"MeterTrack TUI\n\n" +
				"1. Find a Meter\n" +
				"2. Stock Levels\n" +
				"3. Manifest Intake\n" +
				"4. Sales Report\n" +
				"5. Agents\n\n" +
				"q. Quit",
		)
	case ViewSearch:
		return m.searchView.View()
	case ViewStock:
		return m.stockView.View()
	case ViewIntake:
		return m.intakeView.View()
	case ViewReports:
		return m.reportsView.View()
	case ViewAgents:
		return m.agentsView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
