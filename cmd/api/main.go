package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/kmutua/metertrack/internal/agent"
	agentStore "github.com/kmutua/metertrack/internal/agent/store"
	"github.com/kmutua/metertrack/internal/assistant"
	"github.com/kmutua/metertrack/internal/config"
	"github.com/kmutua/metertrack/internal/database"
	appHttp "github.com/kmutua/metertrack/internal/http"
	agentHandler "github.com/kmutua/metertrack/internal/http/agent"
	assistantHandler "github.com/kmutua/metertrack/internal/http/assistant"
	intakeHandler "github.com/kmutua/metertrack/internal/http/intake"
	meterHandler "github.com/kmutua/metertrack/internal/http/meter"
	reportHandler "github.com/kmutua/metertrack/internal/http/report"
	searchHandler "github.com/kmutua/metertrack/internal/http/search"
	"github.com/kmutua/metertrack/internal/intake"
	"github.com/kmutua/metertrack/internal/meter"
	meterStore "github.com/kmutua/metertrack/internal/meter/store"
	"github.com/kmutua/metertrack/internal/report"
	reportStore "github.com/kmutua/metertrack/internal/report/store"
	"github.com/kmutua/metertrack/internal/scheduler"
	"github.com/kmutua/metertrack/internal/search"
	searchStore "github.com/kmutua/metertrack/internal/search/store"
	"github.com/kmutua/metertrack/internal/user"
	userStore "github.com/kmutua/metertrack/internal/user/store"
)

func main() {
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

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var (
		userService      = user.NewService(userStore.New(db))
		meterService     = meter.NewService(meterStore.New(db, mode), userService, mode)
		agentService     = agent.NewService(agentStore.New(db))
		reportService    = report.NewService(reportStore.New(db))
		searchService    = search.NewService(searchStore.New(db), mode)
		intakeService    = intake.NewService()
		assistantService = assistant.NewService(cfg.OpenAI.APIKey, reportService)
	)

	var (
		meterH     = meterHandler.NewHandler(meterService)
		agentH     = agentHandler.NewHandler(agentService, userService)
		reportH    = reportHandler.NewHandler(reportService)
		searchH    = searchHandler.NewHandler(searchService)
		intakeH    = intakeHandler.NewHandler(intakeService, meterService)
		assistantH = assistantHandler.NewHandler(assistantService)
	)

	nightly := scheduler.New(cfg.Reconciliation.Schedule, reportService, meterService, slog.Default())
	if err := nightly.Start(); err != nil {
		slog.Error("failed to start scheduler", "error", err)
		os.Exit(1)
	}
	defer nightly.Stop()

	router := appHttp.New(cfg.Auth.JWTSecret, meterH, agentH, reportH, searchH, intakeH, assistantH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port, "serial_match_mode", cfg.SerialMatchMode)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
