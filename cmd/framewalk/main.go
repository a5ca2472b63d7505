package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/framewalk/internal/config"
	"github.com/jask/framewalk/internal/database"
	"github.com/jask/framewalk/internal/database/repository"
	"github.com/jask/framewalk/internal/dump"
	"github.com/jask/framewalk/internal/logging"
	"github.com/jask/framewalk/internal/registry"
	"github.com/jask/framewalk/internal/service"
	"github.com/jask/framewalk/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := os.MkdirAll(filepath.Dir(cfg.History.Path), 0o755); err != nil {
		log.Fatalf("mkdir history dir: %v", err)
	}

	db, err := database.Open(cfg.History.Path)
	if err != nil {
		log.Fatalf("open history db: %v", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db, "internal/database/migrations"); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	svc := &service.InspectService{
		Registry: registry.New(),
		History:  repository.NewHistoryRepo(db),
		Logger:   logger,
	}

	var (
		d      *dump.Dump
		source string
	)
	if len(os.Args) > 1 {
		source = os.Args[1]
		d, err = svc.LoadDumpFile(source)
		if err != nil {
			log.Fatalf("load dump: %v", err)
		}
	} else {
		// no dump given: inspect the running process itself
		source = "self"
		d = svc.LoadSelf()
	}

	app := tui.New(ctx, cfg, svc, d, source)
	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "framewalk: %v\n", err)
		os.Exit(1)
	}
}
