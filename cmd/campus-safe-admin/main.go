package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ATRam3/campus-safe-admin-sub000/internal/api"
	"github.com/ATRam3/campus-safe-admin-sub000/internal/cache"
	"github.com/ATRam3/campus-safe-admin-sub000/internal/config"
	"github.com/ATRam3/campus-safe-admin-sub000/internal/presence"
	"github.com/ATRam3/campus-safe-admin-sub000/internal/session"
	"github.com/ATRam3/campus-safe-admin-sub000/internal/ui"
	"github.com/ATRam3/campus-safe-admin-sub000/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		fmt.Printf("Error creating data directory: %v\n", err)
		os.Exit(1)
	}

	// Log to a file; stdout belongs to the TUI.
	log, err := logger.New(cfg.LogLevel, cfg.LogPath())
	if err != nil {
		fmt.Printf("Error setting up logger: %v\n", err)
		os.Exit(1)
	}

	sessions, err := session.NewStore(cfg.SessionPath())
	if err != nil {
		fmt.Printf("Error opening session store: %v\n", err)
		os.Exit(1)
	}

	snapshots := cache.NewStore(cfg.CachePath())
	client := api.New(cfg.APIBaseURL, cfg.HTTPTimeout, sessions, log)
	presenceClient := presence.New(cfg.SocketURL, sessions, log)
	defer presenceClient.Close()

	m := ui.NewModel(client, sessions, presenceClient, snapshots, log)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running application: %v\n", err)
		os.Exit(1)
	}
}
