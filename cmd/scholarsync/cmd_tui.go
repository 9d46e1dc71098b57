package main

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"scholarsync/cmd/scholarsync/shell"
	"scholarsync/cmd/scholarsync/ui"
	"scholarsync/internal/gateway"
	"scholarsync/internal/graph"
	"scholarsync/internal/logging"
	"scholarsync/internal/store"
	"scholarsync/internal/types"
)

var startView string

// buildDeps wires the store, gateway and styles every screen receives.
func buildDeps(ctx context.Context) (ui.Deps, error) {
	gw, err := gateway.NewFromConfig(ctx, cfg.LLM)
	if err != nil {
		return ui.Deps{}, fmt.Errorf("gateway: %w", err)
	}

	opts := graph.DefaultOptions()
	opts.Tick = cfg.GetGraphTick()

	return ui.Deps{
		Ctx:           ctx,
		Store:         store.NewMemoryStore(),
		Gateway:       gw,
		Styles:        ui.NewStyles(ui.ThemeFor(cfg.UI.Theme)),
		CurrentUserID: cfg.UI.CurrentUserID,
		Graph:         opts,
	}, nil
}

// runTUI starts the interactive interface.
func runTUI(cmd *cobra.Command, args []string) error {
	view, err := types.ParseView(startView)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(commandContext(cmd))
	defer cancel()

	deps, err := buildDeps(ctx)
	if err != nil {
		return err
	}

	m := shell.New(ctx, deps, view)
	defer m.Shutdown()

	logging.Boot("starting TUI: view=%s", view)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
