package main

import (
	"fmt"
	"path/filepath"

	"github.com/parawalk/parawalk/internal/index"
	"github.com/parawalk/parawalk/internal/pathutil"
	"github.com/parawalk/parawalk/internal/tui"
	"github.com/spf13/cobra"

	tea "github.com/charmbracelet/bubbletea"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Walk a directory and browse it interactively",
	Long:  `Walk a directory tree into an in-memory index, then open a TUI to browse it.`,
	RunE:  runTUI,
}

var (
	tuiRoot            string
	tuiMaxDepth        int
	tuiWorkers         int
	tuiSkipHidden      bool
	tuiPreloadMetadata bool
)

func init() {
	tuiCmd.Flags().StringVarP(&tuiRoot, "root", "r", ".", "Root directory to walk")
	tuiCmd.Flags().IntVar(&tuiMaxDepth, "max-depth", -1, "Maximum depth to descend to (-1 = unbounded)")
	tuiCmd.Flags().IntVarP(&tuiWorkers, "workers", "w", 0, "Worker count: 0 = ambient pool, 1 = serial, n>1 = dedicated pool")
	tuiCmd.Flags().BoolVar(&tuiSkipHidden, "skip-hidden", true, "Drop entries whose name starts with \".\"")
	tuiCmd.Flags().BoolVar(&tuiPreloadMetadata, "preload-metadata", true, "Fetch file metadata while reading each directory")
}

func runTUI(cmd *cobra.Command, args []string) error {
	root, err := filepath.Abs(tuiRoot)
	if err != nil {
		return fmt.Errorf("resolve root path: %w", err)
	}
	root = pathutil.Normalize(root)

	w, err := buildWalk(root, tuiMaxDepth, "", tuiWorkers, tuiSkipHidden, tuiPreloadMetadata, false)
	if err != nil {
		return err
	}

	db, err := index.Open()
	if err != nil {
		return fmt.Errorf("open in-memory index: %w", err)
	}
	defer db.Close()

	fmt.Printf("Walking %s...\n", root)
	if _, err := index.Ingest(db, w.Iter()); err != nil {
		return fmt.Errorf("ingest walk: %w", err)
	}

	model := tui.NewModel(db, root)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
