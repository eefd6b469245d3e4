package cmd

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/inovacc/petgallery/internal/cli"
	"github.com/inovacc/petgallery/internal/encoding"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Open the interactive pet browser",
	Long: `Open a terminal UI listing every pet in the catalog.

Keys:
  /        search by title or description
  s        toggle sort order
  space    select or deselect the highlighted pet
  a        select every pet
  c        clear the selection
  d        download the selected images
  r        refetch the catalog
  q        quit

Logs are written to the log file while the UI owns the terminal.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBrowse(cmd)
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
	addExportFlags(browseCmd)
	browseCmd.Flags().String("log-file", "", "Log file used while the UI is running")
}

func runBrowse(cmd *cobra.Command) error {
	path := cfg.Log.File
	if path == "" {
		return fmt.Errorf("log file is not configured")
	}

	if err := encoding.EnsureParentDir(path); err != nil {
		return fmt.Errorf("failed to prepare log file: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	defer func() { _ = f.Close() }()

	logger = setupLogger(cfg.Log.Level, cfg.Log.JSON, f)

	browser, err := newBrowser()
	if err != nil {
		return err
	}

	logger.Info("browser started",
		slog.String("catalog", cfg.Catalog.URL),
		slog.String("dir", cfg.Export.Dir),
	)

	m := cli.NewGalleryModel(cmd.Context(), browser, logger)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("UI error: %w", err)
	}

	if m.Downloading() {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Downloads still in progress were cancelled.")
	}

	return nil
}
