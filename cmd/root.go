package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/inovacc/petgallery/internal/application"
	"github.com/inovacc/petgallery/internal/catalog"
	"github.com/inovacc/petgallery/internal/config"
	"github.com/inovacc/petgallery/internal/core"
)

var (
	cfg    config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   application.AppName,
	Short: "Browse and download pet images",
	Long: `Petgallery fetches a pet catalog from a remote JSON endpoint and lets you
search, sort and select pets, then download the selected images.

Run without a command to open the interactive browser when attached to a
terminal, or to print the catalog otherwise.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(cmd.Flags())
		if err != nil {
			return err
		}

		cfg = c
		logger = setupLogger(cfg.Log.Level, cfg.Log.JSON, cmd.ErrOrStderr())

		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return runBrowse(cmd)
		}

		return runList(cmd, listOptions{})
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// GetRootCmd returns the root command for introspection purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Config file (default is $HOME/.config/petgallery/config.yaml)")
	pf.String("catalog-url", catalog.DefaultURL, "Catalog endpoint returning a JSON list of pets")
	pf.Duration("timeout", catalog.DefaultTimeout, "HTTP request timeout")
	pf.String("locale", core.DefaultLocale, "Locale used to order titles (BCP 47 tag)")
	pf.String("log-level", "info", "Log level (debug, info, warn, error)")
	pf.Bool("json-logs", false, "Output logs in JSON format")
}

// newClient builds the catalog client from the loaded configuration
func newClient() (*catalog.Client, error) {
	client, err := catalog.NewClient(catalog.Options{
		URL:     cfg.Catalog.URL,
		Timeout: cfg.HTTP.Timeout,
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}

	return client, nil
}

// newBrowser wires the client, the export directory and the sort locale into a Browser
func newBrowser() (*core.Browser, error) {
	client, err := newClient()
	if err != nil {
		return nil, err
	}

	dir, err := expandPath(cfg.Export.Dir)
	if err != nil {
		return nil, fmt.Errorf("invalid export directory: %w", err)
	}

	exporter := &core.Exporter{
		Images:   client,
		Saver:    core.DirSaver{Dir: dir},
		Logger:   logger,
		Parallel: cfg.Export.Parallel,
	}

	return core.NewBrowser(core.BrowserOptions{
		Source:   client,
		Exporter: exporter,
		Locale:   cfg.Sort.Locale,
	}), nil
}

// addExportFlags adds the flags shared by commands that save images
func addExportFlags(cmd *cobra.Command) {
	cmd.Flags().String("dir", ".", "Directory where images are saved")
	cmd.Flags().Int("parallel", 0, "Maximum concurrent downloads (0 = unbounded)")
}
