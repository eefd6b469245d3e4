package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/inovacc/petgallery/internal/common"
	"github.com/inovacc/petgallery/internal/encoding"
)

var configJSON bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Print the configuration after merging defaults, the config file,
PETGALLERY_* environment variables and command-line flags.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		if configJSON {
			return encoding.WriteJSON(out, cfg)
		}

		parallel := "unbounded"
		if cfg.Export.Parallel > 0 {
			parallel = strconv.Itoa(cfg.Export.Parallel)
		}

		items := map[string]string{
			"Catalog":   common.SanitizeURL(cfg.Catalog.URL),
			"Timeout":   cfg.HTTP.Timeout.String(),
			"Directory": cfg.Export.Dir,
			"Parallel":  parallel,
			"Locale":    cfg.Sort.Locale,
			"Log level": cfg.Log.Level,
			"JSON logs": fmt.Sprintf("%t", cfg.Log.JSON),
			"Log file":  cfg.Log.File,
		}

		printInfoBox(out, "Petgallery Configuration", items,
			[]string{"Catalog", "Timeout", "Directory", "Parallel", "Locale", "Log level", "JSON logs", "Log file"})

		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().BoolVar(&configJSON, "json", false, "Output as JSON")
}
