package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/inovacc/petgallery/internal/core"
)

var downloadAll bool

var downloadCmd = &cobra.Command{
	Use:   "download [title...]",
	Short: "Download the images of the given pets",
	Long: `Fetch the catalog, select the pets with the given titles and save each
image as "<title>.jpg" in the export directory.

Every image is retrieved and saved independently; one failure does not stop
the others.

Examples:
  petgallery download Rex Bella
  petgallery download --all --dir ./pets --parallel 4`,
	RunE: runDownload,
}

func init() {
	rootCmd.AddCommand(downloadCmd)
	addExportFlags(downloadCmd)
	downloadCmd.Flags().BoolVar(&downloadAll, "all", false, "Download every pet in the catalog")
}

func runDownload(cmd *cobra.Command, args []string) error {
	if !downloadAll && len(args) == 0 {
		return fmt.Errorf("specify at least one title or use --all")
	}

	browser, err := newBrowser()
	if err != nil {
		return err
	}

	if err := browser.Load(cmd.Context()); err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if downloadAll {
		browser.SelectAll()
	} else {
		for _, title := range selectTitles(browser, args) {
			_, _ = fmt.Fprintf(out, "Not in catalog: %s\n", title)
		}
	}

	batch, ok := browser.Download(cmd.Context())
	if !ok {
		_, _ = fmt.Fprintln(out, "Nothing selected, no images downloaded.")
		return nil
	}

	logger.Debug("download started",
		slog.String("batch_id", batch.ID),
		slog.Int("items", batch.Total),
	)

	_, _ = fmt.Fprintf(out, "Downloading %d images...\n\n", batch.Total)

	failed := 0
	done := 0

	for result := range batch.Events() {
		done++
		if !result.Success() {
			failed++
		}

		printProgress(out, done, batch.Total, result)
	}

	batch.Wait()

	_, _ = fmt.Fprintf(out, "\nSaved %d of %d images\n", batch.Total-failed, batch.Total)

	// failed items are already logged and printed; they do not fail the command
	return nil
}

// selectTitles selects the pets with the given titles and returns the titles not found
func selectTitles(browser *core.Browser, titles []string) []string {
	known := make(map[string]bool)
	for _, p := range browser.Pets() {
		known[p.ID] = true
	}

	var missing []string

	for _, title := range titles {
		if !known[title] {
			missing = append(missing, title)
			continue
		}

		if !browser.IsSelected(title) {
			browser.Toggle(title)
		}
	}

	return missing
}

// printProgress prints one line per finished image
func printProgress(w io.Writer, done, total int, result core.ItemResult) {
	if result.Success() {
		_, _ = fmt.Fprintf(w, "[%d/%d] %s -> %s (%.1fs)\n",
			done, total, result.Pet.Title, result.Path, result.Duration.Seconds())

		return
	}

	_, _ = fmt.Fprintf(w, "[%d/%d] %s FAILED: %v\n", done, total, result.Pet.Title, result.Err)
}
