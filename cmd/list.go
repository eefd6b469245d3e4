package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/inovacc/petgallery/internal/encoding"
	"github.com/inovacc/petgallery/internal/model"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the pet catalog",
	Long: `Fetch the catalog and print the pets that match the search term,
ordered by title.

Examples:
  petgallery list
  petgallery list --search dog --desc
  petgallery list --json`,
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList(cmd, listOpts)
	},
}

type listOptions struct {
	search string
	desc   bool
	json   bool
}

var listOpts listOptions

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listOpts.search, "search", "", "Only show pets whose title or description contains the term")
	listCmd.Flags().BoolVar(&listOpts.desc, "desc", false, "Sort titles Z-A")
	listCmd.Flags().BoolVar(&listOpts.json, "json", false, "Output as JSON")
}

// PetListItem represents a pet in JSON output
type PetListItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Created     string `json:"created"`
}

func runList(cmd *cobra.Command, opts listOptions) error {
	browser, err := newBrowser()
	if err != nil {
		return err
	}

	if err := browser.Load(cmd.Context()); err != nil {
		return err
	}

	browser.SetSearch(opts.search)
	if opts.desc {
		browser.SetSort(model.Descending)
	}

	pets := browser.Visible()
	out := cmd.OutOrStdout()

	if opts.json {
		items := make([]PetListItem, 0, len(pets))
		for _, p := range pets {
			items = append(items, PetListItem{
				Title:       p.Title,
				Description: p.Description,
				URL:         p.ImageURL,
				Created:     p.CreatedAt,
			})
		}

		return encoding.WriteJSON(out, items)
	}

	if len(pets) == 0 {
		_, _ = fmt.Fprintln(out, "No pets found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	_, _ = fmt.Fprintln(w, "TITLE\tDESCRIPTION\tADDED")
	_, _ = fmt.Fprintln(w, "-----\t-----------\t-----")

	for _, p := range pets {
		added := p.CreatedAt
		if t, ok := p.Created(); ok {
			added = t.Format("2006-01-02")
		}

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", p.Title, truncateString(p.Description, 50), added)
	}

	if err := w.Flush(); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(out, "\n%d of %d pets\n", len(pets), len(browser.Pets()))

	return nil
}
