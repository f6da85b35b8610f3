package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	searchTopK   int
	searchFilter string
)

// NewSearchCmd creates the search command: raw retrieval without
// answer generation.
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Search indexed chunks by similarity",
		Args:  cobra.ExactArgs(1),
		RunE:  runSearch,
	}
	cmd.Flags().IntVarP(&searchTopK, "top-k", "k", 4, "Number of results to return")
	cmd.Flags().StringVarP(&searchFilter, "filter", "f", "", "Metadata filter as JSON (exact key/value match)")
	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	a, err := newApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	filter, err := parseFilter(searchFilter)
	if err != nil {
		return err
	}
	query := args[0]
	results, err := a.Index.Search(cmd.Context(), query, searchTopK, filter)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Query: %s\n\nResults (%d):\n\n", query, len(results))
	printSources(cmd.OutOrStdout(), results)
	return nil
}
