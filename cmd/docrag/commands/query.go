package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"docrag/internal/app"
)

var (
	queryTopK        int
	queryFilter      string
	queryModel       string
	queryTemperature float64
)

// NewQueryCmd creates the query command: full retrieval-augmented
// answering with cited sources.
func NewQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query QUERY",
		Short: "Answer a question from the indexed documents",
		Args:  cobra.ExactArgs(1),
		RunE:  runQuery,
	}
	cmd.Flags().IntVarP(&queryTopK, "top-k", "k", 4, "Number of sources to retrieve")
	cmd.Flags().StringVarP(&queryFilter, "filter", "f", "", "Metadata filter as JSON (exact key/value match)")
	cmd.Flags().StringVarP(&queryModel, "model", "m", "", "Generation model (overrides config)")
	cmd.Flags().Float64VarP(&queryTemperature, "temperature", "t", 0, "Generation temperature (overrides config)")
	return cmd
}

func runQuery(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("model") {
		cfg.Generator.Model = queryModel
	}
	if cmd.Flags().Changed("temperature") {
		cfg.Generator.Temperature = queryTemperature
	}
	log, err := app.NewLogger(cfg.Logging)
	if err != nil {
		return err
	}
	a, err := app.New(cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	filter, err := parseFilter(queryFilter)
	if err != nil {
		return err
	}
	query := args[0]
	resp, err := a.RAG.Query(cmd.Context(), query, queryTopK, filter)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Query: %s\n\nAnswer:\n%s\n", query, resp.Answer)
	if len(resp.Sources) > 0 {
		fmt.Fprintf(out, "\nSources:\n\n")
		printSources(out, resp.Sources)
	}
	return nil
}
