package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var addMetadata string

// NewAddCmd creates the add command: index an existing markdown
// artifact.
func NewAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add FILE",
		Short: "Add a markdown artifact to the index",
		Args:  cobra.ExactArgs(1),
		RunE:  runAdd,
	}
	cmd.Flags().StringVarP(&addMetadata, "metadata", "m", "", "Metadata as JSON (a \"source\" key is added when absent)")
	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
	a, err := newApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	path := args[0]
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	metadata, err := parseFilter(addMetadata)
	if err != nil {
		return err
	}
	if metadata == nil {
		metadata = map[string]any{}
	}
	if _, ok := metadata["source"]; !ok {
		metadata["source"] = filepath.Base(path)
	}
	if err := a.Index.AddDocument(cmd.Context(), string(content), metadata); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Indexed: %s\n", path)
	return nil
}
