package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"docrag/internal/converter"
	"docrag/internal/domain"
	"docrag/internal/pipeline"
)

var ingestOutputName string

// NewIngestCmd creates the ingest command: convert, persist and index
// a document in one step, then print a short digest of its content.
func NewIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest FILE",
		Short: "Convert a document and add it to the index",
		Args:  cobra.ExactArgs(1),
		RunE:  runIngest,
	}
	cmd.Flags().StringVarP(&ingestOutputName, "output-name", "n", "", "Artifact name without extension (defaults to the input stem)")
	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	a, err := newApp(true)
	if err != nil {
		return err
	}
	defer a.Close()
	if err := a.EnsureDirectories(); err != nil {
		return err
	}

	path := args[0]
	outputName := ingestOutputName
	if outputName == "" {
		outputName = stem(path)
	}

	doc := domain.Document{Name: outputName, Path: path, MediaType: converter.MediaTypeFor(path)}
	progress := pipeline.ProgressFunc(func(fraction float64, status string) {
		fmt.Fprintf(cmd.OutOrStdout(), "progress: %3.0f%% - %s\n", fraction*100, status)
	})
	outputPath, err := a.Pipeline.Process(doc, a.Config.Paths.Processed, progress)
	if err != nil {
		return err
	}

	// The pipeline only persists; indexing reads the artifact back.
	content, err := os.ReadFile(outputPath)
	if err != nil {
		return err
	}
	metadata := map[string]any{
		"source": filepath.Base(outputPath),
	}
	if doc.MediaType != "" {
		metadata["media_type"] = doc.MediaType
	}
	if err := a.Index.AddDocument(cmd.Context(), string(content), metadata); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Indexed: %s\n", outputPath)

	if digest := a.Digest.Digest(string(content)); digest != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "\nDigest: %s\n", digest)
	}
	return nil
}
