package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"docrag/internal/converter"
	"docrag/internal/domain"
	"docrag/internal/pipeline"
)

var (
	processOutputDir  string
	processOutputName string
)

// NewProcessCmd creates the process command: convert a document to
// markdown and persist the artifact, without indexing it.
func NewProcessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process FILE",
		Short: "Convert a document to a markdown artifact",
		Long: `Convert a document to markdown and write it to the processed
directory. Supported formats: pdf, docx, pptx, xlsx, txt, md, html,
htm, csv, json, xml, jpg, jpeg, png.`,
		Args: cobra.ExactArgs(1),
		RunE: runProcess,
	}
	cmd.Flags().StringVarP(&processOutputDir, "output-dir", "o", "", "Output directory (defaults to the configured processed dir)")
	cmd.Flags().StringVarP(&processOutputName, "output-name", "n", "", "Output file name without extension (defaults to the input stem)")
	return cmd
}

func runProcess(cmd *cobra.Command, args []string) error {
	a, err := newApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	path := args[0]
	outputDir := processOutputDir
	if outputDir == "" {
		outputDir = a.Config.Paths.Processed
	}
	outputName := processOutputName
	if outputName == "" {
		outputName = stem(path)
	}

	doc := domain.Document{Name: outputName, Path: path, MediaType: converter.MediaTypeFor(path)}
	progress := pipeline.ProgressFunc(func(fraction float64, status string) {
		fmt.Fprintf(cmd.OutOrStdout(), "progress: %3.0f%% - %s\n", fraction*100, status)
	})
	outputPath, err := a.Pipeline.Process(doc, outputDir, progress)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Converted: %s\n", outputPath)
	return nil
}
