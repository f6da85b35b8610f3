package pipeline

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"docrag/internal/domain"
)

// ProgressReporter receives fire-and-forget progress signals. Fractions
// are strictly increasing within one Process call, starting at 0.0 and
// ending at 1.0. Panics raised by an implementation are not intercepted
// by the pipeline; they propagate to the caller.
type ProgressReporter interface {
	OnProgress(fraction float64, status string)
}

// ProgressFunc adapts a plain function to ProgressReporter.
type ProgressFunc func(fraction float64, status string)

func (f ProgressFunc) OnProgress(fraction float64, status string) { f(fraction, status) }

// Processor converts a source document and persists the markdown
// artifact. Indexing is a separate step owned by the caller.
type Processor struct {
	converter domain.Converter
	log       *zap.Logger
}

func New(converter domain.Converter, log *zap.Logger) *Processor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Processor{converter: converter, log: log}
}

// Process converts the document and writes the result to
// {outputDir}/{doc.Name}.md, overwriting any existing artifact. On
// failure nothing partial is persisted and the returned error is a
// *domain.DocumentProcessingError.
func (p *Processor) Process(doc domain.Document, outputDir string, progress ProgressReporter) (string, error) {
	if progress != nil {
		progress.OnProgress(0.0, "started")
	}
	p.log.Debug("converting document", zap.String("path", doc.Path))

	markdown, err := p.converter.Convert(doc.Path)
	if err != nil {
		return "", err
	}
	if progress != nil {
		progress.OnProgress(0.5, "converted")
	}

	outputPath, err := p.SaveMarkdown(markdown, doc.Name, outputDir)
	if err != nil {
		return "", err
	}
	if progress != nil {
		progress.OnProgress(1.0, "complete")
	}
	p.log.Info("document processed",
		zap.String("path", doc.Path),
		zap.String("media_type", doc.MediaType),
		zap.String("output", outputPath),
	)
	return outputPath, nil
}

// SaveMarkdown writes markdown to {outputDir}/{name}.md, creating the
// directory if absent.
func (p *Processor) SaveMarkdown(markdown, name, outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", domain.NewDocumentProcessingError("create output directory", err)
	}
	outputPath := filepath.Join(outputDir, name+".md")
	if err := os.WriteFile(outputPath, []byte(markdown), 0o644); err != nil {
		return "", domain.NewDocumentProcessingError("write markdown artifact", err)
	}
	return outputPath, nil
}
