package commands

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"docrag/internal/app"
	"docrag/internal/config"
)

var cfgPath string

// NewRootCmd creates the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docrag",
		Short: "Question answering over your own documents",
		Long: `docrag converts documents to markdown, indexes them in a local
vector store, and answers natural-language questions with cited sources.

Typical flow:
  docrag ingest report.pdf
  docrag query "What does the report conclude?"`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to YAML config (defaults to ./config.yaml, then ~/.config/docrag/config.yaml)")
	cmd.AddCommand(
		NewProcessCmd(),
		NewAddCmd(),
		NewIngestCmd(),
		NewSearchCmd(),
		NewQueryCmd(),
		NewChatCmd(),
		NewVersionCmd(),
	)
	return cmd
}

// Execute runs the CLI.
func Execute() error {
	return NewRootCmd().Execute()
}

func loadConfig() (*config.AppConfig, error) {
	if cfgPath != "" {
		return config.Load(cfgPath)
	}
	cfg, _, err := config.LoadDefault()
	return cfg, err
}

// newApp builds the application context for a command invocation. A
// nil logger keeps the terminal clean for the TUI.
func newApp(withLogger bool) (*app.App, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	var log *zap.Logger
	if withLogger {
		log, err = app.NewLogger(cfg.Logging)
		if err != nil {
			return nil, err
		}
	}
	return app.New(cfg, log)
}
