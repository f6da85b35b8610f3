package commands

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"docrag/internal/rag"
	"docrag/internal/tui"
)

// NewChatCmd creates the chat command: an interactive terminal UI over
// the query operation.
func NewChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Interactive question answering",
		Args:  cobra.NoArgs,
		RunE:  runChat,
	}
}

func runChat(cmd *cobra.Command, args []string) error {
	// The TUI owns the terminal, so the app runs without a logger.
	a, err := newApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	m := tui.New(a.RAG, rag.DefaultTopK)
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
