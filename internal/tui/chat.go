package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"docrag/internal/domain"
)

// QueryPort is the TUI-facing subset of the RAG orchestrator.
type QueryPort interface {
	Query(ctx context.Context, query string, k int, filter map[string]any) (domain.RAGResponse, error)
}

const previewRunes = 300

// Model is the Bubble Tea model for the chat view: a query box on the
// bottom, the answer with its cited sources above.
type Model struct {
	service  QueryPort
	topK     int
	input    textinput.Model
	viewport viewport.Model
	status   string
	busy     bool
	ready    bool
}

type answerMsg struct {
	query string
	resp  domain.RAGResponse
	err   error
}

// New creates a new chat model instance.
func New(service QueryPort, topK int) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask a question about your documents"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{service: service, topK: topK, input: ti, viewport: vp, status: "Ready."}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := answerBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 2 + qh + 1 // header, status, query box, spacer
		vh := msg.Height - reserved - rh
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = vh
		return m, nil
	case answerMsg:
		m.busy = false
		if msg.err != nil {
			m.status = "Error: " + msg.err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("Answered %q", msg.query)
		m.viewport.SetContent(renderResponse(msg.resp))
		m.viewport.GotoTop()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		if msg.String() == "enter" && !m.busy {
			q := strings.TrimSpace(m.input.Value())
			if q != "" {
				m.busy = true
				m.status = "Thinking..."
				service, topK := m.service, m.topK
				return m, func() tea.Msg {
					resp, err := service.Query(context.Background(), q, topK, nil)
					return answerMsg{query: q, resp: resp, err: err}
				}
			}
		}
	}
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// View renders the chat layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("docrag")
	answer := answerBoxStyle.Render(m.viewport.View())
	input := queryBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	return header + "\n" + answer + "\n" + input + "\n" + status
}

var (
	answerBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	sourceStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func renderResponse(resp domain.RAGResponse) string {
	var sb strings.Builder
	sb.WriteString(resp.Answer)
	if len(resp.Sources) == 0 {
		return sb.String()
	}
	sb.WriteString("\n\nSources:\n")
	for i, src := range resp.Sources {
		source := "unknown"
		if v, ok := src.Metadata["source"].(string); ok {
			source = v
		}
		line := fmt.Sprintf("%d. %s (score %.4f)\n   %s\n", i+1, source, src.Score, truncate(src.Content, previewRunes))
		sb.WriteString(sourceStyle.Render(line))
	}
	return sb.String()
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
