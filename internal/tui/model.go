package tui

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"docq/internal/service"
)

// QAPort is the TUI-facing subset of the pipeline.
type QAPort interface {
	Answer(ctx context.Context, question string) (service.Response, error)
	HasAnswerer() bool
}

// Model is the Bubble Tea model for the interactive Q&A session.
type Model struct {
	pipeline     QAPort
	input        textinput.Model
	sources      viewport.Model
	response     service.Response
	summary      string
	status       string
	cursor       int
	ready        bool
	lastQuestion string
}

// New creates a new TUI model instance. summary is the corpus overview
// shown under the header.
func New(pipeline QAPort, summary string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask a question and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	status := "Ready. Ask away."
	if !pipeline.HasAnswerer() {
		status = "Retrieval-only mode (no LLM configured). Ask away."
	}
	return Model{pipeline: pipeline, input: ti, sources: vp, summary: summary, status: status}
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events. The pipeline call is synchronous
// and blocks the UI for its duration, matching the one-question-at-a-time
// interaction model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, sh := sourceBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		_, ah := answerBoxStyle.GetFrameSize()
		reserved := 2 + 1 + qh + ah + 3 // header+summary, status, frames, answer lines
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.sources.Width = max(20, msg.Width)
		m.sources.Height = max(3, vh-sh)
		m.sources.SetContent(m.renderCurrentSource())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q != "" {
				resp, err := m.pipeline.Answer(context.Background(), q)
				if err != nil {
					m.status = "Error: " + err.Error()
					m.response = service.Response{}
				} else {
					m.response = resp
					m.cursor = 0
					m.lastQuestion = q
					if len(resp.Sources) == 0 {
						m.status = fmt.Sprintf("No matching chunks for %q", q)
					} else {
						m.status = fmt.Sprintf("%d chunk(s) retrieved for %q", len(resp.Sources), q)
					}
				}
				m.sources.SetContent(m.renderCurrentSource())
				return m, nil
			}
		case "down":
			if len(m.response.Sources) > 0 {
				m.cursor = (m.cursor + 1) % len(m.response.Sources)
				m.sources.SetContent(m.renderCurrentSource())
				return m, nil
			}
		case "up":
			if len(m.response.Sources) > 0 {
				m.cursor = (m.cursor - 1 + len(m.response.Sources)) % len(m.response.Sources)
				m.sources.SetContent(m.renderCurrentSource())
				return m, nil
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders header, corpus summary, answer panel, retrieved sources,
// question input and status line.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("docq")
	summary := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(m.summary)
	answer := answerBoxStyle.Render(m.renderAnswer())
	sources := sourceBoxStyle.Render(m.sources.View())
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	return header + "\n" + summary + "\n" + answer + "\n" + sources + "\n" + input + "\n" + status
}

func (m Model) renderAnswer() string {
	if m.lastQuestion == "" {
		return "Answers appear here."
	}
	if !m.pipeline.HasAnswerer() {
		return "No LLM configured; showing retrieved chunks only."
	}
	if m.response.Answer == "" {
		return "(empty answer)"
	}
	return m.response.Answer
}

func (m Model) renderCurrentSource() string {
	if len(m.response.Sources) == 0 {
		return "No chunks retrieved yet."
	}
	r := m.response.Sources[m.cursor]
	title := fmt.Sprintf("Chunk %d/%d  distance=%.4f (lower is closer)", m.cursor+1, len(m.response.Sources), r.Distance)
	body := highlightBestSentence(r.Text, m.lastQuestion)
	return title + "\n\n" + body
}

var (
	answerBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).Foreground(lipgloss.Color("11"))
	sourceBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	unicodeWordRe  = regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`)
	sentenceRe     = regexp.MustCompile(`(?m)(?U)([^.!?]+[.!?])`)
)

// highlightBestSentence emphasizes the sentence of the chunk sharing the
// most tokens with the question.
func highlightBestSentence(text, query string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}
	sentences := sentenceRe.FindAllString(text, -1)
	if len(sentences) == 0 {
		sentences = []string{strings.TrimSpace(text)}
	}
	qTokens := toTokenSet(query)
	if len(qTokens) == 0 {
		return strings.Join(sentences, " ")
	}
	bestIdx := 0
	bestScore := -1
	for i, s := range sentences {
		score := tokenOverlapScore(qTokens, s)
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}
	for i := range sentences {
		sent := strings.TrimSpace(sentences[i])
		if i == bestIdx {
			sentences[i] = highlightStyle.Render(sent)
		} else {
			sentences[i] = sent
		}
	}
	return strings.Join(sentences, " ")
}

func toTokenSet(s string) map[string]struct{} {
	tokens := unicodeWordRe.FindAllString(strings.ToLower(s), -1)
	m := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		m[t] = struct{}{}
	}
	return m
}

func tokenOverlapScore(queryTokens map[string]struct{}, sentence string) int {
	score := 0
	tokens := unicodeWordRe.FindAllString(strings.ToLower(sentence), -1)
	seen := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		if _, ok := queryTokens[t]; ok {
			score++
		}
	}
	return score
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
