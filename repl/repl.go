// Package repl implements the Read-Eval-Print Loop for the demo
// language. It uses the Charm libraries (Bubbletea, Bubbles, and
// Lipgloss) to build an interactive terminal interface with a
// persistent symbol table across entries and a spinner while a
// statement is parsed.
package repl

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dr8co/langkit/demo"
	"github.com/dr8co/langkit/errlog"
	"github.com/sirupsen/logrus"
)

const (
	// Prompt is the default prompt for the REPL.
	Prompt = ">> "
	// ContPrompt is a continuation prompt. The REPL reads single-line
	// entries and does not display it.
	ContPrompt = ".. "
)

// Options configures the REPL's presentation.
type Options struct {
	NoColor bool // Disable styled output
	Debug   bool // Report parse timing after every entry
}

// Start initializes and runs the REPL with the given username.
func Start(username string, options Options) {
	p := tea.NewProgram(initialModel(username, options))
	if _, err := p.Run(); err != nil {
		fmt.Println("Error running program:", err)
	}
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7D56F4")).
			Bold(true)

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F87"))

	historyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#767676"))
)

type evalResultMsg struct {
	output  string
	isError bool
	elapsed time.Duration
	session *demo.Parser // updated session, carried forward even on a failed entry
}

type historyEntry struct {
	input          string
	output         string
	isError        bool
	evaluationTime time.Duration
}

type model struct {
	textInput textinput.Model
	spinner   spinner.Model
	history   []historyEntry

	session    *demo.Parser // nil until the first entry has been parsed
	username   string
	evaluating bool
	pending    string
	options    Options
}

func (m model) applyStyle(style lipgloss.Style, text string) string {
	if m.options.NoColor {
		return text
	}
	return style.Render(text)
}

func initialModel(username string, options Options) model {
	ti := textinput.New()
	ti.Placeholder = "let x = 1 + 2;"
	ti.Focus()
	ti.Width = 80
	ti.Prompt = promptStyle.Render(Prompt)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF79C6"))

	if options.NoColor {
		ti.Prompt = Prompt
		s.Style = lipgloss.NewStyle()
	}

	return model{
		textInput: ti,
		spinner:   s,
		username:  username,
		options:   options,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// evalCmd parses input as the next chunk of the REPL's session,
// appending to its symbol table via [demo.Continue] if one already
// exists, or starting a fresh one via [demo.Run].
func evalCmd(input string, session *demo.Parser) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()

		logger := logrus.New()
		logger.SetOutput(new(discardWriter))
		log := errlog.New(logger)

		var (
			next *demo.Parser
			err  error
		)
		if session == nil {
			next, _, err = demo.Run(input, "repl", nil, log)
		} else {
			next, _, err = demo.Continue(session, input, "repl", nil)
		}

		elapsed := time.Since(start)

		if err != nil {
			return evalResultMsg{output: err.Error(), isError: true, elapsed: elapsed, session: next}
		}
		if log.Errors() > 0 {
			return evalResultMsg{
				output:  fmt.Sprintf("%d syntax error(s) in this entry", log.Errors()),
				isError: true,
				elapsed: elapsed,
				session: next,
			}
		}
		return evalResultMsg{
			output:  "ok",
			isError: false,
			elapsed: elapsed,
			session: next,
		}
	}
}

type discardWriter struct{}

func (*discardWriter) Write(p []byte) (int, error) { return len(p), nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.evaluating {
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case evalResultMsg:
		m.evaluating = false
		m.history = append(m.history, historyEntry{
			input:          m.pending,
			output:         msg.output,
			isError:        msg.isError,
			evaluationTime: msg.elapsed,
		})
		if msg.session != nil {
			m.session = msg.session
		}
		m.pending = ""
		return m, nil

	case tea.KeyMsg:
		if m.evaluating && msg.Type != tea.KeyCtrlC {
			return m, m.spinner.Tick
		}

		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyCtrlD:
			return m, tea.Quit
		case tea.KeyEnter:
			input := m.textInput.Value()
			if input == "" {
				return m, nil
			}
			m.evaluating = true
			m.pending = input
			m.textInput.SetValue("")
			return m, evalCmd(input, m.session)
		}
	}

	if !m.evaluating {
		m.textInput, cmd = m.textInput.Update(msg)
	}
	if m.evaluating {
		return m, m.spinner.Tick
	}
	return m, cmd
}

func (m model) View() string {
	var s strings.Builder

	s.WriteString(m.applyStyle(titleStyle, " langkit demo REPL "))
	s.WriteString("\n")
	if m.username != "" {
		s.WriteString(fmt.Sprintf("\nHello %s! Enter let-statements and arithmetic.\n", m.username))
	}
	s.WriteString("\n")

	for _, entry := range m.history {
		s.WriteString(m.applyStyle(promptStyle, Prompt))
		s.WriteString(entry.input)
		s.WriteString("\n")
		if entry.isError {
			s.WriteString(m.applyStyle(errorStyle, entry.output))
		} else {
			s.WriteString(m.applyStyle(resultStyle, entry.output))
		}
		if m.options.Debug || entry.evaluationTime > 10*time.Millisecond {
			s.WriteString(m.applyStyle(historyStyle, fmt.Sprintf(" (%.2fs)", entry.evaluationTime.Seconds())))
		}
		s.WriteString("\n\n")
	}

	if m.evaluating {
		s.WriteString(m.applyStyle(promptStyle, Prompt))
		s.WriteString(m.pending)
		s.WriteString("\n")
		s.WriteString(m.spinner.View())
		s.WriteString(" parsing...\n\n")
	} else {
		s.WriteString(m.textInput.View())
		s.WriteString("\n")
	}

	s.WriteString(m.applyStyle(historyStyle, "\nPress Esc or Ctrl+C/D to exit"))
	return s.String()
}
