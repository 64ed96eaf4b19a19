package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mwinther/scoutline/internal/cli/formatter"
	"github.com/mwinther/scoutline/internal/engine"
)

// chatModel is the bubbletea Model for the conversational shell: a
// transcript viewport on top of a single-line prompt.
type chatModel struct {
	app    *App
	router *engine.Router
	sess   *engine.Session

	input      textinput.Model
	transcript viewport.Model
	lines      []string
	busy       bool
	ready      bool
	width      int
}

// turnDoneMsg delivers a finished turn back to the update loop.
type turnDoneMsg struct {
	query string
	res   *engine.Result
}

// noteDoneMsg delivers a finished analyst note.
type noteDoneMsg struct {
	player string
	text   string
	err    error
}

func newChatModel(app *App, router *engine.Router, sess *engine.Session) chatModel {
	ti := textinput.New()
	ti.Placeholder = `try "find me young wingers"`
	ti.Prompt = formatter.StyleHeader.Render("scout ❯ ")
	ti.Focus()

	m := chatModel{
		app:    app,
		router: router,
		sess:   sess,
		input:  ti,
	}
	m.lines = append(m.lines,
		formatter.Header("scoutline"),
		formatter.Dim(fmt.Sprintf("%d players loaded. Describe what you are looking for; /quit to leave.", sess.Dataset.Len())),
		"")
	return m
}

func (m chatModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		inputHeight := 2
		if !m.ready {
			m.transcript = viewport.New(msg.Width, msg.Height-inputHeight)
			m.ready = true
		} else {
			m.transcript.Width = msg.Width
			m.transcript.Height = msg.Height - inputHeight
		}
		m.refreshTranscript()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		}

	case turnDoneMsg:
		m.busy = false
		m.appendLines(formatter.FormatResult(msg.res))
		return m, nil

	case noteDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.appendLines(formatter.StyleRed.Render(fmt.Sprintf("Error: %v", msg.err)) + "\n")
		} else {
			m.appendLines(formatter.Header(msg.player) + "\n" + msg.text + "\n")
		}
		return m, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.transcript, cmd = m.transcript.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m chatModel) submit() (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	query := strings.TrimSpace(m.input.Value())
	if query == "" {
		return m, nil
	}
	m.input.Reset()

	if strings.HasPrefix(query, "/") {
		return m.runSlashCommand(query)
	}

	m.appendLines(formatter.StylePurple.Render("you ❯ ") + query + "\n")
	m.busy = true
	router, sess := m.router, m.sess
	return m, func() tea.Msg {
		return turnDoneMsg{query: query, res: router.ProcessTurn(context.Background(), sess, query)}
	}
}

func (m chatModel) runSlashCommand(input string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(input)
	switch fields[0] {
	case "/quit", "/exit":
		return m, tea.Quit

	case "/profiles":
		var b strings.Builder
		for _, name := range m.app.Registry.Names() {
			b.WriteString("  " + name + "\n")
		}
		m.appendLines(formatter.Header("profiles") + "\n" + b.String())
		return m, nil

	case "/logbooks":
		report := m.app.Logbooks.SchemaReport()
		if report == "" {
			report = formatter.Dim("No logbooks yet. Import one with: scoutline logbook import <name> <file.csv>")
		}
		m.appendLines(formatter.Header("logbooks") + "\n" + report + "\n")
		return m, nil

	case "/note":
		return m.runNote(fields[1:])

	default:
		m.appendLines(formatter.Dim(fmt.Sprintf("Unknown command %s. Available: /profiles /logbooks /note /quit", fields[0])) + "\n")
		return m, nil
	}
}

func (m chatModel) runNote(args []string) (tea.Model, tea.Cmd) {
	if m.app.Insight == nil {
		m.appendLines(formatter.Dim("Analyst notes need SCOUTLINE_LLM_ENABLED=true.") + "\n")
		return m, nil
	}
	if len(args) == 0 {
		m.appendLines(formatter.Dim("Usage: /note <player name>") + "\n")
		return m, nil
	}
	if m.sess.ActiveProfile == nil {
		m.appendLines(formatter.Dim("Start a profile search first so the note has a profile to judge against.") + "\n")
		return m, nil
	}

	player := strings.Join(args, " ")
	insightEngine, dataset, active := m.app.Insight, m.sess.Dataset, m.sess.ActiveProfile
	m.busy = true
	return m, func() tea.Msg {
		text, err := insightEngine.Note(context.Background(), dataset, player, active)
		return noteDoneMsg{player: player, text: text, err: err}
	}
}

func (m *chatModel) appendLines(block string) {
	m.lines = append(m.lines, strings.TrimRight(block, "\n"), "")
	m.refreshTranscript()
}

func (m *chatModel) refreshTranscript() {
	if !m.ready {
		return
	}
	m.transcript.SetContent(strings.Join(m.lines, "\n"))
	m.transcript.GotoBottom()
}

func (m chatModel) View() string {
	if !m.ready {
		return "loading…"
	}
	prompt := m.input.View()
	if m.busy {
		prompt = formatter.Dim("thinking…")
	}
	return m.transcript.View() + "\n" + prompt
}
