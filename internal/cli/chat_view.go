package cli

import (
	"context"
	"strings"

	"github.com/alexanderramin/agrismart/internal/cli/formatter"
	"github.com/alexanderramin/agrismart/internal/domain"
	"github.com/alexanderramin/agrismart/internal/i18n"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// chatTurnMsg carries the rendered outcome of a dispatched turn.
type chatTurnMsg struct {
	rendered string
	err      error
}

// chatModel is the bubbletea view of an interactive chat: a scrolling
// transcript above a single input line.
type chatModel struct {
	ctx     context.Context
	session *chatSession

	input   textinput.Model
	spinner spinner.Model
	vp      viewport.Model
	width   int
	height  int

	history  *inputHistory
	lines    []string
	busy     bool
	quitting bool
}

func newChatModel(ctx context.Context, sess *chatSession) chatModel {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = i18n.T(sess.lang, i18n.TypeMessage)
	ti.CharLimit = 2000
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = formatter.StyleGreen

	return chatModel{
		ctx:     ctx,
		session: sess,
		input:   ti,
		spinner: sp,
		vp:      viewport.New(0, 0),
		history: newInputHistory(sess.app.HistoryPath),
	}
}

func (m chatModel) Init() tea.Cmd {
	return nil
}

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.input.Width = msg.Width - lipgloss.Width(m.promptPrefix()) - 1
		m.layout()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m.quit()
		case tea.KeyEnter:
			return m.submit()
		case tea.KeyUp:
			if line, ok := m.history.prev(); ok {
				m.input.SetValue(line)
				m.input.CursorEnd()
			}
			return m, nil
		case tea.KeyDown:
			m.input.SetValue(m.history.next())
			m.input.CursorEnd()
			return m, nil
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.vp, cmd = m.vp.Update(msg)
			return m, cmd
		}

	case chatTurnMsg:
		m.busy = false
		m.appendLine(msg.rendered)
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m chatModel) View() string {
	if m.quitting {
		return formatter.Dim(i18n.T(m.session.lang, i18n.EndChat)) + "\n"
	}

	var status string
	if m.busy {
		status = m.spinner.View() + " " + formatter.Dim(i18n.T(m.session.lang, i18n.Thinking))
	}
	return m.header() + "\n" +
		m.vp.View() + "\n" +
		status + "\n" +
		m.promptPrefix() + m.input.View()
}

func (m chatModel) submit() (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	line := m.input.Value()
	m.input.Reset()
	m.history.add(line)

	action := m.session.interpret(line)
	switch {
	case action.quit:
		return m.quit()
	case action.turn != nil:
		m.appendLine(formatter.FormatUserTurn(action.turn.Text, action.imageName))
		m.busy = true
		return m, tea.Batch(m.spinner.Tick, m.sendCmd(*action.turn))
	case action.output != "":
		m.appendLine(action.output)
		m.layout()
		m.input.Placeholder = i18n.T(m.session.lang, i18n.TypeMessage)
	}
	return m, nil
}

func (m chatModel) sendCmd(turn domain.Turn) tea.Cmd {
	sess, ctx := m.session, m.ctx
	return func() tea.Msg {
		rendered, err := sess.send(ctx, turn)
		return chatTurnMsg{rendered: rendered, err: err}
	}
}

func (m chatModel) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.session.app.Chat.End(m.session.profile.Mobile)
	return m, tea.Quit
}

func (m *chatModel) appendLine(s string) {
	m.lines = append(m.lines, s)
	m.vp.SetContent(strings.Join(m.lines, "\n\n"))
	m.vp.GotoBottom()
}

// layout sizes the transcript to what the header, status and input leave.
func (m *chatModel) layout() {
	m.vp.Width = m.width
	m.vp.Height = max(m.height-lipgloss.Height(m.header())-3, 1)
	m.vp.GotoBottom()
}

func (m chatModel) header() string {
	return strings.TrimRight(formatter.FormatChatHeader(m.session.persona, m.session.lang), "\n")
}

func (m chatModel) promptPrefix() string {
	return formatter.PersonaStyle(m.session.persona).Render(string(m.session.persona)) + formatter.Dim("> ")
}

// runChatView runs the chat full screen until the user quits.
func runChatView(ctx context.Context, sess *chatSession) error {
	defer sess.app.Chat.End(sess.profile.Mobile)
	p := tea.NewProgram(newChatModel(ctx, sess), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
