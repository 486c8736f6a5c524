// Package display provides the terminal UI using Bubble Tea.
//
// The [UI] type draws the live scene (status bar, stage panel, cake map)
// above an input prompt at the bottom of the terminal. Feedback lines are
// printed above the rendered area via Program.Println / Printf, so
// concurrent writes never garble the display.
package display

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/ottocake/internal/domain"
)

// ── Styles ───────────────────────────────────────────────────────

var (
	barBg = lipgloss.NewStyle().
		Background(lipgloss.Color("#27272a")).
		Foreground(lipgloss.Color("#a1a1aa"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fde68a"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a1a1aa"))

	sepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#52525b"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	// ── Scene styles ──

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bbf7d0"))

	activeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fde68a")).
			Bold(true)

	pendingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a"))

	targetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f472b6")).
			Bold(true)

	flameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fbbf24")).
			Bold(true)

	// ── Output styles (soft palette) ──

	// BannerStyle is the muted slate of the startup banner.
	BannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	// Soft sky blue for game lines.
	chatStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bae6fd"))

	// Dimmed zinc for hints and metadata.
	secondaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a"))

	// Soft coral for rejections.
	urgentOutputStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#fca5a5"))

	userInputEchoStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#a1a1aa"))
)

// ── UI ───────────────────────────────────────────────────────────

// SnapshotSource supplies the most recent frame to draw.
type SnapshotSource interface {
	Latest() domain.Snapshot
}

// UI manages the terminal through Bubble Tea.
//
// Call [NewUI] then [UI.Run] (blocking). Other goroutines may safely
// call [UI.Println], [UI.Printf], and read from [UI.InputChan] and
// [UI.Events] at any time after [UI.WaitReady] returns.
type UI struct {
	program *tea.Program
	inputCh chan string
	eventCh chan domain.Event
	readyCh chan struct{}
	quitCh  chan struct{}
	source  SnapshotSource
	done    atomic.Bool
}

// NewUI creates the display. Call Run() to start.
func NewUI(source SnapshotSource) *UI {
	return &UI{
		source:  source,
		inputCh: make(chan string, 16),
		eventCh: make(chan domain.Event, 32),
		readyCh: make(chan struct{}),
		quitCh:  make(chan struct{}),
	}
}

// Println prints a line above the scene. Thread-safe. If the program
// hasn't started yet, falls back to fmt.Println.
func (u *UI) Println(a ...interface{}) {
	if u.program != nil && !u.done.Load() {
		u.program.Println(a...)
	} else {
		fmt.Println(a...)
	}
}

// Printf prints formatted text above the scene. Thread-safe.
func (u *UI) Printf(format string, a ...interface{}) {
	if u.program != nil && !u.done.Load() {
		u.program.Printf(format, a...)
	} else {
		fmt.Printf(format, a...)
	}
}

// InputChan returns completed command lines.
func (u *UI) InputChan() <-chan string { return u.inputCh }

// Events returns events produced directly by key presses (arrows, space
// and the viewing toggles).
func (u *UI) Events() <-chan domain.Event { return u.eventCh }

// ── Styled print helpers ─────────────────────────────────────────

// PrintChat prints a game line.
func (u *UI) PrintChat(text string) {
	u.Println(chatStyle.Render("  " + text))
}

// PrintHint prints a secondary/dimmed line.
func (u *UI) PrintHint(text string) {
	u.Println(secondaryStyle.Render("  " + text))
}

// PrintUrgent prints a rejection line.
func (u *UI) PrintUrgent(text string) {
	u.Println(urgentOutputStyle.Render("  " + text))
}

// PrintUserInput echoes the player's typed command into the scrollback.
func (u *UI) PrintUserInput(text string) {
	u.Println(promptStyle.Render("cake") + secondaryStyle.Render("> ") + userInputEchoStyle.Render(text))
}

// WaitReady blocks until the Bubble Tea event loop is running.
func (u *UI) WaitReady() { <-u.readyCh }

// Quit tells Bubble Tea to exit.
func (u *UI) Quit() {
	if u.program != nil {
		u.program.Quit()
	}
}

// QuitChan is closed when Run returns.
func (u *UI) QuitChan() <-chan struct{} { return u.quitCh }

// Run starts the Bubble Tea event loop. Blocks until quit.
func (u *UI) Run() error {
	ti := textinput.New()
	// Plain-text prompt so the textinput width math stays correct.
	ti.Prompt = "cake> "
	ti.PromptStyle = promptStyle
	ti.TextStyle = userInputEchoStyle
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#94a3b8"))
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 60 // updated on first WindowSizeMsg

	m := model{
		source:  u.source,
		input:   ti,
		inputCh: u.inputCh,
		eventCh: u.eventCh,
		readyCh: u.readyCh,
		echoFn: func(v string) {
			u.PrintUserInput(v)
		},
	}
	if u.source != nil {
		m.snap = u.source.Latest()
	}

	u.program = tea.NewProgram(m)
	_, err := u.program.Run()
	u.done.Store(true)
	close(u.quitCh)
	return err
}

// ── Bubble Tea model ─────────────────────────────────────────────

type model struct {
	source  SnapshotSource
	input   textinput.Model
	inputCh chan<- string
	eventCh chan<- domain.Event
	readyCh chan struct{}
	echoFn  func(string)
	snap    domain.Snapshot
	width   int
}

type tickMsg time.Time

// frameInterval is how often the scene is redrawn from the latest snapshot.
const frameInterval = 50 * time.Millisecond

func (m model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		tickCmd(),
		signalReady(m.readyCh),
		tea.SetWindowTitle("OttoCake"),
	)
}

func signalReady(ch chan struct{}) tea.Cmd {
	return func() tea.Msg {
		close(ch)
		return nil
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// keyEvent maps a key press on an empty prompt to a game event.
func keyEvent(msg tea.KeyMsg, mode domain.Mode) (domain.Event, bool) {
	switch msg.Type {
	case tea.KeyUp:
		return domain.Event{Type: domain.EventDirection, Direction: domain.DirUp}, true
	case tea.KeyDown:
		return domain.Event{Type: domain.EventDirection, Direction: domain.DirDown}, true
	case tea.KeyLeft:
		return domain.Event{Type: domain.EventDirection, Direction: domain.DirLeft}, true
	case tea.KeyRight:
		return domain.Event{Type: domain.EventDirection, Direction: domain.DirRight}, true
	case tea.KeySpace:
		return domain.Event{Type: domain.EventConfirm}, true
	case tea.KeyRunes:
		if mode != domain.ModeViewing || len(msg.Runes) != 1 {
			return domain.Event{}, false
		}
		switch msg.Runes[0] {
		case 'k':
			return domain.Event{Type: domain.EventTheme}, true
		case 'l':
			return domain.Event{Type: domain.EventLight}, true
		case 'c':
			return domain.Event{Type: domain.EventCandle}, true
		}
	}
	return domain.Event{}, false
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.input.Value() == "" {
			if ev, ok := keyEvent(msg, m.snap.Stage.Mode); ok {
				m.send(ev)
				return m, nil
			}
		}
		if msg.Type == tea.KeyEnter {
			v := m.input.Value()
			m.input.Reset()
			if strings.TrimSpace(v) == "" {
				m.send(domain.Event{Type: domain.EventConfirm})
				return m, nil
			}
			m.inputCh <- v
			// Echo from a Cmd so it runs outside Update.
			echoFn := m.echoFn
			return m, func() tea.Msg {
				echoFn(v)
				return nil
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		const promptLen = 6
		if msg.Width > promptLen {
			m.input.Width = msg.Width - promptLen
		}
		return m, nil

	case tickMsg:
		if m.source != nil {
			m.snap = m.source.Latest()
		}
		return m, tickCmd()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// send drops the event when the buffer is full; a held arrow key must not
// stall the UI.
func (m model) send(ev domain.Event) {
	select {
	case m.eventCh <- ev:
	default:
	}
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(renderBar(m.snap, m.width))
	b.WriteByte('\n')
	if stage := RenderStage(m.snap); stage != "" {
		b.WriteString(stage)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	b.WriteString(m.input.View())
	return b.String()
}
