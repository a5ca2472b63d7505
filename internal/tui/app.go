// Package tui is the interactive front-end: a goroutine picker, a stack view
// with a REPL command line, and a transcript view. All navigation semantics
// live in nav and service; this layer only routes keys and renders strings.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/jask/framewalk/internal/config"
	"github.com/jask/framewalk/internal/database/repository"
	"github.com/jask/framewalk/internal/dump"
	"github.com/jask/framewalk/internal/nav"
	"github.com/jask/framewalk/internal/service"
)

// hostCommands are handled here rather than by the navigator; the navigator
// knows them for "did you mean" suggestions.
var hostCommands = []string{"pop", "goroutines", "history", "help", "quit"}

// App ties together views.
type App struct {
	ctx     context.Context
	cfg     config.Config
	svc     *service.InspectService
	nav     *nav.Navigator
	session uuid.UUID
	dmp     *dump.Dump
	source  string

	state     appState
	gorCursor int
	input     string
	output    string
	status    string
	history   []repository.Entry
}

type appState string

const (
	viewGoroutines appState = "goroutines"
	viewStack      appState = "stack"
	viewHistory    appState = "history"
)

func New(ctx context.Context, cfg config.Config, svc *service.InspectService, d *dump.Dump, source string) *App {
	session := uuid.New()
	navigator := &nav.Navigator{
		Registry:    svc.Registry,
		Session:     session,
		DefaultHead: cfg.UI.HeadCount,
		Marker:      cfg.UI.CurrentMarker,
		Extra:       hostCommands,
	}
	a := &App{
		ctx:     ctx,
		cfg:     cfg,
		svc:     svc,
		nav:     navigator,
		session: session,
		dmp:     d,
		source:  source,
		state:   viewGoroutines,
	}
	// a single-goroutine dump needs no picker
	if len(d.Goroutines) == 1 {
		a.enterGoroutine(0)
	}
	return a
}

func (a *App) Init() tea.Cmd {
	return nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		switch a.state {
		case viewGoroutines:
			return a.handleGoroutinesKey(m)
		case viewHistory:
			return a.handleHistoryKey(m)
		default:
			return a.handleStackKey(m)
		}
	case historyMsg:
		a.history = []repository.Entry(m)
		a.state = viewHistory
	case errMsg:
		a.status = "error: " + m.Error()
	}
	return a, nil
}

func (a *App) handleGoroutinesKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "q", "ctrl+c":
		a.svc.EndSession(a.session)
		return a, tea.Quit
	case "up", "k":
		if a.gorCursor > 0 {
			a.gorCursor--
		}
	case "down", "j":
		if a.gorCursor < len(a.dmp.Goroutines)-1 {
			a.gorCursor++
		}
	case "enter":
		a.enterGoroutine(a.gorCursor)
	case "esc":
		if _, ok := a.svc.Registry.ActiveStack(a.session); ok {
			a.state = viewStack
		}
	}
	return a, nil
}

func (a *App) handleHistoryKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "ctrl+c":
		a.svc.EndSession(a.session)
		return a, tea.Quit
	case "esc", "q", "enter":
		if _, ok := a.svc.Registry.ActiveStack(a.session); ok {
			a.state = viewStack
		} else {
			a.state = viewGoroutines
		}
	}
	return a, nil
}

func (a *App) handleStackKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Type {
	case tea.KeyCtrlC:
		a.svc.EndSession(a.session)
		return a, tea.Quit
	case tea.KeyUp:
		a.runLine("up")
		return a, nil
	case tea.KeyDown:
		a.runLine("down")
		return a, nil
	case tea.KeyEsc:
		if a.input != "" {
			a.input = ""
			return a, nil
		}
		a.state = viewGoroutines
		return a, nil
	case tea.KeyEnter:
		line := strings.TrimSpace(a.input)
		a.input = ""
		if line == "" {
			return a, nil
		}
		return a.execCommand(line)
	case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
		if len(a.input) > 0 {
			a.input = a.input[:len(a.input)-1]
		}
	case tea.KeySpace:
		a.input += " "
	case tea.KeyRunes:
		a.input += string(m.Runes)
	}
	return a, nil
}

// runLine executes a navigation line outside the typed-command path (arrow
// keys), with the same recording and display as typed input.
func (a *App) runLine(line string) {
	out, err := a.nav.Dispatch(line)
	if err != nil {
		a.status = err.Error()
		a.svc.Record(a.ctx, a.session, line, err.Error())
		return
	}
	a.status = ""
	a.output = out
	a.svc.Record(a.ctx, a.session, line, "ok")

	// clamped at the top with somewhere to return to: point at pop
	if strings.HasPrefix(line, "up") && a.nav.HasPriorContext() {
		if st, ok := a.svc.Registry.ActiveStack(a.session); ok && st.CurrentIndex() == st.Len()-1 {
			a.status = "top of stack ('pop' returns to the outer context)"
		}
	}
}

func (a *App) execCommand(line string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(line)
	switch fields[0] {
	case "quit", "exit":
		a.svc.Record(a.ctx, a.session, line, "ok")
		a.svc.EndSession(a.session)
		return a, tea.Quit

	case "pop":
		if _, ok := a.svc.LeaveStack(a.session); !ok {
			a.status = "nothing to pop"
			a.svc.Record(a.ctx, a.session, line, "nothing to pop")
			return a, nil
		}
		a.status = ""
		a.output = ""
		a.svc.Record(a.ctx, a.session, line, "ok")
		if _, ok := a.svc.Registry.ActiveStack(a.session); !ok {
			a.state = viewGoroutines
		}
		return a, nil

	case "goroutines":
		a.state = viewGoroutines
		a.svc.Record(a.ctx, a.session, line, "ok")
		return a, nil

	case "history":
		limit := 20
		if len(fields) > 1 {
			if v, err := strconv.Atoi(fields[1]); err == nil && v > 0 {
				limit = v
			}
		}
		a.svc.Record(a.ctx, a.session, line, "ok")
		return a, a.loadHistory(limit)

	case "help":
		a.output = helpText
		a.status = ""
		a.svc.Record(a.ctx, a.session, line, "ok")
		return a, nil
	}

	a.runLine(line)
	return a, nil
}

func (a *App) enterGoroutine(i int) {
	if i < 0 || i >= len(a.dmp.Goroutines) {
		return
	}
	if _, err := a.svc.EnterGoroutine(a.session, a.dmp.Goroutines[i]); err != nil {
		a.status = "error: " + err.Error()
		return
	}
	a.state = viewStack
	a.status = ""
	if out, err := a.nav.CurrentFrame(); err == nil {
		a.output = out
	}
}

func (a *App) loadHistory(limit int) tea.Cmd {
	return func() tea.Msg {
		entries, err := a.svc.RecentHistory(a.ctx, a.session, limit)
		if err != nil {
			return errMsg{err}
		}
		return historyMsg(entries)
	}
}

func (a *App) View() string {
	switch a.state {
	case viewGoroutines:
		return a.renderGoroutines()
	case viewHistory:
		return a.renderHistory()
	default:
		return a.renderStack()
	}
}

// messages
type historyMsg []repository.Entry

type errMsg struct{ error }

// styles
var titleStyle = lipgloss.NewStyle().Bold(true).Underline(true)

const helpText = `up [n]                     select an older frame (clamps at the top)
down [n]                   select a newer frame (errors below the bottom)
frame [n]                  jump to frame n (-1 = outermost); bare: show current
show-stack [-v] [-H n] [-T n]  list frames, current one marked
pop                        leave the current stack
goroutines                 back to the goroutine picker
history [n]                show the command transcript
quit                       exit`

func (a *App) renderGoroutines() string {
	title := titleStyle.Render("framewalk - " + a.source)
	out := title + "\n"
	for i, g := range a.dmp.Goroutines {
		marker := " "
		if i == a.gorCursor {
			marker = a.marker()
		}
		out += fmt.Sprintf("%s %s (%d frames)\n", marker, g.Title(), len(g.Records))
	}
	out += "[enter] Inspect  [esc] Back to stack  [q] Quit"
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}

func (a *App) renderStack() string {
	title := titleStyle.Render("framewalk - " + a.source)
	listing, err := a.nav.ShowStack(0, 0, a.cfg.UI.Verbose)
	if err != nil {
		listing.Text = "error: " + err.Error()
	}
	out := title + "\n" + listing.Text + "\n"
	if listing.Total > 0 {
		out += fmt.Sprintf("(%d frames, depth %d)\n", listing.Total, a.svc.Registry.Depth(a.session))
	}
	if a.output != "" {
		out += "\n" + a.output + "\n"
	}
	out += fmt.Sprintf("\n> %s\n[enter] Run  [↑/↓] Move cursor  [esc] Goroutines  'help' for commands", a.input)
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}

func (a *App) renderHistory() string {
	title := titleStyle.Render("Command history")
	out := title + "\n"
	if len(a.history) == 0 {
		out += "(no commands recorded)\n"
	}
	for _, e := range a.history {
		out += fmt.Sprintf("%s  %-28s %s\n", e.IssuedAt.Format("15:04:05"), e.Input, e.Outcome)
	}
	out += "[esc] Back"
	return out
}

func (a *App) marker() string {
	if a.cfg.UI.CurrentMarker != "" {
		return a.cfg.UI.CurrentMarker
	}
	return "▶"
}
