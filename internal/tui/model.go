// Package tui is the live view for watch --tui. It renders the latest
// report published to an events.Store and the watch loop's status.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dtnitsch/wordhist/pkg/chart"
	"github.com/dtnitsch/wordhist/pkg/events"
	"github.com/dtnitsch/wordhist/pkg/manifest"
	"github.com/dustin/go-humanize"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FAFAFA")).Background(lipgloss.Color("#5B8DEF")).Padding(0, 1)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A0AEC0"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#E53E3E"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
)

type statusMsg string

type reportMsg manifest.Output

type errorMsg string

// Model is the bubbletea model for the watch view.
type Model struct {
	dir     string
	width   int
	status  string
	report  *manifest.Output
	err     string
	runs    int
	updated time.Time
}

func NewModel(dir string) Model {
	return Model{dir: dir, width: chart.DefaultWidth, status: "starting"}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case statusMsg:
		m.status = string(msg)
	case reportMsg:
		out := manifest.Output(msg)
		m.report = &out
		m.err = ""
		m.runs++
		m.updated = time.Now()
	case errorMsg:
		m.err = string(msg)
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("wordhist watch " + m.dir))
	b.WriteString("\n")

	status := fmt.Sprintf("status: %s | runs: %d", m.status, m.runs)
	if !m.updated.IsZero() {
		status += " | updated " + humanize.Time(m.updated)
	}
	b.WriteString(statusStyle.Render(status))
	b.WriteString("\n")
	if m.err != "" {
		b.WriteString(errorStyle.Render("error: " + m.err))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.report == nil {
		b.WriteString(statusStyle.Render("waiting for the first run..."))
	} else {
		meta := m.report.Meta
		b.WriteString(chart.Bars(chart.Title(meta.Mode, meta.Files, meta.TotalTokens), m.report.TopWords, m.width))
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(fmt.Sprintf("unique: %s | %d ms | workers=%d",
			humanize.Comma(int64(meta.UniqueTokens)), meta.TotalElapsedMs, meta.Workers)))
	}
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("q: quit"))
	return b.String()
}

// Message converts a store update into a model message. ok is false for keys
// the view does not show.
func Message(key string, value any) (tea.Msg, bool) {
	switch key {
	case events.KeyStatus:
		s, ok := value.(string)
		return statusMsg(s), ok
	case events.KeyReport:
		out, ok := value.(manifest.Output)
		return reportMsg(out), ok
	case events.KeyError:
		s, ok := value.(string)
		return errorMsg(s), ok
	}
	return nil, false
}

// Seed applies the values already in store, so a view started after the
// first publish still shows it. A stored error only counts while the status
// still says error.
func Seed(m Model, store *events.Store) Model {
	apply := func(key string) {
		value, ok := store.Get(key)
		if !ok {
			return
		}
		if msg, ok := Message(key, value); ok {
			next, _ := m.Update(msg)
			m = next.(Model)
		}
	}
	apply(events.KeyReport)
	apply(events.KeyStatus)
	if m.status == "error" {
		apply(events.KeyError)
	}
	return m
}

// Run shows the view until the user quits or ctx is done. Store updates are
// forwarded to the program as messages.
func Run(ctx context.Context, dir string, store *events.Store) error {
	p := tea.NewProgram(Seed(NewModel(dir), store), tea.WithAltScreen(), tea.WithContext(ctx))

	unsubscribe := store.SubscribeAll(func(key string, value any) {
		if msg, ok := Message(key, value); ok {
			p.Send(msg)
		}
	})
	defer unsubscribe()

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
