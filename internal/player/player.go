// Package player is a terminal caption player. It keeps its own playback
// clock and asks a timeline index which caption to show on every tick.
package player

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mgpai22/cuetrack/internal/caption"
	"github.com/mgpai22/cuetrack/internal/timeline"
)

const (
	defaultTick       = 50 * time.Millisecond
	defaultListHeight = 10
	defaultWidth      = 80
)

type Options struct {
	Start      time.Duration
	Tick       time.Duration
	ListHeight int
	Title      string
}

type tickMsg time.Time

type Model struct {
	index *timeline.Index
	title string
	tick  time.Duration

	position time.Duration
	end      time.Duration
	playing  bool
	lastTick time.Time

	active    caption.Caption
	hasActive bool
	current   int  // list position of the active caption, -1 for none
	rendered  bool // list content matches current

	list     viewport.Model
	width    int
	quitting bool
}

func New(ix *timeline.Index, opts Options) Model {
	if opts.Tick <= 0 {
		opts.Tick = defaultTick
	}
	if opts.ListHeight <= 0 {
		opts.ListHeight = defaultListHeight
	}

	var end time.Duration
	for _, c := range ix.Captions() {
		end = max(end, c.End)
	}

	vp := viewport.New(defaultWidth, opts.ListHeight)
	vp.Style = listStyle

	m := Model{
		index:    ix,
		title:    opts.Title,
		tick:     opts.Tick,
		position: max(opts.Start, 0),
		end:      end,
		playing:  true,
		list:     vp,
		width:    defaultWidth,
		current:  -1,
	}
	m.refresh()
	return m
}

func (m Model) Position() time.Duration { return m.position }

func (m Model) Playing() bool { return m.playing }

// Active reports the caption on screen.
func (m Model) Active() (caption.Caption, bool) { return m.active, m.hasActive }

func (m Model) Init() tea.Cmd {
	return m.nextTick()
}

func (m Model) nextTick() tea.Cmd {
	return tea.Tick(m.tick, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		now := time.Time(msg)
		if m.playing && !m.lastTick.IsZero() {
			m.advance(now.Sub(m.lastTick))
		}
		m.lastTick = now
		m.refresh()
		return m, m.nextTick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.list.Width = msg.Width
		m.rendered = false
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case " ", "space", "p":
			m.playing = !m.playing
			if m.playing && m.position >= m.end {
				m.position = 0
			}
		case "left", "h":
			if c, ok := m.index.Previous(m.position); ok {
				m.seek(c.Start)
			}
		case "right", "l":
			if c, ok := m.index.Next(m.position); ok {
				m.seek(c.Start)
			}
		case "r", "home":
			m.seek(0)
		case "[":
			m.seek(m.position - 5*time.Second)
		case "]":
			m.seek(m.position + 5*time.Second)
		default:
			var cmd tea.Cmd
			m.list, cmd = m.list.Update(msg)
			return m, cmd
		}
		m.refresh()
		return m, nil
	}
	return m, nil
}

func (m *Model) advance(elapsed time.Duration) {
	m.position += elapsed
	if m.position >= m.end {
		m.position = m.end
		m.playing = false
	}
}

func (m *Model) seek(t time.Duration) {
	m.position = min(max(t, 0), m.end)
}

// refresh re-reads the active caption and redraws the list only when it
// changed since the last call
func (m *Model) refresh() {
	m.active, m.hasActive = m.index.ActiveAt(m.position)

	current := -1
	if m.hasActive {
		if pos, ok := m.index.IndexOf(m.active); ok {
			current = pos
		}
	}
	if m.rendered && current == m.current {
		return
	}
	m.current = current
	m.rendered = true

	var sb strings.Builder
	for i, c := range m.index.Captions() {
		line := fmt.Sprintf("%s  %s",
			caption.FormatTimestamp(c.Start),
			strings.ReplaceAll(c.Text, "\n", " / "))
		if i == current {
			sb.WriteString(currentLineStyle.Render("> " + line))
		} else {
			sb.WriteString(lineStyle.Render("  " + line))
		}
		sb.WriteString("\n")
	}
	m.list.SetContent(sb.String())

	if current >= 0 {
		m.list.SetYOffset(current - m.list.Height/2)
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder

	status := "playing"
	if !m.playing {
		status = "paused"
	}
	header := fmt.Sprintf("%s / %s  [%s]",
		caption.FormatTimestamp(m.position),
		caption.FormatTimestamp(m.end),
		status)
	if m.title != "" {
		header = m.title + "  " + header
	}
	sb.WriteString(headerStyle.Render(header))
	sb.WriteString("\n\n")

	text := ""
	if m.hasActive {
		text = m.active.Text
	}
	sb.WriteString(captionStyle.Width(max(m.width-4, 20)).Render(text))
	sb.WriteString("\n\n")

	sb.WriteString(m.list.View())
	sb.WriteString(helpStyle.Render(
		"\n  space: play/pause • ←/h: previous • →/l: next • [/]: ±5s • r: restart • q: quit\n",
	))

	return sb.String()
}

// Run plays the index in the terminal until the user quits.
func Run(ix *timeline.Index, opts Options) error {
	p := tea.NewProgram(New(ix, opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("player failed: %w", err)
	}
	return nil
}
