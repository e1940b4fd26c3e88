package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pitsweeper/internal/session"
)

// tickMsg drives automatic stepping.
type tickMsg time.Time

// stepMsg carries the outcome of one runner step.
type stepMsg struct {
	step session.Step
	done bool
	err  error
}

// WatchModel is the bubbletea page for watching a live episode.
type WatchModel struct {
	runner *session.Runner
	delay  time.Duration

	log      viewport.Model
	lines    []string
	paused   bool
	done     bool
	err      error
	finished session.Result
	width    int
}

// NewWatchModel builds the watch page over a prepared runner.
func NewWatchModel(runner *session.Runner, delay time.Duration) WatchModel {
	vp := viewport.New(48, 12)
	return WatchModel{
		runner: runner,
		delay:  delay,
		log:    vp,
	}
}

// Init schedules the first step.
func (m WatchModel) Init() tea.Cmd {
	return m.tick()
}

func (m WatchModel) tick() tea.Cmd {
	return tea.Tick(m.delay, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m WatchModel) stepOnce() tea.Cmd {
	return func() tea.Msg {
		step, done, err := m.runner.StepOnce(context.Background())
		return stepMsg{step: step, done: done, err: err}
	}
}

// Update handles key, tick, and step messages.
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
			if !m.paused && !m.done {
				return m, m.tick()
			}
		case "n":
			if m.paused && !m.done {
				return m, m.stepOnce()
			}
		}
		var cmd tea.Cmd
		m.log, cmd = m.log.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.log.Width = msg.Width - m.runner.Maze().Width() - 8
		if m.log.Width < 24 {
			m.log.Width = 24
		}
		return m, nil

	case tickMsg:
		if m.paused || m.done {
			return m, nil
		}
		return m, m.stepOnce()

	case stepMsg:
		if msg.err != nil {
			m.err = msg.err
			m.done = true
			return m, nil
		}
		if msg.step.Index > 0 {
			m.appendLine(fmt.Sprintf("step %-3d %s read %q -> %s score=%d kb=%d",
				msg.step.Index, msg.step.Perception.Loc, string(msg.step.Perception.Tile),
				msg.step.Target, msg.step.Score, msg.step.KBSize))
		}
		if msg.done {
			m.done = true
			maze := m.runner.Maze()
			m.finished = session.Result{
				Reached: maze.Done(),
				Steps:   maze.Moves(),
				Score:   maze.Score(),
				PitHits: maze.PitHits(),
			}
			m.appendLine("episode finished")
			return m, nil
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *WatchModel) appendLine(line string) {
	m.lines = append(m.lines, line)
	if len(m.lines) > 500 {
		m.lines = m.lines[len(m.lines)-500:]
	}
	m.log.SetContent(strings.Join(m.lines, "\n"))
	m.log.GotoBottom()
}

// View renders the board, status line, and event log side by side.
func (m WatchModel) View() string {
	board := StylePanel.Render(RenderBoard(m.runner.Maze(), m.runner.Agent(), false))
	events := StylePanel.Render(m.log.View())

	var status string
	switch {
	case m.err != nil:
		status = StylePit.Render(fmt.Sprintf("error: %v", m.err))
	case m.done && m.finished.Reached:
		status = StyleTitle.Render(fmt.Sprintf("goal reached: %d steps, score %d, %d pit hits",
			m.finished.Steps, m.finished.Score, m.finished.PitHits))
	case m.done:
		status = StyleSuspect.Render("episode over without reaching the goal")
	case m.paused:
		status = StyleHelp.Render("paused — n to step, space to resume")
	default:
		status = StyleHelp.Render("space to pause, q to quit")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		StyleTitle.Render("pitsweeper"),
		lipgloss.JoinHorizontal(lipgloss.Top, board, " ", events),
		status,
	)
}
