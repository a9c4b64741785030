package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nursultanov/glance/internal/tracker"
)

// SessionSaver persists a finalized session.
type SessionSaver interface {
	SaveSession(session *tracker.Session) error
}

// TimerModel is the interactive tracking screen. Each 1 Hz tick is
// forwarded to the tracker, which accumulates goal progress.
type TimerModel struct {
	width  int
	height int

	tracker *tracker.Tracker
	goals   *tracker.GoalSet
	saver   SessionSaver

	progressBar progress.Model

	// Final state reported after the TUI closes
	stopped *tracker.Session
	discard bool
	err     error
}

// timerTickMsg is sent every second to advance the session.
type timerTickMsg struct{}

// NewTimerModel creates a timer screen over an already-started tracker.
func NewTimerModel(trk *tracker.Tracker, goals *tracker.GoalSet, saver SessionSaver) TimerModel {
	bar := progress.New(
		progress.WithGradient(ColorAccentMain, ColorAccentBright),
		progress.WithoutPercentage(),
	)
	return TimerModel{
		tracker:     trk,
		goals:       goals,
		saver:       saver,
		progressBar: bar,
	}
}

// Init arms the 1 Hz session tick.
func (m TimerModel) Init() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg{}
	})
}

// Update handles messages
func (m TimerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		if m.stopped != nil || m.discard {
			return m, nil
		}
		m.tracker.Tick()
		return m, tea.Tick(time.Second, func(t time.Time) tea.Msg {
			return timerTickMsg{}
		})

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progressBar.Width = min(48, msg.Width-10)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "s", "S":
			session, err := m.tracker.Stop()
			if err != nil {
				m.err = err
				return m, tea.Quit
			}
			if m.saver != nil {
				if err := m.saver.SaveSession(session); err != nil {
					m.err = err
				}
			}
			m.stopped = session
			return m, tea.Quit
		case "ctrl+c", "esc", "q":
			// Abandon the session without saving it
			if _, err := m.tracker.Stop(); err != nil {
				m.err = err
			}
			m.discard = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// View renders the timer screen
func (m TimerModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	active := m.tracker.Active()
	if active == nil {
		return ""
	}

	var components []string

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true).
		Align(lipgloss.Center).
		Width(m.width)
	components = append(components, headerStyle.Render("⏱  TRACKING"))

	catStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Bold(true).
		Align(lipgloss.Center).
		Width(m.width)
	components = append(components,
		catStyle.Render(fmt.Sprintf("%s %s", active.Category.Icon(), active.Category.Label())))

	clockStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentMain)).
		Bold(true).
		Align(lipgloss.Center).
		Width(m.width)
	components = append(components, clockStyle.Render(formatClock(m.tracker.Elapsed())))

	if bar := m.renderGoalProgress(active); bar != "" {
		components = append(components, bar)
	}

	startStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorSecondaryText)).
		Italic(true).
		Align(lipgloss.Center).
		Width(m.width)
	components = append(components,
		startStyle.Render(fmt.Sprintf("Started at %s", active.StartedAt.Format("15:04:05"))))

	content := strings.Join(components, "\n\n")

	body := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderHelpBar())
}

// renderGoalProgress shows today's goal progress for the active category.
func (m TimerModel) renderGoalProgress(active *tracker.Session) string {
	for _, goal := range m.goals.Snapshot() {
		if goal.Category != active.Category || goal.TargetMinutes == 0 {
			continue
		}
		ratio := goal.CurrentMinutes / float64(goal.TargetMinutes)
		if ratio > 1 {
			ratio = 1
		}

		label := fmt.Sprintf("%.0f / %d min today", goal.CurrentMinutes, goal.TargetMinutes)
		if goal.Completed {
			label = "✅ " + label
		}

		labelStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText)).
			Align(lipgloss.Center).
			Width(m.width)
		barStyle := lipgloss.NewStyle().
			Align(lipgloss.Center).
			Width(m.width)

		return barStyle.Render(m.progressBar.ViewAs(ratio)) + "\n" + labelStyle.Render(label)
	}
	return ""
}

func (m TimerModel) renderHelpBar() string {
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Align(lipgloss.Center).
		Width(m.width)
	return helpStyle.Render("s stop & save  •  q abandon")
}

func formatClock(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}
