package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nursultanov/glance/internal/dashboard"
	"github.com/nursultanov/glance/internal/tracker"
)

// RunTimerTUI runs the interactive tracking screen until the session is
// stopped or abandoned.
func RunTimerTUI(trk *tracker.Tracker, goals *tracker.GoalSet, saver SessionSaver) error {
	model := NewTimerModel(trk, goals, saver)

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	if m, ok := finalModel.(TimerModel); ok {
		switch {
		case m.err != nil:
			fmt.Printf("❌ Error: %v\n", m.err)
		case m.discard:
			fmt.Println("Session abandoned.")
		case m.stopped != nil:
			fmt.Printf("✅ Tracked %02d:%02d:%02d of %s\n",
				m.stopped.DurationSeconds/3600,
				(m.stopped.DurationSeconds/60)%60,
				m.stopped.DurationSeconds%60,
				m.stopped.Category.Label())
		}
	}

	return nil
}

// RunDashboardTUI runs the auto-refreshing dashboard screen.
func RunDashboardTUI(agg *dashboard.Aggregator) error {
	model := NewDashboardModel(agg)

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
