package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nursultanov/glance/internal/api"
	"github.com/nursultanov/glance/internal/dashboard"
)

// refreshInterval is the auto-refresh cadence of the dashboard screen.
const refreshInterval = 30 * time.Second

// DashboardModel renders the merged monitor snapshot as cards and
// refreshes it every 30 seconds.
type DashboardModel struct {
	width  int
	height int

	agg *dashboard.Aggregator

	snapshot   dashboard.Snapshot
	refreshing bool
	lastUpdate time.Time
	spin       spinner.Model
}

// refreshTickMsg fires the periodic auto-refresh.
type refreshTickMsg struct{}

// snapshotMsg carries a freshly merged snapshot.
type snapshotMsg dashboard.Snapshot

// NewDashboardModel creates the dashboard screen.
func NewDashboardModel(agg *dashboard.Aggregator) DashboardModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))
	return DashboardModel{agg: agg, spin: sp}
}

// Init starts the first refresh and the 30 s tick.
func (m DashboardModel) Init() tea.Cmd {
	return tea.Batch(m.refreshCmd(), m.tickCmd(), m.spin.Tick)
}

func (m DashboardModel) refreshCmd() tea.Cmd {
	agg := m.agg
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return snapshotMsg(agg.Refresh(ctx))
	}
}

func (m DashboardModel) tickCmd() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return refreshTickMsg{}
	})
}

// Update handles messages
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshTickMsg:
		cmds := []tea.Cmd{m.tickCmd()}
		if !m.refreshing {
			m.refreshing = true
			cmds = append(cmds, m.refreshCmd())
		}
		return m, tea.Batch(cmds...)

	case snapshotMsg:
		m.snapshot = dashboard.Snapshot(msg)
		m.refreshing = false
		m.lastUpdate = time.Now()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "r", "R":
			if !m.refreshing {
				m.refreshing = true
				return m, m.refreshCmd()
			}
			return m, nil
		case "ctrl+c", "esc", "q":
			return m, tea.Quit
		}
	}

	return m, nil
}

// View renders the dashboard
func (m DashboardModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	header := m.renderHeader()

	var cards []string
	for _, key := range orderedKeys(m.snapshot) {
		cards = append(cards, m.renderCard(key, m.snapshot[key]))
	}
	if len(cards) == 0 {
		waiting := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText)).
			Render("Fetching dashboard data...")
		cards = append(cards, waiting)
	}

	body := lipgloss.JoinVertical(lipgloss.Left, cards...)

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		body,
		m.renderHelpBar(),
	)
}

func (m DashboardModel) renderHeader() string {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Bold(true).
		Render("glance dashboard")

	status := ""
	if m.refreshing {
		status = m.spin.View() + " refreshing"
	} else if !m.lastUpdate.IsZero() {
		status = fmt.Sprintf("updated %s", m.lastUpdate.Format("15:04:05"))
	}
	statusStyled := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorSecondaryText)).
		Render(status)

	gap := m.width - lipgloss.Width(title) - lipgloss.Width(statusStyled)
	if gap < 1 {
		gap = 1
	}
	return title + strings.Repeat(" ", gap) + statusStyled
}

// renderCard renders one source entry; failed sources show their reason
// inline instead of breaking the view.
func (m DashboardModel) renderCard(key string, result dashboard.Result) string {
	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true)

	var body string
	if result.Failed() {
		body = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorError)).
			Render("⚠ " + result.Err)
	} else {
		body = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorPrimaryText)).
			Render(summarizePayload(result.Payload))
	}

	card := titleStyle.Render(cardTitle(key)) + "\n" + body

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Padding(0, 1).
		Width(m.width - 4).
		Render(card)
}

func (m DashboardModel) renderHelpBar() string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Render("r refresh  •  q quit")
}

func orderedKeys(snap dashboard.Snapshot) []string {
	keys := make([]string, 0, len(snap))
	for key := range snap {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

var cardTitles = map[string]string{
	dashboard.KeySystemStatus:   "System status",
	dashboard.KeyCurrentSession: "Current session",
	dashboard.KeyTodaySummary:   "Today",
	dashboard.KeyTimeOfDay:      "Time of day",
	dashboard.KeyRecentSessions: "Recent sessions",
	dashboard.KeyCategories:     "Categories",
	dashboard.KeyCategoryStats:  "Category stats",
	dashboard.KeyDatabaseHealth: "Database health",
	dashboard.KeyDatabaseStats:  "Database stats",
	dashboard.KeyTodaySessions:  "Today's monitor sessions",
}

func cardTitle(key string) string {
	if title, ok := cardTitles[key]; ok {
		return title
	}
	return key
}

// summarizePayload produces a one-or-few-line text summary of a source
// payload for its card.
func summarizePayload(payload any) string {
	switch p := payload.(type) {
	case *api.SystemStatus:
		state := "stopped"
		if p.MonitorRunning {
			state = "running"
		}
		return fmt.Sprintf("monitor %s  •  v%s  •  up %s",
			state, p.Version, (time.Duration(p.UptimeSeconds) * time.Second).String())
	case *api.MonitorSession:
		if p.ID == "" {
			return "no active session"
		}
		return fmt.Sprintf("%s since %s", p.Category, p.StartedAt.Format("15:04"))
	case *api.TodaySummary:
		return fmt.Sprintf("%d min tracked  •  score %.0f  •  %d goals done",
			p.TotalMinutes, p.ProductivityScore, p.GoalsCompleted)
	case *api.TimeOfDayAnalysis:
		return fmt.Sprintf("peak hour %02d:00", p.PeakHour)
	case []api.MonitorSession:
		return fmt.Sprintf("%d sessions", len(p))
	case []api.CategoryInfo:
		names := make([]string, len(p))
		for i, c := range p {
			names[i] = c.Name
		}
		return strings.Join(names, ", ")
	case *api.CategoryStats:
		return fmt.Sprintf("%d windows", len(p.Windows))
	case *api.DatabaseHealth:
		if p.Healthy {
			return "healthy"
		}
		return "unhealthy: " + p.Detail
	case *api.DatabaseStats:
		return fmt.Sprintf("%d sessions  •  %d bytes", p.SessionCount, p.SizeBytes)
	default:
		return fmt.Sprintf("%v", payload)
	}
}
