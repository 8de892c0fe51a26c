package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/polarity/internal/progress"
	"github.com/vovakirdan/polarity/internal/storage"
)

// Stats screen layout constants
const (
	minWidthForSidebar = 90 // Minimum width to show the achievements panel
	sidebarWidth       = 34
	recentRunLimit     = 5
)

// StatsKeyMap defines the key bindings for the stats screen.
type StatsKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k StatsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k StatsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultStatsKeyMap returns default key bindings.
func DefaultStatsKeyMap() StatsKeyMap {
	return StatsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b", "tab"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// StatsModel shows the profile totals, per-level bests and achievement
// progress.
type StatsModel struct {
	deps        *Deps
	stats       *progress.Stats
	recent      []storage.RunRecord
	table       table.Model
	help        help.Model
	keys        StatsKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewStatsModel creates the stats screen.
func NewStatsModel(d *Deps, stats *progress.Stats, width, height int) StatsModel {
	m := StatsModel{
		deps:        d,
		stats:       stats,
		keys:        DefaultStatsKeyMap(),
		help:        help.New(),
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	m.updateTableRows()
	m.loadRecent()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *StatsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Level", Width: 24},
		{Title: "Stars", Width: 7},
		{Title: "Best", Width: 9},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-12, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// updateTableRows fills the table with one row per level.
func (m *StatsModel) updateTableRows() {
	lvls := m.deps.Catalog.Levels()
	rows := make([]table.Row, 0, len(lvls))
	for _, l := range lvls {
		best := "-"
		if secs, ok := m.stats.BestTime(l.ID); ok {
			best = fmt.Sprintf("%.2fs", secs)
		}
		n := m.stats.BestStars(l.ID)
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", l.ID),
			l.Name,
			strings.Repeat("★", n) + strings.Repeat("☆", 3-n),
			best,
		})
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// loadRecent reads the latest wins from the store, if there is one.
func (m *StatsModel) loadRecent() {
	if m.deps.Store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	runs, err := m.deps.Store.RecentRuns(ctx, 0, recentRunLimit)
	if err != nil {
		m.deps.logger().Warn("could not load recent runs", "error", err)
		return
	}
	m.recent = runs
}

// Init initializes the stats model.
func (m StatsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the stats screen.
func (m StatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, nil

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the stats screen.
func (m StatsModel) View() string {
	t := m.deps.Theme
	var b strings.Builder

	b.WriteString(centerText(t.Title.Render("S T A T S"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.summary(), m.width))
	b.WriteString("\n\n")

	tablePanel := t.Panel.Render(m.table.View())
	if m.showSidebar {
		side := t.Panel.Width(sidebarWidth).Render(m.achievements())
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tablePanel, "  ", side))
	} else {
		b.WriteString(tablePanel)
	}

	if len(m.recent) > 0 {
		b.WriteString("\n")
		b.WriteString(t.Subtitle.Render(m.recentLine()))
	}

	b.WriteString("\n")
	b.WriteString(t.Help.Render(m.help.View(m.keys)))
	return b.String()
}

func (m StatsModel) summary() string {
	s := m.stats
	return fmt.Sprintf("Levels %d   Wins %d   ★ %d   $ %d   Poles %d   Play time %.0fs",
		s.LevelsCompleted, s.Wins, s.TotalStars, s.TotalCoins, s.PolesPlaced, s.TotalPlayTime)
}

func (m StatsModel) achievements() string {
	var b strings.Builder
	b.WriteString("Achievements\n")
	b.WriteString(strings.Repeat("-", sidebarWidth-4))
	b.WriteString("\n")

	for _, p := range progress.Progress(m.stats, m.firstWorldSize()) {
		mark := "  "
		style := m.deps.Theme.ItemNormal
		if p.Complete {
			mark = "✓ "
			style = m.deps.Theme.ItemActive
		}
		b.WriteString(style.Render(fmt.Sprintf("%s%-18s %d/%d", mark, p.Name, p.Progress, p.Target)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m StatsModel) firstWorldSize() int {
	ws := m.deps.Catalog.Worlds()
	if len(ws) == 0 {
		return 0
	}
	return len(m.deps.Catalog.WorldLevels(ws[0].ID))
}

func (m StatsModel) recentLine() string {
	parts := make([]string, 0, len(m.recent))
	for _, r := range m.recent {
		parts = append(parts, fmt.Sprintf("L%d %s %.2fs", r.LevelID, strings.Repeat("★", r.Stars), r.Elapsed))
	}
	return "Recent: " + strings.Join(parts, "  ")
}

// IsGoingBack returns true if user wants to go back to menu.
func (m StatsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m StatsModel) IsQuitting() bool {
	return m.quitting
}
