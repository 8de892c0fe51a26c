package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/polarity/internal/levels"
	"github.com/vovakirdan/polarity/internal/progress"
	"github.com/vovakirdan/polarity/internal/registry"
)

// menuRow is one line of the level list: a world header or a level.
type menuRow struct {
	world  *registry.World
	level  levels.Level
	locked bool
}

// MenuModel is the Bubble Tea model for the level picker.
type MenuModel struct {
	deps   *Deps
	stats  *progress.Stats
	rows   []menuRow
	cursor int // index into rows, always on a level
	width  int
	height int
	keys   MenuKeyMap
	help   help.Model
	status string

	selected   int // level id, 0 until chosen
	wantsStats bool
	quitting   bool
}

// NewMenuModel creates a menu with the cursor on the given level, or on the
// first level when it is not listed.
func NewMenuModel(d *Deps, stats *progress.Stats, width, height, levelID int) MenuModel {
	m := MenuModel{
		deps:   d,
		stats:  stats,
		width:  width,
		height: height,
		keys:   DefaultMenuKeyMap(),
		help:   help.New(),
		cursor: -1,
	}
	m.help.Width = width

	for _, w := range d.Catalog.Worlds() {
		m.rows = append(m.rows, menuRow{world: &w})
		for _, l := range d.Catalog.WorldLevels(w.ID) {
			m.rows = append(m.rows, menuRow{level: l, locked: !d.Catalog.Unlocked(l.ID, stats)})
			if m.cursor < 0 || l.ID == levelID {
				m.cursor = len(m.rows) - 1
			}
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
	case key.Matches(msg, m.keys.Up):
		m.move(-1)
	case key.Matches(msg, m.keys.Down):
		m.move(1)
	case key.Matches(msg, m.keys.Stats):
		m.wantsStats = true
	case key.Matches(msg, m.keys.Select):
		if m.cursor < 0 {
			return m, nil
		}
		row := m.rows[m.cursor]
		if row.locked {
			m.status = "Locked: win the previous level first"
			return m, nil
		}
		m.selected = row.level.ID
	}
	return m, nil
}

// move steps the cursor over world headers.
func (m *MenuModel) move(dir int) {
	for i := m.cursor + dir; i >= 0 && i < len(m.rows); i += dir {
		if m.rows[i].world == nil {
			m.cursor = i
			return
		}
	}
}

// View renders the menu.
func (m MenuModel) View() string {
	t := m.deps.Theme
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(t.Title.Render("P O L A R I T Y"), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(t.Subtitle.Render(fmt.Sprintf("★ %d   $ %d", m.stats.TotalStars, m.stats.TotalCoins)), m.width))
	b.WriteString("\n\n")

	first, last := m.visibleRange()
	if first > 0 {
		b.WriteString(centerText(t.Subtitle.Render("... more above ..."), m.width))
		b.WriteString("\n")
	}
	for i := first; i < last; i++ {
		b.WriteString(centerText(m.renderRow(i), m.width))
		b.WriteString("\n")
	}
	if last < len(m.rows) {
		b.WriteString(centerText(t.Subtitle.Render("... more below ..."), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(centerText(t.Status.Render(m.status), m.width))
	}
	b.WriteString("\n")
	b.WriteString(centerText(t.Help.Render(m.help.View(m.keys)), m.width))
	return b.String()
}

func (m MenuModel) renderRow(i int) string {
	t := m.deps.Theme
	row := m.rows[i]
	if row.world != nil {
		return t.WorldHeader.Render(fmt.Sprintf("World %d: %s", row.world.ID, row.world.Name))
	}

	l := row.level
	cursor := "  "
	style := t.ItemNormal
	if i == m.cursor {
		cursor = "> "
		style = t.ItemActive
	}
	if row.locked {
		return t.ItemLocked.Render(fmt.Sprintf("%s%2d. %-24s locked", cursor, l.ID, l.Name))
	}

	best := "   -  "
	if secs, ok := m.stats.BestTime(l.ID); ok {
		best = fmt.Sprintf("%5.2fs", secs)
	}
	return style.Render(fmt.Sprintf("%s%2d. %-24s %-7s", cursor, l.ID, l.Name, l.Difficulty)) +
		" " + t.stars(m.stats.BestStars(l.ID)) +
		" " + t.BestTime.Render(best)
}

// visibleRange returns the rows that fit around the cursor.
func (m MenuModel) visibleRange() (int, int) {
	room := m.height - 10
	if room <= 0 || room >= len(m.rows) {
		return 0, len(m.rows)
	}
	first := max(0, m.cursor-room/2)
	last := min(len(m.rows), first+room)
	first = max(0, last-room)
	return first, last
}

// Selected returns the chosen level id, 0 if none.
func (m MenuModel) Selected() int { return m.selected }

// WantsStats reports whether the stats screen was requested.
func (m MenuModel) WantsStats() bool { return m.wantsStats }

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool { return m.quitting }
