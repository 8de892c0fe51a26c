package game

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/polarity/internal/core"
	"github.com/vovakirdan/polarity/internal/magnet"
)

// cellW is the number of screen columns per grid cell, which keeps the
// board roughly square in a terminal.
const cellW = 3

const (
	hudHeight = 2 // title line and separator
	footer    = 3 // status, power-ups, spacing
)

var collectibleGlyphs = map[magnet.CollectibleKind]struct {
	r rune
	c core.Color
}{
	magnet.CollectStar: {'★', core.ColorStar},
	magnet.CollectCoin: {'$', core.ColorCoin},
	magnet.CollectGem:  {'◆', core.ColorGem},
	magnet.CollectKey:  {'⚷', core.ColorKey},
}

// Render draws the board, the HUD and any end-of-run overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	run := g.session.Run()
	if run == nil {
		dst.DrawTextCentered(dst.Height()/2, "No level loaded", core.ColorGray)
		return
	}
	st := run.State()
	ix := run.Index()

	g.renderHUD(dst, run, st)

	boardW := ix.Width()*cellW + 2
	boardH := ix.Height() + 2
	if boardW > dst.Width() || hudHeight+boardH+footer > dst.Height() {
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}
	ox := (dst.Width() - boardW) / 2
	oy := hudHeight
	dst.DrawBox(core.NewRect(ox, oy, boardW, boardH), core.ColorGrid)
	ox++
	oy++

	plot := func(c core.Point, r rune, col core.Color) {
		if !ix.InGrid(c) {
			return
		}
		dst.SetWithColor(ox+c.X*cellW+cellW/2, oy+c.Y, r, col)
	}

	for y := range ix.Height() {
		for x := range ix.Width() {
			c := core.Pt(x, y)
			if ix.IsObstacle(c) {
				for i := range cellW {
					dst.SetWithColor(ox+x*cellW+i, oy+y, '█', core.ColorWall)
				}
				continue
			}
			plot(c, '·', core.ColorGrid)
		}
	}

	lvl := run.Level()
	plot(lvl.Start, 'S', core.ColorStart)
	plot(lvl.Goal, '◎', core.ColorGoal)

	for _, item := range run.Collectibles() {
		if item.Collected {
			continue
		}
		gl, ok := collectibleGlyphs[item.Kind]
		if !ok {
			gl.r, gl.c = '?', core.ColorWhite
		}
		plot(item.Cell, gl.r, gl.c)
	}

	for _, p := range st.Trajectory {
		plot(p.Nearest(), '•', core.ColorTrail)
	}

	for _, p := range st.Poles {
		col := core.ColorPositive
		if p.Charge == magnet.Negative {
			col = core.ColorNegative
		}
		r := p.Charge.Glyph()
		if p.Kind == magnet.PoleSuper {
			r = '⊕'
			if p.Charge == magnet.Negative {
				r = '⊖'
			}
		}
		if !p.ActiveAt(st.Elapsed) {
			col = core.ColorGray
		}
		plot(p.Cell, r, col)
	}

	// The player sits on the start marker until launch.
	if st.Mode != magnet.ModeDesigning {
		plot(st.Position.Nearest(), '●', core.ColorPlayer)
	}

	if st.Mode == magnet.ModeDesigning || (st.Mode == magnet.ModePaused && run.Effects().Has(magnet.PowerUpPoleRemover)) {
		cx := ox + g.cursor.X*cellW
		dst.SetWithColor(cx, oy+g.cursor.Y, '[', core.ColorCursor)
		dst.SetWithColor(cx+cellW-1, oy+g.cursor.Y, ']', core.ColorCursor)
	}

	fy := oy + ix.Height() + 1
	dst.DrawText(1, fy, g.message)
	dst.DrawTextWithColor(1, fy+1, powerUpLine(st.PowerUps), core.ColorCyan)

	switch st.Mode {
	case magnet.ModeWon:
		r, _ := run.Result()
		g.renderOverlay(dst,
			fmt.Sprintf("Level complete! %s", starString(r.Stars)),
			fmt.Sprintf("%.2fs   G: next level   R: retry", r.Elapsed))
	case magnet.ModeLost:
		g.renderOverlay(dst, lossMessage(st.Loss), "R: back to the design board")
	case magnet.ModePaused:
		g.renderOverlay(dst, "Paused", "P: resume")
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen, run *magnet.Run, st magnet.RunState) {
	lvl := g.session.Level()
	hud := fmt.Sprintf(" %d. %s  [%s]  %.1fs", lvl.ID, lvl.Name, st.Mode, st.Elapsed)
	if lvl.TimeLimit > 0 {
		hud += fmt.Sprintf("/%.0fs", lvl.TimeLimit)
	}
	hud += fmt.Sprintf("  ★ %d/%d  $ %d  Poles %d/%d  Next %c",
		st.Tally.Stars, lvl.StarCount(), st.Tally.Coins, len(st.Poles), run.MaxPoles(), g.charge.Glyph())
	dst.DrawTextWithColor(0, 0, hud, core.ColorBrightWhite)

	for x := range dst.Width() {
		dst.SetWithColor(x, 1, '─', core.ColorGray)
	}
}

func powerUpLine(active []magnet.ActivePowerUp) string {
	if len(active) == 0 {
		return ""
	}
	parts := make([]string, 0, len(active))
	for _, a := range active {
		if a.Timed {
			parts = append(parts, fmt.Sprintf("%s %.1fs", a.Kind, a.Remaining))
		} else {
			parts = append(parts, a.Kind.String())
		}
	}
	return "Active: " + strings.Join(parts, ", ")
}

func starString(n int) string {
	return strings.Repeat("★", n) + strings.Repeat("☆", 3-n)
}

// renderOverlay draws a centered two-line box.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	w := max(len([]rune(line1)), len([]rune(line2))) + 4
	h := 5
	box := core.NewRect((dst.Width()-w)/2, (dst.Height()-h)/2, w, h)

	for y := box.Y + 1; y < box.Bottom()-1; y++ {
		for x := box.X + 1; x < box.Right()-1; x++ {
			dst.Set(x, y, ' ')
		}
	}
	dst.DrawBox(box, core.ColorBrightWhite)
	dst.DrawTextCentered(box.Y+1, line1, core.ColorBrightYellow)
	dst.DrawTextCentered(box.Y+3, line2, core.ColorWhite)
}
