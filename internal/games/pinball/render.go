package pinball

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-pinball/internal/core"
	"github.com/vovakirdan/tui-pinball/internal/physics"
)

// Visual characters for rendering
const (
	BallRest    = '●'
	FlipperChar = '▬'
	DrainChar   = '╌'
	BorderHoriz = '─'
)

// BallGlyphs cycle as the ball rolls.
var BallGlyphs = []rune{'◐', '◓', '◑', '◒'}

// cellAspect is how many columns match one row in screen distance.
const cellAspect = 2.0

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	// Check for screen too small
	if g.screenTooSmall {
		msg := "Window too small"
		hint := fmt.Sprintf("Need %dx%d", g.minScreenW, g.minScreenH)
		dst.DrawTextCentered(dst.Height()/2-1, msg)
		dst.DrawTextCentered(dst.Height()/2+1, hint)
		return
	}

	g.renderHUD(dst)

	vp := g.viewport(dst)
	dst.DrawBox(vp.Area.Inset(-1), core.ColorBrown)
	g.renderDrain(dst, vp)
	g.renderFlippers(dst, vp)
	g.renderBall(dst, vp)

	g.renderOverlay(dst)
}

// viewport fits the playfield between the HUD and the hint row, keeping
// the board's proportions.
func (g *Game) viewport(dst *core.Screen) core.Viewport {
	minX, maxX, minZ, maxZ := g.tbl.Inner()

	innerH := dst.Height() - 5 // HUD, separator, box edges, hint row
	innerW := int(math.Round(float64(innerH) * cellAspect * (maxX - minX) / (maxZ - minZ)))
	innerW = core.Clamp(innerW, 3, dst.Width()-2)

	area := core.NewRect((dst.Width()-innerW)/2, 3, innerW, innerH)
	return core.Viewport{MinU: minX, MaxU: maxX, MinV: minZ, MaxV: maxZ, Area: area}
}

// renderHUD draws the score line, the ball count and the ball speed.
func (g *Game) renderHUD(dst *core.Screen) {
	scoreText := fmt.Sprintf("Score: %d", g.score)
	if g.mode == ModeClassic {
		scoreText += fmt.Sprintf("  Best: %d", max(g.best, g.score))
	}
	dst.DrawText(1, 0, scoreText)

	centre := fmt.Sprintf("Balls: %d", g.balls)
	if g.mode == ModeSandbox {
		centre = "Sandbox"
	}
	dst.DrawTextCentered(0, centre)

	speedText := fmt.Sprintf("Speed: %4.1f", g.sim.Ball.Speed())
	dst.DrawText(dst.Width()-len(speedText)-1, 0, speedText)

	dst.DrawHLine(0, 1, dst.Width(), BorderHoriz, core.ColorGray)
}

// renderDrain marks the drain line in classic mode.
func (g *Game) renderDrain(dst *core.Screen, vp core.Viewport) {
	if g.mode != ModeClassic {
		return
	}
	_, y, ok := vp.Project(vp.MinU, g.cfg.Rules.DrainZ)
	if !ok {
		return
	}
	dst.DrawHLine(vp.Area.X, y, vp.Area.W, DrainChar, core.ColorRed)
}

// renderFlippers draws both flippers from pivot to tip.
func (g *Game) renderFlippers(dst *core.Screen, vp core.Viewport) {
	for _, side := range []physics.Side{physics.Left, physics.Right} {
		pivot, tip := g.tbl.FlipperSegment(&g.sim, side)
		x0, y0, ok0 := vp.Project(pivot.X(), pivot.Z())
		x1, y1, ok1 := vp.Project(tip.X(), tip.Z())
		if !ok0 || !ok1 {
			continue
		}
		color := core.ColorYellow
		if g.sim.Flipper(side).Raised() {
			color = core.ColorBrightYellow
		}
		dst.DrawLine(x0, y0, x1, y1, FlipperChar, color)
	}
}

// renderBall draws the ball with a glyph that turns with its rotation.
// The ball flashes on the frame a flipper strikes it.
func (g *Game) renderBall(dst *core.Screen, vp core.Viewport) {
	if g.state == StateGameOver {
		return
	}
	p := g.sim.Ball.Position
	x, y, ok := vp.Project(p.X(), p.Z())
	if !ok {
		return
	}
	color := core.ColorBrightWhite
	if g.last.Touched(physics.SurfaceFlipper) {
		color = core.ColorBrightYellow
	}
	dst.SetColored(x, y, g.ballGlyph(), color)
}

func (g *Game) ballGlyph() rune {
	b := g.sim.Ball
	if b.Speed() == 0 {
		return BallRest
	}
	turn := math.Mod(b.Rotation.X(), 2*math.Pi)
	if turn < 0 || math.IsNaN(turn) {
		return BallRest
	}
	i := int(turn / (math.Pi / 2))
	return BallGlyphs[i%len(BallGlyphs)]
}

// renderOverlay draws game state messages.
func (g *Game) renderOverlay(dst *core.Screen) {
	hint := dst.Height() - 1
	switch g.state {
	case StatePlaying:
		dst.DrawTextCentered(hint, "A/← left  D/→ right  R reset  P pause")

	case StateServe:
		dst.DrawTextCentered(hint, "Get ready...")

	case StatePaused:
		g.drawCenteredBox(dst, "PAUSED", "Press P to resume")

	case StateGameOver:
		subtitle := fmt.Sprintf("Score: %d  |  Press R to restart", g.score)
		g.drawCenteredBox(dst, "GAME OVER", subtitle)
	}
}

// drawCenteredBox draws a centered message box.
func (g *Game) drawCenteredBox(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	titleW, subW := len([]rune(title)), len([]rune(subtitle))
	boxW := max(titleW, subW) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH), core.ColorWhite)

	dst.DrawText(boxX+(boxW-titleW)/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-subW)/2, boxY+3, subtitle)
}
