package flappy

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/sim"
)

// Visual characters for rendering
const (
	ObstacleChar    = '█'
	ObstacleCapTop  = '▄'
	ObstacleCapBot  = '▀'
	GrassChar       = '▀'
	GroundLightChar = '░'
	GroundDarkChar  = '▒'
	PlayerBodyChar  = '●'
	WingUpChar      = '^'
	WingDownChar    = 'v'
)

// groundStripe is the width of one ground texture stripe in world units.
const groundStripe = 16.0

// viewport maps the y-up world onto terminal cells (y down). The whole world
// is stretched over the screen.
type viewport struct {
	cols, rows int
	sx, sy     float64 // world units per cell
	height     float64
}

func newViewport(cfg config.FlappyConfig, cols, rows int) viewport {
	cols = max(cols, 1)
	rows = max(rows, 1)
	return viewport{
		cols:   cols,
		rows:   rows,
		sx:     cfg.World.Width / float64(cols),
		sy:     cfg.World.Height / float64(rows),
		height: cfg.World.Height,
	}
}

func (v viewport) col(x float64) int {
	return int(math.Floor(x / v.sx))
}

func (v viewport) row(y float64) int {
	return int(math.Floor((v.height - y) / v.sy))
}

// world returns the world position at the center of a cell.
func (v viewport) world(p core.Point) core.Vec2 {
	return core.V((float64(p.X)+0.5)*v.sx, v.height-(float64(p.Y)+0.5)*v.sy)
}

// rect returns the cells covered by a world box, at least one cell each way.
func (v viewport) rect(b core.Box) core.Rect {
	x0 := int(math.Round(b.Min.X / v.sx))
	x1 := int(math.Round(b.Max.X / v.sx))
	y0 := int(math.Round((v.height - b.Max.Y) / v.sy))
	y1 := int(math.Round((v.height - b.Min.Y) / v.sy))
	return core.NewRect(x0, y0, max(x1-x0, 1), max(y1-y0, 1))
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.sim == nil {
		return
	}

	vp := newViewport(g.cfg, dst.Width(), dst.Height())
	groundRow := int(math.Round((g.cfg.World.Height - g.sim.PlayableStart()) / vp.sy))

	for _, o := range g.sim.Obstacles() {
		g.drawObstacle(dst, vp, o, groundRow)
	}
	g.drawGround(dst, vp, groundRow)
	g.drawPlayer(dst, vp, groundRow)

	switch g.sim.State() {
	case sim.MainMenu:
		g.drawMenu(dst, vp)
	case sim.Tutorial:
		g.drawScore(dst)
		g.drawTutorial(dst, vp)
	case sim.Play, sim.Falling:
		g.drawScore(dst)
	case sim.ShowingScore, sim.Gameover:
		g.drawScorecard(dst, vp)
	}

	if g.paused {
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}

	if g.now < g.fx.shakeUntil {
		dx := 1
		if int(g.now*60)%2 == 1 {
			dx = -1
		}
		dst.ShiftRows(dx)
	}
	if g.now < g.fx.flashUntil {
		dst.Tint(core.ColorBrightWhite)
	}
}

func (g *Game) drawObstacle(dst *core.Screen, vp viewport, o sim.Obstacle, groundRow int) {
	r := vp.rect(o.Box(g.cfg.Obstacles.Width, g.cfg.Obstacles.Height))
	bottom := min(r.Bottom(), groundRow)
	if r.Y >= bottom {
		return
	}
	dst.DrawRectColor(core.NewRect(r.X, r.Y, r.W, bottom-r.Y), ObstacleChar, core.ColorGreen)

	if o.Kind == sim.ObstacleTop {
		for x := r.X; x < r.Right(); x++ {
			dst.SetColor(x, r.Bottom()-1, ObstacleCapTop, core.ColorBrightGreen)
		}
		return
	}
	for x := r.X; x < r.Right(); x++ {
		dst.SetColor(x, r.Y, ObstacleCapBot, core.ColorBrightGreen)
	}
}

// drawGround paints the two scrolling tiles. The texture follows the tiles,
// so it moves with the ground speed.
func (g *Game) drawGround(dst *core.Screen, vp viewport, groundRow int) {
	if groundRow >= dst.Height() {
		return
	}
	tiles := g.sim.Tiles()
	tw := g.cfg.Ground.TileWidth

	for col := 0; col < dst.Width(); col++ {
		dst.SetColor(col, groundRow, GrassChar, core.ColorBrightGreen)

		x := (float64(col) + 0.5) * vp.sx
		local := -1.0
		for _, t := range tiles {
			if x >= t.X && x < t.X+tw {
				local = x - t.X
				break
			}
		}
		for row := groundRow + 1; row < dst.Height(); row++ {
			ch, c := GroundLightChar, core.ColorYellow
			if local >= 0 && (int(local/groundStripe)+row)%2 == 0 {
				ch, c = GroundDarkChar, core.ColorOrange
			}
			dst.SetColor(col, row, ch, c)
		}
	}
}

func (g *Game) drawPlayer(dst *core.Screen, vp viewport, groundRow int) {
	p := g.sim.Player()
	r := vp.rect(core.BoxAround(p.Position, g.cfg.Player.Width, g.cfg.Player.Height))
	y := min(vp.row(p.Position.Y), groundRow-1)

	for x := r.X; x < r.Right(); x++ {
		dst.SetColor(x, y, PlayerBodyChar, core.ColorBrightYellow)
	}
	if r.W > 2 {
		wing := WingDownChar
		if g.now < g.fx.bobUntil {
			wing = WingUpChar
		}
		dst.SetColor(r.X+1, y, wing, core.ColorWhite)
	}
	dst.SetColor(r.Right()-1, y, noseGlyph(p.Rotation), core.ColorOrange)
}

// noseGlyph picks the beak character for a rotation in radians.
func noseGlyph(rotation float64) rune {
	deg := core.Degrees(rotation)
	switch {
	case deg > 10:
		return '▲'
	case deg < -45:
		return '▼'
	case deg < -10:
		return '◢'
	default:
		return '▶'
	}
}

func (g *Game) drawScore(dst *core.Screen) {
	c := core.ColorBrightWhite
	if g.now < g.fx.scoreUntil {
		c = core.ColorBrightYellow
	}
	text := fmt.Sprintf(" %d ", g.sim.Score())
	dst.DrawTextColor((dst.Width()-len(text))/2, 1, text, c)
}

func (g *Game) drawMenu(dst *core.Screen, vp viewport) {
	title := "F L A P P Y"
	dst.DrawTextColor((dst.Width()-len(title))/2, dst.Height()/5, title, core.ColorBrightYellow)
	drawButton(dst, vp.rect(g.sim.PrimaryButton()), "PLAY")
	hint := "space / click"
	dst.DrawTextColor((dst.Width()-len(hint))/2, vp.rect(g.sim.PrimaryButton()).Bottom()+1, hint, core.ColorGray)
}

func (g *Game) drawTutorial(dst *core.Screen, vp viewport) {
	title := "Get Ready!"
	dst.DrawTextColor((dst.Width()-len(title))/2, dst.Height()/5, title, core.ColorBrightYellow)
	hint := "tap to flap"
	p := g.sim.Player()
	dst.DrawTextColor((dst.Width()-len(hint))/2, vp.row(p.Position.Y)-2, hint, core.ColorWhite)
}

// drawScorecard reveals one line per scorecard beat.
func (g *Game) drawScorecard(dst *core.Screen, vp viewport) {
	over := "GAME OVER"
	dst.DrawTextColor((dst.Width()-len(over))/2, dst.Height()/6, over, core.ColorBrightRed)

	card := g.fx.card
	if card == nil {
		return
	}
	lines := []string{
		fmt.Sprintf("Score %4d", card.Score),
		fmt.Sprintf("Best  %4d", card.Best),
		"",
	}
	if card.NewBest {
		lines[2] = "  NEW!  "
	}
	shown := g.fx.pops
	if g.sim.State() == sim.Gameover {
		shown = len(lines)
	}

	boxW := 16
	boxH := len(lines) + 2
	box := core.NewRect((dst.Width()-boxW)/2, dst.Height()/6+2, boxW, boxH)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	for i := 0; i < min(shown, len(lines)); i++ {
		c := core.ColorWhite
		if i == 2 {
			c = core.ColorBrightYellow
		}
		dst.DrawTextColor(box.X+(boxW-len(lines[i]))/2, box.Y+1+i, lines[i], c)
	}

	if g.version == sim.V1 {
		hint := "tap to play again"
		dst.DrawTextColor((dst.Width()-len(hint))/2, box.Bottom()+1, hint, core.ColorGray)
		return
	}
	if g.sim.State() == sim.Gameover {
		drawButton(dst, vp.rect(g.sim.PrimaryButton()), "PLAY")
	}
}

func drawButton(dst *core.Screen, r core.Rect, label string) {
	r.W = max(r.W, len(label)+4)
	r.H = max(r.H, 3)
	dst.DrawRect(r, ' ')
	dst.DrawBox(r)
	dst.DrawTextColor(r.X+(r.W-len(label))/2, r.Y+r.H/2, label, core.ColorBrightWhite)
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}
