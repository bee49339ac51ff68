package snake

import (
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Layout constants for the terminal renderer.
const (
	TileWidth = 2 // screen columns per tile, keeps tiles roughly square
	hudHeight = 2
)

// Tile glyphs, one per screen column of a tile.
const (
	glyphField   = ' '
	glyphBarrier = '#'
	glyphBody    = 'o'
	glyphHead    = 'O'
	glyphFood    = '*'
	glyphGate    = '@'
)

// RequiredSize returns the smallest screen that fits the current level.
func (g *Game) RequiredSize() (w, h int) {
	return g.level.Width * TileWidth, g.level.Height + hudHeight
}

// Render draws the HUD and playfield into dst.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.renderHUD(dst)

	w, h := g.RequiredSize()
	if dst.Width() < w || dst.Height() < h {
		RenderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", w, h))
		return
	}

	offX := (dst.Width() - w) / 2
	offY := hudHeight

	dst.FillRect(core.NewRect(0, offY, dst.Width(), dst.Height()-offY), core.Cell{Rune: ' ', Color: core.ColorOutside})
	dst.FillRect(core.NewRect(offX, offY, w, g.level.Height), core.Cell{Rune: glyphField, Color: core.ColorField})

	draw := func(t core.Tile, r rune, c core.Color) {
		for i := range TileWidth {
			dst.SetCell(offX+t.X*TileWidth+i, offY+t.Y, core.Cell{Rune: r, Color: c})
		}
	}

	for _, b := range g.level.Barriers {
		draw(b, glyphBarrier, core.ColorBarrier)
	}
	for i := len(g.snake) - 1; i >= 0; i-- {
		if i == 0 {
			draw(g.snake[i], glyphHead, core.ColorSnakeHead)
		} else {
			draw(g.snake[i], glyphBody, core.ColorSnake)
		}
	}
	if food, ok := g.Food(); ok {
		draw(food, glyphFood, core.ColorFood)
	}
	if gate, ok := g.Gate(); ok {
		draw(gate, glyphGate, core.ColorGate)
	}

	switch {
	case g.gameOver:
		RenderOverlay(dst, "Game Over", fmt.Sprintf("Score: %d  -  R to restart", g.score))
	case g.paused:
		RenderOverlay(dst, "Paused", "Press P to continue")
	}
}

func (g *Game) renderHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" Snake - Level %d  Score: %d  Length: %d  Step: %dms",
		g.level.ID, g.score, len(g.snake), g.stepDelay.Milliseconds())
	if _, ok := g.Gate(); ok {
		hud += "  Gate open!"
	}
	dst.DrawText(0, 0, hud, core.ColorText)
	dst.DrawHLine(0, 1, dst.Width(), '─', core.ColorText)
}

// RenderOverlay draws a centered two-line message box.
func RenderOverlay(dst *core.Screen, line1, line2 string) {
	boxW := max(len([]rune(line1)), len([]rune(line2))) + 4
	box := dst.Bounds().Centered(boxW, 5)

	dst.FillRect(box, core.Cell{Rune: ' ', Color: core.ColorAlert})
	dst.DrawBox(box, core.ColorAlert)
	dst.DrawTextCentered(box.Y+1, line1, core.ColorAlert)
	dst.DrawTextCentered(box.Y+3, line2, core.ColorAlert)
}
