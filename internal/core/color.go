package core

// Color identifies the palette entry used to draw a screen cell.
// The platform layer decides how each entry looks in a real terminal.
type Color uint8

// Palette entries for the playfield and HUD.
const (
	ColorDefault Color = iota
	ColorOutside       // area beyond the level bounds
	ColorField         // empty level tile
	ColorSnake
	ColorSnakeHead
	ColorFood
	ColorGate
	ColorBarrier
	ColorText
	ColorAlert // overlay text (game over, paused)
)

// String returns the palette entry name.
func (c Color) String() string {
	switch c {
	case ColorDefault:
		return "default"
	case ColorOutside:
		return "outside"
	case ColorField:
		return "field"
	case ColorSnake:
		return "snake"
	case ColorSnakeHead:
		return "snake_head"
	case ColorFood:
		return "food"
	case ColorGate:
		return "gate"
	case ColorBarrier:
		return "barrier"
	case ColorText:
		return "text"
	case ColorAlert:
		return "alert"
	default:
		return "unknown"
	}
}
