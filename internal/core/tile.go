package core

import "fmt"

// Tile is a grid coordinate on the playfield. Tiles are compared with ==
// and always passed by value.
type Tile struct {
	X, Y int
}

// T is shorthand for Tile{X: x, Y: y}.
func T(x, y int) Tile {
	return Tile{X: x, Y: y}
}

// Add returns the tile offset by (dx, dy).
func (t Tile) Add(dx, dy int) Tile {
	return Tile{X: t.X + dx, Y: t.Y + dy}
}

// Step returns the neighbouring tile in direction d, without wrapping.
func (t Tile) Step(d Direction) Tile {
	dx, dy := d.Delta()
	return t.Add(dx, dy)
}

func (t Tile) String() string {
	return fmt.Sprintf("(%d,%d)", t.X, t.Y)
}
