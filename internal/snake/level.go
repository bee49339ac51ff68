package snake

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Default playground limits for level files.
const (
	MaxWidth  = 50
	MaxHeight = 40
)

// Level defect kinds. A *LevelError matches its kind with errors.Is.
var (
	ErrNotRectangular = errors.New("is not rectangular")
	ErrTooWide        = errors.New("is too wide")
	ErrTooTall        = errors.New("is too tall")
	ErrInvalidChar    = errors.New("has an invalid character")
	ErrNoStart        = errors.New("has no starting position")
	ErrMultipleStarts = errors.New("has multiple starting positions")
)

// LevelError describes why a level resource was rejected.
type LevelError struct {
	ID   int
	Kind error
	Char rune // offending character for ErrInvalidChar
	Row  int  // 0-based row where the defect was found, -1 if not row-specific
}

func (e *LevelError) Error() string {
	switch {
	case errors.Is(e.Kind, ErrInvalidChar):
		return fmt.Sprintf("level %d %s %q on row %d", e.ID, e.Kind, e.Char, e.Row+1)
	case e.Row >= 0:
		return fmt.Sprintf("level %d %s (row %d)", e.ID, e.Kind, e.Row+1)
	default:
		return fmt.Sprintf("level %d %s", e.ID, e.Kind)
	}
}

func (e *LevelError) Unwrap() error {
	return e.Kind
}

// Limits bounds the dimensions accepted by ParseLevel.
type Limits struct {
	MaxWidth  int
	MaxHeight int
}

// DefaultLimits returns the standard playground limits.
func DefaultLimits() Limits {
	return Limits{MaxWidth: MaxWidth, MaxHeight: MaxHeight}
}

// Level is the static geometry of one level. It is never mutated after
// ParseLevel returns.
type Level struct {
	ID             int
	Width          int
	Height         int
	Start          core.Tile
	StartDirection core.Direction
	Barriers       []core.Tile // in file order; may contain duplicates

	barrierSet map[core.Tile]struct{}
}

// ParseLevel builds a Level from its text form. Each line is a row:
// '#' is a barrier, '.' or ' ' is empty, and exactly one of '<', '>', '^',
// 'v' marks the start tile and heading.
func ParseLevel(id int, data []byte, limits Limits) (*Level, error) {
	lvl := &Level{
		ID:             id,
		StartDirection: core.Right,
		barrierSet:     make(map[core.Tile]struct{}),
	}

	data = bytes.TrimSuffix(data, []byte("\n"))
	rows := bytes.Split(data, []byte("\n"))
	if len(data) == 0 {
		rows = nil
	}

	starts := 0
	for y, raw := range rows {
		line := []rune(string(bytes.TrimSuffix(raw, []byte("\r"))))

		if y > 0 && len(line) != lvl.Width {
			return nil, &LevelError{ID: id, Kind: ErrNotRectangular, Row: y}
		}
		if len(line) > limits.MaxWidth {
			return nil, &LevelError{ID: id, Kind: ErrTooWide, Row: y}
		}
		lvl.Width = len(line)
		lvl.Height = y + 1

		for x, c := range line {
			tile := core.T(x, y)
			switch c {
			case '#':
				lvl.Barriers = append(lvl.Barriers, tile)
				lvl.barrierSet[tile] = struct{}{}
			case '.', ' ':
			case '<', '>', '^', 'v':
				lvl.Start = tile
				lvl.StartDirection = markerDirection(c)
				starts++
			default:
				return nil, &LevelError{ID: id, Kind: ErrInvalidChar, Char: c, Row: y}
			}
		}
	}

	if lvl.Height > limits.MaxHeight {
		return nil, &LevelError{ID: id, Kind: ErrTooTall, Row: -1}
	}

	switch starts {
	case 0:
		return nil, &LevelError{ID: id, Kind: ErrNoStart, Row: -1}
	case 1:
		return lvl, nil
	default:
		return nil, &LevelError{ID: id, Kind: ErrMultipleStarts, Row: -1}
	}
}

func markerDirection(c rune) core.Direction {
	switch c {
	case '<':
		return core.Left
	case '^':
		return core.Up
	case 'v':
		return core.Down
	default:
		return core.Right
	}
}

// IsBarrier reports whether t is a barrier tile.
func (l *Level) IsBarrier(t core.Tile) bool {
	_, ok := l.barrierSet[t]
	return ok
}

// Contains reports whether t lies inside the level bounds.
func (l *Level) Contains(t core.Tile) bool {
	return t.X >= 0 && t.X < l.Width && t.Y >= 0 && t.Y < l.Height
}

// Wraparound maps a tile that stepped at most one tile off the board back
// onto the opposite edge. Each axis is handled independently.
func (l *Level) Wraparound(t core.Tile) core.Tile {
	if l.Contains(t) {
		return t
	}
	return core.Tile{X: wrap(t.X, l.Width), Y: wrap(t.Y, l.Height)}
}

func wrap(v, size int) int {
	switch {
	case v < 0:
		return size - 1
	case v >= size:
		return 0
	default:
		return v
	}
}
