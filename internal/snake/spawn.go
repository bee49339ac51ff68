package snake

import (
	"math/rand"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// sampleFactor bounds rejection sampling to width*height*sampleFactor draws
// before falling back to enumerating the free cells.
const sampleFactor = 8

// spawnTile picks a uniformly random tile that is neither a barrier nor
// occupied. It returns false when the board has no free tile left.
func spawnTile(rng *rand.Rand, lvl *Level, occupied func(core.Tile) bool) (core.Tile, bool) {
	if lvl.Width <= 0 || lvl.Height <= 0 {
		return core.Tile{}, false
	}

	free := func(t core.Tile) bool {
		return !lvl.IsBarrier(t) && !occupied(t)
	}

	attempts := lvl.Width * lvl.Height * sampleFactor
	for range attempts {
		t := core.T(rng.Intn(lvl.Width), rng.Intn(lvl.Height))
		if free(t) {
			return t, true
		}
	}

	// Nearly full board: enumerate what is left.
	var cells []core.Tile
	for y := 0; y < lvl.Height; y++ {
		for x := 0; x < lvl.Width; x++ {
			if t := core.T(x, y); free(t) {
				cells = append(cells, t)
			}
		}
	}
	if len(cells) == 0 {
		return core.Tile{}, false
	}
	return cells[rng.Intn(len(cells))], true
}
