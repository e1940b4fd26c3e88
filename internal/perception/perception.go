// Package perception turns raw environment readings into knowledge the
// kernel can hold: it validates tile labels and transduces warning counts
// into exact-count CNF constraints over the surrounding cells.
package perception

import (
	"fmt"

	"pitsweeper/internal/types"
)

// ErrMalformedPerception marks a tile label the agent does not recognize.
// The controller propagates it rather than guess.
var ErrMalformedPerception = fmt.Errorf("malformed perception")

// Perception is one sensor reading: where the agent stands and what the
// tile under it reports.
type Perception struct {
	Loc  types.Coord
	Tile types.Tile
}

// Validate checks the reading is one the controller can act on.
func (p Perception) Validate() error {
	if !p.Tile.ValidPerception() {
		return fmt.Errorf("%w: tile %q at %s", ErrMalformedPerception, string(p.Tile), p.Loc)
	}
	return nil
}
