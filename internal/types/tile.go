package types

// Tile is the single-rune label the environment reports for a maze cell.
type Tile string

const (
	TileClear    Tile = "." // no pit here, no pit adjacent
	TilePit      Tile = "P" // pit underfoot
	TileWall     Tile = "X" // impassable
	TileStart    Tile = "@" // player start marker in maze files
	TileGoal     Tile = "G" // goal marker in maze files
	TileWarning1 Tile = "1" // exactly one cardinal neighbor is a pit
	TileWarning2 Tile = "2"
	TileWarning3 Tile = "3"
)

// WarningCount returns the pit count a warning label encodes, or -1 if the
// tile is not a warning label.
func (t Tile) WarningCount() int {
	switch t {
	case TileWarning1:
		return 1
	case TileWarning2:
		return 2
	case TileWarning3:
		return 3
	}
	return -1
}

// IsWarning reports whether the tile is a warning label.
func (t Tile) IsWarning() bool { return t.WarningCount() > 0 }

// ValidPerception reports whether the tile is one an agent may legally be
// standing on: clear, pit, or a warning label.
func (t Tile) ValidPerception() bool {
	return t == TileClear || t == TilePit || t.IsWarning()
}
