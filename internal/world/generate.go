package world

import (
	"fmt"
	"math/rand"
	"strings"

	"pitsweeper/internal/types"
)

// GenerateConfig tunes random maze generation.
type GenerateConfig struct {
	Width      int     // total width including the wall border
	Height     int     // total height including the wall border
	PitDensity float64 // probability an interior cell hosts a pit
}

// Parse builds a maze from ASCII rows: 'X' walls, '.' floor, 'P' pits,
// '@' the player start, 'G' the goal. Rows must be rectangular, the
// border must be solid wall, and start and goal must appear exactly once.
func Parse(rows []string) (*Maze, error) {
	if len(rows) < 3 {
		return nil, fmt.Errorf("maze needs at least 3 rows, got %d", len(rows))
	}
	width := len(rows[0])
	if width < 3 {
		return nil, fmt.Errorf("maze needs at least 3 columns, got %d", width)
	}

	m := &Maze{
		width:    width,
		height:   len(rows),
		grid:     make([][]types.Tile, len(rows)),
		visited:  types.NewCoordSet(),
		frontier: types.NewCoordSet(),
	}
	var starts, goals int
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("row %d has width %d, want %d", y, len(row), width)
		}
		m.grid[y] = make([]types.Tile, width)
		for x, r := range row {
			c := types.Coord{X: x, Y: y}
			border := x == 0 || y == 0 || x == width-1 || y == len(rows)-1
			tile := types.Tile(string(r))
			switch tile {
			case types.TileWall:
			case types.TileClear, types.TilePit:
				if border {
					return nil, fmt.Errorf("border must be wall, found %q at %s", string(r), c)
				}
			case types.TileStart:
				starts++
				m.start = c
				tile = types.TileClear
			case types.TileGoal:
				goals++
				m.goal = c
				tile = types.TileClear
			default:
				return nil, fmt.Errorf("unknown maze rune %q at %s", string(r), c)
			}
			m.grid[y][x] = tile
		}
	}
	if starts != 1 || goals != 1 {
		return nil, fmt.Errorf("maze needs exactly one start and one goal, got %d and %d", starts, goals)
	}

	m.player = m.start
	m.visit(m.start)
	return m, nil
}

// Generate builds a random maze: solid wall border, pits scattered by
// density, start in the bottom row region and goal in the top, with the
// start's cardinal neighborhood kept clear so the first reading is
// informative rather than lethal.
func Generate(cfg GenerateConfig, rng *rand.Rand) (*Maze, error) {
	if cfg.Width < 5 || cfg.Height < 5 {
		return nil, fmt.Errorf("generated maze must be at least 5x5, got %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.PitDensity < 0 || cfg.PitDensity > 0.5 {
		return nil, fmt.Errorf("pit density %v out of range [0, 0.5]", cfg.PitDensity)
	}

	start := types.Coord{X: 1 + rng.Intn(cfg.Width-2), Y: cfg.Height - 2}
	goal := types.Coord{X: 1 + rng.Intn(cfg.Width-2), Y: 1}

	protected := types.NewCoordSet(start, goal,
		types.Coord{X: start.X, Y: start.Y - 1},
		types.Coord{X: start.X - 1, Y: start.Y},
		types.Coord{X: start.X + 1, Y: start.Y},
		types.Coord{X: start.X, Y: start.Y + 1},
	)

	rows := make([]string, cfg.Height)
	for y := 0; y < cfg.Height; y++ {
		var b strings.Builder
		for x := 0; x < cfg.Width; x++ {
			c := types.Coord{X: x, Y: y}
			switch {
			case x == 0 || y == 0 || x == cfg.Width-1 || y == cfg.Height-1:
				b.WriteString(string(types.TileWall))
			case c == start:
				b.WriteString(string(types.TileStart))
			case c == goal:
				b.WriteString(string(types.TileGoal))
			case !protected.Contains(c) && rng.Float64() < cfg.PitDensity:
				b.WriteString(string(types.TilePit))
			default:
				b.WriteString(string(types.TileClear))
			}
		}
		rows[y] = b.String()
	}
	return Parse(rows)
}
