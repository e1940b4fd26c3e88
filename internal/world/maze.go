// Package world simulates the Pitsweeper maze the agent explores: a
// walled grid hiding pits, sensed only through warning counts on visited
// tiles. It owns ground truth the agent never sees directly and exposes
// the narrow query surface the controller consumes.
package world

import (
	"fmt"

	"pitsweeper/internal/logging"
	"pitsweeper/internal/perception"
	"pitsweeper/internal/types"
)

// Scoring constants, matching the classic Pitsweeper rules: each move
// costs one point and stepping in a pit costs twenty more.
const (
	MoveCost   = 1
	PitPenalty = 20
)

// Maze is the mutable world state for one episode.
type Maze struct {
	grid   [][]types.Tile
	width  int
	height int

	start  types.Coord
	goal   types.Coord
	player types.Coord

	visited  types.CoordSet
	frontier types.CoordSet

	score   int
	pitHits int
	moves   int
}

// Width returns the grid width including walls.
func (m *Maze) Width() int { return m.width }

// Height returns the grid height including walls.
func (m *Maze) Height() int { return m.height }

// PlayerLoc returns the agent's current location.
func (m *Maze) PlayerLoc() types.Coord { return m.player }

// GoalLoc returns the goal location.
func (m *Maze) GoalLoc() types.Coord { return m.goal }

// StartLoc returns the episode's starting location.
func (m *Maze) StartLoc() types.Coord { return m.start }

// Score returns the accumulated penalty score. Lower is better.
func (m *Maze) Score() int { return m.score }

// PitHits returns how many times the agent has stepped in a pit.
func (m *Maze) PitHits() int { return m.pitHits }

// Moves returns the number of moves executed.
func (m *Maze) Moves() int { return m.moves }

// Done reports whether the agent has reached the goal.
func (m *Maze) Done() bool { return m.player == m.goal }

func (m *Maze) inBounds(c types.Coord) bool {
	return c.X >= 0 && c.X < m.width && c.Y >= 0 && c.Y < m.height
}

func (m *Maze) passable(c types.Coord) bool {
	return m.inBounds(c) && m.grid[c.Y][c.X] != types.TileWall
}

// TileAt exposes ground truth for rendering and tests. The agent itself
// must never consult it.
func (m *Maze) TileAt(c types.Coord) types.Tile {
	if !m.inBounds(c) {
		return types.TileWall
	}
	return m.grid[c.Y][c.X]
}

// Visited reports whether the agent has stood on c.
func (m *Maze) Visited(c types.Coord) bool { return m.visited.Contains(c) }

// CardinalLocs returns the passable locations within radius steps of loc
// along a single cardinal direction, in deterministic row-major order.
func (m *Maze) CardinalLocs(loc types.Coord, radius int) []types.Coord {
	var out []types.Coord
	for r := 1; r <= radius; r++ {
		for _, c := range []types.Coord{
			{X: loc.X, Y: loc.Y - r},
			{X: loc.X - r, Y: loc.Y},
			{X: loc.X + r, Y: loc.Y},
			{X: loc.X, Y: loc.Y + r},
		} {
			if m.passable(c) {
				out = append(out, c)
			}
		}
	}
	types.SortCoords(out)
	return out
}

// FrontierLocs returns the reachable-but-unvisited boundary: passable
// unvisited cells cardinally adjacent to a visited cell.
func (m *Maze) FrontierLocs() []types.Coord {
	return m.frontier.Sorted()
}

// Perceive returns the sensor reading for the tile under the player: "P"
// in a pit, otherwise the count of pits among cardinal neighbors, with
// zero reported as clear.
func (m *Maze) Perceive() perception.Perception {
	tile := m.grid[m.player.Y][m.player.X]
	if tile == types.TilePit {
		return perception.Perception{Loc: m.player, Tile: types.TilePit}
	}
	pits := 0
	for _, nb := range m.CardinalLocs(m.player, 1) {
		if m.grid[nb.Y][nb.X] == types.TilePit {
			pits++
		}
	}
	if pits == 0 {
		return perception.Perception{Loc: m.player, Tile: types.TileClear}
	}
	// The label vocabulary tops out at 3: a fully pit-ringed cell still
	// reports "3", which the agent reads as "every neighbor is a pit".
	if pits > 3 {
		pits = 3
	}
	return perception.Perception{Loc: m.player, Tile: types.Tile(fmt.Sprintf("%d", pits))}
}

// MoveTo executes a move to a frontier location. Stepping in a pit adds
// the pit penalty but the episode continues; reaching the goal ends it.
func (m *Maze) MoveTo(target types.Coord) error {
	if !m.frontier.Contains(target) {
		return fmt.Errorf("move target %s is not on the frontier", target)
	}
	m.player = target
	m.moves++
	m.score += MoveCost
	if m.grid[target.Y][target.X] == types.TilePit {
		m.pitHits++
		m.score += PitPenalty
		logging.World("player stepped in pit at %s (hit %d)", target, m.pitHits)
	}
	m.visit(target)
	logging.World("moved to %s, score=%d, frontier=%d", target, m.score, len(m.frontier))
	return nil
}

// visit marks a cell visited and folds its neighborhood into the frontier.
func (m *Maze) visit(c types.Coord) {
	m.visited.Add(c)
	m.frontier.Remove(c)
	for _, nb := range m.CardinalLocs(c, 1) {
		if !m.visited.Contains(nb) {
			m.frontier.Add(nb)
		}
	}
}
