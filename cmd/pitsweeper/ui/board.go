package ui

import (
	"strings"

	"pitsweeper/internal/agent"
	"pitsweeper/internal/types"
	"pitsweeper/internal/world"
)

// RenderBoard draws the maze as the agent knows it. Unvisited cells show
// the agent's verdict (safe, pit, suspect) rather than ground truth;
// reveal=true lifts the fog and prints the true tiles instead, which is
// what solve mode shows once the episode is over.
func RenderBoard(m *world.Maze, a *agent.Agent, reveal bool) string {
	safe := types.NewCoordSet(a.KnownSafe()...)
	pits := types.NewCoordSet(a.KnownPits()...)
	suspects := types.NewCoordSet(a.PossiblePits()...)

	var b strings.Builder
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			c := types.Coord{X: x, Y: y}
			b.WriteString(renderCell(m, c, safe, pits, suspects, reveal))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderCell(m *world.Maze, c types.Coord, safe, pits, suspects types.CoordSet, reveal bool) string {
	switch {
	case c == m.PlayerLoc():
		return StylePlayer.Render("@")
	case c == m.GoalLoc():
		return StyleGoal.Render("G")
	case m.TileAt(c) == types.TileWall:
		return StyleWall.Render("#")
	}

	if reveal || m.Visited(c) {
		if m.TileAt(c) == types.TilePit {
			return StylePit.Render("P")
		}
		return StyleSafe.Render(".")
	}

	switch {
	case pits.Contains(c):
		return StylePit.Render("P")
	case suspects.Contains(c):
		return StyleSuspect.Render("?")
	case safe.Contains(c):
		return StyleSafe.Render("·")
	default:
		return StyleFog.Render("░")
	}
}
