package perception

import (
	"fmt"
	"testing"

	"pitsweeper/internal/logic"
	"pitsweeper/internal/types"
)

var sensed = types.Coord{X: 2, Y: 2}

func neighborhood(n int) []types.Coord {
	all := []types.Coord{
		{X: 1, Y: 2}, {X: 3, Y: 2}, {X: 2, Y: 1}, {X: 2, Y: 3},
	}
	return all[:n]
}

// satisfies reports whether an assignment (pit yes/no per location)
// satisfies every clause.
func satisfies(clauses []logic.Clause, assignment map[types.Coord]bool) bool {
	for _, c := range clauses {
		ok := false
		for _, lit := range c.Literals() {
			if assignment[lit.Prop.Loc] == lit.Positive {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

// TestEncodeExactlyK checks the defining property of the encoding: an
// assignment over the neighborhood satisfies the clause set iff it places
// exactly k pits.
func TestEncodeExactlyK(t *testing.T) {
	for n := 1; n <= 4; n++ {
		for k := 0; k <= n; k++ {
			t.Run(fmt.Sprintf("n%d_k%d", n, k), func(t *testing.T) {
				nbs := neighborhood(n)
				clauses := EncodeWarning(k, sensed, nbs)
				for mask := 0; mask < 1<<n; mask++ {
					assignment := make(map[types.Coord]bool, n)
					pits := 0
					for i, nb := range nbs {
						pit := mask&(1<<i) != 0
						assignment[nb] = pit
						if pit {
							pits++
						}
					}
					want := pits == k
					if got := satisfies(clauses, assignment); got != want {
						t.Fatalf("assignment %v: satisfies = %v, want %v (k=%d)", assignment, got, want, k)
					}
				}
			})
		}
	}
}

func TestEncodeDegenerateAllPits(t *testing.T) {
	nbs := neighborhood(2)
	clauses := EncodeWarning(2, sensed, nbs)
	if len(clauses) != 2 {
		t.Fatalf("got %d clauses, want 2 unit clauses", len(clauses))
	}
	for _, c := range clauses {
		unit, ok := c.Unit()
		if !ok || !unit.Positive {
			t.Fatalf("clause %s should be a positive unit", c)
		}
	}
}

func TestEncodeDegenerateAllSafe(t *testing.T) {
	nbs := neighborhood(3)
	clauses := EncodeWarning(0, sensed, nbs)
	if len(clauses) != 3 {
		t.Fatalf("got %d clauses, want 3 unit clauses", len(clauses))
	}
	for _, c := range clauses {
		unit, ok := c.Unit()
		if !ok || unit.Positive {
			t.Fatalf("clause %s should be a negative unit", c)
		}
	}
}

func TestEncodeNoUnresolvedNeighbors(t *testing.T) {
	if clauses := EncodeWarning(2, sensed, nil); clauses != nil {
		t.Fatalf("no unresolved neighbors must produce no clauses, got %v", clauses)
	}
}

func TestEncodeClauseShapes(t *testing.T) {
	// Warning 1 over 3 neighbors: the at-least side is one triple, the
	// at-most side is the three negative pairs.
	clauses := EncodeWarning(1, sensed, neighborhood(3))
	triples, pairs := 0, 0
	for _, c := range clauses {
		switch c.Len() {
		case 3:
			triples++
		case 2:
			pairs++
		default:
			t.Fatalf("unexpected clause arity in %s", c)
		}
	}
	if triples != 1 || pairs != 3 {
		t.Fatalf("got %d triples and %d pairs, want 1 and 3", triples, pairs)
	}
}

func TestValidate(t *testing.T) {
	good := []types.Tile{types.TileClear, types.TilePit, types.TileWarning1, types.TileWarning2, types.TileWarning3}
	for _, tile := range good {
		p := Perception{Loc: sensed, Tile: tile}
		if err := p.Validate(); err != nil {
			t.Errorf("Validate(%q) = %v, want nil", string(tile), err)
		}
	}
	for _, tile := range []types.Tile{types.TileWall, types.TileGoal, "Z", "", "4"} {
		p := Perception{Loc: sensed, Tile: tile}
		if err := p.Validate(); err == nil {
			t.Errorf("Validate(%q) = nil, want error", string(tile))
		}
	}
}
