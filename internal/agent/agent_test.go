package agent

import (
	"errors"
	"math/rand"
	"testing"

	"pitsweeper/internal/core"
	"pitsweeper/internal/logic"
	"pitsweeper/internal/perception"
	"pitsweeper/internal/types"
)

// fakeEnv is a scripted world surface. Cardinal neighborhoods are looked
// up by location so tests can shape exactly the topology they need.
type fakeEnv struct {
	player   types.Coord
	goal     types.Coord
	cardinal map[types.Coord][]types.Coord
	frontier []types.Coord
}

func (e *fakeEnv) PlayerLoc() types.Coord { return e.player }
func (e *fakeEnv) GoalLoc() types.Coord   { return e.goal }
func (e *fakeEnv) CardinalLocs(loc types.Coord, radius int) []types.Coord {
	return e.cardinal[loc]
}
func (e *fakeEnv) FrontierLocs() []types.Coord { return e.frontier }

func newTestAgent(env *fakeEnv) *Agent {
	return New(env, core.NewClauseStore(), rand.New(rand.NewSource(1)))
}

func contains(locs []types.Coord, want types.Coord) bool {
	for _, loc := range locs {
		if loc == want {
			return true
		}
	}
	return false
}

func TestThinkClearTileCertifiesNeighborhood(t *testing.T) {
	env := &fakeEnv{
		player: types.Coord{X: 1, Y: 1},
		goal:   types.Coord{X: 5, Y: 5},
		cardinal: map[types.Coord][]types.Coord{
			{X: 1, Y: 1}: {{X: 2, Y: 1}, {X: 1, Y: 2}},
		},
		frontier: []types.Coord{{X: 2, Y: 1}, {X: 1, Y: 2}},
	}
	a := newTestAgent(env)

	target, err := a.Think(perception.Perception{Loc: env.player, Tile: types.TileClear})
	if err != nil {
		t.Fatalf("Think: %v", err)
	}
	safe := a.KnownSafe()
	for _, want := range []types.Coord{{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 1, Y: 2}} {
		if !contains(safe, want) {
			t.Errorf("expected %s in known-safe set, got %v", want, safe)
		}
	}
	// Both frontier tiles are safe and equidistant from the goal; the tie
	// breaks to the first frontier entry.
	if want := (types.Coord{X: 2, Y: 1}); target != want {
		t.Errorf("target = %s, want %s", target, want)
	}
}

func TestThinkWarningSingleUnresolvedConfirmsPit(t *testing.T) {
	start := types.Coord{X: 1, Y: 1}
	here := types.Coord{X: 1, Y: 2}
	suspect := types.Coord{X: 1, Y: 3}
	detour := types.Coord{X: 2, Y: 2}
	env := &fakeEnv{
		player: start,
		goal:   types.Coord{X: 4, Y: 4},
		cardinal: map[types.Coord][]types.Coord{
			start: {here},
			here:  {start, suspect},
		},
	}
	a := newTestAgent(env)

	// The agent has moved onto a warning-1 tile whose only unresolved
	// neighbor must therefore be the pit.
	env.player = here
	env.frontier = []types.Coord{suspect, detour}
	target, err := a.Think(perception.Perception{Loc: here, Tile: types.TileWarning1})
	if err != nil {
		t.Fatalf("Think: %v", err)
	}
	if !contains(a.KnownPits(), suspect) {
		t.Fatalf("expected %s confirmed as pit, known pits = %v", suspect, a.KnownPits())
	}
	if target != detour {
		t.Errorf("target = %s, want the non-pit frontier tile %s", target, detour)
	}
}

func TestThinkWarningMarksPossiblePitsThenResolves(t *testing.T) {
	start := types.Coord{X: 2, Y: 1}
	here := types.Coord{X: 2, Y: 2}
	a1 := types.Coord{X: 1, Y: 2}
	a2 := types.Coord{X: 3, Y: 2}
	a3 := types.Coord{X: 2, Y: 3}
	probe := types.Coord{X: 1, Y: 1}
	env := &fakeEnv{
		player: start,
		goal:   types.Coord{X: 5, Y: 5},
		cardinal: map[types.Coord][]types.Coord{
			start: {here},
			here:  {start, a1, a2, a3},
			probe: {a1},
		},
	}
	a := newTestAgent(env)

	// Warning 2 over three unresolved neighbors: none is decidable yet,
	// all three become suspects.
	env.player = here
	env.frontier = []types.Coord{a1, a2, a3}
	if _, err := a.Think(perception.Perception{Loc: here, Tile: types.TileWarning2}); err != nil {
		t.Fatalf("Think: %v", err)
	}
	for _, want := range []types.Coord{a1, a2, a3} {
		if !contains(a.PossiblePits(), want) {
			t.Errorf("expected %s in possible pits, got %v", want, a.PossiblePits())
		}
	}
	if len(a.KnownPits()) != 0 {
		t.Fatalf("no pit should be provable yet, got %v", a.KnownPits())
	}

	// A clear reading adjacent to one suspect exonerates it; exactly two
	// of three pits over the remaining pair pins both down.
	env.player = probe
	env.frontier = []types.Coord{a2, a3}
	if _, err := a.Think(perception.Perception{Loc: probe, Tile: types.TileClear}); err != nil {
		t.Fatalf("Think: %v", err)
	}
	if !contains(a.KnownSafe(), a1) {
		t.Fatalf("expected %s exonerated, known safe = %v", a1, a.KnownSafe())
	}
	for _, want := range []types.Coord{a2, a3} {
		if !contains(a.KnownPits(), want) {
			t.Errorf("expected %s entailed as pit, known pits = %v", want, a.KnownPits())
		}
		if contains(a.PossiblePits(), want) {
			t.Errorf("%s should have left the suspect set", want)
		}
	}
}

func TestThinkWarningThreeCondemnsNeighborhood(t *testing.T) {
	start := types.Coord{X: 2, Y: 1}
	here := types.Coord{X: 2, Y: 2}
	a1 := types.Coord{X: 1, Y: 2}
	a2 := types.Coord{X: 3, Y: 2}
	a3 := types.Coord{X: 2, Y: 3}
	env := &fakeEnv{
		player: start,
		goal:   types.Coord{X: 5, Y: 5},
		cardinal: map[types.Coord][]types.Coord{
			start: {here},
			here:  {start, a1, a2, a3},
		},
	}
	a := newTestAgent(env)

	// The top warning label condemns every unresolved neighbor at once.
	env.player = here
	env.frontier = []types.Coord{a1, a2, a3}
	if _, err := a.Think(perception.Perception{Loc: here, Tile: types.TileWarning3}); err != nil {
		t.Fatalf("Think: %v", err)
	}
	for _, want := range []types.Coord{a1, a2, a3} {
		if !contains(a.KnownPits(), want) {
			t.Errorf("expected %s confirmed as pit, known pits = %v", want, a.KnownPits())
		}
	}
}

func TestThinkGoalOnFrontierShortCircuits(t *testing.T) {
	start := types.Coord{X: 1, Y: 1}
	goal := types.Coord{X: 2, Y: 1}
	env := &fakeEnv{
		player: start,
		goal:   goal,
		cardinal: map[types.Coord][]types.Coord{
			start: {goal},
		},
		frontier: []types.Coord{goal, {X: 1, Y: 2}},
	}
	a := newTestAgent(env)

	target, err := a.Think(perception.Perception{Loc: start, Tile: types.TileWarning1})
	if err != nil {
		t.Fatalf("Think: %v", err)
	}
	if target != goal {
		t.Errorf("target = %s, want goal %s", target, goal)
	}
	// The shortcut fires before ingestion, so the warning left no trace.
	if len(a.PossiblePits()) != 0 {
		t.Errorf("shortcut must skip ingestion, possible pits = %v", a.PossiblePits())
	}
}

func TestThinkTieBreakIsDeterministic(t *testing.T) {
	env := &fakeEnv{
		player: types.Coord{X: 2, Y: 2},
		goal:   types.Coord{X: 4, Y: 4},
		cardinal: map[types.Coord][]types.Coord{
			{X: 2, Y: 2}: {{X: 3, Y: 2}, {X: 2, Y: 3}},
		},
		// Both entries are safe after the clear reading and sit at equal
		// distance from the goal.
		frontier: []types.Coord{{X: 3, Y: 2}, {X: 2, Y: 3}},
	}
	first, err := newTestAgent(env).Think(perception.Perception{Loc: env.player, Tile: types.TileClear})
	if err != nil {
		t.Fatalf("Think: %v", err)
	}
	for i := 0; i < 5; i++ {
		target, err := newTestAgent(env).Think(perception.Perception{Loc: env.player, Tile: types.TileClear})
		if err != nil {
			t.Fatalf("Think: %v", err)
		}
		if target != first {
			t.Fatalf("run %d picked %s, first run picked %s", i, target, first)
		}
	}
	if want := (types.Coord{X: 3, Y: 2}); first != want {
		t.Errorf("tie must break to the first frontier entry %s, got %s", want, first)
	}
}

func TestThinkMalformedPerception(t *testing.T) {
	env := &fakeEnv{
		player:   types.Coord{X: 1, Y: 1},
		goal:     types.Coord{X: 3, Y: 3},
		cardinal: map[types.Coord][]types.Coord{},
		frontier: []types.Coord{{X: 2, Y: 1}},
	}
	a := newTestAgent(env)
	_, err := a.Think(perception.Perception{Loc: env.player, Tile: types.Tile("Z")})
	if !errors.Is(err, perception.ErrMalformedPerception) {
		t.Fatalf("err = %v, want ErrMalformedPerception", err)
	}
}

func TestThinkEmptyFrontier(t *testing.T) {
	env := &fakeEnv{
		player:   types.Coord{X: 1, Y: 1},
		goal:     types.Coord{X: 3, Y: 3},
		cardinal: map[types.Coord][]types.Coord{},
	}
	a := newTestAgent(env)
	if _, err := a.Think(perception.Perception{Loc: env.player, Tile: types.TileClear}); err == nil {
		t.Fatal("expected error on empty frontier")
	}
}

func TestThinkContradiction(t *testing.T) {
	loc := types.Coord{X: 3, Y: 1}
	env := &fakeEnv{
		player:   types.Coord{X: 1, Y: 1},
		goal:     types.Coord{X: 4, Y: 4},
		cardinal: map[types.Coord][]types.Coord{},
		frontier: []types.Coord{loc},
	}
	kb := core.NewClauseStore()
	kb.Tell(logic.NewClause(logic.Pit(loc, true)))
	kb.Tell(logic.NewClause(logic.Pit(loc, false)))
	a := New(env, kb, rand.New(rand.NewSource(1)))

	_, err := a.Think(perception.Perception{Loc: env.player, Tile: types.TileClear})
	if !errors.Is(err, ErrContradiction) {
		t.Fatalf("err = %v, want ErrContradiction", err)
	}
}

func TestIsSafeTile(t *testing.T) {
	start := types.Coord{X: 1, Y: 1}
	neighbor := types.Coord{X: 1, Y: 2}
	env := &fakeEnv{
		player: start,
		goal:   types.Coord{X: 4, Y: 4},
		cardinal: map[types.Coord][]types.Coord{
			start: {neighbor},
		},
	}
	kb := core.NewClauseStore()
	pitLoc := types.Coord{X: 3, Y: 3}
	kb.Tell(logic.NewClause(logic.Pit(pitLoc, true)))
	a := New(env, kb, rand.New(rand.NewSource(1)))

	if safe, known := a.IsSafeTile(neighbor); !known || !safe {
		t.Errorf("IsSafeTile(%s) = (%v, %v), want (true, true)", neighbor, safe, known)
	}
	if safe, known := a.IsSafeTile(pitLoc); !known || safe {
		t.Errorf("IsSafeTile(%s) = (%v, %v), want (false, true)", pitLoc, safe, known)
	}
	if _, known := a.IsSafeTile(types.Coord{X: 2, Y: 3}); known {
		t.Errorf("undecided tile must report known=false")
	}
}

func TestFallbackCountStartsZero(t *testing.T) {
	env := &fakeEnv{
		player:   types.Coord{X: 1, Y: 1},
		goal:     types.Coord{X: 2, Y: 2},
		cardinal: map[types.Coord][]types.Coord{},
	}
	if n := newTestAgent(env).FallbackCount(); n != 0 {
		t.Fatalf("FallbackCount = %d, want 0", n)
	}
}
