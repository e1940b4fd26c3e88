// Package agent implements the exploration controller: it owns the
// knowledge base, folds each sensor reading into constraint clauses, asks
// the kernel which frontier tiles are provably safe or dangerous, and
// picks the next move by a goal-distance heuristic over the answers.
package agent

import (
	"fmt"
	"math/rand"

	"pitsweeper/internal/core"
	"pitsweeper/internal/logging"
	"pitsweeper/internal/logic"
	"pitsweeper/internal/perception"
	"pitsweeper/internal/types"
)

// Environment is the read-only world surface the controller consumes.
// The maze simulator implements it; tests substitute fakes.
type Environment interface {
	PlayerLoc() types.Coord
	GoalLoc() types.Coord
	CardinalLocs(loc types.Coord, radius int) []types.Coord
	FrontierLocs() []types.Coord
}

// ErrContradiction reports that the kernel proved both polarities for the
// same location in a single step. That only happens when the perception
// stream is inconsistent or the encoding is defective, so the controller
// surfaces it instead of picking a side.
var ErrContradiction = fmt.Errorf("knowledge base contradiction")

// Scoring penalties added to the Manhattan distance of a frontier tile.
const (
	penaltyKnownPit    = 20
	penaltyPossiblePit = 15
)

// Agent is the exploration controller for one episode. Single-owner and
// synchronous: one Think call per perception, no internal goroutines.
type Agent struct {
	env  Environment
	kb   core.KnowledgeBase
	rng  *rand.Rand
	goal types.Coord

	safe         types.CoordSet
	pits         types.CoordSet
	possiblePits types.CoordSet

	fallbacks int
}

// New creates a controller over env. Entering the maze guarantees the
// start tile and its cardinal neighborhood are pit-free, and the goal is
// always safe, so those facts seed both the record-keeping sets and the
// knowledge base. rng feeds only the degenerate no-score fallback; pass a
// seeded source for reproducible runs.
func New(env Environment, kb core.KnowledgeBase, rng *rand.Rand) *Agent {
	a := &Agent{
		env:          env,
		kb:           kb,
		rng:          rng,
		goal:         env.GoalLoc(),
		safe:         types.NewCoordSet(),
		pits:         types.NewCoordSet(),
		possiblePits: types.NewCoordSet(),
	}
	start := env.PlayerLoc()
	a.markSafe(start)
	a.markSafe(a.goal)
	for _, nb := range env.CardinalLocs(start, 1) {
		a.markSafe(nb)
	}
	logging.Agent("initialized at %s, goal %s", start, a.goal)
	return a
}

// FallbackCount returns how many times selection fell through to the
// random fallback. A nonzero count flags heuristic failure.
func (a *Agent) FallbackCount() int { return a.fallbacks }

// KnownSafe returns a copy of the confirmed-safe set.
func (a *Agent) KnownSafe() []types.Coord { return a.safe.Sorted() }

// KnownPits returns a copy of the confirmed-pit set.
func (a *Agent) KnownPits() []types.Coord { return a.pits.Sorted() }

// PossiblePits returns a copy of the unresolved-suspect set.
func (a *Agent) PossiblePits() []types.Coord { return a.possiblePits.Sorted() }

func (a *Agent) markSafe(loc types.Coord) {
	a.safe.Add(loc)
	a.possiblePits.Remove(loc)
	a.kb.Tell(logic.NewClause(logic.Pit(loc, false)))
}

func (a *Agent) markPit(loc types.Coord) {
	a.pits.Add(loc)
	a.possiblePits.Remove(loc)
	a.kb.Tell(logic.NewClause(logic.Pit(loc, true)))
}

// Think processes one perception and returns the next frontier target.
// The step is a complete transaction: ingest the reading, tell the
// derived clauses, compact the store, classify the frontier by entailment
// queries, then score and select.
func (a *Agent) Think(p perception.Perception) (types.Coord, error) {
	if err := p.Validate(); err != nil {
		return types.Coord{}, err
	}
	timer := logging.StartTimer(logging.CategoryAgent, "think")
	defer timer.Stop()

	// The goal can never host a pit; idempotent re-assert each step.
	a.markSafe(a.goal)

	frontier := a.env.FrontierLocs()
	for _, loc := range frontier {
		if loc == a.goal {
			logging.Agent("goal %s on frontier, selecting it", a.goal)
			return a.goal, nil
		}
	}

	a.ingest(p)
	a.foldUnits(a.kb.Simplify(a.pits, a.safe))
	if err := a.classifyFrontier(frontier); err != nil {
		return types.Coord{}, err
	}
	return a.selectTarget(frontier)
}

// ingest translates one tile reading into clauses and record-keeping.
func (a *Agent) ingest(p perception.Perception) {
	switch {
	case p.Tile == types.TilePit:
		logging.Agent("pit underfoot at %s", p.Loc)
		a.markPit(p.Loc)

	case p.Tile == types.TileClear:
		// A clear reading certifies the tile and its whole cardinal
		// neighborhood.
		a.markSafe(p.Loc)
		for _, nb := range a.env.CardinalLocs(p.Loc, 1) {
			a.markSafe(nb)
		}

	default: // warning label; Validate rejected everything else
		count := p.Tile.WarningCount()
		var unresolved []types.Coord
		for _, nb := range a.env.CardinalLocs(p.Loc, 1) {
			if !a.safe.Contains(nb) {
				unresolved = append(unresolved, nb)
			}
		}
		// The top warning label marks the whole remaining neighborhood.
		if p.Tile == types.TileWarning3 {
			count = len(unresolved)
		}
		logging.Percept("warning %d at %s, %d unresolved neighbors", count, p.Loc, len(unresolved))
		for _, c := range perception.EncodeWarning(count, p.Loc, unresolved) {
			a.kb.Tell(c)
			if unit, ok := c.Unit(); ok {
				if unit.Positive {
					a.markPit(unit.Prop.Loc)
				} else {
					a.markSafe(unit.Prop.Loc)
				}
			}
		}
		for _, nb := range unresolved {
			if !a.pits.Contains(nb) && !a.safe.Contains(nb) {
				a.possiblePits.Add(nb)
			}
		}
		// Standing on a warning tile is itself proof the tile is safe.
		a.markSafe(p.Loc)
	}
}

// foldUnits merges unit clauses reported by Simplify into the confirmed
// sets. The fold is idempotent.
func (a *Agent) foldUnits(units []logic.Clause) {
	for _, c := range units {
		unit, ok := c.Unit()
		if !ok {
			continue
		}
		if unit.Positive {
			a.pits.Add(unit.Prop.Loc)
			a.possiblePits.Remove(unit.Prop.Loc)
		} else {
			a.safe.Add(unit.Prop.Loc)
			a.possiblePits.Remove(unit.Prop.Loc)
		}
	}
}

// classifyFrontier refines the confirmed sets with entailment queries.
// Unknown (neither polarity provable) is a normal outcome; both polarities
// provable is fatal.
func (a *Agent) classifyFrontier(frontier []types.Coord) error {
	for _, loc := range frontier {
		isPit := a.kb.Ask(logic.NewClause(logic.Pit(loc, true)))
		isSafe := a.kb.Ask(logic.NewClause(logic.Pit(loc, false)))
		if isPit && isSafe {
			return fmt.Errorf("%w: %s proved both pit and safe", ErrContradiction, loc)
		}
		if isPit {
			a.pits.Add(loc)
			a.possiblePits.Remove(loc)
		}
		if isSafe {
			a.safe.Add(loc)
			a.possiblePits.Remove(loc)
		}
	}
	return nil
}

// selectTarget scores the frontier and picks the minimum. Frontier order
// is the environment's deterministic order, so ties break to the first
// minimum encountered. An unscorable step falls back to a uniform random
// pick, which is counted as a heuristic failure.
func (a *Agent) selectTarget(frontier []types.Coord) (types.Coord, error) {
	best := types.Coord{}
	bestScore := 0
	found := false
	for _, loc := range frontier {
		score := a.scoreLocation(loc)
		logging.AgentDebug("frontier %s scored %d", loc, score)
		if !found || score < bestScore {
			best = loc
			bestScore = score
			found = true
		}
	}
	if found {
		logging.Agent("selected %s (score %d)", best, bestScore)
		return best, nil
	}
	if len(frontier) == 0 {
		return types.Coord{}, fmt.Errorf("no frontier locations to select from")
	}
	a.fallbacks++
	pick := frontier[a.rng.Intn(len(frontier))]
	logging.Get(logging.CategoryAgent).Warn("no scorable frontier, random fallback to %s (fallback %d)", pick, a.fallbacks)
	return pick, nil
}

// scoreLocation ranks a frontier tile: Manhattan distance to goal, plus a
// flat penalty for a proven pit and a smaller one for an unresolved
// suspect. Lower is better.
func (a *Agent) scoreLocation(loc types.Coord) int {
	dist := loc.Manhattan(a.goal)
	switch {
	case a.pits.Contains(loc):
		return dist + penaltyKnownPit
	case a.safe.Contains(loc) && !a.possiblePits.Contains(loc):
		return dist
	default:
		return dist + penaltyPossiblePit
	}
}

// IsSafeTile reports the current verdict for a location: (true, true) if
// certainly safe, (false, true) if certainly a pit, and known=false when
// the kernel cannot yet decide.
func (a *Agent) IsSafeTile(loc types.Coord) (safe, known bool) {
	if a.safe.Contains(loc) {
		return true, true
	}
	if a.pits.Contains(loc) {
		return false, true
	}
	if a.kb.Ask(logic.NewClause(logic.Pit(loc, true))) {
		return false, true
	}
	if a.kb.Ask(logic.NewClause(logic.Pit(loc, false))) {
		return true, true
	}
	return false, false
}
