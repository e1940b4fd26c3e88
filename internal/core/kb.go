// Package core implements the propositional knowledge base at the center
// of the pitsweeper agent: a subsumption-minimized clause store answering
// entailment queries by refutation resolution.
package core

import (
	"pitsweeper/internal/logging"
	"pitsweeper/internal/logic"
	"pitsweeper/internal/types"
)

// KnowledgeBase is the contract the agent programs against. Tell asserts
// a clause, Ask tests entailment by refutation, Simplify compacts the
// store against externally confirmed facts and reports the unit clauses
// present after compaction so callers can update their record-keeping.
type KnowledgeBase interface {
	Tell(c logic.Clause)
	Ask(query logic.Clause) bool
	Simplify(knownPits, knownSafe types.CoordSet) []logic.Clause
	Size() int
	Clauses() []logic.Clause
}

// ClauseStore is the in-memory KnowledgeBase. It holds distinct,
// non-tautological clauses keyed by their canonical literal-set string,
// with the invariant that no stored clause is a superset of another.
// Single-owner: the agent controller drives it synchronously, so there is
// no locking.
type ClauseStore struct {
	clauses map[string]logic.Clause
}

var _ KnowledgeBase = (*ClauseStore)(nil)

// NewClauseStore creates an empty knowledge base.
func NewClauseStore() *ClauseStore {
	return &ClauseStore{clauses: make(map[string]logic.Clause)}
}

// Size returns the number of stored clauses.
func (s *ClauseStore) Size() int { return len(s.clauses) }

// Clauses returns a copy of the stored clauses. Callers never alias the
// internal storage.
func (s *ClauseStore) Clauses() []logic.Clause {
	out := make([]logic.Clause, 0, len(s.clauses))
	for _, c := range s.clauses {
		out = append(out, c)
	}
	return out
}

// Tell asserts a clause. Tautologies are discarded. A clause already
// subsumed by a stored clause is redundant and dropped; otherwise any
// stored clauses the new clause subsumes are evicted before insertion.
// Tell does not run resolution closure; deduction is deferred to Ask.
func (s *ClauseStore) Tell(c logic.Clause) {
	if c.IsTautology() || c.IsEmpty() {
		return
	}
	for _, existing := range s.clauses {
		if existing.SubsetOf(c) {
			logging.KernelDebug("tell: %s subsumed by stored %s", c, existing)
			return
		}
	}
	for key, existing := range s.clauses {
		if c.SubsetOf(existing) {
			delete(s.clauses, key)
		}
	}
	s.clauses[c.Key()] = c
	logging.KernelDebug("tell: stored %s (%d clauses)", c, len(s.clauses))
}

// Ask reports whether the store entails the query clause: KB ∧ ¬query is
// unsatisfiable. The query is a disjunction, so its negation contributes
// one negated unit clause per literal. Resolution runs set-of-support
// style, seeded by those units, with resolvents deduplicated by canonical
// key; the finite proposition universe plus deduplication bounds the loop
// to a fixpoint, so it terminates without any wall-clock cutoff. The
// persistent store is never mutated.
func (s *ClauseStore) Ask(query logic.Clause) bool {
	if query.IsTautology() {
		return true
	}
	timer := logging.StartTimer(logging.CategoryKernel, "ask")
	defer timer.Stop()

	working := make(map[string]logic.Clause, len(s.clauses)+query.Len())
	for k, c := range s.clauses {
		working[k] = c
	}

	// Negation of the query seeds the set of support.
	support := make([]logic.Clause, 0, query.Len())
	for _, lit := range query.Literals() {
		unit := logic.NewClause(lit.Negated())
		key := unit.Key()
		if _, ok := working[key]; !ok {
			working[key] = unit
			support = append(support, unit)
		}
	}
	if len(support) == 0 {
		// The negated query is already stored verbatim; still resolve from it.
		for _, lit := range query.Literals() {
			support = append(support, logic.NewClause(lit.Negated()))
		}
	}

	for len(support) > 0 {
		next := support[0]
		support = support[1:]

		// Snapshot: resolving against clauses added this iteration is
		// picked up when those resolvents leave the agenda themselves.
		partners := make([]logic.Clause, 0, len(working))
		for _, c := range working {
			partners = append(partners, c)
		}
		for _, partner := range partners {
			resolvent, ok := next.Resolve(partner)
			if !ok {
				continue
			}
			if resolvent.IsEmpty() {
				logging.KernelDebug("ask: %s entailed (empty clause from %s x %s)", query, next, partner)
				return true
			}
			if resolvent.IsTautology() {
				continue
			}
			key := resolvent.Key()
			if _, seen := working[key]; seen {
				continue
			}
			working[key] = resolvent
			support = append(support, resolvent)
		}
	}

	logging.KernelDebug("ask: %s not entailed (fixpoint, %d working clauses)", query, len(working))
	return false
}

// Simplify compacts the store against externally confirmed facts. Stored
// clauses containing a literal the facts already satisfy are removed
// outright (they can never inform another deduction); literals the facts
// falsify are dropped from their clauses as long as at least one literal
// survives. Subsumption pruning re-runs afterwards since shortening
// clauses creates new subset relationships. The unit clauses present
// after compaction are returned so the caller can fold them into its
// confirmed sets; the fold is idempotent, so previously known units are
// harmless repeats.
func (s *ClauseStore) Simplify(knownPits, knownSafe types.CoordSet) []logic.Clause {
	var units []logic.Clause
	rebuilt := make(map[string]logic.Clause, len(s.clauses))

	for _, c := range s.clauses {
		keep := make([]logic.Literal, 0, c.Len())
		satisfied := false
		for _, lit := range c.Literals() {
			loc := lit.Prop.Loc
			switch {
			case lit.Positive && knownPits.Contains(loc),
				!lit.Positive && knownSafe.Contains(loc):
				satisfied = true
			case lit.Positive && knownSafe.Contains(loc),
				!lit.Positive && knownPits.Contains(loc):
				// Known false; removable unless it is the last literal.
			default:
				keep = append(keep, lit)
			}
			if satisfied {
				break
			}
		}
		if satisfied {
			continue
		}
		if len(keep) == 0 {
			// Every literal contradicts a confirmed fact. Keep the clause
			// untouched rather than manufacture an empty clause here; the
			// inconsistency surfaces through Ask.
			keep = c.Literals()
		}
		reduced := logic.NewClause(keep...)
		rebuilt[reduced.Key()] = reduced
	}

	s.clauses = make(map[string]logic.Clause, len(rebuilt))
	for _, c := range rebuilt {
		s.Tell(c)
	}
	for _, c := range s.clauses {
		if unit, ok := c.Unit(); ok {
			units = append(units, logic.NewClause(unit))
		}
	}
	logging.KernelDebug("simplify: %d clauses remain, %d units", len(s.clauses), len(units))
	return units
}
