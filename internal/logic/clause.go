package logic

import (
	"sort"
	"strings"
)

// Clause is a disjunction of literals: "at least one of these holds".
// Internally it maps each proposition to its polarity, so duplicates
// collapse on construction. A clause holding both polarities of the same
// proposition is a tautology; tautologies are constructible (the sensor
// encoder and resolution both need to notice them) but are never stored.
//
// Clauses are immutable once built. Mutating methods return new values.
type Clause struct {
	lits      map[Proposition]bool
	tautology bool
}

// NewClause builds a clause from literals, collapsing duplicates and
// flagging tautologies.
func NewClause(lits ...Literal) Clause {
	c := Clause{lits: make(map[Proposition]bool, len(lits))}
	for _, l := range lits {
		if pol, ok := c.lits[l.Prop]; ok && pol != l.Positive {
			c.tautology = true
		}
		c.lits[l.Prop] = l.Positive
	}
	return c
}

// IsTautology reports whether the clause held complementary literals at
// construction time and is therefore vacuously true.
func (c Clause) IsTautology() bool { return c.tautology }

// IsEmpty reports whether the clause has no literals. The empty clause is
// the contradiction sentinel produced during refutation.
func (c Clause) IsEmpty() bool { return len(c.lits) == 0 && !c.tautology }

// Len returns the number of distinct literals.
func (c Clause) Len() int { return len(c.lits) }

// Contains reports whether the clause holds exactly this literal.
func (c Clause) Contains(l Literal) bool {
	pol, ok := c.lits[l.Prop]
	return ok && pol == l.Positive
}

// Unit returns the sole literal of a unit clause. ok is false when the
// clause is not unit.
func (c Clause) Unit() (Literal, bool) {
	if len(c.lits) != 1 || c.tautology {
		return Literal{}, false
	}
	for p, pol := range c.lits {
		return Literal{Prop: p, Positive: pol}, true
	}
	return Literal{}, false
}

// Literals returns the clause's literals in a deterministic order.
func (c Clause) Literals() []Literal {
	out := make([]Literal, 0, len(c.lits))
	for p, pol := range c.lits {
		out = append(out, Literal{Prop: p, Positive: pol})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Prop.Loc != b.Prop.Loc {
			return a.Prop.Loc.Less(b.Prop.Loc)
		}
		if a.Prop.Kind != b.Prop.Kind {
			return a.Prop.Kind < b.Prop.Kind
		}
		return !a.Positive && b.Positive
	})
	return out
}

// Key returns a canonical string for the literal set, used to deduplicate
// clauses in maps. Tautologies share whatever key their literal set has;
// callers discard them before keying.
func (c Clause) Key() string {
	lits := c.Literals()
	parts := make([]string, len(lits))
	for i, l := range lits {
		parts[i] = l.String()
	}
	return strings.Join(parts, "|")
}

// String renders the clause as "{P(1,2) v !P(2,2)}".
func (c Clause) String() string {
	lits := c.Literals()
	parts := make([]string, len(lits))
	for i, l := range lits {
		parts[i] = l.String()
	}
	return "{" + strings.Join(parts, " v ") + "}"
}

// Equal reports structural equality over the literal sets.
func (c Clause) Equal(other Clause) bool {
	if len(c.lits) != len(other.lits) || c.tautology != other.tautology {
		return false
	}
	for p, pol := range c.lits {
		if opol, ok := other.lits[p]; !ok || opol != pol {
			return false
		}
	}
	return true
}

// SubsetOf reports whether every literal of c appears in other. A clause
// subsumes any superset of itself: the shorter clause is the stronger
// constraint, so the superset is redundant.
func (c Clause) SubsetOf(other Clause) bool {
	if len(c.lits) > len(other.lits) {
		return false
	}
	for p, pol := range c.lits {
		if opol, ok := other.lits[p]; !ok || opol != pol {
			return false
		}
	}
	return true
}

// Resolve performs binary resolution against other. It succeeds only when
// exactly one complementary literal pair exists between the two clauses;
// with two or more pairs the resolvent would be a tautology and ok is
// false. The resolvent is the union of both literal sets minus the
// complementary pair. An empty resolvent signals a contradiction.
func (c Clause) Resolve(other Clause) (resolvent Clause, ok bool) {
	var pivot Proposition
	pairs := 0
	for p, pol := range c.lits {
		if opol, exists := other.lits[p]; exists && opol != pol {
			pivot = p
			pairs++
			if pairs > 1 {
				return Clause{}, false
			}
		}
	}
	if pairs == 0 {
		return Clause{}, false
	}

	merged := make(map[Proposition]bool, len(c.lits)+len(other.lits)-2)
	for p, pol := range c.lits {
		if p != pivot {
			merged[p] = pol
		}
	}
	for p, pol := range other.lits {
		if p != pivot {
			merged[p] = pol
		}
	}
	return Clause{lits: merged}, true
}
