// Package logic provides the propositional building blocks of the
// knowledge base: literals over grid locations, CNF clauses with
// subsumption and binary resolution, and a small combinations generator
// used by the sensor encoder.
package logic

import (
	"fmt"

	"pitsweeper/internal/types"
)

// PropKind tags what a proposition asserts about a location. Only pit
// presence exists today; the tag keeps clause dumps readable and leaves
// room for other per-cell facts.
type PropKind string

const (
	// KindPit is the proposition "this location hosts a pit".
	KindPit PropKind = "P"
)

// Proposition is an atomic statement about one location.
type Proposition struct {
	Kind PropKind
	Loc  types.Coord
}

// Literal is a proposition with a polarity. The zero polarity (false)
// reads "the proposition does not hold". Literals are immutable values;
// two literals are equal iff kind, location, and polarity all match.
type Literal struct {
	Prop     Proposition
	Positive bool
}

// Pit returns the positive or negative pit literal for loc.
func Pit(loc types.Coord, positive bool) Literal {
	return Literal{Prop: Proposition{Kind: KindPit, Loc: loc}, Positive: positive}
}

// Negated returns the literal with flipped polarity.
func (l Literal) Negated() Literal {
	l.Positive = !l.Positive
	return l
}

// String renders "P(x,y)" or "!P(x,y)".
func (l Literal) String() string {
	if l.Positive {
		return fmt.Sprintf("%s%s", l.Prop.Kind, l.Prop.Loc)
	}
	return fmt.Sprintf("!%s%s", l.Prop.Kind, l.Prop.Loc)
}
