package perception

import (
	"pitsweeper/internal/logging"
	"pitsweeper/internal/logic"
	"pitsweeper/internal/types"
)

// EncodeWarning converts a warning reading into CNF constraints asserting
// "exactly count of the unresolved neighbors are pits". Neighbors already
// known safe must be excluded by the caller before encoding.
//
// Degenerate cases collapse to unit clauses: when exactly count neighbors
// remain each one is a confirmed pit, and when count is zero each one is
// confirmed safe. With no unresolved neighbors the reading carries no new
// information and nothing is produced. Otherwise the general k-of-n
// encoding applies:
//
//   - at-least-count: every (n-count+1)-subset holds at least one pit;
//   - at-most-count: every (count+1)-subset holds at least one safe cell.
//
// Neighborhoods are cardinal, so n <= 4 and the subset counts stay tiny.
func EncodeWarning(count int, loc types.Coord, unresolved []types.Coord) []logic.Clause {
	neighbors := append([]types.Coord(nil), unresolved...)
	types.SortCoords(neighbors)
	n := len(neighbors)

	logging.PerceptDebug("encode: warning %d at %s over %d unresolved neighbors", count, loc, n)

	if n == 0 {
		return nil
	}
	if count <= 0 {
		clauses := make([]logic.Clause, 0, n)
		for _, nb := range neighbors {
			clauses = append(clauses, logic.NewClause(logic.Pit(nb, false)))
		}
		return clauses
	}
	if count >= n {
		clauses := make([]logic.Clause, 0, n)
		for _, nb := range neighbors {
			clauses = append(clauses, logic.NewClause(logic.Pit(nb, true)))
		}
		return clauses
	}

	var clauses []logic.Clause
	for _, subset := range logic.Combinations(neighbors, n-count+1) {
		lits := make([]logic.Literal, len(subset))
		for i, nb := range subset {
			lits[i] = logic.Pit(nb, true)
		}
		clauses = append(clauses, logic.NewClause(lits...))
	}
	for _, subset := range logic.Combinations(neighbors, count+1) {
		lits := make([]logic.Literal, len(subset))
		for i, nb := range subset {
			lits[i] = logic.Pit(nb, false)
		}
		clauses = append(clauses, logic.NewClause(lits...))
	}
	return clauses
}
