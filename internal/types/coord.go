// Package types holds small value types shared across the pitsweeper
// packages: grid coordinates and tile labels.
package types

import (
	"fmt"
	"sort"
)

// Coord is a grid position. X grows rightward, Y grows downward, matching
// the row/column layout of maze files.
type Coord struct {
	X int
	Y int
}

// String returns the "(x,y)" form used in logs and clause dumps.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Manhattan returns the L1 distance to other.
func (c Coord) Manhattan(other Coord) int {
	return abs(c.X-other.X) + abs(c.Y-other.Y)
}

// Less orders coordinates row-major. Used wherever a deterministic
// iteration order over coordinate sets is needed.
func (c Coord) Less(other Coord) bool {
	if c.Y != other.Y {
		return c.Y < other.Y
	}
	return c.X < other.X
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// CoordSet is a set of grid positions.
type CoordSet map[Coord]struct{}

// NewCoordSet builds a set from the given coordinates.
func NewCoordSet(coords ...Coord) CoordSet {
	s := make(CoordSet, len(coords))
	for _, c := range coords {
		s[c] = struct{}{}
	}
	return s
}

// Add inserts c into the set.
func (s CoordSet) Add(c Coord) { s[c] = struct{}{} }

// Remove deletes c from the set.
func (s CoordSet) Remove(c Coord) { delete(s, c) }

// Contains reports whether c is in the set.
func (s CoordSet) Contains(c Coord) bool {
	_, ok := s[c]
	return ok
}

// Sorted returns the members in row-major order.
func (s CoordSet) Sorted() []Coord {
	out := make([]Coord, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	SortCoords(out)
	return out
}

// SortCoords orders a slice row-major in place.
func SortCoords(coords []Coord) {
	sort.Slice(coords, func(i, j int) bool { return coords[i].Less(coords[j]) })
}
