package logic

// Combinations returns every k-element subset of items, preserving the
// input order within each subset. k <= 0 or k > len(items) yields nil.
// Neighborhood sizes never exceed four, so the output stays tiny.
func Combinations[T any](items []T, k int) [][]T {
	if k <= 0 || k > len(items) {
		return nil
	}
	var out [][]T
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		pick := make([]T, k)
		for i, j := range idx {
			pick[i] = items[j]
		}
		out = append(out, pick)

		// Advance the rightmost index that can still move.
		i := k - 1
		for i >= 0 && idx[i] == len(items)-k+i {
			i--
		}
		if i < 0 {
			return out
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}
