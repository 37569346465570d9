package poker

// Combinations returns every k-element subset of items, preserving input
// order within each subset. It is evaluator-agnostic; the hand evaluator uses
// it to enumerate the C(7,5)=21 five-card hands from seven cards.
func Combinations[T any](items []T, k int) [][]T {
	if k < 0 || k > len(items) {
		return nil
	}

	var result [][]T
	combo := make([]T, 0, k)

	var walk func(start int)
	walk = func(start int) {
		if len(combo) == k {
			out := make([]T, k)
			copy(out, combo)
			result = append(result, out)
			return
		}
		// Prune branches that can no longer reach k elements.
		for i := start; i <= len(items)-(k-len(combo)); i++ {
			combo = append(combo, items[i])
			walk(i + 1)
			combo = combo[:len(combo)-1]
		}
	}

	walk(0)
	return result
}
