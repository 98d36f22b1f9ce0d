package lists

// Group is one bucket of GroupBy.
type Group[K comparable, T any] struct {
	Key   K
	Items []T
}

// Count is the number of items in the group.
func (g Group[K, T]) Count() int { return len(g.Items) }

// GroupBy buckets items by key. Groups appear in order of first occurrence
// and items keep their input order inside a group.
func GroupBy[T any, K comparable](items []T, key func(T) K) []Group[K, T] {
	index := make(map[K]int)
	var groups []Group[K, T]
	for _, it := range items {
		k := key(it)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group[K, T]{Key: k})
		}
		groups[i].Items = append(groups[i].Items, it)
	}
	return groups
}

// Counts returns the number of items per key.
func Counts[T any, K comparable](items []T, key func(T) K) map[K]int {
	out := make(map[K]int)
	for _, it := range items {
		out[key(it)]++
	}
	return out
}
