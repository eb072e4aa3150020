package reconcile

// Group is one partition of a snapshot.
type Group[K comparable, T any] struct {
	Key   K
	Items []T
}

// GroupBy partitions items by key. Groups appear in the order of keys; items
// keep their snapshot order inside a group. Items whose key is not listed are
// dropped.
func GroupBy[K comparable, T any](items []T, keyOf func(T) K, keys []K) []Group[K, T] {
	index := make(map[K]int, len(keys))
	groups := make([]Group[K, T], len(keys))
	for i, k := range keys {
		index[k] = i
		groups[i] = Group[K, T]{Key: k, Items: []T{}}
	}

	for _, item := range items {
		i, ok := index[keyOf(item)]
		if !ok {
			continue
		}
		groups[i].Items = append(groups[i].Items, item)
	}

	return groups
}
