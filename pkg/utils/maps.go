package utils

import "sort"

// SortedKeys returns the keys of a map in ascending order, for
// deterministic iteration and diagnostics
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
