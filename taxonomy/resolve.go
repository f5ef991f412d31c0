package taxonomy

import (
	"sort"
	"strings"
)

// ResolveNames maps free-text names to canonical records. Matching is applied
// independently per name, first match wins:
//
//  1. Case-insensitive exact match against the canonical name.
//  2. Case-insensitive substring match in either direction.
//
// Canonical iteration order is pinned to id ascending so that substring
// resolution is reproducible regardless of how the store orders its results.
// Names with no match are dropped; the output may be shorter than the input.
func ResolveNames[T Record](names []string, canonical []T) []T {
	ordered := make([]T, len(canonical))
	copy(ordered, canonical)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].GetID() < ordered[j].GetID()
	})

	resolved := make([]T, 0, len(names))
	for _, name := range names {
		if match, ok := resolveOne(name, ordered); ok {
			resolved = append(resolved, match)
		}
	}
	return resolved
}

func resolveOne[T Record](name string, ordered []T) (T, bool) {
	var zero T

	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return zero, false
	}

	for _, r := range ordered {
		if strings.ToLower(r.GetName()) == needle {
			return r, true
		}
	}

	for _, r := range ordered {
		haystack := strings.ToLower(r.GetName())
		if strings.Contains(haystack, needle) || strings.Contains(needle, haystack) {
			return r, true
		}
	}

	return zero, false
}
