package symbols

import "sort"

// Set is an unordered collection of distinct identifier strings.
// Iteration order is unspecified; use Sorted for deterministic output.
type Set map[string]struct{}

// NewSet returns an empty identifier set.
func NewSet() Set {
	return make(Set)
}

// Add inserts id. Inserting an existing id is a no-op.
func (s Set) Add(id string) {
	s[id] = struct{}{}
}

// Has reports whether id is in the set.
func (s Set) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Len returns the number of distinct identifiers.
func (s Set) Len() int {
	return len(s)
}

// Sorted returns the identifiers in lexicographic order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// IsIdentStart reports whether c can begin a C identifier.
func IsIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// IsIdentChar reports whether c can continue a C identifier.
func IsIdentChar(c byte) bool {
	return IsIdentStart(c) || (c >= '0' && c <= '9')
}

// CollectIdents adds every C-style identifier occurring in text to the set.
// Identifiers start with an ASCII letter or underscore and continue with
// letters, digits, and underscores.
func CollectIdents(text string, into Set) {
	for i := 0; i < len(text); {
		if !IsIdentStart(text[i]) {
			i++
			continue
		}
		start := i
		i++
		for i < len(text) && IsIdentChar(text[i]) {
			i++
		}
		into.Add(text[start:i])
	}
}
