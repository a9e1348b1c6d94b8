package sitemap

import "sort"

// URLSet is a deduplicated set of absolute URLs.
type URLSet map[string]struct{}

// NewURLSet returns a set holding urls.
func NewURLSet(urls ...string) URLSet {
	set := make(URLSet, len(urls))
	set.Add(urls...)
	return set
}

// Add inserts urls, ignoring empty strings.
func (s URLSet) Add(urls ...string) {
	for _, u := range urls {
		if u == "" {
			continue
		}
		s[u] = struct{}{}
	}
}

// Has reports membership.
func (s URLSet) Has(u string) bool {
	_, ok := s[u]
	return ok
}

// Len returns the number of URLs in the set.
func (s URLSet) Len() int {
	return len(s)
}

// Clone returns an independent copy.
func (s URLSet) Clone() URLSet {
	out := make(URLSet, len(s))
	for u := range s {
		out[u] = struct{}{}
	}
	return out
}

// Union returns s ∪ other without modifying either set.
func (s URLSet) Union(other URLSet) URLSet {
	out := s.Clone()
	for u := range other {
		out[u] = struct{}{}
	}
	return out
}

// Difference returns s − other without modifying either set.
func (s URLSet) Difference(other URLSet) URLSet {
	out := make(URLSet, len(s))
	for u := range s {
		if _, ok := other[u]; !ok {
			out[u] = struct{}{}
		}
	}
	return out
}

// Subset reports whether every URL of s is in other.
func (s URLSet) Subset(other URLSet) bool {
	for u := range s {
		if _, ok := other[u]; !ok {
			return false
		}
	}
	return true
}

// Sorted returns the URLs in lexicographic order.
func (s URLSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for u := range s {
		out = append(out, u)
	}
	sort.Strings(out)
	return out
}
