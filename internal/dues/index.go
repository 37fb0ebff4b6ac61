package dues

import "kitledger/internal/catalog"

// Index buckets catalog items by normalized course so matching is
// O(students × items-per-course) instead of a full cross product.
type Index map[string][]catalog.Item

// BuildIndex makes a single pass over the catalog. Items whose course does not
// normalize to a non-empty key are dropped: they can never match a student, so
// they are silently ineligible rather than an error.
func BuildIndex(items []catalog.Item) Index {
	index := make(Index, len(items))
	for _, item := range items {
		course := Normalize(item.Course)
		if course == "" {
			continue
		}
		index[course] = append(index[course], item)
	}
	return index
}
