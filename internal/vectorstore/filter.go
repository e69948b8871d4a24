package vectorstore

// Filter is a conjunction/disjunction tree over metadata equality
// predicates. The zero Filter matches every entry.
type Filter struct {
	key   string
	value any
	all   []Filter
	any   []Filter
}

// Eq matches entries whose metadata carries the given key with exactly the
// given primitive value.
func Eq(key string, value any) Filter {
	return Filter{key: key, value: value}
}

// And matches entries satisfying every child filter.
func And(filters ...Filter) Filter {
	return Filter{all: filters}
}

// Or matches entries satisfying at least one child filter.
func Or(filters ...Filter) Filter {
	return Filter{any: filters}
}

// Matches evaluates the filter against a metadata projection.
func (f Filter) Matches(m Metadata) bool {
	switch {
	case len(f.all) > 0:
		for _, child := range f.all {
			if !child.Matches(m) {
				return false
			}
		}
		return true
	case len(f.any) > 0:
		for _, child := range f.any {
			if child.Matches(m) {
				return true
			}
		}
		return false
	case f.key != "":
		return m[f.key] == f.value
	default:
		return true
	}
}
