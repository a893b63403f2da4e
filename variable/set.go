package variable

// Set is a mutable set of comparable values. It exists so the resolver has
// a set-like container shape to recurse into; members may be placeholders
// (keyed by identity, since placeholders are pointers).
type Set struct {
	items map[any]struct{}
}

// NewSet creates a set holding the given items.
func NewSet(items ...any) *Set {
	s := &Set{items: make(map[any]struct{}, len(items))}
	for _, item := range items {
		s.items[item] = struct{}{}
	}
	return s
}

// Add inserts an item.
func (s *Set) Add(item any) {
	s.items[item] = struct{}{}
}

// Has reports membership.
func (s *Set) Has(item any) bool {
	_, ok := s.items[item]
	return ok
}

// Len returns the number of members.
func (s *Set) Len() int { return len(s.items) }

// Items returns the members in unspecified order.
func (s *Set) Items() []any {
	out := make([]any, 0, len(s.items))
	for item := range s.items {
		out = append(out, item)
	}
	return out
}

// FrozenSet is the immutable set variant.
type FrozenSet struct {
	items map[any]struct{}
}

// NewFrozenSet creates an immutable set holding the given items.
func NewFrozenSet(items ...any) *FrozenSet {
	s := &FrozenSet{items: make(map[any]struct{}, len(items))}
	for _, item := range items {
		s.items[item] = struct{}{}
	}
	return s
}

// Has reports membership.
func (s *FrozenSet) Has(item any) bool {
	_, ok := s.items[item]
	return ok
}

// Len returns the number of members.
func (s *FrozenSet) Len() int { return len(s.items) }

// Items returns the members in unspecified order.
func (s *FrozenSet) Items() []any {
	out := make([]any, 0, len(s.items))
	for item := range s.items {
		out = append(out, item)
	}
	return out
}
