package annotation

// Store is the ordered annotation history for one base image. It is
// append-only: insertion order is commit order is paint order, and a
// committed annotation is never edited or individually removed. Clear
// drops the whole history when the base image changes.
type Store struct {
	items []Annotation
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Append commits an annotation at the end of the z-order.
func (s *Store) Append(a Annotation) {
	s.items = append(s.items, a)
}

// Clear drops every committed annotation.
func (s *Store) Clear() {
	s.items = nil
}

// All returns the committed annotations in commit order. The slice is
// a copy; mutating it does not affect the store.
func (s *Store) All() []Annotation {
	out := make([]Annotation, len(s.items))
	copy(out, s.items)
	return out
}

// Len reports the number of committed annotations.
func (s *Store) Len() int {
	return len(s.items)
}
