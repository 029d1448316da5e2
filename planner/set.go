package planner

import "golang.org/x/exp/slices"

// set is a small ordered-insertion generic set backed by a linear
// slices.Contains scan. No planner rule uses it at present.
type set[T comparable] struct {
	data []T
}

// add reports whether v was newly inserted.
func (s *set[T]) add(v T) bool {
	if slices.Contains(s.data, v) {
		return false
	}
	s.data = append(s.data, v)
	return true
}

func (s *set[T]) values() []T { return s.data }

func (s *set[T]) len() int { return len(s.data) }

func (s *set[T]) contains(v T) bool { return slices.Contains(s.data, v) }
