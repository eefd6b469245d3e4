package core

import (
	"slices"

	"github.com/inovacc/petgallery/internal/model"
)

// Selection is the set of pet ids marked for export. The zero value is an empty set.
type Selection struct {
	ids map[string]struct{}
}

// NewSelection creates an empty selection
func NewSelection() *Selection {
	return &Selection{ids: make(map[string]struct{})}
}

// Toggle adds id if absent and removes it if present
func (s *Selection) Toggle(id string) {
	if s.ids == nil {
		s.ids = make(map[string]struct{})
	}

	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return
	}

	s.ids[id] = struct{}{}
}

// SelectAll replaces the selection with the ids of every pet in the full set
func (s *Selection) SelectAll(pets []model.Pet) {
	s.ids = make(map[string]struct{}, len(pets))

	for _, p := range pets {
		s.ids[p.ID] = struct{}{}
	}
}

// Clear empties the selection
func (s *Selection) Clear() {
	s.ids = make(map[string]struct{})
}

// Contains reports whether id is selected
func (s *Selection) Contains(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of selected ids
func (s *Selection) Len() int {
	return len(s.ids)
}

// IDs returns the selected ids in sorted order
func (s *Selection) IDs() []string {
	ids := make([]string, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}

	slices.Sort(ids)

	return ids
}

// Pick returns the pets of the full set whose id is selected, in the set's order
func (s *Selection) Pick(pets []model.Pet) []model.Pet {
	var out []model.Pet

	for _, p := range pets {
		if s.Contains(p.ID) {
			out = append(out, p)
		}
	}

	return out
}
