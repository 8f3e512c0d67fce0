package listview

import "slices"

// Selection is the ordered set of selected invoice ids for one tab
type Selection struct {
	ids []int64
}

// Set replaces the whole selection. Duplicates are dropped, first occurrence wins.
func (s *Selection) Set(ids []int64) {
	out := make([]int64, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	s.ids = out
}

// Current returns a copy of the selected ids in selection order
func (s *Selection) Current() []int64 {
	return slices.Clone(s.ids)
}

// Len returns the number of selected ids
func (s *Selection) Len() int {
	return len(s.ids)
}

// Contains reports whether id is selected
func (s *Selection) Contains(id int64) bool {
	return slices.Contains(s.ids, id)
}

// Toggle adds or removes a single id
func (s *Selection) Toggle(id int64) {
	if s.Contains(id) {
		s.Set(slices.DeleteFunc(s.Current(), func(v int64) bool { return v == id }))
		return
	}
	s.Set(append(s.Current(), id))
}

// Clear drops every id
func (s *Selection) Clear() {
	s.ids = nil
}

// Prune drops ids that are not in valid and returns how many were removed
func (s *Selection) Prune(valid map[int64]struct{}) int {
	before := len(s.ids)
	s.ids = slices.DeleteFunc(s.ids, func(id int64) bool {
		_, ok := valid[id]
		return !ok
	})
	return before - len(s.ids)
}
