// Package selection tracks the set of record ids marked for a bulk action in
// one admin view. The state is a plain struct with transition methods; the
// Redis-backed view store persists it between requests via Snapshot/Restore.
package selection

import (
	"sort"
	"strconv"
	"strings"
)

type State struct {
	selected       map[int64]struct{}
	selectAll      bool
	currentPageIDs []int64
}

func NewState() *State {
	return &State{selected: make(map[int64]struct{})}
}

// NormalizeIDs coerces raw form values to deduplicated integer ids.
// Non-numeric entries are dropped, never rejected.
func NormalizeIDs(raw []string) []int64 {
	seen := make(map[int64]struct{}, len(raw))
	ids := make([]int64, 0, len(raw))
	for _, r := range raw {
		id, err := strconv.ParseInt(strings.TrimSpace(r), 10, 64)
		if err != nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

// Toggle flips membership of id and recomputes the select-all flag against
// the current page.
func (s *State) Toggle(id int64) {
	if _, ok := s.selected[id]; ok {
		delete(s.selected, id)
	} else {
		s.selected[id] = struct{}{}
	}
	s.recomputeSelectAll()
}

// SetCurrentPageIDs replaces the ids visible on the current page. The
// selection itself is untouched.
func (s *State) SetCurrentPageIDs(ids []int64) {
	s.currentPageIDs = append([]int64(nil), ids...)
	s.recomputeSelectAll()
}

// SetSelectAll adds or removes every id on the current page. Ids selected on
// other pages are preserved either way; select-all is page-scoped.
func (s *State) SetSelectAll(on bool) {
	for _, id := range s.currentPageIDs {
		if on {
			s.selected[id] = struct{}{}
		} else {
			delete(s.selected, id)
		}
	}
	s.selectAll = on && len(s.currentPageIDs) > 0
}

func (s *State) Clear() {
	s.selected = make(map[int64]struct{})
	s.selectAll = false
}

// Replace reseeds the selection, used to retain only failed ids after a
// partially failed bulk action.
func (s *State) Replace(ids []int64) {
	s.selected = make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		s.selected[id] = struct{}{}
	}
	s.recomputeSelectAll()
}

// SelectedIDs returns the deduplicated selection in ascending order.
func (s *State) SelectedIDs() []int64 {
	ids := make([]int64, 0, len(s.selected))
	for id := range s.selected {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (s *State) Count() int {
	return len(s.selected)
}

func (s *State) SelectAll() bool {
	return s.selectAll
}

func (s *State) IsSelected(id int64) bool {
	_, ok := s.selected[id]
	return ok
}

func (s *State) CurrentPageIDs() []int64 {
	return append([]int64(nil), s.currentPageIDs...)
}

func (s *State) recomputeSelectAll() {
	if len(s.currentPageIDs) == 0 {
		s.selectAll = false
		return
	}
	for _, id := range s.currentPageIDs {
		if _, ok := s.selected[id]; !ok {
			s.selectAll = false
			return
		}
	}
	s.selectAll = true
}

// Snapshot is the JSON form stored in the view session.
type Snapshot struct {
	Selected       []int64 `json:"selected"`
	SelectAll      bool    `json:"select_all"`
	CurrentPageIDs []int64 `json:"current_page_ids"`
}

func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Selected:       s.SelectedIDs(),
		SelectAll:      s.selectAll,
		CurrentPageIDs: s.CurrentPageIDs(),
	}
}

func Restore(snap Snapshot) *State {
	s := NewState()
	for _, id := range snap.Selected {
		s.selected[id] = struct{}{}
	}
	s.currentPageIDs = append([]int64(nil), snap.CurrentPageIDs...)
	s.recomputeSelectAll()
	return s
}
