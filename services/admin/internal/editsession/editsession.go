// Package editsession models a single in-flight inline edit: the persisted
// original is captured when the edit starts, the proposed value lives only in
// the session until a save succeeds, and cancelling restores the original
// without touching the store. One session is active per admin view; starting
// a new edit abandons the previous one unpersisted.
package editsession

import "github.com/google/uuid"

type Session struct {
	Token    string `json:"token"`
	Entity   string `json:"entity"`
	RecordID int64  `json:"record_id"`
	Field    string `json:"field"`
	Original string `json:"original"`
	Proposed string `json:"proposed"`
	Active   bool   `json:"active"`
}

// Start opens an edit on one field of one record, capturing the currently
// persisted value as the original.
func Start(entity string, recordID int64, field, current string) *Session {
	return &Session{
		Token:    uuid.New().String(),
		Entity:   entity,
		RecordID: recordID,
		Field:    field,
		Original: current,
		Proposed: current,
		Active:   true,
	}
}

func (s *Session) Propose(value string) {
	s.Proposed = value
}

// Cancel discards the proposed value and closes the session. The caller must
// not persist anything; the returned value is what the view shows again.
func (s *Session) Cancel() string {
	s.Proposed = s.Original
	s.Active = false
	return s.Original
}

// Complete records a successful save. The original is superseded by the
// persisted value and the session closes.
func (s *Session) Complete(persisted string) {
	s.Original = persisted
	s.Proposed = persisted
	s.Active = false
}

// DisplayValue is what the view renders: the proposed value while editing
// (including after a failed save, so the user can correct in place), the
// settled value otherwise.
func (s *Session) DisplayValue() string {
	if s.Active {
		return s.Proposed
	}
	return s.Original
}
