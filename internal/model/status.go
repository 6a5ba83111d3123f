package model

import "sort"

// AilmentTurns is the countdown of a single weakening ailment.
type AilmentTurns struct {
	RemainingTurns int `json:"remainingTurns"`
}

// ControlAilment is the single active control ailment, if any.
type ControlAilment struct {
	Type           AilmentID `json:"type"`
	RemainingTurns int       `json:"remainingTurns"`
}

// StatusState is the persistent ailment record of a combatant.
// Its JSON form is the shape the save file stores.
//
// At most one control ailment is active; weakening ailments coexist with
// independent countdowns.
type StatusState struct {
	Weakening map[AilmentID]AilmentTurns `json:"weakening"`
	Control   *ControlAilment            `json:"control"`
}

// NewStatusState returns an empty state with an allocated weakening map.
func NewStatusState() StatusState {
	return StatusState{Weakening: make(map[AilmentID]AilmentTurns)}
}

// HasWeakening reports whether the weakening ailment id is active.
func (s *StatusState) HasWeakening(id AilmentID) bool {
	_, ok := s.Weakening[id]
	return ok
}

// HasControl reports whether the control ailment id is the active one.
func (s *StatusState) HasControl(id AilmentID) bool {
	return s.Control != nil && s.Control.Type == id
}

// Has reports whether id is active in either category.
func (s *StatusState) Has(id AilmentID) bool {
	return s.HasWeakening(id) || s.HasControl(id)
}

// Empty reports whether no ailment is active.
func (s *StatusState) Empty() bool {
	return len(s.Weakening) == 0 && s.Control == nil
}

// WeakeningIDs returns active weakening ailments in a stable order.
func (s *StatusState) WeakeningIDs() []AilmentID {
	ids := make([]AilmentID, 0, len(s.Weakening))
	for id := range s.Weakening {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Clone returns a deep copy.
func (s StatusState) Clone() StatusState {
	out := StatusState{Weakening: make(map[AilmentID]AilmentTurns, len(s.Weakening))}
	for id, t := range s.Weakening {
		out.Weakening[id] = t
	}
	if s.Control != nil {
		c := *s.Control
		out.Control = &c
	}
	return out
}
