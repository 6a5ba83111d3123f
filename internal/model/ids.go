package model

import "github.com/google/uuid"

// Catalog keys. They are plain strings so records stay directly serializable.
type (
	AilmentID   string
	TechniqueID string
	ItemID      string
	SpeciesID   string
	Element     string
)

// CombatantID is a battle-scoped identity assigned once when a combatant
// enters a battle. Per-caster bookkeeping (escalating damage counters) is
// keyed by it instead of by a field hidden on the combatant.
type CombatantID uuid.UUID

// NewCombatantID allocates a fresh identity.
func NewCombatantID() CombatantID {
	return CombatantID(uuid.New())
}

// IsZero reports whether the identity has not been assigned yet.
func (id CombatantID) IsZero() bool {
	return uuid.UUID(id) == uuid.Nil
}

func (id CombatantID) String() string {
	return uuid.UUID(id).String()
}

// MarshalText keeps the canonical UUID form in JSON payloads.
func (id CombatantID) MarshalText() ([]byte, error) {
	return uuid.UUID(id).MarshalText()
}

func (id *CombatantID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

// ParseCombatantID parses the canonical string form.
func ParseCombatantID(s string) (CombatantID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return CombatantID{}, err
	}
	return CombatantID(u), nil
}
