package model

// MaxTechniques is the number of technique slots a combatant carries.
const MaxTechniques = 4

// TechniqueSlot is a learned technique with its remaining uses.
type TechniqueSlot struct {
	TechniqueID TechniqueID `json:"technique_id" yaml:"technique_id"`
	Uses        int         `json:"uses" yaml:"uses"`
	MaxUses     int         `json:"max_uses" yaml:"max_uses"`
}

// Combatant is one creature taking part in a battle.
//
// The surrounding session owns the record; during round execution the
// engine mutates HP, use counters, status and stages in place.
type Combatant struct {
	ID         CombatantID     `json:"id"`
	Name       string          `json:"name"`
	SpeciesID  SpeciesID       `json:"species_id"`
	Elements   []Element       `json:"elements"`
	Level      int             `json:"level"`
	Experience int64           `json:"experience"`
	MaxHP      int             `json:"max_hp"`
	HP         int             `json:"hp"`
	Base       Stats           `json:"base"`
	Techniques []TechniqueSlot `json:"techniques"`
	Status     StatusState     `json:"status"`

	// Battle-scoped state, never persisted.
	Stages       StatStages `json:"-"`
	BlockedRound int        `json:"-"`
	BlockedBy    AilmentID  `json:"-"`
}

// NewCombatant creates a combatant at full health with an empty status.
func NewCombatant(name string, species SpeciesID, level int, base Stats, elements ...Element) *Combatant {
	return &Combatant{
		ID:        NewCombatantID(),
		Name:      name,
		SpeciesID: species,
		Elements:  elements,
		Level:     level,
		MaxHP:     base.HP,
		HP:        base.HP,
		Base:      base,
		Status:    NewStatusState(),
	}
}

// IsIncapacitated reports whether the combatant can no longer fight.
func (c *Combatant) IsIncapacitated() bool {
	return c.HP <= 0
}

// HealthFull reports whether HP is at its cap.
func (c *Combatant) HealthFull() bool {
	return c.HP >= c.MaxHP
}

// SetHP stores hp clamped to [0, MaxHP].
func (c *Combatant) SetHP(hp int) {
	c.HP = min(max(hp, 0), c.MaxHP)
}

// HasElement reports whether the combatant carries element e.
func (c *Combatant) HasElement(e Element) bool {
	for _, el := range c.Elements {
		if el == e {
			return true
		}
	}
	return false
}

// Learn appends a technique slot at full uses. Returns false when all
// slots are taken or the technique is already known.
func (c *Combatant) Learn(id TechniqueID, maxUses int) bool {
	if len(c.Techniques) >= MaxTechniques {
		return false
	}
	if c.Slot(id) >= 0 {
		return false
	}
	c.Techniques = append(c.Techniques, TechniqueSlot{TechniqueID: id, Uses: maxUses, MaxUses: maxUses})
	return true
}

// Slot returns the slot index of technique id, or -1.
func (c *Combatant) Slot(id TechniqueID) int {
	for i := range c.Techniques {
		if c.Techniques[i].TechniqueID == id {
			return i
		}
	}
	return -1
}

// UsableSlots returns indexes of techniques with remaining uses.
func (c *Combatant) UsableSlots() []int {
	out := make([]int, 0, len(c.Techniques))
	for i := range c.Techniques {
		if c.Techniques[i].Uses > 0 {
			out = append(out, i)
		}
	}
	return out
}

// Snapshot is an immutable copy of a combatant handed out between rounds.
type Snapshot struct {
	ID         CombatantID
	Name       string
	SpeciesID  SpeciesID
	Elements   []Element
	Level      int
	MaxHP      int
	HP         int
	Base       Stats
	Techniques []TechniqueSlot
	Status     StatusState
	Stages     map[Stat]int
}

// Snapshot copies the combatant so callers cannot mutate engine state.
func (c *Combatant) Snapshot() Snapshot {
	return Snapshot{
		ID:         c.ID,
		Name:       c.Name,
		SpeciesID:  c.SpeciesID,
		Elements:   append([]Element(nil), c.Elements...),
		Level:      c.Level,
		MaxHP:      c.MaxHP,
		HP:         c.HP,
		Base:       c.Base,
		Techniques: append([]TechniqueSlot(nil), c.Techniques...),
		Status:     c.Status.Clone(),
		Stages:     c.Stages.Values(),
	}
}
