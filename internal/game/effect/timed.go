package effect

import "fmt"

// Slot is one of the fixed timed-effect positions every side has.
// Re-applying an effect to an occupied slot overwrites it.
type Slot uint8

const (
	SlotProtection Slot = iota
	SlotVoidShield
	SlotSteadyRegen
	SlotAilmentImmunity
	SlotFixedDOT
	SlotGuaranteedCrit
	SlotAilmentSeal
	SlotHealBlock
	SlotLifeDrainLink

	slotCount
)

var slotNames = [slotCount]string{
	"protection",
	"void_shield",
	"steady_regen",
	"ailment_immunity",
	"fixed_dot",
	"guaranteed_crit",
	"ailment_seal",
	"heal_block",
	"life_drain_link",
}

func (s Slot) String() string {
	if s >= slotCount {
		return fmt.Sprintf("slot(%d)", uint8(s))
	}
	return slotNames[s]
}

// ParseSlot resolves a slot by name.
func ParseSlot(name string) (Slot, bool) {
	for i, n := range slotNames {
		if n == name {
			return Slot(i), true
		}
	}
	return 0, false
}

// Timed is an active effect with a round countdown.
type Timed struct {
	Remaining int
	Value     int
}

// Tick consumes one round. Returns true while the effect stays active.
func (t *Timed) Tick() bool {
	t.Remaining--
	return t.Remaining > 0
}

// IsExpired reports whether the countdown reached zero.
func (t *Timed) IsExpired() bool {
	return t.Remaining <= 0
}
