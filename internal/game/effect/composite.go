package effect

import (
	"slices"

	"github.com/udisondev/beastclash/internal/data"
	"github.com/udisondev/beastclash/internal/model"
)

// PriorityOverride is the bonus of guaranteed priority. It dominates any
// technique priority and any flat or typed bonus.
const PriorityOverride = 1000

// TypeBonus adds Amount to action order when the opponent carries one of Types.
type TypeBonus struct {
	Types  []model.Element
	Amount int
}

// Composite is a bundle of buffs granted by one technique. Applying a new
// bundle replaces the previous one.
type Composite struct {
	Turns              int
	DamageImmunity     bool
	RegenPercent       int
	GuaranteedPriority bool
	DamageMultiplier   float64
	TypePriority       []TypeBonus
	FlatPriority       int
}

// CompositeFrom converts a catalog bundle. Untyped priority bonuses sum
// into FlatPriority; typed ones are kept per type list.
func CompositeFrom(spec data.CompositeSpec) Composite {
	c := Composite{
		Turns:              spec.Turns,
		DamageImmunity:     spec.DamageImmunity,
		RegenPercent:       spec.RegenPercent,
		GuaranteedPriority: spec.GuaranteedPriority,
		DamageMultiplier:   spec.DamageMultiplier,
	}
	for _, p := range spec.Priority {
		if len(p.Types) == 0 {
			c.FlatPriority += p.Amount
			continue
		}
		c.TypePriority = append(c.TypePriority, TypeBonus{
			Types:  slices.Clone(p.Types),
			Amount: p.Amount,
		})
	}
	return c
}

// priority sums the bundle's bonuses against an opponent with elements opp.
// All parts are additive.
func (c *Composite) priority(override int, opp []model.Element) int {
	bonus := c.FlatPriority
	if c.GuaranteedPriority {
		bonus += override
	}
	for _, tb := range c.TypePriority {
		if matchesAny(tb.Types, opp) {
			bonus += tb.Amount
		}
	}
	return bonus
}

func matchesAny(types, elements []model.Element) bool {
	for _, t := range types {
		if slices.Contains(elements, t) {
			return true
		}
	}
	return false
}
