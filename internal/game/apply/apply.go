// Package apply holds the stateless mutation helpers shared by the round
// components. Every helper that changes a combatant appends the matching
// event to the round log, so a mutation never happens without its record.
package apply

import (
	"github.com/udisondev/beastclash/internal/game/turn"
	"github.com/udisondev/beastclash/internal/model"
)

// ClampStage bounds v to the stage range.
func ClampStage(v int) int {
	return min(max(v, model.MinStage), model.MaxStage)
}

// StageMultiplier returns the stat multiplier for a stage:
// (2+s)/2 for positive stages, 2/(2-s) for negative ones.
func StageMultiplier(stage int) float64 {
	s := ClampStage(stage)
	if s >= 0 {
		return float64(2+s) / 2
	}
	return 2 / float64(2-s)
}

// AccuracyMultiplier uses the gentler thirds scale of the accuracy stage.
func AccuracyMultiplier(stage int) float64 {
	s := ClampStage(stage)
	if s >= 0 {
		return float64(3+s) / 3
	}
	return 3 / float64(3-s)
}

// EffectiveStat returns base scaled by the combatant's stage of stat.
func EffectiveStat(c *model.Combatant, stat model.Stat) int {
	var base int
	switch stat {
	case model.StatAttack:
		base = c.Base.Attack
	case model.StatDefense:
		base = c.Base.Defense
	case model.StatSpAttack:
		base = c.Base.SpAttack
	case model.StatSpDefense:
		base = c.Base.SpDefense
	case model.StatSpeed:
		base = c.Base.Speed
	default:
		return 0
	}
	v := int(float64(base) * StageMultiplier(c.Stages.Get(stat)))
	return max(v, 1)
}

// Damage removes up to amount HP from c. It emits HealthChanged when HP
// moved and Incapacitated when c reaches zero. Returns the HP removed.
func Damage(log *turn.Result, side model.Side, c *model.Combatant, amount int, source string) int {
	if amount <= 0 || c.HP <= 0 {
		return 0
	}
	before := c.HP
	c.SetHP(before - amount)
	applied := before - c.HP
	log.Append(turn.HealthChanged{
		Side:      side,
		Combatant: c.ID,
		Before:    before,
		After:     c.HP,
		Delta:     -applied,
		Source:    source,
	})
	if c.IsIncapacitated() {
		log.Append(turn.Incapacitated{Side: side, Combatant: c.ID})
	}
	return applied
}

// Heal restores up to amount HP, capped at MaxHP. Nothing is emitted when
// no HP was restored. Returns the HP restored.
func Heal(log *turn.Result, side model.Side, c *model.Combatant, amount int, source string) int {
	if amount <= 0 || c.IsIncapacitated() || c.HealthFull() {
		return 0
	}
	before := c.HP
	c.SetHP(before + amount)
	restored := c.HP - before
	if restored == 0 {
		return 0
	}
	log.Append(turn.HealthChanged{
		Side:      side,
		Combatant: c.ID,
		Before:    before,
		After:     c.HP,
		Delta:     restored,
		Source:    source,
	})
	return restored
}

// Stage moves the stage of stat by delta. The event is emitted only when
// the clamped value differs from before. Returns the applied delta.
func Stage(log *turn.Result, side model.Side, c *model.Combatant, stat model.Stat, delta int) int {
	before := c.Stages.Get(stat)
	applied := c.Stages.Change(stat, delta)
	if applied == 0 {
		return 0
	}
	log.Append(turn.StageChanged{
		Side:      side,
		Combatant: c.ID,
		Stat:      stat,
		Before:    before,
		After:     before + applied,
	})
	return applied
}

// Uses moves the use counter of technique slot by delta, bounded by
// [0, MaxUses]. Returns the applied delta.
func Uses(log *turn.Result, side model.Side, c *model.Combatant, slot, delta int) int {
	if slot < 0 || slot >= len(c.Techniques) || delta == 0 {
		return 0
	}
	t := &c.Techniques[slot]
	before := t.Uses
	t.Uses = min(max(before+delta, 0), t.MaxUses)
	if t.Uses == before {
		return 0
	}
	log.Append(turn.UsesChanged{
		Side:      side,
		Combatant: c.ID,
		Technique: t.TechniqueID,
		Before:    before,
		After:     t.Uses,
	})
	return t.Uses - before
}

// Percent returns pct percent of total, at least 1 when both are positive.
func Percent(total, pct int) int {
	if total <= 0 || pct <= 0 {
		return 0
	}
	return max(total*pct/100, 1)
}
