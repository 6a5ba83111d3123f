// Package effect holds the side-scoped combat effects that are not
// persistent ailments: timed slots, field conditions, composite buff
// bundles and per-round bookkeeping. Everything here is cleared when the
// battle ends.
package effect

import (
	"log/slog"
	"maps"
	"slices"

	"github.com/udisondev/beastclash/internal/game/apply"
	"github.com/udisondev/beastclash/internal/game/turn"
	"github.com/udisondev/beastclash/internal/model"
)

const compositeName = "composite"

// fieldPrefix distinguishes field conditions from slots in events.
const fieldPrefix = "field:"

type sideState struct {
	slots     [slotCount]*Timed
	fields    map[string]*Timed
	composite *Composite

	// per-round
	damageTaken int
}

// Runtime is the effect state of both sides of one battle.
type Runtime struct {
	sides    [2]sideState
	override int

	// dots counts fixed-DOT casts per caster for the whole battle.
	dots map[model.CombatantID]int
}

// NewRuntime creates an empty runtime. override <= 0 selects PriorityOverride.
func NewRuntime(override int) *Runtime {
	if override <= 0 {
		override = PriorityOverride
	}
	r := &Runtime{override: override}
	r.Reset()
	return r
}

func (r *Runtime) side(s model.Side) *sideState {
	if !s.Valid() {
		return nil
	}
	return &r.sides[s]
}

// Set puts an effect in slot for turns rounds, replacing what was there.
func (r *Runtime) Set(log *turn.Result, side model.Side, slot Slot, turns, value int) {
	st := r.side(side)
	if st == nil || slot >= slotCount || turns <= 0 {
		return
	}
	st.slots[slot] = &Timed{Remaining: turns, Value: value}
	log.Append(turn.EffectApplied{Side: side, Effect: slot.String(), Turns: turns, Value: value})

	slog.Debug("effect set", "side", side, "slot", slot, "turns", turns, "value", value)
}

// Active reports whether slot is occupied on side.
func (r *Runtime) Active(side model.Side, slot Slot) bool {
	st := r.side(side)
	return st != nil && slot < slotCount && st.slots[slot] != nil
}

// Get returns the effect in slot.
func (r *Runtime) Get(side model.Side, slot Slot) (Timed, bool) {
	if !r.Active(side, slot) {
		return Timed{}, false
	}
	return *r.sides[side].slots[slot], true
}

// Clear empties slot before its countdown ends.
func (r *Runtime) Clear(log *turn.Result, side model.Side, slot Slot) {
	if !r.Active(side, slot) {
		return
	}
	r.sides[side].slots[slot] = nil
	log.Append(turn.EffectExpired{Side: side, Effect: slot.String()})
}

// Protected reports whether side blocks opponent techniques this round.
func (r *Runtime) Protected(side model.Side) bool { return r.Active(side, SlotProtection) }

// AilmentImmune reports whether new ailments fail against side.
func (r *Runtime) AilmentImmune(side model.Side) bool { return r.Active(side, SlotAilmentImmunity) }

// Sealed reports whether side is prevented from inflicting ailments.
func (r *Runtime) Sealed(side model.Side) bool { return r.Active(side, SlotAilmentSeal) }

// HealBlocked reports whether side cannot recover HP.
func (r *Runtime) HealBlocked(side model.Side) bool { return r.Active(side, SlotHealBlock) }

// ConsumeCrit uses up a guaranteed critical hit of side.
func (r *Runtime) ConsumeCrit(log *turn.Result, side model.Side) bool {
	if !r.Active(side, SlotGuaranteedCrit) {
		return false
	}
	r.Clear(log, side, SlotGuaranteedCrit)
	return true
}

// SetField starts or overwrites the named field condition on side.
func (r *Runtime) SetField(log *turn.Result, side model.Side, name string, turns, value int) {
	st := r.side(side)
	if st == nil || name == "" || turns <= 0 {
		return
	}
	st.fields[name] = &Timed{Remaining: turns, Value: value}
	log.Append(turn.EffectApplied{Side: side, Effect: fieldPrefix + name, Turns: turns, Value: value})
}

// Field returns the named field condition of side.
func (r *Runtime) Field(side model.Side, name string) (Timed, bool) {
	st := r.side(side)
	if st == nil {
		return Timed{}, false
	}
	f, ok := st.fields[name]
	if !ok {
		return Timed{}, false
	}
	return *f, true
}

// ApplyComposite replaces the buff bundle of side.
func (r *Runtime) ApplyComposite(log *turn.Result, side model.Side, c Composite) {
	st := r.side(side)
	if st == nil || c.Turns <= 0 {
		return
	}
	c.TypePriority = slices.Clone(c.TypePriority)
	st.composite = &c
	log.Append(turn.EffectApplied{Side: side, Effect: compositeName, Turns: c.Turns})
}

// CompositeOf returns the active bundle of side.
func (r *Runtime) CompositeOf(side model.Side) (Composite, bool) {
	st := r.side(side)
	if st == nil || st.composite == nil {
		return Composite{}, false
	}
	return *st.composite, true
}

// PriorityBonus is the action-order bonus side gets against an opponent
// carrying opp elements.
func (r *Runtime) PriorityBonus(side model.Side, opp []model.Element) int {
	st := r.side(side)
	if st == nil || st.composite == nil {
		return 0
	}
	return st.composite.priority(r.override, opp)
}

// EscalateDOT records another fixed-DOT cast by caster and installs the
// grown damage on targetSide: base × min(casts, limit). The counter belongs
// to the caster, so it keeps growing whichever side is targeted.
func (r *Runtime) EscalateDOT(log *turn.Result, caster model.CombatantID, targetSide model.Side, base, limit, turns int) int {
	r.dots[caster]++
	value := base * min(r.dots[caster], max(limit, 1))
	r.Set(log, targetSide, SlotFixedDOT, turns, value)
	return value
}

// DOTCount returns how many fixed-DOT casts caster made this battle.
func (r *Runtime) DOTCount(caster model.CombatantID) int {
	return r.dots[caster]
}

// Incoming filters damage about to hit side. Damage immunity zeroes it and
// the void shield absorbs what it can. Returns the damage left to apply.
func (r *Runtime) Incoming(log *turn.Result, side model.Side, dmg int) int {
	st := r.side(side)
	if st == nil || dmg <= 0 {
		return max(dmg, 0)
	}
	if st.composite != nil && st.composite.DamageImmunity {
		return 0
	}
	if sh := st.slots[SlotVoidShield]; sh != nil {
		absorbed := min(sh.Value, dmg)
		sh.Value -= absorbed
		dmg -= absorbed
		log.Append(turn.EffectTicked{
			Side:           side,
			Effect:         SlotVoidShield.String(),
			RemainingTurns: sh.Remaining,
			Amount:         absorbed,
		})
		if sh.Value <= 0 {
			r.Clear(log, side, SlotVoidShield)
		}
	}
	return dmg
}

// Immune reports whether side currently ignores all damage.
func (r *Runtime) Immune(side model.Side) bool {
	st := r.side(side)
	return st != nil && st.composite != nil && st.composite.DamageImmunity
}

// Outgoing scales damage dealt by side with its bundle multiplier.
func (r *Runtime) Outgoing(side model.Side, dmg int) int {
	st := r.side(side)
	if st == nil || st.composite == nil || st.composite.DamageMultiplier <= 0 {
		return dmg
	}
	return int(float64(dmg) * st.composite.DamageMultiplier)
}

// RecordDamage adds to the damage side took this round.
func (r *Runtime) RecordDamage(side model.Side, amount int) {
	if st := r.side(side); st != nil && amount > 0 {
		st.damageTaken += amount
	}
}

// DamageTaken returns the damage side took this round.
func (r *Runtime) DamageTaken(side model.Side) int {
	if st := r.side(side); st != nil {
		return st.damageTaken
	}
	return 0
}

// EndOfRound runs the periodic effects of side against its active combatant
// c, then counts every effect of side down once. opponent receives what a
// life-drain link on side drains; it may be nil.
func (r *Runtime) EndOfRound(log *turn.Result, side model.Side, c, opponent *model.Combatant) {
	st := r.side(side)
	if st == nil {
		return
	}
	amounts := [slotCount]int{}

	if c != nil && !c.IsIncapacitated() {
		healBlocked := r.HealBlocked(side)
		if t := st.slots[SlotSteadyRegen]; t != nil && !healBlocked {
			amounts[SlotSteadyRegen] = apply.Heal(log, side, c, apply.Percent(c.MaxHP, t.Value), SlotSteadyRegen.String())
		}
		if st.composite != nil && st.composite.RegenPercent > 0 && !healBlocked {
			apply.Heal(log, side, c, apply.Percent(c.MaxHP, st.composite.RegenPercent), compositeName)
		}
		if t := st.slots[SlotFixedDOT]; t != nil {
			amounts[SlotFixedDOT] = apply.Damage(log, side, c, t.Value, SlotFixedDOT.String())
			r.RecordDamage(side, amounts[SlotFixedDOT])
		}
		if t := st.slots[SlotLifeDrainLink]; t != nil && !c.IsIncapacitated() {
			drained := apply.Damage(log, side, c, apply.Percent(c.MaxHP, t.Value), SlotLifeDrainLink.String())
			amounts[SlotLifeDrainLink] = drained
			r.RecordDamage(side, drained)
			if opponent != nil && !r.HealBlocked(side.Other()) {
				apply.Heal(log, side.Other(), opponent, drained, SlotLifeDrainLink.String())
			}
		}
	}

	for i := range st.slots {
		t := st.slots[i]
		if t == nil {
			continue
		}
		slot := Slot(i)
		if !t.Tick() {
			st.slots[i] = nil
			log.Append(turn.EffectExpired{Side: side, Effect: slot.String()})
			continue
		}
		log.Append(turn.EffectTicked{Side: side, Effect: slot.String(), RemainingTurns: t.Remaining, Amount: amounts[i]})
	}

	for _, name := range slices.Sorted(maps.Keys(st.fields)) {
		f := st.fields[name]
		if !f.Tick() {
			delete(st.fields, name)
			log.Append(turn.EffectExpired{Side: side, Effect: fieldPrefix + name})
			continue
		}
		log.Append(turn.EffectTicked{Side: side, Effect: fieldPrefix + name, RemainingTurns: f.Remaining})
	}

	if cp := st.composite; cp != nil {
		cp.Turns--
		if cp.Turns <= 0 {
			st.composite = nil
			log.Append(turn.EffectExpired{Side: side, Effect: compositeName})
		} else {
			log.Append(turn.EffectTicked{Side: side, Effect: compositeName, RemainingTurns: cp.Turns})
		}
	}
}

// BeginRound clears the per-round counters of both sides.
func (r *Runtime) BeginRound() {
	for i := range r.sides {
		r.sides[i].damageTaken = 0
	}
}

// Reset drops every effect and counter. Called when the battle ends.
func (r *Runtime) Reset() {
	for i := range r.sides {
		r.sides[i] = sideState{fields: make(map[string]*Timed)}
	}
	r.dots = make(map[model.CombatantID]int)
}

// Summary lists active effect names of side with their remaining rounds.
func (r *Runtime) Summary(side model.Side) map[string]int {
	st := r.side(side)
	if st == nil {
		return nil
	}
	out := make(map[string]int)
	for i, t := range st.slots {
		if t != nil {
			out[Slot(i).String()] = t.Remaining
		}
	}
	for name, f := range st.fields {
		out[fieldPrefix+name] = f.Remaining
	}
	if st.composite != nil {
		out[compositeName] = st.composite.Turns
	}
	return out
}
