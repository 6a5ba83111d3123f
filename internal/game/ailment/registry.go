// Package ailment tracks persistent afflictions stored in a combatant's
// status state.
//
// Weakening ailments coexist, each with its own countdown, and deal damage
// at round end. Control ailments are exclusive: a new one always replaces
// the old, and while one is active the combatant cannot act.
package ailment

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/udisondev/beastclash/internal/data"
	"github.com/udisondev/beastclash/internal/game/apply"
	"github.com/udisondev/beastclash/internal/game/rng"
	"github.com/udisondev/beastclash/internal/game/turn"
	"github.com/udisondev/beastclash/internal/model"
)

// ErrUnknownAilment is returned when an id has no definition.
var ErrUnknownAilment = errors.New("unknown ailment")

// Removal reasons carried by AilmentRemoved events.
const (
	ReasonExpired  = "expired"
	ReasonReplaced = "replaced"
	ReasonCured    = "cured"
	ReasonWokeUp   = "woke_up"
)

// Refusal is the structured answer to "can this combatant act now".
type Refusal struct {
	CanAct     bool
	StatusType model.AilmentID
	Reason     string
}

// Registry applies and ticks ailments. It holds definitions only; all
// state lives in model.StatusState.
type Registry struct {
	defs map[model.AilmentID]data.AilmentDef
	src  rng.Source
}

// NewRegistry builds a registry over defs. src rolls durations.
func NewRegistry(defs []data.AilmentDef, src rng.Source) *Registry {
	r := &Registry{
		defs: make(map[model.AilmentID]data.AilmentDef, len(defs)),
		src:  src,
	}
	for _, d := range defs {
		r.defs[d.ID] = d
	}
	return r
}

// Def returns the definition of id.
func (r *Registry) Def(id model.AilmentID) (data.AilmentDef, bool) {
	d, ok := r.defs[id]
	return d, ok
}

// Apply afflicts c with id. Duration is uniform in the definition's
// [MinTurns, MaxTurns] unless turnsOverride > 0. A control ailment replaces
// whatever control ailment was active; a weakening ailment only touches its
// own entry. Returns false when c is already incapacitated.
func (r *Registry) Apply(log *turn.Result, side model.Side, c *model.Combatant, id model.AilmentID, turnsOverride int) (bool, error) {
	def, ok := r.defs[id]
	if !ok {
		return false, fmt.Errorf("applying %q: %w", id, ErrUnknownAilment)
	}
	if c.IsIncapacitated() {
		return false, nil
	}

	turns := turnsOverride
	if turns <= 0 {
		turns = rng.Between(r.src, def.MinTurns, def.MaxTurns)
	}
	turns = max(turns, 1)

	ev := turn.AilmentApplied{
		Side:      side,
		Combatant: c.ID,
		Ailment:   id,
		Category:  string(def.Category),
		Turns:     turns,
	}

	switch def.Category {
	case data.Control:
		if prev := c.Status.Control; prev != nil {
			ev.Replaced = prev.Type
			log.Append(turn.AilmentRemoved{Side: side, Combatant: c.ID, Ailment: prev.Type, Reason: ReasonReplaced})
		}
		c.Status.Control = &model.ControlAilment{Type: id, RemainingTurns: turns}
	default:
		if c.Status.Weakening == nil {
			c.Status.Weakening = make(map[model.AilmentID]model.AilmentTurns)
		}
		c.Status.Weakening[id] = model.AilmentTurns{RemainingTurns: turns}
	}
	log.Append(ev)

	slog.Debug("ailment applied",
		"combatant", c.ID,
		"ailment", id,
		"category", def.Category,
		"turns", turns)
	return true, nil
}

// Remove clears id from c with reason. Returns false when id was not active.
func (r *Registry) Remove(log *turn.Result, side model.Side, c *model.Combatant, id model.AilmentID, reason string) bool {
	switch {
	case c.Status.HasControl(id):
		c.Status.Control = nil
	case c.Status.HasWeakening(id):
		delete(c.Status.Weakening, id)
	default:
		return false
	}
	log.Append(turn.AilmentRemoved{Side: side, Combatant: c.ID, Ailment: id, Reason: reason})
	return true
}

// Cure removes id as an item or technique effect would.
func (r *Registry) Cure(log *turn.Result, side model.Side, c *model.Combatant, id model.AilmentID) bool {
	return r.Remove(log, side, c, id, ReasonCured)
}

// CanAct reports whether c may act in round.
func (r *Registry) CanAct(c *model.Combatant, round int) Refusal {
	if c.BlockedRound != 0 && c.BlockedRound == round {
		return Refusal{StatusType: c.BlockedBy, Reason: "startled awake"}
	}
	if ctl := c.Status.Control; ctl != nil {
		name := string(ctl.Type)
		if def, ok := r.defs[ctl.Type]; ok {
			name = def.Name
		}
		return Refusal{
			StatusType: ctl.Type,
			Reason:     strings.ToLower(name) + " prevents acting",
		}
	}
	return Refusal{CanAct: true}
}

// OnHit wakes c from a control ailment that breaks on hit. The combatant
// stays blocked by that ailment for round only. Returns true when something
// was cleared.
func (r *Registry) OnHit(log *turn.Result, side model.Side, c *model.Combatant, round int) bool {
	ctl := c.Status.Control
	if ctl == nil {
		return false
	}
	def, ok := r.defs[ctl.Type]
	if !ok || !def.BreaksOnHit {
		return false
	}
	woke := ctl.Type
	r.Remove(log, side, c, woke, ReasonWokeUp)
	c.BlockedRound = round
	c.BlockedBy = woke
	return true
}

// EndOfRound ticks every ailment of c once. Weakening ailments deal
// floor(MaxHP/8) damage (at least 1) in id order, then count down; control
// ailments only count down. Entries reaching zero are removed, the rest
// report their new count.
func (r *Registry) EndOfRound(log *turn.Result, side model.Side, c *model.Combatant) {
	for _, id := range c.Status.WeakeningIDs() {
		if c.IsIncapacitated() {
			break
		}
		left := c.Status.Weakening[id].RemainingTurns - 1

		// HealthChanged first, then the tick with the HP actually removed.
		dealt := apply.Damage(log, side, c, TickDamage(c.MaxHP), "ailment:"+string(id))
		log.Append(turn.AilmentDamage{
			Side:           side,
			Combatant:      c.ID,
			Ailment:        id,
			Amount:         dealt,
			RemainingTurns: max(left, 0),
		})

		if left <= 0 {
			r.Remove(log, side, c, id, ReasonExpired)
		} else {
			c.Status.Weakening[id] = model.AilmentTurns{RemainingTurns: left}
		}
	}

	if ctl := c.Status.Control; ctl != nil && !c.IsIncapacitated() {
		ctl.RemainingTurns--
		if ctl.RemainingTurns <= 0 {
			r.Remove(log, side, c, ctl.Type, ReasonExpired)
		} else {
			log.Append(turn.AilmentTicked{
				Side:           side,
				Combatant:      c.ID,
				Ailment:        ctl.Type,
				RemainingTurns: ctl.RemainingTurns,
			})
		}
	}
}

// TickDamage is the end-of-round damage of one weakening ailment.
func TickDamage(maxHP int) int {
	if maxHP <= 0 {
		return 0
	}
	return max(maxHP/8, 1)
}

// DisplayProvider resolves presentation icons for ailments.
type DisplayProvider interface {
	AilmentIcon(def data.AilmentDef) string
}

// Shown is one displayable ailment.
type Shown struct {
	ID             model.AilmentID
	Name           string
	Category       data.AilmentCategory
	RemainingTurns int
	Icon           string
}

// Display lists the active ailments of c, weakening first in id order.
// Without a provider icons are left empty.
func (r *Registry) Display(c *model.Combatant, provider DisplayProvider) []Shown {
	var out []Shown
	add := func(id model.AilmentID, left int) {
		def, ok := r.defs[id]
		if !ok {
			def = data.AilmentDef{ID: id, Name: string(id)}
		}
		s := Shown{ID: id, Name: def.Name, Category: def.Category, RemainingTurns: left}
		if provider != nil {
			s.Icon = provider.AilmentIcon(def)
		}
		out = append(out, s)
	}
	for _, id := range c.Status.WeakeningIDs() {
		add(id, c.Status.Weakening[id].RemainingTurns)
	}
	if ctl := c.Status.Control; ctl != nil {
		add(ctl.Type, ctl.RemainingTurns)
	}
	return out
}
