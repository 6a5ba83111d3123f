package battle

import (
	"fmt"

	"github.com/udisondev/beastclash/internal/data"
	"github.com/udisondev/beastclash/internal/game/apply"
	"github.com/udisondev/beastclash/internal/game/rng"
	"github.com/udisondev/beastclash/internal/game/turn"
	"github.com/udisondev/beastclash/internal/model"
)

// plan is a validated intent ready to run.
type plan struct {
	intent Intent
	slot   int
	item   data.Item
	// forced marks a swap replacing an incapacitated combatant.
	forced bool
}

type rejection struct {
	reason  turn.RejectReason
	message string
}

func reject(reason turn.RejectReason, format string, args ...any) *rejection {
	return &rejection{reason: reason, message: fmt.Sprintf(format, args...)}
}

// plan validates in against the current state without touching it.
func (e *Engine) plan(in Intent) (plan, *rejection) {
	p := plan{intent: in, slot: -1}
	party := e.arena.Party(model.SidePlayer)
	active := party.ActiveMember()

	if e.pendingSwap && in.Kind != IntentSwap {
		return p, reject(turn.RejectSwitchRequired, "%s can no longer fight, choose a replacement", active.Name)
	}

	switch in.Kind {
	case IntentAttack:
		if _, ok := e.c.Catalog.Technique(in.Technique); !ok {
			msg := fmt.Sprintf("unknown technique %q", in.Technique)
			if s, ok := e.c.Catalog.SuggestTechnique(string(in.Technique)); ok {
				msg += fmt.Sprintf(", did you mean %q?", s)
			}
			return p, &rejection{reason: turn.RejectUnknownTechnique, message: msg}
		}
		p.slot = active.Slot(in.Technique)
		if p.slot < 0 {
			return p, reject(turn.RejectInvalidAction, "%s does not know %s", active.Name, in.Technique)
		}
		if active.Techniques[p.slot].Uses <= 0 {
			return p, reject(turn.RejectNoUses, "%s has no uses left", in.Technique)
		}

	case IntentItem:
		item, rej := e.bagItem(party, in.Item)
		if rej != nil {
			return p, rej
		}
		if why := e.inapplicable(item, active); why != "" {
			return p, reject(turn.RejectItemInapplicable, "%s: %s", item.Name, why)
		}
		p.item = item

	case IntentSwap:
		if in.Index < 0 || in.Index >= len(party.Members) || in.Index == party.Active {
			return p, reject(turn.RejectInvalidSwap, "no teammate at position %d to swap in", in.Index)
		}
		if m := party.Members[in.Index]; m.IsIncapacitated() {
			return p, reject(turn.RejectInvalidSwap, "%s can no longer fight", m.Name)
		}
		p.forced = e.pendingSwap

	case IntentFlee:
		if e.cfg.Kind != Wild {
			return p, reject(turn.RejectFleeForbidden, "there is no running from this battle")
		}

	case IntentCapture:
		if e.cfg.Kind != Wild {
			return p, reject(turn.RejectCaptureForbidden, "only wild creatures can be captured")
		}
		item, rej := e.bagItem(party, in.Item)
		if rej != nil {
			return p, rej
		}
		if item.Kind != data.ItemCapsule {
			return p, reject(turn.RejectItemInapplicable, "%s is not a capsule", item.Name)
		}
		p.item = item

	default:
		return p, reject(turn.RejectInvalidAction, "unknown action %q", in.Kind)
	}
	return p, nil
}

// bagItem resolves id against the catalog and the player's bag.
func (e *Engine) bagItem(party *model.Party, id model.ItemID) (data.Item, *rejection) {
	item, ok := e.c.Catalog.Item(id)
	if !ok {
		msg := fmt.Sprintf("unknown item %q", id)
		if s, ok := e.c.Catalog.SuggestItem(string(id)); ok {
			msg += fmt.Sprintf(", did you mean %q?", s)
		}
		return data.Item{}, &rejection{reason: turn.RejectItemUnavailable, message: msg}
	}
	if !party.Bag.Has(id) {
		return data.Item{}, reject(turn.RejectItemUnavailable, "no %s left", item.Name)
	}
	return item, nil
}

// inapplicable explains why item would do nothing to c, or returns "".
func (e *Engine) inapplicable(item data.Item, c *model.Combatant) string {
	switch item.Kind {
	case data.ItemHeal:
		if c.HealthFull() {
			return "HP is already full"
		}
		if e.c.Effects.HealBlocked(model.SidePlayer) {
			return "healing is blocked"
		}
	case data.ItemUses:
		for _, ts := range c.Techniques {
			if ts.Uses < ts.MaxUses {
				return ""
			}
		}
		return "technique uses are already full"
	case data.ItemCure:
		for _, id := range item.Cures {
			if c.Status.Has(id) {
				return ""
			}
		}
		return "nothing to cure"
	case data.ItemCapsule:
		return "capsules are thrown with a capture attempt"
	}
	return ""
}

func (e *Engine) dispatch(res *turn.Result, p plan) {
	switch p.intent.Kind {
	case IntentAttack:
		e.exchange(res, p.slot)
	case IntentItem:
		e.useItem(res, p.item)
		e.opponentTurn(res)
	case IntentSwap:
		e.swap(res, model.SidePlayer, p.intent.Index, p.forced)
		if p.forced {
			e.pendingSwap = false
			return
		}
		e.opponentTurn(res)
	case IntentFlee:
		if !e.flee(res) {
			e.opponentTurn(res)
		}
	case IntentCapture:
		if !e.capture(res, p.item) {
			e.opponentTurn(res)
		}
	}
}

// exchange runs both techniques in priority order. The second action is
// skipped once either active combatant is down.
func (e *Engine) exchange(res *turn.Result, playerSlot int) {
	var slots [2]int
	slots[model.SidePlayer] = playerSlot
	slots[model.SideOpponent] = e.chooseOpponent(res)

	first := e.order(slots[model.SidePlayer], slots[model.SideOpponent])
	e.actedFirst = first
	for _, side := range []model.Side{first, first.Other()} {
		if e.anyDown() {
			break
		}
		e.act(res, side, slots[side])
	}
}

// opponentTurn grants the opponent its action after a non-technique intent.
func (e *Engine) opponentTurn(res *turn.Result) {
	e.actedFirst = model.SidePlayer
	if e.anyDown() {
		return
	}
	e.act(res, model.SideOpponent, e.chooseOpponent(res))
}

func (e *Engine) anyDown() bool {
	return e.arena.Active(model.SidePlayer).IsIncapacitated() ||
		e.arena.Active(model.SideOpponent).IsIncapacitated()
}

// chooseOpponent asks the policy for a slot and logs the choice.
func (e *Engine) chooseOpponent(res *turn.Result) int {
	c := e.arena.Active(model.SideOpponent)
	target := e.arena.Active(model.SidePlayer)
	if c == nil || c.IsIncapacitated() || target == nil {
		return -1
	}
	slot := e.c.Opponent.ChooseSlot(c, target.Snapshot(), e.c.Source)
	if slot < 0 || slot >= len(c.Techniques) || c.Techniques[slot].Uses <= 0 {
		return -1
	}
	res.Append(turn.IntentSubmitted{
		Side:   model.SideOpponent,
		Intent: string(IntentAttack),
		Detail: string(c.Techniques[slot].TechniqueID),
	})
	return slot
}

// act runs one side's technique unless an ailment holds it back.
func (e *Engine) act(res *turn.Result, side model.Side, slot int) {
	c := e.arena.Active(side)
	if c == nil || c.IsIncapacitated() {
		return
	}
	if r := e.c.Ailments.CanAct(c, e.round); !r.CanAct {
		res.Append(turn.ActionBlocked{Side: side, Combatant: c.ID, StatusType: r.StatusType, Reason: r.Reason})
		return
	}
	if slot < 0 {
		res.Append(turn.ActionBlocked{Side: side, Combatant: c.ID, Reason: "no usable technique"})
		return
	}
	e.c.Executor.Execute(res, e.arena, e.round, side, slot)
}

// order decides who acts first: higher priority, then higher speed, then a
// coin flip.
func (e *Engine) order(playerSlot, opponentSlot int) model.Side {
	pp, op := e.priority(model.SidePlayer, playerSlot), e.priority(model.SideOpponent, opponentSlot)
	switch {
	case pp > op:
		return model.SidePlayer
	case op > pp:
		return model.SideOpponent
	}

	pv, ov := e.speed(model.SidePlayer), e.speed(model.SideOpponent)
	switch {
	case pv > ov:
		return model.SidePlayer
	case ov > pv:
		return model.SideOpponent
	}

	if rng.CoinFlip(e.c.Source) {
		return model.SidePlayer
	}
	return model.SideOpponent
}

// priority is the technique priority plus runtime bonuses of side.
func (e *Engine) priority(side model.Side, slot int) int {
	c := e.arena.Active(side)
	p := e.c.Effects.PriorityBonus(side, e.arena.Active(side.Other()).Elements)
	if slot >= 0 && slot < len(c.Techniques) {
		if t, ok := e.c.Catalog.Technique(c.Techniques[slot].TechniqueID); ok {
			p += t.Priority
		}
	}
	return p
}

// speed is the staged speed plus the progression bonus, if any.
func (e *Engine) speed(side model.Side) int {
	c := e.arena.Active(side)
	s := apply.EffectiveStat(c, model.StatSpeed)
	if e.c.Experience != nil {
		s += e.c.Experience.SpeedBonus(c)
	}
	return s
}

func (e *Engine) useItem(res *turn.Result, item data.Item) {
	side := model.SidePlayer
	party := e.arena.Party(side)
	c := party.ActiveMember()

	party.Bag.Take(item.ID)
	res.Append(turn.ItemConsumed{Side: side, Item: item.ID, Remaining: party.Bag[item.ID]})

	switch item.Kind {
	case data.ItemHeal:
		apply.Heal(res, side, c, item.Amount, "item:"+string(item.ID))
	case data.ItemUses:
		for i, ts := range c.Techniques {
			if ts.Uses >= ts.MaxUses {
				continue
			}
			n := item.Amount
			if n <= 0 {
				n = ts.MaxUses
			}
			apply.Uses(res, side, c, i, n)
		}
	case data.ItemCure:
		for _, id := range item.Cures {
			e.c.Ailments.Cure(res, side, c, id)
		}
	}
}

func (e *Engine) swap(res *turn.Result, side model.Side, to int, forced bool) {
	party := e.arena.Party(side)
	from := party.Active
	party.Active = to
	res.Append(turn.SwapCompleted{
		Side:      side,
		From:      from,
		To:        to,
		Combatant: party.Members[to].ID,
		Forced:    forced,
	})
}

// flee rolls an escape. Returns true when the battle ended.
func (e *Engine) flee(res *turn.Result) bool {
	runner := e.arena.Active(model.SidePlayer)
	chaser := e.arena.Active(model.SideOpponent)
	chance := FleeChance(e.cfg.Flee,
		apply.EffectiveStat(runner, model.StatSpeed),
		apply.EffectiveStat(chaser, model.StatSpeed),
		e.fleeFailures)

	ok := rng.Chance(e.c.Source, chance)
	res.Append(turn.FleeAttempted{
		Side:    model.SidePlayer,
		Attempt: e.fleeFailures + 1,
		Chance:  chance,
		Success: ok,
	})
	if ok {
		res.End(model.SideNone, turn.EndFled)
		return true
	}
	e.fleeFailures++
	return false
}

// capture throws item at the opponent. The capsule is spent either way.
// Returns true when the battle ended.
func (e *Engine) capture(res *turn.Result, item data.Item) bool {
	party := e.arena.Party(model.SidePlayer)
	target := e.arena.Active(model.SideOpponent)

	party.Bag.Take(item.ID)
	res.Append(turn.ItemConsumed{Side: model.SidePlayer, Item: item.ID, Remaining: party.Bag[item.ID]})

	chance := CaptureChance(e.cfg.Capture, item.CatchRate, target)
	ok := rng.Chance(e.c.Source, chance)
	res.Append(turn.CaptureAttempted{
		Side:    model.SidePlayer,
		Item:    item.ID,
		Target:  target.ID,
		Chance:  chance,
		Success: ok,
	})
	if ok {
		e.captured = target
		res.End(model.SidePlayer, turn.EndCaptured)
	}
	return ok
}

// endOfRound ticks ailments, then runtime effects, player side first.
func (e *Engine) endOfRound(res *turn.Result) {
	for _, side := range model.Sides {
		e.c.Ailments.EndOfRound(res, side, e.arena.Active(side))
	}
	for _, side := range model.Sides {
		e.c.Effects.EndOfRound(res, side, e.arena.Active(side), e.arena.Active(side.Other()))
	}
}

// settle deals with incapacitated combatants after the round. The opponent
// is checked first, so a double knockout goes to the player.
func (e *Engine) settle(res *turn.Result) {
	if res.Ended() {
		return
	}

	opp := e.arena.Party(model.SideOpponent)
	if opp.ActiveMember().IsIncapacitated() {
		if opp.AllIncapacitated() {
			res.End(model.SidePlayer, turn.EndAllIncapacitated)
			return
		}
		// The opponent sends out its next member on its own.
		e.swap(res, model.SideOpponent, opp.NextAvailable(), true)
	}

	player := e.arena.Party(model.SidePlayer)
	if player.ActiveMember().IsIncapacitated() {
		if player.AllIncapacitated() {
			res.End(model.SideOpponent, turn.EndAllIncapacitated)
			return
		}
		e.pendingSwap = true
		res.Append(turn.SwapRequired{Side: model.SidePlayer})
		res.RequireSwitch(model.SidePlayer)
	}
}
