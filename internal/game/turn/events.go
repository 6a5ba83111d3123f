package turn

import "github.com/udisondev/beastclash/internal/model"

// Event is one entry of the round log. Consumers switch on the concrete
// type; Kind exists for wire encoding and quick filtering.
type Event interface {
	Kind() Kind
}

// RoundStarted opens every executed round.
type RoundStarted struct {
	Round int `json:"round"`
}

// IntentSubmitted records the intent a side acts on this round.
type IntentSubmitted struct {
	Side   model.Side `json:"side"`
	Intent string     `json:"intent"`
	Detail string     `json:"detail,omitempty"`
}

// TechniqueCast is emitted when a combatant starts using a technique.
type TechniqueCast struct {
	Side      model.Side        `json:"side"`
	Combatant model.CombatantID `json:"combatant"`
	Technique model.TechniqueID `json:"technique"`
}

// TechniqueHit reports a connecting technique.
type TechniqueHit struct {
	Side          model.Side        `json:"side"`
	Technique     model.TechniqueID `json:"technique"`
	Critical      bool              `json:"critical,omitempty"`
	Effectiveness float64           `json:"effectiveness"`
}

// TechniqueMissed reports a technique that did not connect.
type TechniqueMissed struct {
	Side      model.Side        `json:"side"`
	Technique model.TechniqueID `json:"technique"`
	Reason    string            `json:"reason"`
}

// HealthChanged reports any HP movement. Delta is negative for damage.
type HealthChanged struct {
	Side      model.Side        `json:"side"`
	Combatant model.CombatantID `json:"combatant"`
	Before    int               `json:"before"`
	After     int               `json:"after"`
	Delta     int               `json:"delta"`
	Source    string            `json:"source"`
}

// UsesChanged reports a technique use-counter movement.
type UsesChanged struct {
	Side      model.Side        `json:"side"`
	Combatant model.CombatantID `json:"combatant"`
	Technique model.TechniqueID `json:"technique"`
	Before    int               `json:"before"`
	After     int               `json:"after"`
}

// ItemConsumed reports an item leaving the bag.
type ItemConsumed struct {
	Side      model.Side   `json:"side"`
	Item      model.ItemID `json:"item"`
	Remaining int          `json:"remaining"`
}

// CaptureAttempted reports the roll of a capsule.
type CaptureAttempted struct {
	Side    model.Side        `json:"side"`
	Item    model.ItemID      `json:"item"`
	Target  model.CombatantID `json:"target"`
	Chance  int               `json:"chance"`
	Success bool              `json:"success"`
}

// FleeAttempted reports the roll of an escape attempt.
type FleeAttempted struct {
	Side    model.Side `json:"side"`
	Attempt int        `json:"attempt"`
	Chance  int        `json:"chance"`
	Success bool       `json:"success"`
}

// SwapCompleted reports a change of active combatant.
type SwapCompleted struct {
	Side      model.Side        `json:"side"`
	From      int               `json:"from"`
	To        int               `json:"to"`
	Combatant model.CombatantID `json:"combatant"`
	Forced    bool              `json:"forced,omitempty"`
}

// BattleEnded closes the log of the last round of a battle.
type BattleEnded struct {
	Winner model.Side `json:"winner"`
	Reason EndReason  `json:"reason"`
}

// StageChanged reports a stat-stage movement that actually changed the value.
type StageChanged struct {
	Side      model.Side        `json:"side"`
	Combatant model.CombatantID `json:"combatant"`
	Stat      model.Stat        `json:"stat"`
	Before    int               `json:"before"`
	After     int               `json:"after"`
}

// AilmentApplied reports a new persistent ailment. Replaced names the
// control ailment it displaced, if any.
type AilmentApplied struct {
	Side      model.Side        `json:"side"`
	Combatant model.CombatantID `json:"combatant"`
	Ailment   model.AilmentID   `json:"ailment"`
	Category  string            `json:"category"`
	Turns     int               `json:"turns"`
	Replaced  model.AilmentID   `json:"replaced,omitempty"`
}

// AilmentRemoved reports an ailment leaving a combatant.
type AilmentRemoved struct {
	Side      model.Side        `json:"side"`
	Combatant model.CombatantID `json:"combatant"`
	Ailment   model.AilmentID   `json:"ailment"`
	Reason    string            `json:"reason"`
}

// AilmentDamage reports the end-of-round damage of a weakening ailment.
type AilmentDamage struct {
	Side           model.Side        `json:"side"`
	Combatant      model.CombatantID `json:"combatant"`
	Ailment        model.AilmentID   `json:"ailment"`
	Amount         int               `json:"amount"`
	RemainingTurns int               `json:"remaining_turns"`
}

// AilmentTicked reports a control ailment counting down without expiring.
type AilmentTicked struct {
	Side           model.Side        `json:"side"`
	Combatant      model.CombatantID `json:"combatant"`
	Ailment        model.AilmentID   `json:"ailment"`
	RemainingTurns int               `json:"remaining_turns"`
}

// ActionBlocked reports a side that could not act this round.
type ActionBlocked struct {
	Side       model.Side        `json:"side"`
	Combatant  model.CombatantID `json:"combatant"`
	StatusType model.AilmentID   `json:"status_type,omitempty"`
	Reason     string            `json:"reason"`
}

// EffectApplied reports a timed runtime effect being set.
type EffectApplied struct {
	Side   model.Side `json:"side"`
	Effect string     `json:"effect"`
	Turns  int        `json:"turns"`
	Value  int        `json:"value,omitempty"`
}

// EffectTicked reports the per-round step of a runtime effect.
type EffectTicked struct {
	Side           model.Side `json:"side"`
	Effect         string     `json:"effect"`
	RemainingTurns int        `json:"remaining_turns"`
	Amount         int        `json:"amount,omitempty"`
}

// EffectExpired reports a runtime effect leaving its slot.
type EffectExpired struct {
	Side   model.Side `json:"side"`
	Effect string     `json:"effect"`
}

// Incapacitated reports a combatant reaching zero HP.
type Incapacitated struct {
	Side      model.Side        `json:"side"`
	Combatant model.CombatantID `json:"combatant"`
}

// SwapRequired tells the consumer the side must pick a replacement before
// another round can run.
type SwapRequired struct {
	Side model.Side `json:"side"`
}

func (RoundStarted) Kind() Kind     { return KindRoundStarted }
func (IntentSubmitted) Kind() Kind  { return KindIntentSubmitted }
func (TechniqueCast) Kind() Kind    { return KindTechniqueCast }
func (TechniqueHit) Kind() Kind     { return KindTechniqueHit }
func (TechniqueMissed) Kind() Kind  { return KindTechniqueMissed }
func (HealthChanged) Kind() Kind    { return KindHealthChanged }
func (UsesChanged) Kind() Kind      { return KindUsesChanged }
func (ItemConsumed) Kind() Kind     { return KindItemConsumed }
func (CaptureAttempted) Kind() Kind { return KindCaptureAttempted }
func (FleeAttempted) Kind() Kind    { return KindFleeAttempted }
func (SwapCompleted) Kind() Kind    { return KindSwapCompleted }
func (BattleEnded) Kind() Kind      { return KindBattleEnded }
func (StageChanged) Kind() Kind     { return KindStageChanged }
func (AilmentApplied) Kind() Kind   { return KindAilmentApplied }
func (AilmentRemoved) Kind() Kind   { return KindAilmentRemoved }
func (AilmentDamage) Kind() Kind    { return KindAilmentDamage }
func (ActionBlocked) Kind() Kind    { return KindActionBlocked }
func (EffectApplied) Kind() Kind    { return KindEffectApplied }
func (EffectTicked) Kind() Kind     { return KindEffectTicked }
func (EffectExpired) Kind() Kind    { return KindEffectExpired }
func (Incapacitated) Kind() Kind    { return KindIncapacitated }
func (SwapRequired) Kind() Kind     { return KindSwapRequired }
func (AilmentTicked) Kind() Kind    { return KindAilmentTicked }

// newEvent returns a zero value of the struct registered for k.
func newEvent(k Kind) (Event, bool) {
	switch k {
	case KindRoundStarted:
		return &RoundStarted{}, true
	case KindIntentSubmitted:
		return &IntentSubmitted{}, true
	case KindTechniqueCast:
		return &TechniqueCast{}, true
	case KindTechniqueHit:
		return &TechniqueHit{}, true
	case KindTechniqueMissed:
		return &TechniqueMissed{}, true
	case KindHealthChanged:
		return &HealthChanged{}, true
	case KindUsesChanged:
		return &UsesChanged{}, true
	case KindItemConsumed:
		return &ItemConsumed{}, true
	case KindCaptureAttempted:
		return &CaptureAttempted{}, true
	case KindFleeAttempted:
		return &FleeAttempted{}, true
	case KindSwapCompleted:
		return &SwapCompleted{}, true
	case KindBattleEnded:
		return &BattleEnded{}, true
	case KindStageChanged:
		return &StageChanged{}, true
	case KindAilmentApplied:
		return &AilmentApplied{}, true
	case KindAilmentRemoved:
		return &AilmentRemoved{}, true
	case KindAilmentDamage:
		return &AilmentDamage{}, true
	case KindActionBlocked:
		return &ActionBlocked{}, true
	case KindEffectApplied:
		return &EffectApplied{}, true
	case KindEffectTicked:
		return &EffectTicked{}, true
	case KindEffectExpired:
		return &EffectExpired{}, true
	case KindIncapacitated:
		return &Incapacitated{}, true
	case KindSwapRequired:
		return &SwapRequired{}, true
	case KindAilmentTicked:
		return &AilmentTicked{}, true
	default:
		return nil, false
	}
}
