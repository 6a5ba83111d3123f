package turn

import "fmt"

// Kind enumerates every observable change a round can produce.
// Each kind has exactly one event struct.
type Kind uint8

const (
	KindRoundStarted Kind = iota + 1
	KindIntentSubmitted
	KindTechniqueCast
	KindTechniqueHit
	KindTechniqueMissed
	KindHealthChanged
	KindUsesChanged
	KindItemConsumed
	KindCaptureAttempted
	KindFleeAttempted
	KindSwapCompleted
	KindBattleEnded
	KindStageChanged
	KindAilmentApplied
	KindAilmentRemoved
	KindAilmentDamage
	KindActionBlocked
	KindEffectApplied
	KindEffectTicked
	KindEffectExpired
	KindIncapacitated
	KindSwapRequired
	KindAilmentTicked
)

var kindNames = map[Kind]string{
	KindRoundStarted:     "round_started",
	KindIntentSubmitted:  "intent_submitted",
	KindTechniqueCast:    "technique_cast",
	KindTechniqueHit:     "technique_hit",
	KindTechniqueMissed:  "technique_missed",
	KindHealthChanged:    "health_changed",
	KindUsesChanged:      "uses_changed",
	KindItemConsumed:     "item_consumed",
	KindCaptureAttempted: "capture_attempted",
	KindFleeAttempted:    "flee_attempted",
	KindSwapCompleted:    "swap_completed",
	KindBattleEnded:      "battle_ended",
	KindStageChanged:     "stage_changed",
	KindAilmentApplied:   "ailment_applied",
	KindAilmentRemoved:   "ailment_removed",
	KindAilmentDamage:    "ailment_damage",
	KindActionBlocked:    "action_blocked",
	KindEffectApplied:    "effect_applied",
	KindEffectTicked:     "effect_ticked",
	KindEffectExpired:    "effect_expired",
	KindIncapacitated:    "incapacitated",
	KindSwapRequired:     "swap_required",
	KindAilmentTicked:    "ailment_ticked",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind resolves a kind by its wire name.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	v, ok := ParseKind(string(b))
	if !ok {
		return fmt.Errorf("unknown event kind %q", b)
	}
	*k = v
	return nil
}

// EndReason explains why a battle concluded.
type EndReason string

const (
	EndNone             EndReason = ""
	EndCaptured         EndReason = "captured"
	EndFled             EndReason = "fled"
	EndAllIncapacitated EndReason = "all_incapacitated"
)

// RejectReason explains why an intent was voided.
type RejectReason string

const (
	RejectNone             RejectReason = ""
	RejectInvalidAction    RejectReason = "invalid_player_action"
	RejectItemUnavailable  RejectReason = "item_unavailable"
	RejectItemInapplicable RejectReason = "item_inapplicable"
	RejectFleeForbidden    RejectReason = "flee_forbidden"
	RejectCaptureForbidden RejectReason = "capture_forbidden"
	RejectInvalidSwap      RejectReason = "invalid_swap"
	RejectNoUses           RejectReason = "no_uses_left"
	RejectSwitchRequired   RejectReason = "switch_required"
	RejectUnknownTechnique RejectReason = "unknown_technique"
)
