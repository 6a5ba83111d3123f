package battle

import "github.com/udisondev/beastclash/internal/model"

// GuaranteedCatch is the catch rate from which a capsule never fails.
const GuaranteedCatch = 255

// FleeChance returns the escape probability in percent for a combatant with
// speed running from one with opponentSpeed after failures failed tries.
func FleeChance(r FleeRules, speed, opponentSpeed, failures int) int {
	p := r.Base + r.PerAttempt*max(failures, 0)
	switch {
	case speed > opponentSpeed:
		p += r.SpeedBonus
	case speed < opponentSpeed:
		p -= r.SpeedBonus
	}
	return min(max(p, r.Min), r.Max)
}

// CaptureChance returns the capture probability in percent of a capsule
// with catchRate thrown at target.
//
// The capsule rate is scaled by BaseRate and by missing health
// ((3·max − 2·hp) / 3·max, so a full-health target counts one third), then
// every weakening ailment and an active control ailment add their bonus.
// The result is clamped to [1, 100].
func CaptureChance(r CaptureRules, catchRate int, target *model.Combatant) int {
	if catchRate >= GuaranteedCatch {
		return 100
	}
	if target.MaxHP <= 0 {
		return 1
	}
	rate := catchRate * r.BaseRate / 100
	p := rate * (3*target.MaxHP - 2*target.HP) / (3 * target.MaxHP)
	p += r.WeakeningBonus * len(target.Status.Weakening)
	if target.Status.Control != nil {
		p += r.ControlBonus
	}
	return min(max(p, 1), 100)
}
