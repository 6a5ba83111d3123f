package combat

import (
	"github.com/udisondev/beastclash/internal/data"
	"github.com/udisondev/beastclash/internal/game/apply"
	"github.com/udisondev/beastclash/internal/game/rng"
	"github.com/udisondev/beastclash/internal/model"
)

// Formula constants.
const (
	SameElementBonus = 1.5
	CritMultiplier   = 1.5
	CritOdds         = 16 // 1 in 16
	MinRoll          = 85
	MaxRoll          = 100
)

// DamageInput is everything a calculator needs for one hit.
type DamageInput struct {
	Attacker      *model.Combatant
	Defender      *model.Combatant
	Technique     data.Technique
	Critical      bool
	Effectiveness float64
	Roll          int // MinRoll..MaxRoll, percent
}

// Calculator turns a connecting technique into raw damage, before any
// effect-runtime modifiers.
type Calculator interface {
	Damage(in DamageInput) int
}

// Standard is the default level/power formula:
//
//	((2·L/5 + 2) · Power · A/D) / 50 + 2
//
// scaled by same-element bonus, effectiveness, crit and the random roll.
type Standard struct{}

func (Standard) Damage(in DamageInput) int {
	t := in.Technique
	if !t.Damaging() || in.Effectiveness <= 0 {
		return 0
	}

	atkStat, defStat := model.StatAttack, model.StatDefense
	if t.Category == data.Special {
		atkStat, defStat = model.StatSpAttack, model.StatSpDefense
	}
	a := float64(apply.EffectiveStat(in.Attacker, atkStat))
	d := float64(apply.EffectiveStat(in.Defender, defStat))

	level := float64(max(in.Attacker.Level, 1))
	dmg := ((2*level/5+2)*float64(t.Power)*a/d)/50 + 2

	if in.Attacker.HasElement(t.Element) {
		dmg *= SameElementBonus
	}
	dmg *= in.Effectiveness
	if in.Critical {
		dmg *= CritMultiplier
	}
	roll := in.Roll
	if roll <= 0 {
		roll = MaxRoll
	}
	dmg = dmg * float64(roll) / 100

	return max(int(dmg), 1)
}

// HitCheck rolls whether a technique with accuracy connects, scaled by the
// attacker's accuracy stage. Accuracy 0 never misses.
func HitCheck(src rng.Source, accuracy, accStage int) bool {
	if accuracy <= 0 {
		return true
	}
	chance := int(float64(accuracy) * apply.AccuracyMultiplier(accStage))
	return rng.Chance(src, chance)
}

// CritCheck rolls a critical hit. guaranteed skips the roll.
func CritCheck(src rng.Source, guaranteed bool) bool {
	if guaranteed {
		return true
	}
	return src.IntN(CritOdds) == 0
}
