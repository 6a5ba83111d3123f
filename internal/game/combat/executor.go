package combat

import (
	"log/slog"

	"github.com/udisondev/beastclash/internal/data"
	"github.com/udisondev/beastclash/internal/game/ailment"
	"github.com/udisondev/beastclash/internal/game/apply"
	"github.com/udisondev/beastclash/internal/game/effect"
	"github.com/udisondev/beastclash/internal/game/rng"
	"github.com/udisondev/beastclash/internal/game/turn"
	"github.com/udisondev/beastclash/internal/model"
)

// Miss reasons carried by TechniqueMissed events.
const (
	MissProtected = "protected"
	MissEvaded    = "missed"
	MissNoEffect  = "no_effect"
	MissImmune    = "immune"
)

// Executed reports what a technique did.
type Executed struct {
	Used     bool // the technique was cast
	Hit      bool
	Critical bool
	Damage   int
}

// Executor applies a chosen technique of one side to both combatants.
type Executor struct {
	catalog  *data.Catalog
	ailments *ailment.Registry
	effects  *effect.Runtime
	calc     Calculator
	src      rng.Source
}

// NewExecutor wires an executor. A nil calc selects Standard.
func NewExecutor(catalog *data.Catalog, ailments *ailment.Registry, effects *effect.Runtime, calc Calculator, src rng.Source) *Executor {
	if calc == nil {
		calc = Standard{}
	}
	return &Executor{
		catalog:  catalog,
		ailments: ailments,
		effects:  effects,
		calc:     calc,
		src:      src,
	}
}

// Execute makes the active combatant of side use the technique in slot
// against the opposing active combatant.
func (e *Executor) Execute(log *turn.Result, arena *model.Arena, round int, side model.Side, slot int) Executed {
	att := arena.Active(side)
	defSide := side.Other()
	def := arena.Active(defSide)
	if att == nil || def == nil {
		return Executed{}
	}

	if slot < 0 || slot >= len(att.Techniques) {
		log.Append(turn.ActionBlocked{Side: side, Combatant: att.ID, Reason: "no technique in slot"})
		return Executed{}
	}
	ts := att.Techniques[slot]
	tech, ok := e.catalog.Technique(ts.TechniqueID)
	if !ok {
		log.Append(turn.ActionBlocked{Side: side, Combatant: att.ID, Reason: "unknown technique " + string(ts.TechniqueID)})
		return Executed{}
	}
	if ts.Uses <= 0 {
		log.Append(turn.ActionBlocked{Side: side, Combatant: att.ID, Reason: "no uses left"})
		return Executed{}
	}

	log.Append(turn.TechniqueCast{Side: side, Combatant: att.ID, Technique: tech.ID})
	apply.Uses(log, side, att, slot, -1)
	res := Executed{Used: true}

	if tech.TargetsOpponent() {
		if e.effects.Protected(defSide) {
			log.Append(turn.TechniqueMissed{Side: side, Technique: tech.ID, Reason: MissProtected})
			return res
		}
		if !HitCheck(e.src, tech.Accuracy, att.Stages.Get(model.StatAccuracy)) {
			log.Append(turn.TechniqueMissed{Side: side, Technique: tech.ID, Reason: MissEvaded})
			return res
		}
	}

	if tech.Damaging() {
		eff := e.catalog.Chart.Effectiveness(tech.Element, def.Elements)
		if eff <= 0 {
			log.Append(turn.TechniqueMissed{Side: side, Technique: tech.ID, Reason: MissNoEffect})
			return res
		}
		if e.effects.Immune(defSide) {
			log.Append(turn.TechniqueMissed{Side: side, Technique: tech.ID, Reason: MissImmune})
			return res
		}

		res.Critical = CritCheck(e.src, e.effects.ConsumeCrit(log, side))
		raw := e.calc.Damage(DamageInput{
			Attacker:      att,
			Defender:      def,
			Technique:     tech,
			Critical:      res.Critical,
			Effectiveness: eff,
			Roll:          rng.Between(e.src, MinRoll, MaxRoll),
		})
		raw = e.effects.Outgoing(side, raw)

		log.Append(turn.TechniqueHit{Side: side, Technique: tech.ID, Critical: res.Critical, Effectiveness: eff})
		res.Hit = true

		dealt := e.effects.Incoming(log, defSide, raw)
		res.Damage = apply.Damage(log, defSide, def, dealt, string(tech.ID))
		e.effects.RecordDamage(defSide, res.Damage)
		if res.Damage > 0 && !def.IsIncapacitated() {
			e.ailments.OnHit(log, defSide, def, round)
		}
	} else {
		log.Append(turn.TechniqueHit{Side: side, Technique: tech.ID, Effectiveness: 1})
		res.Hit = true
	}

	for _, fx := range tech.Effects {
		e.secondary(log, side, att, def, tech, fx, res.Damage)
	}

	slog.Debug("technique executed",
		"round", round,
		"side", side,
		"technique", tech.ID,
		"damage", res.Damage,
		"critical", res.Critical)
	return res
}

// secondary applies one effect record of tech. dealt is the damage the hit
// inflicted, used by drain and recoil.
func (e *Executor) secondary(log *turn.Result, side model.Side, att, def *model.Combatant, tech data.Technique, fx data.TechniqueEffect, dealt int) {
	defSide := side.Other()
	if !rng.Chance(e.src, fx.ChancePercent()) {
		return
	}

	switch fx.Kind {
	case data.EffectStatChange:
		if fx.Target == data.TargetOpponent {
			if !def.IsIncapacitated() {
				apply.Stage(log, defSide, def, fx.Stat, fx.Stages)
			}
			return
		}
		apply.Stage(log, side, att, fx.Stat, fx.Stages)

	case data.EffectAilment:
		switch {
		case def.IsIncapacitated():
		case e.effects.Sealed(side):
			slog.Debug("ailment blocked by seal", "side", side, "ailment", fx.Ailment)
		case e.effects.AilmentImmune(defSide):
			slog.Debug("ailment blocked by immunity", "side", defSide, "ailment", fx.Ailment)
		default:
			if _, err := e.ailments.Apply(log, defSide, def, fx.Ailment, fx.Turns); err != nil {
				// Unreachable with a validated catalog.
				slog.Error("applying technique ailment",
					"technique", tech.ID,
					"ailment", fx.Ailment,
					"error", err)
			}
		}

	case data.EffectHeal:
		if !e.effects.HealBlocked(side) {
			apply.Heal(log, side, att, apply.Percent(att.MaxHP, fx.Value), string(tech.ID))
		}

	case data.EffectDrain:
		if dealt > 0 && !e.effects.HealBlocked(side) {
			apply.Heal(log, side, att, apply.Percent(dealt, fx.Value), string(tech.ID))
		}

	case data.EffectRecoil:
		if dealt > 0 {
			n := apply.Damage(log, side, att, apply.Percent(dealt, fx.Value), "recoil")
			e.effects.RecordDamage(side, n)
		}

	case data.EffectProtection:
		e.effects.Set(log, side, effect.SlotProtection, fx.Turns, 0)
	case data.EffectVoidShield:
		e.effects.Set(log, side, effect.SlotVoidShield, fx.Turns, fx.Value)
	case data.EffectSteadyRegen:
		e.effects.Set(log, side, effect.SlotSteadyRegen, fx.Turns, fx.Value)
	case data.EffectAilmentImmunity:
		e.effects.Set(log, side, effect.SlotAilmentImmunity, fx.Turns, 0)
	case data.EffectGuaranteedCrit:
		e.effects.Set(log, side, effect.SlotGuaranteedCrit, fx.Turns, 0)
	case data.EffectAilmentSeal:
		e.effects.Set(log, defSide, effect.SlotAilmentSeal, fx.Turns, 0)
	case data.EffectHealBlock:
		e.effects.Set(log, defSide, effect.SlotHealBlock, fx.Turns, 0)
	case data.EffectLifeDrainLink:
		e.effects.Set(log, defSide, effect.SlotLifeDrainLink, fx.Turns, fx.Value)
	case data.EffectFixedDOT:
		e.effects.EscalateDOT(log, att.ID, defSide, fx.Value, fx.Cap, fx.Turns)

	case data.EffectField:
		target := side
		if fx.Target == data.TargetOpponent {
			target = defSide
		}
		e.effects.SetField(log, target, fx.Field, fx.Turns, fx.Value)

	case data.EffectComposite:
		if fx.Composite != nil {
			e.effects.ApplyComposite(log, side, effect.CompositeFrom(*fx.Composite))
		}
	}
}
