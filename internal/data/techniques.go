package data

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/beastclash/internal/model"
)

// TechniqueCategory selects which stat pair a technique uses.
type TechniqueCategory string

const (
	Physical TechniqueCategory = "physical"
	Special  TechniqueCategory = "special"
	Status   TechniqueCategory = "status"
)

// EffectKind names a secondary effect of a technique.
type EffectKind string

const (
	EffectStatChange      EffectKind = "stat_change"
	EffectAilment         EffectKind = "ailment"
	EffectHeal            EffectKind = "heal"
	EffectDrain           EffectKind = "drain"
	EffectRecoil          EffectKind = "recoil"
	EffectProtection      EffectKind = "protection"
	EffectVoidShield      EffectKind = "void_shield"
	EffectSteadyRegen     EffectKind = "steady_regen"
	EffectAilmentImmunity EffectKind = "ailment_immunity"
	EffectFixedDOT        EffectKind = "fixed_dot"
	EffectGuaranteedCrit  EffectKind = "guaranteed_crit"
	EffectAilmentSeal     EffectKind = "ailment_seal"
	EffectHealBlock       EffectKind = "heal_block"
	EffectLifeDrainLink   EffectKind = "life_drain_link"
	EffectField           EffectKind = "field"
	EffectComposite       EffectKind = "composite"
)

var effectKinds = map[EffectKind]bool{
	EffectStatChange: true, EffectAilment: true, EffectHeal: true, EffectDrain: true,
	EffectRecoil: true, EffectProtection: true, EffectVoidShield: true, EffectSteadyRegen: true,
	EffectAilmentImmunity: true, EffectFixedDOT: true, EffectGuaranteedCrit: true,
	EffectAilmentSeal: true, EffectHealBlock: true, EffectLifeDrainLink: true,
	EffectField: true, EffectComposite: true,
}

// EffectTarget says whose side an effect lands on.
type EffectTarget string

const (
	TargetSelf     EffectTarget = "self"
	TargetOpponent EffectTarget = "target"
)

// TechniqueEffect is a flat record describing one secondary effect. Which
// fields matter depends on Kind:
//
//	stat_change       Target, Stat, Stages, Chance
//	ailment           Ailment, Chance, Turns (override, 0 = rolled)
//	heal              Value (% of max HP)
//	drain, recoil     Value (% of damage dealt)
//	protection, ailment_immunity, guaranteed_crit      Turns (self)
//	ailment_seal, heal_block                           Turns (target)
//	void_shield       Turns, Value (absorbed HP)
//	steady_regen      Turns, Value (% of max HP per round)
//	fixed_dot         Turns, Value (base), Cap (max multiplier)
//	life_drain_link   Turns, Value (% of target max HP per round)
//	field             Field, Target, Turns, Value
//	composite         Composite
type TechniqueEffect struct {
	Kind      EffectKind      `yaml:"kind"`
	Target    EffectTarget    `yaml:"target,omitempty"`
	Stat      model.Stat      `yaml:"stat,omitempty"`
	Stages    int             `yaml:"stages,omitempty"`
	Chance    int             `yaml:"chance,omitempty"`
	Ailment   model.AilmentID `yaml:"ailment,omitempty"`
	Turns     int             `yaml:"turns,omitempty"`
	Value     int             `yaml:"value,omitempty"`
	Cap       int             `yaml:"cap,omitempty"`
	Field     string          `yaml:"field,omitempty"`
	Composite *CompositeSpec  `yaml:"composite,omitempty"`
}

// ChancePercent returns the proc chance; zero means the effect always applies.
func (e TechniqueEffect) ChancePercent() int {
	if e.Chance <= 0 {
		return 100
	}
	return e.Chance
}

// CompositeSpec bundles several buffs granted by one technique.
type CompositeSpec struct {
	Turns              int             `yaml:"turns"`
	DamageImmunity     bool            `yaml:"damage_immunity,omitempty"`
	RegenPercent       int             `yaml:"regen_percent,omitempty"`
	GuaranteedPriority bool            `yaml:"guaranteed_priority,omitempty"`
	DamageMultiplier   float64         `yaml:"damage_multiplier,omitempty"`
	Priority           []PriorityBonus `yaml:"priority,omitempty"`
}

// PriorityBonus is an action-order bonus. Without Types it always applies;
// with Types it applies only when the opponent carries one of them.
type PriorityBonus struct {
	Types  []model.Element `yaml:"types,omitempty"`
	Amount int             `yaml:"amount"`
}

// UnmarshalYAML accepts either a bare number or a {types, amount} mapping.
func (p *PriorityBonus) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		var amount int
		if err := n.Decode(&amount); err != nil {
			return fmt.Errorf("priority bonus: %w", err)
		}
		*p = PriorityBonus{Amount: amount}
		return nil
	case yaml.MappingNode:
		type plain PriorityBonus
		var v plain
		if err := n.Decode(&v); err != nil {
			return fmt.Errorf("priority bonus: %w", err)
		}
		*p = PriorityBonus(v)
		return nil
	default:
		return fmt.Errorf("priority bonus: unexpected yaml node at line %d", n.Line)
	}
}

// Technique describes a move a combatant can learn.
type Technique struct {
	ID       model.TechniqueID `yaml:"id"`
	Name     string            `yaml:"name"`
	Element  model.Element     `yaml:"element"`
	Category TechniqueCategory `yaml:"category"`
	Power    int               `yaml:"power"`
	Accuracy int               `yaml:"accuracy"` // 0 = never misses
	MaxUses  int               `yaml:"max_uses"`
	Priority int               `yaml:"priority"`
	Effects  []TechniqueEffect `yaml:"effects,omitempty"`
}

// Damaging reports whether the technique deals direct damage.
func (t Technique) Damaging() bool {
	return t.Category != Status && t.Power > 0
}

// TargetsOpponent reports whether any part of the technique lands on the
// opposing side. Protection blocks such techniques.
func (t Technique) TargetsOpponent() bool {
	if t.Damaging() {
		return true
	}
	for _, e := range t.Effects {
		switch e.Kind {
		case EffectAilment, EffectAilmentSeal, EffectHealBlock, EffectLifeDrainLink, EffectFixedDOT:
			return true
		case EffectStatChange, EffectField:
			if e.Target == TargetOpponent {
				return true
			}
		}
	}
	return false
}

var techniqueDefs = []Technique{
	{ID: "tackle", Name: "Tackle", Element: "normal", Category: Physical, Power: 40, Accuracy: 100, MaxUses: 35},
	{ID: "quick_strike", Name: "Quick Strike", Element: "normal", Category: Physical, Power: 40, Accuracy: 100, MaxUses: 30, Priority: 1},
	{ID: "ember", Name: "Ember", Element: "fire", Category: Special, Power: 40, Accuracy: 100, MaxUses: 25,
		Effects: []TechniqueEffect{{Kind: EffectAilment, Ailment: Burn, Chance: 10}}},
	{ID: "flame_wheel", Name: "Flame Wheel", Element: "fire", Category: Physical, Power: 60, Accuracy: 100, MaxUses: 25,
		Effects: []TechniqueEffect{{Kind: EffectAilment, Ailment: Burn, Chance: 10}}},
	{ID: "water_gun", Name: "Water Gun", Element: "water", Category: Special, Power: 40, Accuracy: 100, MaxUses: 25},
	{ID: "bubble_beam", Name: "Bubble Beam", Element: "water", Category: Special, Power: 65, Accuracy: 100, MaxUses: 20,
		Effects: []TechniqueEffect{{Kind: EffectStatChange, Target: TargetOpponent, Stat: model.StatSpeed, Stages: -1, Chance: 10}}},
	{ID: "vine_whip", Name: "Vine Whip", Element: "grass", Category: Physical, Power: 45, Accuracy: 100, MaxUses: 25},
	{ID: "giga_drain", Name: "Giga Drain", Element: "grass", Category: Special, Power: 75, Accuracy: 100, MaxUses: 10,
		Effects: []TechniqueEffect{{Kind: EffectDrain, Value: 50}}},
	{ID: "thunder_shock", Name: "Thunder Shock", Element: "electric", Category: Special, Power: 40, Accuracy: 100, MaxUses: 30,
		Effects: []TechniqueEffect{{Kind: EffectAilment, Ailment: Paralysis, Chance: 10}}},
	{ID: "ice_fang", Name: "Ice Fang", Element: "ice", Category: Physical, Power: 65, Accuracy: 95, MaxUses: 15,
		Effects: []TechniqueEffect{
			{Kind: EffectAilment, Ailment: Frostbite, Chance: 10},
			{Kind: EffectAilment, Ailment: Freeze, Chance: 10},
		}},
	{ID: "double_edge", Name: "Double-Edge", Element: "normal", Category: Physical, Power: 120, Accuracy: 100, MaxUses: 15,
		Effects: []TechniqueEffect{{Kind: EffectRecoil, Value: 33}}},
	{ID: "toxic", Name: "Toxic", Element: "poison", Category: Status, Accuracy: 90, MaxUses: 10,
		Effects: []TechniqueEffect{{Kind: EffectAilment, Ailment: Poison}}},
	{ID: "lullaby", Name: "Lullaby", Element: "normal", Category: Status, Accuracy: 55, MaxUses: 15,
		Effects: []TechniqueEffect{{Kind: EffectAilment, Ailment: Sleep}}},
	{ID: "scary_face", Name: "Scary Face", Element: "dark", Category: Status, Accuracy: 100, MaxUses: 10,
		Effects: []TechniqueEffect{
			{Kind: EffectStatChange, Target: TargetOpponent, Stat: model.StatSpeed, Stages: -2},
			{Kind: EffectAilment, Ailment: Fear, Chance: 30},
		}},
	{ID: "growl", Name: "Growl", Element: "normal", Category: Status, Accuracy: 100, MaxUses: 40,
		Effects: []TechniqueEffect{{Kind: EffectStatChange, Target: TargetOpponent, Stat: model.StatAttack, Stages: -1}}},
	{ID: "swords_dance", Name: "Swords Dance", Element: "normal", Category: Status, MaxUses: 20,
		Effects: []TechniqueEffect{{Kind: EffectStatChange, Target: TargetSelf, Stat: model.StatAttack, Stages: 2}}},
	{ID: "agility", Name: "Agility", Element: "psychic", Category: Status, MaxUses: 30,
		Effects: []TechniqueEffect{{Kind: EffectStatChange, Target: TargetSelf, Stat: model.StatSpeed, Stages: 2}}},
	{ID: "recover", Name: "Recover", Element: "normal", Category: Status, MaxUses: 10,
		Effects: []TechniqueEffect{{Kind: EffectHeal, Value: 50}}},
	{ID: "protect", Name: "Protect", Element: "normal", Category: Status, MaxUses: 10, Priority: 4,
		Effects: []TechniqueEffect{{Kind: EffectProtection, Turns: 1}}},
	{ID: "void_barrier", Name: "Void Barrier", Element: "psychic", Category: Status, MaxUses: 10,
		Effects: []TechniqueEffect{{Kind: EffectVoidShield, Turns: 3, Value: 30}}},
	{ID: "aqua_ring", Name: "Aqua Ring", Element: "water", Category: Status, MaxUses: 20,
		Effects: []TechniqueEffect{{Kind: EffectSteadyRegen, Turns: 5, Value: 6}}},
	{ID: "safeguard", Name: "Safeguard", Element: "normal", Category: Status, MaxUses: 25,
		Effects: []TechniqueEffect{{Kind: EffectAilmentImmunity, Turns: 5}}},
	{ID: "spike_trap", Name: "Spike Trap", Element: "ground", Category: Status, MaxUses: 20,
		Effects: []TechniqueEffect{{Kind: EffectFixedDOT, Turns: 4, Value: 4, Cap: 3}}},
	{ID: "focus_energy", Name: "Focus Energy", Element: "normal", Category: Status, MaxUses: 30,
		Effects: []TechniqueEffect{{Kind: EffectGuaranteedCrit, Turns: 2}}},
	{ID: "imprison", Name: "Imprison", Element: "psychic", Category: Status, MaxUses: 10,
		Effects: []TechniqueEffect{{Kind: EffectAilmentSeal, Turns: 3}}},
	{ID: "heal_block", Name: "Heal Block", Element: "psychic", Category: Status, Accuracy: 100, MaxUses: 15,
		Effects: []TechniqueEffect{{Kind: EffectHealBlock, Turns: 5}}},
	{ID: "leech_seed", Name: "Leech Seed", Element: "grass", Category: Status, Accuracy: 90, MaxUses: 10,
		Effects: []TechniqueEffect{{Kind: EffectLifeDrainLink, Turns: 5, Value: 12}}},
	{ID: "sunny_day", Name: "Sunny Day", Element: "fire", Category: Status, MaxUses: 5,
		Effects: []TechniqueEffect{{Kind: EffectField, Field: "sun", Target: TargetSelf, Turns: 5}}},
	{ID: "primal_roar", Name: "Primal Roar", Element: "dragon", Category: Status, MaxUses: 5,
		Effects: []TechniqueEffect{{Kind: EffectComposite, Composite: &CompositeSpec{
			Turns:            3,
			RegenPercent:     5,
			DamageMultiplier: 1.3,
			Priority:         []PriorityBonus{{Amount: 1}, {Types: []model.Element{"fairy", "dragon"}, Amount: 2}},
		}}}},
	{ID: "phase_veil", Name: "Phase Veil", Element: "ghost", Category: Status, MaxUses: 5,
		Effects: []TechniqueEffect{{Kind: EffectComposite, Composite: &CompositeSpec{
			Turns:              2,
			DamageImmunity:     true,
			GuaranteedPriority: true,
		}}}},
}
