package data

import (
	"sort"

	"github.com/udisondev/beastclash/internal/model"
)

// Species is the template creatures of one kind are built from.
type Species struct {
	ID          model.SpeciesID             `yaml:"id"`
	Name        string                      `yaml:"name"`
	Elements    []model.Element             `yaml:"elements"`
	Base        model.Stats                 `yaml:"base"`
	BaseExp     int                         `yaml:"base_exp"`
	Learnset    map[int][]model.TechniqueID `yaml:"learnset"`
	EvolvesAt   int                         `yaml:"evolves_at,omitempty"`
	EvolvesInto model.SpeciesID             `yaml:"evolves_into,omitempty"`
}

// StatsAt scales base stats to level.
func (s Species) StatsAt(level int) model.Stats {
	level = min(max(level, 1), MaxLevel)
	stat := func(base int) int { return base*2*level/100 + 5 }
	return model.Stats{
		HP:        s.Base.HP*2*level/100 + level + 10,
		Attack:    stat(s.Base.Attack),
		Defense:   stat(s.Base.Defense),
		SpAttack:  stat(s.Base.SpAttack),
		SpDefense: stat(s.Base.SpDefense),
		Speed:     stat(s.Base.Speed),
	}
}

// LearnedBy returns the techniques unlocked in (from, to], ordered by level.
func (s Species) LearnedBy(from, to int) []model.TechniqueID {
	levels := make([]int, 0, len(s.Learnset))
	for lvl := range s.Learnset {
		if lvl > from && lvl <= to {
			levels = append(levels, lvl)
		}
	}
	sort.Ints(levels)

	var out []model.TechniqueID
	for _, lvl := range levels {
		out = append(out, s.Learnset[lvl]...)
	}
	return out
}

// CanEvolve reports whether a creature of this species at level evolves.
func (s Species) CanEvolve(level int) bool {
	return s.EvolvesInto != "" && s.EvolvesAt > 0 && level >= s.EvolvesAt
}

var speciesDefs = []Species{
	{
		ID: "sparkit", Name: "Sparkit", Elements: []model.Element{"fire"}, BaseExp: 62,
		Base: model.Stats{HP: 39, Attack: 52, Defense: 43, SpAttack: 60, SpDefense: 50, Speed: 65},
		Learnset: map[int][]model.TechniqueID{
			1: {"tackle", "growl"}, 7: {"ember"}, 13: {"quick_strike"}, 19: {"flame_wheel"},
			25: {"scary_face"}, 31: {"sunny_day"},
		},
		EvolvesAt: 16, EvolvesInto: "blazefang",
	},
	{
		ID: "blazefang", Name: "Blazefang", Elements: []model.Element{"fire", "dark"}, BaseExp: 142,
		Base: model.Stats{HP: 58, Attack: 64, Defense: 58, SpAttack: 80, SpDefense: 65, Speed: 80},
		Learnset: map[int][]model.TechniqueID{
			1: {"tackle", "ember"}, 20: {"flame_wheel"}, 28: {"focus_energy"}, 36: {"primal_roar"},
		},
	},
	{
		ID: "puddlet", Name: "Puddlet", Elements: []model.Element{"water"}, BaseExp: 63,
		Base: model.Stats{HP: 44, Attack: 48, Defense: 65, SpAttack: 50, SpDefense: 64, Speed: 43},
		Learnset: map[int][]model.TechniqueID{
			1: {"tackle", "water_gun"}, 9: {"protect"}, 15: {"bubble_beam"}, 21: {"aqua_ring"},
			27: {"void_barrier"},
		},
		EvolvesAt: 18, EvolvesInto: "tidalisk",
	},
	{
		ID: "tidalisk", Name: "Tidalisk", Elements: []model.Element{"water", "dragon"}, BaseExp: 142,
		Base: model.Stats{HP: 69, Attack: 63, Defense: 80, SpAttack: 75, SpDefense: 80, Speed: 58},
		Learnset: map[int][]model.TechniqueID{
			1: {"water_gun", "protect"}, 24: {"bubble_beam"}, 32: {"safeguard"},
		},
	},
	{
		ID: "sproutle", Name: "Sproutle", Elements: []model.Element{"grass", "poison"}, BaseExp: 64,
		Base: model.Stats{HP: 45, Attack: 49, Defense: 49, SpAttack: 65, SpDefense: 65, Speed: 45},
		Learnset: map[int][]model.TechniqueID{
			1: {"tackle", "growl"}, 7: {"vine_whip"}, 10: {"leech_seed"}, 15: {"toxic"},
			20: {"giga_drain"}, 27: {"spike_trap"},
		},
	},
	{
		ID: "voltmouse", Name: "Voltmouse", Elements: []model.Element{"electric"}, BaseExp: 82,
		Base: model.Stats{HP: 35, Attack: 55, Defense: 40, SpAttack: 50, SpDefense: 50, Speed: 90},
		Learnset: map[int][]model.TechniqueID{
			1: {"thunder_shock", "growl"}, 8: {"quick_strike"}, 16: {"agility"}, 26: {"double_edge"},
		},
	},
	{
		ID: "frostling", Name: "Frostling", Elements: []model.Element{"ice"}, BaseExp: 70,
		Base: model.Stats{HP: 50, Attack: 60, Defense: 50, SpAttack: 55, SpDefense: 55, Speed: 55},
		Learnset: map[int][]model.TechniqueID{
			1: {"tackle", "lullaby"}, 12: {"ice_fang"}, 22: {"heal_block"}, 30: {"recover"},
		},
	},
	{
		ID: "wispurr", Name: "Wispurr", Elements: []model.Element{"ghost", "psychic"}, BaseExp: 95,
		Base: model.Stats{HP: 40, Attack: 35, Defense: 45, SpAttack: 85, SpDefense: 70, Speed: 75},
		Learnset: map[int][]model.TechniqueID{
			1: {"lullaby", "imprison"}, 14: {"phase_veil"}, 22: {"swords_dance"},
		},
	},
}
