package combat

import (
	"log/slog"
	"slices"

	"github.com/udisondev/beastclash/internal/data"
	"github.com/udisondev/beastclash/internal/model"
)

// ExperienceProvider supplies progression numbers. It is optional: without
// one, battles grant no rewards and action order gets no speed bonus.
type ExperienceProvider interface {
	// Yield is the experience granted for defeating c.
	Yield(c *model.Combatant) int64
	// SpeedBonus is an ordering bonus derived from c's progression.
	SpeedBonus(c *model.Combatant) int
}

// CatalogExperience derives yields from species base experience.
type CatalogExperience struct {
	Catalog *data.Catalog
}

// Yield returns BaseExp × level / 7, at least 1.
func (p CatalogExperience) Yield(c *model.Combatant) int64 {
	s, ok := p.Catalog.SpeciesByID(c.SpeciesID)
	if !ok {
		return 1
	}
	return max(int64(s.BaseExp)*int64(c.Level)/7, 1)
}

// SpeedBonus grants one point of speed per ten levels.
func (p CatalogExperience) SpeedBonus(c *model.Combatant) int {
	return c.Level / 10
}

// Rewards is what the winning combatant earns from a battle.
type Rewards struct {
	Experience  int64               `json:"experience"`
	Level       int                 `json:"level"`
	LevelsUp    bool                `json:"levels_up"`
	Learnable   []model.TechniqueID `json:"learnable,omitempty"`
	CanEvolve   bool                `json:"can_evolve"`
	EvolvesInto model.SpeciesID     `json:"evolves_into,omitempty"`
}

// ComputeRewards totals the experience winner earns from the defeated
// combatants and derives the level it would reach, techniques it could
// learn on the way and whether it becomes eligible to evolve. A nil
// provider yields empty rewards.
func ComputeRewards(winner *model.Combatant, defeated []*model.Combatant, catalog *data.Catalog, provider ExperienceProvider) Rewards {
	if winner == nil || provider == nil {
		return Rewards{}
	}

	var exp int64
	for _, d := range defeated {
		if d.IsIncapacitated() {
			exp += provider.Yield(d)
		}
	}
	r := Rewards{Experience: exp, Level: winner.Level}
	if exp == 0 {
		return r
	}

	r.Level = data.LevelForExp(winner.Experience+exp, winner.Level)
	r.LevelsUp = r.Level > winner.Level

	if catalog == nil {
		return r
	}
	s, ok := catalog.SpeciesByID(winner.SpeciesID)
	if !ok {
		return r
	}
	for _, id := range s.LearnedBy(winner.Level, r.Level) {
		if winner.Slot(id) < 0 && !slices.Contains(r.Learnable, id) {
			r.Learnable = append(r.Learnable, id)
		}
	}
	if s.CanEvolve(r.Level) {
		r.CanEvolve = true
		r.EvolvesInto = s.EvolvesInto
	}
	return r
}

// Grant adds the experience of r to c and moves it to the earned level.
// Learning and evolving are left to the session.
func Grant(c *model.Combatant, r Rewards) {
	if r.Experience <= 0 {
		return
	}
	oldLevel := c.Level
	c.Experience += r.Experience
	if r.Level > oldLevel {
		c.Level = r.Level
		slog.Info("combatant leveled up",
			"combatant", c.Name,
			"oldLevel", oldLevel,
			"newLevel", c.Level,
			"exp", c.Experience)
	}
}
