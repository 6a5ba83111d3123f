package data

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/udisondev/beastclash/internal/model"
)

// ErrInvalidCatalog wraps every validation failure of a catalog.
var ErrInvalidCatalog = errors.New("invalid catalog")

// maxSuggestDistance bounds how far a typo may be from a known name.
const maxSuggestDistance = 3

// Catalog bundles the static definitions a battle reads from.
// It is built once and treated as read-only afterwards.
type Catalog struct {
	Ailments   map[model.AilmentID]AilmentDef
	Techniques map[model.TechniqueID]Technique
	Items      map[model.ItemID]Item
	Species    map[model.SpeciesID]Species
	Chart      Chart
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		Ailments:   make(map[model.AilmentID]AilmentDef),
		Techniques: make(map[model.TechniqueID]Technique),
		Items:      make(map[model.ItemID]Item),
		Species:    make(map[model.SpeciesID]Species),
		Chart:      make(Chart),
	}
}

// DefaultCatalog builds the catalog from the built-in tables.
func DefaultCatalog() *Catalog {
	c := NewCatalog()
	for _, d := range ailmentDefs {
		c.Ailments[d.ID] = d
	}
	for _, t := range techniqueDefs {
		c.Techniques[t.ID] = t
	}
	for _, it := range itemDefs {
		c.Items[it.ID] = it
	}
	for _, s := range speciesDefs {
		c.Species[s.ID] = s
	}
	c.Chart = defaultChart()
	return c
}

// Ailment returns the definition of id.
func (c *Catalog) Ailment(id model.AilmentID) (AilmentDef, bool) {
	d, ok := c.Ailments[id]
	return d, ok
}

// Technique returns the definition of id.
func (c *Catalog) Technique(id model.TechniqueID) (Technique, bool) {
	t, ok := c.Techniques[id]
	return t, ok
}

// Item returns the definition of id.
func (c *Catalog) Item(id model.ItemID) (Item, bool) {
	it, ok := c.Items[id]
	return it, ok
}

// SpeciesByID returns the definition of id.
func (c *Catalog) SpeciesByID(id model.SpeciesID) (Species, bool) {
	s, ok := c.Species[id]
	return s, ok
}

// AilmentDefs returns every ailment ordered by id.
func (c *Catalog) AilmentDefs() []AilmentDef {
	out := make([]AilmentDef, 0, len(c.Ailments))
	for _, d := range c.Ailments {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// NewCombatant builds a combatant of species at level knowing the latest
// techniques of its learnset.
func (c *Catalog) NewCombatant(species model.SpeciesID, level int) (*model.Combatant, error) {
	s, ok := c.Species[species]
	if !ok {
		return nil, fmt.Errorf("unknown species %q", species)
	}
	cb := model.NewCombatant(s.Name, s.ID, level, s.StatsAt(level), s.Elements...)
	cb.Experience = ExpForLevel(level)

	learned := s.LearnedBy(0, level)
	// Later techniques push out earlier ones.
	if len(learned) > model.MaxTechniques {
		learned = learned[len(learned)-model.MaxTechniques:]
	}
	for _, id := range learned {
		t, ok := c.Techniques[id]
		if !ok {
			return nil, fmt.Errorf("species %q learns unknown technique %q", species, id)
		}
		cb.Learn(id, t.MaxUses)
	}
	return cb, nil
}

// Merge overlays other on c: entries with the same id are replaced, chart
// rows are merged pair by pair.
func (c *Catalog) Merge(other *Catalog) {
	for id, d := range other.Ailments {
		c.Ailments[id] = d
	}
	for id, t := range other.Techniques {
		c.Techniques[id] = t
	}
	for id, it := range other.Items {
		c.Items[id] = it
	}
	for id, s := range other.Species {
		c.Species[id] = s
	}
	for atk, row := range other.Chart {
		if c.Chart[atk] == nil {
			c.Chart[atk] = make(map[model.Element]float64, len(row))
		}
		for def, v := range row {
			c.Chart[atk][def] = v
		}
	}
}

// Validate checks references and ranges. All problems are reported at once.
func (c *Catalog) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	for id, d := range c.Ailments {
		if d.ID != id {
			bad("ailment %q: id mismatch %q", id, d.ID)
		}
		if d.Category != Weakening && d.Category != Control {
			bad("ailment %q: unknown category %q", id, d.Category)
		}
		if d.MinTurns < 1 || d.MaxTurns < d.MinTurns {
			bad("ailment %q: invalid turns [%d,%d]", id, d.MinTurns, d.MaxTurns)
		}
	}

	for id, t := range c.Techniques {
		if t.ID != id {
			bad("technique %q: id mismatch %q", id, t.ID)
		}
		switch t.Category {
		case Physical, Special:
			if t.Power <= 0 {
				bad("technique %q: damaging technique without power", id)
			}
		case Status:
		default:
			bad("technique %q: unknown category %q", id, t.Category)
		}
		if t.Accuracy < 0 || t.Accuracy > 100 {
			bad("technique %q: accuracy %d out of range", id, t.Accuracy)
		}
		if t.MaxUses <= 0 {
			bad("technique %q: max uses must be positive", id)
		}
		for i, e := range t.Effects {
			if err := c.validateEffect(e); err != nil {
				bad("technique %q effect %d: %w", id, i, err)
			}
		}
	}

	for id, it := range c.Items {
		if it.ID != id {
			bad("item %q: id mismatch %q", id, it.ID)
		}
		switch it.Kind {
		case ItemHeal:
			if it.Amount <= 0 {
				bad("item %q: heal amount must be positive", id)
			}
		case ItemUses:
			if it.Amount < 0 {
				bad("item %q: negative uses amount", id)
			}
		case ItemCapsule:
			if it.CatchRate <= 0 {
				bad("item %q: capsule without catch rate", id)
			}
		case ItemCure:
			if len(it.Cures) == 0 {
				bad("item %q: cure item cures nothing", id)
			}
			for _, a := range it.Cures {
				if _, ok := c.Ailments[a]; !ok {
					bad("item %q: cures unknown ailment %q", id, a)
				}
			}
		default:
			bad("item %q: unknown kind %q", id, it.Kind)
		}
	}

	for id, s := range c.Species {
		if s.ID != id {
			bad("species %q: id mismatch %q", id, s.ID)
		}
		if s.Base.HP <= 0 {
			bad("species %q: base HP must be positive", id)
		}
		for lvl, techs := range s.Learnset {
			for _, tid := range techs {
				if _, ok := c.Techniques[tid]; !ok {
					bad("species %q: level %d learns unknown technique %q", id, lvl, tid)
				}
			}
		}
		if s.EvolvesInto != "" {
			if _, ok := c.Species[s.EvolvesInto]; !ok {
				bad("species %q: evolves into unknown species %q", id, s.EvolvesInto)
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidCatalog, errors.Join(errs...))
}

func (c *Catalog) validateEffect(e TechniqueEffect) error {
	if !effectKinds[e.Kind] {
		return fmt.Errorf("unknown kind %q", e.Kind)
	}
	if e.Chance < 0 || e.Chance > 100 {
		return fmt.Errorf("chance %d out of range", e.Chance)
	}
	switch e.Kind {
	case EffectStatChange:
		if e.Stages == 0 {
			return errors.New("stat change without stages")
		}
		if e.Target != TargetSelf && e.Target != TargetOpponent {
			return fmt.Errorf("stat change target %q", e.Target)
		}
	case EffectAilment:
		if _, ok := c.Ailments[e.Ailment]; !ok {
			return fmt.Errorf("unknown ailment %q", e.Ailment)
		}
	case EffectHeal, EffectDrain, EffectRecoil:
		if e.Value <= 0 {
			return errors.New("percent must be positive")
		}
	case EffectFixedDOT:
		if e.Value <= 0 || e.Cap <= 0 || e.Turns <= 0 {
			return errors.New("fixed dot needs value, cap and turns")
		}
	case EffectField:
		if e.Field == "" || e.Turns <= 0 {
			return errors.New("field needs a name and turns")
		}
	case EffectComposite:
		if e.Composite == nil || e.Composite.Turns <= 0 {
			return errors.New("composite needs a bundle with turns")
		}
	default:
		if e.Turns <= 0 {
			return errors.New("timed effect needs turns")
		}
	}
	return nil
}

// SuggestTechnique returns the known technique closest to name, matching
// ids and display names. ok is false when nothing is close enough.
func (c *Catalog) SuggestTechnique(name string) (model.TechniqueID, bool) {
	cands := make(map[string]string, len(c.Techniques)*2)
	for id, t := range c.Techniques {
		cands[string(id)] = string(id)
		cands[strings.ToLower(t.Name)] = string(id)
	}
	id, ok := suggest(name, cands)
	return model.TechniqueID(id), ok
}

// SuggestItem returns the known item closest to name.
func (c *Catalog) SuggestItem(name string) (model.ItemID, bool) {
	cands := make(map[string]string, len(c.Items)*2)
	for id, it := range c.Items {
		cands[string(id)] = string(id)
		cands[strings.ToLower(it.Name)] = string(id)
	}
	id, ok := suggest(name, cands)
	return model.ItemID(id), ok
}

// suggest picks the candidate key with the smallest edit distance. Ties go
// to the lexically smallest key so results are stable.
func suggest(name string, cands map[string]string) (string, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return "", false
	}
	keys := make([]string, 0, len(cands))
	for k := range cands {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	best, bestDist := "", maxSuggestDistance+1
	for _, k := range keys {
		d := levenshtein.ComputeDistance(name, k)
		if d < bestDist {
			best, bestDist = cands[k], d
		}
	}
	if best == "" {
		return "", false
	}
	return best, true
}
