package data

import "github.com/udisondev/beastclash/internal/model"

// AilmentCategory splits persistent ailments into the two rule families.
type AilmentCategory string

const (
	// Weakening ailments stack and deal damage at round end.
	Weakening AilmentCategory = "weakening"
	// Control ailments are exclusive and stop the combatant from acting.
	Control AilmentCategory = "control"
)

// AilmentDef describes a persistent ailment.
type AilmentDef struct {
	ID          model.AilmentID `yaml:"id"`
	Name        string          `yaml:"name"`
	Category    AilmentCategory `yaml:"category"`
	MinTurns    int             `yaml:"min_turns"`
	MaxTurns    int             `yaml:"max_turns"`
	BreaksOnHit bool            `yaml:"breaks_on_hit"`
	Icon        string          `yaml:"icon"`
}

// Ailment ids shipped with the default catalog.
const (
	Poison    model.AilmentID = "poison"
	Burn      model.AilmentID = "burn"
	Frostbite model.AilmentID = "frostbite"
	Sleep     model.AilmentID = "sleep"
	Paralysis model.AilmentID = "paralysis"
	Freeze    model.AilmentID = "freeze"
	Fear      model.AilmentID = "fear"
)

var ailmentDefs = []AilmentDef{
	{ID: Poison, Name: "Poison", Category: Weakening, MinTurns: 3, MaxTurns: 5, Icon: "status_poison"},
	{ID: Burn, Name: "Burn", Category: Weakening, MinTurns: 3, MaxTurns: 4, Icon: "status_burn"},
	{ID: Frostbite, Name: "Frostbite", Category: Weakening, MinTurns: 2, MaxTurns: 4, Icon: "status_frostbite"},
	{ID: Sleep, Name: "Sleep", Category: Control, MinTurns: 2, MaxTurns: 4, BreaksOnHit: true, Icon: "status_sleep"},
	{ID: Paralysis, Name: "Paralysis", Category: Control, MinTurns: 2, MaxTurns: 3, Icon: "status_paralysis"},
	{ID: Freeze, Name: "Freeze", Category: Control, MinTurns: 1, MaxTurns: 3, Icon: "status_freeze"},
	{ID: Fear, Name: "Fear", Category: Control, MinTurns: 1, MaxTurns: 2, Icon: "status_fear"},
}
