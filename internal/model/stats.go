package model

// Stats holds the six base stats of a combatant at its current level.
type Stats struct {
	HP        int `json:"hp" yaml:"hp"`
	Attack    int `json:"attack" yaml:"attack"`
	Defense   int `json:"defense" yaml:"defense"`
	SpAttack  int `json:"sp_attack" yaml:"sp_attack"`
	SpDefense int `json:"sp_defense" yaml:"sp_defense"`
	Speed     int `json:"speed" yaml:"speed"`
}

// Stat identifies a stage counter.
type Stat int8

const (
	StatAttack Stat = iota
	StatDefense
	StatSpAttack
	StatSpDefense
	StatSpeed
	StatAccuracy

	statCount
)

// Stage bounds.
const (
	MinStage = -6
	MaxStage = 6
)

var statNames = [statCount]string{"attack", "defense", "sp_attack", "sp_defense", "speed", "accuracy"}

func (s Stat) String() string {
	if s < 0 || s >= statCount {
		return "unknown"
	}
	return statNames[s]
}

// ParseStat resolves a stat by name.
func ParseStat(name string) (Stat, bool) {
	for i, n := range statNames {
		if n == name {
			return Stat(i), true
		}
	}
	return 0, false
}

func (s Stat) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Stat) UnmarshalText(b []byte) error {
	v, ok := ParseStat(string(b))
	if !ok {
		return &UnknownStatError{Name: string(b)}
	}
	*s = v
	return nil
}

// UnknownStatError is returned when a stat name cannot be resolved.
type UnknownStatError struct {
	Name string
}

func (e *UnknownStatError) Error() string {
	return "unknown stat: " + e.Name
}

// AllStats enumerates the stage counters in display order.
func AllStats() []Stat {
	out := make([]Stat, statCount)
	for i := range out {
		out[i] = Stat(i)
	}
	return out
}

// StatStages holds the six stage counters of one combatant for one battle.
type StatStages struct {
	values [statCount]int
}

// Get returns the current stage of s.
func (st *StatStages) Get(s Stat) int {
	if s < 0 || s >= statCount {
		return 0
	}
	return st.values[s]
}

// Change adds delta to the stage of s, clamped to [MinStage, MaxStage].
// Returns the delta actually applied; zero means the stored value did not move.
func (st *StatStages) Change(s Stat, delta int) int {
	if s < 0 || s >= statCount || delta == 0 {
		return 0
	}
	before := st.values[s]
	after := min(max(before+delta, MinStage), MaxStage)
	st.values[s] = after
	return after - before
}

// Reset zeroes every counter. Called at battle end only.
func (st *StatStages) Reset() {
	st.values = [statCount]int{}
}

// Values returns a copy of the counters keyed by stat.
func (st *StatStages) Values() map[Stat]int {
	out := make(map[Stat]int, statCount)
	for i, v := range st.values {
		out[Stat(i)] = v
	}
	return out
}
