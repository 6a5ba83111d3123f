package battle

import "fmt"

// Kind distinguishes encounters with a wild creature from battles against
// a fixed opponent.
type Kind string

const (
	Wild    Kind = "wild"
	Trainer Kind = "trainer"
)

// ParseKind converts a config value into a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case Wild, Trainer:
		return Kind(s), nil
	case "":
		return Wild, nil
	default:
		return "", fmt.Errorf("unknown battle kind %q", s)
	}
}

// FleeRules tunes escape odds. Values are percent.
type FleeRules struct {
	Base       int `yaml:"base" env:"BASE"`
	SpeedBonus int `yaml:"speed_bonus" env:"SPEED_BONUS"`
	PerAttempt int `yaml:"per_attempt" env:"PER_ATTEMPT"`
	Min        int `yaml:"min" env:"MIN"`
	Max        int `yaml:"max" env:"MAX"`
}

// CaptureRules tunes capsule odds.
type CaptureRules struct {
	// BaseRate scales every capsule's catch rate, in percent.
	BaseRate       int `yaml:"base_rate" env:"BASE_RATE"`
	WeakeningBonus int `yaml:"weakening_bonus" env:"WEAKENING_BONUS"`
	ControlBonus   int `yaml:"control_bonus" env:"CONTROL_BONUS"`
}

// Config holds per-battle rules.
type Config struct {
	Kind    Kind
	Flee    FleeRules
	Capture CaptureRules
}

// DefaultFleeRules: 50% base, ±20% for speed, +10% per failed attempt,
// clamped to [5, 95].
func DefaultFleeRules() FleeRules {
	return FleeRules{Base: 50, SpeedBonus: 20, PerAttempt: 10, Min: 5, Max: 95}
}

// DefaultCaptureRules returns the stock capture tuning.
func DefaultCaptureRules() CaptureRules {
	return CaptureRules{BaseRate: 100, WeakeningBonus: 5, ControlBonus: 15}
}

// DefaultConfig returns the stock rules for a battle of kind.
func DefaultConfig(kind Kind) Config {
	return Config{
		Kind:    kind,
		Flee:    DefaultFleeRules(),
		Capture: DefaultCaptureRules(),
	}
}
