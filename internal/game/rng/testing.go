package rng

// Fixed returns the same value for every IntN call, clamped into [0, n).
// Useful for forcing rolls in tests.
type Fixed int

func (f Fixed) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	v := int(f)
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}

// Sequence replays values in order, each clamped into [0, n). After the
// last value it keeps returning the final one.
type Sequence struct {
	Values []int
	pos    int
}

// NewSequence builds a replaying source.
func NewSequence(values ...int) *Sequence {
	return &Sequence{Values: values}
}

func (s *Sequence) IntN(n int) int {
	if n <= 0 || len(s.Values) == 0 {
		return 0
	}
	i := s.pos
	if i >= len(s.Values) {
		i = len(s.Values) - 1
	} else {
		s.pos++
	}
	return Fixed(s.Values[i]).IntN(n)
}

// Drawn reports how many values have been consumed.
func (s *Sequence) Drawn() int {
	return s.pos
}
