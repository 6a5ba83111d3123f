package combat

import (
	"github.com/udisondev/beastclash/internal/game/turn"
	"github.com/udisondev/beastclash/internal/model"
)

// ExecuteUntilHit repeats technique slot until it connects and returns the
// result with the number of attempts. Uses are restored before each try.
func ExecuteUntilHit(ex *Executor, arena *model.Arena, side model.Side, slot, maxAttempts int) (Executed, int) {
	att := arena.Active(side)
	for attempt := range maxAttempts {
		if slot < len(att.Techniques) {
			att.Techniques[slot].Uses = att.Techniques[slot].MaxUses
		}
		res := ex.Execute(turn.NewResult(attempt+1), arena, attempt+1, side, slot)
		if res.Hit {
			return res, attempt + 1
		}
	}
	return Executed{}, maxAttempts
}

// ExecuteUntilDown repeats technique slot until the defender is down.
// Returns the number of attempts.
func ExecuteUntilDown(ex *Executor, arena *model.Arena, side model.Side, slot, maxAttempts int) int {
	def := arena.Active(side.Other())
	att := arena.Active(side)
	for attempt := range maxAttempts {
		if def.IsIncapacitated() {
			return attempt
		}
		if slot < len(att.Techniques) {
			att.Techniques[slot].Uses = att.Techniques[slot].MaxUses
		}
		ex.Execute(turn.NewResult(attempt+1), arena, attempt+1, side, slot)
	}
	return maxAttempts
}
