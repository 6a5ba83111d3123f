package battle

import (
	"github.com/udisondev/beastclash/internal/game/rng"
	"github.com/udisondev/beastclash/internal/model"
)

// OpponentPolicy picks the technique slot the opponent uses this round.
// A negative slot means it has nothing to use.
type OpponentPolicy interface {
	ChooseSlot(self *model.Combatant, target model.Snapshot, src rng.Source) int
}

// RandomPolicy picks uniformly among techniques with uses left.
type RandomPolicy struct{}

func (RandomPolicy) ChooseSlot(self *model.Combatant, _ model.Snapshot, src rng.Source) int {
	usable := self.UsableSlots()
	if len(usable) == 0 {
		return -1
	}
	return usable[src.IntN(len(usable))]
}

// ScriptedPolicy replays fixed slots in order and then repeats the last
// one. Handy for reproducible fights.
type ScriptedPolicy struct {
	Slots []int
	next  int
}

func (p *ScriptedPolicy) ChooseSlot(_ *model.Combatant, _ model.Snapshot, _ rng.Source) int {
	if len(p.Slots) == 0 {
		return -1
	}
	slot := p.Slots[min(p.next, len(p.Slots)-1)]
	p.next++
	return slot
}
