package battle

import (
	"github.com/google/uuid"

	"github.com/udisondev/beastclash/internal/game/combat"
	"github.com/udisondev/beastclash/internal/game/turn"
	"github.com/udisondev/beastclash/internal/model"
)

// Conclusion is handed to the session layer once a battle ends.
type Conclusion struct {
	BattleID uuid.UUID       `json:"battle_id"`
	Winner   model.Side      `json:"winner"`
	Reason   turn.EndReason  `json:"reason"`
	Rounds   int             `json:"rounds"`
	Captured *model.Snapshot `json:"captured,omitempty"`
	Rewards  combat.Rewards  `json:"rewards"`
}

// ConclusionSink receives the conclusion of a battle.
type ConclusionSink interface {
	BattleConcluded(c Conclusion)
}

// SinkFunc adapts a function to ConclusionSink.
type SinkFunc func(Conclusion)

func (f SinkFunc) BattleConcluded(c Conclusion) { f(c) }
