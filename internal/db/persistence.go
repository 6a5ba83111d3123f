package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/beastclash/internal/game/turn"
	"github.com/udisondev/beastclash/internal/model"
)

// BattleArchive атомарно сохраняет итог боя: логи раундов и StatusState
// всех участников.
type BattleArchive struct {
	pool     *pgxpool.Pool
	statuses *StatusRepository
	reports  *ReportRepository
}

// NewBattleArchive создаёт новый сервис.
func NewBattleArchive(pool *pgxpool.Pool, statuses *StatusRepository, reports *ReportRepository) *BattleArchive {
	return &BattleArchive{
		pool:     pool,
		statuses: statuses,
		reports:  reports,
	}
}

// Store saves the round logs and status states of one battle in a single
// transaction: either everything is stored or nothing is.
func (a *BattleArchive) Store(ctx context.Context, battleID uuid.UUID, rounds []*turn.Result, states map[model.CombatantID]model.StatusState) error {
	tx, err := a.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction for battle %s: %w", battleID, err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && err.Error() != "tx is closed" {
			slog.Error("rollback failed", "battle", battleID, "error", err)
		}
	}()

	// 1. Round logs
	if err := a.reports.SaveTx(ctx, tx, battleID, rounds); err != nil {
		return fmt.Errorf("saving rounds of battle %s: %w", battleID, err)
	}

	// 2. Status states
	if err := a.statuses.SaveTx(ctx, tx, states); err != nil {
		return fmt.Errorf("saving statuses of battle %s: %w", battleID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit battle %s: %w", battleID, err)
	}

	slog.Debug("battle archived",
		"battle", battleID,
		"rounds", len(rounds),
		"combatants", len(states))
	return nil
}

// StatesOf collects the status state of every combatant in the arena.
func StatesOf(arena *model.Arena) map[model.CombatantID]model.StatusState {
	out := make(map[model.CombatantID]model.StatusState)
	arena.Each(func(_ model.Side, c *model.Combatant) {
		out[c.ID] = c.Status.Clone()
	})
	return out
}
