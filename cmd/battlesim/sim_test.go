package main

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/beastclash/internal/config"
	"github.com/udisondev/beastclash/internal/data"
	"github.com/udisondev/beastclash/internal/db"
	"github.com/udisondev/beastclash/internal/game/turn"
	"github.com/udisondev/beastclash/internal/model"
	"github.com/udisondev/beastclash/internal/testutil"
)

func simConfig(script ...string) config.Battle {
	cfg := config.DefaultBattle()
	cfg.Sim.Battles = 4
	cfg.Sim.Concurrency = 2
	cfg.Sim.MaxRounds = 50
	if len(script) > 0 {
		cfg.Sim.Script = script
	}
	return cfg
}

func newTestSimulator(t *testing.T, cfg config.Battle, archive archiver) *simulator {
	t.Helper()
	sim, err := newSimulator(cfg, data.DefaultCatalog(), archive)
	require.NoError(t, err)
	return sim
}

func TestSimulator_Deterministic(t *testing.T) {
	ctx := testutil.ContextWithTimeout(t, 30*time.Second)
	sim := newTestSimulator(t, simConfig(), nil)

	first, err := sim.runAll(ctx, 42)
	require.NoError(t, err)
	second, err := sim.runAll(ctx, 42)
	require.NoError(t, err)
	require.Len(t, first, 4)

	for i := range first {
		assert.Equal(t, uint64(42+i), first[i].Seed)
		assert.NotEqual(t, first[i].BattleID, second[i].BattleID)
		first[i].BattleID, second[i].BattleID = uuid.Nil, uuid.Nil
	}
	assert.Equal(t, first, second, "same seeds replay the same battles")
}

func TestSimulator_Capture(t *testing.T) {
	ctx := testutil.ContextWithTimeout(t, 30*time.Second)
	cfg := simConfig("capture:master_capsule")
	cfg.Sim.Bag = map[string]int{"master_capsule": 10}
	sim := newTestSimulator(t, cfg, nil)

	reports, err := sim.runAll(ctx, 7)
	require.NoError(t, err)
	for _, r := range reports {
		assert.True(t, r.Finished)
		assert.Equal(t, turn.EndCaptured, r.Reason)
		assert.Equal(t, model.SidePlayer, r.Winner)
		assert.Equal(t, model.SpeciesID("sproutle"), r.Captured)
		assert.Equal(t, 1, r.Rounds)
		assert.Zero(t, r.Exp)
	}
}

func TestSimulator_RejectedFallsBack(t *testing.T) {
	ctx := testutil.ContextWithTimeout(t, 30*time.Second)
	// Potion at full health is void; the simulator attacks instead.
	sim := newTestSimulator(t, simConfig("item:potion"), nil)

	reports, err := sim.runAll(ctx, 3)
	require.NoError(t, err)
	for _, r := range reports {
		assert.Positive(t, r.Rejected)
		assert.Positive(t, r.Rounds)
	}
}

func TestSimulator_TrainerFleeForbidden(t *testing.T) {
	ctx := testutil.ContextWithTimeout(t, 30*time.Second)
	cfg := simConfig("flee")
	cfg.Kind = "trainer"
	sim := newTestSimulator(t, cfg, nil)

	reports, err := sim.runAll(ctx, 11)
	require.NoError(t, err)
	for _, r := range reports {
		assert.NotEqual(t, turn.EndFled, r.Reason)
		assert.Positive(t, r.Rejected)
	}
}

func TestNewSimulator_BadScript(t *testing.T) {
	_, err := newSimulator(simConfig("attack:embr"), data.DefaultCatalog(), nil)
	assert.ErrorIs(t, err, ErrBadScript)

	cfg := simConfig()
	cfg.Sim.Script = nil
	_, err = newSimulator(cfg, data.DefaultCatalog(), nil)
	assert.ErrorIs(t, err, ErrBadScript)
}

type failingArchive struct{}

func (failingArchive) Store(context.Context, uuid.UUID, []*turn.Result, map[model.CombatantID]model.StatusState) error {
	return testutil.ErrSimulated
}

func TestSimulator_ArchiveError(t *testing.T) {
	ctx := testutil.ContextWithTimeout(t, 30*time.Second)
	sim := newTestSimulator(t, simConfig(), failingArchive{})

	_, err := sim.runAll(ctx, 1)
	assert.ErrorIs(t, err, testutil.ErrSimulated)
}

func TestSimulator_Persist(t *testing.T) {
	dsn := testutil.StartPostgres(t)
	ctx := testutil.ContextWithTimeout(t, 60*time.Second)

	database, err := db.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(database.Close)

	sim := newTestSimulator(t, simConfig(), database.Archive())
	reports, err := sim.runAll(ctx, 99)
	require.NoError(t, err)

	for _, r := range reports {
		rounds, err := database.Reports().ListRounds(ctx, r.BattleID)
		require.NoError(t, err)
		assert.Len(t, rounds, r.Rounds)

		ended, err := database.Reports().Ended(ctx, r.BattleID)
		require.NoError(t, err)
		assert.Equal(t, r.Finished, ended)
	}
}
