package ailment

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/udisondev/beastclash/internal/data"
	"github.com/udisondev/beastclash/internal/game/rng"
	"github.com/udisondev/beastclash/internal/game/turn"
	"github.com/udisondev/beastclash/internal/model"
)

func newRegistry(src rng.Source) *Registry {
	return NewRegistry(data.DefaultCatalog().AilmentDefs(), src)
}

func newCombatant(maxHP int) *model.Combatant {
	return model.NewCombatant("Target", "sparkit", 20, model.Stats{HP: maxHP, Attack: 10, Defense: 10, Speed: 10})
}

func TestBurnTicks(t *testing.T) {
	r := newRegistry(rng.Fixed(0))
	c := newCombatant(160)
	log := turn.NewResult(1)

	ok, err := r.Apply(log, model.SideOpponent, c, data.Burn, 3)
	require.NoError(t, err)
	require.True(t, ok)

	for round, wantLeft := range []int{2, 1, 0} {
		before := c.HP
		r.EndOfRound(log, model.SideOpponent, c)
		assert.Equal(t, 20, before-c.HP, "round %d", round+1)
		if wantLeft > 0 {
			assert.Equal(t, wantLeft, c.Status.Weakening[data.Burn].RemainingTurns)
		}
	}
	assert.False(t, c.Status.HasWeakening(data.Burn), "burn removed at zero")
	assert.Equal(t, 100, c.HP)

	r.EndOfRound(log, model.SideOpponent, c)
	assert.Equal(t, 100, c.HP, "no damage once expired")

	assert.Equal(t, 3, log.Count(turn.KindAilmentDamage))
	assert.Equal(t, 1, log.Count(turn.KindAilmentRemoved))
}

func TestTickDamage(t *testing.T) {
	assert.Equal(t, 20, TickDamage(160))
	assert.Equal(t, 1, TickDamage(7))
	assert.Equal(t, 1, TickDamage(1))
	assert.Zero(t, TickDamage(0))
	assert.Equal(t, 12, TickDamage(100))
}

func TestApply_Duration(t *testing.T) {
	c := newCombatant(80)
	log := turn.NewResult(1)

	// poison rolls in [3,5]
	_, err := newRegistry(rng.Fixed(0)).Apply(log, model.SidePlayer, c, data.Poison, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Status.Weakening[data.Poison].RemainingTurns)

	_, err = newRegistry(rng.Fixed(99)).Apply(log, model.SidePlayer, c, data.Poison, 0)
	require.NoError(t, err)
	assert.Equal(t, 5, c.Status.Weakening[data.Poison].RemainingTurns)

	_, err = newRegistry(rng.Fixed(0)).Apply(log, model.SidePlayer, c, "rot", 0)
	assert.ErrorIs(t, err, ErrUnknownAilment)
}

func TestControl_Replaces(t *testing.T) {
	r := newRegistry(rng.Fixed(0))
	c := newCombatant(80)
	log := turn.NewResult(1)

	_, err := r.Apply(log, model.SidePlayer, c, data.Sleep, 3)
	require.NoError(t, err)
	_, err = r.Apply(log, model.SidePlayer, c, data.Paralysis, 2)
	require.NoError(t, err)

	require.NotNil(t, c.Status.Control)
	assert.Equal(t, data.Paralysis, c.Status.Control.Type)
	assert.Equal(t, 2, c.Status.Control.RemainingTurns)

	evs := log.Events()
	require.Len(t, evs, 3)
	assert.Equal(t, turn.AilmentRemoved{Side: model.SidePlayer, Combatant: c.ID, Ailment: data.Sleep, Reason: ReasonReplaced}, evs[1])
	applied, ok := evs[2].(turn.AilmentApplied)
	require.True(t, ok)
	assert.Equal(t, data.Sleep, applied.Replaced)
}

func TestCanAct(t *testing.T) {
	r := newRegistry(rng.Fixed(0))
	c := newCombatant(80)
	log := turn.NewResult(1)

	assert.True(t, r.CanAct(c, 1).CanAct)

	_, err := r.Apply(log, model.SidePlayer, c, data.Freeze, 2)
	require.NoError(t, err)
	ref := r.CanAct(c, 1)
	assert.False(t, ref.CanAct)
	assert.Equal(t, data.Freeze, ref.StatusType)
	assert.Equal(t, "freeze prevents acting", ref.Reason)

	r.EndOfRound(log, model.SidePlayer, c)
	assert.False(t, r.CanAct(c, 2).CanAct)
	r.EndOfRound(log, model.SidePlayer, c)
	assert.True(t, r.CanAct(c, 3).CanAct, "freeze expired")
}

func TestOnHit_SleepBreaks(t *testing.T) {
	r := newRegistry(rng.Fixed(0))
	c := newCombatant(80)
	log := turn.NewResult(4)

	_, err := r.Apply(log, model.SidePlayer, c, data.Sleep, 3)
	require.NoError(t, err)

	assert.True(t, r.OnHit(log, model.SidePlayer, c, 4))
	assert.Nil(t, c.Status.Control)

	ref := r.CanAct(c, 4)
	assert.False(t, ref.CanAct, "blocked for the round it woke up in")
	assert.Equal(t, data.Sleep, ref.StatusType)
	assert.True(t, r.CanAct(c, 5).CanAct)

	_, err = r.Apply(log, model.SidePlayer, c, data.Paralysis, 3)
	require.NoError(t, err)
	assert.False(t, r.OnHit(log, model.SidePlayer, c, 5), "paralysis does not break on hit")
	assert.NotNil(t, c.Status.Control)
}

func TestOnHit_ReportsTheAilmentItBroke(t *testing.T) {
	defs := append(data.DefaultCatalog().AilmentDefs(), data.AilmentDef{
		ID: "daze", Name: "Daze", Category: data.Control, MinTurns: 1, MaxTurns: 2, BreaksOnHit: true,
	})
	r := NewRegistry(defs, rng.Fixed(0))
	c := newCombatant(80)
	log := turn.NewResult(3)

	_, err := r.Apply(log, model.SidePlayer, c, data.Sleep, 3)
	require.NoError(t, err)
	require.True(t, r.OnHit(log, model.SidePlayer, c, 3))

	ref := r.CanAct(c, 3)
	assert.False(t, ref.CanAct)
	assert.Equal(t, data.Sleep, ref.StatusType)
	assert.Equal(t, "startled awake", ref.Reason)

	_, err = r.Apply(log, model.SidePlayer, c, "daze", 2)
	require.NoError(t, err)
	require.True(t, r.OnHit(log, model.SidePlayer, c, 4))
	assert.Equal(t, model.AilmentID("daze"), r.CanAct(c, 4).StatusType)
}

func TestControl_CountdownIsLogged(t *testing.T) {
	r := newRegistry(rng.Fixed(0))
	c := newCombatant(80)
	_, err := r.Apply(turn.NewResult(1), model.SideOpponent, c, data.Paralysis, 3)
	require.NoError(t, err)

	for _, want := range []int{2, 1} {
		log := turn.NewResult(1)
		r.EndOfRound(log, model.SideOpponent, c)
		require.Equal(t, want, c.Status.Control.RemainingTurns)
		assert.Equal(t, []turn.Event{turn.AilmentTicked{
			Side:           model.SideOpponent,
			Combatant:      c.ID,
			Ailment:        data.Paralysis,
			RemainingTurns: want,
		}}, log.Events())
	}

	log := turn.NewResult(1)
	r.EndOfRound(log, model.SideOpponent, c)
	assert.Nil(t, c.Status.Control)
	assert.Zero(t, log.Count(turn.KindAilmentTicked), "expiry is reported by removal alone")
	assert.Equal(t, 1, log.Count(turn.KindAilmentRemoved))
}

func TestAilmentDamage_MatchesHPLost(t *testing.T) {
	r := newRegistry(rng.Fixed(0))
	c := newCombatant(160)
	c.SetHP(5)
	log := turn.NewResult(1)
	_, err := r.Apply(log, model.SideOpponent, c, data.Burn, 3)
	require.NoError(t, err)

	log = turn.NewResult(1)
	r.EndOfRound(log, model.SideOpponent, c)

	evs := log.Events()
	require.GreaterOrEqual(t, len(evs), 2)
	hc, ok := evs[0].(turn.HealthChanged)
	require.True(t, ok, "health moves before the tick is reported")
	assert.Equal(t, -5, hc.Delta)

	var tick turn.AilmentDamage
	for _, ev := range evs {
		if d, ok := ev.(turn.AilmentDamage); ok {
			tick = d
		}
	}
	assert.Equal(t, 5, tick.Amount, "clamped to the HP the combatant had")
	assert.Equal(t, 1, log.Count(turn.KindIncapacitated))
}

func TestCure(t *testing.T) {
	r := newRegistry(rng.Fixed(0))
	c := newCombatant(80)
	log := turn.NewResult(1)

	_, err := r.Apply(log, model.SidePlayer, c, data.Poison, 3)
	require.NoError(t, err)
	assert.True(t, r.Cure(log, model.SidePlayer, c, data.Poison))
	assert.False(t, r.Cure(log, model.SidePlayer, c, data.Poison))
	assert.True(t, c.Status.Empty())
}

type iconProvider struct{}

func (iconProvider) AilmentIcon(def data.AilmentDef) string { return "icons/" + def.Icon + ".png" }

func TestDisplay(t *testing.T) {
	r := newRegistry(rng.Fixed(0))
	c := newCombatant(80)
	log := turn.NewResult(1)
	for _, id := range []model.AilmentID{data.Poison, data.Burn, data.Fear} {
		_, err := r.Apply(log, model.SidePlayer, c, id, 2)
		require.NoError(t, err)
	}

	shown := r.Display(c, nil)
	require.Len(t, shown, 3)
	assert.Equal(t, data.Burn, shown[0].ID)
	assert.Equal(t, data.Poison, shown[1].ID)
	assert.Equal(t, data.Fear, shown[2].ID)
	assert.Empty(t, shown[0].Icon)

	shown = r.Display(c, iconProvider{})
	assert.Equal(t, "icons/status_burn.png", shown[0].Icon)
}

// At most one control ailment is active, and it is always the last one applied.
func TestPropertyControl_Exclusive(t *testing.T) {
	controls := []model.AilmentID{data.Sleep, data.Paralysis, data.Freeze, data.Fear}
	rapid.Check(t, func(rt *rapid.T) {
		r := newRegistry(rng.New(rapid.Uint64().Draw(rt, "seed")))
		c := newCombatant(80)
		log := turn.NewResult(1)

		seq := rapid.SliceOfN(rapid.IntRange(0, len(controls)-1), 1, 20).Draw(rt, "seq")
		for _, i := range seq {
			if _, err := r.Apply(log, model.SidePlayer, c, controls[i], 0); err != nil {
				rt.Fatal(err)
			}
			if c.Status.Control == nil || c.Status.Control.Type != controls[i] {
				rt.Fatalf("control = %+v, want %s", c.Status.Control, controls[i])
			}
		}
	})
}

// Applying one weakening ailment never shortens or removes another.
func TestPropertyWeakening_Independent(t *testing.T) {
	weak := []model.AilmentID{data.Poison, data.Burn, data.Frostbite}
	rapid.Check(t, func(rt *rapid.T) {
		r := newRegistry(rng.New(rapid.Uint64().Draw(rt, "seed")))
		c := newCombatant(400)
		log := turn.NewResult(1)

		seq := rapid.SliceOfN(rapid.IntRange(0, len(weak)-1), 1, 20).Draw(rt, "seq")
		for _, i := range seq {
			before := c.Status.Clone()
			if _, err := r.Apply(log, model.SideOpponent, c, weak[i], 0); err != nil {
				rt.Fatal(err)
			}
			for id, turns := range before.Weakening {
				if id == weak[i] {
					continue
				}
				if c.Status.Weakening[id] != turns {
					rt.Fatalf("%s changed from %v to %v", id, turns, c.Status.Weakening[id])
				}
			}
		}
	})
}

// Serializing the status state mid-battle and resuming yields the same
// countdowns and damage as never serializing.
func TestPropertyStatus_SerializeResume(t *testing.T) {
	all := []model.AilmentID{data.Poison, data.Burn, data.Frostbite, data.Sleep, data.Paralysis}
	rapid.Check(t, func(rt *rapid.T) {
		r := newRegistry(rng.New(rapid.Uint64().Draw(rt, "seed")))
		maxHP := rapid.IntRange(1, 500).Draw(rt, "maxHP")
		orig := newCombatant(maxHP)
		log := turn.NewResult(1)

		for _, i := range rapid.SliceOfN(rapid.IntRange(0, len(all)-1), 1, 5).Draw(rt, "apply") {
			if _, err := r.Apply(log, model.SidePlayer, orig, all[i], 0); err != nil {
				rt.Fatal(err)
			}
		}

		b, err := json.Marshal(orig.Status)
		if err != nil {
			rt.Fatal(err)
		}
		resumed := newCombatant(maxHP)
		if err := json.Unmarshal(b, &resumed.Status); err != nil {
			rt.Fatal(err)
		}

		rounds := rapid.IntRange(1, 8).Draw(rt, "rounds")
		for range rounds {
			a, z := turn.NewResult(1), turn.NewResult(1)
			r.EndOfRound(a, model.SidePlayer, orig)
			r.EndOfRound(z, model.SidePlayer, resumed)

			if orig.HP != resumed.HP {
				rt.Fatalf("hp diverged: %d vs %d", orig.HP, resumed.HP)
			}
			if a.Count(turn.KindAilmentDamage) != z.Count(turn.KindAilmentDamage) {
				rt.Fatalf("damage ticks diverged")
			}
		}
		assert.Equal(rt, orig.Status.Control, resumed.Status.Control)
		assert.Equal(rt, len(orig.Status.Weakening), len(resumed.Status.Weakening))
		for id, turns := range orig.Status.Weakening {
			assert.Equal(rt, turns, resumed.Status.Weakening[id])
		}
	})
}
