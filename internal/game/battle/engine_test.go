package battle

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/beastclash/internal/data"
	"github.com/udisondev/beastclash/internal/game/effect"
	"github.com/udisondev/beastclash/internal/game/rng"
	"github.com/udisondev/beastclash/internal/game/turn"
	"github.com/udisondev/beastclash/internal/model"
)

func fighter(t *testing.T, name string, species model.SpeciesID, hp, speed int, techs ...model.TechniqueID) *model.Combatant {
	t.Helper()
	c := model.NewCombatant(name, species, 20,
		model.Stats{HP: hp, Attack: 50, Defense: 50, SpAttack: 50, SpDefense: 50, Speed: speed}, "normal")
	cat := data.DefaultCatalog()
	for _, id := range techs {
		tech, ok := cat.Technique(id)
		require.True(t, ok, "technique %s", id)
		require.True(t, c.Learn(id, tech.MaxUses))
	}
	return c
}

type setup struct {
	engine   *Engine
	arena    *model.Arena
	player   *model.Party
	opponent *model.Party
}

func newSetup(t *testing.T, kind Kind, src rng.Source, player, opponent []*model.Combatant, opts ...func(*Collaborators)) setup {
	t.Helper()
	pp := model.NewParty(player...)
	op := model.NewParty(opponent...)
	arena := model.NewArena(pp, op)

	collab := DefaultCollaborators(data.DefaultCatalog(), src, 0)
	for _, o := range opts {
		o(&collab)
	}
	e, err := New(arena, collab, DefaultConfig(kind))
	require.NoError(t, err)
	return setup{engine: e, arena: arena, player: pp, opponent: op}
}

func (s setup) resolve(t *testing.T, in Intent) *turn.Result {
	t.Helper()
	require.NoError(t, s.engine.StageIntent(in))
	res, err := s.engine.ResolveRound(context.Background())
	require.NoError(t, err)
	require.True(t, res.Sealed())
	return res
}

func eventsOf[T turn.Event](res *turn.Result) []T {
	var out []T
	for _, ev := range res.Events() {
		if v, ok := ev.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

func castsBy(res *turn.Result, side model.Side) int {
	n := 0
	for _, c := range eventsOf[turn.TechniqueCast](res) {
		if c.Side == side {
			n++
		}
	}
	return n
}

func TestNew_MissingCollaborator(t *testing.T) {
	arena := model.NewArena(
		model.NewParty(fighter(t, "P", "sparkit", 100, 50, "tackle")),
		model.NewParty(fighter(t, "O", "puddlet", 100, 30, "tackle")),
	)

	_, err := New(arena, Collaborators{}, DefaultConfig(Wild))
	require.ErrorIs(t, err, ErrMissingCollaborator)

	collab := DefaultCollaborators(data.DefaultCatalog(), rng.Fixed(0), 0)
	collab.Executor = nil
	_, err = New(arena, collab, DefaultConfig(Wild))
	require.ErrorIs(t, err, ErrMissingCollaborator)

	down := fighter(t, "D", "puddlet", 100, 30, "tackle")
	down.SetHP(0)
	_, err = New(model.NewArena(model.NewParty(down), arena.Party(model.SideOpponent)),
		DefaultCollaborators(data.DefaultCatalog(), rng.Fixed(0), 0), DefaultConfig(Wild))
	require.ErrorIs(t, err, ErrInvalidArena)
}

func TestResolveRound_NoIntent(t *testing.T) {
	s := newSetup(t, Wild, rng.Fixed(0),
		[]*model.Combatant{fighter(t, "P", "sparkit", 100, 50, "tackle")},
		[]*model.Combatant{fighter(t, "O", "puddlet", 100, 30, "tackle")})

	res, err := s.engine.ResolveRound(context.Background())
	require.ErrorIs(t, err, ErrNoStagedIntent)
	require.NotNil(t, res)
	out := res.Outcome()
	assert.True(t, out.ActionRejected)
	assert.Equal(t, turn.RejectInvalidAction, out.RejectReason)
	assert.Zero(t, res.Len())
	assert.Zero(t, s.engine.Round())
	assert.Equal(t, PhaseChoosing, s.engine.Phase())
}

func TestStageIntent_Twice(t *testing.T) {
	s := newSetup(t, Wild, rng.Fixed(0),
		[]*model.Combatant{fighter(t, "P", "sparkit", 100, 50, "tackle")},
		[]*model.Combatant{fighter(t, "O", "puddlet", 100, 30, "tackle")})

	require.NoError(t, s.engine.StageIntent(Flee()))
	require.ErrorIs(t, s.engine.StageIntent(Flee()), ErrIntentAlreadyStaged)
}

func TestFlee_SpeedAdvantage(t *testing.T) {
	s := newSetup(t, Wild, rng.Fixed(69),
		[]*model.Combatant{fighter(t, "P", "sparkit", 100, 50, "tackle")},
		[]*model.Combatant{fighter(t, "O", "puddlet", 100, 30, "tackle")})

	res := s.resolve(t, Flee())

	flees := eventsOf[turn.FleeAttempted](res)
	require.Len(t, flees, 1)
	assert.Equal(t, 70, flees[0].Chance)
	assert.True(t, flees[0].Success)

	out := res.Outcome()
	assert.True(t, out.BattleEnded)
	assert.Equal(t, turn.EndFled, out.Reason)
	assert.Equal(t, PhaseEnded, s.engine.Phase())
	assert.Zero(t, castsBy(res, model.SideOpponent))

	c, ok := s.engine.Conclusion()
	require.True(t, ok)
	assert.Equal(t, turn.EndFled, c.Reason)

	assert.ErrorIs(t, s.engine.StageIntent(Flee()), ErrBattleEnded)
	_, err := s.engine.ResolveRound(context.Background())
	assert.ErrorIs(t, err, ErrBattleEnded)
}

func TestFlee_FailureGrowsOddsAndOpponentActs(t *testing.T) {
	s := newSetup(t, Wild, rng.Fixed(70),
		[]*model.Combatant{fighter(t, "P", "sparkit", 100, 50, "tackle")},
		[]*model.Combatant{fighter(t, "O", "puddlet", 100, 30, "tackle")})

	res := s.resolve(t, Flee())
	flees := eventsOf[turn.FleeAttempted](res)
	require.Len(t, flees, 1)
	assert.False(t, flees[0].Success)
	assert.Equal(t, 1, castsBy(res, model.SideOpponent))
	assert.False(t, res.Outcome().BattleEnded)

	res = s.resolve(t, Flee())
	flees = eventsOf[turn.FleeAttempted](res)
	require.Len(t, flees, 1)
	assert.Equal(t, 2, flees[0].Attempt)
	assert.Equal(t, 80, flees[0].Chance)
	assert.True(t, flees[0].Success)
}

func TestFlee_ForbiddenInTrainerBattle(t *testing.T) {
	s := newSetup(t, Trainer, rng.Fixed(0),
		[]*model.Combatant{fighter(t, "P", "sparkit", 100, 50, "tackle")},
		[]*model.Combatant{fighter(t, "O", "puddlet", 100, 30, "tackle")})

	res := s.resolve(t, Flee())
	assert.Equal(t, turn.RejectFleeForbidden, res.Outcome().RejectReason)
	assert.Zero(t, res.Len())
	assert.Zero(t, s.engine.Round())
}

func TestItem_FullHealthPotionIsVoid(t *testing.T) {
	player := fighter(t, "P", "sparkit", 100, 50, "tackle")
	opponent := fighter(t, "O", "puddlet", 100, 30, "tackle")
	s := newSetup(t, Wild, rng.Fixed(0), []*model.Combatant{player}, []*model.Combatant{opponent})
	s.player.Bag["potion"] = 2

	res := s.resolve(t, UseItem("potion"))

	out := res.Outcome()
	assert.True(t, out.ActionRejected)
	assert.Equal(t, turn.RejectItemInapplicable, out.RejectReason)
	assert.NotEmpty(t, out.Message)
	assert.Zero(t, res.Len(), "no event appended")
	assert.Zero(t, s.engine.Round(), "round not consumed")
	assert.Equal(t, 2, s.player.Bag["potion"])
	assert.Equal(t, 100, player.HP)
	assert.Equal(t, 35, opponent.Techniques[0].Uses, "opponent did not act")
	assert.Equal(t, PhaseChoosing, s.engine.Phase())

	// The intent is cleared, so the player can choose again.
	res = s.resolve(t, Attack("tackle"))
	assert.Equal(t, 1, res.Round)
}

func TestItem_Heal(t *testing.T) {
	player := fighter(t, "P", "sparkit", 100, 50, "tackle")
	player.HP = 50
	s := newSetup(t, Wild, rng.Fixed(0),
		[]*model.Combatant{player},
		[]*model.Combatant{fighter(t, "O", "puddlet", 100, 30, "growl")})
	s.player.Bag["potion"] = 1

	res := s.resolve(t, UseItem("potion"))

	consumed := eventsOf[turn.ItemConsumed](res)
	require.Len(t, consumed, 1)
	assert.Zero(t, consumed[0].Remaining)
	heals := eventsOf[turn.HealthChanged](res)
	require.NotEmpty(t, heals)
	assert.Equal(t, 20, heals[0].Delta)
	assert.Equal(t, 70, player.HP)
	assert.Equal(t, 1, castsBy(res, model.SideOpponent), "item use cedes an opponent action")
	assert.False(t, s.player.Bag.Has("potion"))
}

func TestItem_Unavailable(t *testing.T) {
	s := newSetup(t, Wild, rng.Fixed(0),
		[]*model.Combatant{fighter(t, "P", "sparkit", 100, 50, "tackle")},
		[]*model.Combatant{fighter(t, "O", "puddlet", 100, 30, "tackle")})

	res := s.resolve(t, UseItem("potion"))
	assert.Equal(t, turn.RejectItemUnavailable, res.Outcome().RejectReason)

	res = s.resolve(t, UseItem("potoin"))
	assert.Equal(t, turn.RejectItemUnavailable, res.Outcome().RejectReason)
	assert.Contains(t, res.Outcome().Message, `"potion"`)
}

func TestItem_RestoresUses(t *testing.T) {
	player := fighter(t, "P", "sparkit", 100, 50, "tackle", "ember")
	player.Techniques[0].Uses = 0
	player.Techniques[1].Uses = 20
	s := newSetup(t, Wild, rng.Fixed(0),
		[]*model.Combatant{player},
		[]*model.Combatant{fighter(t, "O", "puddlet", 100, 30, "growl")})
	s.player.Bag["ether"] = 1

	res := s.resolve(t, UseItem("ether"))
	assert.Equal(t, 10, player.Techniques[0].Uses)
	assert.Equal(t, 25, player.Techniques[1].Uses)

	refilled := 0
	for _, u := range eventsOf[turn.UsesChanged](res) {
		if u.Side == model.SidePlayer {
			refilled++
		}
	}
	assert.Equal(t, 2, refilled, "one event per refilled technique")
}

func TestCapture_ForbiddenInTrainerBattle(t *testing.T) {
	for _, item := range []model.ItemID{"capsule", "master_capsule", "potion", "nothing"} {
		t.Run(string(item), func(t *testing.T) {
			s := newSetup(t, Trainer, rng.Fixed(0),
				[]*model.Combatant{fighter(t, "P", "sparkit", 100, 50, "tackle")},
				[]*model.Combatant{fighter(t, "O", "puddlet", 100, 30, "tackle")})
			s.player.Bag[item] = 3

			res := s.resolve(t, Capture(item))
			assert.Equal(t, turn.RejectCaptureForbidden, res.Outcome().RejectReason)
			assert.Zero(t, res.Len())
			assert.Equal(t, 3, s.player.Bag[item])
		})
	}
}

func TestCapture_Success(t *testing.T) {
	opponent := fighter(t, "O", "puddlet", 100, 30, "tackle")
	var got *Conclusion
	s := newSetup(t, Wild, rng.Fixed(99),
		[]*model.Combatant{fighter(t, "P", "sparkit", 100, 50, "tackle")},
		[]*model.Combatant{opponent},
		func(c *Collaborators) {
			c.Sink = SinkFunc(func(cc Conclusion) { got = &cc })
		})
	s.player.Bag["master_capsule"] = 1

	res := s.resolve(t, Capture("master_capsule"))

	attempts := eventsOf[turn.CaptureAttempted](res)
	require.Len(t, attempts, 1)
	assert.True(t, attempts[0].Success)
	assert.Equal(t, 100, attempts[0].Chance)
	out := res.Outcome()
	assert.Equal(t, turn.EndCaptured, out.Reason)
	assert.Equal(t, model.SidePlayer, out.Winner)
	assert.Zero(t, castsBy(res, model.SideOpponent))

	require.NotNil(t, got)
	require.NotNil(t, got.Captured)
	assert.Equal(t, opponent.ID, got.Captured.ID)
	assert.Zero(t, got.Rewards.Experience, "captures grant no experience")
}

func TestCapture_FailureConsumesItem(t *testing.T) {
	s := newSetup(t, Wild, rng.Fixed(99),
		[]*model.Combatant{fighter(t, "P", "sparkit", 100, 50, "tackle")},
		[]*model.Combatant{fighter(t, "O", "puddlet", 100, 30, "tackle")})
	s.player.Bag["capsule"] = 1

	res := s.resolve(t, Capture("capsule"))

	attempts := eventsOf[turn.CaptureAttempted](res)
	require.Len(t, attempts, 1)
	assert.False(t, attempts[0].Success)
	assert.Equal(t, 13, attempts[0].Chance)
	assert.False(t, s.player.Bag.Has("capsule"))
	assert.Equal(t, 1, castsBy(res, model.SideOpponent))
	assert.False(t, res.Outcome().BattleEnded)
}

func TestExchange_Order(t *testing.T) {
	tests := []struct {
		name      string
		technique model.TechniqueID
		opponent  model.TechniqueID
		bundle    *effect.Composite
		want      model.Side
	}{
		{"faster opponent goes first", "tackle", "tackle", nil, model.SideOpponent},
		{"priority beats speed", "quick_strike", "tackle", nil, model.SidePlayer},
		{"opponent priority beats speed", "tackle", "quick_strike", nil, model.SideOpponent},
		{
			name: "guaranteed priority beats technique priority", technique: "tackle", opponent: "quick_strike",
			bundle: &effect.Composite{Turns: 3, GuaranteedPriority: true},
			want:   model.SidePlayer,
		},
		{
			name: "typed bonus against a matching opponent", technique: "tackle", opponent: "quick_strike",
			bundle: &effect.Composite{Turns: 3, TypePriority: []effect.TypeBonus{{Types: []model.Element{"normal"}, Amount: 2}}},
			want:   model.SidePlayer,
		},
		{
			name: "typed bonus ignored against other types", technique: "tackle", opponent: "quick_strike",
			bundle: &effect.Composite{Turns: 3, TypePriority: []effect.TypeBonus{{Types: []model.Element{"fire"}, Amount: 2}}},
			want:   model.SideOpponent,
		},
		{
			name: "flat and typed bonuses add up", technique: "tackle", opponent: "quick_strike",
			bundle: &effect.Composite{Turns: 3, FlatPriority: 1, TypePriority: []effect.TypeBonus{{Types: []model.Element{"normal"}, Amount: 1}}},
			want:   model.SidePlayer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSetup(t, Wild, rng.Fixed(50),
				[]*model.Combatant{fighter(t, "P", "sparkit", 100, 20, tt.technique)},
				[]*model.Combatant{fighter(t, "O", "puddlet", 100, 80, tt.opponent)})
			if tt.bundle != nil {
				s.engine.c.Effects.ApplyComposite(turn.NewResult(0), model.SidePlayer, *tt.bundle)
			}

			res := s.resolve(t, Attack(tt.technique))

			assert.Equal(t, tt.want, s.engine.ActedFirst())
			casts := eventsOf[turn.TechniqueCast](res)
			require.Len(t, casts, 2)
			assert.Equal(t, tt.want, casts[0].Side)
		})
	}
}

func TestExchange_ShortCircuitAndRewards(t *testing.T) {
	player := fighter(t, "P", "sparkit", 100, 50, "tackle")
	player.Stages.Change(model.StatAttack, 2)
	opponent := fighter(t, "O", "puddlet", 100, 30, "tackle")
	opponent.SetHP(1)
	s := newSetup(t, Wild, rng.Fixed(50), []*model.Combatant{player}, []*model.Combatant{opponent})

	res := s.resolve(t, Attack("tackle"))

	assert.Zero(t, castsBy(res, model.SideOpponent), "a downed defender does not strike back")
	assert.Len(t, eventsOf[turn.Incapacitated](res), 1)
	out := res.Outcome()
	assert.True(t, out.BattleEnded)
	assert.Equal(t, model.SidePlayer, out.Winner)
	assert.Equal(t, turn.EndAllIncapacitated, out.Reason)
	assert.Len(t, eventsOf[turn.BattleEnded](res), 1)

	c, ok := s.engine.Conclusion()
	require.True(t, ok)
	assert.Equal(t, int64(63*20/7), c.Rewards.Experience)
	assert.Zero(t, s.engine.Stages(model.SidePlayer)[model.StatAttack], "stages reset at battle end")
}

func TestForcedSwap(t *testing.T) {
	first := fighter(t, "P1", "sparkit", 100, 10, "tackle")
	first.SetHP(1)
	second := fighter(t, "P2", "voltmouse", 100, 10, "tackle")
	opponent := fighter(t, "O", "puddlet", 100, 80, "tackle")
	s := newSetup(t, Wild, rng.Fixed(50), []*model.Combatant{first, second}, []*model.Combatant{opponent})

	res := s.resolve(t, Attack("tackle"))
	out := res.Outcome()
	assert.True(t, out.NeedSwitch)
	assert.Equal(t, model.SidePlayer, out.SwitchSide)
	assert.Len(t, eventsOf[turn.SwapRequired](res), 1)
	assert.Zero(t, castsBy(res, model.SidePlayer))
	assert.True(t, s.engine.PendingSwap())

	res = s.resolve(t, Attack("tackle"))
	assert.Equal(t, turn.RejectSwitchRequired, res.Outcome().RejectReason)
	assert.Equal(t, 1, s.engine.Round())

	res = s.resolve(t, Swap(0))
	assert.Equal(t, turn.RejectInvalidSwap, res.Outcome().RejectReason)

	res = s.resolve(t, Swap(1))
	swaps := eventsOf[turn.SwapCompleted](res)
	require.Len(t, swaps, 1)
	assert.True(t, swaps[0].Forced)
	assert.Equal(t, second.ID, swaps[0].Combatant)
	assert.Zero(t, castsBy(res, model.SideOpponent), "a forced swap grants no opponent action")
	assert.False(t, s.engine.PendingSwap())
	assert.Equal(t, 2, s.engine.Round())
}

func TestVoluntarySwap_OpponentActs(t *testing.T) {
	second := fighter(t, "P2", "voltmouse", 100, 10, "tackle")
	s := newSetup(t, Wild, rng.Fixed(50),
		[]*model.Combatant{fighter(t, "P1", "sparkit", 100, 10, "tackle"), second},
		[]*model.Combatant{fighter(t, "O", "puddlet", 100, 80, "tackle")})

	res := s.resolve(t, Swap(1))

	swaps := eventsOf[turn.SwapCompleted](res)
	require.Len(t, swaps, 1)
	assert.False(t, swaps[0].Forced)
	assert.Equal(t, 1, castsBy(res, model.SideOpponent))
	assert.Less(t, second.HP, 100, "the incoming combatant takes the hit")
}

func TestTrainerReplacesFaintedOpponent(t *testing.T) {
	o1 := fighter(t, "O1", "puddlet", 100, 10, "tackle")
	o1.SetHP(1)
	o2 := fighter(t, "O2", "sproutle", 100, 10, "tackle")
	s := newSetup(t, Trainer, rng.Fixed(50),
		[]*model.Combatant{fighter(t, "P", "sparkit", 100, 80, "tackle")},
		[]*model.Combatant{o1, o2})

	res := s.resolve(t, Attack("tackle"))

	assert.False(t, res.Outcome().BattleEnded)
	swaps := eventsOf[turn.SwapCompleted](res)
	require.Len(t, swaps, 1)
	assert.Equal(t, model.SideOpponent, swaps[0].Side)
	assert.True(t, swaps[0].Forced)
	assert.Same(t, o2, s.arena.Active(model.SideOpponent))
}

func TestControlAilmentBlocksOpponent(t *testing.T) {
	opponent := fighter(t, "O", "puddlet", 100, 80, "tackle")
	opponent.Status.Control = &model.ControlAilment{Type: data.Sleep, RemainingTurns: 3}
	s := newSetup(t, Wild, rng.Fixed(50),
		[]*model.Combatant{fighter(t, "P", "sparkit", 100, 10, "growl")},
		[]*model.Combatant{opponent})

	res := s.resolve(t, Attack("growl"))

	blocked := eventsOf[turn.ActionBlocked](res)
	require.Len(t, blocked, 1)
	assert.Equal(t, model.SideOpponent, blocked[0].Side)
	assert.Equal(t, data.Sleep, blocked[0].StatusType)
	assert.Equal(t, 2, opponent.Status.Control.RemainingTurns)
	ticked := eventsOf[turn.AilmentTicked](res)
	require.Len(t, ticked, 1)
	assert.Equal(t, turn.AilmentTicked{
		Side:           model.SideOpponent,
		Combatant:      opponent.ID,
		Ailment:        data.Sleep,
		RemainingTurns: 2,
	}, ticked[0])

	shown := s.engine.Ailments(model.SideOpponent)
	require.Len(t, shown, 1)
	assert.Equal(t, data.Sleep, shown[0].ID)
	assert.Empty(t, shown[0].Icon, "no display provider, no icon")
}

func TestSleepWakesBlockedThisRoundOnly(t *testing.T) {
	opponent := fighter(t, "O", "puddlet", 200, 10, "tackle")
	opponent.Status.Control = &model.ControlAilment{Type: data.Sleep, RemainingTurns: 3}
	s := newSetup(t, Wild, rng.Fixed(50),
		[]*model.Combatant{fighter(t, "P", "sparkit", 200, 80, "tackle")},
		[]*model.Combatant{opponent})

	res := s.resolve(t, Attack("tackle"))

	assert.Nil(t, opponent.Status.Control, "a damaging hit wakes the sleeper")
	removed := eventsOf[turn.AilmentRemoved](res)
	require.Len(t, removed, 1)
	assert.Equal(t, data.Sleep, removed[0].Ailment)
	blocked := eventsOf[turn.ActionBlocked](res)
	require.Len(t, blocked, 1)
	assert.Equal(t, model.SideOpponent, blocked[0].Side)
	assert.Equal(t, data.Sleep, blocked[0].StatusType)
	assert.Equal(t, "startled awake", blocked[0].Reason)
	assert.Zero(t, castsBy(res, model.SideOpponent))

	res = s.resolve(t, Attack("tackle"))
	assert.Empty(t, eventsOf[turn.ActionBlocked](res))
	assert.Equal(t, 1, castsBy(res, model.SideOpponent), "acts again the round after waking")
}

func TestEndOfRound_BurnTick(t *testing.T) {
	opponent := fighter(t, "O", "puddlet", 160, 30, "growl")
	opponent.Status.Weakening = map[model.AilmentID]model.AilmentTurns{data.Burn: {RemainingTurns: 2}}
	s := newSetup(t, Wild, rng.Fixed(50),
		[]*model.Combatant{fighter(t, "P", "sparkit", 100, 50, "growl")},
		[]*model.Combatant{opponent})

	res := s.resolve(t, Attack("growl"))
	ticks := eventsOf[turn.AilmentDamage](res)
	require.Len(t, ticks, 1)
	assert.Equal(t, 20, ticks[0].Amount)
	assert.Equal(t, 140, opponent.HP)

	s.resolve(t, Attack("growl"))
	assert.Equal(t, 120, opponent.HP)
	assert.False(t, opponent.Status.HasWeakening(data.Burn))
}

func TestQueries(t *testing.T) {
	player := fighter(t, "P", "sparkit", 100, 50, "swords_dance", "safeguard")
	s := newSetup(t, Wild, rng.Fixed(50),
		[]*model.Combatant{player},
		[]*model.Combatant{fighter(t, "O", "puddlet", 100, 30, "growl")})

	assert.Equal(t, model.SideNone, s.engine.ActedFirst())
	s.resolve(t, Attack("swords_dance"))
	assert.Equal(t, 2+(-1), s.engine.Stages(model.SidePlayer)[model.StatAttack], "+2 from the dance, -1 from growl")
	assert.Equal(t, 1, s.engine.Round())

	s.resolve(t, Attack("safeguard"))
	assert.Equal(t, 4, s.engine.Effects(model.SidePlayer)["ailment_immunity"])

	snap, ok := s.engine.Snapshot(model.SidePlayer)
	require.True(t, ok)
	snap.Techniques[0].Uses = 0
	assert.NotZero(t, player.Techniques[0].Uses, "snapshots are copies")
}
