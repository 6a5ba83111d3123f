// Package battle runs a battle one round at a time.
//
// The engine is a small phase machine: CHOOSING (waiting for the player's
// intent) → EXECUTING (one round resolves) → CHOOSING again, or ENDED once
// a side is captured, flees or has no one left to fight. Every round
// returns a finalized turn.Result; the log inside it is the only record of
// what changed.
package battle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/looplab/fsm"

	"github.com/udisondev/beastclash/internal/data"
	"github.com/udisondev/beastclash/internal/game/ailment"
	"github.com/udisondev/beastclash/internal/game/combat"
	"github.com/udisondev/beastclash/internal/game/effect"
	"github.com/udisondev/beastclash/internal/game/rng"
	"github.com/udisondev/beastclash/internal/game/turn"
	"github.com/udisondev/beastclash/internal/model"
)

var (
	// ErrMissingCollaborator is returned by New when a required dependency is nil.
	ErrMissingCollaborator = errors.New("missing collaborator")
	// ErrInvalidArena is returned by New when a side has no one able to fight.
	ErrInvalidArena = errors.New("invalid arena")
	// ErrNoStagedIntent is returned by ResolveRound when no intent was staged.
	ErrNoStagedIntent = errors.New("no intent staged")
	// ErrIntentAlreadyStaged is returned by StageIntent on a second call.
	ErrIntentAlreadyStaged = errors.New("intent already staged")
	// ErrBattleEnded is returned by any call after the battle concluded.
	ErrBattleEnded = errors.New("battle ended")
)

// Phase is the state of the engine.
type Phase string

const (
	PhaseChoosing  Phase = "choosing"
	PhaseExecuting Phase = "executing"
	PhaseEnded     Phase = "ended"
)

const (
	evExecute  = "execute"
	evSettle   = "settle"
	evConclude = "conclude"
)

// Collaborators bundles what the engine works with. Catalog, Ailments,
// Effects, Executor and Source are required. Opponent defaults to
// RandomPolicy. Display, Experience and Sink are optional.
type Collaborators struct {
	Catalog    *data.Catalog
	Ailments   *ailment.Registry
	Effects    *effect.Runtime
	Executor   *combat.Executor
	Source     rng.Source
	Opponent   OpponentPolicy
	Display    ailment.DisplayProvider
	Experience combat.ExperienceProvider
	Sink       ConclusionSink
}

// DefaultCollaborators wires the stock registry, runtime, executor and
// experience provider over catalog, all drawing from src.
func DefaultCollaborators(catalog *data.Catalog, src rng.Source, priorityOverride int) Collaborators {
	reg := ailment.NewRegistry(catalog.AilmentDefs(), src)
	rt := effect.NewRuntime(priorityOverride)
	return Collaborators{
		Catalog:    catalog,
		Ailments:   reg,
		Effects:    rt,
		Executor:   combat.NewExecutor(catalog, reg, rt, nil, src),
		Source:     src,
		Opponent:   RandomPolicy{},
		Experience: combat.CatalogExperience{Catalog: catalog},
	}
}

func (c Collaborators) validate() error {
	switch {
	case c.Catalog == nil:
		return fmt.Errorf("%w: catalog", ErrMissingCollaborator)
	case c.Ailments == nil:
		return fmt.Errorf("%w: ailment registry", ErrMissingCollaborator)
	case c.Effects == nil:
		return fmt.Errorf("%w: effect runtime", ErrMissingCollaborator)
	case c.Executor == nil:
		return fmt.Errorf("%w: executor", ErrMissingCollaborator)
	case c.Source == nil:
		return fmt.Errorf("%w: random source", ErrMissingCollaborator)
	}
	return nil
}

// Engine resolves the rounds of one battle. It is not safe for concurrent
// use; a battle belongs to a single caller.
type Engine struct {
	id    uuid.UUID
	arena *model.Arena
	cfg   Config
	c     Collaborators
	fsm   *fsm.FSM

	round        int
	staged       *Intent
	actedFirst   model.Side
	pendingSwap  bool
	fleeFailures int
	captured     *model.Combatant
	conclusion   *Conclusion
}

// New creates an engine over arena. The arena must have a fit active
// combatant on both sides.
func New(arena *model.Arena, c Collaborators, cfg Config) (*Engine, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}
	if arena == nil {
		return nil, fmt.Errorf("%w: arena", ErrMissingCollaborator)
	}
	for _, side := range model.Sides {
		if a := arena.Active(side); a == nil || a.IsIncapacitated() {
			return nil, fmt.Errorf("%w: %s side has no active combatant", ErrInvalidArena, side)
		}
	}
	if c.Opponent == nil {
		c.Opponent = RandomPolicy{}
	}
	if cfg.Kind == "" {
		cfg.Kind = Wild
	}

	e := &Engine{
		id:         uuid.New(),
		arena:      arena,
		cfg:        cfg,
		c:          c,
		actedFirst: model.SideNone,
	}
	e.fsm = fsm.NewFSM(
		string(PhaseChoosing),
		fsm.Events{
			{Name: evExecute, Src: []string{string(PhaseChoosing)}, Dst: string(PhaseExecuting)},
			{Name: evSettle, Src: []string{string(PhaseExecuting)}, Dst: string(PhaseChoosing)},
			{Name: evConclude, Src: []string{string(PhaseExecuting)}, Dst: string(PhaseEnded)},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, ev *fsm.Event) {
				slog.Debug("battle phase changed",
					"battle", e.id,
					"round", e.round,
					"from", ev.Src,
					"to", ev.Dst)
			},
		},
	)
	return e, nil
}

// StageIntent records the player's action for the next round.
func (e *Engine) StageIntent(in Intent) error {
	if e.fsm.Is(string(PhaseEnded)) {
		return ErrBattleEnded
	}
	if e.staged != nil {
		return ErrIntentAlreadyStaged
	}
	e.staged = &in
	return nil
}

// ResolveRound executes the staged intent and returns the finalized log.
//
// Workflow:
//  1. Without a staged intent: rejected result plus ErrNoStagedIntent.
//  2. Validate the intent. A void intent returns a rejected result with no
//     events; nothing is mutated and the round counter stays put.
//  3. Open the round: counter++, per-round state cleared, RoundStarted and
//     IntentSubmitted logged.
//  4. Dispatch the intent (swap, item, flee, capture or an exchange).
//  5. Tick ailments then effects, player side first. Skipped on a battle
//     end and on a forced swap.
//  6. Handle incapacitated combatants (replacement, forced swap, battle end).
//  7. Finalize; on a battle end build the conclusion and reset per-battle state.
func (e *Engine) ResolveRound(ctx context.Context) (*turn.Result, error) {
	if e.fsm.Is(string(PhaseEnded)) {
		return nil, ErrBattleEnded
	}
	if e.staged == nil {
		res := turn.NewResult(e.round)
		res.Reject(turn.RejectInvalidAction, "no action selected")
		res.Finalize()
		return res, ErrNoStagedIntent
	}
	in := *e.staged
	e.staged = nil

	p, rej := e.plan(in)
	if rej != nil {
		res := turn.NewResult(e.round)
		res.Reject(rej.reason, rej.message)
		res.Finalize()
		slog.Debug("intent rejected",
			"battle", e.id,
			"intent", in.Kind,
			"reason", rej.reason,
			"message", rej.message)
		return res, nil
	}

	if err := e.fsm.Event(ctx, evExecute); err != nil {
		return nil, fmt.Errorf("starting round %d: %w", e.round+1, err)
	}

	e.round++
	e.c.Effects.BeginRound()
	res := turn.NewResult(e.round)
	res.Append(
		turn.RoundStarted{Round: e.round},
		turn.IntentSubmitted{Side: model.SidePlayer, Intent: string(in.Kind), Detail: in.Detail()},
	)

	e.dispatch(res, p)
	if !res.Ended() && !p.forced {
		e.endOfRound(res)
	}
	e.settle(res)

	next := evSettle
	if res.Ended() {
		next = evConclude
	}
	if err := e.fsm.Event(ctx, next); err != nil {
		return nil, fmt.Errorf("closing round %d: %w", e.round, err)
	}

	res.Finalize()
	if res.Ended() {
		e.conclude(res)
	}
	return res, nil
}

// conclude builds the conclusion and clears what lives for one battle only.
// Status state stays on the combatants.
func (e *Engine) conclude(res *turn.Result) {
	out := res.Outcome()
	c := Conclusion{
		BattleID: e.id,
		Winner:   out.Winner,
		Reason:   out.Reason,
		Rounds:   e.round,
	}
	if e.captured != nil {
		snap := e.captured.Snapshot()
		c.Captured = &snap
	}
	if out.Winner == model.SidePlayer {
		c.Rewards = combat.ComputeRewards(
			e.arena.Active(model.SidePlayer),
			e.arena.Party(model.SideOpponent).Members,
			e.c.Catalog,
			e.c.Experience,
		)
	}

	e.c.Effects.Reset()
	e.arena.Each(func(_ model.Side, m *model.Combatant) {
		m.Stages.Reset()
		m.BlockedRound = 0
		m.BlockedBy = ""
	})
	e.conclusion = &c

	slog.Info("battle concluded",
		"battle", e.id,
		"winner", c.Winner,
		"reason", c.Reason,
		"rounds", c.Rounds,
		"exp", c.Rewards.Experience)
	if e.c.Sink != nil {
		e.c.Sink.BattleConcluded(c)
	}
}

// ID identifies the battle.
func (e *Engine) ID() uuid.UUID { return e.id }

// Round is the number of executed rounds.
func (e *Engine) Round() int { return e.round }

// Phase is the current engine state.
func (e *Engine) Phase() Phase { return Phase(e.fsm.Current()) }

// Config returns the rules the battle runs with.
func (e *Engine) Config() Config { return e.cfg }

// ActedFirst is the side that acted first in the last executed round, or
// SideNone before the first one.
func (e *Engine) ActedFirst() model.Side { return e.actedFirst }

// PendingSwap reports whether the player must swap before anything else.
func (e *Engine) PendingSwap() bool { return e.pendingSwap }

// Stages returns the stat stages of side's active combatant.
func (e *Engine) Stages(side model.Side) map[model.Stat]int {
	c := e.arena.Active(side)
	if c == nil {
		return nil
	}
	return c.Stages.Values()
}

// Ailments lists the displayable ailments of side's active combatant.
func (e *Engine) Ailments(side model.Side) []ailment.Shown {
	c := e.arena.Active(side)
	if c == nil {
		return nil
	}
	return e.c.Ailments.Display(c, e.c.Display)
}

// Effects lists the runtime effects on side with their remaining rounds.
func (e *Engine) Effects(side model.Side) map[string]int {
	return e.c.Effects.Summary(side)
}

// Snapshot copies side's active combatant.
func (e *Engine) Snapshot(side model.Side) (model.Snapshot, bool) {
	c := e.arena.Active(side)
	if c == nil {
		return model.Snapshot{}, false
	}
	return c.Snapshot(), true
}

// Conclusion returns how the battle ended, once it has.
func (e *Engine) Conclusion() (Conclusion, bool) {
	if e.conclusion == nil {
		return Conclusion{}, false
	}
	return *e.conclusion, true
}
