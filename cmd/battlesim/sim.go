package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/beastclash/internal/config"
	"github.com/udisondev/beastclash/internal/data"
	"github.com/udisondev/beastclash/internal/db"
	"github.com/udisondev/beastclash/internal/game/battle"
	"github.com/udisondev/beastclash/internal/game/combat"
	"github.com/udisondev/beastclash/internal/game/rng"
	"github.com/udisondev/beastclash/internal/game/turn"
	"github.com/udisondev/beastclash/internal/model"
)

// archiver stores a finished battle. *db.BattleArchive satisfies it.
type archiver interface {
	Store(ctx context.Context, battleID uuid.UUID, rounds []*turn.Result, states map[model.CombatantID]model.StatusState) error
}

// report summarizes one simulated battle.
type report struct {
	Index    int
	Seed     uint64
	BattleID uuid.UUID
	Rounds   int
	Rejected int
	Finished bool
	Winner   model.Side
	Reason   turn.EndReason
	Captured model.SpeciesID
	Exp      int64
	Level    int
}

// simulator runs independent battles. Every battle owns its arena, engine
// and random source; nothing is shared between goroutines except the
// read-only catalog and script.
type simulator struct {
	sim     config.Sim
	rules   battle.Config
	prio    int
	catalog *data.Catalog
	script  []battle.Intent
	archive archiver
}

func newSimulator(cfg config.Battle, catalog *data.Catalog, archive archiver) (*simulator, error) {
	rules, err := cfg.Rules()
	if err != nil {
		return nil, err
	}
	script, err := parseScript(catalog, cfg.Sim.Script)
	if err != nil {
		return nil, err
	}
	if len(script) == 0 {
		return nil, fmt.Errorf("%w: script is empty", ErrBadScript)
	}
	return &simulator{
		sim:     cfg.Sim,
		rules:   rules,
		prio:    cfg.PriorityOverride,
		catalog: catalog,
		script:  script,
		archive: archive,
	}, nil
}

// runAll fans the battles out over at most Concurrency goroutines. Battle i
// uses seed base+i, so a run is reproducible from its base seed.
func (s *simulator) runAll(ctx context.Context, base uint64) ([]report, error) {
	reports := make([]report, s.sim.Battles)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.sim.Concurrency)
	for i := range s.sim.Battles {
		g.Go(func() error {
			rep, err := s.runBattle(ctx, i, base+uint64(i))
			if err != nil {
				return fmt.Errorf("battle %d: %w", i, err)
			}
			reports[i] = rep
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func (s *simulator) party(species []string, level int) (*model.Party, error) {
	members := make([]*model.Combatant, 0, len(species))
	for _, id := range species {
		c, err := s.catalog.NewCombatant(model.SpeciesID(id), level)
		if err != nil {
			return nil, err
		}
		members = append(members, c)
	}
	return model.NewParty(members...), nil
}

// runBattle plays one battle from the script until it ends or the round
// limit is reached.
//
// Workflow:
//  1. Build both parties and the player's bag.
//  2. Wire the stock collaborators over a PCG source seeded with seed.
//  3. Loop: pick an intent, stage it, resolve. A void round counts as
//     rejected and the next pick falls back to a plain attack.
//  4. Grant rewards to the player's active combatant on a win.
//  5. Archive rounds and status states when persistence is on.
func (s *simulator) runBattle(ctx context.Context, index int, seed uint64) (report, error) {
	player, err := s.party(s.sim.Player, s.sim.Level)
	if err != nil {
		return report{}, fmt.Errorf("player party: %w", err)
	}
	opponent, err := s.party(s.sim.Opponent, s.sim.Level)
	if err != nil {
		return report{}, fmt.Errorf("opponent party: %w", err)
	}
	for id, n := range s.sim.Bag {
		if n > 0 {
			player.Bag[model.ItemID(id)] = n
		}
	}
	arena := model.NewArena(player, opponent)

	var concluded *battle.Conclusion
	c := battle.DefaultCollaborators(s.catalog, rng.New(seed), s.prio)
	c.Sink = battle.SinkFunc(func(bc battle.Conclusion) { concluded = &bc })

	eng, err := battle.New(arena, c, s.rules)
	if err != nil {
		return report{}, err
	}

	rep := report{Index: index, Seed: seed, BattleID: eng.ID(), Winner: model.SideNone}
	var (
		rounds   []*turn.Result
		cursor   int
		fallback bool
	)
	// Void rounds don't advance the counter, so attempts are bounded separately.
	for attempts := 0; eng.Phase() != battle.PhaseEnded && eng.Round() < s.sim.MaxRounds; attempts++ {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		if attempts > 2*s.sim.MaxRounds {
			break
		}

		in, scripted, ok := s.pick(eng, arena, cursor, fallback)
		if !ok {
			slog.Warn("no intent left to try", "battle", eng.ID(), "round", eng.Round())
			break
		}
		if err := eng.StageIntent(in); err != nil {
			return rep, err
		}
		res, err := eng.ResolveRound(ctx)
		if err != nil {
			return rep, err
		}

		if out := res.Outcome(); out.ActionRejected {
			rep.Rejected++
			slog.Debug("intent rejected",
				"battle", eng.ID(),
				"intent", in.Kind,
				"detail", in.Detail(),
				"reason", out.RejectReason,
				"message", out.Message)
			if !scripted {
				break
			}
			fallback = true
			cursor++
			continue
		}

		rounds = append(rounds, res)
		if scripted {
			cursor++
		}
		fallback = false
	}

	rep.Rounds = eng.Round()
	if concluded != nil {
		rep.Finished = true
		rep.Winner = concluded.Winner
		rep.Reason = concluded.Reason
		if concluded.Captured != nil {
			rep.Captured = concluded.Captured.SpeciesID
		}
		if concluded.Winner == model.SidePlayer {
			winner := arena.Active(model.SidePlayer)
			combat.Grant(winner, concluded.Rewards)
			rep.Exp = concluded.Rewards.Experience
			rep.Level = winner.Level
		}
	}

	if s.archive != nil {
		if err := s.archive.Store(ctx, eng.ID(), rounds, db.StatesOf(arena)); err != nil {
			return rep, fmt.Errorf("archiving: %w", err)
		}
	}
	return rep, nil
}

// pick chooses the next intent and reports whether it came from the script.
// A pending swap always comes first; after a rejection the first usable
// technique is tried instead of the script.
func (s *simulator) pick(eng *battle.Engine, arena *model.Arena, cursor int, fallback bool) (in battle.Intent, scripted, ok bool) {
	party := arena.Party(model.SidePlayer)
	if eng.PendingSwap() {
		next := party.NextAvailable()
		return battle.Swap(next), false, next >= 0
	}
	if !fallback {
		return s.script[min(cursor, len(s.script)-1)], true, true
	}

	active := party.ActiveMember()
	if slots := active.UsableSlots(); len(slots) > 0 {
		return battle.Attack(active.Techniques[slots[0]].TechniqueID), false, true
	}
	if s.rules.Kind == battle.Wild {
		return battle.Flee(), false, true
	}
	if next := party.NextAvailable(); next >= 0 {
		return battle.Swap(next), false, true
	}
	return battle.Intent{}, false, false
}

func summarize(reports []report) {
	var wins, losses, fled, captured, unfinished int
	for _, r := range reports {
		switch {
		case !r.Finished:
			unfinished++
		case r.Reason == turn.EndFled:
			fled++
		case r.Reason == turn.EndCaptured:
			captured++
		case r.Winner == model.SidePlayer:
			wins++
		default:
			losses++
		}
		slog.Info("battle finished",
			"index", r.Index,
			"battle", r.BattleID,
			"seed", r.Seed,
			"rounds", r.Rounds,
			"rejected", r.Rejected,
			"winner", r.Winner,
			"reason", r.Reason,
			"captured", r.Captured,
			"exp", r.Exp,
			"level", r.Level)
	}
	slog.Info("simulation summary",
		"battles", len(reports),
		"wins", wins,
		"losses", losses,
		"fled", fled,
		"captured", captured,
		"unfinished", unfinished)
}
