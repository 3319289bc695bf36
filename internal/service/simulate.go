package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/Watcharapat-P/compro2-final-project-Starry-Night/internal/config"
	"github.com/Watcharapat-P/compro2-final-project-Starry-Night/internal/constants"
	"github.com/Watcharapat-P/compro2-final-project-Starry-Night/internal/engine"
	"github.com/Watcharapat-P/compro2-final-project-Starry-Night/internal/game"
	"github.com/Watcharapat-P/compro2-final-project-Starry-Night/internal/logging"

	"golang.org/x/sync/errgroup"
)

var ErrInvalidSimulation = errors.New("invalid simulation options")

// maxAutoTurns caps an autopilot battle; two healers can stall forever.
const maxAutoTurns = 500

// SimOptions configures a batch of autopilot battles.
type SimOptions struct {
	Battles int
	Workers int
	Stage   int
	// Seed makes a run reproducible: battle i draws from Seed+i.
	Seed int64
	// ParryPercent is the chance, 0 to 100, that the autopilot parries a
	// strike.
	ParryPercent int
	// Start is the virtual time of the first move; zero means now.
	Start time.Time
}

// SimReport counts how a batch went.
type SimReport struct {
	Battles    int
	Victories  int
	Defeats    int
	Unfinished int
}

// lockedLog serializes appends from concurrent battles.
type lockedLog struct {
	mu  sync.Mutex
	log engine.CombatLog
}

func (l *lockedLog) Append(s game.BattleSummary) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.log.Append(s)
}

// Simulate runs opts.Battles autopilot battles on opts.Stage over a bounded
// worker pool. Each battle is independent and single-threaded; only the
// combat log is shared. The first persistence failure cancels the batch.
func Simulate(ctx context.Context, cfg *config.LoadedConfig, log engine.CombatLog, opts SimOptions) (SimReport, error) {
	if opts.Battles < 1 || opts.ParryPercent < 0 || opts.ParryPercent > 100 {
		return SimReport{}, fmt.Errorf("%w: %+v", ErrInvalidSimulation, opts)
	}
	enemyTpl, ok := cfg.EnemyForStage(opts.Stage)
	if !ok {
		return SimReport{}, fmt.Errorf("%w: %d", ErrUnknownStage, opts.Stage)
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.Start.IsZero() {
		opts.Start = time.Now()
	}
	var shared engine.CombatLog
	if log != nil {
		shared = &lockedLog{log: log}
	}
	catalog := engine.DefaultCatalog()

	logging.Info("simulation started", logging.Fields{
		constants.LogFieldBattles: opts.Battles,
		constants.LogFieldWorkers: opts.Workers,
		constants.LogFieldStage:   opts.Stage,
	})

	var (
		mu     sync.Mutex
		report = SimReport{Battles: opts.Battles}
	)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i := 0; i < opts.Battles; i++ {
		if ctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rng := rand.New(rand.NewSource(opts.Seed + int64(i)))
			player, err := engine.NewCombatant(cfg.Player, game.ControllerPlayer, catalog)
			if err != nil {
				return err
			}
			enemy, err := engine.NewCombatant(enemyTpl, game.ControllerEngine, catalog)
			if err != nil {
				return err
			}
			b, err := engine.NewBattle(player, enemy, engine.Options{
				Stage:  opts.Stage,
				Timing: cfg.Timing,
				Rand:   rng,
				Log:    shared,
			})
			if err != nil {
				return err
			}
			parry := func() bool { return rng.Intn(100) < opts.ParryPercent }
			if _, err := RunToEnd(b, rng, opts.Start, maxAutoTurns, parry); err != nil {
				return err
			}

			mu.Lock()
			defer mu.Unlock()
			switch b.Outcome() {
			case game.OutcomeVictory:
				report.Victories++
			case game.OutcomeDefeat:
				report.Defeats++
			default:
				report.Unfinished++
			}
			return nil
		})
	}
	err := g.Wait()

	fields := logging.Fields{
		constants.LogFieldBattles: report.Battles,
		"victories":               report.Victories,
		"defeats":                 report.Defeats,
		"unfinished":              report.Unfinished,
	}
	if err != nil {
		logging.Error("simulation aborted", err, fields)
		return report, err
	}
	logging.Info("simulation finished", fields)
	return report, nil
}
