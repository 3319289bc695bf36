package service

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/Watcharapat-P/compro2-final-project-Starry-Night/internal/config"
	"github.com/Watcharapat-P/compro2-final-project-Starry-Night/internal/constants"
	"github.com/Watcharapat-P/compro2-final-project-Starry-Night/internal/engine"
	"github.com/Watcharapat-P/compro2-final-project-Starry-Night/internal/game"
	"github.com/Watcharapat-P/compro2-final-project-Starry-Night/internal/keys"
	"github.com/Watcharapat-P/compro2-final-project-Starry-Night/internal/logging"
)

var (
	ErrUnknownStage = errors.New("unknown stage")
	ErrNoBattle     = errors.New("no battle started")
)

// SessionOptions carries the injectable parts of a Session. Zero values
// fall back to a time-seeded rng and no event sink.
type SessionOptions struct {
	Rand   engine.Rand
	Events engine.EventSink
}

// Session drives one player through stage battles. Every Start or Restart
// builds fresh combatants from the configured templates. A Session is not
// safe for concurrent use.
type Session struct {
	cfg     *config.LoadedConfig
	log     engine.CombatLog
	rng     engine.Rand
	events  engine.EventSink
	catalog *engine.Catalog

	battle   *engine.Battle
	stage    int
	finished bool
}

func NewSession(cfg *config.LoadedConfig, log engine.CombatLog, opts SessionOptions) *Session {
	s := &Session{
		cfg:     cfg,
		log:     log,
		rng:     opts.Rand,
		events:  opts.Events,
		catalog: engine.DefaultCatalog(),
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return s
}

// Start begins a new battle on stage, replacing any current one.
func (s *Session) Start(stage int) (*engine.Battle, error) {
	enemyTpl, ok := s.cfg.EnemyForStage(stage)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStage, stage)
	}
	player, err := engine.NewCombatant(s.cfg.Player, game.ControllerPlayer, s.catalog)
	if err != nil {
		return nil, err
	}
	enemy, err := engine.NewCombatant(enemyTpl, game.ControllerEngine, s.catalog)
	if err != nil {
		return nil, err
	}
	b, err := engine.NewBattle(player, enemy, engine.Options{
		Stage:  stage,
		Timing: s.cfg.Timing,
		Rand:   s.rng,
		Log:    s.log,
		Events: s.events,
	})
	if err != nil {
		return nil, err
	}
	s.battle = b
	s.stage = stage
	s.finished = false
	logging.Info("battle started", logging.Fields{
		constants.LogFieldBattleID: b.ID(),
		constants.LogFieldStage:    stage,
		constants.LogFieldPlayer:   player.Name,
		constants.LogFieldEnemy:    enemy.Name,
		constants.LogFieldMatchup:  keys.MatchupKey(player.Name, enemy.Name),
	})
	return b, nil
}

// Restart starts the current stage again with fresh combatants.
func (s *Session) Restart() (*engine.Battle, error) {
	if s.battle == nil {
		return nil, ErrNoBattle
	}
	return s.Start(s.stage)
}

// Battle returns the current battle, or nil before Start.
func (s *Session) Battle() *engine.Battle { return s.battle }

// Stages lists the stage numbers the player can pick.
func (s *Session) Stages() []int { return s.cfg.StageNumbers() }

// Submit forwards a player action to the current battle.
func (s *Session) Submit(now time.Time, a engine.Action) (engine.Result, error) {
	if s.battle == nil {
		return engine.Result{}, ErrNoBattle
	}
	res, err := s.battle.SubmitAction(now, a)
	return res, s.afterStep(err)
}

// Tick advances the current battle's deferred transitions to now.
func (s *Session) Tick(now time.Time) error {
	if s.battle == nil {
		return nil
	}
	return s.afterStep(s.battle.Update(now))
}

// Parry forwards the player's parry input.
func (s *Session) Parry(now time.Time) bool {
	if s.battle == nil {
		return false
	}
	return s.battle.TriggerParry(now)
}

// RetryLog re-attempts a failed combat-log append for the current battle.
func (s *Session) RetryLog() error {
	if s.battle == nil {
		return nil
	}
	return s.afterStep(s.battle.RetryLog())
}

// afterStep logs the end of a battle once, and every persistence failure.
func (s *Session) afterStep(err error) error {
	b := s.battle
	fields := logging.Fields{constants.LogFieldBattleID: b.ID(), constants.LogFieldStage: b.Stage()}
	if err != nil {
		logging.Error("combat log not written", err, fields)
	}
	if b.State() == engine.StateGameOver && !s.finished {
		s.finished = true
		fields[constants.LogFieldOutcome] = string(b.Outcome())
		logging.Info("battle finished", fields)
	}
	return err
}
