package engine

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Watcharapat-P/compro2-final-project-Starry-Night/internal/constants"
	"github.com/Watcharapat-P/compro2-final-project-Starry-Night/internal/game"

	"github.com/google/uuid"
)

// ErrPersistence wraps a combat-log failure at the end of a battle. The
// battle result stands regardless.
var ErrPersistence = errors.New("combat log append failed")

// CombatLog receives the summary of every finished battle.
type CombatLog interface {
	Append(s game.BattleSummary) error
}

// State is the externally visible turn state of a battle.
type State int

const (
	StateAwaitingPlayerAction State = iota
	StateAwaitingSubmenuChoice
	StateEnemyTurnScheduled
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateAwaitingPlayerAction:
		return "awaiting_player_action"
	case StateAwaitingSubmenuChoice:
		return "awaiting_submenu_choice"
	case StateEnemyTurnScheduled:
		return "enemy_turn_scheduled"
	case StateGameOver:
		return "game_over"
	}
	return "unknown"
}

// phase is the internal refinement of State: an enemy turn is first pending
// its deadline, then possibly a strike in flight.
type phase int

const (
	phasePlayer phase = iota
	phaseEnemyPending
	phaseEnemyStrike
	phaseOver
)

// Action is what the player submits. Choice names the ability or item; an
// empty Choice on ability/item toggles the corresponding submenu.
type Action struct {
	Kind   game.ActionKind
	Choice string
}

// ResultStatus classifies what SubmitAction did.
type ResultStatus int

const (
	// ResultIgnored: not the player's turn or the battle is over.
	ResultIgnored ResultStatus = iota
	// ResultToggled: a submenu was shown or hidden; the turn did not advance.
	ResultToggled
	// ResultRejected: invalid choice or not enough mana; nothing changed.
	ResultRejected
	// ResultResolved: the action happened and the enemy turn is scheduled
	// (or the battle ended).
	ResultResolved
)

// Result is the outcome of SubmitAction.
type Result struct {
	Status  ResultStatus
	Message string
}

// Options configures a Battle. Zero values fall back to defaults.
type Options struct {
	ID     string
	Stage  int
	Timing Timing
	Rand   Rand
	Log    CombatLog
	Events EventSink
}

// Battle is the turn engine for one player-controlled combatant against one
// engine-controlled combatant. It is not safe for concurrent use: all calls
// must come from one goroutine. It never reads the wall clock; every
// time-dependent call takes now.
type Battle struct {
	id    string
	stage int

	player *Combatant
	enemy  *Combatant

	phase         phase
	showAbilities bool
	showItems     bool
	actionMessage string
	enemyDeadline time.Time
	strike        *strike
	parry         parryState

	timing Timing
	rng    Rand
	log    CombatLog
	events EventSink

	outcome  game.Outcome
	summary  game.BattleSummary
	reported bool
	logged   bool
}

// NewBattle wires two combatants into a battle. player becomes the
// player-controlled side and enemy the engine-controlled side.
func NewBattle(player, enemy *Combatant, opts Options) (*Battle, error) {
	if player == nil || enemy == nil {
		return nil, fmt.Errorf("%w: a battle needs two combatants", ErrConfiguration)
	}
	if player == enemy || strings.EqualFold(player.Name, enemy.Name) {
		return nil, fmt.Errorf("%w: combatant names must be unique, got %q twice", ErrConfiguration, player.Name)
	}
	b := &Battle{
		id:            opts.ID,
		stage:         opts.Stage,
		player:        player,
		enemy:         enemy,
		phase:         phasePlayer,
		actionMessage: constants.MsgChooseAction,
		timing:        opts.Timing,
		rng:           opts.Rand,
		log:           opts.Log,
		events:        opts.Events,
	}
	if b.id == "" {
		b.id = uuid.NewString()
	}
	if b.timing == (Timing{}) {
		b.timing = DefaultTiming()
	}
	b.timing = b.timing.normalized()
	if b.rng == nil {
		b.rng = globalRand{}
	}
	if b.events == nil {
		b.events = discardEvents{}
	}
	player.Controller = game.ControllerPlayer
	enemy.Controller = game.ControllerEngine
	player.events = b.events
	enemy.events = b.events
	return b, nil
}

// SubmitAction handles the player's input at now. Gameplay outcomes are in
// the Result; the error is only non-nil when the battle ended and the
// combat log could not be written (wrapping ErrPersistence).
func (b *Battle) SubmitAction(now time.Time, a Action) (Result, error) {
	if b.phase != phasePlayer {
		return Result{Status: ResultIgnored, Message: b.actionMessage}, nil
	}

	var msg string
	switch a.Kind {
	case game.ActionAttack:
		msg = b.player.Attack(b.enemy, b)
	case game.ActionDefend:
		msg = b.player.Defend()
	case game.ActionAbility, game.ActionItem:
		if a.Choice == "" {
			b.toggleSubmenu(a.Kind)
			return Result{Status: ResultToggled, Message: b.actionMessage}, nil
		}
		var ok bool
		if a.Kind == game.ActionAbility {
			msg, ok = b.player.UseAbility(a.Choice, b.enemy, b)
		} else {
			msg, ok = b.player.UseItem(a.Choice, b.enemy, b)
		}
		if !ok {
			b.actionMessage = msg
			return Result{Status: ResultRejected, Message: msg}, nil
		}
	default:
		b.actionMessage = constants.MsgInvalidAction
		return Result{Status: ResultRejected, Message: constants.MsgInvalidAction}, nil
	}

	b.showAbilities = false
	b.showItems = false
	b.actionMessage = msg
	b.phase = phaseEnemyPending
	b.enemyDeadline = now.Add(b.timing.EnemyTurnDelay)
	err := b.checkWin(now)
	return Result{Status: ResultResolved, Message: b.actionMessage}, err
}

// toggleSubmenu shows or hides the ability/item list. Only one list is
// visible at a time.
func (b *Battle) toggleSubmenu(kind game.ActionKind) {
	if kind == game.ActionAbility {
		b.showAbilities = !b.showAbilities
		b.showItems = false
		return
	}
	b.showItems = !b.showItems
	b.showAbilities = false
}

// Update advances deferred transitions up to now: the enemy turn once its
// deadline passed, the parry window and the landing of a strike. Calls
// before a deadline, and all calls after game over, change nothing.
func (b *Battle) Update(now time.Time) error {
	switch b.phase {
	case phaseEnemyPending:
		if now.Before(b.enemyDeadline) {
			return nil
		}
		return b.beginEnemyTurn(now)
	case phaseEnemyStrike:
		return b.advanceStrike(now)
	}
	return nil
}

// beginEnemyTurn picks the enemy move. Moves that hit the player become a
// strike in flight; everything else, including a hesitation or a refused
// cast, plays out at once as in TakeTurn.
func (b *Battle) beginEnemyTurn(now time.Time) error {
	m := b.enemy.ChooseMove(b.rng)
	if _, ok := b.enemy.check(m); !ok || !b.enemy.catalog.Strikes(m) {
		return b.finishEnemyTurn(now, b.enemy.playMove(m, b.player, b))
	}
	b.enemy.announce(m)
	b.strike = newStrike(m, now, b.timing)
	b.parry = parryState{}
	b.phase = phaseEnemyStrike
	return b.advanceStrike(now)
}

// advanceStrike syncs the parry window and lands the hit once due. A parry
// that was not consumed by the hit is discarded with the strike.
func (b *Battle) advanceStrike(now time.Time) error {
	b.syncWindow(now)
	if now.Before(b.strike.landsAt) {
		return nil
	}
	msg := b.enemy.resolve(b.strike.move, b.player, b)
	if b.parry.windowOpen {
		b.closeWindow()
	}
	b.strike = nil
	b.parry = parryState{}
	return b.finishEnemyTurn(now, msg)
}

func (b *Battle) finishEnemyTurn(now time.Time, msg string) error {
	b.actionMessage = msg
	b.phase = phasePlayer
	return b.checkWin(now)
}

// checkWin ends the battle when either side is down. The player's defeat is
// checked first, so a mutual knockout counts as a loss.
func (b *Battle) checkWin(now time.Time) error {
	switch {
	case b.player.Defeated():
		b.outcome = game.OutcomeDefeat
		b.actionMessage = constants.MsgYouLose
	case b.enemy.Defeated():
		b.outcome = game.OutcomeVictory
		b.actionMessage = constants.MsgYouWin
	default:
		return nil
	}
	b.phase = phaseOver
	b.showAbilities = false
	b.showItems = false
	b.strike = nil
	b.parry = parryState{}
	for _, c := range []*Combatant{b.player, b.enemy} {
		if c.Defeated() {
			b.emit(Event{Kind: EventKnockedOut, Actor: c.Name})
		}
	}
	b.summary = game.BattleSummary{
		BattleID:   b.id,
		Stage:      b.stage,
		Outcome:    b.outcome,
		FinishedAt: now,
		Combatants: []game.CombatantSummary{b.player.Summary(), b.enemy.Summary()},
	}
	return b.report()
}

// report hands the summary to the combat log. It runs once per battle;
// RetryLog covers a failed attempt.
func (b *Battle) report() error {
	if b.reported {
		return nil
	}
	b.reported = true
	return b.appendLog()
}

func (b *Battle) appendLog() error {
	if b.log == nil {
		b.logged = true
		return nil
	}
	if err := b.log.Append(b.summary); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	b.logged = true
	return nil
}

// RetryLog re-attempts a combat-log append that failed when the battle
// ended. It does nothing before game over or once the append succeeded.
func (b *Battle) RetryLog() error {
	if b.phase != phaseOver || b.logged {
		return nil
	}
	return b.appendLog()
}

func (b *Battle) emit(e Event) { b.events.OnEvent(e) }

// State returns the current turn state.
func (b *Battle) State() State {
	switch b.phase {
	case phaseOver:
		return StateGameOver
	case phaseEnemyPending, phaseEnemyStrike:
		return StateEnemyTurnScheduled
	}
	if b.showAbilities || b.showItems {
		return StateAwaitingSubmenuChoice
	}
	return StateAwaitingPlayerAction
}

// ID returns the battle's identifier.
func (b *Battle) ID() string { return b.id }

// Stage returns the stage number the battle was started for.
func (b *Battle) Stage() int { return b.stage }

// Player returns the player-controlled combatant.
func (b *Battle) Player() *Combatant { return b.player }

// Enemy returns the engine-controlled combatant.
func (b *Battle) Enemy() *Combatant { return b.enemy }

// ActionMessage returns the last human-readable outcome.
func (b *Battle) ActionMessage() string { return b.actionMessage }

// Outcome returns the result once the battle is over.
func (b *Battle) Outcome() game.Outcome { return b.outcome }

// Summary returns the combat summary and whether the battle is over.
func (b *Battle) Summary() (game.BattleSummary, bool) {
	return b.summary, b.phase == phaseOver
}

// EnemyDeadline returns when the scheduled enemy turn starts. The bool is
// false when no enemy turn is pending.
func (b *Battle) EnemyDeadline() (time.Time, bool) {
	return b.enemyDeadline, b.phase == phaseEnemyPending
}

// Timing is the battle's timing after defaults were applied.
func (b *Battle) Timing() Timing { return b.timing }

// ParryPending reports whether a registered parry awaits the next hit.
func (b *Battle) ParryPending() bool { return b.parry.pending }
