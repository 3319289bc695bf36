package service

import (
	"time"

	"github.com/Watcharapat-P/compro2-final-project-Starry-Night/internal/engine"
	"github.com/Watcharapat-P/compro2-final-project-Starry-Night/internal/game"
)

// ActionFor converts a policy move into the action a player would submit.
func ActionFor(m engine.Move) engine.Action {
	switch m.Kind {
	case game.ActionAbility:
		return engine.Action{Kind: m.Kind, Choice: string(m.Ability)}
	case game.ActionItem:
		return engine.Action{Kind: m.Kind, Choice: string(m.Item)}
	}
	return engine.Action{Kind: m.Kind}
}

// AutoSubmit plays the player's turn with the uniform enemy policy. A pick
// that is rejected (empty category or not enough mana) falls back to a plain
// defend so the turn always advances.
func AutoSubmit(b *engine.Battle, rng engine.Rand, now time.Time) (engine.Result, error) {
	if b.State() != engine.StateAwaitingPlayerAction && b.State() != engine.StateAwaitingSubmenuChoice {
		return engine.Result{Status: engine.ResultIgnored, Message: b.ActionMessage()}, nil
	}
	m := b.Player().ChooseMove(rng)
	if m.Kind != game.ActionNone {
		res, err := b.SubmitAction(now, ActionFor(m))
		if res.Status != engine.ResultRejected {
			return res, err
		}
	}
	return b.SubmitAction(now, engine.Action{Kind: game.ActionDefend})
}

// RunToEnd auto-plays b from start until game over or maxTurns player turns,
// stepping a virtual clock through every deadline. A strike is parried when
// parry reports true. Strike timing is the battle's own. It returns the virtual time the loop stopped at.
func RunToEnd(b *engine.Battle, rng engine.Rand, start time.Time, maxTurns int, parry func() bool) (time.Time, error) {
	timing := b.Timing()
	now := start
	for turn := 0; turn < maxTurns && b.State() != engine.StateGameOver; turn++ {
		if _, err := AutoSubmit(b, rng, now); err != nil {
			return now, err
		}
		deadline, pending := b.EnemyDeadline()
		if !pending {
			continue
		}
		now = deadline
		if err := b.Update(now); err != nil {
			return now, err
		}
		if b.State() != engine.StateEnemyTurnScheduled {
			continue
		}
		// A strike is in flight: sit inside the window, then let it land.
		mid := now.Add(timing.ParryOffset + timing.ParryWindow/2)
		if err := b.Update(mid); err != nil {
			return mid, err
		}
		if parry != nil && parry() {
			b.TriggerParry(mid)
		}
		now = now.Add(timing.StrikeDuration)
		if err := b.Update(now); err != nil {
			return now, err
		}
	}
	return now, nil
}
