package engine

import (
	"testing"
	"time"

	"github.com/Watcharapat-P/compro2-final-project-Starry-Night/internal/constants"
	"github.com/Watcharapat-P/compro2-final-project-Starry-Night/internal/game"
)

func TestScenarioE_ParryInsideWindow(t *testing.T) {
	b, rec := newTestBattle(t, heroTemplate(), goblinTemplate(), &seqRand{vals: []int{pickAttack}}, &memLog{})
	b.SubmitAction(t0, Action{Kind: game.ActionAttack})

	start := t0.Add(time.Second)
	if err := b.Update(start); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !b.TriggerParry(start.Add(200 * time.Millisecond)) {
		t.Fatalf("parry inside the window was not registered")
	}
	if !b.ParryPending() {
		t.Fatalf("expected a pending parry")
	}
	if err := b.Update(start.Add(400 * time.Millisecond)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p, e := b.Player(), b.Enemy()
	if p.Health != 100 {
		t.Fatalf("parried hit landed, health=%d", p.Health)
	}
	if p.TotalDamageMitigated != 14 {
		t.Fatalf("expected 14 mitigated, got %d", p.TotalDamageMitigated)
	}
	if e.TotalDamageDealt != 0 {
		t.Fatalf("parried hit credited to goblin: %d", e.TotalDamageDealt)
	}
	if b.ActionMessage() != constants.MsgParried {
		t.Fatalf("unexpected message %q", b.ActionMessage())
	}
	if b.State() != StateAwaitingPlayerAction || b.ParryPending() {
		t.Fatalf("expected a clean player turn, got %v pending=%v", b.State(), b.ParryPending())
	}
	for _, k := range []EventKind{EventParryWindowOpened, EventParryReady, EventParryWindowClosed, EventParried} {
		if rec.count(k) != 1 {
			t.Fatalf("expected one %s event, got %v", k, rec.events)
		}
	}
}

func TestTriggerParry_BeforeWindowIsIgnored(t *testing.T) {
	b, _ := newTestBattle(t, heroTemplate(), goblinTemplate(), &seqRand{vals: []int{pickAttack}}, &memLog{})
	b.SubmitAction(t0, Action{Kind: game.ActionAttack})

	start := t0.Add(time.Second)
	b.Update(start)
	if b.TriggerParry(start.Add(50 * time.Millisecond)) {
		t.Fatalf("parry registered before the window opened")
	}
	b.Update(start.Add(time.Second))
	if b.Player().Health != 86 {
		t.Fatalf("early parry must not block the hit, health=%d", b.Player().Health)
	}
}

func TestTriggerParry_OncePerWindow(t *testing.T) {
	b, rec := newTestBattle(t, heroTemplate(), goblinTemplate(), &seqRand{vals: []int{pickAttack}}, &memLog{})
	b.SubmitAction(t0, Action{Kind: game.ActionAttack})

	start := t0.Add(time.Second)
	b.Update(start)
	if !b.TriggerParry(start.Add(180 * time.Millisecond)) {
		t.Fatalf("first parry not registered")
	}
	if b.TriggerParry(start.Add(200 * time.Millisecond)) {
		t.Fatalf("second parry in the same window registered")
	}
	if rec.count(EventParryReady) != 1 || rec.count(EventParryWindowOpened) != 1 {
		t.Fatalf("window reopened: %v", rec.events)
	}
}

func TestTriggerParry_OutsideStrike(t *testing.T) {
	b, _ := newTestBattle(t, heroTemplate(), goblinTemplate(), &seqRand{vals: []int{pickDefend}}, &memLog{})
	if b.TriggerParry(t0) {
		t.Fatalf("parry registered on the player's turn")
	}
	b.SubmitAction(t0, Action{Kind: game.ActionAttack})
	if b.TriggerParry(t0.Add(500 * time.Millisecond)) {
		t.Fatalf("parry registered before the enemy turn started")
	}
	// A non-striking enemy move never opens a window.
	b.Update(t0.Add(time.Second))
	if b.TriggerParry(t0.Add(time.Second + 200*time.Millisecond)) {
		t.Fatalf("parry registered without a strike")
	}
}

func TestTriggerParry_AfterWindowBeforeImpact(t *testing.T) {
	rec := &eventRecorder{}
	b, err := NewBattle(
		mustCombatant(t, heroTemplate(), game.ControllerPlayer),
		mustCombatant(t, goblinTemplate(), game.ControllerEngine),
		Options{
			ID:   "battle-2",
			Rand: &seqRand{vals: []int{pickAttack}},
			Timing: Timing{
				EnemyTurnDelay: time.Second,
				ParryOffset:    100 * time.Millisecond,
				ParryWindow:    100 * time.Millisecond,
				StrikeDuration: 500 * time.Millisecond,
			},
			Events: rec,
		},
	)
	if err != nil {
		t.Fatalf("NewBattle: %v", err)
	}
	b.SubmitAction(t0, Action{Kind: game.ActionAttack})

	start := t0.Add(time.Second)
	b.Update(start)
	b.Update(start.Add(150 * time.Millisecond))
	if !b.Snapshot().ParryWindowOpen {
		t.Fatalf("expected the window open at +150ms")
	}
	if b.TriggerParry(start.Add(300 * time.Millisecond)) {
		t.Fatalf("parry registered after the window closed")
	}
	if rec.count(EventParryWindowClosed) != 1 {
		t.Fatalf("expected the window to close once, got %v", rec.events)
	}
	b.Update(start.Add(500 * time.Millisecond))
	if b.Player().Health != 86 {
		t.Fatalf("late parry must not block the hit, health=%d", b.Player().Health)
	}
}

func TestTiming_StrikeNeverShorterThanWindow(t *testing.T) {
	got := Timing{ParryOffset: time.Second, ParryWindow: time.Second}.normalized()
	if got.StrikeDuration != 2*time.Second {
		t.Fatalf("expected strike stretched to 2s, got %v", got.StrikeDuration)
	}
}

func TestBattleTiming_DefaultsAndNormalizes(t *testing.T) {
	b, _ := newTestBattle(t, heroTemplate(), goblinTemplate(), &seqRand{}, &memLog{})
	if b.Timing() != DefaultTiming() {
		t.Fatalf("zero timing should become the default, got %+v", b.Timing())
	}

	custom := Timing{EnemyTurnDelay: time.Second, ParryOffset: time.Second, ParryWindow: time.Second}
	b2, err := NewBattle(
		mustCombatant(t, heroTemplate(), game.ControllerPlayer),
		mustCombatant(t, goblinTemplate(), game.ControllerEngine),
		Options{Timing: custom},
	)
	if err != nil {
		t.Fatalf("NewBattle: %v", err)
	}
	if got := b2.Timing(); got.StrikeDuration != 2*time.Second || got.ParryWindow != time.Second {
		t.Fatalf("unexpected timing %+v", got)
	}
}
