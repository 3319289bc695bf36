package engine

import "time"

// Frame pacing of the presentation layer: 60 ticks per second, one
// animation frame every 5 ticks.
const (
	tick  = time.Second / 60
	frame = 5 * tick
)

// Timing holds the deferred-time parameters of a battle.
type Timing struct {
	// EnemyTurnDelay separates the player's resolved action from the
	// enemy's move.
	EnemyTurnDelay time.Duration
	// ParryOffset is how far into an enemy strike the parry window opens.
	ParryOffset time.Duration
	// ParryWindow is how long the window stays open.
	ParryWindow time.Duration
	// StrikeDuration is when, relative to the start of the strike, the hit
	// lands. It is never shorter than ParryOffset+ParryWindow.
	StrikeDuration time.Duration
}

// DefaultTiming mirrors a four-frame attack animation whose parry window
// spans frames 2 and 3.
func DefaultTiming() Timing {
	return Timing{
		EnemyTurnDelay: time.Second,
		ParryOffset:    2 * frame,
		ParryWindow:    2 * frame,
		StrikeDuration: 4 * frame,
	}
}

func (t Timing) normalized() Timing {
	if t.StrikeDuration < t.ParryOffset+t.ParryWindow {
		t.StrikeDuration = t.ParryOffset + t.ParryWindow
	}
	return t
}

// strike is an enemy move in flight towards the player.
type strike struct {
	move    Move
	opensAt time.Time
	closeAt time.Time
	landsAt time.Time
}

func newStrike(m Move, start time.Time, t Timing) *strike {
	return &strike{
		move:    m,
		opensAt: start.Add(t.ParryOffset),
		closeAt: start.Add(t.ParryOffset + t.ParryWindow),
		landsAt: start.Add(t.StrikeDuration),
	}
}

// parryState is the per-strike parry bookkeeping. It is reset whenever a
// strike starts or lands.
type parryState struct {
	windowOpen bool
	pending    bool
	// spent marks that this strike's window already opened and closed (or
	// honored a parry); it never reopens.
	spent bool
}

// ConsumeParry implements ParryGuard for the battle's own combatants.
func (b *Battle) ConsumeParry() bool {
	if !b.parry.pending {
		return false
	}
	b.parry.pending = false
	b.parry.windowOpen = false
	return true
}

// TriggerParry registers the player's parry input at now. It is honored only
// while the current strike's window is open, once per window. The return
// value reports whether the parry was registered.
func (b *Battle) TriggerParry(now time.Time) bool {
	if b.phase != phaseEnemyStrike || b.strike == nil {
		return false
	}
	b.syncWindow(now)
	if !b.parry.windowOpen {
		return false
	}
	b.parry.pending = true
	b.closeWindow()
	b.emit(Event{Kind: EventParryReady, Actor: b.player.Name})
	return true
}

// syncWindow opens or closes the parry window of the strike in flight to
// match now.
func (b *Battle) syncWindow(now time.Time) {
	s := b.strike
	if s == nil {
		return
	}
	inside := !now.Before(s.opensAt) && now.Before(s.closeAt)
	switch {
	case inside && !b.parry.windowOpen && !b.parry.spent:
		b.parry.windowOpen = true
		b.emit(Event{Kind: EventParryWindowOpened, Actor: b.enemy.Name})
	case !inside && b.parry.windowOpen:
		b.closeWindow()
	case !now.Before(s.closeAt):
		b.parry.spent = true
	}
}

func (b *Battle) closeWindow() {
	b.parry.windowOpen = false
	b.parry.spent = true
	b.emit(Event{Kind: EventParryWindowClosed, Actor: b.enemy.Name})
}
