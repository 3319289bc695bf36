package engine

import "github.com/Watcharapat-P/compro2-final-project-Starry-Night/internal/game"

// EventKind names a discrete moment the presentation layer may react to
// (animation, sound). Events are fired synchronously as each one resolves.
type EventKind string

const (
	EventStartedAttack     EventKind = "started-attack"
	EventStartedDefend     EventKind = "started-defend"
	EventCast              EventKind = "cast"
	EventUsedItem          EventKind = "used-item"
	EventParryWindowOpened EventKind = "parry-window-opened"
	EventParryWindowClosed EventKind = "parry-window-closed"
	EventParryReady        EventKind = "parry-ready"
	EventParried           EventKind = "parried"
	EventKnockedOut        EventKind = "knocked-out"
)

// Event is one engine notification. Actor is the combatant the event is
// about; Ability and Item are set for cast and used-item.
type Event struct {
	Kind    EventKind
	Actor   string
	Ability game.Ability
	Item    game.Item
}

// EventSink consumes engine events. Implementations must not call back into
// the engine.
type EventSink interface {
	OnEvent(Event)
}

// EventFunc adapts a plain function to EventSink.
type EventFunc func(Event)

func (f EventFunc) OnEvent(e Event) { f(e) }

type discardEvents struct{}

func (discardEvents) OnEvent(Event) {}
