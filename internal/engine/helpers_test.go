package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/Watcharapat-P/compro2-final-project-Starry-Night/internal/game"
)

var t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// seqRand replays a fixed sequence of picks, each taken modulo n.
type seqRand struct {
	vals []int
	i    int
}

func (r *seqRand) Intn(n int) int {
	if len(r.vals) == 0 {
		return 0
	}
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v % n
}

type memLog struct {
	summaries []game.BattleSummary
	err       error
}

func (m *memLog) Append(s game.BattleSummary) error {
	if m.err != nil {
		return m.err
	}
	m.summaries = append(m.summaries, s)
	return nil
}

var errDiskFull = errors.New("disk full")

type eventRecorder struct {
	events []Event
}

func (r *eventRecorder) OnEvent(e Event) { r.events = append(r.events, e) }

func (r *eventRecorder) count(kind EventKind) int {
	n := 0
	for _, e := range r.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func heroTemplate() game.Template {
	return game.Template{
		Name:      "Hero",
		Health:    100,
		Mana:      50,
		Strength:  15,
		Defense:   5,
		Abilities: []game.Ability{game.AbilityFireball, game.AbilityHeal, game.AbilityBash, game.AbilityShield},
		Items:     []game.Item{game.ItemPotion, game.ItemElixir},
	}
}

func goblinTemplate() game.Template {
	return game.Template{
		Name:      "Goblin",
		Health:    60,
		Mana:      20,
		Strength:  15,
		Defense:   5,
		Abilities: []game.Ability{game.AbilitySwipe, game.AbilityKick},
	}
}

func mustCombatant(t *testing.T, tpl game.Template, ctrl game.Controller) *Combatant {
	t.Helper()
	c, err := NewCombatant(tpl, ctrl, nil)
	if err != nil {
		t.Fatalf("NewCombatant(%s): %v", tpl.Name, err)
	}
	return c
}

func newTestBattle(t *testing.T, player, enemy game.Template, rng Rand, log CombatLog) (*Battle, *eventRecorder) {
	t.Helper()
	rec := &eventRecorder{}
	b, err := NewBattle(
		mustCombatant(t, player, game.ControllerPlayer),
		mustCombatant(t, enemy, game.ControllerEngine),
		Options{ID: "battle-1", Stage: 1, Rand: rng, Log: log, Events: rec},
	)
	if err != nil {
		t.Fatalf("NewBattle: %v", err)
	}
	return b, rec
}
