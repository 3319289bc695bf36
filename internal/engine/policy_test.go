package engine

import (
	"testing"

	"github.com/Watcharapat-P/compro2-final-project-Starry-Night/internal/game"
)

func TestTakeTurn_AttackResolves(t *testing.T) {
	gob := mustCombatant(t, goblinTemplate(), game.ControllerEngine)
	hero := mustCombatant(t, heroTemplate(), game.ControllerPlayer)

	msg := gob.TakeTurn(hero, &seqRand{vals: []int{pickAttack}}, NoParry)

	if msg != "Goblin attacks for 14 damage!" {
		t.Fatalf("unexpected message %q", msg)
	}
	if hero.Health != 86 || gob.TotalDamageDealt != 14 {
		t.Fatalf("expected 14 damage, hero=%d dealt=%d", hero.Health, gob.TotalDamageDealt)
	}
	if len(gob.Moves) != 1 || gob.Moves[0] != "Attack" {
		t.Fatalf("expected history [Attack], got %v", gob.Moves)
	}
}

func TestTakeTurn_EmptyCategoryHesitates(t *testing.T) {
	gob := mustCombatant(t, goblinTemplate(), game.ControllerEngine)
	hero := mustCombatant(t, heroTemplate(), game.ControllerPlayer)

	msg := gob.TakeTurn(hero, &seqRand{vals: []int{pickItem}}, NoParry)

	if msg != "Goblin hesitates." {
		t.Fatalf("unexpected message %q", msg)
	}
	if hero.Health != hero.MaxHealth || gob.Mana != gob.MaxMana || len(gob.Moves) != 0 {
		t.Fatalf("a hesitation must change nothing: hero=%d mana=%d moves=%v", hero.Health, gob.Mana, gob.Moves)
	}
}

func TestTakeTurn_RefusedCastChangesNothing(t *testing.T) {
	tpl := heroTemplate()
	tpl.Name = "Mage"
	tpl.Mana = 0
	mage := mustCombatant(t, tpl, game.ControllerEngine)
	hero := mustCombatant(t, heroTemplate(), game.ControllerPlayer)
	rec := &eventRecorder{}
	mage.events = rec

	msg := mage.TakeTurn(hero, &seqRand{vals: []int{pickAbility, 0}}, NoParry)

	if msg != "Not enough mana for Fireball!" {
		t.Fatalf("unexpected message %q", msg)
	}
	if hero.Health != hero.MaxHealth || mage.Mana != 0 || mage.TotalDamageDealt != 0 {
		t.Fatalf("refused cast mutated state: hero=%d mana=%d dealt=%d", hero.Health, mage.Mana, mage.TotalDamageDealt)
	}
	if len(mage.Moves) != 0 || len(rec.events) != 0 {
		t.Fatalf("refused cast recorded history %v or events %v", mage.Moves, rec.events)
	}
}
