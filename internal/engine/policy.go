package engine

import (
	"fmt"
	"math/rand"

	"github.com/Watcharapat-P/compro2-final-project-Starry-Night/internal/constants"
	"github.com/Watcharapat-P/compro2-final-project-Starry-Night/internal/game"
)

// --- Move model ---------------------------------------------------------

// Move is one concrete choice: a plain attack/defend, or an ability/item
// together with the chosen name. The zero Move is a no-op.
type Move struct {
	Kind    game.ActionKind
	Ability game.Ability
	Item    game.Item
}

// Label is the move-history label of m.
func (m Move) Label() string {
	switch m.Kind {
	case game.ActionAbility:
		return string(m.Ability)
	case game.ActionItem:
		return string(m.Item)
	}
	return m.Kind.Label()
}

// Rand is the random source the enemy policy draws from. *rand.Rand
// satisfies it; tests pass a scripted sequence.
type Rand interface {
	Intn(n int) int
}

type globalRand struct{}

func (globalRand) Intn(n int) int { return rand.Intn(n) }

// policyKinds is the uniform menu the enemy picks from.
var policyKinds = []game.ActionKind{game.ActionAttack, game.ActionDefend, game.ActionAbility, game.ActionItem}

// ChooseMove picks uniformly among attack, defend, ability and item, then
// uniformly among the available abilities or items. An empty category yields
// the zero Move.
func (c *Combatant) ChooseMove(rng Rand) Move {
	switch kind := policyKinds[rng.Intn(len(policyKinds))]; kind {
	case game.ActionAbility:
		if len(c.Abilities) == 0 {
			return Move{}
		}
		return Move{Kind: kind, Ability: c.Abilities[rng.Intn(len(c.Abilities))]}
	case game.ActionItem:
		if len(c.Items) == 0 {
			return Move{}
		}
		return Move{Kind: kind, Item: c.Items[rng.Intn(len(c.Items))]}
	default:
		return Move{Kind: kind}
	}
}

// TakeTurn picks a move with ChooseMove and performs it against opponent at
// once. A no-op pick or a refused cast leaves every combatant unchanged.
func (c *Combatant) TakeTurn(opponent *Combatant, rng Rand, guard ParryGuard) string {
	return c.playMove(c.ChooseMove(rng), opponent, guard)
}

func (c *Combatant) playMove(m Move, opponent *Combatant, guard ParryGuard) string {
	if m.Kind == game.ActionNone {
		return fmt.Sprintf(constants.MsgHesitateFmt, c.Name)
	}
	return c.Perform(m, opponent, guard).Message
}
