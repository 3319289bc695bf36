package engine

import "github.com/Watcharapat-P/compro2-final-project-Starry-Night/internal/game"

// CombatantView is a read-only copy of one combatant's visible state.
type CombatantView struct {
	Name         string
	Health       int
	MaxHealth    int
	Mana         int
	MaxMana      int
	Strength     int
	Defense      int
	DefendStance bool
	Abilities    []game.Ability
	Items        []game.Item
}

// Snapshot is what the presentation layer polls between engine calls.
type Snapshot struct {
	State           State
	ActionMessage   string
	ShowAbilities   bool
	ShowItems       bool
	ParryWindowOpen bool
	Outcome         game.Outcome
	Player          CombatantView
	Enemy           CombatantView
}

// Snapshot copies the battle's visible state.
func (b *Battle) Snapshot() Snapshot {
	return Snapshot{
		State:           b.State(),
		ActionMessage:   b.actionMessage,
		ShowAbilities:   b.showAbilities,
		ShowItems:       b.showItems,
		ParryWindowOpen: b.parry.windowOpen,
		Outcome:         b.outcome,
		Player:          viewOf(b.player),
		Enemy:           viewOf(b.enemy),
	}
}

func viewOf(c *Combatant) CombatantView {
	abilities := make([]game.Ability, len(c.Abilities))
	copy(abilities, c.Abilities)
	items := make([]game.Item, len(c.Items))
	copy(items, c.Items)
	return CombatantView{
		Name:         c.Name,
		Health:       c.Health,
		MaxHealth:    c.MaxHealth,
		Mana:         c.Mana,
		MaxMana:      c.MaxMana,
		Strength:     c.Strength,
		Defense:      c.Defense,
		DefendStance: c.DefendStance,
		Abilities:    abilities,
		Items:        items,
	}
}
