package engine

import (
	"errors"
	"fmt"

	"github.com/Watcharapat-P/compro2-final-project-Starry-Night/internal/constants"
	"github.com/Watcharapat-P/compro2-final-project-Starry-Night/internal/game"
)

// ErrConfiguration reports a template that references abilities or items
// the catalog cannot resolve, or an otherwise unusable combatant setup.
var ErrConfiguration = errors.New("invalid combatant configuration")

// Numeric constants of the effect formulas.
const (
	bashBase      = 15
	fireballBase  = 25
	fireballCost  = 10
	healAmount    = 30
	healCost      = 5
	shieldBonus   = 10
	swipeBase     = 5
	kickBase      = 8
	smokeCost     = 5
	potionAmount  = 20
	elixirAmount  = 30
	defenseDivide = 5
)

// abilityEffect is the dispatch entry for one Ability variant.
type abilityEffect struct {
	cost        int
	description string
	// strikes is true when the ability lands a hit on the target through
	// TakeDamage; engine-controlled strikes open a parry window.
	strikes bool
	apply   func(actor, target *Combatant, guard ParryGuard) string
}

// itemEffect is the dispatch entry for one Item variant.
type itemEffect struct {
	description string
	apply       func(actor, target *Combatant) string
}

// Catalog maps every ability and item to its effect. A Catalog is read-only
// after construction and may be shared between battles.
type Catalog struct {
	abilities map[game.Ability]abilityEffect
	items     map[game.Item]itemEffect
}

// DefaultCatalog returns the catalog with the built-in formulas.
func DefaultCatalog() *Catalog {
	return &Catalog{
		abilities: map[game.Ability]abilityEffect{
			game.AbilityFireball: {cost: fireballCost, description: "Deal 25+STR damage (10 MP)", strikes: true, apply: fireball},
			game.AbilityHeal:     {cost: healCost, description: "Heals 30 HP (5 MP)", apply: heal},
			game.AbilityBash:     {description: "Deal 15+STR damage", strikes: true, apply: bash},
			game.AbilityShield:   {description: "+10 DEF for the battle", apply: shield},
			game.AbilitySwipe:    {description: "Deal 5+STR damage", strikes: true, apply: swipe},
			game.AbilityKick:     {description: "Deal 8+STR damage", strikes: true, apply: kick},
			game.AbilitySmoke:    {cost: smokeCost, description: "Halve the next hit taken (5 MP)", apply: smoke},
		},
		items: map[game.Item]itemEffect{
			game.ItemPotion: {description: "Heals 20 HP", apply: potion},
			game.ItemElixir: {description: "Restores 30 MP", apply: elixir},
		},
	}
}

// Validate checks that every ability and item of t resolves in the catalog.
func (c *Catalog) Validate(t game.Template) error {
	for _, a := range t.Abilities {
		if _, ok := c.abilities[a]; !ok {
			return fmt.Errorf("%w: %s lists unknown ability %q", ErrConfiguration, t.Name, a)
		}
	}
	for _, it := range t.Items {
		if _, ok := c.items[it]; !ok {
			return fmt.Errorf("%w: %s lists unknown item %q", ErrConfiguration, t.Name, it)
		}
	}
	return nil
}

// Cost returns the mana cost of an ability (0 for unknown abilities).
func (c *Catalog) Cost(a game.Ability) int { return c.abilities[a].cost }

// DescribeAbility returns the short text shown next to an ability button.
func (c *Catalog) DescribeAbility(a game.Ability) string { return c.abilities[a].description }

// DescribeItem returns the short text shown next to an item button.
func (c *Catalog) DescribeItem(it game.Item) string { return c.items[it].description }

// Strikes reports whether a move lands a hit on its target.
func (c *Catalog) Strikes(m Move) bool {
	switch m.Kind {
	case game.ActionAttack:
		return true
	case game.ActionAbility:
		return c.abilities[m.Ability].strikes
	}
	return false
}

// --- Formulas ------------------------------------------------------------

// basicAttackDamage is strength minus a fifth of the target's defense,
// never below 1.
func basicAttackDamage(strength, targetDefense int) int {
	return max(1, strength-targetDefense/defenseDivide)
}

// restoreHealth raises health by amount, clamped to maxHealth, and returns
// the amount actually applied.
func restoreHealth(c *Combatant, amount int) int {
	applied := min(amount, c.MaxHealth-c.Health)
	if applied < 0 {
		applied = 0
	}
	c.Health += applied
	return applied
}

func restoreMana(c *Combatant, amount int) int {
	applied := min(amount, c.MaxMana-c.Mana)
	if applied < 0 {
		applied = 0
	}
	c.Mana += applied
	return applied
}

// --- Ability effects -----------------------------------------------------

func fireball(actor, target *Combatant, guard ParryGuard) string {
	actor.Mana -= fireballCost
	res := actor.hit(target, fireballBase+actor.Strength, guard)
	if res.Parried {
		return constants.MsgParried
	}
	return fmt.Sprintf(constants.MsgFireballFmt, actor.Name, res.Applied)
}

func heal(actor, _ *Combatant, _ ParryGuard) string {
	actor.Mana -= healCost
	applied := restoreHealth(actor, healAmount)
	actor.TotalHealingDone += applied
	return fmt.Sprintf(constants.MsgHealFmt, actor.Name, applied)
}

func bash(actor, target *Combatant, guard ParryGuard) string {
	res := actor.hit(target, bashBase+actor.Strength, guard)
	if res.Parried {
		return constants.MsgParried
	}
	return fmt.Sprintf(constants.MsgBashFmt, actor.Name, target.Name, res.Applied)
}

func shield(actor, _ *Combatant, _ ParryGuard) string {
	actor.Defense += shieldBonus
	return fmt.Sprintf(constants.MsgShieldFmt, actor.Name, shieldBonus)
}

func swipe(actor, target *Combatant, guard ParryGuard) string {
	res := actor.hit(target, swipeBase+actor.Strength, guard)
	if res.Parried {
		return constants.MsgParried
	}
	return fmt.Sprintf(constants.MsgSwipeFmt, actor.Name, target.Name, res.Applied)
}

func kick(actor, target *Combatant, guard ParryGuard) string {
	res := actor.hit(target, kickBase+actor.Strength, guard)
	if res.Parried {
		return constants.MsgParried
	}
	return fmt.Sprintf(constants.MsgKickFmt, actor.Name, target.Name, res.Applied)
}

func smoke(actor, _ *Combatant, _ ParryGuard) string {
	actor.Mana -= smokeCost
	actor.DefendStance = true
	return fmt.Sprintf(constants.MsgSmokeFmt, actor.Name)
}

// --- Item effects --------------------------------------------------------

func potion(actor, _ *Combatant) string {
	applied := restoreHealth(actor, potionAmount)
	actor.TotalHealingDone += applied
	return fmt.Sprintf(constants.MsgPotionFmt, actor.Name, applied)
}

func elixir(actor, _ *Combatant) string {
	applied := restoreMana(actor, elixirAmount)
	return fmt.Sprintf(constants.MsgElixirFmt, actor.Name, applied)
}
