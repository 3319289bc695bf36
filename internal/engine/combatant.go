package engine

import (
	"fmt"
	"strings"

	"github.com/Watcharapat-P/compro2-final-project-Starry-Night/internal/constants"
	"github.com/Watcharapat-P/compro2-final-project-Starry-Night/internal/game"
)

// ParryGuard is the narrow view of a battle's parry state that a defender
// consults when a hit lands. ConsumeParry reports whether a parry was
// registered for the current strike and clears it.
type ParryGuard interface {
	ConsumeParry() bool
}

// NoParry is a guard that never parries. Useful outside a Battle.
var NoParry ParryGuard = noParry{}

type noParry struct{}

func (noParry) ConsumeParry() bool { return false }

// DamageResult is what TakeDamage did with an incoming hit.
type DamageResult struct {
	Applied int
	Parried bool
}

// Combatant is one fighter's mutable battle state. It lives exactly as long
// as the battle it was built for.
type Combatant struct {
	Name       string
	Controller game.Controller

	Health    int
	MaxHealth int
	Mana      int
	MaxMana   int
	Strength  int
	Defense   int

	Abilities []game.Ability
	Items     []game.Item

	// DefendStance halves the next incoming hit and is cleared by it.
	DefendStance bool

	TotalDamageDealt     int
	TotalHealingDone     int
	TotalDamageMitigated int

	// Moves is the ordered history of action labels this combatant took.
	Moves []string

	catalog *Catalog
	events  EventSink
}

// NewCombatant builds a combatant from a template. Every ability and item of
// the template must resolve in cat; duplicates are dropped.
func NewCombatant(t game.Template, ctrl game.Controller, cat *Catalog) (*Combatant, error) {
	if cat == nil {
		cat = DefaultCatalog()
	}
	if strings.TrimSpace(t.Name) == "" {
		return nil, fmt.Errorf("%w: combatant without a name", ErrConfiguration)
	}
	if t.Health <= 0 {
		return nil, fmt.Errorf("%w: %s must start with positive health", ErrConfiguration, t.Name)
	}
	if t.Mana < 0 || t.Strength < 0 || t.Defense < 0 {
		return nil, fmt.Errorf("%w: %s has negative stats", ErrConfiguration, t.Name)
	}
	if err := cat.Validate(t); err != nil {
		return nil, err
	}
	return &Combatant{
		Name:       t.Name,
		Controller: ctrl,
		Health:     t.Health,
		MaxHealth:  t.Health,
		Mana:       t.Mana,
		MaxMana:    t.Mana,
		Strength:   t.Strength,
		Defense:    t.Defense,
		Abilities:  uniqueAbilities(t.Abilities),
		Items:      uniqueItems(t.Items),
		Moves:      make([]string, 0, 16),
		catalog:    cat,
		events:     discardEvents{},
	}, nil
}

// Attack hits target with a basic attack.
func (c *Combatant) Attack(target *Combatant, guard ParryGuard) string {
	return c.Perform(Move{Kind: game.ActionAttack}, target, guard).Message
}

// Defend raises the defend stance for the next incoming hit.
func (c *Combatant) Defend() string {
	return c.Perform(Move{Kind: game.ActionDefend}, nil, NoParry).Message
}

// UseAbility casts name on target. The bool is false when the cast was
// rejected (unknown ability or not enough mana); nothing changes then.
func (c *Combatant) UseAbility(name string, target *Combatant, guard ParryGuard) (string, bool) {
	a, ok := game.ParseAbility(name)
	if !ok {
		return constants.MsgInvalidAbility, false
	}
	res := c.Perform(Move{Kind: game.ActionAbility, Ability: a}, target, guard)
	return res.Message, res.Accepted
}

// UseItem uses the named item. The bool is false when the item is unknown
// to this combatant.
func (c *Combatant) UseItem(name string, target *Combatant, guard ParryGuard) (string, bool) {
	it, ok := game.ParseItem(name)
	if !ok {
		return constants.MsgInvalidItem, false
	}
	res := c.Perform(Move{Kind: game.ActionItem, Item: it}, target, guard)
	return res.Message, res.Accepted
}

// TakeDamage applies an incoming hit. A player-controlled defender with a
// registered parry takes nothing and credits the amount as mitigated.
// Otherwise the defend stance halves the hit. The stance is cleared either
// way. Health is not clamped at zero; the battle's win check reads it.
func (c *Combatant) TakeDamage(amount int, guard ParryGuard) DamageResult {
	defending := c.DefendStance
	c.DefendStance = false

	if c.Controller == game.ControllerPlayer && guard != nil && guard.ConsumeParry() {
		c.TotalDamageMitigated += amount
		c.events.OnEvent(Event{Kind: EventParried, Actor: c.Name})
		return DamageResult{Parried: true}
	}
	if defending {
		amount /= 2
	}
	c.Health -= amount
	return DamageResult{Applied: amount}
}

// MoveResult is the outcome of Perform.
type MoveResult struct {
	Message  string
	Accepted bool
}

// Perform checks, announces and resolves a move in one step.
func (c *Combatant) Perform(m Move, target *Combatant, guard ParryGuard) MoveResult {
	if msg, ok := c.check(m); !ok {
		return MoveResult{Message: msg}
	}
	c.announce(m)
	return MoveResult{Message: c.resolve(m, target, guard), Accepted: true}
}

// check reports whether m can be performed now without changing anything.
func (c *Combatant) check(m Move) (string, bool) {
	switch m.Kind {
	case game.ActionAttack, game.ActionDefend:
		return "", true
	case game.ActionAbility:
		if !c.HasAbility(m.Ability) {
			return constants.MsgInvalidAbility, false
		}
		if c.Mana < c.catalog.Cost(m.Ability) {
			return fmt.Sprintf(constants.MsgNotEnoughManaFmt, m.Ability), false
		}
		return "", true
	case game.ActionItem:
		if !c.HasItem(m.Item) {
			return constants.MsgInvalidItem, false
		}
		return "", true
	}
	return constants.MsgInvalidAction, false
}

// announce fires the event marking the start of m.
func (c *Combatant) announce(m Move) {
	switch m.Kind {
	case game.ActionAttack:
		c.events.OnEvent(Event{Kind: EventStartedAttack, Actor: c.Name})
	case game.ActionDefend:
		c.events.OnEvent(Event{Kind: EventStartedDefend, Actor: c.Name})
	case game.ActionAbility:
		c.events.OnEvent(Event{Kind: EventCast, Actor: c.Name, Ability: m.Ability})
	case game.ActionItem:
		c.events.OnEvent(Event{Kind: EventUsedItem, Actor: c.Name, Item: m.Item})
	}
}

// resolve applies a move that already passed check and records it in the
// move history.
func (c *Combatant) resolve(m Move, target *Combatant, guard ParryGuard) string {
	c.Moves = append(c.Moves, m.Label())
	switch m.Kind {
	case game.ActionAttack:
		res := c.hit(target, basicAttackDamage(c.Strength, target.Defense), guard)
		if res.Parried {
			return constants.MsgParried
		}
		return fmt.Sprintf(constants.MsgAttackFmt, c.Name, res.Applied)
	case game.ActionDefend:
		c.DefendStance = true
		return fmt.Sprintf(constants.MsgDefendFmt, c.Name)
	case game.ActionAbility:
		return c.catalog.abilities[m.Ability].apply(c, target, guard)
	case game.ActionItem:
		return c.catalog.items[m.Item].apply(c, target)
	}
	return ""
}

// hit routes damage through the target's TakeDamage and credits what landed.
func (c *Combatant) hit(target *Combatant, amount int, guard ParryGuard) DamageResult {
	res := target.TakeDamage(amount, guard)
	if !res.Parried {
		c.TotalDamageDealt += res.Applied
	}
	return res
}

// HasAbility reports whether a is in this combatant's ability set.
func (c *Combatant) HasAbility(a game.Ability) bool {
	for _, own := range c.Abilities {
		if own == a {
			return true
		}
	}
	return false
}

// HasItem reports whether it is in this combatant's item set.
func (c *Combatant) HasItem(it game.Item) bool {
	for _, own := range c.Items {
		if own == it {
			return true
		}
	}
	return false
}

// Defeated reports whether health has dropped to zero or below.
func (c *Combatant) Defeated() bool { return c.Health <= 0 }

// Summary returns the end-of-battle accumulators for the combat log.
func (c *Combatant) Summary() game.CombatantSummary {
	moves := make([]string, len(c.Moves))
	copy(moves, c.Moves)
	return game.CombatantSummary{
		Name:            c.Name,
		DamageDealt:     c.TotalDamageDealt,
		HealingDone:     c.TotalHealingDone,
		DamageMitigated: c.TotalDamageMitigated,
		Moveset:         moves,
	}
}

func uniqueAbilities(in []game.Ability) []game.Ability {
	out := make([]game.Ability, 0, len(in))
	seen := make(map[game.Ability]struct{}, len(in))
	for _, a := range in {
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		out = append(out, a)
	}
	return out
}

func uniqueItems(in []game.Item) []game.Item {
	out := make([]game.Item, 0, len(in))
	seen := make(map[game.Item]struct{}, len(in))
	for _, it := range in {
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	return out
}
