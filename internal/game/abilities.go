package game

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Ability is a named special move a combatant can cast. The set is closed:
// every value the engine accepts is listed below.
type Ability string

const (
	AbilityFireball Ability = "Fireball"
	AbilityHeal     Ability = "Heal"
	AbilityBash     Ability = "Bash"
	AbilityShield   Ability = "Shield"
	AbilitySwipe    Ability = "Swipe"
	AbilityKick     Ability = "Kick"
	AbilitySmoke    Ability = "Smoke"
)

// Item is a named consumable. Items are not depleted on use.
type Item string

const (
	ItemPotion Item = "Potion"
	ItemElixir Item = "Elixir"
)

var (
	allAbilities = []Ability{AbilityFireball, AbilityHeal, AbilityBash, AbilityShield, AbilitySwipe, AbilityKick, AbilitySmoke}
	allItems     = []Item{ItemPotion, ItemElixir}
)

// Abilities returns every known ability in declaration order.
func Abilities() []Ability {
	out := make([]Ability, len(allAbilities))
	copy(out, allAbilities)
	return out
}

// Items returns every known item in declaration order.
func Items() []Item {
	out := make([]Item, len(allItems))
	copy(out, allItems)
	return out
}

// ParseAbility resolves a user or config supplied name ("fireball",
// " FIREBALL ") to its canonical Ability.
func ParseAbility(s string) (Ability, bool) {
	a := Ability(canonicalName(s))
	for _, known := range allAbilities {
		if a == known {
			return known, true
		}
	}
	return "", false
}

// ParseItem resolves a user or config supplied name to its canonical Item.
func ParseItem(s string) (Item, bool) {
	it := Item(canonicalName(s))
	for _, known := range allItems {
		if it == known {
			return known, true
		}
	}
	return "", false
}

func canonicalName(s string) string {
	return titleCase(strings.ToLower(strings.TrimSpace(s)))
}

// titleCase builds a fresh Caser per call; Casers keep state and must not be
// shared between goroutines.
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}
