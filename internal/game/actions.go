package game

import "strings"

// ActionKind is the top-level choice the player submits on their turn.
type ActionKind string

const (
	ActionNone    ActionKind = ""
	ActionAttack  ActionKind = "attack"
	ActionDefend  ActionKind = "defend"
	ActionAbility ActionKind = "ability"
	ActionItem    ActionKind = "item"
)

// ParseActionKind maps free-form input to an ActionKind.
func ParseActionKind(s string) (ActionKind, bool) {
	switch k := ActionKind(strings.ToLower(strings.TrimSpace(s))); k {
	case ActionAttack, ActionDefend, ActionAbility, ActionItem:
		return k, true
	}
	return ActionNone, false
}

// Label is the move-history label for the plain actions ("Attack", "Defend").
// Ability and item moves are recorded under their own names instead.
func (k ActionKind) Label() string {
	return titleCase(string(k))
}

// Controller tells who drives a combatant's choices.
type Controller int

const (
	// ControllerPlayer submits actions and may parry incoming strikes.
	ControllerPlayer Controller = iota
	// ControllerEngine picks its moves with the random policy.
	ControllerEngine
)

func (c Controller) String() string {
	if c == ControllerPlayer {
		return "player"
	}
	return "engine"
}
