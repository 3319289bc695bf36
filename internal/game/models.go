package game

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Template is the attribute sheet a Combatant is built from. Templates come
// from the configuration file (or the built-in defaults) and are never
// mutated by a battle.
type Template struct {
	Name      string    `json:"name" yaml:"name"`
	Health    int       `json:"health" yaml:"health"`
	Mana      int       `json:"mana" yaml:"mana"`
	Strength  int       `json:"strength" yaml:"strength"`
	Defense   int       `json:"defense" yaml:"defense"`
	Abilities []Ability `json:"abilities" yaml:"abilities"`
	Items     []Item    `json:"items" yaml:"items"`
}

// Outcome is the terminal result of a battle from the player's side.
type Outcome string

const (
	OutcomeNone    Outcome = ""
	OutcomeVictory Outcome = "victory"
	OutcomeDefeat  Outcome = "defeat"
)

// CombatantSummary holds the end-of-battle accumulators for one side.
type CombatantSummary struct {
	Name            string   `json:"name"`
	DamageDealt     int      `json:"damage_dealt"`
	HealingDone     int      `json:"healing_done"`
	DamageMitigated int      `json:"damage_mitigated"`
	Moveset         []string `json:"moveset"`
}

// BattleSummary is what a finished battle hands to the combat log. The
// player's summary always comes first.
type BattleSummary struct {
	BattleID   string             `json:"battle_id"`
	Stage      int                `json:"stage"`
	Outcome    Outcome            `json:"outcome"`
	FinishedAt time.Time          `json:"finished_at"`
	Combatants []CombatantSummary `json:"combatants"`
}

// Text renders the post-battle combat report shown on the game-over screen.
func (s BattleSummary) Text() string {
	var b strings.Builder
	for i, c := range s.Combatants {
		fmt.Fprintf(&b, "%s dealt %d damage.\n", c.Name, c.DamageDealt)
		fmt.Fprintf(&b, "%s healed %d HP.\n", c.Name, c.HealingDone)
		// the enemy never parries, so its mitigation line is left out
		if i == 0 {
			fmt.Fprintf(&b, "%s mitigated %d damage.\n", c.Name, c.DamageMitigated)
		}
	}
	return b.String()
}

// CombatRecord is one persisted combat-log row in the sqlite mirror. Rows
// are only ever inserted.
type CombatRecord struct {
	gorm.Model
	BattleID        string    `json:"battle_id" gorm:"index;size:36"`
	Stage           int       `json:"stage"`
	Outcome         Outcome   `json:"outcome" gorm:"size:16"`
	Matchup         string    `json:"matchup" gorm:"index"`
	Position        int       `json:"position"`
	Name            string    `json:"name" gorm:"index"`
	DamageDealt     int       `json:"damage_dealt"`
	HealingDone     int       `json:"healing_done"`
	DamageMitigated int       `json:"damage_mitigated"`
	Movesets        string    `json:"movesets"`
	FinishedAt      time.Time `json:"finished_at"`
}

// TableName keeps the table name aligned with the CSV file it mirrors.
func (CombatRecord) TableName() string { return "combat_log" }
