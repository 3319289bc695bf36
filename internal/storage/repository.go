package storage

import "github.com/Watcharapat-P/compro2-final-project-Starry-Night/internal/game"

// CombatLog is the append side of every store. It matches engine.CombatLog.
type CombatLog interface {
	Append(s game.BattleSummary) error
}

// Repository is the query side of the sqlite combat-log mirror.
type Repository interface {
	CombatLog
	// RecordsForBattle returns the rows of one battle in combatant order.
	RecordsForBattle(battleID string) ([]game.CombatRecord, error)
	// RecordsByName returns every row of one combatant (case-insensitive),
	// oldest first.
	RecordsByName(name string) ([]game.CombatRecord, error)
	// StatsByName aggregates a combatant's rows.
	StatsByName(name string) (*NameStats, error)
}

// NameStats sums a combatant's logged battles.
type NameStats struct {
	Name            string
	Battles         int64
	Wins            int64
	DamageDealt     int64
	HealingDone     int64
	DamageMitigated int64
}
