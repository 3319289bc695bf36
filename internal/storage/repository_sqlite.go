package storage

import (
	"strings"

	"github.com/Watcharapat-P/compro2-final-project-Starry-Night/internal/game"
	"github.com/Watcharapat-P/compro2-final-project-Starry-Night/internal/keys"

	"gorm.io/gorm"
)

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

// Append inserts one row per combatant in a single transaction.
func (r *sqliteRepository) Append(s game.BattleSummary) error {
	names := make([]string, 0, len(s.Combatants))
	for _, c := range s.Combatants {
		names = append(names, c.Name)
	}
	matchup := keys.MatchupKey(names...)

	records := make([]game.CombatRecord, 0, len(s.Combatants))
	for i, c := range s.Combatants {
		records = append(records, game.CombatRecord{
			BattleID:        s.BattleID,
			Stage:           s.Stage,
			Outcome:         s.Outcome,
			Matchup:         matchup,
			Position:        i,
			Name:            c.Name,
			DamageDealt:     c.DamageDealt,
			HealingDone:     c.HealingDone,
			DamageMitigated: c.DamageMitigated,
			Movesets:        MovesetLiteral(c.Moveset),
			FinishedAt:      s.FinishedAt,
		})
	}
	if len(records) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&records).Error
	})
}

func (r *sqliteRepository) RecordsForBattle(battleID string) ([]game.CombatRecord, error) {
	var out []game.CombatRecord
	if err := r.db.Where("battle_id = ?", battleID).Order("position").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *sqliteRepository) RecordsByName(name string) ([]game.CombatRecord, error) {
	var out []game.CombatRecord
	err := r.db.Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		Order("finished_at, id").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// StatsByName sums a combatant's rows. A win is a victory logged for the
// player position or a defeat logged for the enemy position.
func (r *sqliteRepository) StatsByName(name string) (*NameStats, error) {
	var row struct {
		Battles         int64
		Wins            int64
		DamageDealt     int64
		HealingDone     int64
		DamageMitigated int64
	}
	err := r.db.Model(&game.CombatRecord{}).
		Select(`COUNT(*) AS battles,
			COALESCE(SUM(CASE WHEN (position = 0 AND outcome = ?) OR (position > 0 AND outcome = ?) THEN 1 ELSE 0 END), 0) AS wins,
			COALESCE(SUM(damage_dealt), 0) AS damage_dealt,
			COALESCE(SUM(healing_done), 0) AS healing_done,
			COALESCE(SUM(damage_mitigated), 0) AS damage_mitigated`,
			game.OutcomeVictory, game.OutcomeDefeat).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &NameStats{
		Name:            name,
		Battles:         row.Battles,
		Wins:            row.Wins,
		DamageDealt:     row.DamageDealt,
		HealingDone:     row.HealingDone,
		DamageMitigated: row.DamageMitigated,
	}, nil
}
