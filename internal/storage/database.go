package storage

import (
	"github.com/Watcharapat-P/compro2-final-project-Starry-Night/internal/game"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenAndMigrate opens the sqlite combat-log mirror and keeps its schema
// current.
func OpenAndMigrate(dataSourceName string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&game.CombatRecord{}); err != nil {
		return nil, err
	}
	// A battle writes each combatant position once.
	if execErr := db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_combat_log_battle_position ON combat_log(battle_id, position);").Error; execErr != nil {
		return nil, execErr
	}
	return db, nil
}
