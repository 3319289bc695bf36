package main

import (
	"github.com/Watcharapat-P/compro2-final-project-Starry-Night/internal/config"
	"github.com/Watcharapat-P/compro2-final-project-Starry-Night/internal/constants"
	"github.com/Watcharapat-P/compro2-final-project-Starry-Night/internal/logging"
	"github.com/Watcharapat-P/compro2-final-project-Starry-Night/internal/storage"
)

func loadConfigOrExit(path string, getenv func(string) string) *config.LoadedConfig {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		logging.Fatal("Missing or invalid starry configuration", err, logging.Fields{"config_path": path, "hint": "provide a JSON or YAML file with player, enemies, stages, timing and combat_log sections"})
	}
	cfg.ApplyEnv(getenv)
	return cfg
}

// createCombatLogOrExit builds the CSV log and, when a sqlite path is set,
// fans out to the sqlite mirror as well. The returned func closes the
// database.
func createCombatLogOrExit(cfg *config.LoadedConfig) (storage.CombatLog, func()) {
	csvLog := storage.NewCSVLog(cfg.CSVPath)
	logging.Info("combat log ready", logging.Fields{constants.LogFieldPath: csvLog.Path()})
	if cfg.SQLitePath == "" {
		return csvLog, func() {}
	}
	db, err := storage.OpenAndMigrate(cfg.SQLitePath)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, logging.Fields{constants.LogFieldPath: cfg.SQLitePath})
	}
	logging.Info("sqlite mirror ready", logging.Fields{constants.LogFieldPath: cfg.SQLitePath})
	closeDB := func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}
	return storage.NewMultiLog(csvLog, storage.NewSQLiteRepository(db)), closeDB
}
