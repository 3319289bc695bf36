package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Watcharapat-P/compro2-final-project-Starry-Night/internal/constants"
	"github.com/Watcharapat-P/compro2-final-project-Starry-Night/internal/logging"
	"github.com/Watcharapat-P/compro2-final-project-Starry-Night/internal/version"
)

func main() {
	var (
		configPath  = flag.String("config", "", "config file (.json, .yaml or .yml); defaults to $"+constants.EnvConfigPath+" or "+constants.DefaultConfigPath)
		stage       = flag.Int("stage", 1, "stage to fight")
		sim         = flag.Bool("sim", false, "run autopilot battles instead of an interactive one")
		battles     = flag.Int("n", 100, "number of autopilot battles with -sim")
		workers     = flag.Int("workers", 4, "concurrent autopilot battles with -sim")
		seed        = flag.Int64("seed", 1, "rng seed for -sim")
		parry       = flag.Int("parry", 50, "percent chance the autopilot parries a strike")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	logging.Init(os.Getenv(constants.EnvLogLevel))
	defer logging.Sync()

	path := *configPath
	if path == "" {
		path = os.Getenv(constants.EnvConfigPath)
	}
	if path == "" {
		path = constants.DefaultConfigPath
	}
	cfg := loadConfigOrExit(path, os.Getenv)
	combatLog, closeLog := createCombatLogOrExit(cfg)
	defer closeLog()

	logging.Info("starry night starting", logging.Fields{
		constants.LogFieldVersion: version.Version,
		constants.LogFieldCommit:  version.Commit,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	if *sim {
		err = runSimulation(ctx, cfg, combatLog, simFlags{
			battles: *battles,
			workers: *workers,
			stage:   *stage,
			seed:    *seed,
			parry:   *parry,
		})
	} else {
		err = runInteractive(ctx, cfg, combatLog, *stage, os.Stdin, os.Stdout)
	}
	if err != nil {
		logging.Error("starry night stopped", err, nil)
		closeLog()
		logging.Sync()
		os.Exit(1)
	}
}
