package main

import (
	"context"
	"fmt"

	"github.com/Watcharapat-P/compro2-final-project-Starry-Night/internal/config"
	"github.com/Watcharapat-P/compro2-final-project-Starry-Night/internal/engine"
	"github.com/Watcharapat-P/compro2-final-project-Starry-Night/internal/service"
)

type simFlags struct {
	battles int
	workers int
	stage   int
	seed    int64
	parry   int
}

func runSimulation(ctx context.Context, cfg *config.LoadedConfig, log engine.CombatLog, f simFlags) error {
	report, err := service.Simulate(ctx, cfg, log, service.SimOptions{
		Battles:      f.battles,
		Workers:      f.workers,
		Stage:        f.stage,
		Seed:         f.seed,
		ParryPercent: f.parry,
	})
	if err != nil {
		return err
	}
	fmt.Printf("battles: %d  victories: %d  defeats: %d  unfinished: %d\n",
		report.Battles, report.Victories, report.Defeats, report.Unfinished)
	return nil
}
