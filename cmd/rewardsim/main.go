// Package main runs offline companion reward simulations to tune pet odds
// and resistance costs.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/bruto/internal/config"
	"github.com/cory-johannsen/bruto/internal/game/pet"
	"github.com/cory-johannsen/bruto/internal/game/reward"
	"github.com/cory-johannsen/bruto/internal/game/skill"
	"github.com/cory-johannsen/bruto/internal/observability"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	trials := flag.Int("trials", 10000, "number of simulated characters")
	victories := flag.Int("victories", 10, "acquisition attempts per character")
	seed := flag.Int64("seed", 1, "base seed; trial i uses seed+i")
	skillList := flag.String("skills", "", "comma-separated skill IDs granted to every character")
	workers := flag.Int("workers", runtime.NumCPU(), "concurrent trials")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	catalog, err := pet.LoadFile(cfg.Content.PetsFile)
	if err != nil {
		logger.Fatal("loading pet catalog", zap.Error(err))
	}
	selector := pet.NewSelector(catalog, cfg.Rewards.PetOdds, logger)

	skillCatalog, err := skill.LoadDirectory(cfg.Content.SkillsDir)
	if err != nil {
		logger.Fatal("loading skill catalog", zap.Error(err))
	}
	engine := skill.NewEngine(skillCatalog, logger, skill.WithArmorCap(cfg.Combat.ArmorCap))

	simCfg := reward.SimulationConfig{
		Trials:    *trials,
		Victories: *victories,
		BaseSeed:  *seed,
		Workers:   *workers,
		Engine:    engine,
	}
	if *skillList != "" {
		simCfg.Skills = strings.Split(*skillList, ",")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rep, err := reward.Simulate(ctx, catalog, selector, simCfg)
	if err != nil {
		logger.Fatal("simulation failed", zap.Error(err))
	}

	fmt.Fprintf(os.Stdout, "trials=%d attempts=%d [%s]\n", rep.Trials, rep.Attempts, time.Since(start))
	for _, t := range catalog.Types() {
		n := rep.Acquired[t]
		fmt.Fprintf(os.Stdout, "  %-8s %8d  %6.2f%%\n", t, n, percent(n, rep.Attempts))
	}
	fmt.Fprintf(os.Stdout, "  %-8s %8d  %6.2f%%\n", "none", rep.NoCompanion, percent(rep.NoCompanion, rep.Attempts))
	fmt.Fprintf(os.Stdout, "  %-8s %8d  %6.2f%%\n", "poor", rep.Insufficient, percent(rep.Insufficient, rep.Attempts))
	fmt.Fprintf(os.Stdout, "mean resistance: start %.2f, final %.2f\n", rep.StartResistance, rep.FinalResistance)
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) * 100 / float64(total)
}
