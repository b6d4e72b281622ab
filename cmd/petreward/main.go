// Package main grants a post-victory companion reward to a stored character.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/cory-johannsen/bruto/internal/config"
	"github.com/cory-johannsen/bruto/internal/game/pet"
	"github.com/cory-johannsen/bruto/internal/game/reward"
	"github.com/cory-johannsen/bruto/internal/game/rng"
	"github.com/cory-johannsen/bruto/internal/observability"
	"github.com/cory-johannsen/bruto/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	characterID := flag.Int64("character", 0, "character ID to reward")
	seedFlag := flag.String("seed", "", "battle seed: an integer, or any string to hash")
	flag.Parse()

	if *characterID <= 0 || *seedFlag == "" {
		fmt.Fprintln(os.Stderr, "usage: petreward -character <id> -seed <seed> [-config <path>]")
		os.Exit(1)
	}

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	base, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer base.Sync()

	src := seededRNG(*seedFlag)
	logger := observability.WithSeed(base, src.Seed())

	catalog, err := pet.LoadFile(cfg.Content.PetsFile)
	if err != nil {
		logger.Fatal("loading pet catalog", zap.Error(err))
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("connecting to database", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Health(ctx, postgres.DefaultHealthTimeout); err != nil {
		logger.Fatal("database not ready", zap.Error(err))
	}

	store := pool.Acquisitions()
	c, err := store.GetByID(ctx, *characterID)
	if err != nil {
		logger.Fatal("loading character", zap.Int64("character_id", *characterID), zap.Error(err))
	}

	selector := pet.NewSelector(catalog, cfg.Rewards.PetOdds, logger)
	acq := reward.NewAcquirer(catalog, selector, store, logger)
	res, err := acq.Acquire(ctx, c, src)
	if err != nil {
		logger.Fatal("acquiring companion", zap.Error(err))
	}

	if !res.Success {
		fmt.Fprintf(os.Stdout, "no companion: %s\n", res.Reason)
		return
	}
	fmt.Fprintf(os.Stdout, "%s joined %s (slot %q): resistance %.2f -> %.2f, max hp %.2f -> %.2f\n",
		res.Name, c.Name, res.Pet.Slot, res.OldResistance, res.NewResistance, res.OldMaxHP, res.NewMaxHP)
}

// seededRNG accepts integer seeds verbatim and hashes anything else.
func seededRNG(s string) *rng.RNG {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return rng.New(n)
	}
	return rng.NewFromString(s)
}
