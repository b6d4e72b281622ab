package reward

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cory-johannsen/bruto/internal/game/character"
	"github.com/cory-johannsen/bruto/internal/game/pet"
	"github.com/cory-johannsen/bruto/internal/game/rng"
	"github.com/cory-johannsen/bruto/internal/game/skill"
)

// SimulationConfig parameterizes Simulate.
type SimulationConfig struct {
	Trials    int
	Victories int
	BaseSeed  int64
	// Skills are granted to every simulated character before the first victory,
	// with their immediate effects applied through Engine.
	Skills []string
	// Engine is required when Skills is non-empty.
	Engine *skill.Engine
	// Workers bounds concurrency; <= 0 means unbounded.
	Workers int
}

// SimulationReport aggregates the outcomes of all trials.
type SimulationReport struct {
	Trials       int
	Attempts     int
	Acquired     map[character.PetType]int
	NoCompanion  int
	Insufficient int
	// StartResistance is the mean resistance after granted skills, before the first victory.
	StartResistance float64
	// FinalResistance is the mean resistance left after the last victory.
	FinalResistance float64
}

type trialOutcome struct {
	acquired     []character.PetType
	noCompanion  int
	insufficient int
	start        float64
	resistance   float64
}

// Simulate runs cfg.Trials independent characters through cfg.Victories
// acquisition attempts each. Trial i draws from its own RNG seeded with
// BaseSeed+i, so the report is identical for identical inputs.
//
// Precondition: catalog and selector must not be nil; Trials and Victories must be >= 0.
func Simulate(ctx context.Context, catalog *pet.Catalog, selector *pet.Selector, cfg SimulationConfig) (SimulationReport, error) {
	if len(cfg.Skills) > 0 && cfg.Engine == nil {
		return SimulationReport{}, errors.New("simulation skills require a skill engine")
	}
	outcomes := make([]trialOutcome, cfg.Trials)
	g, ctx := errgroup.WithContext(ctx)
	if cfg.Workers > 0 {
		g.SetLimit(cfg.Workers)
	}
	for i := 0; i < cfg.Trials; i++ {
		i := i // per-iteration copy (go directive is 1.21)
		g.Go(func() error {
			out, err := runTrial(ctx, catalog, selector, cfg, int64(i))
			if err != nil {
				return fmt.Errorf("trial %d: %w", i, err)
			}
			outcomes[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return SimulationReport{}, err
	}

	rep := SimulationReport{
		Trials:   cfg.Trials,
		Attempts: cfg.Trials * cfg.Victories,
		Acquired: make(map[character.PetType]int),
	}
	total, start := 0.0, 0.0
	for _, o := range outcomes {
		for _, t := range o.acquired {
			rep.Acquired[t]++
		}
		rep.NoCompanion += o.noCompanion
		rep.Insufficient += o.insufficient
		start += o.start
		total += o.resistance
	}
	if cfg.Trials > 0 {
		rep.StartResistance = start / float64(cfg.Trials)
		rep.FinalResistance = total / float64(cfg.Trials)
	}
	return rep, nil
}

func runTrial(ctx context.Context, catalog *pet.Catalog, selector *pet.Selector, cfg SimulationConfig, n int64) (trialOutcome, error) {
	c, err := character.Build(fmt.Sprintf("sim-%d", n), character.StartingStats)
	if err != nil {
		return trialOutcome{}, err
	}
	c.ID = n + 1
	for _, id := range cfg.Skills {
		c.Skills = append(c.Skills, id)
		if _, ok := cfg.Engine.ApplyImmediate(c, id); !ok {
			return trialOutcome{}, fmt.Errorf("unknown skill %q", id)
		}
	}

	store := NewMemoryStore()
	acq := NewAcquirer(catalog, selector, store, nil)
	src := rng.New(cfg.BaseSeed + n)

	out := trialOutcome{start: c.Stats.Resistance}
	for v := 0; v < cfg.Victories; v++ {
		if err := ctx.Err(); err != nil {
			return trialOutcome{}, err
		}
		res, err := acq.Acquire(ctx, c, src)
		if err != nil {
			return trialOutcome{}, err
		}
		switch {
		case res.Success:
			out.acquired = append(out.acquired, res.Pet.Type)
			c.Stats.Resistance = res.NewResistance
			c.Stats.MaxHP = res.NewMaxHP
			c.Stats.HP = min(c.Stats.HP, c.Stats.MaxHP)
		case res.Reason == ReasonNoValidCompanions:
			out.noCompanion++
		default:
			out.insufficient++
		}
		c.Level++
	}
	out.resistance = c.Stats.Resistance
	return out, nil
}

// MemoryStore is an in-process Repository for simulations and tooling.
// It is safe for concurrent use.
type MemoryStore struct {
	mu     sync.Mutex
	pets   map[int64][]character.OwnedPet
	stats  map[int64]StatsUpdate
	nextID int
}

var _ Repository = (*MemoryStore)(nil)

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		pets:  make(map[int64][]character.OwnedPet),
		stats: make(map[int64]StatsUpdate),
	}
}

func (m *MemoryStore) ListOwnedPets(_ context.Context, ownerID int64) ([]character.OwnedPet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]character.OwnedPet(nil), m.pets[ownerID]...), nil
}

func (m *MemoryStore) AddOwnedPet(_ context.Context, ownerID int64, t character.PetType, slot character.Slot, level int) (character.OwnedPet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.pets[ownerID] {
		if p.Type == t && p.Slot == slot {
			return character.OwnedPet{}, fmt.Errorf("owner %d already holds %s in slot %q", ownerID, t, slot)
		}
	}
	m.nextID++
	p := character.OwnedPet{
		ID:              fmt.Sprintf("mem-%d", m.nextID),
		OwnerID:         ownerID,
		Type:            t,
		Slot:            slot,
		AcquiredAt:      time.Now(),
		AcquiredAtLevel: level,
	}
	m.pets[ownerID] = append(m.pets[ownerID], p)
	return p, nil
}

func (m *MemoryStore) UpdateCharacterStats(_ context.Context, ownerID int64, u StatsUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats[ownerID] = u
	return nil
}

// Stats returns the last stats update written for ownerID.
func (m *MemoryStore) Stats(ownerID int64) (StatsUpdate, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.stats[ownerID]
	return u, ok
}
