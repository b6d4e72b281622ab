// Package reward orchestrates post-victory companion acquisition.
package reward

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/cory-johannsen/bruto/internal/game/character"
	"github.com/cory-johannsen/bruto/internal/game/pet"
)

// ResistanceToHPRatio is how much max HP each point of resistance spent on a
// companion removes. It differs from the skill-acquisition ratio on purpose.
const ResistanceToHPRatio = 1.0

// Reasons reported for unsuccessful acquisitions.
const (
	ReasonNoValidCompanions = "No valid companions available"
)

// StatsUpdate is the character stat write issued after a successful acquisition.
type StatsUpdate struct {
	Resistance float64
	MaxHP      float64
}

// Repository is the persistence boundary the Acquirer writes through.
type Repository interface {
	ListOwnedPets(ctx context.Context, ownerID int64) ([]character.OwnedPet, error)
	AddOwnedPet(ctx context.Context, ownerID int64, t character.PetType, slot character.Slot, level int) (character.OwnedPet, error)
	UpdateCharacterStats(ctx context.Context, ownerID int64, update StatsUpdate) error
}

// Result describes an acquisition attempt. When Success is false, Reason is
// a user-facing message and no write was issued.
type Result struct {
	Success        bool
	Reason         string
	Pet            character.OwnedPet
	Name           string
	ResistanceCost float64
	OldResistance  float64
	NewResistance  float64
	OldMaxHP       float64
	NewMaxHP       float64
	HPLost         float64
}

// Acquirer ties selection, validation, cost, and persistence together.
type Acquirer struct {
	catalog  *pet.Catalog
	selector *pet.Selector
	repo     Repository
	logger   *zap.Logger
}

// NewAcquirer creates an Acquirer.
//
// Precondition: catalog, selector, and repo must not be nil.
func NewAcquirer(catalog *pet.Catalog, selector *pet.Selector, repo Repository, logger *zap.Logger) *Acquirer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Acquirer{catalog: catalog, selector: selector, repo: repo, logger: logger}
}

// Acquire rolls a companion reward for c and, when affordable, persists it.
//
// The whole result is computed before any write. The ownership row and the
// stat update are issued sequentially, not atomically; any write error is
// returned unchanged and the caller must treat the acquisition as failed.
//
// Precondition: c must not be nil; src must be the evaluation's single RNG.
// Postcondition: On error, Result is zero. c is never mutated.
func (a *Acquirer) Acquire(ctx context.Context, c *character.Character, src pet.Source) (Result, error) {
	owned, err := a.repo.ListOwnedPets(ctx, c.ID)
	if err != nil {
		return Result{}, err
	}

	def := a.selector.SelectRandomPet(owned, src)
	if def == nil {
		return Result{Reason: ReasonNoValidCompanions}, nil
	}

	cost, err := a.catalog.ResistanceCost(def.ID, c.HasSkill(pet.SkillA), c.HasSkill(pet.SkillB))
	if err != nil {
		return Result{}, err
	}

	current := c.Stats.Resistance
	if cost > current {
		return Result{
			Name:           def.Name,
			ResistanceCost: cost,
			Reason: fmt.Sprintf("Insufficient resistance (need %s, have %s)",
				formatAmount(cost), formatAmount(current)),
		}, nil
	}

	hpLost := cost * ResistanceToHPRatio
	res := Result{
		Success:        true,
		Name:           def.Name,
		ResistanceCost: cost,
		OldResistance:  current,
		NewResistance:  pet.CalculateNewResistance(current, cost),
		OldMaxHP:       c.Stats.MaxHP,
		NewMaxHP:       c.Stats.MaxHP - hpLost,
		HPLost:         hpLost,
	}
	slot := a.catalog.NextFreeSlot(owned, def.ID)

	rec, err := a.repo.AddOwnedPet(ctx, c.ID, def.ID, slot, c.Level)
	if err != nil {
		return Result{}, err
	}
	if err := a.repo.UpdateCharacterStats(ctx, c.ID, StatsUpdate{Resistance: res.NewResistance, MaxHP: res.NewMaxHP}); err != nil {
		return Result{}, err
	}
	res.Pet = rec

	a.logger.Info("companion acquired",
		zap.Int64("character_id", c.ID),
		zap.String("type", string(def.ID)),
		zap.String("slot", string(slot)),
		zap.Float64("cost", cost),
		zap.Float64("new_resistance", res.NewResistance),
		zap.Float64("new_max_hp", res.NewMaxHP),
	)
	return res, nil
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
