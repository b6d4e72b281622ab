package reward_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/bruto/internal/game/character"
	"github.com/cory-johannsen/bruto/internal/game/pet"
	"github.com/cory-johannsen/bruto/internal/game/reward"
	"github.com/cory-johannsen/bruto/internal/game/skill"
)

func defaultOdds() map[string]float64 {
	return map[string]float64{"perro": 60, "pantera": 25, "oso": 15}
}

func TestSimulate_Deterministic(t *testing.T) {
	cat := loadCatalog(t)
	sel := pet.NewSelector(cat, defaultOdds(), nil)
	cfg := reward.SimulationConfig{Trials: 40, Victories: 6, BaseSeed: 7, Workers: 4}

	a, err := reward.Simulate(context.Background(), cat, sel, cfg)
	require.NoError(t, err)
	b, err := reward.Simulate(context.Background(), cat, sel, cfg)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSimulate_Accounting(t *testing.T) {
	cat := loadCatalog(t)
	sel := pet.NewSelector(cat, defaultOdds(), nil)
	rep, err := reward.Simulate(context.Background(), cat, sel,
		reward.SimulationConfig{Trials: 25, Victories: 8, BaseSeed: 1})
	require.NoError(t, err)

	acquired := 0
	for _, n := range rep.Acquired {
		acquired += n
	}
	assert.Equal(t, rep.Attempts, acquired+rep.NoCompanion+rep.Insufficient)
	// Each character can hold at most three perros plus one big cat or bear.
	assert.LessOrEqual(t, acquired, 25*4)
	assert.LessOrEqual(t, rep.Acquired[pet.Perro], 25*3)
	assert.GreaterOrEqual(t, rep.FinalResistance, 0.0)
}

func TestSimulate_GrantedSkillsApplyImmediateEffects(t *testing.T) {
	cat := loadCatalog(t)
	sel := pet.NewSelector(cat, defaultOdds(), nil)
	skills, err := skill.LoadDirectory("../../../content/skills")
	require.NoError(t, err)
	engine := skill.NewEngine(skills, nil)

	rep, err := reward.Simulate(context.Background(), cat, sel, reward.SimulationConfig{
		Trials: 3, Victories: 0, Skills: []string{"vitality"}, Engine: engine,
	})
	require.NoError(t, err)
	// starting resistance 10 plus vitality's immediate +3
	assert.Equal(t, 13.0, rep.StartResistance)
	assert.Equal(t, 13.0, rep.FinalResistance)
}

func TestSimulate_SkillsRequireEngine(t *testing.T) {
	cat := loadCatalog(t)
	sel := pet.NewSelector(cat, defaultOdds(), nil)
	_, err := reward.Simulate(context.Background(), cat, sel,
		reward.SimulationConfig{Trials: 1, Victories: 1, Skills: []string{"vitality"}})
	assert.Error(t, err)
}

func TestSimulate_UnknownSkill(t *testing.T) {
	cat := loadCatalog(t)
	sel := pet.NewSelector(cat, defaultOdds(), nil)
	skills, err := skill.LoadDirectory("../../../content/skills")
	require.NoError(t, err)
	_, err = reward.Simulate(context.Background(), cat, sel, reward.SimulationConfig{
		Trials: 1, Victories: 1, Skills: []string{"nope"}, Engine: skill.NewEngine(skills, nil),
	})
	assert.ErrorContains(t, err, "unknown skill")
}

func TestSimulate_Cancelled(t *testing.T) {
	cat := loadCatalog(t)
	sel := pet.NewSelector(cat, defaultOdds(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := reward.Simulate(ctx, cat, sel, reward.SimulationConfig{Trials: 3, Victories: 2})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemoryStore_RejectsDuplicateSlot(t *testing.T) {
	store := reward.NewMemoryStore()
	ctx := context.Background()
	_, err := store.AddOwnedPet(ctx, 1, pet.Perro, character.SlotA, 1)
	require.NoError(t, err)
	_, err = store.AddOwnedPet(ctx, 1, pet.Perro, character.SlotA, 2)
	assert.Error(t, err)

	pets, err := store.ListOwnedPets(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, pets, 1)

	require.NoError(t, store.UpdateCharacterStats(ctx, 1, reward.StatsUpdate{Resistance: 3, MaxHP: 50}))
	u, ok := store.Stats(1)
	assert.True(t, ok)
	assert.Equal(t, 3.0, u.Resistance)
}

// Property: a simulated roster never violates stacking or exclusion rules.
func TestPropertySimulatedRostersValid(t *testing.T) {
	cat := loadCatalog(t)
	sel := pet.NewSelector(cat, defaultOdds(), nil)
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Int64().Draw(rt, "seed")
		rep, err := reward.Simulate(context.Background(), cat, sel,
			reward.SimulationConfig{Trials: 1, Victories: 10, BaseSeed: seed})
		if err != nil {
			rt.Fatalf("simulate: %v", err)
		}
		if rep.Acquired[pet.Pantera] > 0 && rep.Acquired[pet.Oso] > 0 {
			rt.Fatalf("pantera and oso both acquired: %v", rep.Acquired)
		}
		if rep.Acquired[pet.Perro] > 3 {
			rt.Fatalf("too many perros: %d", rep.Acquired[pet.Perro])
		}
	})
}
