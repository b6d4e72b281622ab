package pet_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/bruto/internal/game/character"
	"github.com/cory-johannsen/bruto/internal/game/pet"
	"github.com/cory-johannsen/bruto/internal/game/rng"
)

func combatant(t *testing.T, cat *pet.Catalog, tp character.PetType) *pet.Combatant {
	t.Helper()
	def := cat.Get(tp)
	require.NotNil(t, def)
	return pet.NewCombatant(def, character.OwnedPet{OwnerID: 9, Type: tp, Slot: cat.NextFreeSlot(nil, tp)}, pet.SideLeft)
}

func TestNewCombatant(t *testing.T) {
	cat := loadCatalog(t)
	c := combatant(t, cat, pet.Perro)
	assert.Equal(t, pet.Perro, c.Type)
	assert.Equal(t, character.SlotA, c.Slot)
	assert.Equal(t, int64(9), c.OwnerID)
	assert.Equal(t, pet.SideLeft, c.OwnerSide)
	assert.Equal(t, 14, c.CurrentHP)
	assert.False(t, c.Defeated)
}

func TestHitChance_Clamped(t *testing.T) {
	assert.InDelta(t, 0.70, pet.HitChance(5, 5), 1e-9)
	assert.InDelta(t, 0.80, pet.HitChance(10, 5), 1e-9)
	assert.InDelta(t, 0.95, pet.HitChance(100, 0), 1e-9)
	assert.InDelta(t, 0.05, pet.HitChance(0, 100), 1e-9)
}

func TestDamageRange(t *testing.T) {
	for tier, want := range map[pet.DamageTier][2]int{
		pet.TierLow: {3, 7}, pet.TierMedium: {8, 15}, pet.TierHigh: {18, 30},
	} {
		lo, hi, err := pet.DamageRange(tier)
		require.NoError(t, err)
		assert.Equal(t, want, [2]int{lo, hi}, "tier %s", tier)
	}
	_, _, err := pet.DamageRange("epic")
	assert.Error(t, err)
}

func TestExecutePetAttack_Miss(t *testing.T) {
	cat := loadCatalog(t)
	src := &fixedSource{draws: []float64{0.99}}
	res := pet.NewResolver(src, nil).ExecutePetAttack(combatant(t, cat, pet.Perro), pet.SideRight, 5, false)
	assert.False(t, res.Hit)
	assert.Equal(t, 0, res.Damage)
	assert.Equal(t, pet.SideRight, res.TargetSide)
	assert.Equal(t, 1, src.calls)
}

func TestExecutePetAttack_HitAndCritical(t *testing.T) {
	cat := loadCatalog(t)
	// hit, damage 7 (last bucket of 3..7), critical (0.0 < 0.10)
	src := &fixedSource{draws: []float64{0.1, 0.99, 0.0}}
	res := pet.NewResolver(src, nil).ExecutePetAttack(combatant(t, cat, pet.Perro), pet.SideRight, 5, true)
	assert.True(t, res.Hit)
	assert.True(t, res.Critical)
	assert.Equal(t, 10, res.Damage, "floor(7*1.5)")
	assert.False(t, res.Disarmed, "perro cannot disarm")
	assert.Equal(t, 3, src.calls)
}

func TestExecutePetAttack_DisarmIndependentOfHit(t *testing.T) {
	cat := loadCatalog(t)
	oso := combatant(t, cat, pet.Oso)

	// miss, then disarm roll succeeds
	src := &fixedSource{draws: []float64{0.99, 0.1}}
	res := pet.NewResolver(src, nil).ExecutePetAttack(oso, pet.SideRight, 2, true)
	assert.False(t, res.Hit)
	assert.True(t, res.Disarmed)

	// hit, damage, no crit (0% chance), disarm roll fails
	src = &fixedSource{draws: []float64{0.0, 0.0, 0.0, 0.5}}
	res = pet.NewResolver(src, nil).ExecutePetAttack(oso, pet.SideRight, 2, true)
	assert.True(t, res.Hit)
	assert.False(t, res.Critical)
	assert.Equal(t, 18, res.Damage)
	assert.False(t, res.Disarmed)

	// unarmed target: no disarm roll at all
	src = &fixedSource{draws: []float64{0.99}}
	res = pet.NewResolver(src, nil).ExecutePetAttack(oso, pet.SideRight, 2, false)
	assert.False(t, res.Disarmed)
	assert.Equal(t, 1, src.calls)
}

func TestExecutePetAttack_LowTierDamageRange(t *testing.T) {
	cat := loadCatalog(t)
	perro := combatant(t, cat, pet.Perro)
	r := pet.NewResolver(rng.New(4242), nil)
	hits := 0
	for i := 0; i < 5000; i++ {
		res := r.ExecutePetAttack(perro, pet.SideRight, 0, false)
		if !res.Hit {
			continue
		}
		hits++
		if res.Critical {
			assert.GreaterOrEqual(t, res.Damage, 4)
			assert.LessOrEqual(t, res.Damage, 11)
		} else {
			assert.GreaterOrEqual(t, res.Damage, 3)
			assert.LessOrEqual(t, res.Damage, 7)
		}
	}
	assert.Greater(t, hits, 0)
}

func TestApplyDamageToPet(t *testing.T) {
	cat := loadCatalog(t)
	c := combatant(t, cat, pet.Perro)

	assert.Equal(t, 4, pet.ApplyDamageToPet(c, 10))
	assert.False(t, c.Defeated)

	assert.Equal(t, 0, pet.ApplyDamageToPet(c, 4))
	assert.True(t, c.Defeated, "exactly zero is defeat")

	c = combatant(t, cat, pet.Perro)
	assert.Equal(t, 0, pet.ApplyDamageToPet(c, 100))
	assert.True(t, c.Defeated)
}

func TestPropertyApplyDamageToPet_NeverNegative(t *testing.T) {
	cat := loadCatalog(t)
	rapid.Check(t, func(rt *rapid.T) {
		c := combatant(t, cat, pet.Oso)
		hits := rapid.SliceOf(rapid.IntRange(0, 60)).Draw(rt, "hits")
		for _, h := range hits {
			hp := pet.ApplyDamageToPet(c, h)
			assert.GreaterOrEqual(rt, hp, 0)
			assert.Equal(rt, hp == 0, c.Defeated)
		}
	})
}

func TestCalculatePetInitiative(t *testing.T) {
	cat := loadCatalog(t)
	assert.Equal(t, 1000.0-30+10, cat.CalculatePetInitiative(pet.Perro, 3))
	assert.Equal(t, 1000.0-240-60, cat.CalculatePetInitiative(pet.Pantera, 24))
	assert.Equal(t, 1000.0-10+360, cat.CalculatePetInitiative(pet.Oso, 1))
	assert.Equal(t, 950.0, cat.CalculatePetInitiative("dragon", 5))
	assert.Less(t, cat.CalculatePetInitiative(pet.Pantera, 24), cat.CalculatePetInitiative(pet.Oso, 1),
		"the fast pantera acts before the oso")
}
