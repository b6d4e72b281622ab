package pet_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/bruto/internal/game/character"
	"github.com/cory-johannsen/bruto/internal/game/pet"
)

func TestCanAcquire_StackLimit(t *testing.T) {
	cat := loadCatalog(t)
	assert.True(t, cat.CanAcquire(perros(character.SlotA, character.SlotB), pet.Perro).Valid)

	v := cat.CanAcquire(perros(character.SlotA, character.SlotB, character.SlotC), pet.Perro)
	assert.False(t, v.Valid)
	assert.Contains(t, v.Reason, "maximum of 3 Perro")
}

func TestCanAcquire_SingleStack(t *testing.T) {
	cat := loadCatalog(t)
	assert.False(t, cat.CanAcquire(owned(pet.Oso), pet.Oso).Valid)
}

func TestCanAcquire_ExclusionSymmetric(t *testing.T) {
	cat := loadCatalog(t)

	v := cat.CanAcquire(owned(pet.Pantera), pet.Oso)
	assert.False(t, v.Valid)
	assert.Equal(t, "Cannot acquire Oso while owning Pantera", v.Reason)

	v = cat.CanAcquire(owned(pet.Oso), pet.Pantera)
	assert.False(t, v.Valid)
	assert.Equal(t, "Cannot acquire Pantera while owning Oso", v.Reason)

	assert.True(t, cat.CanAcquire(owned(pet.Oso), pet.Perro).Valid)
}

func TestCanAcquire_ExclusionCheckedBeforeStacks(t *testing.T) {
	defs := []*pet.Definition{
		{ID: "a", Name: "A", MaxStacks: 1, ExclusiveWith: []character.PetType{"a"}, Stats: pet.CombatStats{HP: 1, DamageTier: pet.TierLow}},
	}
	cat, err := pet.NewCatalog(defs)
	assert.NoError(t, err)
	v := cat.CanAcquire(owned("a"), "a")
	assert.Contains(t, v.Reason, "Cannot acquire")
}

func TestCanAcquire_UnknownType(t *testing.T) {
	cat := loadCatalog(t)
	v := cat.CanAcquire(nil, "dragon")
	assert.False(t, v.Valid)
	assert.NotEmpty(t, v.Reason)
}

func TestAcquirable_CatalogOrder(t *testing.T) {
	cat := loadCatalog(t)
	assert.Equal(t, []character.PetType{pet.Perro, pet.Pantera, pet.Oso}, cat.Acquirable(nil))
	assert.Equal(t, []character.PetType{pet.Perro}, cat.Acquirable(owned(pet.Pantera)))
	assert.Empty(t, cat.Acquirable(append(perros(character.SlotA, character.SlotB, character.SlotC), owned(pet.Oso)...)))
}

func TestNextFreeSlot(t *testing.T) {
	cat := loadCatalog(t)
	assert.Equal(t, character.SlotA, cat.NextFreeSlot(nil, pet.Perro))
	assert.Equal(t, character.SlotB, cat.NextFreeSlot(perros(character.SlotA), pet.Perro))
	assert.Equal(t, character.SlotA, cat.NextFreeSlot(perros(character.SlotB, character.SlotC), pet.Perro))
	assert.Equal(t, character.SlotNone, cat.NextFreeSlot(perros(character.SlotA, character.SlotB, character.SlotC), pet.Perro))
	assert.Equal(t, character.SlotNone, cat.NextFreeSlot(nil, pet.Oso), "types without slots resolve to no slot")
	assert.Equal(t, character.SlotNone, cat.NextFreeSlot(nil, "dragon"))
}

func TestValidateRoster(t *testing.T) {
	cat := loadCatalog(t)
	assert.True(t, cat.ValidateRoster(append(perros(character.SlotA, character.SlotB), owned(pet.Oso)...)).Valid)

	v := cat.ValidateRoster(perros(character.SlotA, character.SlotA))
	assert.False(t, v.Valid)
	assert.Contains(t, v.Reason, "slot A assigned twice")

	v = cat.ValidateRoster(owned(pet.Pantera, pet.Oso))
	assert.False(t, v.Valid)
	assert.Contains(t, v.Reason, "mutually exclusive")

	v = cat.ValidateRoster(owned(pet.Pantera, pet.Oso, pet.Pantera))
	assert.False(t, v.Valid)
	assert.Equal(t, 1, strings.Count(v.Reason, "mutually exclusive"), v.Reason)

	v = cat.ValidateRoster(owned(pet.Oso, pet.Oso))
	assert.False(t, v.Valid)
	assert.Contains(t, v.Reason, "exceeds the limit")

	v = cat.ValidateRoster(owned("dragon"))
	assert.False(t, v.Valid)
}

func TestPropertyAcquirable_NeverViolatesRules(t *testing.T) {
	cat := loadCatalog(t)
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 3).Draw(t, "perros")
		big := rapid.SampledFrom([]character.PetType{"", pet.Pantera, pet.Oso}).Draw(t, "big")
		roster := perros(character.Slots[:n]...)
		if big != "" {
			roster = append(roster, owned(big)...)
		}
		for _, tp := range cat.Acquirable(roster) {
			next := append(append([]character.OwnedPet{}, roster...), character.OwnedPet{Type: tp, Slot: cat.NextFreeSlot(roster, tp)})
			assert.True(t, cat.ValidateRoster(next).Valid, "acquiring %s must keep roster valid", tp)
		}
	})
}
