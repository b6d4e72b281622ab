package postgres_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/bruto/internal/game/character"
	"github.com/cory-johannsen/bruto/internal/game/pet"
	"github.com/cory-johannsen/bruto/internal/game/reward"
	"github.com/cory-johannsen/bruto/internal/game/rng"
	"github.com/cory-johannsen/bruto/internal/storage/postgres"
	"github.com/cory-johannsen/bruto/internal/testutil"
)

func TestPetRepository(t *testing.T) {
	db := testutil.NewPool(t)
	ctx := context.Background()
	owner, err := postgres.NewCharacterRepository(db).Create(ctx, makeTestCharacter(uniqueName("owner")))
	require.NoError(t, err)
	repo := postgres.NewPetRepository(db)

	empty, err := repo.ListOwnedPets(ctx, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, empty)

	a, err := repo.AddOwnedPet(ctx, owner.ID, pet.Perro, character.SlotA, 2)
	require.NoError(t, err)
	_, err = uuid.Parse(a.ID)
	assert.NoError(t, err)
	assert.False(t, a.AcquiredAt.IsZero())

	_, err = repo.AddOwnedPet(ctx, owner.ID, pet.Perro, character.SlotA, 3)
	assert.ErrorIs(t, err, postgres.ErrPetSlotTaken)

	_, err = repo.AddOwnedPet(ctx, owner.ID, pet.Oso, character.SlotNone, 3)
	require.NoError(t, err)

	pets, err := repo.ListOwnedPets(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, pets, 2)
	assert.Equal(t, pet.Perro, pets[0].Type)
	assert.Equal(t, character.SlotA, pets[0].Slot)
	assert.Equal(t, 2, pets[0].AcquiredAtLevel)

	require.NoError(t, repo.RemoveOwnedPet(ctx, owner.ID, a.ID))
	assert.ErrorIs(t, repo.RemoveOwnedPet(ctx, owner.ID, a.ID), postgres.ErrPetNotFound)
	assert.Error(t, repo.RemoveOwnedPet(ctx, owner.ID, "not-a-uuid"))
}

func TestAcquisitionStore_AcquirePersists(t *testing.T) {
	db := testutil.NewPool(t)
	ctx := context.Background()

	cat, err := pet.LoadFile("../../../content/pets.yaml")
	require.NoError(t, err)
	selector := pet.NewSelector(cat, map[string]float64{"perro": 1}, nil)
	store := postgres.NewAcquisitionStore(db)

	c, err := store.Create(ctx, makeTestCharacter(uniqueName("acq")))
	require.NoError(t, err)

	acq := reward.NewAcquirer(cat, selector, store, nil)
	res, err := acq.Acquire(ctx, c, rng.New(12345))
	require.NoError(t, err)
	require.True(t, res.Success, res.Reason)
	assert.Equal(t, pet.Perro, res.Pet.Type)
	assert.Equal(t, character.SlotA, res.Pet.Slot)

	got, err := store.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, res.NewResistance, got.Stats.Resistance)
	assert.Equal(t, res.NewMaxHP, got.Stats.MaxHP)

	pets, err := store.ListOwnedPets(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, pets, 1)
	assert.Equal(t, res.Pet.ID, pets[0].ID)
}
