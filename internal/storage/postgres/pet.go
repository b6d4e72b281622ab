package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/bruto/internal/game/character"
)

// ErrPetNotFound is returned when removing a companion that does not exist.
var ErrPetNotFound = errors.New("owned pet not found")

// ErrPetSlotTaken is returned when the owner already holds that type in that slot.
var ErrPetSlotTaken = errors.New("pet slot already taken")

// PetRepository persists companion ownership records.
type PetRepository struct {
	db *pgxpool.Pool
}

// NewPetRepository creates a PetRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewPetRepository(db *pgxpool.Pool) *PetRepository {
	return &PetRepository{db: db}
}

// ListOwnedPets returns ownerID's companions ordered by acquisition time.
//
// Postcondition: Returns a slice (may be empty) or a non-nil error.
func (r *PetRepository) ListOwnedPets(ctx context.Context, ownerID int64) ([]character.OwnedPet, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, owner_id, pet_type, slot, acquired_at, acquired_at_level
		FROM owned_pets WHERE owner_id = $1
		ORDER BY acquired_at ASC, slot ASC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing owned pets: %w", err)
	}
	defer rows.Close()

	pets := make([]character.OwnedPet, 0)
	for rows.Next() {
		var (
			p       character.OwnedPet
			id      uuid.UUID
			petType string
			slot    string
		)
		if err := rows.Scan(&id, &p.OwnerID, &petType, &slot, &p.AcquiredAt, &p.AcquiredAtLevel); err != nil {
			return nil, fmt.Errorf("scanning owned pet row: %w", err)
		}
		p.ID = id.String()
		p.Type = character.PetType(petType)
		p.Slot = character.Slot(slot)
		pets = append(pets, p)
	}
	return pets, rows.Err()
}

// AddOwnedPet records a new companion for ownerID.
//
// Precondition: ownerID must reference an existing character.
// Postcondition: Returns the stored record with ID and AcquiredAt set, or
// ErrPetSlotTaken when (owner, type, slot) already exists.
func (r *PetRepository) AddOwnedPet(ctx context.Context, ownerID int64, t character.PetType, slot character.Slot, level int) (character.OwnedPet, error) {
	out := character.OwnedPet{
		ID:              uuid.NewString(),
		OwnerID:         ownerID,
		Type:            t,
		Slot:            slot,
		AcquiredAtLevel: level,
	}
	err := r.db.QueryRow(ctx, `
		INSERT INTO owned_pets (id, owner_id, pet_type, slot, acquired_at_level)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING acquired_at`,
		out.ID, ownerID, string(t), string(slot), level,
	).Scan(&out.AcquiredAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return character.OwnedPet{}, ErrPetSlotTaken
		}
		return character.OwnedPet{}, fmt.Errorf("inserting owned pet: %w", err)
	}
	return out, nil
}

// RemoveOwnedPet deletes one ownership record.
//
// Postcondition: Returns nil on success, ErrPetNotFound if no row was deleted.
func (r *PetRepository) RemoveOwnedPet(ctx context.Context, ownerID int64, id string) error {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("parsing pet id %q: %w", id, err)
	}
	tag, err := r.db.Exec(ctx,
		`DELETE FROM owned_pets WHERE id = $1 AND owner_id = $2`,
		parsed, ownerID,
	)
	if err != nil {
		return fmt.Errorf("removing owned pet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPetNotFound
	}
	return nil
}
