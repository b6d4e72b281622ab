package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/bruto/internal/game/character"
	"github.com/cory-johannsen/bruto/internal/game/reward"
)

// ErrCharacterNotFound is returned when a character lookup yields no results.
var ErrCharacterNotFound = errors.New("character not found")

// ErrCharacterNameTaken is returned when creating a character with a name already in use.
var ErrCharacterNameTaken = errors.New("character name already taken")

// CharacterRepository provides character persistence operations.
type CharacterRepository struct {
	db *pgxpool.Pool
}

// NewCharacterRepository creates a CharacterRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewCharacterRepository(db *pgxpool.Pool) *CharacterRepository {
	return &CharacterRepository{db: db}
}

const characterColumns = `id, name, level, experience,
	hp, max_hp, strength, speed, agility, resistance,
	skills, created_at, updated_at`

func scanCharacter(row pgx.Row) (*character.Character, error) {
	var c character.Character
	err := row.Scan(
		&c.ID, &c.Name, &c.Level, &c.Experience,
		&c.Stats.HP, &c.Stats.MaxHP, &c.Stats.Strength,
		&c.Stats.Speed, &c.Stats.Agility, &c.Stats.Resistance,
		&c.Skills, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a new character and returns it with ID and timestamps set.
//
// Precondition: c.Name must be non-empty.
// Postcondition: Returns the created character with ID set, or ErrCharacterNameTaken on duplicate.
func (r *CharacterRepository) Create(ctx context.Context, c *character.Character) (*character.Character, error) {
	skills := c.Skills
	if skills == nil {
		skills = []string{}
	}
	out, err := scanCharacter(r.db.QueryRow(ctx, `
		INSERT INTO characters
			(name, level, experience, hp, max_hp, strength, speed, agility, resistance, skills)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING `+characterColumns,
		c.Name, c.Level, c.Experience,
		c.Stats.HP, c.Stats.MaxHP, c.Stats.Strength,
		c.Stats.Speed, c.Stats.Agility, c.Stats.Resistance,
		skills,
	))
	if err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrCharacterNameTaken
		}
		return nil, fmt.Errorf("inserting character: %w", err)
	}
	return out, nil
}

// GetByID retrieves a character by its primary key. The companion roster is
// not loaded; use PetRepository.ListOwnedPets for it.
//
// Precondition: id must be > 0.
// Postcondition: Returns the Character or ErrCharacterNotFound.
func (r *CharacterRepository) GetByID(ctx context.Context, id int64) (*character.Character, error) {
	c, err := scanCharacter(r.db.QueryRow(ctx,
		`SELECT `+characterColumns+` FROM characters WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCharacterNotFound
		}
		return nil, fmt.Errorf("querying character: %w", err)
	}
	return c, nil
}

// UpdateCharacterStats writes a new resistance and max HP. Current HP is
// clamped to the new maximum.
//
// Precondition: id must be > 0.
// Postcondition: Returns nil on success, ErrCharacterNotFound if no row updated.
func (r *CharacterRepository) UpdateCharacterStats(ctx context.Context, id int64, update reward.StatsUpdate) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE characters
		SET resistance = $2, max_hp = $3, hp = LEAST(hp, $3), updated_at = NOW()
		WHERE id = $1`,
		id, update.Resistance, update.MaxHP,
	)
	if err != nil {
		return fmt.Errorf("updating character stats: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCharacterNotFound
	}
	return nil
}

// SaveSkills replaces the character's acquired skill list.
//
// Postcondition: Returns nil on success, ErrCharacterNotFound if no row updated.
func (r *CharacterRepository) SaveSkills(ctx context.Context, id int64, skills []string) error {
	if skills == nil {
		skills = []string{}
	}
	tag, err := r.db.Exec(ctx,
		`UPDATE characters SET skills = $2, updated_at = NOW() WHERE id = $1`,
		id, skills,
	)
	if err != nil {
		return fmt.Errorf("saving skills: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCharacterNotFound
	}
	return nil
}
