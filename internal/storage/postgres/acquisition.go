package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/bruto/internal/game/reward"
)

// AcquisitionStore is the reward.Repository backed by PostgreSQL.
type AcquisitionStore struct {
	*PetRepository
	*CharacterRepository
}

var _ reward.Repository = (*AcquisitionStore)(nil)

// NewAcquisitionStore creates an AcquisitionStore over db.
func NewAcquisitionStore(db *pgxpool.Pool) *AcquisitionStore {
	return &AcquisitionStore{
		PetRepository:       NewPetRepository(db),
		CharacterRepository: NewCharacterRepository(db),
	}
}
