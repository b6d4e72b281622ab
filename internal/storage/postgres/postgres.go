// Package postgres persists arena characters and their companions using pgx v5.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/bruto/internal/config"
)

// DefaultHealthTimeout bounds the startup health check of the reward tools.
const DefaultHealthTimeout = 5 * time.Second

// Pool owns the connection pool shared by the character, pet, and
// acquisition repositories.
type Pool struct {
	pool *pgxpool.Pool
}

// NewPool connects to the database described by cfg and pings it. The schema
// is not checked; call Health for that once migrations have run.
//
// Precondition: cfg must pass config.Validate.
// Postcondition: Returns a connected Pool or a non-nil error.
func NewPool(ctx context.Context, cfg config.DatabaseConfig) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parsing database config: %w", err)
	}
	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &Pool{pool: pool}, nil
}

// Health pings the database within timeout and confirms the arena schema is
// migrated.
//
// Postcondition: Returns nil when the database answers and the characters
// and owned_pets tables exist.
func (p *Pool) Health(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := p.pool.Ping(ctx); err != nil {
		return fmt.Errorf("pinging database: %w", err)
	}
	var tables int
	err := p.pool.QueryRow(ctx, `
		SELECT count(*) FROM information_schema.tables
		WHERE table_schema = current_schema()
		  AND table_name IN ('characters', 'owned_pets')`,
	).Scan(&tables)
	if err != nil {
		return fmt.Errorf("checking schema: %w", err)
	}
	if tables != 2 {
		return ErrSchemaNotMigrated
	}
	return nil
}

// Close releases all pool resources.
func (p *Pool) Close() {
	p.pool.Close()
}

// DB returns the underlying pgxpool.Pool.
func (p *Pool) DB() *pgxpool.Pool {
	return p.pool
}

// Characters returns a CharacterRepository over the pool.
func (p *Pool) Characters() *CharacterRepository {
	return NewCharacterRepository(p.pool)
}

// Pets returns a PetRepository over the pool.
func (p *Pool) Pets() *PetRepository {
	return NewPetRepository(p.pool)
}

// Acquisitions returns the reward repository over the pool.
func (p *Pool) Acquisitions() *AcquisitionStore {
	return NewAcquisitionStore(p.pool)
}
