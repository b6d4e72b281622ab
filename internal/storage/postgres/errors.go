package postgres

import "errors"

// isDuplicateKeyError checks if a pgx error is a unique constraint violation.
func isDuplicateKeyError(err error) bool {
	// pgx wraps PostgreSQL errors; check for SQLSTATE 23505 (unique_violation)
	var pgErr interface{ SQLState() string }
	if errors.As(err, &pgErr) {
		return pgErr.SQLState() == "23505"
	}
	return false
}

// ErrSchemaNotMigrated is returned by Pool.Health when the arena tables are missing.
var ErrSchemaNotMigrated = errors.New("database schema not migrated; run cmd/migrate")
