package db

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// IsUniqueViolation reports whether err is a unique constraint violation.
// When constraint is non-empty the violated constraint name must match too.
func IsUniqueViolation(err error, constraint string) bool {
	var e *pgconn.PgError
	if !errors.As(err, &e) || e.Code != pgerrcode.UniqueViolation {
		return false
	}
	return constraint == "" || e.ConstraintName == constraint
}

// IsSerializationConflict reports whether err was raised because the
// transaction lost a race against a concurrent one.
func IsSerializationConflict(err error) bool {
	var e *pgconn.PgError
	if !errors.As(err, &e) {
		return false
	}
	return e.Code == pgerrcode.SerializationFailure || e.Code == pgerrcode.DeadlockDetected
}
