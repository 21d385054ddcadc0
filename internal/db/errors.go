package db

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Constraint names the kind of integrity rule a failed write broke.
type Constraint int

const (
	ConstraintNone Constraint = iota
	ConstraintUnique
	ConstraintForeignKey
	ConstraintNotNull
	ConstraintCheck
)

func (c Constraint) String() string {
	switch c {
	case ConstraintUnique:
		return "unique"
	case ConstraintForeignKey:
		return "foreign_key"
	case ConstraintNotNull:
		return "not_null"
	case ConstraintCheck:
		return "check"
	default:
		return "none"
	}
}

// SQLite extended result codes.
const (
	sqliteConstraintCheck      = 275
	sqliteConstraintForeignKey = 787
	sqliteConstraintNotNull    = 1299
	sqliteConstraintPrimaryKey = 1555
	sqliteConstraintUnique     = 2067
)

// Classify reports which constraint, if any, err is a violation of. It
// understands both the sqlite and the postgres driver.
func Classify(err error) Constraint {
	if err == nil {
		return ConstraintNone
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return ConstraintUnique
		case "23503":
			return ConstraintForeignKey
		case "23502":
			return ConstraintNotNull
		case "23514":
			return ConstraintCheck
		}
		return ConstraintNone
	}

	var coded interface{ Code() int }
	if errors.As(err, &coded) {
		switch coded.Code() {
		case sqliteConstraintUnique, sqliteConstraintPrimaryKey:
			return ConstraintUnique
		case sqliteConstraintForeignKey:
			return ConstraintForeignKey
		case sqliteConstraintNotNull:
			return ConstraintNotNull
		case sqliteConstraintCheck:
			return ConstraintCheck
		}
	}

	// Primary result codes do not say which rule failed, the message does.
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return ConstraintUnique
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return ConstraintForeignKey
	case strings.Contains(msg, "NOT NULL constraint failed"):
		return ConstraintNotNull
	case strings.Contains(msg, "CHECK constraint failed"):
		return ConstraintCheck
	}
	return ConstraintNone
}
