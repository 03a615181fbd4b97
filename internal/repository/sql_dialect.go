package repository

import (
	"strings"

	"gorm.io/gorm"
)

// dbDialectName returns the dialect name of the bound DB, defaulting to sqlite.
func dbDialectName(db *gorm.DB) string {
	if db == nil || db.Dialector == nil {
		return "sqlite"
	}
	name := strings.ToLower(strings.TrimSpace(db.Dialector.Name()))
	if name == "" {
		return "sqlite"
	}
	return name
}

// likeOperator picks a case-insensitive LIKE variant where available.
func likeOperator(db *gorm.DB) string {
	return likeOperatorByDialect(dbDialectName(db))
}

func likeOperatorByDialect(dialect string) string {
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case "postgres", "postgresql":
		return "ILIKE"
	default:
		return "LIKE"
	}
}

// digitsOnlyPredicate returns a WHERE fragment matching rows whose text
// column holds only digits, for numeric aggregation over that column.
func digitsOnlyPredicate(db *gorm.DB, column string) string {
	return digitsOnlyPredicateByDialect(dbDialectName(db), column)
}

func digitsOnlyPredicateByDialect(dialect, column string) string {
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case "postgres", "postgresql":
		return column + " ~ '^[0-9]+$'"
	default:
		return column + " != '' AND " + column + " NOT GLOB '*[^0-9]*'"
	}
}
