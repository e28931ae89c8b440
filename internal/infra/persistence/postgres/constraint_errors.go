package postgres

import (
	"context"
	"strings"

	domainerrors "foodie/internal/domain/errors"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// PostgreSQL SQLSTATE codes for integrity violations.
const (
	sqlStateNotNullViolation    = "23502"
	sqlStateForeignKeyViolation = "23503"
	sqlStateUniqueViolation     = "23505"
	sqlStateCheckViolation      = "23514"
)

// Helper functions for PostgreSQL error checking. GORM's translated errors are
// checked first; the SQLSTATE in the driver message covers untranslated ones.
func isUniqueConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	return hasSQLState(err, sqlStateUniqueViolation) ||
		strings.Contains(strings.ToLower(err.Error()), "duplicate key")
}

func isForeignKeyConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}

	return hasSQLState(err, sqlStateForeignKeyViolation)
}

func isNotNullConstraintViolation(err error) bool {
	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, "null value") ||
		strings.Contains(errMsg, "not null") ||
		hasSQLState(err, sqlStateNotNullViolation)
}

func isCheckConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return true
	}

	return hasSQLState(err, sqlStateCheckViolation)
}

func hasSQLState(err error, code string) bool {
	if err == nil {
		return false
	}

	return strings.Contains(err.Error(), "SQLSTATE "+code)
}

// writeConflicts names the error a write reports for each constraint class.
// A nil entry falls through to a database execute error.
type writeConflicts struct {
	unique     error
	foreignKey error
	notNull    error
}

func translateWriteError(err error, conflicts writeConflicts, op string) error {
	switch {
	case conflicts.unique != nil && isUniqueConstraintViolation(err):
		return conflicts.unique
	case conflicts.foreignKey != nil && isForeignKeyConstraintViolation(err):
		return conflicts.foreignKey
	case conflicts.notNull != nil && isNotNullConstraintViolation(err):
		return conflicts.notNull
	default:
		return domainerrors.NewDatabaseExecuteError(err, op)
	}
}

// firstWhere loads the first row of T matching the condition, reporting
// notFound when there is none.
func firstWhere[T any](ctx context.Context, db *gorm.DB, notFound error, query string, args ...any) (*T, error) {
	var row T
	if err := db.WithContext(ctx).Where(query, args...).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound
		}

		return nil, errors.WithStack(err)
	}

	return &row, nil
}
