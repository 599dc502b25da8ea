package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrDatabaseQuery      = errors.New("database query failed")
	ErrDatabaseConnection = errors.New("database connection failed")
)

// Database & Storage Specific Errors
var (
	ErrDuplicateKey         = fmt.Errorf("duplicate key: %w", ErrAlreadyExists)
	ErrForeignKeyConstraint = errors.New("foreign key constraint violation")
)

// postgres SQLSTATE codes
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

func NewDuplicateKeyError(entity, field string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusConflict,
		err:        ErrDuplicateKey,
		Details:    fmt.Sprintf("%s with this %s already exists", entity, field),
		Cause:      cause,
		Field:      field,
	}
}

func NewForeignKeyConstraintError(entity string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrForeignKeyConstraint,
		Details:    fmt.Sprintf("invalid reference in %s", entity),
		Cause:      cause,
	}
}

// NewDatabaseError classifies a store error into the ApiErr taxonomy. Errors
// that are already ApiErr are returned unchanged.
func NewDatabaseError(operation, entity string, cause error) error {
	if cause == nil {
		return nil
	}
	var apiErr *ApiErr
	if errors.As(cause, &apiErr) {
		return apiErr
	}

	details := fmt.Sprintf("Failed to %s %s", operation, entity)

	if errors.Is(cause, gorm.ErrRecordNotFound) {
		return &ApiErr{
			StatusCode: http.StatusNotFound,
			err:        fmt.Errorf("%s %w", entity, ErrNotFound),
			Cause:      cause,
		}
	}

	var pgErr *pgconn.PgError
	if errors.As(cause, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return NewDuplicateKeyError(entity, uniqueFieldFromConstraint(pgErr.ConstraintName), cause)
		case pgForeignKeyViolation:
			return NewForeignKeyConstraintError(entity, cause)
		case pgCheckViolation:
			return NewInvalidFieldError(checkFieldFromConstraint(pgErr.ConstraintName), "check constraint violated")
		}
	}

	if errors.Is(cause, gorm.ErrDuplicatedKey) {
		return NewDuplicateKeyError(entity, uniqueFieldFromMessage(cause.Error()), cause)
	}
	if errors.Is(cause, gorm.ErrForeignKeyViolated) {
		return NewForeignKeyConstraintError(entity, cause)
	}
	if errors.Is(cause, gorm.ErrCheckConstraintViolated) {
		return NewInvalidFieldError(checkFieldFromConstraint(cause.Error()), "check constraint violated")
	}

	errStr := cause.Error()
	switch {
	case strings.Contains(errStr, "UNIQUE constraint failed"):
		return NewDuplicateKeyError(entity, uniqueFieldFromMessage(errStr), cause)
	case strings.Contains(errStr, "CHECK constraint failed"):
		return NewInvalidFieldError(checkFieldFromConstraint(errStr), "check constraint violated")
	case strings.Contains(errStr, "connection refused"), strings.Contains(errStr, "failed to connect"):
		return &ApiErr{
			StatusCode: http.StatusServiceUnavailable,
			err:        ErrDatabaseConnection,
			Details:    "Unable to connect to database",
			Cause:      cause,
		}
	}

	// Generic database error
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrDatabaseQuery,
		Details:    details,
		Cause:      cause,
	}
}

// uniqueFieldFromConstraint maps gorm's idx_<table>_<column> naming back to
// the column name.
func uniqueFieldFromConstraint(name string) string {
	switch {
	case strings.HasSuffix(name, "_slug"), strings.HasSuffix(name, "_slug_key"):
		return "slug"
	case strings.HasSuffix(name, "_email"), strings.HasSuffix(name, "_email_key"):
		return "email"
	case name == "":
		return "key"
	}
	return name
}

// uniqueFieldFromMessage extracts the column from messages such as
// "UNIQUE constraint failed: projects.slug".
func uniqueFieldFromMessage(msg string) string {
	if i := strings.LastIndex(msg, "."); i >= 0 && strings.Contains(msg, "UNIQUE constraint failed") {
		return strings.TrimSpace(msg[i+1:])
	}
	if strings.Contains(msg, "slug") {
		return "slug"
	}
	if strings.Contains(msg, "email") {
		return "email"
	}
	return "key"
}

func checkFieldFromConstraint(msg string) string {
	if strings.Contains(msg, "rating") {
		return "rating"
	}
	return "value"
}

func IsDuplicateKeyError(err error) bool {
	return errors.Is(err, ErrDuplicateKey)
}

func IsForeignKeyConstraintError(err error) bool {
	return errors.Is(err, ErrForeignKeyConstraint)
}
