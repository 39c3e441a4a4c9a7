package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/markamcfadden/be-nc-news-project/internal/errs"
)

// PostgreSQL error codes
const (
	// invalidTextRepresentationCode is raised when a path id is not an integer
	invalidTextRepresentationCode = "22P02"

	// numericValueOutOfRangeCode is raised when an id or vote delta overflows INT
	numericValueOutOfRangeCode = "22003"

	// uniqueViolationCode is the PostgreSQL error code for unique constraint violations
	uniqueViolationCode = "23505"

	// foreignKeyViolationCode is the PostgreSQL error code for foreign key violations
	foreignKeyViolationCode = "23503"

	// notNullViolationCode is the PostgreSQL error code for not null violations
	notNullViolationCode = "23502"
)

// ClassifyError maps a known PostgreSQL error anywhere in err's chain to the
// client-facing error. It reports false for every other error.
func ClassifyError(err error) (*errs.Error, bool) {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return nil, false
	}

	switch string(pqErr.Code) {
	case invalidTextRepresentationCode, numericValueOutOfRangeCode:
		return errs.ErrBadRequest, true
	case uniqueViolationCode:
		return errs.BadRequest(fmt.Sprintf("Bad request, %s already exists", entityName(pqErr.Table))), true
	case foreignKeyViolationCode:
		return errs.ErrNotFound, true
	case notNullViolationCode:
		return errs.ErrMissingFields, true
	}
	return nil, false
}

// entityName turns a table name into the singular noun used in messages
func entityName(table string) string {
	if table == "" {
		return "record"
	}
	return strings.TrimSuffix(table, "s")
}
