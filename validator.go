package qview

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/lib/pq"
)

// SQLError is a statement rejected by the backend during validation, carrying
// the native error details so an editor can mark the offending spot.
type SQLError struct {
	Code     string // backend error code, e.g. 42601 for a syntax error
	Message  string
	Position int // 1-based byte position in the statement, 0 if the backend gave none
}

func (e *SQLError) Error() string {
	if e.Position > 0 {
		return fmt.Sprintf("%s at position %d: %s", e.Code, e.Position, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Validator checks completed SQL against a live backend connection. This is
// the strict counterpart to the lenient suggestion engine: it is the only
// path that can report an error for malformed SQL, and autocomplete never
// depends on it.
type Validator struct {
	db querier
}

func NewValidator(db querier) *Validator {
	return &Validator{db: db}
}

// Validate prepares the statement against the backend and, on success,
// returns the statement's resulting column names. All work happens inside a
// transaction that is always rolled back, so validation has no side effects.
//
// A statement the backend rejects yields a *SQLError with the native code,
// message, and position. Statements with bind parameters validate via the
// prepare step but report no columns, since they cannot be described without
// arguments.
func (v *Validator) Validate(ctx context.Context, query string) ([]string, error) {
	tx, err := v.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("could not begin validation transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return nil, asSQLError(err)
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			return nil, asSQLError(err)
		}
		// prepare succeeded; most likely the statement wants arguments
		return nil, nil
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	return columns, rows.Err()
}

// asSQLError converts backend errors to *SQLError, passing anything else
// (network failures, context cancellation) through untouched.
func asSQLError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	position, _ := strconv.Atoi(pqErr.Position)
	return &SQLError{
		Code:     string(pqErr.Code),
		Message:  pqErr.Message,
		Position: position,
	}
}
