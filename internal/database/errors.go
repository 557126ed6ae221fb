package database

import (
	"errors"
	"fmt"
)

// ErrQueryFailed marks errors returned by the driver while running a query.
var ErrQueryFailed = errors.New("query execution failed")

// DBError carries the operation and query that produced a driver error.
// Query parameters are never recorded.
type DBError struct {
	err     error
	context string
	query   string
}

// NewDBError creates a DBError describing the operation that failed.
func NewDBError(err error, context string) *DBError {
	return &DBError{err: err, context: context}
}

// WithQuery adds query information to the error.
func (e *DBError) WithQuery(query string) *DBError {
	e.query = query
	return e
}

// Error returns the error message.
func (e *DBError) Error() string {
	msg := e.context
	if e.query != "" {
		msg = fmt.Sprintf("%s\nQuery: %s", msg, e.query)
	}
	if e.err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.err)
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *DBError) Unwrap() error {
	return e.err
}

// Is makes every DBError match ErrQueryFailed.
func (e *DBError) Is(target error) bool {
	return target == ErrQueryFailed
}
