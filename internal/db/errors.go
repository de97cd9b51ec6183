package db

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotInitialized is returned by every operation invoked before a
// successful Open.
var ErrNotInitialized = errors.New("database not initialized")

// ErrNameCollision marks a CREATE that failed because the target
// identifier already exists.
var ErrNameCollision = errors.New("name already exists")

// SQLError carries the engine's message for a failed statement.
type SQLError struct {
	Stmt string
	Err  error
}

func (e *SQLError) Error() string {
	return fmt.Sprintf("sql error: %v", e.Err)
}

func (e *SQLError) Unwrap() error { return e.Err }

// classifyExec wraps an engine execution error, tagging already-exists
// failures as name collisions. The engine's message is preserved.
func classifyExec(stmt string, err error) error {
	if err == nil {
		return nil
	}
	if strings.Contains(err.Error(), "already exists") {
		return fmt.Errorf("%w: %v", ErrNameCollision, err)
	}
	return &SQLError{Stmt: stmt, Err: err}
}
