// Package repository implements data access for the store over database/sql.
// This file defines the error kinds shared across repositories. Sentinel
// values let handlers distinguish failure scenarios: absent rows, business
// rejections such as an exhausted stock or a session that was already
// closed, and constraint conflicts like deleting a user who still has sale
// history. Infrastructure failures are returned wrapped and unclassified.
package repository

import (
	"errors"
	"fmt"
	"strings"
)

// ErrGameNotFound is returned when a referenced game does not exist.
var ErrGameNotFound = errors.New("game not found")

// ErrUserNotFound is returned when a referenced user does not exist.
var ErrUserNotFound = errors.New("user not found")

// ErrSaleNotFound is returned when a sale record does not exist.
var ErrSaleNotFound = errors.New("sale not found")

// ErrSessionNotFound is returned when a play session does not exist.
var ErrSessionNotFound = errors.New("session not found")

// ErrSessionClosed is returned when finalizing a session that has already
// been finalized. Closing is single-use; the stored end time, duration and
// price are never rewritten.
var ErrSessionClosed = errors.New("session already finalized")

// ErrTitleExists is returned when creating or renaming a game would violate
// the unique title constraint.
var ErrTitleExists = errors.New("title already exists")

// ErrNameExists is returned when creating or renaming a user would violate
// the unique name constraint.
var ErrNameExists = errors.New("name already exists")

// ErrConflict is returned when a delete cannot proceed because dependent
// records still reference the row, e.g. deleting a user with sale history.
// Handlers should translate this into an HTTP 409 with an actionable
// message rather than a raw store error.
var ErrConflict = errors.New("conflict: historical records exist")

// InsufficientStockError rejects a sale whose quantity exceeds the game's
// stock. It is a business rejection, not a transient fault: callers must
// not retry automatically. The structured fields let the presentation
// layer build a precise message.
type InsufficientStockError struct {
	GameID    uint64
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for game %d: requested %d, available %d",
		e.GameID, e.Requested, e.Available)
}

// IsInsufficientStock reports whether err is an InsufficientStockError.
func IsInsufficientStock(err error) bool {
	var ise *InsufficientStockError
	return errors.As(err, &ise)
}

// isDuplicate detects unique-constraint violations from both the MySQL
// driver (error 1062) and the SQLite driver used in tests.
func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "1062") || strings.Contains(msg, "UNIQUE constraint failed")
}

// isRestricted detects foreign-key RESTRICT violations on delete from both
// MySQL (error 1451) and SQLite.
func isRestricted(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "1451") || strings.Contains(msg, "FOREIGN KEY constraint failed")
}
