// Package repository defines read access to the revticket tables and the
// sentinel errors shared by its repositories.  Callers distinguish "no such
// row" from real failures with errors.Is.
package repository

import "errors"

// ErrShowtimeNotFound is returned when a showtime lookup yields no rows.
var ErrShowtimeNotFound = errors.New("showtime not found")

// ErrUserNotFound is returned when no user matches the lookup.  The
// test-data generator maps it to a placeholder customer.
var ErrUserNotFound = errors.New("user not found")
