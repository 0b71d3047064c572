// internal/domain/errors.go
package domain

import "errors"

var (
	// ErrOrderNotFound is returned when an order number does not exist.
	ErrOrderNotFound = errors.New("order not found")

	// ErrEmptyFile is returned when an uploaded export contains no rows.
	ErrEmptyFile = errors.New("file contains no movement rows")
)
