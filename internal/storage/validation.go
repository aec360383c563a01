// Package storage provides the data persistence layer for the expense tracker.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Validation errors.
var (
	ErrNilContext       = errors.New("context cannot be nil")
	ErrEmptyString      = errors.New("string parameter cannot be empty")
	ErrInvalidID        = errors.New("id must be positive")
	ErrInvalidDateRange = errors.New("start date must be before end date")
	ErrInvalidThreshold = errors.New("alert threshold must be within [0, 1]")
	ErrNegativeBudget   = errors.New("budget amount cannot be negative")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateID ensures a database ID is positive.
func validateID(id int64, paramName string) error {
	if id <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidID, paramName)
	}
	return nil
}

// validateDateRange ensures start precedes end.
func validateDateRange(start, end time.Time) error {
	if !start.Before(end) {
		return ErrInvalidDateRange
	}
	return nil
}

// validateThreshold ensures an optional alert threshold is a fraction.
func validateThreshold(threshold *float64) error {
	if threshold == nil {
		return nil
	}
	if *threshold < 0 || *threshold > 1 {
		return fmt.Errorf("%w: %v", ErrInvalidThreshold, *threshold)
	}
	return nil
}
