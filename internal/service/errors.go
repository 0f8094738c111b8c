package service

import (
	"errors"
	"fmt"
)

var (
	// ErrUpstream marks a record collection that could not be loaded at all.
	ErrUpstream = errors.New("upstream data unavailable")
	// ErrForecastNotFound is returned when a supply item has no forecast line.
	ErrForecastNotFound = errors.New("no forecast for supply item")
	// ErrInvalidSupplyID rejects non-positive supply ids.
	ErrInvalidSupplyID = errors.New("invalid supply id")
)

func upstream(collection string, err error) error {
	return fmt.Errorf("%w: load %s: %w", ErrUpstream, collection, err)
}
