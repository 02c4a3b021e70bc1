package services

import (
	"errors"
	"fmt"
)

var (
	// ErrIntent means the request text could not be turned into a travel intent
	ErrIntent = errors.New("could not understand request")

	ErrDestinationNotFound           = errors.New("destination not found")
	ErrDestinationDetailsUnavailable = errors.New("destination details unavailable")

	// ErrPlaceNotFound is returned by providers when a location id is unknown
	ErrPlaceNotFound = errors.New("place not found")

	ErrVacationNotFound = errors.New("vacation not found")
)

// ProviderError is a failed call to the places provider
type ProviderError struct {
	Op     string
	Status int
	Err    error
}

func (e *ProviderError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("places provider %s: status %d: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("places provider %s: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// PersistError is a failed write while saving an itinerary. Earlier steps
// are not rolled back.
type PersistError struct {
	Step string
	Err  error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist itinerary: %s: %v", e.Step, e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}
