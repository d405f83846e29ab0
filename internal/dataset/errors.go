package dataset

import "errors"

var (
	// ErrUnknownCountry means the requested country has no rows in the disaster data.
	ErrUnknownCountry = errors.New("country not found in disaster data")

	// ErrUnknownDisasterType means the requested type matches no indicator series.
	ErrUnknownDisasterType = errors.New("disaster type not found in disaster data")

	// ErrNoOverlap means the loaded datasets share no years.
	ErrNoOverlap = errors.New("no overlapping years between datasets")
)
