package repository

import "errors"

// ErrNotFound is returned by mutating operations whose target record does
// not exist. Lookups return (nil, nil) instead.
var ErrNotFound = errors.New("record not found")

// ErrConflict is returned when a conditional write loses, e.g. the room
// was already taken when a booking tried to hold it.
var ErrConflict = errors.New("conflict")
