package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidParameters   = errors.New("invalid simulation parameters")
	ErrInsufficientDrivers = errors.New("insufficient drivers")
	ErrStorageUnavailable  = errors.New("storage unavailable")
)

// InsufficientDriversError reports a run that asked for more drivers than are active.
type InsufficientDriversError struct {
	Requested int
	Available int
}

func (e *InsufficientDriversError) Error() string {
	return fmt.Sprintf("only %d drivers available, but %d requested", e.Available, e.Requested)
}

func (e *InsufficientDriversError) Is(target error) bool {
	return target == ErrInsufficientDrivers
}

// Record management errors.
var (
	ErrInvalidRecord = errors.New("invalid record")
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("already exists")
	ErrInUse         = errors.New("record in use")
)

// NotFoundError names the missing record, e.g. "route r9 not found".
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
