package models

import "errors"

// Error taxonomy returned by the engine. Callers match with errors.Is.
var (
	ErrInvalidCoordinate      = errors.New("invalid coordinate")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrMatchExpired           = errors.New("match expired")
	ErrMatchNotFound          = errors.New("match not found")
	ErrInvalidStateTransition = errors.New("invalid state transition")
)
