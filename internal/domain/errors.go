package domain

import "errors"

// Sentinel errors used across layers. Every rejected player action maps to
// one of these; none of them are fatal.
var (
	ErrNotFound        = errors.New("not found")
	ErrWrongStage      = errors.New("action not available in this stage")
	ErrWrongIngredient = errors.New("wrong ingredient")
	ErrOutOfOrder      = errors.New("action out of order")
	ErrOutOfBounds     = errors.New("outside the cake")
	ErrTooClose        = errors.New("too close to another topping")
	ErrOffCentre       = errors.New("must be placed near the centre")
	ErrDrizzleExists   = errors.New("drizzle already applied")
	ErrNothingSelected = errors.New("nothing selected on the palette")
	ErrSessionOver     = errors.New("session already finished")
	ErrUnknownCommand  = errors.New("unknown command")
)
