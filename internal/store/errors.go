package store

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrMissingID           = errors.New("id is required")
	ErrActiveWorkoutExists = errors.New("another workout is already in progress")
	ErrSetSequence         = errors.New("set numbers must run 1..n in order")
)
