package domain

import "errors"

var (
	// ErrValidation indicates malformed or out-of-range input.
	ErrValidation = errors.New("validation failed")
	// ErrUnknownFood indicates a food label missing from the water-content table.
	ErrUnknownFood = errors.New("unknown food")
	// ErrIncompleteSubmission indicates a daily log submitted without all vitals.
	ErrIncompleteSubmission = errors.New("incomplete submission")
	// ErrInvalidState indicates a survey transition that is not legal from the current state.
	ErrInvalidState = errors.New("invalid survey state")
	// ErrInvalidOption indicates an answer score that no option of the current question offers.
	ErrInvalidOption = errors.New("invalid answer option")
	// ErrNotFound indicates that the referenced record does not exist.
	ErrNotFound = errors.New("not found")
)
