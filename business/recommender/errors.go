package recommender

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCatalog  = errors.New("recommender: catalog has no dishes")
	ErrInvalidDish   = errors.New("recommender: invalid dish")
	ErrInvalidConfig = errors.New("recommender: invalid config")
)

// InferenceInvariantError reports a broken probability invariant: a table
// that could not be built, an inference failure or a posterior that does
// not normalize. None of these can happen with a valid Config.
type InferenceInvariantError struct {
	Stage string
	Err   error
}

func (e *InferenceInvariantError) Error() string {
	return fmt.Sprintf("recommender: inference invariant violated at %s: %v", e.Stage, e.Err)
}

func (e *InferenceInvariantError) Unwrap() error {
	return e.Err
}
