package rxbuild

import (
	"errors"
	"fmt"
)

// Builder errors. They are recorded as the chain runs and reported by
// Builder.Err and Builder.Compile, wrapped in a *BuildError.
var (
	// ErrMissingQuantity indicates a character spec was flushed without a
	// preceding Exactly, Min or Max.
	ErrMissingQuantity = errors.New("character spec without a quantity")

	// ErrOrWithoutEither indicates Or was called with no pending Either.
	ErrOrWithoutEither = errors.New("or without a preceding either")

	// ErrEitherWithoutOr indicates an Either whose alternation was never
	// completed by Or.
	ErrEitherWithoutOr = errors.New("either without a following or")

	// ErrNegativeCount indicates a negative bound was passed to Exactly, Min or Max.
	ErrNegativeCount = errors.New("negative repetition count")

	// ErrInvertedBounds indicates a clause whose minimum exceeds its maximum.
	ErrInvertedBounds = errors.New("minimum exceeds maximum")

	// ErrNilSubPattern indicates a nil SubPattern, or one that returned nil.
	ErrNilSubPattern = errors.New("nil sub-pattern")
)

// BuildError records which builder operation produced an error.
type BuildError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *BuildError) Error() string {
	return fmt.Sprintf("rxbuild: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *BuildError) Unwrap() error {
	return e.Err
}
