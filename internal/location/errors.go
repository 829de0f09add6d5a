package location

import (
	"errors"
	"fmt"
)

var (
	// ErrAliasIndex indicates an alias index outside the alias list.
	ErrAliasIndex = errors.New("location: alias index out of range")
	// ErrInvalidLocation indicates a location that failed validation.
	ErrInvalidLocation = errors.New("location: invalid location")
)

// IndexError reports an out-of-range access on a location's alias list. The
// operation that produced it was a no-op.
type IndexError struct {
	LocationID int
	Op         string
	Index      int
	Len        int
}

// Error implements the error interface.
func (e *IndexError) Error() string {
	return fmt.Sprintf("location %d: %s: index %d out of range [0,%d)", e.LocationID, e.Op, e.Index, e.Len)
}

// Unwrap allows errors.Is(err, ErrAliasIndex).
func (e *IndexError) Unwrap() error {
	return ErrAliasIndex
}
