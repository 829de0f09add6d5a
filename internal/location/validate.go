package location

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/specialistvlad/pathgraph/internal/geometry"
)

// validate is shared; validator.Validate caches struct metadata and is safe
// for concurrent use.
var validate = validator.New()

// Validate checks the structural rules every stored location must satisfy: a
// non-empty name and non-empty aliases. Any integer coordinate is valid.
func Validate(l *Location) error {
	if l == nil {
		return fmt.Errorf("%w: nil location", ErrInvalidLocation)
	}
	err := validate.Struct(l)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrInvalidLocation, err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("%w: id %d at %s: %s", ErrInvalidLocation, l.ID, l.Coord, strings.Join(msgs, ", "))
}

// At returns the first location whose coordinate equals p, or nil. The scan
// is linear, which is fine at editor scale.
func At(locs []*Location, p geometry.Point) *Location {
	for _, l := range locs {
		if l != nil && l.Coord == p {
			return l
		}
	}
	return nil
}
