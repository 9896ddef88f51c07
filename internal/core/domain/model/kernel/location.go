package kernel

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"pizzadelivery/internal/pkg/errs"
	"pizzadelivery/internal/pkg/guard"
)

// Coordinate represents a position value on the city grid.
// Valid coordinates range from LocationMin to LocationMax inclusive on both axes.
type Coordinate int

const (
	// LocationMin is the smallest valid coordinate on either axis.
	LocationMin Coordinate = 0
	// LocationMax is the largest valid coordinate on either axis.
	LocationMax Coordinate = 50
)

// ErrLocationIsNotConstructed is returned when attempting to use an improperly initialized Location.
// Locations must be created using NewLocation, ClampLocation or NewRandomLocation.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError(
	"location must be created via NewLocation, ClampLocation or NewRandomLocation constructors")

// Location represents a point on the 51x51 city grid.
// Location is an immutable value object whose coordinates are always within
// [LocationMin..LocationMax]. The zero value is invalid and fails validation.
//
// Example:
//
//	loc, err := kernel.NewLocation(25, 25)
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Printf("Location: %s", loc) // Output: Location(25,25)
type Location struct { //nolint:recvcheck //using for validation
	x     Coordinate
	y     Coordinate
	guard guard.ConstructorGuard
}

// NewLocation creates a new Location with the specified coordinates.
// Both coordinates must be within [LocationMin..LocationMax], otherwise an
// out-of-range error is returned for each offending axis.
//
// Example:
//
//	loc, err := NewLocation(10, 10)
//	if err != nil {
//	    log.Fatal("Invalid coordinates:", err)
//	}
func NewLocation(x Coordinate, y Coordinate) (Location, error) {
	loc := Location{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(loc.setX(x), loc.setY(y)); err != nil {
		return Location{}, err
	}

	return loc, nil
}

// ClampLocation creates a Location from arbitrary integers, pulling each axis
// back onto the grid. Client supplied positions (LOCATION, ARRIVED) go through
// here so stored positions never leave the grid.
//
// Example:
//
//	loc := ClampLocation(-3, 77) // Location(0,50)
func ClampLocation(x int, y int) Location {
	return Location{
		x:     clamp(x),
		y:     clamp(y),
		guard: guard.NewConstructorGuard(),
	}
}

// NewRandomLocation returns a location chosen uniformly over the whole grid.
// Customers are placed this way at registration.
func NewRandomLocation() Location {
	span := int(LocationMax-LocationMin) + 1
	return ClampLocation(
		rand.IntN(span)+int(LocationMin), //nolint:gosec // placement does not need crypto randomness
		rand.IntN(span)+int(LocationMin), //nolint:gosec // placement does not need crypto randomness
	)
}

// Validate checks if the Location was properly constructed using a constructor.
func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

// X returns the X coordinate of the location.
func (l Location) X() Coordinate {
	return l.x
}

// Y returns the Y coordinate of the location.
func (l Location) Y() Coordinate {
	return l.y
}

// String implements fmt.Stringer in the format "Location(x,y)".
func (l Location) String() string {
	return fmt.Sprintf("Location(%d,%d)", l.x, l.y)
}

// IsEqual compares two locations for equality.
// Both locations must be properly constructed for the comparison to succeed.
//
// Example:
//
//	a, _ := NewLocation(5, 7)
//	b := ClampLocation(5, 7)
//	equal, err := a.IsEqual(b) // true, nil
func (l Location) IsEqual(other Location) (bool, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return l == other, nil
}

// Distance calculates the straight-line (Euclidean) distance between two locations.
// Both locations must be properly constructed for the calculation to succeed.
//
// Example:
//
//	a, _ := NewLocation(0, 0)
//	b, _ := NewLocation(3, 4)
//	d, err := a.Distance(b) // 5.0, nil
func (l Location) Distance(other Location) (float64, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	dx := float64(l.x - other.x)
	dy := float64(l.y - other.y)
	return math.Sqrt(dx*dx + dy*dy), nil
}

// setX and setY use pointer receivers so construction can validate in place.
func (l *Location) setX(x Coordinate) error {
	if x < LocationMin || x > LocationMax {
		return errs.NewValueIsOutOfRangeError("x", x, LocationMin, LocationMax)
	}

	l.x = x
	return nil
}

func (l *Location) setY(y Coordinate) error {
	if y < LocationMin || y > LocationMax {
		return errs.NewValueIsOutOfRangeError("y", y, LocationMin, LocationMax)
	}

	l.y = y
	return nil
}

func clamp(v int) Coordinate {
	switch {
	case v < int(LocationMin):
		return LocationMin
	case v > int(LocationMax):
		return LocationMax
	default:
		return Coordinate(v)
	}
}
