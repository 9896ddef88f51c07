// Package branch holds the static list of pizza branches drivers start from.
package branch

import (
	"errors"
	"math/rand/v2"
	"strings"

	"pizzadelivery/internal/core/domain/model/kernel"
	"pizzadelivery/internal/pkg/errs"
	"pizzadelivery/internal/pkg/guard"
)

var (
	ErrBranchIsNotConstructed = errors.New("Branch must be created via NewBranch constructor")
	ErrIDIsRequired           = errs.NewValueIsRequiredError("branch id")
	ErrNameIsRequired         = errs.NewValueIsRequiredError("branch name")
)

// Branch is a fixed depot on the city grid. A driver is bound to one branch
// for the lifetime of its session.
type Branch struct {
	id       string
	name     string
	location kernel.Location
	guard    guard.ConstructorGuard
}

func NewBranch(id string, name string, location kernel.Location) (Branch, error) {
	b := Branch{guard: guard.NewConstructorGuard()}

	var idErr, nameErr error
	if strings.TrimSpace(id) == "" {
		idErr = ErrIDIsRequired
	}
	if strings.TrimSpace(name) == "" {
		nameErr = ErrNameIsRequired
	}
	if err := errors.Join(idErr, nameErr, location.Validate()); err != nil {
		return Branch{}, err
	}

	b.id = id
	b.name = name
	b.location = location
	return b, nil
}

func (b Branch) Validate() error {
	return b.guard.Validate(ErrBranchIsNotConstructed)
}

func (b Branch) ID() string {
	return b.id
}

func (b Branch) Name() string {
	return b.name
}

func (b Branch) Location() kernel.Location {
	return b.location
}

var seed = []struct {
	id   string
	name string
	x, y kernel.Coordinate
}{
	{"BR01", "Downtown_Branch", 10, 10},
	{"BR02", "Uptown_Branch", 40, 40},
	{"BR03", "Westside_Branch", 5, 25},
	{"BR04", "Eastside_Branch", 45, 25},
	{"BR05", "North_Branch", 25, 5},
	{"BR06", "South_Branch", 25, 45},
	{"BR07", "Central_Branch", 25, 25},
	{"BR08", "Riverside_Branch", 15, 35},
	{"BR09", "Hillside_Branch", 35, 15},
	{"BR10", "Lakeside_Branch", 30, 30},
}

var all = mustLoad()

func mustLoad() []Branch {
	branches := make([]Branch, 0, len(seed))
	for _, s := range seed {
		loc, err := kernel.NewLocation(s.x, s.y)
		if err != nil {
			panic(err)
		}
		b, err := NewBranch(s.id, s.name, loc)
		if err != nil {
			panic(err)
		}
		branches = append(branches, b)
	}
	return branches
}

// All returns a copy of the branch list.
func All() []Branch {
	out := make([]Branch, len(all))
	copy(out, all)
	return out
}

// Random picks a branch uniformly at random.
func Random() Branch {
	return all[rand.IntN(len(all))] //nolint:gosec // placement does not need crypto randomness
}

// ByID looks a branch up by its identifier.
func ByID(id string) (Branch, error) {
	for _, b := range all {
		if b.id == id {
			return b, nil
		}
	}
	return Branch{}, errs.NewObjectNotFoundError("branch id", id)
}
