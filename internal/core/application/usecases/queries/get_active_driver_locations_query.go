package queries

import (
	"errors"

	"pizzadelivery/internal/pkg/guard"
)

var ErrGetActiveDriverLocationsQueryIsNotConstructed = errors.New(
	"GetActiveDriverLocationsQuery must be created via NewGetActiveDriverLocationsQuery constructor",
)

// GetActiveDriverLocationsQuery returns the position of every driver that
// holds an order. It feeds the location broadcast and the admin API.
type GetActiveDriverLocationsQuery struct {
	guard guard.ConstructorGuard
}

func NewGetActiveDriverLocationsQuery() GetActiveDriverLocationsQuery {
	return GetActiveDriverLocationsQuery{guard: guard.NewConstructorGuard()}
}

func (q GetActiveDriverLocationsQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveDriverLocationsQueryIsNotConstructed)
}

type DriverLocation struct {
	DriverID string `json:"driverId"`
	Name     string `json:"name"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	OrderID  string `json:"orderId"`
	Arrived  bool   `json:"arrived"`
}
