package queries

import (
	"errors"

	"pizzadelivery/internal/pkg/guard"
)

var ErrGetStatsQueryIsNotConstructed = errors.New(
	"GetStatsQuery must be created via NewGetStatsQuery constructor",
)

// GetStatsQuery reads the server counters in one consistent snapshot.
type GetStatsQuery struct {
	guard guard.ConstructorGuard
}

func NewGetStatsQuery() GetStatsQuery {
	return GetStatsQuery{guard: guard.NewConstructorGuard()}
}

func (q GetStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetStatsQueryIsNotConstructed)
}

type GetStatsQueryResponse struct {
	Drivers         int `json:"drivers"`
	Customers       int `json:"customers"`
	ActiveOrders    int `json:"activeOrders"`
	CompletedOrders int `json:"completedOrders"`
	// Delivering counts drivers holding an order
	Delivering int `json:"delivering"`
}
