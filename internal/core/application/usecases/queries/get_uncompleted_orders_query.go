package queries

import (
	"errors"

	"pizzadelivery/internal/core/domain/model/kernel"
	"pizzadelivery/internal/pkg/guard"
)

var (
	ErrGetUncompletedOrdersQueryIsNotConstructed = errors.New(
		"GetUncompletedOrdersQuery must be created via NewGetUncompletedOrdersQuery constructor",
	)
)

// GetUncompletedOrdersQuery retrieves every order that is not yet delivered.
//
// Example:
//
//	query := NewGetUncompletedOrdersQuery()
//	handler := NewGetUncompletedOrdersQueryHandler(uowFactory)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get open orders: %w", err)
//	}
//
//	for _, o := range orders {
//	    fmt.Printf("Order %s %s at %s\n", o.ID, o.Status, o.Location)
//	}
type GetUncompletedOrdersQuery struct {
	guard guard.ConstructorGuard
}

func NewGetUncompletedOrdersQuery() GetUncompletedOrdersQuery {
	return GetUncompletedOrdersQuery{guard: guard.NewConstructorGuard()}
}

func (q GetUncompletedOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetUncompletedOrdersQueryIsNotConstructed)
}

// GetUncompletedOrdersQueryResponse is one open order. DriverID is empty
// until a driver is assigned.
type GetUncompletedOrdersQueryResponse struct {
	ID               string
	Status           string
	PizzaType        string
	Address          string
	Location         kernel.Location
	ReadyForPickup   bool
	DriverID         string
	EstimatedSeconds int
}
