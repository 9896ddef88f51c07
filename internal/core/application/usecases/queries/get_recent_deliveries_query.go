package queries

import (
	"errors"
	"time"

	"pizzadelivery/internal/pkg/errs"
	"pizzadelivery/internal/pkg/guard"
)

const (
	DefaultDeliveriesLimit = 20
	MaxDeliveriesLimit     = 500
)

var ErrGetRecentDeliveriesQueryIsNotConstructed = errors.New(
	"GetRecentDeliveriesQuery must be created via NewGetRecentDeliveriesQuery constructor",
)

// GetRecentDeliveriesQuery reads the newest entries of the delivery journal.
//
// Example:
//
//	query, err := NewGetRecentDeliveriesQuery(50)
//	if err != nil {
//	    return err
//	}
//	deliveries, err := handler.Handle(ctx, query)
type GetRecentDeliveriesQuery struct {
	limit int

	guard guard.ConstructorGuard
}

// NewGetRecentDeliveriesQuery uses DefaultDeliveriesLimit when limit is 0.
func NewGetRecentDeliveriesQuery(limit int) (GetRecentDeliveriesQuery, error) {
	if limit == 0 {
		limit = DefaultDeliveriesLimit
	}
	if limit < 1 || limit > MaxDeliveriesLimit {
		return GetRecentDeliveriesQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxDeliveriesLimit)
	}

	return GetRecentDeliveriesQuery{
		limit: limit,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (q GetRecentDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetRecentDeliveriesQueryIsNotConstructed)
}

func (q GetRecentDeliveriesQuery) Limit() int {
	return q.limit
}

type GetRecentDeliveriesQueryResponse struct {
	OrderID          string    `json:"orderId"`
	DriverName       string    `json:"driverName"`
	PizzaType        string    `json:"pizzaType"`
	Address          string    `json:"address"`
	Score            int       `json:"score"`
	ActualSeconds    int       `json:"actualSeconds"`
	EstimatedSeconds int       `json:"estimatedSeconds"`
	DeliveredAt      time.Time `json:"deliveredAt"`
}
