package queries

import (
	"errors"

	"pizzadelivery/internal/core/domain/model/kernel"
	"pizzadelivery/internal/pkg/guard"
)

var ErrGetOrderStatusQueryIsNotConstructed = errors.New(
	"GetOrderStatusQuery must be created via NewGetOrderStatusQuery constructor",
)

// GetOrderStatusQuery is STATUS from a customer asking about one of their orders.
type GetOrderStatusQuery struct {
	sessionID kernel.ID
	orderID   kernel.ID

	guard guard.ConstructorGuard
}

func NewGetOrderStatusQuery(sessionID kernel.ID, orderID kernel.ID) (GetOrderStatusQuery, error) {
	if err := errors.Join(sessionID.Validate(), orderID.Validate()); err != nil {
		return GetOrderStatusQuery{}, err
	}

	return GetOrderStatusQuery{
		sessionID: sessionID,
		orderID:   orderID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrderStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderStatusQueryIsNotConstructed)
}

func (q GetOrderStatusQuery) SessionID() kernel.ID {
	return q.sessionID
}

func (q GetOrderStatusQuery) OrderID() kernel.ID {
	return q.orderID
}

type GetOrderStatusQueryResponse struct {
	OrderID string
	Status  string
}
