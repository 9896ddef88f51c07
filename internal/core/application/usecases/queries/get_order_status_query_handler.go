package queries

import (
	"context"
	"errors"

	"pizzadelivery/internal/core/ports"
	"pizzadelivery/internal/pkg/errs"
)

// GetOrderStatusQueryHandler answers STATUS. A customer only sees their own
// orders, delivered ones included.
type GetOrderStatusQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewGetOrderStatusQueryHandler(uowFactory ports.UnitOfWorkFactory) GetOrderStatusQueryHandler {
	return GetOrderStatusQueryHandler{uowFactory: uowFactory}
}

func (h GetOrderStatusQueryHandler) Handle(ctx context.Context, query GetOrderStatusQuery) (GetOrderStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderStatusQueryResponse{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return GetOrderStatusQueryResponse{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	c, err := uow.CustomerRepository().GetBySession(ctx, query.SessionID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return GetOrderStatusQueryResponse{}, ErrCustomerNotRegistered
	}
	if err != nil {
		return GetOrderStatusQueryResponse{}, err
	}

	o, err := uow.OrderRepository().Get(ctx, query.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return GetOrderStatusQueryResponse{}, ErrOrderNotFound
	}
	if err != nil {
		return GetOrderStatusQueryResponse{}, err
	}

	if !o.CustomerID().IsEqual(c.ID()) {
		return GetOrderStatusQueryResponse{}, ErrOrderBelongsToAnotherCustomer
	}

	return GetOrderStatusQueryResponse{
		OrderID: o.ID().String(),
		Status:  o.Status().String(),
	}, nil
}
