package queries

import (
	"context"

	"pizzadelivery/internal/core/ports"
)

// GetUncompletedOrdersQueryHandler lists open orders from the shared state.
// Results keep the order in which the orders were placed.
type GetUncompletedOrdersQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewGetUncompletedOrdersQueryHandler(uowFactory ports.UnitOfWorkFactory) GetUncompletedOrdersQueryHandler {
	return GetUncompletedOrdersQueryHandler{uowFactory: uowFactory}
}

func (h GetUncompletedOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetUncompletedOrdersQuery,
) ([]GetUncompletedOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	open, err := uow.OrderRepository().GetAllUncompleted(ctx)
	if err != nil {
		return nil, err
	}

	orders := make([]GetUncompletedOrdersQueryResponse, 0, len(open))
	for _, o := range open {
		resp := GetUncompletedOrdersQueryResponse{
			ID:               o.ID().String(),
			Status:           o.Status().String(),
			PizzaType:        o.PizzaType().String(),
			Address:          o.Address(),
			Location:         o.CustomerLocation(),
			ReadyForPickup:   o.IsReadyForPickup(),
			EstimatedSeconds: o.EstimatedSeconds(),
		}
		if driverID := o.DriverID(); driverID != nil {
			resp.DriverID = driverID.String()
		}
		orders = append(orders, resp)
	}

	return orders, nil
}
