package queries

import (
	"context"

	"pizzadelivery/internal/core/domain/model/order"
	"pizzadelivery/internal/core/ports"
)

type GetStatsQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewGetStatsQueryHandler(uowFactory ports.UnitOfWorkFactory) GetStatsQueryHandler {
	return GetStatsQueryHandler{uowFactory: uowFactory}
}

func (h GetStatsQueryHandler) Handle(ctx context.Context, query GetStatsQuery) (GetStatsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetStatsQueryResponse{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return GetStatsQueryResponse{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	var (
		resp GetStatsQueryResponse
		err  error
	)

	if resp.Drivers, err = uow.DriverRepository().Count(ctx); err != nil {
		return GetStatsQueryResponse{}, err
	}

	if resp.Customers, err = uow.CustomerRepository().Count(ctx); err != nil {
		return GetStatsQueryResponse{}, err
	}

	byStatus, err := uow.OrderRepository().CountByStatus(ctx)
	if err != nil {
		return GetStatsQueryResponse{}, err
	}
	for status, n := range byStatus {
		if status.IsActive() {
			resp.ActiveOrders += n
		}
	}
	resp.CompletedOrders = byStatus[order.Delivered]

	delivering, err := uow.DriverRepository().GetAllDelivering(ctx)
	if err != nil {
		return GetStatsQueryResponse{}, err
	}
	resp.Delivering = len(delivering)

	return resp, nil
}
