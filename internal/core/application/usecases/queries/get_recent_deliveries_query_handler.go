package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetRecentDeliveriesQueryHandler reads the journal table directly, newest first.
type GetRecentDeliveriesQueryHandler struct {
	db *gorm.DB
}

func NewGetRecentDeliveriesQueryHandler(db *gorm.DB) GetRecentDeliveriesQueryHandler {
	return GetRecentDeliveriesQueryHandler{db: db}
}

func (h GetRecentDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetRecentDeliveriesQuery,
) ([]GetRecentDeliveriesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	deliveries := make([]GetRecentDeliveriesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			order_id,
			driver_name,
			pizza_type,
			address,
			score,
			actual_seconds,
			estimated_seconds,
			delivered_at
		FROM deliveries
		ORDER BY delivered_at DESC, order_id
		LIMIT ?
	`, query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var d GetRecentDeliveriesQueryResponse
		err = rows.Scan(
			&d.OrderID,
			&d.DriverName,
			&d.PizzaType,
			&d.Address,
			&d.Score,
			&d.ActualSeconds,
			&d.EstimatedSeconds,
			&d.DeliveredAt,
		)
		if err != nil {
			return nil, err
		}
		deliveries = append(deliveries, d)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return deliveries, nil
}
