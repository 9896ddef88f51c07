// Package orderrepo stores Order aggregates as detached snapshots.
package orderrepo

import (
	"time"

	"pizzadelivery/internal/core/domain/model/kernel"
	"pizzadelivery/internal/core/domain/model/order"
)

// OrderDTO is the stored row of an order.
type OrderDTO struct {
	ID               string
	CustomerID       string
	DriverID         string
	PizzaType        string
	Address          string
	Location         LocationDTO
	Status           int
	CreatedAt        time.Time
	DeliveredAt      *time.Time
	EstimatedSeconds int
	ReadyForPickup   bool
}

// LocationDTO is the customer position copied into the order.
type LocationDTO struct {
	X kernel.Coordinate
	Y kernel.Coordinate
}

func fromDomain(o *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:         o.ID().String(),
		CustomerID: o.CustomerID().String(),
		PizzaType:  o.PizzaType().String(),
		Address:    o.Address(),
		Location: LocationDTO{
			X: o.CustomerLocation().X(),
			Y: o.CustomerLocation().Y(),
		},
		Status:           int(o.Status()),
		CreatedAt:        o.CreatedAt(),
		DeliveredAt:      o.DeliveredAt(),
		EstimatedSeconds: o.EstimatedSeconds(),
		ReadyForPickup:   o.IsReadyForPickup(),
	}
	if driverID := o.DriverID(); driverID != nil {
		dto.DriverID = driverID.String()
	}
	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.IDFromString(dto.ID)
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.IDFromString(dto.CustomerID)
	if err != nil {
		return nil, err
	}

	var driverID *kernel.ID
	if dto.DriverID != "" {
		dID, driverErr := kernel.IDFromString(dto.DriverID)
		if driverErr != nil {
			return nil, driverErr
		}
		driverID = &dID
	}

	loc, err := kernel.NewLocation(dto.Location.X, dto.Location.Y)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		customerID,
		order.PizzaType(dto.PizzaType),
		dto.Address,
		loc,
		order.Status(dto.Status),
		driverID,
		dto.CreatedAt,
		dto.DeliveredAt,
		dto.EstimatedSeconds,
		dto.ReadyForPickup,
	)
}
